package task

import (
	"fmt"
	"strings"
	"time"
)

// ActionKind is the closed set of actions the dispatcher can invoke. The
// extractor produces a name string; decoding it to a kind happens exactly
// once, here, so an unrecognized name can never reach a handler.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionSendEmail
	ActionRemindMe
	ActionAddCalendarInvite
	ActionShareStockPrice
)

// KindFromName decodes an extracted action name. Unrecognized names map to
// ActionUnknown.
func KindFromName(name string) ActionKind {
	switch strings.TrimSpace(name) {
	case "send_email":
		return ActionSendEmail
	case "remind_me":
		return ActionRemindMe
	case "add_calendar_invite":
		return ActionAddCalendarInvite
	case "share_stock_price":
		return ActionShareStockPrice
	default:
		return ActionUnknown
	}
}

// Name returns the wire name of the action kind.
func (k ActionKind) Name() string {
	switch k {
	case ActionSendEmail:
		return "send_email"
	case ActionRemindMe:
		return "remind_me"
	case ActionAddCalendarInvite:
		return "add_calendar_invite"
	case ActionShareStockPrice:
		return "share_stock_price"
	default:
		return "unknown"
	}
}

// Schema returns the declared parameter schema for the action kind. An
// empty schema means the action takes no model-supplied parameters.
func (k ActionKind) Schema() []ParamSpec {
	switch k {
	case ActionSendEmail, ActionRemindMe:
		return []ParamSpec{
			{Name: "subject", Kind: KindText, Required: true},
			{Name: "body", Kind: KindText, Required: true},
			{Name: "to_email", Kind: KindText, Required: true},
		}
	case ActionAddCalendarInvite:
		return []ParamSpec{
			{Name: "subject", Kind: KindText, Required: true},
			{Name: "body", Kind: KindText, Required: true},
			{Name: "to_email", Kind: KindText, Required: true},
			{Name: "event_start", Kind: KindDateTime, Required: true},
			{Name: "event_end", Kind: KindDateTime, Required: true},
		}
	case ActionShareStockPrice:
		return []ParamSpec{
			{Name: "to_email", Kind: KindText, Required: true},
			{Name: "time_str", Kind: KindText, Default: "6 PM"},
			{Name: "symbol", Kind: KindSymbol, Default: "NVDA"},
		}
	default:
		return nil
	}
}

// Library is the catalog of side effects the dispatcher can trigger. The
// implementations live outside this package; the dispatcher only coordinates.
type Library interface {
	SendEmail(subject, body, to string) error
	RemindMe(subject, body, to string) error
	AddCalendarInvite(subject, body, to string, start, end time.Time) error
	ShareStockPrice(to, timeStr, symbol string) error
}

// Catalog renders the dispatchable actions as the plain-text listing the
// analysis prompt embeds.
func Catalog() string {
	var b strings.Builder

	kinds := []ActionKind{
		ActionSendEmail,
		ActionRemindMe,
		ActionAddCalendarInvite,
		ActionShareStockPrice,
	}
	descriptions := map[ActionKind]string{
		ActionSendEmail:         "send an email",
		ActionRemindMe:          "send a reminder email",
		ActionAddCalendarInvite: "create a calendar invite and email it",
		ActionShareStockPrice:   "schedule a daily stock price email",
	}

	for _, k := range kinds {
		names := make([]string, 0, len(k.Schema()))
		for _, spec := range k.Schema() {
			name := spec.Name
			if !spec.Required {
				name += fmt.Sprintf(" (optional, default %q)", spec.Default)
			}
			names = append(names, name)
		}
		fmt.Fprintf(&b, "- %s(%s): %s\n", k.Name(), strings.Join(names, ", "), descriptions[k])
	}

	return b.String()
}

// Dispatcher resolves a parsed invocation against the library and runs it.
type Dispatcher struct {
	lib Library
}

// NewDispatcher creates a dispatcher bound to the given action library.
func NewDispatcher(lib Library) *Dispatcher {
	return &Dispatcher{lib: lib}
}

// Dispatch decodes, coerces and executes a single invocation. Every failure
// comes back as a typed error; nothing panics and nothing propagates from
// the handler uncaught, so the caller's loop always continues.
func (d *Dispatcher) Dispatch(inv *Invocation) error {
	kind := KindFromName(inv.Action)
	if kind == ActionUnknown {
		return &UnknownActionError{Name: inv.Action}
	}

	params, err := Coerce(inv, kind.Schema())
	if err != nil {
		return err
	}

	if err := d.invoke(kind, params); err != nil {
		return &ActionExecutionError{Action: kind.Name(), Err: err}
	}
	return nil
}

func (d *Dispatcher) invoke(kind ActionKind, params Coerced) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in action handler: %v", r)
		}
	}()

	switch kind {
	case ActionSendEmail:
		return d.lib.SendEmail(params["subject"].Str, params["body"].Str, params["to_email"].Str)
	case ActionRemindMe:
		return d.lib.RemindMe(params["subject"].Str, params["body"].Str, params["to_email"].Str)
	case ActionAddCalendarInvite:
		return d.lib.AddCalendarInvite(
			params["subject"].Str,
			params["body"].Str,
			params["to_email"].Str,
			params["event_start"].Time,
			params["event_end"].Time,
		)
	case ActionShareStockPrice:
		return d.lib.ShareStockPrice(params["to_email"].Str, params["time_str"].Str, params["symbol"].Str)
	default:
		return fmt.Errorf("action %s has no handler", kind.Name())
	}
}
