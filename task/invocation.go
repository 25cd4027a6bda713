package task

import (
	"fmt"
	"regexp"
	"strings"
)

// Invocation is the semi-structured result of parsing one model completion:
// an action name (possibly empty) plus the raw key/value parameters found
// below it. Values are strings at this stage; coercion happens later.
type Invocation struct {
	Action string
	Params map[string]string
	Keys   []string // parameter names in the order they appeared
}

var (
	paramPattern = regexp.MustCompile(`^-\s*(\w+)\s*=\s*(.+)$`)
	parenPattern = regexp.MustCompile(`\(.*?\)`)
)

// ParseInvocation extracts an action name and parameter map from a model
// completion. The completion is expected to loosely follow:
//
//	Function: <name>
//	Variables:
//	- <key> = <value>
//
// Lines that don't match are ignored. A completion with no "Function:" line
// yields an empty action name; that is a normal outcome, not an error, and
// the caller must check it before dispatching.
func ParseInvocation(completion string) *Invocation {
	inv := &Invocation{
		Params: make(map[string]string),
	}

	for _, line := range strings.Split(completion, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "Function:"):
			inv.Action = strings.TrimSpace(strings.SplitN(line, ":", 2)[1])

		case strings.HasPrefix(trimmed, "-"):
			match := paramPattern.FindStringSubmatch(trimmed)
			if match == nil {
				continue
			}
			key := strings.TrimSpace(match[1])
			value := cleanValue(match[2])
			if _, seen := inv.Params[key]; !seen {
				inv.Keys = append(inv.Keys, key)
			}
			inv.Params[key] = value
		}
	}

	return inv
}

// String renders the invocation as name(key=value, ...), parameters in the
// order they appeared in the completion.
func (inv *Invocation) String() string {
	if len(inv.Keys) == 0 {
		return inv.Action
	}
	pairs := make([]string, 0, len(inv.Keys))
	for _, key := range inv.Keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, inv.Params[key]))
	}
	return fmt.Sprintf("%s(%s)", inv.Action, strings.Join(pairs, ", "))
}

// cleanValue removes parenthesized annotations the model sometimes appends,
// e.g. `"6 PM"  (time of day)`, then strips surrounding quotes. Annotations
// go first so a trailing `(...)` cannot shield the closing quote.
func cleanValue(raw string) string {
	value := parenPattern.ReplaceAllString(raw, "")
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"'`)
	return strings.TrimSpace(value)
}
