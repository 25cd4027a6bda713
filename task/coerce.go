package task

import (
	"regexp"
	"strings"
	"time"
)

// ParamKind is the semantic type an action expects for one parameter.
type ParamKind int

const (
	KindText ParamKind = iota
	KindDateTime
	KindSymbol
)

// ParamSpec declares a single parameter of an action's schema.
type ParamSpec struct {
	Name     string
	Kind     ParamKind
	Required bool
	Default  string // used when an optional parameter is absent
}

// Param is one coerced parameter value. Exactly one of the value fields is
// meaningful, selected by Kind.
type Param struct {
	Kind ParamKind
	Str  string
	Time time.Time
}

// Coerced maps parameter names to their typed values. It is only ever
// produced whole: if any required parameter fails, no Coerced is returned.
type Coerced map[string]Param

// DateTimeLayout is the canonical wire format for datetime parameters.
const DateTimeLayout = "2006-01-02 15:04:05"

// datetimeNoise matches everything that is not part of a date. The model
// likes to prefix values with words like "datetime:".
var datetimeNoise = regexp.MustCompile(`[^0-9:\-\s]`)

// Coerce converts the raw string parameters of an invocation into the typed
// values the schema declares. Coercion is atomic: the first failure rejects
// the whole invocation.
func Coerce(inv *Invocation, schema []ParamSpec) (Coerced, error) {
	coerced := make(Coerced, len(schema))

	for _, spec := range schema {
		raw, present := inv.Params[spec.Name]

		if !present || raw == "" {
			if spec.Required {
				return nil, &MissingParameterError{Key: spec.Name}
			}
			raw = spec.Default
		}

		switch spec.Kind {
		case KindDateTime:
			parsed, err := ParseDateTime(raw)
			if err != nil {
				return nil, &ParameterFormatError{Key: spec.Name, Value: raw, Err: err}
			}
			coerced[spec.Name] = Param{Kind: KindDateTime, Time: parsed}

		case KindSymbol:
			coerced[spec.Name] = Param{Kind: KindSymbol, Str: strings.ToUpper(raw)}

		default:
			coerced[spec.Name] = Param{Kind: KindText, Str: raw}
		}
	}

	return coerced, nil
}

// ParseDateTime parses a model-supplied datetime. It strips any characters
// outside digits, colon, dash and whitespace, defaults missing seconds to
// :00, and parses against DateTimeLayout in UTC.
func ParseDateTime(value string) (time.Time, error) {
	cleaned := datetimeNoise.ReplaceAllString(value, "")
	// a leading "datetime:" label leaves its colon behind
	cleaned = strings.TrimLeft(cleaned, ":- ")
	cleaned = strings.TrimSpace(cleaned)

	// '2025-03-09 14:00' carries no seconds
	if len(cleaned) == 16 {
		cleaned += ":00"
	}

	return time.ParseInLocation(DateTimeLayout, cleaned, time.UTC)
}
