package task

import "fmt"

// MissingParameterError reports a required parameter the model did not supply.
type MissingParameterError struct {
	Key string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter: %s", e.Key)
}

// ParameterFormatError reports a parameter value that could not be coerced
// into the type the action expects.
type ParameterFormatError struct {
	Key   string
	Value string
	Err   error
}

func (e *ParameterFormatError) Error() string {
	return fmt.Sprintf("parameter %s has invalid value %q: %v", e.Key, e.Value, e.Err)
}

func (e *ParameterFormatError) Unwrap() error {
	return e.Err
}

// UnknownActionError reports an extracted action name that is not in the
// registry. Nothing has been executed when this is returned.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	if e.Name == "" {
		return "no recognizable action in model response"
	}
	return fmt.Sprintf("action %q is not recognized or not implemented", e.Name)
}

// ActionExecutionError wraps a failure raised by the action itself. The
// dispatcher catches these so one failed task never aborts the task list.
type ActionExecutionError struct {
	Action string
	Err    error
}

func (e *ActionExecutionError) Error() string {
	return fmt.Sprintf("error executing action %s: %v", e.Action, e.Err)
}

func (e *ActionExecutionError) Unwrap() error {
	return e.Err
}
