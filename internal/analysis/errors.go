package analysis

import "errors"

// Failure kinds, matched with errors.Is against an *Error.
var (
	ErrExternalService = errors.New("external service error")
	ErrTimeout         = errors.New("external service timeout")
	ErrGenerationParse = errors.New("generation parse error")
)

// Error is a failed generation. Raw holds the model text for parse failures.
type Error struct {
	Kind error
	Raw  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
