package tracking

import "fmt"

// ErrInvalidAutomaton indicates that an automaton table failed validation.
// Errors returned by New wrap the specific defect and match this value
// under errors.Is.
var ErrInvalidAutomaton = &Error{
	Kind:    InvalidAutomaton,
	Message: "invalid automaton",
}

// ErrInconsistent indicates that an automaton was found inconsistent while
// stepping. This can only happen for tables that bypassed New, and is
// raised as a panic rather than returned.
var ErrInconsistent = &Error{
	Kind:    Inconsistent,
	Message: "inconsistent automaton",
}

// ErrInvalidRange indicates that a start offset or bound lies outside the
// input, or that they are ordered against the search direction.
var ErrInvalidRange = &Error{
	Kind:    InvalidRange,
	Message: "invalid search range",
}

// ErrInputWidth indicates that the input code unit width differs from the
// width the automaton was built for.
var ErrInputWidth = &Error{
	Kind:    InputWidth,
	Message: "input width does not match automaton",
}

// ErrorKind classifies tracking errors into categories
type ErrorKind uint8

const (
	// InvalidAutomaton indicates a defect found at load time
	InvalidAutomaton ErrorKind = iota

	// Inconsistent indicates a defect found while stepping
	Inconsistent

	// InvalidRange indicates bad start/bound arguments
	InvalidRange

	// InputWidth indicates an input of the wrong code unit width
	InputWidth
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case InvalidAutomaton:
		return "InvalidAutomaton"
	case Inconsistent:
		return "Inconsistent"
	case InvalidRange:
		return "InvalidRange"
	case InputWidth:
		return "InputWidth"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error represents an error raised by the tracking engine
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// invalidf returns an InvalidAutomaton error describing one defect.
func invalidf(format string, args ...any) *Error {
	return &Error{
		Kind:    InvalidAutomaton,
		Message: "invalid automaton",
		Cause:   fmt.Errorf(format, args...),
	}
}

// inconsistent panics with an Inconsistent error.
func inconsistent(format string, args ...any) {
	panic(&Error{
		Kind:    Inconsistent,
		Message: "inconsistent automaton",
		Cause:   fmt.Errorf(format, args...),
	})
}
