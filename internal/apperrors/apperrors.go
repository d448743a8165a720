// Package apperrors defines the closed set of discriminated failure kinds
// the core's operations can return, per the error handling design: kinds,
// not strings, at the operation boundary.
package apperrors

import "fmt"

// Kind is a closed enum of failure categories.
type Kind string

const (
	KindValueError       Kind = "ValueError"
	KindSelfTarget       Kind = "SelfTarget"
	KindForbidden        Kind = "Forbidden"
	KindUnauthenticated  Kind = "Unauthenticated"
	KindNotFound         Kind = "NotFound"
	KindQueueFull        Kind = "QueueFull"
	KindMaxLevelReached  Kind = "MaxLevelReached"
	KindBarracksRequired Kind = "BarracksRequired"
	KindInsufficientRes  Kind = "InsufficientResources"
	KindInsufficientPop  Kind = "InsufficientPopulation"
	KindInsufficientUnit Kind = "InsufficientUnits"
	KindBadRequest       Kind = "BadRequest"
	// KindInternal signals invariant corruption (e.g. two uncompleted
	// BuildingEvents both carrying a complete_at). Never swallowed: the
	// caller must abort the transaction and alert.
	KindInternal Kind = "AnotherEventAlreadySetCompleteAt"
)

// Error is the single discriminated error type the core returns. Message
// is human-readable context; Kind is what callers branch on.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New constructs an Error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	ae, ok := err.(*Error)
	if !ok {
		return false
	}
	return ae.Kind == kind
}

// As extracts the *Error from err if it is one.
func As(err error) (*Error, bool) {
	ae, ok := err.(*Error)
	return ae, ok
}
