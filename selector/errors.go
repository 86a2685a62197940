package selector

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyValue is returned when a part is added with empty text.
	ErrEmptyValue = errors.New("selector part value is empty")
	// ErrNilSelector is returned when Combine receives nil operand.
	ErrNilSelector = errors.New("selector is nil")
)

// DuplicatePartError is returned when element or pseudo-element is added to a
// compound selector which already has one.
type DuplicatePartError struct {
	Kind Kind
}

func (e *DuplicatePartError) Error() string {
	return fmt.Sprintf("Element, id and pseudo-element should not occur more than one time inside the selector (duplicate %s)", e.Kind)
}

// OutOfOrderPartError is returned when a part is added after a part of higher
// rank.
type OutOfOrderPartError struct {
	Kind  Kind // part being added
	After Kind // last part already present
}

func (e *OutOfOrderPartError) Error() string {
	return fmt.Sprintf("Selector parts should be arranged in the following order: element, id, class, attribute, pseudo-class, pseudo-element (%s after %s)", e.Kind, e.After)
}

// InvalidCombinatorError is returned for combinator outside of the supported
// set.
type InvalidCombinatorError struct {
	Combinator string
}

func (e *InvalidCombinatorError) Error() string {
	return fmt.Sprintf("invalid combinator %q, expected one of \" \", \">\", \"+\", \"~\"", e.Combinator)
}
