package selector

import (
	"fmt"
)

// Builder accumulates parts of a single compound selector. Methods return the
// same builder so calls could be chained. A builder must not be shared
// between independent chains, use one of the package level entry points to
// start a new one.
//
// The first failed call puts builder into error state: collected parts are
// dropped and all subsequent calls are ignored. Error is reported by Err and
// Build.
type Builder struct {
	parts []Part
	err   error
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Element starts a new selector with element (tag) name.
func Element(value string) *Builder { return New().Element(value) }

// ID starts a new selector with id.
func ID(value string) *Builder { return New().ID(value) }

// Class starts a new selector with a single class name.
func Class(value string) *Builder { return New().Class(value) }

// Attr starts a new selector with raw attribute expression, without brackets.
func Attr(value string) *Builder { return New().Attr(value) }

// PseudoClass starts a new selector with pseudo-class name.
func PseudoClass(value string) *Builder { return New().PseudoClass(value) }

// PseudoElement starts a new selector with pseudo-element name.
func PseudoElement(value string) *Builder { return New().PseudoElement(value) }

func (b *Builder) Element(value string) *Builder       { return b.add(KindElement, value) }
func (b *Builder) ID(value string) *Builder            { return b.add(KindID, value) }
func (b *Builder) Class(value string) *Builder         { return b.add(KindClass, value) }
func (b *Builder) Attr(value string) *Builder          { return b.add(KindAttribute, value) }
func (b *Builder) PseudoClass(value string) *Builder   { return b.add(KindPseudoClass, value) }
func (b *Builder) PseudoElement(value string) *Builder { return b.add(KindPseudoElement, value) }

// Add appends part of arbitrary kind, it is what all other methods use.
func (b *Builder) Add(p Part) *Builder {
	return b.add(p.Kind, p.Value)
}

func (b *Builder) add(kind Kind, value string) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.check(kind, value); err != nil {
		b.fail(err)
		return b
	}
	b.parts = append(b.parts, Part{Kind: kind, Value: value})
	return b
}

func (b *Builder) check(kind Kind, value string) error {
	if kind < KindElement || kind > KindPseudoElement {
		return fmt.Errorf("unknown selector part kind %s", kind)
	}
	if len(value) == 0 {
		return fmt.Errorf("%s: %w", kind, ErrEmptyValue)
	}
	if kind.Unique() {
		for _, p := range b.parts {
			if p.Kind == kind {
				return &DuplicatePartError{Kind: kind}
			}
		}
	}
	if n := len(b.parts); n > 0 && kind < b.parts[n-1].Kind {
		return &OutOfOrderPartError{Kind: kind, After: b.parts[n-1].Kind}
	}
	return nil
}

func (b *Builder) fail(err error) {
	b.err = err
	b.parts = nil
}

// Err returns the error which stopped the chain, if any.
func (b *Builder) Err() error {
	return b.err
}

// Build returns a snapshot of the selector. Later calls on the builder do not
// affect returned value.
func (b *Builder) Build() (Simple, error) {
	if b.err != nil {
		return Simple{}, b.err
	}
	parts := make([]Part, len(b.parts))
	copy(parts, b.parts)
	return Simple{parts: parts}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() Simple {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// String renders selector built so far, empty when builder is in error state.
func (b *Builder) String() string {
	if b.err != nil {
		return ""
	}
	return Simple{parts: b.parts}.String()
}
