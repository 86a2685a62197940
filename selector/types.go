package selector

import (
	"strconv"
	"strings"
)

// Kind identifies the type of a selector part. Numeric value of the kind is
// its rank: parts of a compound selector are kept in non-decreasing rank
// order.
type Kind int

const (
	KindElement       Kind = iota // div
	KindID                        // #main
	KindClass                     // .container
	KindAttribute                 // [href$=".png"]
	KindPseudoClass               // :focus
	KindPseudoElement             // ::before
)

var kindNames = [...]string{
	KindElement:       "element",
	KindID:            "id",
	KindClass:         "class",
	KindAttribute:     "attribute",
	KindPseudoClass:   "pseudoClass",
	KindPseudoElement: "pseudoElement",
}

func (k Kind) String() string {
	if k < KindElement || k > KindPseudoElement {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Unique reports whether parts of this kind may appear at most once in a
// compound selector.
func (k Kind) Unique() bool {
	return k == KindElement || k == KindPseudoElement
}

// prefix returns CSS punctuation which precedes part value.
func (k Kind) prefix() string {
	switch k {
	case KindID:
		return "#"
	case KindClass:
		return "."
	case KindPseudoClass:
		return ":"
	case KindPseudoElement:
		return "::"
	default:
		return ""
	}
}

// Part is a single token of a compound selector.
type Part struct {
	Kind  Kind
	Value string
}

// String returns CSS representation of the part.
func (p Part) String() string {
	if p.Kind == KindAttribute {
		return "[" + p.Value + "]"
	}
	return p.Kind.prefix() + p.Value
}

// Selector is either a Simple (compound) selector or a Composite produced by
// Combine. Values of both are immutable.
type Selector interface {
	String() string
	// sealed, only this package provides implementations
	selector()
}

// Simple is a compound selector: ordered parts without combinators.
type Simple struct {
	parts []Part
}

func (Simple) selector() {}

// Parts returns a copy of selector parts in their stored order.
func (s Simple) Parts() []Part {
	out := make([]Part, len(s.parts))
	copy(out, s.parts)
	return out
}

// Len returns number of parts.
func (s Simple) Len() int {
	return len(s.parts)
}

// IsEmpty returns true for a selector without parts.
func (s Simple) IsEmpty() bool {
	return len(s.parts) == 0
}

// Element returns element part value or empty string if there is none.
func (s Simple) Element() string {
	if len(s.parts) > 0 && s.parts[0].Kind == KindElement {
		return s.parts[0].Value
	}
	return ""
}

// String concatenates formatted parts with no separators.
func (s Simple) String() string {
	var sb strings.Builder
	for _, p := range s.parts {
		sb.WriteString(p.String())
	}
	return sb.String()
}

// Composite joins two selectors with a combinator.
type Composite struct {
	left       Selector
	combinator Combinator
	right      Selector
}

func (*Composite) selector() {}

func (c *Composite) Left() Selector         { return c.left }
func (c *Composite) Right() Selector        { return c.right }
func (c *Composite) Combinator() Combinator { return c.combinator }

// String renders left and right operands with combinator surrounded by single
// spaces.
func (c *Composite) String() string {
	var sb strings.Builder
	c.writeTo(&sb)
	return sb.String()
}

func (c *Composite) writeTo(sb *strings.Builder) {
	writeSelector(sb, c.left)
	sb.WriteByte(' ')
	sb.WriteString(string(c.combinator))
	sb.WriteByte(' ')
	writeSelector(sb, c.right)
}

func writeSelector(sb *strings.Builder, s Selector) {
	switch v := s.(type) {
	case nil:
	case *Composite:
		if v != nil {
			v.writeTo(sb)
		}
	default:
		sb.WriteString(v.String())
	}
}

// Stringify returns canonical CSS text for the selector. Nil renders as empty
// string.
func Stringify(s Selector) string {
	var sb strings.Builder
	writeSelector(&sb, s)
	return sb.String()
}
