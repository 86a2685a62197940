package selector

// Combinator joins two selectors.
type Combinator string

const (
	Descendant        Combinator = " "
	Child             Combinator = ">"
	NextSibling       Combinator = "+"
	SubsequentSibling Combinator = "~"
)

// ParseCombinator checks that s is one of supported combinators.
func ParseCombinator(s string) (Combinator, error) {
	switch c := Combinator(s); c {
	case Descendant, Child, NextSibling, SubsequentSibling:
		return c, nil
	}
	return "", &InvalidCombinatorError{Combinator: s}
}

// Combine returns new selector which joins left and right with combinator.
// Operands are not modified and may be reused.
func Combine(left Selector, combinator string, right Selector) (*Composite, error) {
	c, err := ParseCombinator(combinator)
	if err != nil {
		return nil, err
	}
	if isNil(left) || isNil(right) {
		return nil, ErrNilSelector
	}
	return &Composite{left: left, combinator: c, right: right}, nil
}

// MustCombine is like Combine but panics on error.
func MustCombine(left Selector, combinator string, right Selector) *Composite {
	c, err := Combine(left, combinator, right)
	if err != nil {
		panic(err)
	}
	return c
}

func isNil(s Selector) bool {
	if s == nil {
		return true
	}
	c, ok := s.(*Composite)
	return ok && c == nil
}
