package css

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/maruel/natural"

	"cssel/selector"
)

// PropertyOrder defines how declarations inside a rule are sorted on output.
type PropertyOrder int

const (
	OrderNatural PropertyOrder = iota // "grid-row-2" before "grid-row-10"
	OrderAlpha                        // plain byte-wise order
)

var propertyOrderNames = map[string]PropertyOrder{
	"natural": OrderNatural,
	"alpha":   OrderAlpha,
}

// ParsePropertyOrder converts configuration name to PropertyOrder.
func ParsePropertyOrder(name string) (PropertyOrder, error) {
	if o, ok := propertyOrderNames[strings.ToLower(name)]; ok {
		return o, nil
	}
	return OrderNatural, fmt.Errorf("unknown property order %q", name)
}

func (o PropertyOrder) String() string {
	switch o {
	case OrderAlpha:
		return "alpha"
	default:
		return "natural"
	}
}

// Value represents a CSS property value. It is written verbatim.
type Value struct {
	Raw string
}

// Rule represents a single CSS rule: one or more selectors sharing properties.
type Rule struct {
	Selectors  []selector.Selector
	Properties map[string]Value
}

// SelectorText returns comma separated selector group.
func (r Rule) SelectorText() string {
	texts := make([]string, 0, len(r.Selectors))
	for _, s := range r.Selectors {
		texts = append(texts, selector.Stringify(s))
	}
	return strings.Join(texts, ", ")
}

// GetProperty returns the value for a property, or empty Value if not found.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query string
	Rules []Rule
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule or MediaBlock is non-nil.
type StylesheetItem struct {
	Rule       *Rule
	MediaBlock *MediaBlock
}

// Stylesheet is an ordered collection of rules and media blocks.
type Stylesheet struct {
	Items []StylesheetItem
	Order PropertyOrder
}

// AddRule appends top-level rule.
func (s *Stylesheet) AddRule(r Rule) {
	s.Items = append(s.Items, StylesheetItem{Rule: &r})
}

// AddMediaBlock appends @media block.
func (s *Stylesheet) AddMediaBlock(mb MediaBlock) {
	s.Items = append(s.Items, StylesheetItem{MediaBlock: &mb})
}

// Rules returns all top-level rules in source order, rules inside @media
// blocks are not included.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

// RulesBySelector returns all top-level rules having selector with given
// text in their group.
func (s *Stylesheet) RulesBySelector(text string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule == nil {
			continue
		}
		for _, sel := range item.Rule.Selectors {
			if selector.Stringify(sel) == text {
				matches = append(matches, *item.Rule)
				break
			}
		}
	}
	return matches
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.MediaBlock != nil:
			n, err = s.writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = s.writeRule(w, item.Rule, "")
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// blank line between items
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func (s *Stylesheet) writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.SelectorText())
	total += n
	if err != nil {
		return total, err
	}
	for _, name := range s.propertyNames(rule.Properties) {
		n, err = fmt.Fprintf(w, "%s  %s: %s;\n", indent, name, rule.Properties[name].Raw)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

func (s *Stylesheet) writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query)
	total += n
	if err != nil {
		return total, err
	}

	for i := range mb.Rules {
		n, err = s.writeRule(w, &mb.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}
		if i < len(mb.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// propertyNames returns declaration names sorted for deterministic output.
func (s *Stylesheet) propertyNames(props map[string]Value) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	switch s.Order {
	case OrderAlpha:
		slices.Sort(names)
	default:
		slices.SortFunc(names, func(a, b string) int {
			switch {
			case natural.Less(a, b):
				return -1
			case natural.Less(b, a):
				return 1
			default:
				return 0
			}
		})
	}
	return names
}
