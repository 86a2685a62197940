package build

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"cssel/css"
	"cssel/selector"
)

type (
	// PartDef is a single selector part, exactly one field must be set.
	PartDef struct {
		Element       string `yaml:"element,omitempty"`
		ID            string `yaml:"id,omitempty"`
		Class         string `yaml:"class,omitempty"`
		Attr          string `yaml:"attr,omitempty"`
		PseudoClass   string `yaml:"pseudo_class,omitempty"`
		PseudoElement string `yaml:"pseudo_element,omitempty"`
	}

	// SelectorDef is either a compound selector (Parts) or two selectors
	// joined with a combinator (Left, Combinator, Right).
	SelectorDef struct {
		Parts      []PartDef    `yaml:"parts,omitempty"`
		Left       *SelectorDef `yaml:"left,omitempty"`
		Combinator *string      `yaml:"combinator,omitempty"`
		Right      *SelectorDef `yaml:"right,omitempty"`
	}

	RuleDef struct {
		Selectors  []SelectorDef     `yaml:"selectors"`
		Properties map[string]string `yaml:"properties"`
	}

	MediaDef struct {
		Query string    `yaml:"query"`
		Rules []RuleDef `yaml:"rules"`
	}

	// Definition is the content of a definition file.
	Definition struct {
		Rules []RuleDef  `yaml:"rules"`
		Media []MediaDef `yaml:"media,omitempty"`
	}
)

var errNoSelectors = errors.New("rule has no selectors")

// Decode reads definition, fields which are not known are rejected.
func Decode(r io.Reader) (*Definition, error) {
	def := &Definition{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(def); err != nil {
		if errors.Is(err, io.EOF) {
			// empty document
			return def, nil
		}
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}
	return def, nil
}

// Load decodes definition and builds stylesheet out of it. All invalid rules
// are reported together.
func Load(data []byte) (*css.Stylesheet, error) {
	def, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return def.Stylesheet()
}

// Stylesheet builds every selector of the definition. Errors are collected
// for all rules, stylesheet is returned only when there are none.
func (d *Definition) Stylesheet() (*css.Stylesheet, error) {
	var (
		sheet css.Stylesheet
		errs  error
	)

	for i, rd := range d.Rules {
		rule, err := rd.rule()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("rules[%d]: %w", i, err))
			continue
		}
		sheet.AddRule(rule)
	}

	for i, md := range d.Media {
		if len(md.Query) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("media[%d]: empty query", i))
			continue
		}
		mb := css.MediaBlock{Query: md.Query}
		for j, rd := range md.Rules {
			rule, err := rd.rule()
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("media[%d].rules[%d]: %w", i, j, err))
				continue
			}
			mb.Rules = append(mb.Rules, rule)
		}
		sheet.AddMediaBlock(mb)
	}

	if errs != nil {
		return nil, errs
	}
	return &sheet, nil
}

func (rd RuleDef) rule() (css.Rule, error) {
	if len(rd.Selectors) == 0 {
		return css.Rule{}, errNoSelectors
	}

	rule := css.Rule{
		Selectors:  make([]selector.Selector, 0, len(rd.Selectors)),
		Properties: make(map[string]css.Value, len(rd.Properties)),
	}
	for i, sd := range rd.Selectors {
		sel, err := sd.Selector()
		if err != nil {
			return css.Rule{}, fmt.Errorf("selectors[%d]: %w", i, err)
		}
		rule.Selectors = append(rule.Selectors, sel)
	}
	for name, val := range rd.Properties {
		rule.Properties[name] = css.Value{Raw: val}
	}
	return rule, nil
}

// Selector builds selector described by the definition.
func (sd *SelectorDef) Selector() (selector.Selector, error) {
	composite := sd.Left != nil || sd.Right != nil || sd.Combinator != nil
	switch {
	case composite && len(sd.Parts) > 0:
		return nil, errors.New("selector must have either parts or left/combinator/right, not both")
	case composite:
		if sd.Left == nil || sd.Right == nil || sd.Combinator == nil {
			return nil, errors.New("combined selector requires left, combinator and right")
		}
		left, err := sd.Left.Selector()
		if err != nil {
			return nil, fmt.Errorf("left: %w", err)
		}
		right, err := sd.Right.Selector()
		if err != nil {
			return nil, fmt.Errorf("right: %w", err)
		}
		c, err := selector.Combine(left, *sd.Combinator, right)
		if err != nil {
			return nil, err
		}
		return c, nil
	case len(sd.Parts) == 0:
		return nil, errors.New("selector has no parts")
	}

	b := selector.New()
	for i, pd := range sd.Parts {
		p, err := pd.part()
		if err != nil {
			return nil, fmt.Errorf("parts[%d]: %w", i, err)
		}
		if err := b.Add(p).Err(); err != nil {
			return nil, fmt.Errorf("parts[%d]: %w", i, err)
		}
	}
	s, err := b.Build()
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (pd PartDef) part() (selector.Part, error) {
	var (
		found []selector.Part
		check = func(k selector.Kind, v string) {
			if len(v) > 0 {
				found = append(found, selector.Part{Kind: k, Value: v})
			}
		}
	)
	check(selector.KindElement, pd.Element)
	check(selector.KindID, pd.ID)
	check(selector.KindClass, pd.Class)
	check(selector.KindAttribute, pd.Attr)
	check(selector.KindPseudoClass, pd.PseudoClass)
	check(selector.KindPseudoElement, pd.PseudoElement)

	if len(found) != 1 {
		return selector.Part{}, fmt.Errorf("part must have exactly one of element, id, class, attr, pseudo_class, pseudo_element, got %d", len(found))
	}
	return found[0], nil
}
