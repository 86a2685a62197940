package build

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"cssel/selector"
)

const siteDefinition = `rules:
  - selectors:
      - parts: [{element: div}, {id: main}, {class: container}, {class: draggable}]
      - parts: [{element: a}, {attr: 'href$=".png"'}, {pseudo_class: focus}]
    properties:
      color: red
  - selectors:
      - left: {parts: [{element: div}, {id: main}, {class: container}, {class: draggable}]}
        combinator: "+"
        right:
          left: {parts: [{element: table}, {id: data}]}
          combinator: "~"
          right:
            left: {parts: [{element: tr}, {pseudo_class: nth-of-type(even)}]}
            combinator: " "
            right: {parts: [{element: td}, {pseudo_class: nth-of-type(even)}]}
    properties:
      background: "#eee"
media:
  - query: print
    rules:
      - selectors:
          - parts: [{pseudo_element: selection}]
        properties:
          display: none
`

func TestLoad(t *testing.T) {
	sheet, err := Load([]byte(siteDefinition))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(sheet.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(sheet.Items))
	}

	rules := sheet.Rules()
	if got, want := rules[0].SelectorText(), `div#main.container.draggable, a[href$=".png"]:focus`; got != want {
		t.Errorf("rules[0] = %q, want %q", got, want)
	}
	if got, want := rules[1].SelectorText(), "div#main.container.draggable + table#data ~ tr:nth-of-type(even)   td:nth-of-type(even)"; got != want {
		t.Errorf("rules[1] =\n%q\nwant\n%q", got, want)
	}
	if v, ok := rules[1].GetProperty("background"); !ok || v.Raw != "#eee" {
		t.Errorf("background = %v, %v", v, ok)
	}

	mb := sheet.Items[2].MediaBlock
	if mb == nil || mb.Query != "print" || len(mb.Rules) != 1 {
		t.Fatalf("unexpected media block: %+v", mb)
	}
	if got := mb.Rules[0].SelectorText(); got != "::selection" {
		t.Errorf("media rule = %q", got)
	}
}

func TestLoad_Empty(t *testing.T) {
	sheet, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(sheet.Items) != 0 {
		t.Errorf("expected empty stylesheet, got %d items", len(sheet.Items))
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load([]byte("rules:\n  - selector: []\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoad_CollectsAllErrors(t *testing.T) {
	data := `rules:
  - selectors:
      - parts: [{id: x}, {element: y}]
    properties: {color: red}
  - selectors:
      - parts: [{element: a}, {element: b}]
  - selectors:
      - left: {parts: [{element: a}]}
        combinator: "|"
        right: {parts: [{element: b}]}
  - selectors:
      - parts: [{element: ok}]
  - selectors: []
`
	_, err := Load([]byte(data))
	if err == nil {
		t.Fatal("expected error")
	}

	errs := multierr.Errors(err)
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(errs), err)
	}

	var oerr *selector.OutOfOrderPartError
	if !errors.As(errs[0], &oerr) {
		t.Errorf("errs[0] = %v, want OutOfOrderPartError", errs[0])
	}
	var derr *selector.DuplicatePartError
	if !errors.As(errs[1], &derr) {
		t.Errorf("errs[1] = %v, want DuplicatePartError", errs[1])
	}
	var cerr *selector.InvalidCombinatorError
	if !errors.As(errs[2], &cerr) {
		t.Errorf("errs[2] = %v, want InvalidCombinatorError", errs[2])
	}
	if !errors.Is(errs[3], errNoSelectors) {
		t.Errorf("errs[3] = %v, want errNoSelectors", errs[3])
	}
	if !strings.HasPrefix(errs[1].Error(), "rules[1]: selectors[0]: parts[1]:") {
		t.Errorf("error does not point to offending part: %v", errs[1])
	}
}

func TestSelectorDef_Invalid(t *testing.T) {
	comb := ">"
	tests := []struct {
		name string
		def  SelectorDef
	}{
		{"no parts", SelectorDef{}},
		{"parts and combinator", SelectorDef{Parts: []PartDef{{Element: "a"}}, Combinator: &comb}},
		{"missing right", SelectorDef{Left: &SelectorDef{Parts: []PartDef{{Element: "a"}}}, Combinator: &comb}},
		{"two kinds in one part", SelectorDef{Parts: []PartDef{{Element: "a", Class: "b"}}}},
		{"empty part", SelectorDef{Parts: []PartDef{{}}}},
		{"bad nested", SelectorDef{
			Left:       &SelectorDef{Parts: []PartDef{{Element: "a"}, {Element: "b"}}},
			Combinator: &comb,
			Right:      &SelectorDef{Parts: []PartDef{{Element: "c"}}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if sel, err := tt.def.Selector(); err == nil {
				t.Errorf("expected error, got selector %q", sel)
			}
		})
	}
}

func TestSelectorDef_Descendant(t *testing.T) {
	comb := " "
	def := SelectorDef{
		Left:       &SelectorDef{Parts: []PartDef{{Element: "ul"}}},
		Combinator: &comb,
		Right:      &SelectorDef{Parts: []PartDef{{Element: "li"}, {PseudoElement: "marker"}}},
	}
	sel, err := def.Selector()
	if err != nil {
		t.Fatalf("Selector() error = %v", err)
	}
	if got := selector.Stringify(sel); got != "ul   li::marker" {
		t.Errorf("Stringify() = %q", got)
	}
}
