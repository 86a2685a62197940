// Package css holds stylesheet model used to emit selectors built by package
// selector.
//
// A Stylesheet is a sequence of rules and @media blocks. Every rule carries a
// group of selectors and a set of declarations, declarations are written in
// natural (default) or alphabetical order so the output is deterministic.
//
// # Usage
//
//	var sheet css.Stylesheet
//	sheet.AddRule(css.Rule{
//	    Selectors:  []selector.Selector{sel},
//	    Properties: map[string]css.Value{"color": {Raw: "red"}},
//	})
//	sheet.WriteTo(w)
//
//	warnings := css.NewLinter(logger).Lint(data)
package css
