package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Warning describes a problem found in generated CSS.
type Warning struct {
	Selector string // selector text of the offending rule, if known
	Message  string
}

func (w Warning) String() string {
	if w.Selector == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Selector, w.Message)
}

// Linter re-tokenizes CSS text and reports constructs which would be dropped
// or misread by a browser. It never reconstructs selectors from text.
type Linter struct {
	log *zap.Logger
}

// NewLinter creates a new CSS linter.
func NewLinter(log *zap.Logger) *Linter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Linter{log: log.Named("css-lint")}
}

// Lint checks CSS text. The optional source parameter identifies what's being
// checked (for debug logging).
func (l *Linter) Lint(data []byte, source ...string) []Warning {
	if len(source) > 0 && source[0] != "" {
		l.log.Debug("Linting CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	var (
		warnings []Warning
		depth    int
		current  string
		decls    int
	)

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, text := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				warnings = append(warnings, Warning{Selector: current, Message: describeError(err)})
				l.log.Debug("CSS grammar error", zap.String("selector", current), zap.Error(err))
			}
			if depth > 0 {
				warnings = append(warnings, Warning{Selector: current, Message: "unterminated block"})
			}
			return warnings

		case css.BeginAtRuleGrammar:
			depth++

		case css.EndAtRuleGrammar:
			depth--

		case css.BeginRulesetGrammar:
			depth++
			current = selectorText(text, parser.Values())
			decls = 0

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			decls++
			if len(parser.Values()) == 0 {
				warnings = append(warnings, Warning{Selector: current, Message: fmt.Sprintf("property %q has no value", string(text))})
			}

		case css.EndRulesetGrammar:
			depth--
			if decls == 0 {
				warnings = append(warnings, Warning{Selector: current, Message: "empty ruleset"})
			}
			current = ""

		case css.QualifiedRuleGrammar:
			// selector followed by comma, the group continues
			current = selectorText(text, parser.Values())

		case css.TokenGrammar:
			warnings = append(warnings, Warning{Selector: current, Message: fmt.Sprintf("stray token %q", string(text))})
		}
	}
}

func selectorText(data []byte, values []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}
	return strings.Trim(sb.String(), " \t\r\n{,")
}

func describeError(err error) string {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return fmt.Sprintf("%s (line %d, column %d)", perr.Message, perr.Line, perr.Column)
	}
	return err.Error()
}
