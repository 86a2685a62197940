package selector

import (
	"fmt"
	"strconv"
	"strings"
)

type treeWriter struct {
	w *strings.Builder
}

func (tw treeWriter) line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Dump returns indented tree representation of the selector structure,
// suitable for debugging.
func Dump(s Selector) string {
	tw := treeWriter{w: &strings.Builder{}}
	dump(tw, 0, "", s)
	return tw.w.String()
}

func dump(tw treeWriter, depth int, label string, s Selector) {
	switch v := s.(type) {
	case Simple:
		tw.line(depth, "%scompound %s", label, strconv.Quote(v.String()))
		for _, p := range v.parts {
			tw.line(depth+1, "%s: %s", p.Kind, strconv.Quote(p.Value))
		}
	case *Composite:
		if v == nil {
			tw.line(depth, "%s<nil>", label)
			return
		}
		tw.line(depth, "%scombined %s", label, strconv.Quote(string(v.combinator)))
		dump(tw, depth+1, "left: ", v.left)
		dump(tw, depth+1, "right: ", v.right)
	default:
		tw.line(depth, "%s<nil>", label)
	}
}
