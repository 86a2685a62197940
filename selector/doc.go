// Package selector builds CSS selectors and renders them to text.
//
// A compound selector is assembled by a chain of calls started from one of the
// package level entry points:
//
//	sel, err := selector.Element("div").ID("main").Class("container").Build()
//
// Every entry point allocates a new builder, so chains never share state.
// Parts must be added in the order element, id, class, attribute,
// pseudo-class, pseudo-element, and element and pseudo-element may occur only
// once. The first violation is remembered by the builder, the parts collected
// so far are dropped and the error is returned by Build (or Err).
//
// Built selectors are joined with Combine:
//
//	c, err := selector.Combine(a, "+", b) // "a + b"
//
// Supported combinators are descendant (" "), child (">"), next sibling ("+")
// and subsequent sibling ("~"). Every combinator is rendered with a single
// space on each side, so descendant renders as three spaces.
package selector
