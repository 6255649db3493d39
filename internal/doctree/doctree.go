// Package doctree defines the minimal DOM capabilities the extraction
// heuristics rely on. Any tree-walking library that can answer these queries
// can back the interface; the shipped implementation wraps goquery.
package doctree

import "io"

// Document is a parsed markup tree.
type Document interface {
	// Find returns all elements matching the CSS selector, in document order.
	Find(selector string) []Node
}

// Node is one element of the tree.
type Node interface {
	// Find returns matching descendants in document order.
	Find(selector string) []Node
	// Following returns the nearest following sibling matching the selector,
	// or nil when there is none.
	Following(selector string) Node
	// Parent returns the parent element, or nil at the root.
	Parent() Node
	// Text returns the trimmed text content of the subtree.
	Text() string
	// HTML returns the inner markup of the node, best effort.
	HTML() string
	// Attr returns the value of the named attribute, or "".
	Attr(key string) string
}

// Parse builds a Document from raw HTML.
func Parse(r io.Reader) (Document, error) {
	return parseGoquery(r)
}
