// Package htmltree is a typed, read-only view of a parsed HTML document.
//
// [Parse] builds the tree with goquery on top of golang.org/x/net/html. A
// [Node] exposes tag name, attributes, element children, text content and
// sibling navigation. [Find] locates a required element and reports a
// [*TagNotFoundError] when it is absent; callers never get a silent default.
package htmltree

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/matzehuels/pydocs/pkg/errors"
)

// Attrs is an attribute filter: every key must be present with a matching value.
type Attrs map[string]string

// String renders the filter in a stable order for messages.
func (a Attrs) String() string {
	if len(a) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%q", k, a[k])
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// TagNotFoundError reports a required element that is missing.
type TagNotFoundError struct {
	Tag   string
	Attrs Attrs
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("tag not found: %s %s", e.Tag, e.Attrs)
}

// Code implements errors.Coder.
func (e *TagNotFoundError) Code() errors.Code { return errors.ErrCodeTagNotFound }

// Node is an element (or the document root) in a parsed tree.
type Node struct {
	n *html.Node
}

// Parse reads an HTML document. Input is expected to be UTF-8.
func Parse(r io.Reader) (*Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Node{n: doc.Nodes[0]}, nil
}

// MustParse parses s and panics on error. Intended for tests and fixtures.
func MustParse(s string) *Node {
	n, err := Parse(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return n
}

// Tag returns the lowercase element name, or "" for the document root.
func (n *Node) Tag() string {
	if n.n.Type != html.ElementNode {
		return ""
	}
	return n.n.Data
}

// Attr returns the value of key and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Attrs returns a copy of the element's attributes.
func (n *Node) Attrs() map[string]string {
	out := make(map[string]string, len(n.n.Attr))
	for _, a := range n.n.Attr {
		out[a.Key] = a.Val
	}
	return out
}

// Children returns the element children in document order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Node{n: c})
		}
	}
	return out
}

// Text returns the concatenated text of all descendants.
func (n *Node) Text() string {
	return goquery.NewDocumentFromNode(n.n).Text()
}

// FindFirst returns the first descendant, in document order, for which pred
// holds, or nil.
func (n *Node) FindFirst(pred func(*Node) bool) *Node {
	var found *Node
	n.walk(func(c *Node) bool {
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant for which pred holds, in document order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.walk(func(c *Node) bool {
		if pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// NextSiblingTag returns the next sibling element with the given tag, or nil.
func (n *Node) NextSiblingTag(tag string) *Node {
	for s := n.n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode && s.Data == tag {
			return &Node{n: s}
		}
	}
	return nil
}

// Find returns the first descendant matching tag and attrs.
func (n *Node) Find(tag string, attrs Attrs) (*Node, error) {
	return Find(n, tag, attrs)
}

// FindEvery returns all descendants matching tag and attrs. An empty result
// is not an error.
func (n *Node) FindEvery(tag string, attrs Attrs) []*Node {
	return n.FindAll(Match(tag, attrs))
}

// walk visits element descendants depth-first in document order until visit
// returns false.
func (n *Node) walk(visit func(*Node) bool) {
	var rec func(*html.Node) bool
	rec = func(h *html.Node) bool {
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if !visit(&Node{n: c}) || !rec(c) {
				return false
			}
		}
		return true
	}
	rec(n.n)
}
