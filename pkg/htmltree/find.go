package htmltree

import "strings"

// Find returns the first descendant of node, in document order, with the
// given tag whose attributes satisfy attrs. An empty tag matches any element.
//
// For "class" a filter value matches either the whole attribute or any one
// whitespace-separated class.
func Find(node *Node, tag string, attrs Attrs) (*Node, error) {
	if found := node.FindFirst(Match(tag, attrs)); found != nil {
		return found, nil
	}
	return nil, &TagNotFoundError{Tag: tag, Attrs: attrs}
}

// Match returns a predicate for tag and attrs, usable with FindFirst and FindAll.
func Match(tag string, attrs Attrs) func(*Node) bool {
	return func(n *Node) bool {
		if tag != "" && n.Tag() != tag {
			return false
		}
		for k, want := range attrs {
			got, ok := n.Attr(k)
			if !ok || !attrMatches(k, got, want) {
				return false
			}
		}
		return true
	}
}

func attrMatches(key, got, want string) bool {
	if got == want {
		return true
	}
	if key != "class" {
		return false
	}
	for _, c := range strings.Fields(got) {
		if c == want {
			return true
		}
	}
	return false
}
