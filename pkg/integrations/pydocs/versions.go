package pydocs

import (
	"context"
	"regexp"
	"strings"

	"github.com/matzehuels/pydocs/pkg/errors"
	"github.com/matzehuels/pydocs/pkg/htmltree"
	"github.com/matzehuels/pydocs/pkg/results"
)

// ErrVersionListNotFound is returned when the sidebar has no list containing
// the "All versions" link.
var ErrVersionListNotFound = errors.New(errors.ErrCodeVersionListNotFound, "Python version list not found")

const versionListMarker = "All versions"

var versionRE = regexp.MustCompile(`Python (?P<version>\d\.\d+) \((?P<status>.*)\)`)

// ParseVersionText splits link text such as "Python 3.13 (stable)" into
// version and status. Text that does not contain the pattern is returned
// whole as the version with an empty status.
func ParseVersionText(text string) (version, status string) {
	m := versionRE.FindStringSubmatch(text)
	if m == nil {
		return text, ""
	}
	return m[1], m[2]
}

// LatestVersions lists the documentation versions from the sidebar of the
// documentation root. Link targets are emitted exactly as written.
func (c *Client) LatestVersions(ctx context.Context) (*results.Set, error) {
	doc, err := c.Document(ctx, c.baseURL)
	if err != nil {
		return nil, err
	}
	sidebar, err := doc.Find("div", htmltree.Attrs{"class": "sphinxsidebarwrapper"})
	if err != nil {
		return nil, err
	}

	list := sidebar.FindFirst(func(n *htmltree.Node) bool {
		return n.Tag() == "ul" && strings.Contains(n.Text(), versionListMarker)
	})
	if list == nil {
		return nil, ErrVersionListNotFound
	}

	set := results.New("Documentation link", "Version", "Status")
	for _, a := range list.FindEvery("a", nil) {
		href, _ := a.Attr("href")
		version, status := ParseVersionText(a.Text())
		if err := set.Add(href, version, status); err != nil {
			return nil, err
		}
	}
	c.Logger.Debug("version list parsed", "versions", set.Len())
	return set, nil
}
