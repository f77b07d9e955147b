package pydocs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/matzehuels/pydocs/pkg/errors"
	"github.com/matzehuels/pydocs/pkg/htmltree"
	"github.com/matzehuels/pydocs/pkg/integrations"
)

var pdfA4RE = regexp.MustCompile(`.+pdf-a4\.zip$`)

// Download saves the A4 PDF documentation archive into dir, creating dir if
// needed, and returns the written path.
func (c *Client) Download(ctx context.Context, dir string) (string, error) {
	pageURL, err := integrations.ResolveURL(c.baseURL, "download.html")
	if err != nil {
		return "", err
	}
	doc, err := c.Document(ctx, pageURL)
	if err != nil {
		return "", err
	}
	content, err := doc.Find("div", htmltree.Attrs{"role": "main"})
	if err != nil {
		return "", err
	}
	table, err := content.Find("table", htmltree.Attrs{"class": "docutils"})
	if err != nil {
		return "", err
	}
	link := table.FindFirst(func(n *htmltree.Node) bool {
		href, ok := n.Attr("href")
		return n.Tag() == "a" && ok && pdfA4RE.MatchString(href)
	})
	if link == nil {
		return "", &htmltree.TagNotFoundError{Tag: "a", Attrs: htmltree.Attrs{"href": pdfA4RE.String()}}
	}

	href, _ := link.Attr("href")
	archiveURL, err := integrations.ResolveURL(pageURL, href)
	if err != nil {
		return "", err
	}
	name := archiveURL[strings.LastIndex(archiveURL, "/")+1:]
	if err := errors.ValidateFilename(name); err != nil {
		return "", fmt.Errorf("archive url %s: %w", archiveURL, err)
	}

	resp, err := c.Get(ctx, archiveURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create downloads directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, resp.Body, 0644); err != nil {
		return "", fmt.Errorf("write archive: %w", err)
	}

	c.Logger.Info(fmt.Sprintf("Archive was downloaded and saved: %s", path))
	return path, nil
}
