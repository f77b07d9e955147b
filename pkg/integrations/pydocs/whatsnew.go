package pydocs

import (
	"context"
	"strings"

	"github.com/matzehuels/pydocs/pkg/htmltree"
	"github.com/matzehuels/pydocs/pkg/integrations"
	"github.com/matzehuels/pydocs/pkg/results"
)

// WhatsNew lists the "What's New in Python" articles with their titles and
// editor/author lines.
//
// The index page and its table of contents are required; a failure there
// aborts the run. Per-article fetch failures and missing elements are logged
// after the loop and the article is skipped.
func (c *Client) WhatsNew(ctx context.Context) (*results.Set, error) {
	indexURL, err := integrations.ResolveURL(c.baseURL, "whatsnew/")
	if err != nil {
		return nil, err
	}
	doc, err := c.Document(ctx, indexURL)
	if err != nil {
		return nil, err
	}
	section, err := doc.Find("section", htmltree.Attrs{"id": "what-s-new-in-python"})
	if err != nil {
		return nil, err
	}
	toc, err := section.Find("div", htmltree.Attrs{"class": "toctree-wrapper"})
	if err != nil {
		return nil, err
	}
	items := toc.FindEvery("li", htmltree.Attrs{"class": "toctree-l1"})

	set := results.New("Article link", "Title", "Editor, Author")
	var failures integrations.Failures

	c.Progress.Start("whats-new", len(items))
	defer c.Progress.Finish()

	for _, li := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, item, err := c.article(ctx, indexURL, li)
		c.Progress.Step()
		if err != nil {
			if !integrations.Skippable(err) {
				return nil, err
			}
			failures.Record(item, err)
			continue
		}
		if err := set.Add(row...); err != nil {
			return nil, err
		}
	}

	c.Report(&failures)
	return set, nil
}

// article returns the row for one table-of-contents entry and the URL used
// to identify it in failure logs.
func (c *Client) article(ctx context.Context, indexURL string, li *htmltree.Node) ([]string, string, error) {
	a, err := li.Find("a", nil)
	if err != nil {
		return nil, indexURL, err
	}
	href, _ := a.Attr("href")
	link, err := integrations.ResolveURL(indexURL, href)
	if err != nil {
		return nil, href, err
	}

	page, err := c.Document(ctx, link)
	if err != nil {
		return nil, link, err
	}
	h1, err := page.Find("h1", nil)
	if err != nil {
		return nil, link, err
	}
	dl, err := page.Find("dl", nil)
	if err != nil {
		return nil, link, err
	}

	title := strings.TrimSpace(h1.Text())
	authors := strings.TrimSpace(strings.ReplaceAll(dl.Text(), "\n", " "))
	return []string{link, title, authors}, link, nil
}
