package peps

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/pydocs/pkg/htmltree"
	"github.com/matzehuels/pydocs/pkg/integrations"
	"github.com/matzehuels/pydocs/pkg/results"
)

// Column titles of the tally.
const (
	HeaderStatus = "Status"
	HeaderCount  = "Count"
	TotalLabel   = "Total"
)

// Client extracts data from a PEP index site.
type Client struct {
	*integrations.Client
	indexURL string
}

// NewClient creates a client for the PEP index at indexURL.
func NewClient(base *integrations.Client, indexURL string) *Client {
	return &Client{Client: base, indexURL: indexURL}
}

// StatusTally counts PEPs by status. Rows follow the order in which each
// status was first seen, followed by a Total row.
func (c *Client) StatusTally(ctx context.Context) (*results.Set, error) {
	doc, err := c.Document(ctx, c.indexURL)
	if err != nil {
		return nil, err
	}
	index, err := doc.Find("section", htmltree.Attrs{"id": "numerical-index"})
	if err != nil {
		return nil, err
	}
	rows := index.FindEvery("tr", nil)
	if len(rows) > 0 {
		rows = rows[1:]
	}

	tally := results.NewTally()
	var failures integrations.Failures

	c.Progress.Start("pep", len(rows))
	defer c.Progress.Finish()

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		status, item, err := c.status(ctx, row)
		c.Progress.Step()
		if err != nil {
			if !integrations.Skippable(err) {
				return nil, err
			}
			if item == "" {
				item = fmt.Sprintf("index row %d", i+1)
			}
			failures.Record(item, err)
			continue
		}
		tally.Inc(status)
	}

	c.Report(&failures)
	return tally.Set(HeaderStatus, HeaderCount, TotalLabel)
}

// status reads the Status field of the PEP linked from row. The returned item
// names the PEP page for failure logs, or is empty if the row had no link.
func (c *Client) status(ctx context.Context, row *htmltree.Node) (string, string, error) {
	a, err := row.Find("a", nil)
	if err != nil {
		return "", "", err
	}
	href, _ := a.Attr("href")
	link, err := integrations.ResolveURL(c.indexURL, href)
	if err != nil {
		return "", href, err
	}

	page, err := c.Document(ctx, link)
	if err != nil {
		return "", link, err
	}
	dl, err := page.Find("dl", nil)
	if err != nil {
		return "", link, err
	}
	dt := dl.FindFirst(func(n *htmltree.Node) bool {
		return n.Tag() == "dt" && strings.TrimSpace(n.Text()) == "Status:"
	})
	if dt == nil {
		return "", link, &htmltree.TagNotFoundError{Tag: "dt", Attrs: htmltree.Attrs{"text": "Status:"}}
	}
	dd := dt.NextSiblingTag("dd")
	if dd == nil {
		return "", link, &htmltree.TagNotFoundError{Tag: "dd"}
	}
	return strings.TrimSpace(dd.Text()), link, nil
}
