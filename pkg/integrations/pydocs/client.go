package pydocs

import (
	"github.com/matzehuels/pydocs/pkg/integrations"
)

// Client extracts data from a Python documentation root.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a client for the documentation rooted at baseURL. The
// root should end with a slash so relative pages resolve beneath it.
func NewClient(base *integrations.Client, baseURL string) *Client {
	return &Client{Client: base, baseURL: baseURL}
}
