package httputil

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/temoto/robotstxt"
)

// robotsGuard caches one robots.txt per host for the life of a Fetcher.
type robotsGuard struct {
	client *http.Client
	agent  string

	mu    sync.Mutex
	hosts map[string]*robotstxt.RobotsData
}

func newRobotsGuard(client *http.Client, agent string) *robotsGuard {
	if agent == "" {
		agent = "*"
	}
	return &robotsGuard{client: client, agent: agent, hosts: make(map[string]*robotstxt.RobotsData)}
}

// check returns a FetchError wrapping ErrDisallowed when rawURL is refused.
// An unreachable robots.txt allows everything.
func (g *robotsGuard) check(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return &FetchError{URL: rawURL, Cause: err}
	}
	data := g.load(ctx, u)
	if data == nil {
		return nil
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if !data.TestAgent(path, g.agent) {
		return &FetchError{URL: rawURL, Cause: ErrDisallowed}
	}
	return nil
}

func (g *robotsGuard) load(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	origin := u.Scheme + "://" + u.Host

	g.mu.Lock()
	defer g.mu.Unlock()
	if data, ok := g.hosts[origin]; ok {
		return data
	}

	var data *robotstxt.RobotsData
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err == nil {
		if resp, err := g.client.Do(req); err == nil {
			data, err = robotstxt.FromResponse(resp)
			resp.Body.Close()
			if err != nil {
				data = nil
			}
		}
	}
	g.hosts[origin] = data
	return data
}
