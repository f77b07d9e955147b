package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/pydocs/pkg/config"
	"github.com/matzehuels/pydocs/pkg/errors"
	"github.com/matzehuels/pydocs/pkg/htmltree"
	"github.com/matzehuels/pydocs/pkg/httputil"
	"github.com/matzehuels/pydocs/pkg/observability"
)

// fakeFetcher serves pages from memory; unknown URLs are 404 fetch errors.
type fakeFetcher map[string]string

func (f fakeFetcher) Get(_ context.Context, url string) (*httputil.Response, error) {
	body, ok := f[url]
	if !ok {
		return nil, &httputil.FetchError{URL: url, StatusCode: 404, Cause: httputil.ErrBadStatus}
	}
	return &httputil.Response{URL: url, StatusCode: 200, Body: []byte(body)}, nil
}

func (f fakeFetcher) Document(ctx context.Context, url string) (*htmltree.Node, error) {
	resp, err := f.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return htmltree.MustParse(string(resp.Body)), nil
}

const (
	docsRoot = "https://docs.example.org/3/"
	pepsRoot = "https://peps.example.org/"
)

var site = fakeFetcher{
	docsRoot: `<div class="sphinxsidebarwrapper"><ul>
		<li><a href="https://docs.example.org/3.13/">Python 3.13 (stable)</a></li>
		<li><a href="https://docs.example.org/versions/">All versions</a></li>
	</ul></div>`,
	docsRoot + "download.html": `<div role="main"><table class="docutils">
		<tr><td><a href="archives/docs-pdf-a4.zip">A4</a></td></tr>
	</table></div>`,
	docsRoot + "archives/docs-pdf-a4.zip": "zipdata",
	pepsRoot: `<section id="numerical-index"><table>
		<tr><th>PEP</th></tr>
		<tr><td><a href="pep-0008/">8</a></td></tr>
		<tr><td><a href="pep-0009/">9</a></td></tr>
	</table></section>`,
	pepsRoot + "pep-0008/": `<dl><dt>Status:</dt><dd>Final</dd></dl>`,
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.URLs.Docs = docsRoot
	cfg.URLs.PEPs = pepsRoot
	cfg.Paths.BaseDir = t.TempDir()
	return cfg
}

func TestModes(t *testing.T) {
	want := []string{"whats-new", "latest-versions", "download", "pep"}
	if got := Modes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Modes() = %v, want %v", got, want)
	}
	for _, m := range want {
		if _, ok := Lookup(m); !ok {
			t.Errorf("Lookup(%q) failed", m)
		}
	}
}

func TestExecuteUnknownMode(t *testing.T) {
	r := NewRunner(site, testConfig(t), nil)
	_, err := r.Execute(context.Background(), Options{Mode: "changelog"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestExecuteLatestVersionsDefaultOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(site, testConfig(t), nil)
	res, err := r.Execute(context.Background(), Options{Mode: ModeLatestVersions, Stdout: &buf})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := "Documentation link Version Status\n" +
		"https://docs.example.org/3.13/ 3.13 stable\n" +
		"https://docs.example.org/versions/ All versions \n"
	if buf.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", buf.String(), want)
	}
	if res.Stats.Rows != 2 {
		t.Errorf("Rows = %d", res.Stats.Rows)
	}
}

func TestExecutePEPToFile(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	reg := prometheus.NewRegistry()
	hooks := observability.NewPrometheus(reg)

	r := NewRunner(site, cfg, nil)
	r.Hooks = hooks
	res, err := r.Execute(context.Background(), Options{
		Mode:   ModePEP,
		Output: "file",
		Now:    func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := filepath.Join(cfg.ResultsDir(), "pep_2025-01-02_03-04-05.csv")
	if res.OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", res.OutputPath, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Status,Count\nFinal,1\nTotal,1\n" {
		t.Errorf("csv = %q", data)
	}
	if res.Stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Stats.Skipped)
	}

	n, err := testutil.GatherAndCount(reg, "pydocs_extract_runs_total")
	if err != nil || n != 1 {
		t.Errorf("extract run series = %d, err = %v", n, err)
	}
}

func TestExecuteDownloadSkipsSink(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(t)
	r := NewRunner(site, cfg, nil)
	res, err := r.Execute(context.Background(), Options{Mode: ModeDownload, Output: "pretty", Stdout: &buf})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("download should print nothing, got %q", buf.String())
	}
	if res.Set != nil || res.OutputPath != "" {
		t.Errorf("result = %+v", res)
	}
	if !strings.HasPrefix(res.FilePath, cfg.DownloadsDir()) {
		t.Errorf("FilePath = %q, want under %q", res.FilePath, cfg.DownloadsDir())
	}
	if data, err := os.ReadFile(res.FilePath); err != nil || string(data) != "zipdata" {
		t.Errorf("archive = %q, %v", data, err)
	}
}

func TestExecuteWhatsNewStructuralFailure(t *testing.T) {
	r := NewRunner(site, testConfig(t), nil)
	_, err := r.Execute(context.Background(), Options{Mode: ModeWhatsNew})
	if !errors.Is(err, errors.ErrCodeFetchFailed) {
		t.Errorf("error = %v, want FETCH_FAILED", err)
	}
}
