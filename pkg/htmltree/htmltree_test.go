package htmltree

import (
	"errors"
	"strings"
	"testing"

	pderrors "github.com/matzehuels/pydocs/pkg/errors"
)

const page = `<!DOCTYPE html>
<html><body>
<div class="sphinxsidebarwrapper">
  <ul><li>Docs by version</li></ul>
  <ul id="versions">
    <li><a href="https://docs.python.org/3.14/">Python 3.14 (in development)</a></li>
    <li><a href="https://docs.python.org/3.13/">Python 3.13 (stable)</a></li>
    <li><a href="https://www.python.org/doc/versions/">All versions</a></li>
  </ul>
</div>
<dl class="rfc2822 field-list simple">
  <dt class="field-odd">Author<span class="colon">:</span></dt>
  <dd class="field-odd">Guido</dd>
  <dt class="field-even">Status<span class="colon">:</span></dt>
  <dd class="field-even"><abbr title="Accepted">Final</abbr></dd>
</dl>
</body></html>`

func TestFind(t *testing.T) {
	root := MustParse(page)

	tests := []struct {
		name   string
		tag    string
		attrs  Attrs
		wantID string
		found  bool
	}{
		{"by class", "div", Attrs{"class": "sphinxsidebarwrapper"}, "", true},
		{"class token", "dl", Attrs{"class": "field-list"}, "", true},
		{"whole class attribute", "dl", Attrs{"class": "rfc2822 field-list simple"}, "", true},
		{"by id", "ul", Attrs{"id": "versions"}, "versions", true},
		{"empty filter takes first", "ul", nil, "", true},
		{"missing tag", "table", nil, "", false},
		{"attr value mismatch", "ul", Attrs{"id": "other"}, "", false},
		{"id is not tokenized", "ul", Attrs{"id": "vers"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Find(root, tt.tag, tt.attrs)
			if !tt.found {
				var tnf *TagNotFoundError
				if !errors.As(err, &tnf) {
					t.Fatalf("Find() error = %v, want *TagNotFoundError", err)
				}
				if tnf.Tag != tt.tag {
					t.Errorf("error tag = %q, want %q", tnf.Tag, tt.tag)
				}
				if !pderrors.Is(err, pderrors.ErrCodeTagNotFound) {
					t.Error("TagNotFoundError should carry TAG_NOT_FOUND")
				}
				return
			}
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if n.Tag() != tt.tag {
				t.Errorf("Tag() = %q, want %q", n.Tag(), tt.tag)
			}
			if tt.wantID != "" {
				if id, _ := n.Attr("id"); id != tt.wantID {
					t.Errorf("id = %q, want %q", id, tt.wantID)
				}
			}
		})
	}
}

func TestFindFirstDocumentOrder(t *testing.T) {
	root := MustParse(page)
	a := root.FindFirst(Match("a", nil))
	if a == nil {
		t.Fatal("no link found")
	}
	if href, _ := a.Attr("href"); href != "https://docs.python.org/3.14/" {
		t.Errorf("first link = %q", href)
	}

	ul := root.FindFirst(func(n *Node) bool {
		return n.Tag() == "ul" && strings.Contains(n.Text(), "All versions")
	})
	if ul == nil {
		t.Fatal("version list not found")
	}
	if got := len(ul.FindEvery("a", nil)); got != 3 {
		t.Errorf("links = %d, want 3", got)
	}
}

func TestNodeAccessors(t *testing.T) {
	root := MustParse(page)
	ul, err := root.Find("ul", Attrs{"id": "versions"})
	if err != nil {
		t.Fatal(err)
	}

	if got := len(ul.Children()); got != 3 {
		t.Errorf("Children() = %d, want 3", got)
	}
	if got := ul.Attrs(); got["id"] != "versions" || len(got) != 1 {
		t.Errorf("Attrs() = %v", got)
	}
	if _, ok := ul.Attr("class"); ok {
		t.Error("Attr(class) should be absent")
	}
	if root.Tag() != "" {
		t.Errorf("root Tag() = %q, want empty", root.Tag())
	}
}

func TestNextSiblingTag(t *testing.T) {
	root := MustParse(page)
	dt := root.FindFirst(func(n *Node) bool {
		return n.Tag() == "dt" && n.Text() == "Status:"
	})
	if dt == nil {
		t.Fatal("Status dt not found")
	}
	dd := dt.NextSiblingTag("dd")
	if dd == nil {
		t.Fatal("no dd sibling")
	}
	if dd.Text() != "Final" {
		t.Errorf("dd text = %q, want %q", dd.Text(), "Final")
	}
	if dd.NextSiblingTag("dd") != nil {
		t.Error("last dd should have no dd sibling")
	}
}

func TestFindFirstIsPure(t *testing.T) {
	root := MustParse(page)
	before := root.Text()
	for i := 0; i < 3; i++ {
		root.FindFirst(func(n *Node) bool { return n.Tag() == "dd" })
	}
	if root.Text() != before {
		t.Error("FindFirst modified the tree")
	}
}

func TestAttrsString(t *testing.T) {
	got := Attrs{"role": "main", "class": "x"}.String()
	if got != `{class="x" role="main"}` {
		t.Errorf("String() = %s", got)
	}
	if (Attrs{}).String() != "{}" {
		t.Error("empty Attrs should render as {}")
	}
}
