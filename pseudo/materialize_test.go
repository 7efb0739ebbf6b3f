package pseudo_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/focal/dom"
	"github.com/npillmayer/focal/dom/style"
	"github.com/npillmayer/focal/pseudo"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func fragment(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + s + "</body></html>"))
	if err != nil {
		t.Fatalf("cannot parse test fragment: %v", err)
	}
	var body *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			find(ch)
		}
	}
	find(doc)
	return body
}

// queryFor serves generated-content styles per (tag, position).
func queryFor(m map[string]map[string]string) pseudo.Query {
	return func(n *html.Node, pos pseudo.Position) style.Styles {
		decls, ok := m[n.Data+":"+pos.String()]
		if !ok {
			return nil
		}
		return style.MapFrom(decls)
	}
}

func wrappers(n *html.Node) []*html.Node {
	var found []*html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if dom.HasAttr(n, pseudo.PseudoAttr) {
			found = append(found, n)
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			find(ch)
		}
	}
	find(n)
	return found
}

func TestMaterializeBeforeAndAfter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "focal.pseudo")
	defer teardown()
	//
	src := fragment(t, `<blockquote>wisdom</blockquote>`)
	srcRoot := dom.ElementChildren(src)[0]
	clone := dom.CloneSubtree(srcRoot)
	q := queryFor(map[string]map[string]string{
		"blockquote:before": {"content": `"“"`, "color": "gray"},
		"blockquote:after":  {"content": `"”"`},
	})
	pseudo.Materialize(srcRoot, clone, q)
	ws := wrappers(clone)
	if len(ws) != 2 {
		t.Fatalf("expected 2 wrappers, have %d", len(ws))
	}
	if clone.FirstChild != ws[0] {
		t.Error("before-wrapper must be the first child")
	}
	if clone.LastChild != ws[1] {
		t.Error("after-wrapper must be the last child")
	}
	if dom.Attr(ws[0], pseudo.PseudoAttr) != "before" {
		t.Errorf("expected position marker 'before', have %q", dom.Attr(ws[0], pseudo.PseudoAttr))
	}
	if dom.TextContent(ws[0]) != "“" {
		t.Errorf("expected opening quote in wrapper, have %q", dom.TextContent(ws[0]))
	}
	if dom.Attr(ws[0], "aria-hidden") != "true" {
		t.Error("wrappers must be hidden from assistive technology")
	}
	if !strings.Contains(dom.Attr(ws[0], "style"), "color: gray") {
		t.Errorf("wrapper should carry allow-listed visual style, have %q", dom.Attr(ws[0], "style"))
	}
	if len(wrappers(srcRoot)) != 0 {
		t.Error("source tree must not be modified")
	}
}

func TestMaterializeSkipsInvisibleContent(t *testing.T) {
	src := fragment(t, `<p>text</p>`)
	srcRoot := dom.ElementChildren(src)[0]
	clone := dom.CloneSubtree(srcRoot)
	q := queryFor(map[string]map[string]string{
		"p:before": {"content": `"x"`, "display": "none"},
		"p:after":  {"content": "none"},
	})
	pseudo.Materialize(srcRoot, clone, q)
	if len(wrappers(clone)) != 0 {
		t.Error("display:none and content:none positions must not materialize")
	}
}

func TestMaterializeImageContent(t *testing.T) {
	src := fragment(t, `<h2>title</h2>`)
	srcRoot := dom.ElementChildren(src)[0]
	clone := dom.CloneSubtree(srcRoot)
	q := queryFor(map[string]map[string]string{
		"h2:before": {"content": `url("icons/star.svg")`},
	})
	pseudo.Materialize(srcRoot, clone, q)
	ws := wrappers(clone)
	if len(ws) != 1 {
		t.Fatalf("expected 1 wrapper, have %d", len(ws))
	}
	imgs := dom.ElementChildren(ws[0])
	if len(imgs) != 1 || imgs[0].Data != "img" {
		t.Fatal("image content should materialize as an img child")
	}
	if dom.Attr(imgs[0], "src") != "icons/star.svg" {
		t.Errorf("expected unwrapped URL as src, have %q", dom.Attr(imgs[0], "src"))
	}
}

func TestMaterializeKeepsChildAlignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "focal.pseudo")
	defer teardown()
	//
	src := fragment(t, `<div><p>one</p><p>two</p></div>`)
	srcRoot := dom.ElementChildren(src)[0]
	clone := dom.CloneSubtree(srcRoot)
	// a before-wrapper on the div shifts its child list; paragraph
	// positions must still be found
	q := queryFor(map[string]map[string]string{
		"div:before": {"content": `"*"`},
		"p:after":    {"content": `"¶"`},
	})
	pseudo.Materialize(srcRoot, clone, q)
	ws := wrappers(clone)
	if len(ws) != 3 {
		t.Fatalf("expected 3 wrappers, have %d", len(ws))
	}
	for _, p := range dom.ElementChildren(clone) {
		if p.Data != "p" {
			continue
		}
		if p.LastChild == nil || !dom.HasAttr(p.LastChild, pseudo.PseudoAttr) {
			t.Errorf("paragraph %q misses its after-wrapper", dom.VisibleText(p))
		}
	}
}
