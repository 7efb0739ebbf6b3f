package isolate_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/npillmayer/focal/dom"
	"github.com/npillmayer/focal/dom/style/cssom"
	"github.com/npillmayer/focal/isolate"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func mustParse(t *testing.T, text string) *cssom.CSSStyles {
	t.Helper()
	sheet, err := cssom.Parse(text)
	if err != nil {
		t.Fatalf("cannot parse test stylesheet: %v", err)
	}
	return sheet
}

// fakeFetcher serves canned texts per URL; URLs without an entry block
// until the request context runs out.
type fakeFetcher struct {
	texts map[string]string
}

func (f fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	text, ok := f.texts[url]
	if !ok {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return text, nil
}

func blockRoles(sc *isolate.Scope) []string {
	var roles []string
	for ch := sc.Root.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom == atom.Style {
			roles = append(roles, dom.Attr(ch, isolate.BlockAttr))
		}
	}
	return roles
}

func passiveRefs(sc *isolate.Scope) []string {
	var hrefs []string
	for ch := sc.Root.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom == atom.Link {
			hrefs = append(hrefs, dom.Attr(ch, "href"))
		}
	}
	return hrefs
}

func TestBuildSynchronousBlockOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "focal.isolate")
	defer teardown()
	//
	scope := isolate.NewScope(nil)
	cfg := isolate.Config{
		Theme: isolate.Theme{Background: "#fff", Text: "#202124"},
		Sheets: []isolate.Sheet{
			{CSS: mustParse(t, `:root { --accent: #00f; } p { color: var(--accent); }`)},
		},
		InlineTexts: []string{`em { font-style: italic; }`},
	}
	var calls int32
	var got []string
	isolate.Build(scope, cfg, func(fetched []string) {
		atomic.AddInt32(&calls, 1)
		got = fetched
	})
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("done must fire exactly once synchronously, fired %d times", calls)
	}
	if len(got) != 0 {
		t.Errorf("expected empty fetched list without cross-scope URLs, have %v", got)
	}
	want := []string{"base", "custom-properties", "same-scope", "inline-copy", "normalization"}
	roles := blockRoles(scope)
	if len(roles) < len(want) {
		t.Fatalf("expected at least %d blocks, have %v", len(want), roles)
	}
	for i, role := range want {
		if roles[i] != role {
			t.Errorf("block %d: expected role %q, have %q", i, role, roles[i])
		}
	}
	if !strings.Contains(scope.BlockText("custom-properties"), "--accent: #00f") {
		t.Error("root-level custom property missing from the re-export block")
	}
	if !strings.Contains(scope.BlockText("base"), ":host") {
		t.Error("base block misses the :host reset")
	}
	if !strings.Contains(scope.BlockText("normalization"), ":not([data-focal-styled])") {
		t.Error("normalization rules miss the styled-marker guard")
	}
}

func TestBuildWithoutFetcherDegradesToPassiveRefs(t *testing.T) {
	scope := isolate.NewScope(nil)
	cfg := isolate.Config{
		Sheets: []isolate.Sheet{{Href: "https://cdn.example.org/site.css"}},
	}
	var calls int32
	cx := isolate.Build(scope, cfg, func([]string) { atomic.AddInt32(&calls, 1) })
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatal("done must fire synchronously when no fetcher is configured")
	}
	if len(cx.CrossScopeURLs()) != 1 {
		t.Errorf("expected 1 recorded cross-scope URL, have %v", cx.CrossScopeURLs())
	}
	refs := passiveRefs(scope)
	if len(refs) != 1 || refs[0] != "https://cdn.example.org/site.css" {
		t.Errorf("expected a passive reference to the unreadable sheet, have %v", refs)
	}
}

func TestBuildCrossScopeFetchAndTimeout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "focal.isolate")
	defer teardown()
	//
	scope := isolate.NewScope(nil)
	cfg := isolate.Config{
		Sheets: []isolate.Sheet{
			{Href: "https://cdn.example.org/ok.css"},
			{Href: "https://cdn.example.org/slow.css"},
		},
		Fetcher: fakeFetcher{texts: map[string]string{
			"https://cdn.example.org/ok.css": `:root { --late: 1px; } h1 { color: teal; }`,
		}},
		Timeout: 50 * time.Millisecond,
	}
	var calls int32
	donech := make(chan []string, 1)
	isolate.Build(scope, cfg, func(fetched []string) {
		atomic.AddInt32(&calls, 1)
		donech <- fetched
	})
	var fetched []string
	select {
	case fetched = <-donech:
	case <-time.After(2 * time.Second):
		t.Fatal("done did not fire; the collector must settle on timeouts too")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("done fired %d times, want exactly once", calls)
	}
	if len(fetched) != 1 || !strings.Contains(fetched[0], "teal") {
		t.Errorf("expected exactly the one fetched text, have %v", fetched)
	}
	if blocks := scope.Blocks("cross-scope"); len(blocks) != 1 {
		t.Errorf("expected 1 cross-scope block, have %d", len(blocks))
	}
	refs := passiveRefs(scope)
	if len(refs) != 1 || refs[0] != "https://cdn.example.org/slow.css" {
		t.Errorf("timed-out sheet should degrade to a passive reference, have %v", refs)
	}
	// the fetched sheet contributed a root-level variable; the single
	// custom-property block must have been replaced, not duplicated
	if blocks := scope.Blocks("custom-properties"); len(blocks) != 1 {
		t.Fatalf("expected exactly 1 custom-property block, have %d", len(blocks))
	}
	if !strings.Contains(scope.BlockText("custom-properties"), "--late: 1px") {
		t.Error("custom property from the fetched sheet missing after the re-scan")
	}
}

func TestFontFaceDeduplication(t *testing.T) {
	doc, err := html.Parse(strings.NewReader("<html><head></head><body></body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	var head *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.DataAtom == atom.Head {
			head = n
			return
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			find(ch)
		}
	}
	find(doc)

	face := `@font-face { font-family: "Brand"; src: url("brand.woff2"); }`
	other := `@font-face { font-family: "Mono"; src: url("mono.woff2"); }`

	scope := isolate.NewScope(head)
	scope.InjectFontFaces([]string{face, face})
	if blocks := scope.Blocks("font-faces"); len(blocks) != 1 {
		t.Fatalf("expected 1 font-face block, have %d", len(blocks))
	}
	if n := strings.Count(scope.BlockText("font-faces"), "Brand"); n != 1 {
		t.Errorf("intra-batch duplicate not folded, %d occurrences", n)
	}
	// a second scope over the same host head must not repeat the rule
	second := isolate.NewScope(head)
	second.InjectFontFaces([]string{face, other})
	if text := second.BlockText("font-faces"); strings.Contains(text, "Brand") {
		t.Error("rule recorded in the host marker was injected again")
	} else if !strings.Contains(text, "Mono") {
		t.Error("fresh rule missing from the second scope")
	}
}

func TestHTTPFetcherHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := isolate.HTTPFetcher{}.Fetch(ctx, "http://127.0.0.1:0/never.css")
	if err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
	if !errors.Is(err, context.Canceled) && !strings.Contains(err.Error(), "context canceled") {
		t.Logf("fetch failed as expected: %v", err)
	}
}
