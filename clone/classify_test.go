package clone

import (
	"strings"
	"testing"

	"github.com/npillmayer/focal/dom/style"
	"golang.org/x/net/html"
)

func TestClassifyStrongSignals(t *testing.T) {
	cases := []struct {
		name  string
		probe Probe
	}{
		{"class vocabulary", Probe{Class: "post-tags", Text: "golang"}},
		{"id vocabulary", Probe{ID: "category-list", Text: "news"}},
		{"hash prefix", Probe{Text: "#news"}},
		{"parent class vocabulary", Probe{ParentClass: "tag-cloud", Text: "science"}},
		{"parent id vocabulary", Probe{ParentID: "labels", Text: "science"}},
	}
	for _, c := range cases {
		if !IsTagLike(c.probe) {
			t.Errorf("%s: expected tag-like classification", c.name)
		}
	}
}

func TestClassifyWeakBundle(t *testing.T) {
	base := Probe{Text: "science", ChildElements: 0}
	if IsTagLike(base) {
		t.Error("no visual signal: must not classify as tag-like")
	}
	withBg := base
	withBg.Background = true
	if !IsTagLike(withBg) {
		t.Error("short text with background: expected tag-like")
	}
	longText := withBg
	longText.Text = strings.Repeat("x", 40)
	if IsTagLike(longText) {
		t.Error("long text disqualifies the weak bundle")
	}
	manyChildren := withBg
	manyChildren.ChildElements = 3
	if IsTagLike(manyChildren) {
		t.Error("multiple child elements disqualify the weak bundle")
	}
	inline := base
	inline.InlineDisplay = true
	if !IsTagLike(inline) {
		t.Error("inline display counts as a visual signal")
	}
	rounded := base
	rounded.RoundedCorners = true
	if !IsTagLike(rounded) {
		t.Error("rounded corners count as a visual signal")
	}
}

func TestClassifyPillWithHashText(t *testing.T) {
	// both the vocabulary and the '#' prefix fire independently
	p := Probe{Class: "tag-pill", Text: "#news"}
	if !IsTagLike(p) {
		t.Fatal("expected tag-like classification")
	}
	if !IsTagLike(Probe{Class: "tag-pill", Text: "news"}) {
		t.Error("vocabulary alone should suffice")
	}
	if !IsTagLike(Probe{Text: "#news"}) {
		t.Error("hash prefix alone should suffice")
	}
}

func TestProbeOf(t *testing.T) {
	parent := &html.Node{Type: html.ElementNode, Data: "div",
		Attr: []html.Attribute{{Key: "class", Val: "tag-list"}}}
	span := &html.Node{Type: html.ElementNode, Data: "span"}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: "  #go  "})
	parent.AppendChild(span)

	styles := style.MapFrom(map[string]string{
		"display":          "inline-block",
		"border-radius":    "8px",
		"background-color": "transparent",
	})
	p := ProbeOf(span, styles)
	if p.Text != "#go" {
		t.Errorf("expected normalized text '#go', have %q", p.Text)
	}
	if p.ParentClass != "tag-list" {
		t.Errorf("expected parent class to be probed, have %q", p.ParentClass)
	}
	if !p.InlineDisplay || !p.RoundedCorners {
		t.Error("expected inline display and rounded corners signals")
	}
	if p.Background {
		t.Error("transparent background must not count as a signal")
	}
	// nil style keeps all visual signals off
	bare := ProbeOf(span, nil)
	if bare.InlineDisplay || bare.RoundedCorners || bare.Background || bare.Border {
		t.Error("nil style should yield a probe without visual signals")
	}
}
