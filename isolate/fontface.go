package isolate

import (
	"strings"

	"github.com/npillmayer/focal/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FontMarkerAttr labels the single marker block in the host document's
// head that records every font-face rule injected so far.
const FontMarkerAttr = "data-focal-fonts"

// InjectFontFaces injects font-face rule texts into the scope, deduplicated
// against the host marker block. Texts already recorded in the marker are
// dropped; the rest is appended, newline-joined, both to a new block inside
// the scope and to the marker itself (created on first use).
//
// A font resource must be requested from the top-level browsing context,
// not only from inside the isolation scope, for the scope to be able to
// use it once loaded — hence the double bookkeeping.
//
// Deduplication is substring containment against the accumulated marker
// text, not semantic rule equality: two syntactically different rules for
// the same font family count as distinct.
func (sc *Scope) InjectFontFaces(texts []string) {
	if len(texts) == 0 {
		return
	}
	marker := sc.fontMarker()
	recorded := dom.TextContent(marker)
	var fresh []string
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" || strings.Contains(recorded, t) {
			continue
		}
		// also guard against duplicates within this batch
		recorded += "\n" + t
		fresh = append(fresh, t)
	}
	if len(fresh) == 0 {
		return
	}
	joined := strings.Join(fresh, "\n")
	sc.inject("font-faces", joined)
	appendText(marker, joined)
	tracer().Debugf("injected %d font-face rules", len(fresh))
}

// fontMarker finds or creates the host marker block. Without a host head
// the marker lives in the scope itself, which keeps dedup working locally.
func (sc *Scope) fontMarker() *html.Node {
	parent := sc.HostHead
	if parent == nil {
		parent = sc.Root
	}
	for ch := parent.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom == atom.Style && dom.HasAttr(ch, FontMarkerAttr) {
			return ch
		}
	}
	marker := &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style"}
	dom.SetAttr(marker, FontMarkerAttr, "1")
	parent.AppendChild(marker)
	return marker
}

func appendText(n *html.Node, text string) {
	if n.LastChild != nil && n.LastChild.Type == html.TextNode {
		n.LastChild.Data += "\n" + text
		return
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
