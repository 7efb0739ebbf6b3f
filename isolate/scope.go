package isolate

import (
	"github.com/npillmayer/focal/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BlockAttr labels every style block this package injects; its value names
// the block's role (base, custom-properties, same-scope, …).
const BlockAttr = "data-focal-block"

// ContentClass is the class of the container the clone is attached to
// inside the isolation scope; base rules and re-exported custom properties
// address it.
const ContentClass = "focal-content"

// Scope is the isolation scope the style context is built into. Root is
// the scope's root node (stand-in for a shadow root); injected style blocks
// become its children, in injection order. HostHead is the host document's
// <head> element, which carries the font-face marker block — font resources
// must be requested from the top-level browsing context, so their
// declarations live in both places.
type Scope struct {
	Root     *html.Node
	HostHead *html.Node
}

// NewScope creates a detached isolation scope. The host head may be nil;
// font-face marker handling then stays local to the scope.
func NewScope(hostHead *html.Node) *Scope {
	root := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	dom.SetAttr(root, "class", "focal-scope")
	return &Scope{Root: root, HostHead: hostHead}
}

// styleBlock builds a style element labelled with the given role.
func styleBlock(role, text string) *html.Node {
	block := &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style"}
	dom.SetAttr(block, BlockAttr, role)
	block.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return block
}

// inject appends a labelled style block to the scope and returns it.
func (sc *Scope) inject(role, text string) *html.Node {
	block := styleBlock(role, text)
	sc.Root.AppendChild(block)
	return block
}

// replace swaps old for a fresh block with the same role, keeping the
// block's position among its siblings. A nil old appends instead.
func (sc *Scope) replace(old *html.Node, role, text string) *html.Node {
	if old == nil || old.Parent == nil {
		return sc.inject(role, text)
	}
	block := styleBlock(role, text)
	parent := old.Parent
	parent.InsertBefore(block, old)
	parent.RemoveChild(old)
	return block
}

// injectPassiveReference appends a passive external stylesheet reference.
// It is the degraded form of a failed cross-scope fetch: the resource loads
// through normal means if the scope permits it, otherwise it simply does
// not apply.
func (sc *Scope) injectPassiveReference(url string) {
	link := &html.Node{Type: html.ElementNode, DataAtom: atom.Link, Data: "link"}
	dom.SetAttr(link, "rel", "stylesheet")
	dom.SetAttr(link, "href", url)
	sc.Root.AppendChild(link)
}

// Blocks returns the injected style blocks with the given role, in child
// order. Mostly a test helper.
func (sc *Scope) Blocks(role string) []*html.Node {
	var blocks []*html.Node
	for ch := sc.Root.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom == atom.Style && dom.Attr(ch, BlockAttr) == role {
			blocks = append(blocks, ch)
		}
	}
	return blocks
}

// BlockText returns the text of the first block with the given role.
func (sc *Scope) BlockText(role string) string {
	blocks := sc.Blocks(role)
	if len(blocks) == 0 {
		return ""
	}
	return dom.TextContent(blocks[0])
}
