package pseudo

import (
	"strings"

	"github.com/npillmayer/focal/dom"
	"github.com/npillmayer/focal/dom/style"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PseudoAttr marks materialized wrapper nodes; its value names the
// position ("before" or "after") the wrapper stands in for.
const PseudoAttr = "data-focal-pseudo"

// Position names one of the two generated-content positions of a node.
type Position uint8

const (
	Before Position = iota
	After
)

func (p Position) String() string {
	if p == After {
		return "after"
	}
	return "before"
}

// Query is the capability to read the computed style of a node's
// generated-content position. A nil result means the position has no
// style at all.
type Query func(n *html.Node, pos Position) style.Styles

// wrapperAllowList names the visual properties copied from the generated
// content's computed style onto the wrapper node.
var wrapperAllowList = []string{
	"color", "background-color", "font-family", "font-size", "font-weight",
	"font-style", "margin", "margin-left", "margin-right", "padding",
	"border-radius", "vertical-align", "letter-spacing", "text-transform",
}

// Materialize walks source and clone trees in lockstep and, for each
// aligned element pair including the root pair, inserts real wrapper nodes
// standing in for visible generated content at both positions. Pairs whose
// alignment runs out are skipped; Materialize never fails.
func Materialize(source, clone *html.Node, q Query) {
	if source == nil || clone == nil || q == nil {
		return
	}
	type pair struct{ src, dst *html.Node }
	worklist := []pair{{source, clone}}
	inserted := 0
	for len(worklist) > 0 {
		p := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if materializeAt(p.src, p.dst, Before, q) {
			inserted++
		}
		if materializeAt(p.src, p.dst, After, q) {
			inserted++
		}
		srcCh := dom.ElementChildren(p.src)
		dstCh := elementChildrenSkippingWrappers(p.dst)
		n := len(srcCh)
		if len(dstCh) < n {
			n = len(dstCh)
		}
		for i := n - 1; i >= 0; i-- {
			worklist = append(worklist, pair{srcCh[i], dstCh[i]})
		}
	}
	if inserted > 0 {
		tracer().Debugf("materialized %d generated-content nodes", inserted)
	}
}

// elementChildrenSkippingWrappers keeps the clone-side child indices
// aligned with the source even after wrappers were inserted ahead of the
// walk reaching a node's children.
func elementChildrenSkippingWrappers(n *html.Node) []*html.Node {
	var children []*html.Node
	for _, ch := range dom.ElementChildren(n) {
		if dom.HasAttr(ch, PseudoAttr) {
			continue
		}
		children = append(children, ch)
	}
	return children
}

func materializeAt(src, dst *html.Node, pos Position, q Query) bool {
	styles := q(src, pos)
	if styles == nil {
		return false
	}
	if styles.Property("display").IsNone() {
		return false
	}
	content, ok := ParseContent(styles.Property("content").String())
	if !ok {
		return false
	}
	wrapper := buildWrapper(content, pos, styles)
	if pos == Before {
		dst.InsertBefore(wrapper, dst.FirstChild)
	} else {
		dst.AppendChild(wrapper)
	}
	return true
}

// buildWrapper synthesizes one inert, non-interactive node standing in for
// a generated-content position.
func buildWrapper(content Content, pos Position, styles style.Styles) *html.Node {
	wrapper := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
	}
	dom.SetAttr(wrapper, PseudoAttr, pos.String())
	dom.SetAttr(wrapper, "aria-hidden", "true")

	switch content.Kind {
	case Text:
		if content.Value != "" {
			wrapper.AppendChild(&html.Node{Type: html.TextNode, Data: content.Value})
		}
	case Image:
		img := &html.Node{Type: html.ElementNode, DataAtom: atom.Img, Data: "img"}
		dom.SetAttr(img, "src", content.Value)
		dom.SetAttr(img, "style", "max-width: 100%; height: auto")
		wrapper.AppendChild(img)
	case Counter:
		// true counter-value resolution is out of scope; the wrapper
		// stays an empty placeholder
	}

	var decls []string
	for _, key := range wrapperAllowList {
		if v := styles.Property(key); v.IsMeaningful() {
			decls = append(decls, key+": "+v.String())
		}
	}
	if len(decls) > 0 {
		dom.SetAttr(wrapper, "style", strings.Join(decls, "; "))
	}
	return wrapper
}
