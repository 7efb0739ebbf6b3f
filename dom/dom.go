package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// IsElement is a predicate for element nodes.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// Attr returns the value of an attribute on n, or "" if not present.
// Namespaced attributes are ignored.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr checks for the presence of an attribute on n, regardless of value.
func HasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

// SetAttr sets an attribute on n, replacing an existing value.
func SetAttr(n *html.Node, key, val string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes an attribute from n. Removing a non-existent
// attribute is a no-op.
func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Class returns the value of the class attribute of n.
func Class(n *html.Node) string {
	return Attr(n, "class")
}

// ID returns the value of the id attribute of n.
func ID(n *html.Node) string {
	return Attr(n, "id")
}

// RemoveClassTokens removes the given tokens from the class attribute of n,
// leaving other tokens untouched. An emptied class attribute is dropped.
func RemoveClassTokens(n *html.Node, tokens ...string) {
	cls := Class(n)
	if cls == "" {
		return
	}
	drop := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		drop[t] = true
	}
	var kept []string
	for _, t := range strings.Fields(cls) {
		if !drop[t] {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ElementChildren returns the element child-nodes of n, in document order.
func ElementChildren(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var children []*html.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			children = append(children, ch)
		}
	}
	return children
}

// ChildElementCount returns the number of element child-nodes of n.
func ChildElementCount(n *html.Node) int {
	cnt := 0
	for ch := firstElement(n); ch != nil; ch = nextElement(ch) {
		cnt++
	}
	return cnt
}

func firstElement(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	ch := n.FirstChild
	for ch != nil && ch.Type != html.ElementNode {
		ch = ch.NextSibling
	}
	return ch
}

func nextElement(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	s := n.NextSibling
	for s != nil && s.Type != html.ElementNode {
		s = s.NextSibling
	}
	return s
}

// PrevElement returns the nearest preceding element sibling of n, or nil.
func PrevElement(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	s := n.PrevSibling
	for s != nil && s.Type != html.ElementNode {
		s = s.PrevSibling
	}
	return s
}

// TextContent returns the concatenated text of n and all its descendents.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	collectText(n, &sb)
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		collectText(ch, sb)
	}
}

// VisibleText returns the whitespace-normalized text content of n.
// Consecutive whitespace collapses to a single blank, outer whitespace
// is trimmed.
func VisibleText(n *html.Node) string {
	return strings.Join(strings.Fields(TextContent(n)), " ")
}

// HasVisibleText checks whether n contains any non-whitespace text.
func HasVisibleText(n *html.Node) bool {
	return VisibleText(n) != ""
}
