package dom

import (
	"golang.org/x/net/html"
)

// CloneSubtree produces a detached structural deep-copy of src.
// The copy carries node types, data and attributes, but no link to the
// original tree: parent and sibling pointers of the returned root are nil.
// Styling information is not interpreted here; the clone is raw structure
// onto which the materializer will write explicit declarations.
func CloneSubtree(src *html.Node) *html.Node {
	if src == nil {
		return nil
	}
	dst := shallowCopy(src)
	for ch := src.FirstChild; ch != nil; ch = ch.NextSibling {
		dst.AppendChild(CloneSubtree(ch))
	}
	return dst
}

func shallowCopy(src *html.Node) *html.Node {
	dst := &html.Node{
		Type:      src.Type,
		DataAtom:  src.DataAtom,
		Data:      src.Data,
		Namespace: src.Namespace,
	}
	if len(src.Attr) > 0 {
		dst.Attr = make([]html.Attribute, len(src.Attr))
		copy(dst.Attr, src.Attr)
	}
	return dst
}

// EstimateNodeCount counts the nodes of the subtree under root, stopping
// at the given cap. Counting is itself a traversal, so the cap bounds the
// cost of the estimation; callers use the estimate to pick a traversal
// budget before the expensive style-capture pass.
func EstimateNodeCount(root *html.Node, cap int) int {
	if root == nil || cap <= 0 {
		return 0
	}
	count := 0
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		if count >= cap {
			tracer().Debugf("node count estimation stopped at cap %d", cap)
			return cap
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			stack = append(stack, ch)
		}
	}
	return count
}
