/*
Package domdbg implements helpers to debug a cloned subtree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package domdbg

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/focal/dom"
	"github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

// maxLabelLen bounds the style excerpt shown per node.
const maxLabelLen = 60

// Print renders an ASCII tree of the element subtree under root, each node
// labelled with its tag, class and an excerpt of its explicit style
// declarations. Intended for test logs and debugging sessions.
func Print(root *html.Node) string {
	tree := treeprint.New()
	if root == nil {
		return tree.String()
	}
	tree.SetValue(label(root))
	addChildren(tree, root)
	return tree.String()
}

// Dump writes the tree rendering of root to w.
func Dump(w io.Writer, root *html.Node) error {
	_, err := io.WriteString(w, Print(root))
	return err
}

func addChildren(branch treeprint.Tree, n *html.Node) {
	for _, ch := range dom.ElementChildren(n) {
		if dom.ChildElementCount(ch) == 0 {
			branch.AddNode(label(ch))
			continue
		}
		addChildren(branch.AddBranch(label(ch)), ch)
	}
}

func label(n *html.Node) string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(n.Data)
	if cls := dom.Class(n); cls != "" {
		fmt.Fprintf(&sb, " class=%q", cls)
	}
	sb.WriteString(">")
	if st := dom.Attr(n, "style"); st != "" {
		sb.WriteString(" ")
		sb.WriteString(shortText(st))
	}
	return sb.String()
}

func shortText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > maxLabelLen {
		return string(runes[:maxLabelLen-1]) + "…"
	}
	return s
}
