/*
Package clone produces disconnected, self-styled copies of element subtrees.

The clone of a subtree will be rendered in an isolated scope with no access
to the host document's stylesheets, so the presentation of every node has to
travel with the node itself: Clone walks the source and the structural copy
in lockstep and writes explicit declarations, derived from captured computed
style, onto each copied node.

Three different treatments apply during materialization. The subtree root is
the anchor the isolation scope sizes around and gets its layout normalized
aggressively. Nodes classified as "tag-like" (short inline badge/chip/label
nodes, see IsTagLike) are protected from width forcing, which would visibly
break their layout. All remaining nodes get element-class specific width
rules plus a copy-through of their visual properties.

No operation in this package returns an error: a node whose style cannot be
resolved, or whose clone/source pairing is misaligned, is skipped and the
walk continues. The result degrades to less fidelity, never to a failure.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package clone

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'focal.clone'
func tracer() tracing.Trace {
	return tracing.Select("focal.clone")
}
