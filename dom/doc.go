/*
Package dom provides helpers for working with HTML element trees.

Trees are the parse trees of golang.org/x/net/html. This package adds the
small set of operations the snapshot engine needs on top of them: attribute
access, element iteration, visible-text extraction, a detached structural
deep-copy, and a capped node-count estimation used to choose a traversal
budget.

All operations are tolerant of odd tree shapes. A nil node is treated as an
empty tree, a text node as an element without children, and so on; nothing
in this package panics on malformed input.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'focal.dom'
func tracer() tracing.Trace {
	return tracing.Select("focal.dom")
}
