/*
Package pseudo materializes generated before/after content into real nodes.

Generated content exists only in the style system of the host page; a clone
rendered in an isolated scope would silently lose it. This package walks the
source and the clone in lockstep, reads each node's generated-content value
at both positions, parses it into a content descriptor, and inserts an inert
wrapper node standing in for the pseudo element.

The content-value grammar is deliberately small (see ParseContent); what it
does not understand it treats as "no visible content" — the parser never
fails.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pseudo

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'focal.pseudo'
func tracer() tracing.Trace {
	return tracing.Select("focal.pseudo")
}
