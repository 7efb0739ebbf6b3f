/*
Package style holds the computed-style value model of the snapshot engine.

A computed style is a read view of post-cascade declarations for one element
node (interface Styles). The engine never computes with style values; it
classifies them (meaningfully set or not) and copies them verbatim onto
clone nodes. Package style also contains the session-scoped snapshot cache,
which memoizes computed styles over a depth-bounded capture pass.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'focal.style'
func tracer() tracing.Trace {
	return tracing.Select("focal.style")
}
