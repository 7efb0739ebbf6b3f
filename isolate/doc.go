/*
Package isolate rebuilds a style context inside an isolated rendering scope.

The isolation scope (a shadow root in browser deployments, modeled here as a
detached element) sees none of the host page's style rules. This package
reconstructs what the clone needs: a base block parameterized by theme
colors, a re-export of root-level custom properties, verbatim copies of
every accessible same-scope rule collection, a normalization block, and
font-face declarations deduplicated against a marker block in the host
document's head.

Rule collections that cannot be read in-process (cross-scope restrictions)
are fetched asynchronously through a privileged proxy, each request with an
independent timeout. Build's completion callback fires exactly once per
session, after all outstanding fetches have settled, carrying the texts that
were successfully fetched.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package isolate

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'focal.isolate'
func tracer() tracing.Trace {
	return tracing.Select("focal.isolate")
}
