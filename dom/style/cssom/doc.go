/*
Package cssom provides access to CSS stylesheets for the snapshot engine.

In order to de-couple stylesheet implementations from the engine, access
goes through small interfaces (StyleSheet, Rule). The package ships one
concrete implementation backed by the douceur CSS parser, together with
helpers the isolated-context builder needs: extraction of embedded <style>
elements, collection of custom-property declarations from root-level rules,
and collection of @font-face rule texts.

Having this interface imposes a performance hit. However, this
implementation will never trade modularity and clarity for performance.
Clients in need of a production grade browser engine (where performance is
key) should opt for headless versions of the main browser projects.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'focal.cssom'
func tracer() tracing.Trace {
	return tracing.Select("focal.cssom")
}
