/*
Package assets rewrites deferred image sources on a cloned subtree.

Lazy-loading schemes park the real image source in data attributes and
leave a placeholder in src, relying on host-page scripts to swap them in
when the image scrolls into view. Those scripts never run inside the
isolation scope, so the resolver promotes the deferred attributes to their
eager counterparts up front.

Resolve operates only on the disconnected clone, never on the source tree.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package assets

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/focal/dom"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer will return a tracer. We are tracing to 'focal.assets'
func tracer() tracing.Trace {
	return tracing.Select("focal.assets")
}

// deferredSrcAttrs is the priority list of deferred-source attributes; the
// first one present wins.
var deferredSrcAttrs = []string{"data-src", "data-lazy-src", "data-original", "data-echo"}

// lazyClassTokens are class tokens stripped from resolved images without
// disturbing other classes.
var lazyClassTokens = []string{"lazyload", "lazyloaded", "lazy", "b-lazy"}

var (
	imgSel      = cascadia.MustCompile("img")
	pictureSel  = cascadia.MustCompile("picture source")
	noscriptSel = cascadia.MustCompile("noscript")

	noscriptSrcPattern = regexp.MustCompile(`src=["']([^"']+)["']`)
)

// Resolve rewrites every deferred image source under cloneRoot to an eager
// one: deferred src/srcset/sizes attributes are promoted, placeholder data
// URIs overwritten, the eager-loading hint dropped, and lazy-loading class
// tokens stripped. <source> elements inside <picture> groups are promoted
// too, and <noscript> fallbacks immediately following an image recover a
// last-resort source.
func Resolve(cloneRoot *html.Node) {
	if cloneRoot == nil {
		return
	}
	resolved := 0
	for _, img := range matchAllIncludingRoot(cloneRoot, imgSel) {
		if resolveImage(img) {
			resolved++
		}
	}
	for _, source := range pictureSel.MatchAll(cloneRoot) {
		if v := dom.Attr(source, "data-srcset"); v != "" {
			dom.SetAttr(source, "srcset", v)
		}
	}
	for _, noscript := range noscriptSel.MatchAll(cloneRoot) {
		recoverNoscriptFallback(noscript)
	}
	if resolved > 0 {
		tracer().Debugf("resolved %d deferred image sources", resolved)
	}
}

func matchAllIncludingRoot(root *html.Node, sel cascadia.Selector) []*html.Node {
	nodes := sel.MatchAll(root)
	if sel.Match(root) {
		nodes = append([]*html.Node{root}, nodes...)
	}
	return nodes
}

func resolveImage(img *html.Node) bool {
	deferred := ""
	for _, attr := range deferredSrcAttrs {
		if v := dom.Attr(img, attr); v != "" {
			deferred = v
			break
		}
	}
	touched := false
	if deferred != "" && dom.Attr(img, "src") == "" {
		dom.SetAttr(img, "src", deferred)
		touched = true
	}
	if v := dom.Attr(img, "data-srcset"); v != "" {
		dom.SetAttr(img, "srcset", v)
		touched = true
	}
	if v := dom.Attr(img, "data-sizes"); v != "" {
		dom.SetAttr(img, "sizes", v)
		touched = true
	}
	// a data: URI src is a placeholder; the deferred source is the real one
	if deferred != "" && strings.HasPrefix(dom.Attr(img, "src"), "data:") {
		dom.SetAttr(img, "src", deferred)
		touched = true
	}
	if dom.HasAttr(img, "loading") {
		dom.RemoveAttr(img, "loading")
		touched = true
	}
	dom.RemoveClassTokens(img, lazyClassTokens...)
	return touched
}

// recoverNoscriptFallback parses the first src="..." occurrence out of a
// noscript block immediately preceded by an image and re-targets that
// image. The noscript content is raw text in the parse tree, hence the
// textual extraction.
func recoverNoscriptFallback(noscript *html.Node) {
	img := dom.PrevElement(noscript)
	if img == nil || img.Data != "img" {
		return
	}
	raw := dom.TextContent(noscript)
	m := noscriptSrcPattern.FindStringSubmatch(raw)
	if m == nil {
		return
	}
	dom.SetAttr(img, "src", m[1])
}
