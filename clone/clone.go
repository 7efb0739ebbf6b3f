package clone

import (
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/focal/dom"
	"github.com/npillmayer/focal/dom/style"
	"golang.org/x/net/html"
)

// StyledAttr marks clone nodes that received explicit declarations. The
// isolated scope's normalization rules carry a :not([data-focal-styled])
// guard so they never double-apply defaults onto materialized nodes.
const StyledAttr = "data-focal-styled"

// Options parameterize one cloning pass.
type Options struct {
	MainContent bool         // caller judged the subtree to be main article content
	MaxDepth    int          // traversal budget; descendants beyond keep structure only
	Cache       *style.Cache // session snapshot cache; may be nil
	Query       style.Query  // live fallback for cache misses; may be nil
}

// Clone produces a disconnected copy of the subtree under root, with
// explicit style overrides baked into every node within the traversal
// budget. The source tree is never modified.
//
// Clone never fails: nodes without resolvable style keep their structure
// and are skipped for styling; a clone/source child-count mismatch skips
// the misaligned pair.
func Clone(root *html.Node, opts Options) *html.Node {
	if root == nil {
		return nil
	}
	copied := dom.CloneSubtree(root)
	if !dom.IsElement(root) {
		return copied
	}

	// explicit worklist of lockstep (source, clone) pairs; keeps the
	// traversal budget a first-class parameter instead of a recursion limit
	type pair struct {
		src, dst *html.Node
		depth    int
	}
	worklist := []pair{{root, copied, 0}}
	styled := 0
	for len(worklist) > 0 {
		p := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if materialize(p.dst, p.src, opts, p.depth == 0) {
			styled++
		}
		if p.depth >= opts.MaxDepth {
			continue
		}
		srcCh := dom.ElementChildren(p.src)
		dstCh := dom.ElementChildren(p.dst)
		n := len(srcCh)
		if len(dstCh) < n {
			n = len(dstCh) // misaligned pairs are skipped, not fatal
		}
		for i := n - 1; i >= 0; i-- {
			worklist = append(worklist, pair{srcCh[i], dstCh[i], p.depth + 1})
		}
	}
	tracer().P("depth", opts.MaxDepth).Debugf("cloned subtree, %d nodes styled", styled)
	return copied
}

// materialize writes the override set for one aligned (clone, source) pair.
// Reports whether any overrides were written.
func materialize(dst, src *html.Node, opts Options, isTopLevel bool) bool {
	styles := style.Resolve(opts.Cache, src, opts.Query)
	if styles == nil {
		return false
	}
	// a node without usable text color is detached or unstyled; skip it
	// (children are still visited by the caller)
	color := styles.Property("color")
	if color.IsEmpty() || color.IsTransparent() {
		return false
	}

	ov := &OverrideSet{}
	tagLike := false
	switch {
	case isTopLevel:
		materializeTopLevel(ov, styles)
	case IsTagLike(ProbeOf(src, styles)):
		tagLike = true
		materializeTagLike(ov, styles)
	default:
		materializeDescendant(ov, dst, src, styles)
	}
	if !tagLike {
		copyDisplay(ov, styles)
	}
	copyVisual(ov, styles, isTopLevel)
	finishTag(ov, dst, styles)
	ov.applyTo(dst)
	dom.SetAttr(dst, StyledAttr, "1")
	return true
}

// materializeTopLevel normalizes the subtree root: it is the anchor the
// isolation scope sizes around and must fill its container exactly,
// whatever layout the host page gave it.
func materializeTopLevel(ov *OverrideSet, styles style.Styles) {
	ov.Structural("width", "100%", true)
	ov.Structural("max-width", "100%", true)
	ov.Structural("box-sizing", "border-box", true)
	ov.Structural("padding-left", "0", true)
	ov.Structural("padding-right", "0", true)
	ov.Structural("margin-left", "0", true)
	ov.Structural("margin-right", "0", true)
	ov.Structural("float", "none", true)
	switch styles.Property("position").String() {
	case "fixed", "absolute":
		ov.Structural("position", "relative", true)
	}
	ov.Structural("column-count", "1", true)
	ov.Structural("transform", "none", true)
}

// materializeTagLike protects badge-like inline nodes from width forcing:
// original display, float and flex basis are preserved verbatim, a
// potentially forced width is cleared, margins travel at normal strength.
func materializeTagLike(ov *OverrideSet, styles style.Styles) {
	if d := styles.Property("display"); !d.IsEmpty() && !d.IsNone() {
		ov.Structural("display", d, true)
	}
	if f := styles.Property("float"); f.IsMeaningful() {
		ov.Structural("float", f, true)
	}
	if fb := styles.Property("flex-basis"); fb.IsMeaningful() {
		ov.Structural("flex-basis", fb, true)
	}
	ov.Structural("width", "auto", true)
	if m := styles.Property("margin"); m.IsMeaningful() {
		ov.Structural("margin", m, false)
	}
	if ws := styles.Property("white-space"); ws.IsMeaningful() {
		ov.Visual("white-space", ws, false)
	}
}

var blockStructuralTags = map[string]bool{
	"div": true, "section": true, "article": true, "main": true,
	"header": true, "footer": true, "nav": true, "aside": true,
}

var mediaTags = map[string]bool{
	"img": true, "video": true, "iframe": true, "canvas": true, "svg": true,
}

var contentVocabulary = []string{
	"content", "article", "post", "entry", "story", "main", "body", "text",
}

var paragraphish = cascadia.MustCompile("p, h1, h2, h3, h4, h5, h6")

// minWideTablePx is the computed width beyond which a table gets demoted
// to a horizontally scrollable block.
const minWideTablePx = 560

// materializeDescendant applies the element-class specific width rules of
// ordinary (non-root, non-tag-like) nodes.
func materializeDescendant(ov *OverrideSet, dst, src *html.Node, styles style.Styles) {
	tag := src.Data
	switch {
	case mediaTags[tag]:
		ov.Structural("max-width", "100%", true)
		ov.Structural("height", "auto", true)
		if parent := src.Parent; parent != nil && dom.ChildElementCount(parent) == 1 {
			ov.Structural("display", "block", false)
			ov.Structural("margin-left", "auto", false)
			ov.Structural("margin-right", "auto", false)
		}
	case tag == "table":
		ov.Structural("width", "100%", true)
		if px, ok := parsePx(styles.Property("width")); ok && px >= minWideTablePx {
			ov.Structural("display", "block", true)
			ov.Structural("overflow-x", "auto", true)
		}
	case tag == "div":
		if looksLikeContentContainer(src) || dom.HasVisibleText(src) {
			ov.Structural("width", "100%", true)
		}
		if matchesContentVocabulary(dom.Class(src)) {
			ov.Structural("max-width", "100%", true)
			ov.Structural("margin-left", "0", false)
			ov.Structural("margin-right", "0", false)
		}
	case blockStructuralTags[tag]:
		if dom.HasVisibleText(src) {
			ov.Structural("width", "100%", true)
		}
	}
}

// looksLikeContentContainer judges a generic div to be a content container:
// it holds paragraphs or headings, or at least three element children.
func looksLikeContentContainer(n *html.Node) bool {
	if dom.ChildElementCount(n) >= 3 {
		return true
	}
	return len(paragraphish.MatchAll(n)) > 0
}

func matchesContentVocabulary(class string) bool {
	if class == "" {
		return false
	}
	class = strings.ToLower(class)
	for _, word := range contentVocabulary {
		if strings.Contains(class, word) {
			return true
		}
	}
	return false
}

func copyDisplay(ov *OverrideSet, styles style.Styles) {
	if ov.Has("display") {
		return
	}
	if d := styles.Property("display"); !d.IsEmpty() && !d.IsNone() {
		ov.Structural("display", d, true)
	}
}

// visualAllowList is the extended set of typography/flex/grid properties
// copied through at normal strength. Width properties and background-*
// are handled separately and excluded here.
var visualAllowList = []string{
	"font-family", "font-size", "font-weight", "font-style", "font-variant",
	"line-height", "letter-spacing", "word-spacing",
	"text-align", "text-transform", "text-decoration", "text-indent",
	"white-space", "word-break", "overflow-wrap", "vertical-align",
	"list-style-type", "border-radius",
	"flex-direction", "flex-wrap", "flex-grow", "flex-shrink",
	"align-items", "align-content", "justify-content",
	"gap", "row-gap", "column-gap", "grid-auto-flow",
}

var backgroundLonghands = []string{
	"background-image", "background-size", "background-position", "background-repeat",
}

// copyVisual copies color, background and the typography allow-list.
func copyVisual(ov *OverrideSet, styles style.Styles, isTopLevel bool) {
	if bg := styles.Property("background-color"); !bg.IsEmpty() && !bg.IsTransparent() {
		ov.Visual("background-color", bg, true)
	}
	if c := styles.Property("color"); !c.IsEmpty() {
		ov.Visual("color", c, true)
	}
	if shorthand := styles.Property("background"); shorthand.IsMeaningful() {
		ov.Visual("background", shorthand, false)
	} else {
		for _, key := range backgroundLonghands {
			if v := styles.Property(key); v.IsMeaningful() {
				ov.Visual(key, v, false)
			}
		}
	}
	for _, key := range visualAllowList {
		if isTopLevel && (key == "width" || key == "max-width") {
			continue
		}
		if ov.Has(key) {
			continue
		}
		if v := styles.Property(key); v.IsMeaningful() {
			ov.Visual(key, v, false)
		}
	}
}

// finishTag applies per-tag finishing touches and sane defaults for the
// isolated scope.
func finishTag(ov *OverrideSet, dst *html.Node, styles style.Styles) {
	switch dst.Data {
	case "a":
		if c := styles.Property("color"); !c.IsEmpty() {
			ov.Visual("color", c, true)
		}
		if td := styles.Property("text-decoration"); td.IsMeaningful() {
			ov.Visual("text-decoration", td, false)
		} else {
			ov.Visual("text-decoration", "underline", false)
		}
	case "img":
		ov.Structural("max-width", "100%", true)
		ov.Structural("height", "auto", true)
		if !ov.Has("display") {
			ov.Structural("display", "inline-block", false)
		}
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !styles.Property("font-weight").IsMeaningful() {
			ov.Visual("font-weight", "bold", false)
		}
		if !hasMargin(styles) {
			ov.Structural("margin", "0.67em 0", false)
		}
		if !styles.Property("line-height").IsMeaningful() {
			ov.Visual("line-height", "1.25", false)
		}
	case "p":
		if !hasMargin(styles) {
			ov.Structural("margin", "1em 0", false)
		}
	case "ul", "ol":
		if !styles.Property("padding-left").IsMeaningful() {
			ov.Structural("padding-left", "2em", false)
		}
		if !hasMargin(styles) {
			ov.Structural("margin", "1em 0", false)
		}
	case "pre", "code":
		if !styles.Property("font-family").IsMeaningful() {
			ov.Visual("font-family", "monospace", false)
		}
		ov.Visual("white-space", "pre-wrap", false)
		if bg := styles.Property("background-color"); bg.IsEmpty() || bg.IsTransparent() {
			ov.Visual("background-color", "rgba(128, 128, 128, 0.1)", false)
		}
		if !styles.Property("padding").IsMeaningful() {
			ov.Structural("padding", "0.5em", false)
		}
		ov.Structural("max-width", "100%", true)
		ov.Structural("overflow-x", "auto", true)
	}
}

func hasMargin(styles style.Styles) bool {
	if styles.Property("margin").IsMeaningful() {
		return true
	}
	return styles.Property("margin-top").IsMeaningful() ||
		styles.Property("margin-bottom").IsMeaningful()
}

// parsePx extracts a pixel count from a computed dimension value.
func parsePx(p style.Property) (float64, bool) {
	v := strings.TrimSpace(p.String())
	if !strings.HasSuffix(v, "px") {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
