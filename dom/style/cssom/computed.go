package cssom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/focal/dom/style"
	"golang.org/x/net/html"
)

// Computed builds a computed-style query from a document's stylesheets.
// The returned query resolves, for one element node, the post-cascade value
// of each property: matching rules are folded by importance, selector
// specificity and source order, the node's inline style attribute wins over
// stylesheet rules, and a small set of inherited properties falls through
// to the nearest ancestor that sets them.
//
// This is not a browser: media queries, pseudo classes requiring layout
// state, and relative-value resolution (em, %) are out of scope. Embedders
// sitting next to a real rendering engine will pass their own style.Query
// instead; this one serves headless use and the test suite.
func Computed(sheets []StyleSheet) style.Query {
	cq := &computedQuery{memo: make(map[*html.Node]*computedStyles)}
	order := 0
	for _, sheet := range sheets {
		if sheet == nil {
			continue
		}
		for _, rule := range sheet.Rules() {
			if rule.IsFontFace() || strings.HasPrefix(strings.TrimSpace(rule.Selector()), "@") {
				continue
			}
			for _, selText := range strings.Split(rule.Selector(), ",") {
				sel, err := cascadia.Parse(strings.TrimSpace(selText))
				if err != nil {
					tracer().Debugf("skipping unparsable selector %q", selText)
					continue
				}
				cq.rules = append(cq.rules, matchRule{sel: sel, rule: rule, order: order})
				order++
			}
		}
	}
	return cq.styles
}

type matchRule struct {
	sel   cascadia.Sel
	rule  Rule
	order int
}

type computedQuery struct {
	rules []matchRule
	memo  map[*html.Node]*computedStyles
}

// propState tracks the currently winning declaration for one property.
type propState struct {
	val       style.Property
	spec      cascadia.Specificity
	order     int
	important bool
}

func (cq *computedQuery) styles(n *html.Node) style.Styles {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	if cs, ok := cq.memo[n]; ok {
		return cs
	}
	store := make(map[string]propState)
	for _, mr := range cq.rules {
		if !mr.sel.Match(n) {
			continue
		}
		spec := mr.sel.Specificity()
		for _, key := range mr.rule.Properties() {
			apply(store, key, mr.rule.Value(key), spec, mr.order, mr.rule.IsImportant(key))
		}
	}
	applyInline(store, n)
	cs := &computedStyles{cq: cq, node: n, decls: make(map[string]style.Property, len(store))}
	for k, st := range store {
		cs.decls[k] = st.val
	}
	cq.memo[n] = cs
	return cs
}

// inline style wins over any selector-based rule; model that as a
// specificity above anything a selector can produce.
var inlineSpecificity = cascadia.Specificity{1 << 12, 0, 0}

func applyInline(store map[string]propState, n *html.Node) {
	inline := ""
	for _, a := range n.Attr {
		if a.Key == "style" {
			inline = a.Val
			break
		}
	}
	if strings.TrimSpace(inline) == "" {
		return
	}
	decls, err := parser.ParseDeclarations(inline)
	if err != nil {
		tracer().Debugf("skipping unparsable inline style %q", inline)
		return
	}
	for i, d := range decls {
		if d == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(d.Property))
		apply(store, key, style.Property(d.Value), inlineSpecificity, (1<<30)+i, d.Important)
	}
}

func apply(store map[string]propState, key string, val style.Property, spec cascadia.Specificity, order int, important bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || val.IsEmpty() {
		return
	}
	next := propState{val: val, spec: spec, order: order, important: important}
	cur, exists := store[key]
	if !exists {
		store[key] = next
		return
	}
	if cur.important != important {
		if important {
			store[key] = next
		}
		return
	}
	if cur.spec.Less(spec) || (cur.spec == spec && order >= cur.order) {
		store[key] = next
	}
}

// computedStyles is the per-node read view produced by Computed.
type computedStyles struct {
	cq    *computedQuery
	node  *html.Node
	decls map[string]style.Property
}

// Property implements style.Styles, falling through to the parent element
// for inherited properties.
func (cs *computedStyles) Property(key string) style.Property {
	if v, ok := cs.decls[key]; ok {
		return v
	}
	if !isInherited(key) {
		return style.NullStyle
	}
	for p := cs.node.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if ps := cs.cq.styles(p); ps != nil {
			return ps.Property(key)
		}
		break
	}
	return style.NullStyle
}

var _ style.Styles = &computedStyles{}

// isInherited covers the inherited properties this engine copies around.
// The full CSS list is much longer; anything else is treated as
// non-inherited, which at worst loses fidelity, never correctness.
func isInherited(key string) bool {
	switch key {
	case "color", "font-family", "font-size", "font-weight", "font-style",
		"line-height", "letter-spacing", "word-spacing", "text-align",
		"text-transform", "text-indent", "white-space", "word-break",
		"overflow-wrap", "visibility", "list-style-type", "direction":
		return true
	}
	return false
}
