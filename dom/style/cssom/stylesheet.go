package cssom

import (
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/focal/dom/style"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// Clients of the engine may provide their own implementation; the default
// is the douceur-backed CSSStyles below.
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet
}

// Rule is the type stylesheets consist of.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string            // the prelude / selectors of the rule
	Properties() []string        // property keys, e.g. "margin-top"
	Value(string) style.Property // property value for key, e.g. "15px"
	IsImportant(string) bool     // is property key marked as important?
	IsFontFace() bool            // is this an @font-face declaration?
	Text() string                // the rule re-serialized as CSS text
}

// --- douceur-backed implementation ------------------------------------

// CSSStyles is an adapter for interface StyleSheet, wrapping a stylesheet
// parsed by aymerick/douceur.
type CSSStyles struct {
	css css.Stylesheet
}

// Wrap a douceur css.Stylesheet into CSSStyles.
// The stylesheet is henceforth managed by the wrapper.
func Wrap(sheet *css.Stylesheet) *CSSStyles {
	return &CSSStyles{*sheet}
}

// Parse parses CSS text into a stylesheet.
func Parse(text string) (*CSSStyles, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return Wrap(sheet), nil
}

// Empty checks if this stylesheet contains any rules.
//
// Interface StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return sheet == nil || len(sheet.css.Rules) == 0
}

// AppendRules appends rules from another stylesheet.
//
// Interface StyleSheet
func (sheet *CSSStyles) AppendRules(other StyleSheet) {
	othercss := other.(*CSSStyles)
	sheet.css.Rules = append(sheet.css.Rules, othercss.css.Rules...)
}

// Rules returns all the rules of a stylesheet.
//
// Interface StyleSheet
func (sheet *CSSStyles) Rules() []Rule {
	if sheet == nil {
		return nil
	}
	rules := make([]Rule, len(sheet.css.Rules))
	for i := range sheet.css.Rules {
		rules[i] = douceurRule{sheet.css.Rules[i]}
	}
	return rules
}

var _ StyleSheet = &CSSStyles{}

// douceurRule is an adapter for interface Rule.
type douceurRule struct {
	rule *css.Rule
}

// Selector returns the prelude / selectors of the rule.
func (r douceurRule) Selector() string {
	return r.rule.Prelude
}

// Properties returns the property keys of a rule, e.g. "margin-top".
func (r douceurRule) Properties() []string {
	props := make([]string, 0, len(r.rule.Declarations))
	for _, d := range r.rule.Declarations {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property value for a given key within this rule,
// e.g. "15px".
func (r douceurRule) Value(key string) style.Property {
	for _, d := range r.rule.Declarations {
		if d.Property == key {
			return style.Property(d.Value)
		}
	}
	return style.NullStyle
}

// IsImportant returns true if a style key is marked as important ("!").
func (r douceurRule) IsImportant(key string) bool {
	for _, d := range r.rule.Declarations {
		if d.Property == key {
			return d.Important
		}
	}
	return false
}

// IsFontFace flags @font-face at-rules.
func (r douceurRule) IsFontFace() bool {
	return r.rule.Kind == css.AtRule && r.rule.Name == "@font-face"
}

// Text re-serializes the rule. douceur's output is close to canonical,
// which the font-face deduplication relies on.
func (r douceurRule) Text() string {
	return r.rule.String()
}

var _ Rule = douceurRule{}

// --- <style> element extraction ---------------------------------------

// ExtractStyleElements visits <head> and <body> elements of an HTML parse
// tree and searches for embedded <style>s. It returns the parsed content
// of the style-elements as stylesheets. Unparsable blocks are skipped.
func ExtractStyleElements(htmldoc *html.Node) []*CSSStyles {
	var sheets []*CSSStyles
	for _, text := range StyleElementTexts(htmldoc) {
		sheet, err := Parse(text)
		if err != nil {
			tracer().Infof("skipping unparsable style element: %v", err)
			continue
		}
		sheets = append(sheets, sheet)
	}
	return sheets
}

// StyleElementTexts returns the literal text of every embedded <style>
// element under <head> and <body>, in document order.
func StyleElementTexts(htmldoc *html.Node) []string {
	var texts []string
	for _, parent := range []*html.Node{findElement(atom.Head, htmldoc), findElement(atom.Body, htmldoc)} {
		if parent == nil {
			continue
		}
		for ch := parent.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.DataAtom == atom.Style && ch.FirstChild != nil {
				texts = append(texts, ch.FirstChild.Data)
			}
		}
	}
	return texts
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(a, ch); r != nil {
			return r
		}
	}
	return nil
}
