package clone

import (
	"strings"

	"github.com/npillmayer/focal/dom"
	"github.com/npillmayer/focal/dom/style"
	"golang.org/x/net/html"
)

// Declaration is one explicit declaration written onto a clone node.
type Declaration struct {
	Property   string
	Value      style.Property
	Important  bool // "important"-strength, non-overridable in the scope
	Structural bool // width/position/float/margin family vs. visual
}

// OverrideSet is the ordered set of declarations for one clone node,
// partitioned into structural and visual declarations. Later declarations
// for the same property replace earlier ones.
type OverrideSet struct {
	decls []Declaration
}

func (ov *OverrideSet) put(d Declaration) {
	if d.Property == "" || d.Value.IsEmpty() {
		return
	}
	for i := range ov.decls {
		if ov.decls[i].Property == d.Property {
			ov.decls[i] = d
			return
		}
	}
	ov.decls = append(ov.decls, d)
}

// Structural records a structural declaration (width/position/float/margin
// family).
func (ov *OverrideSet) Structural(key string, val style.Property, important bool) {
	ov.put(Declaration{Property: key, Value: val, Important: important, Structural: true})
}

// Visual records a visual declaration (color, background, typography,
// decorative).
func (ov *OverrideSet) Visual(key string, val style.Property, important bool) {
	ov.put(Declaration{Property: key, Value: val, Important: important})
}

// Has checks whether a declaration for key has been recorded.
func (ov *OverrideSet) Has(key string) bool {
	for i := range ov.decls {
		if ov.decls[i].Property == key {
			return true
		}
	}
	return false
}

// Len returns the number of recorded declarations.
func (ov *OverrideSet) Len() int {
	return len(ov.decls)
}

// Declarations returns the recorded declarations in insertion order.
func (ov *OverrideSet) Declarations() []Declaration {
	return ov.decls
}

// String serializes the set as inline CSS text.
func (ov *OverrideSet) String() string {
	var sb strings.Builder
	for i, d := range ov.decls {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(d.Property)
		sb.WriteString(": ")
		sb.WriteString(d.Value.String())
		if d.Important {
			sb.WriteString(" !important")
		}
	}
	return sb.String()
}

// applyTo merges the set into the style attribute of a clone node. Any
// pre-existing inline style is kept in front, so the overrides win on
// conflicting properties.
func (ov *OverrideSet) applyTo(n *html.Node) {
	if ov.Len() == 0 {
		return
	}
	text := ov.String()
	if existing := strings.TrimSpace(dom.Attr(n, "style")); existing != "" {
		existing = strings.TrimSuffix(existing, ";")
		text = existing + "; " + text
	}
	dom.SetAttr(n, "style", text)
}
