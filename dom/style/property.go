package style

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Property is a raw value for a CSS property. For example, with
//
//     color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient predicates and other helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// IsNone denotes a property explicitly set to `none`.
func (p Property) IsNone() bool {
	return strings.TrimSpace(string(p)) == "none"
}

// IsTransparent checks for the two spellings of a fully transparent value.
func (p Property) IsTransparent() bool {
	v := strings.TrimSpace(strings.ToLower(string(p)))
	return v == "transparent" || v == "rgba(0, 0, 0, 0)" || v == "rgba(0,0,0,0)"
}

// IsMeaningful decides whether a computed value is worth copying onto a
// clone node. Values like `none`, `normal`, `0px`, `auto` or a transparent
// color are the untouched defaults of the style system and carry no
// information the isolated scope could not reproduce on its own.
func (p Property) IsMeaningful() bool {
	v := strings.TrimSpace(strings.ToLower(string(p)))
	switch v {
	case "", "none", "normal", "auto", "initial", "0px", "0":
		return false
	}
	if Property(v).IsTransparent() {
		return false
	}
	return true
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// Styles is a read view of one element node's computed style.
// Implementations are expected to be cheap on repeated lookups; the
// snapshot cache stores values of this type per source node.
type Styles interface {
	Property(key string) Property
}

// Query is the live computed-style capability handed in by the embedding
// collaborator: given an element node it yields the node's current
// computed style, or nil for nodes that have none (detached nodes).
type Query func(n *html.Node) Styles

// --- Property Map -----------------------------------------------------

// PropertyMap is a flat collection of computed style properties. It is the
// canonical Styles implementation: the snapshot cache stores property maps,
// and tests construct them literally. The nil map is a legal, empty Styles.
type PropertyMap struct {
	m map[string]Property
}

// NewPropertyMap returns a new empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{}
}

// MapFrom creates a property map from a plain dictionary. Keys are
// lower-cased; empty values are dropped.
func MapFrom(decls map[string]string) *PropertyMap {
	pmap := NewPropertyMap()
	for k, v := range decls {
		pmap.Add(strings.ToLower(k), Property(v))
	}
	return pmap
}

// Property returns a style property value; NullStyle if unset.
// Part of interface Styles.
func (pmap *PropertyMap) Property(key string) Property {
	if pmap == nil || pmap.m == nil {
		return NullStyle
	}
	return pmap.m[key]
}

// Add adds a property to this property map, e.g.,
//
//    pmap.Add("background-color", "rgb(20, 20, 20)")
//
// Adding an empty value is a no-op.
func (pmap *PropertyMap) Add(key string, value Property) {
	if pmap == nil || value.IsEmpty() {
		return
	}
	if pmap.m == nil {
		pmap.m = make(map[string]Property)
	}
	pmap.m[key] = value
}

// Size returns the number of properties set.
func (pmap *PropertyMap) Size() int {
	if pmap == nil {
		return 0
	}
	return len(pmap.m)
}

// Properties returns all properties of a map, sorted by key for
// reproducible output.
func (pmap *PropertyMap) Properties() []KeyValue {
	if pmap == nil {
		return nil
	}
	r := make([]KeyValue, 0, len(pmap.m))
	for k, v := range pmap.m {
		r = append(r, KeyValue{k, v})
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Key < r[j].Key })
	return r
}

func (pmap *PropertyMap) String() string {
	s := "Property Map = {\n"
	for _, kv := range pmap.Properties() {
		s += "  " + kv.Key + " = " + kv.Value.String() + "\n"
	}
	s += "}"
	return s
}

var _ Styles = &PropertyMap{}
