package clone

import (
	"strings"

	"github.com/npillmayer/focal/dom"
	"github.com/npillmayer/focal/dom/style"
	"golang.org/x/net/html"
)

// tagVocabulary is the fixed class/id vocabulary identifying badge-like
// inline nodes. Substring containment is intentional: "post-tags" or
// "labelled" count as hits. The classifier is a heuristic; false positives
// are acceptable and must not break downstream logic.
var tagVocabulary = []string{"tag", "label", "badge", "pill", "chip", "hashtag", "category"}

// maxTagTextLen is the visible-text threshold for the weak signal bundle.
const maxTagTextLen = 30

// Probe is a plain description of one node, sufficient for tag-likeness
// classification. Decoupling the predicate from live nodes keeps it a pure
// function, unit-testable without style or DOM access.
type Probe struct {
	Class, ID             string
	ParentClass, ParentID string
	Text                  string // visible text, whitespace-normalized
	ChildElements         int
	InlineDisplay         bool // display is inline, inline-block or inline-flex
	RoundedCorners        bool // non-zero border-radius
	Background            bool // non-transparent background color
	Border                bool // non-none border
}

// ProbeOf assembles a Probe from a live node and its computed style.
// A nil style yields a probe with all visual signals off.
func ProbeOf(n *html.Node, styles style.Styles) Probe {
	p := Probe{
		Class:         dom.Class(n),
		ID:            dom.ID(n),
		Text:          dom.VisibleText(n),
		ChildElements: dom.ChildElementCount(n),
	}
	if parent := n.Parent; parent != nil && parent.Type == html.ElementNode {
		p.ParentClass = dom.Class(parent)
		p.ParentID = dom.ID(parent)
	}
	if styles == nil {
		return p
	}
	switch styles.Property("display").String() {
	case "inline", "inline-block", "inline-flex":
		p.InlineDisplay = true
	}
	p.RoundedCorners = styles.Property("border-radius").IsMeaningful()
	bg := styles.Property("background-color")
	p.Background = !bg.IsEmpty() && !bg.IsTransparent()
	border := styles.Property("border")
	if border.IsEmpty() {
		border = styles.Property("border-style")
	}
	p.Border = border.IsMeaningful()
	return p
}

// IsTagLike classifies a node as an inline "tag/badge"-like node.
// Strong signals (any one suffices): the tag vocabulary on the node's own
// class or id, leading '#' in the text, or the vocabulary on the parent's
// class or id. Otherwise the weak bundle has to hold in full: short text,
// at most one child element, and at least one visual signal.
func IsTagLike(p Probe) bool {
	if matchesTagVocabulary(p.Class) || matchesTagVocabulary(p.ID) {
		return true
	}
	if strings.HasPrefix(p.Text, "#") {
		return true
	}
	if matchesTagVocabulary(p.ParentClass) || matchesTagVocabulary(p.ParentID) {
		return true
	}
	if len(p.Text) >= maxTagTextLen || p.ChildElements > 1 {
		return false
	}
	return p.InlineDisplay || p.RoundedCorners || p.Background || p.Border
}

func matchesTagVocabulary(s string) bool {
	if s == "" {
		return false
	}
	s = strings.ToLower(s)
	for _, word := range tagVocabulary {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}
