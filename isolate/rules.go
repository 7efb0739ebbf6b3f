package isolate

import (
	"fmt"
	"sort"
	"strings"
)

// Theme carries the resolved color settings of the session, produced by an
// external color-analysis collaborator and passed in opaquely.
type Theme struct {
	Dark       bool
	Background string // resolved page background color
	Text       string // resolved text color
}

// themeColors resolves the dark/light variants used by the base block.
func (t Theme) colors() (link, tableBorder, codeBackground string) {
	if t.Dark {
		return "#8ab4f8", "#3c4043", "rgba(255, 255, 255, 0.08)"
	}
	return "#1a0dab", "#dadce0", "rgba(0, 0, 0, 0.05)"
}

// baseRules renders the base rule block, parameterized by theme colors and
// by the main-content judgement of the caller.
func baseRules(theme Theme, mainContent bool) string {
	link, tableBorder, codeBackground := theme.colors()
	var sb strings.Builder
	fmt.Fprintf(&sb, `:host {
  all: initial;
  display: block;
  background: %s;
  color: %s;
}
.%s {
  display: block;
  width: 100%%;
  box-sizing: border-box;
  overflow-wrap: break-word;
}
.%s a { color: %s; }
.%s table, .%s td, .%s th { border-color: %s; }
.%s pre, .%s code { background-color: %s; }
`,
		theme.Background, theme.Text,
		ContentClass,
		ContentClass, link,
		ContentClass, ContentClass, ContentClass, tableBorder,
		ContentClass, ContentClass, codeBackground)
	if mainContent {
		// the target is judged to be main article content: its direct
		// children may not escape the column
		fmt.Fprintf(&sb, `.%s > * {
  width: 100%% !important;
  max-width: 100%% !important;
  margin-left: 0 !important;
  margin-right: 0 !important;
}
`, ContentClass)
	}
	return sb.String()
}

// customPropertyBlock renders the re-export of root-level custom
// properties under the scope's own root selectors, so descendants of the
// clone can resolve them. Names are sorted for reproducible output.
func customPropertyBlock(props map[string]string) string {
	if len(props) == 0 {
		return ""
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	fmt.Fprintf(&sb, ":host, .%s {\n", ContentClass)
	for _, name := range names {
		fmt.Fprintf(&sb, "  %s: %s;\n", name, props[name])
	}
	sb.WriteString("}\n")
	return sb.String()
}

// normalizationRules is the fixed special-normalization block. Every rule
// carries a :not([data-focal-styled]) guard so defaults never double-apply
// onto nodes the cloner already materialized.
//
// The attribute literal matches clone.StyledAttr; the class vocabularies
// mirror the tag-likeness classifier.
const normalizationRules = `
.focal-content *:not([data-focal-styled]) {
  max-width: 100%;
  position: static;
  float: none;
  clear: both;
}
.focal-content div:not([data-focal-styled]),
.focal-content section:not([data-focal-styled]),
.focal-content article:not([data-focal-styled]),
.focal-content main:not([data-focal-styled]),
.focal-content header:not([data-focal-styled]),
.focal-content footer:not([data-focal-styled]),
.focal-content nav:not([data-focal-styled]),
.focal-content aside:not([data-focal-styled]),
.focal-content [class*="content"]:not([data-focal-styled]),
.focal-content [class*="article"]:not([data-focal-styled]),
.focal-content [class*="post"]:not([data-focal-styled]) {
  width: 100%;
  box-sizing: border-box;
}
.focal-content [class*="tag"]:not([data-focal-styled]),
.focal-content [class*="label"]:not([data-focal-styled]),
.focal-content [class*="badge"]:not([data-focal-styled]),
.focal-content [class*="pill"]:not([data-focal-styled]),
.focal-content [class*="chip"]:not([data-focal-styled]),
.focal-content [class*="hashtag"]:not([data-focal-styled]),
.focal-content [class*="category"]:not([data-focal-styled]) {
  display: inline-block;
  width: auto;
}
.focal-content [class*="tags"]:not([data-focal-styled]),
.focal-content [class*="labels"]:not([data-focal-styled]),
.focal-content [class*="badges"]:not([data-focal-styled]),
.focal-content [class*="chips"]:not([data-focal-styled]),
.focal-content [class*="categories"]:not([data-focal-styled]) {
  display: flex;
  flex-wrap: wrap;
}
.focal-content pre:not([data-focal-styled]),
.focal-content code:not([data-focal-styled]) {
  white-space: pre-wrap;
  overflow-x: auto;
  max-width: 100%;
}
.focal-content table:not([data-focal-styled]) {
  width: 100%;
  border-collapse: collapse;
}
.focal-content img:not([data-focal-styled]) {
  max-width: 100%;
  height: auto;
}
.focal-content [class*="sidebar"]:not([data-focal-styled]),
.focal-content [class*="widget"]:not([data-focal-styled]) {
  width: 100%;
  float: none;
}
`
