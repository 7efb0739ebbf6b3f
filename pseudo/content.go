package pseudo

import (
	"regexp"
	"strings"
)

// Kind discriminates the parsed forms of a generated-content value.
type Kind uint8

const (
	Text    Kind = iota // a string value, escapes decoded
	Image               // a url(...) value
	Counter             // a counter(...) value, rendered as placeholder
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Image:
		return "image"
	case Counter:
		return "counter"
	}
	return "unknown"
}

// Content is the parsed descriptor of one generated-content value.
type Content struct {
	Kind  Kind
	Value string
}

var (
	urlPattern     = regexp.MustCompile(`(?i)^url\(\s*(['"]?)(.*?)(['"]?)\s*\)$`)
	counterPattern = regexp.MustCompile(`(?i)^counter\(`)
	attrPattern    = regexp.MustCompile(`(?i)^attr\(`)
	bareEPattern   = regexp.MustCompile(`\\e[0-9a-fA-F]*`)
)

// ParseContent parses a computed generated-content value into a content
// descriptor. The grammar is checked in priority order, first match wins:
//
//   1. url(...), optionally quoted      → Image, value is the unwrapped URL
//   2. counter(...)                     → Counter, empty value (placeholder)
//   3. attr(...)                        → Text, empty value (unresolved)
//   4. a single- or double-quoted string → Text, escapes decoded
//   5. anything else                    → no content
//
// The second return value is false when the value carries no visible
// content: empty, `none`, `normal`, an empty or blank-only string, or an
// unrecognized form. ParseContent never fails on malformed input.
func ParseContent(raw string) (Content, bool) {
	v := strings.TrimSpace(raw)
	if v == "" || v == "none" || v == "normal" {
		return Content{}, false
	}
	if m := urlPattern.FindStringSubmatch(v); m != nil {
		return Content{Kind: Image, Value: m[2]}, true
	}
	if counterPattern.MatchString(v) {
		return Content{Kind: Counter}, true
	}
	if attrPattern.MatchString(v) {
		return Content{Kind: Text}, true
	}
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		decoded := decodeEscapes(v[1 : len(v)-1])
		if decoded == "" || decoded == " " {
			return Content{}, false
		}
		return Content{Kind: Text, Value: decoded}, true
	}
	return Content{}, false
}

// decodeEscapes decodes the fixed set of CSS character escapes appearing
// in generated-content strings. Anything outside the set passes through
// unchanged.
func decodeEscapes(s string) string {
	const bs = "\x00" // placeholder keeping escaped backslashes out of later passes
	s = strings.ReplaceAll(s, `\\`, bs)
	s = strings.ReplaceAll(s, `\2022`, "•")
	s = strings.ReplaceAll(s, `\00a0`, " ")
	s = strings.ReplaceAll(s, `\a`, "\n")
	s = bareEPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, bs, `\`)
	return s
}
