package cssom

import (
	"strings"
)

// rootLevelSelectors are the selector preludes considered "root level"
// for custom-property collection: a custom property declared on any of
// these scopes is resolvable from everywhere in the document and must be
// re-exported into the isolation scope.
func isRootLevelSelector(prelude string) bool {
	for _, sel := range strings.Split(prelude, ",") {
		switch strings.TrimSpace(strings.ToLower(sel)) {
		case ":root", "html", "body", "html body", ":root body", "html, body":
			return true
		}
	}
	return false
}

// CustomProperties scans every rule of the given stylesheets for root-level
// custom-property declarations (`--name: value`) and collects them into a
// name→value map. Later sheets win on duplicate names, mirroring source
// order in the document.
func CustomProperties(sheets []StyleSheet) map[string]string {
	props := make(map[string]string)
	for _, sheet := range sheets {
		if sheet == nil {
			continue
		}
		for _, rule := range sheet.Rules() {
			if !isRootLevelSelector(rule.Selector()) {
				continue
			}
			for _, key := range rule.Properties() {
				if !strings.HasPrefix(key, "--") {
					continue
				}
				props[key] = rule.Value(key).String()
			}
		}
	}
	if len(props) > 0 {
		tracer().Debugf("collected %d root-level custom properties", len(props))
	}
	return props
}

// FontFaceRules returns the re-serialized text of every @font-face rule
// in the given stylesheets, in source order.
func FontFaceRules(sheets []StyleSheet) []string {
	var texts []string
	for _, sheet := range sheets {
		if sheet == nil {
			continue
		}
		for _, rule := range sheet.Rules() {
			if rule.IsFontFace() {
				texts = append(texts, rule.Text())
			}
		}
	}
	return texts
}
