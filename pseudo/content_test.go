package pseudo

import (
	"testing"
)

func TestParseContentStrings(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`"→"`, "→"},
		{`'single'`, "single"},
		{`"\2022 item"`, "• item"},
		{`"\a"`, "\n"},
		{`"hello\\world"`, `hello\world`},
		{`"a\00a0b"`, "a b"},
		{`"\e901"`, ""},
	}
	for _, c := range cases {
		content, ok := ParseContent(c.raw)
		if c.want == "" {
			if ok {
				t.Errorf("ParseContent(%q): expected no visible content, have %q", c.raw, content.Value)
			}
			continue
		}
		if !ok {
			t.Errorf("ParseContent(%q): expected text content", c.raw)
			continue
		}
		if content.Kind != Text {
			t.Errorf("ParseContent(%q): expected kind text, have %s", c.raw, content.Kind)
		}
		if content.Value != c.want {
			t.Errorf("ParseContent(%q) = %q, want %q", c.raw, content.Value, c.want)
		}
	}
}

func TestParseContentURLs(t *testing.T) {
	bare, ok1 := ParseContent(`url(icons/star.svg)`)
	quoted, ok2 := ParseContent(`url("icons/star.svg")`)
	single, ok3 := ParseContent(`url('icons/star.svg')`)
	if !ok1 || !ok2 || !ok3 {
		t.Fatal("url(...) forms should all parse")
	}
	if bare.Kind != Image {
		t.Errorf("expected image kind, have %s", bare.Kind)
	}
	if bare.Value != quoted.Value || quoted.Value != single.Value {
		t.Errorf("quoting must not matter: %q / %q / %q", bare.Value, quoted.Value, single.Value)
	}
	if bare.Value != "icons/star.svg" {
		t.Errorf("expected unwrapped URL, have %q", bare.Value)
	}
}

func TestParseContentFunctions(t *testing.T) {
	c, ok := ParseContent(`counter(list-item)`)
	if !ok || c.Kind != Counter || c.Value != "" {
		t.Errorf("counter(...) should yield an empty counter placeholder, have %+v ok=%v", c, ok)
	}
	c, ok = ParseContent(`attr(data-label)`)
	if !ok || c.Kind != Text || c.Value != "" {
		t.Errorf("attr(...) should yield empty text, have %+v ok=%v", c, ok)
	}
}

func TestParseContentNone(t *testing.T) {
	for _, raw := range []string{"", "none", "normal", `""`, `" "`, "open-quote", "inherit"} {
		if _, ok := ParseContent(raw); ok {
			t.Errorf("ParseContent(%q): expected no visible content", raw)
		}
	}
}
