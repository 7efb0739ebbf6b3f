package isolate

import (
	"context"
	"strings"
	"time"

	"github.com/npillmayer/focal/dom/style/cssom"
	"golang.org/x/net/html"
)

// Sheet is one same-scope style rule collection of the host document.
// CSS carries the readable rules; a nil CSS (or a resource reference with
// no readable rules) marks the collection as cross-scope: its text has to
// be fetched through the privileged proxy instead.
type Sheet struct {
	Href string // origin resource URL; "" for embedded sheets
	CSS  *cssom.CSSStyles
}

// accessible reports whether the sheet's rules can be read in-process.
func (s Sheet) accessible() bool {
	return s.CSS != nil && !s.CSS.Empty()
}

// Config parameterizes one context build.
type Config struct {
	Theme       Theme
	MainContent bool
	Sheets      []Sheet       // same-scope rule collections, in document order
	InlineTexts []string      // literal inline <style> blocks of the host document
	Fetcher     Fetcher       // privileged proxy; nil disables cross-scope recovery
	Timeout     time.Duration // per-fetch timeout; 0 means DefaultFetchTimeout
}

// Context is the style context built into one isolation scope.
type Context struct {
	scope       *Scope
	customProps *html.Node // the one custom-property block; replaced, never appended
	crossScope  []string   // cross-scope resource URLs awaiting fetch
	fetched     []string   // successfully fetched rule texts
}

// CrossScopeURLs returns the resource URLs that were recorded for
// asynchronous recovery.
func (cx *Context) CrossScopeURLs() []string {
	return cx.crossScope
}

// Build constructs the full style context for an isolation scope.
//
// The synchronous phase injects, in order: the base block, the
// custom-property block, one verbatim copy block per accessible same-scope
// rule collection, copies of literal inline style blocks, the special
// normalization block, and same-scope font-face rules. Inaccessible
// collections are recorded as cross-scope URLs.
//
// If cross-scope URLs were recorded and a Fetcher is configured, their
// texts are fetched concurrently, each with an independent timeout. A
// fetched text is injected as a rule block; a failure degrades to a
// passive external reference. Once all fetches have settled — in any
// order, with any outcome — custom properties are re-scanned and the
// custom-property block replaced, newly discovered font-faces injected,
// and done invoked with the successfully fetched texts. Without
// cross-scope URLs, done is invoked synchronously with an empty list.
//
// done fires exactly once per Build; it is the only externally observable
// completion channel. The scope must not be read concurrently with an
// outstanding asynchronous phase.
func Build(scope *Scope, cfg Config, done func(fetched []string)) *Context {
	cx := &Context{scope: scope}

	scope.inject("base", baseRules(cfg.Theme, cfg.MainContent))

	sameScope := accessibleSheets(cfg.Sheets)
	cx.customProps = scope.replace(cx.customProps, "custom-properties",
		customPropertyBlock(cssom.CustomProperties(sameScope)))

	for _, sheet := range cfg.Sheets {
		if !sheet.accessible() {
			if sheet.Href != "" {
				cx.crossScope = append(cx.crossScope, sheet.Href)
			}
			continue
		}
		scope.inject("same-scope", ruleTexts(sheet.CSS))
	}
	for _, text := range cfg.InlineTexts {
		scope.inject("inline-copy", text)
	}
	scope.inject("normalization", normalizationRules)
	scope.InjectFontFaces(cssom.FontFaceRules(sameScope))

	if len(cx.crossScope) == 0 || cfg.Fetcher == nil {
		if len(cx.crossScope) > 0 {
			// no proxy available: degrade every collection to a passive
			// reference right away
			for _, url := range cx.crossScope {
				scope.injectPassiveReference(url)
			}
		}
		done(nil)
		return cx
	}
	cx.fetchCrossScope(cfg, done)
	return cx
}

func accessibleSheets(sheets []Sheet) []cssom.StyleSheet {
	var out []cssom.StyleSheet
	for _, s := range sheets {
		if s.accessible() {
			out = append(out, s.CSS)
		}
	}
	return out
}

func ruleTexts(sheet *cssom.CSSStyles) string {
	var sb strings.Builder
	for _, rule := range sheet.Rules() {
		sb.WriteString(rule.Text())
		sb.WriteString("\n")
	}
	return sb.String()
}

type fetchResult struct {
	url  string
	text string
	err  error
}

// fetchCrossScope fans out one goroutine per URL and collects all results
// before finishing the build. Completion is "all settled": the collector
// consumes exactly len(urls) results regardless of individual outcomes.
func (cx *Context) fetchCrossScope(cfg Config, done func([]string)) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	results := make(chan fetchResult, len(cx.crossScope))
	for _, url := range cx.crossScope {
		go func(url string) {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			text, err := cfg.Fetcher.Fetch(ctx, url)
			results <- fetchResult{url: url, text: text, err: err}
		}(url)
	}
	go func() {
		var fetchedSheets []cssom.StyleSheet
		for range cx.crossScope {
			r := <-results
			if r.err != nil {
				tracer().P("url", r.url).Infof("cross-scope fetch degraded to passive reference: %v", r.err)
				cx.scope.injectPassiveReference(r.url)
				continue
			}
			cx.scope.inject("cross-scope", r.text)
			cx.fetched = append(cx.fetched, r.text)
			if sheet, err := cssom.Parse(r.text); err == nil {
				fetchedSheets = append(fetchedSheets, sheet)
			}
		}
		// a cross-scope sheet may be the true source of root-level
		// variables: re-scan and swap the custom-property block
		all := append(accessibleSheets(cfg.Sheets), fetchedSheets...)
		cx.customProps = cx.scope.replace(cx.customProps, "custom-properties",
			customPropertyBlock(cssom.CustomProperties(all)))
		cx.scope.InjectFontFaces(cssom.FontFaceRules(fetchedSheets))
		done(cx.fetched)
	}()
}
