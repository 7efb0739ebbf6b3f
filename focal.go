/*
Package focal re-presents a region of a live, rendered document inside an
isolated rendering scope, visually unchanged.

The isolation scope sees none of the host page's stylesheets and leaks no
styles back into it, so the hard part is style preservation: computed
presentation is captured from the live tree and re-materialized as
self-sufficient declarations on a disconnected copy.

A Session is the explicit context of one snapshot: it owns the style
snapshot cache and the traversal budget, and orchestrates the component
chain — capture styles, clone with explicit overrides, materialize
generated pseudo-content, resolve deferred image sources — while the
isolated style context is built in parallel by package isolate.

Only one session is expected to be active at a time; nothing enforces
this, but nothing is shared between Session values either, so concurrent
sessions work if a caller ever needs them.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package focal

import (
	"errors"

	"github.com/google/uuid"
	"github.com/npillmayer/focal/assets"
	"github.com/npillmayer/focal/clone"
	"github.com/npillmayer/focal/dom"
	"github.com/npillmayer/focal/dom/style"
	"github.com/npillmayer/focal/isolate"
	"github.com/npillmayer/focal/pseudo"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer will return a tracer. We are tracing to 'focal.session'
func tracer() tracing.Trace {
	return tracing.Select("focal.session")
}

// ErrNoTarget is returned by Snapshot for a nil or non-element target.
var ErrNoTarget = errors.New("no target element to snapshot")

// Config carries the capabilities a session consumes from its
// collaborators.
type Config struct {
	MainContent bool         // caller judged the target to be main article content
	Query       style.Query  // live computed-style capability (required)
	PseudoQuery pseudo.Query // generated-content style capability; nil skips pseudo-content
	EstimateCap int          // node-count estimation cap; 0 means DefaultEstimateCap
}

// Session is the explicit context of one snapshot: cache, budget and
// configuration, scoped and released by the caller.
type Session struct {
	id    string
	cfg   Config
	cache *style.Cache
}

// NewSession creates a session with an empty snapshot cache.
func NewSession(cfg Config) *Session {
	if cfg.EstimateCap <= 0 {
		cfg.EstimateCap = DefaultEstimateCap
	}
	return &Session{
		id:    uuid.NewString(),
		cfg:   cfg,
		cache: style.NewCache(),
	}
}

// Result is the outcome of one snapshot: the disconnected, fully styled
// clone plus the session parameters that produced it.
type Result struct {
	Clone    *html.Node
	Budget   int
	Estimate int
}

// Snapshot captures the target subtree and produces its disconnected,
// fully styled clone: style capture, override materialization,
// pseudo-content materialization and deferred-asset resolution, in that
// order. The live tree is never modified.
func (s *Session) Snapshot(root *html.Node) (*Result, error) {
	if !dom.IsElement(root) {
		return nil, ErrNoTarget
	}
	estimate := dom.EstimateNodeCount(root, s.cfg.EstimateCap)
	budget := BudgetFor(estimate)
	tracer().P("session", s.id).Debugf("snapshot of ~%d nodes, budget %d", estimate, budget)

	s.cache.Clear()
	s.cache.Capture(root, budget, s.cfg.Query)

	copied := clone.Clone(root, clone.Options{
		MainContent: s.cfg.MainContent,
		MaxDepth:    budget,
		Cache:       s.cache,
		Query:       s.cfg.Query,
	})
	if s.cfg.PseudoQuery != nil {
		pseudo.Materialize(root, copied, s.cfg.PseudoQuery)
	}
	assets.Resolve(copied)
	return &Result{Clone: copied, Budget: budget, Estimate: estimate}, nil
}

// BuildContext builds the isolated style context for the session's scope.
// It is a thin delegation to isolate.Build; the session only contributes
// its main-content judgement.
func (s *Session) BuildContext(scope *isolate.Scope, cfg isolate.Config, done func([]string)) *isolate.Context {
	cfg.MainContent = s.cfg.MainContent
	return isolate.Build(scope, cfg, done)
}

// Close releases the session's snapshot cache. The session must not be
// used afterwards.
func (s *Session) Close() {
	s.cache.Clear()
}
