package style

import (
	"golang.org/x/net/html"
)

// Cache is the style snapshot of one capture session: a memo of computed
// styles per source node, keyed by node identity. Capturing computed style
// is the expensive part of taking a snapshot, which is why it happens in a
// single depth-bounded pass and is never repeated for the same node within
// a session.
//
// The cache is purely a performance layer. Every consumer falls back to a
// live style query on a miss (see Resolve), so correctness never depends on
// the cache being complete. What the cache does guarantee is "style as it
// was at capture time": lookups return the snapshot even if the live tree
// has changed since.
//
// A Cache is not safe for concurrent use; it is owned by one session.
type Cache struct {
	snapshots map[*html.Node]Styles
}

// NewCache returns an empty snapshot cache.
func NewCache() *Cache {
	return &Cache{}
}

// Capture performs a depth-bounded pre-order traversal from root and
// records one snapshot per element node. Non-element nodes and nodes
// deeper than maxDepth are skipped. Nodes for which the query yields nil
// are recorded as misses (they stay absent from the cache).
//
// Capture does not Clear first; a session wanting a fresh snapshot clears
// explicitly, so that the pairing of Clear and Capture is visible at the
// call site.
func (c *Cache) Capture(root *html.Node, maxDepth int, q Query) {
	if c == nil || root == nil || q == nil {
		return
	}
	if c.snapshots == nil {
		c.snapshots = make(map[*html.Node]Styles)
	}
	type item struct {
		n     *html.Node
		depth int
	}
	stack := []item{{root, 0}}
	captured := 0
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.depth > maxDepth {
			continue
		}
		if it.n.Type == html.ElementNode {
			if _, seen := c.snapshots[it.n]; !seen {
				if s := q(it.n); s != nil {
					c.snapshots[it.n] = s
					captured++
				}
			}
		}
		// push children in reverse to keep pre-order
		for ch := it.n.LastChild; ch != nil; ch = ch.PrevSibling {
			stack = append(stack, item{ch, it.depth + 1})
		}
	}
	tracer().P("depth", maxDepth).Debugf("captured %d style snapshots", captured)
}

// Lookup returns the cached snapshot for a node, or (nil, false) on a miss.
func (c *Cache) Lookup(n *html.Node) (Styles, bool) {
	if c == nil || c.snapshots == nil {
		return nil, false
	}
	s, ok := c.snapshots[n]
	return s, ok
}

// Clear resets the cache to empty. A session's cache is fully cleared
// before the next capture, so no snapshot survives across sessions.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.snapshots = nil
}

// Size returns the number of snapshots currently held.
func (c *Cache) Size() int {
	if c == nil {
		return 0
	}
	return len(c.snapshots)
}

// Resolve returns the snapshot for n if one was captured, falling back to
// the live query otherwise. Returns nil if neither source has a style for
// the node.
func Resolve(c *Cache, n *html.Node, q Query) Styles {
	if s, ok := c.Lookup(n); ok {
		return s
	}
	if q == nil {
		return nil
	}
	return q(n)
}
