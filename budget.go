package focal

// DefaultEstimateCap bounds the node-count estimation itself; counting
// beyond it cannot change the chosen budget.
const DefaultEstimateCap = 2000

// Thresholds and ceilings of the traversal budget. Style capture is the
// expensive pass, so larger subtrees get a more conservative depth
// ceiling — trading fidelity of deep descendants for bounded latency.
// Nodes beyond the ceiling keep their cloned structure, but receive no
// style overrides.
const (
	smallSubtree  = 150 // estimated nodes
	mediumSubtree = 800

	generousBudget     = 50
	moderateBudget     = 24
	conservativeBudget = 12
)

// BudgetFor chooses the traversal depth ceiling for a session from an
// estimated node count of the target subtree. The budget is monotone
// non-increasing in the estimate.
func BudgetFor(estimate int) int {
	switch {
	case estimate < smallSubtree:
		return generousBudget
	case estimate < mediumSubtree:
		return moderateBudget
	}
	return conservativeBudget
}
