package search

import "github.com/poiesic/librosearch/core"

// Monitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type Monitor interface {
	Start(query string)
	AfterClassification(intent *core.Intent)
	AfterTierRetrieval(set *core.ResultSet)
	AfterSemanticSearch(results []core.SemanticResult)
	AfterImageMatch(candidates []core.ImageCandidate)
	Finish(resp *Response)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                              {}
func (n *noopMonitor) AfterClassification(_ *core.Intent)          {}
func (n *noopMonitor) AfterTierRetrieval(_ *core.ResultSet)        {}
func (n *noopMonitor) AfterSemanticSearch(_ []core.SemanticResult) {}
func (n *noopMonitor) AfterImageMatch(_ []core.ImageCandidate)     {}
func (n *noopMonitor) Finish(_ *Response)                          {}
