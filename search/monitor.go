package search

import "github.com/poiesic/recall/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(owner, query string)
	AfterCandidateScan(ids []core.ID)
	AfterQueryEmbedding(dimensions, tokens int)
	Finish(result *Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string)                 {}
func (n *noopMonitor) AfterCandidateScan(_ []core.ID)    {}
func (n *noopMonitor) AfterQueryEmbedding(_, _ int)      {}
func (n *noopMonitor) Finish(_ *Result)                  {}
