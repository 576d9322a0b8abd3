package search

import "github.com/poiesic/hukumpedia/core"

// SearchMonitor provides hooks to observe the retrieval process.
type SearchMonitor interface {
	Start(query string, topK int)
	AfterChapterSearch(chapter *core.Chapter, distance float32)
	// ScopeSelected reports the article scope; chapterID is empty for an
	// unscoped search across the corpus.
	ScopeSelected(chapterID string, size int)
	ScopeWidened(chapterID string)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ int)                        {}
func (n *noopMonitor) AfterChapterSearch(_ *core.Chapter, _ float32) {}
func (n *noopMonitor) ScopeSelected(_ string, _ int)                {}
func (n *noopMonitor) ScopeWidened(_ string)                        {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)                {}
