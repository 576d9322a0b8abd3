package answer

import (
	"fmt"
	"strings"

	"github.com/poiesic/hukumpedia/core"
	"github.com/poiesic/hukumpedia/search"
)

// BuildContext renders results as the excerpt block handed to the composer.
func BuildContext(results []*core.SearchResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf("Bab: %s | %s\n%s", r.ChapterID, r.ArticleID, r.Text))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatResults renders results for display, one block per article with its
// distance as the similarity score.
func FormatResults(results []*core.SearchResult) string {
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "Bab: %s | %s\n%s\n(similarity score: %.4f)\n\n", r.ChapterID, r.ArticleID, r.Text, r.Distance)
	}
	return sb.String()
}

// FormatDecision describes a scoped chapter decision. It returns "" when the
// search was not scoped.
func FormatDecision(d search.Decision) string {
	if !d.Scoped || d.Chapter == nil {
		return ""
	}
	return fmt.Sprintf("It looks like you are asking in the context of %s", d.Chapter.Label())
}
