package formatter

import (
	"fmt"
	"strings"

	"github.com/spec-kit/support-pipeline/internal/domain"
)

// NoResultsSentinel is returned when the knowledge base has nothing relevant.
const NoResultsSentinel = "No relevant documentation found."

// NoHistorySentinel is returned for customers with no prior interactions.
const NoHistorySentinel = "No previous interaction history found."

// SearchResults renders knowledge-base hits for response-engine context.
// Article content is truncated to keep prompts small.
func SearchResults(results []domain.KnowledgeResult) string {
	if len(results) == 0 {
		return NoResultsSentinel
	}

	entries := make([]string, 0, len(results))
	for i, result := range results {
		content := result.Content
		if len(content) > 500 {
			content = content[:500] + "..."
		}
		entries = append(entries, fmt.Sprintf("[%d] %s (relevance: %.2f)\n%s", i+1, result.Title, result.Relevance, content))
	}
	return strings.Join(entries, "\n\n")
}

// CustomerHistory renders cross-channel history for response-engine context.
func CustomerHistory(history []domain.HistoryEntry) string {
	if len(history) == 0 {
		return NoHistorySentinel
	}

	lines := []string{"Previous interactions:"}
	for _, entry := range history {
		content := entry.Content
		if len(content) > 200 {
			content = content[:200] + "..."
		}
		timestamp := entry.MessageTime.Format("2006-01-02 15:04")
		if entry.Subject != nil && *entry.Subject != "" {
			lines = append(lines, fmt.Sprintf("- [%s] %s (%s) %s: %s", entry.Channel, *entry.Subject, timestamp, entry.SenderType, content))
		} else {
			lines = append(lines, fmt.Sprintf("- [%s] (%s) %s: %s", entry.Channel, timestamp, entry.SenderType, content))
		}
	}
	return strings.Join(lines, "\n")
}
