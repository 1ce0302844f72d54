// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/task-recommender/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for human-readable CLI modes
type Printer struct {
	out      io.Writer
	maxItems int
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, maxItems: maxItemsToShow}
}

// WithMaxItems sets how many list entries a box shows before summarizing
// the rest. n <= 0 shows everything.
func (p *Printer) WithMaxItems(n int) *Printer {
	p.maxItems = n
	return p
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintWorker outputs the attributes and tags of a worker profile.
func (p *Printer) PrintWorker(label string, worker types.Entity) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Complexity: %s\n", formatNumber(worker.Complexity)))
	sb.WriteString(fmt.Sprintf("Time:       %s\n", formatNumber(worker.Time)))
	sb.WriteString(fmt.Sprintf("Tags:       %s", formatTags(worker.Tags)))

	p.printBox(strings.ToUpper(label), sb.String())
}

// PrintRecommendations outputs scored recommendations out of total candidates.
func (p *Printer) PrintRecommendations(recs []types.Recommendation, total int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recommended %d of %d tasks\n", len(recs), total))

	count := p.visible(len(recs))
	for i := 0; i < count; i++ {
		rec := recs[i]
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("#%d  task %d  (%s, %s)\n", i+1, rec.Index,
			formatNumber(rec.Task.Complexity), formatNumber(rec.Task.Time)))
		sb.WriteString(fmt.Sprintf("    Tags: %s\n", formatTags(rec.Task.Tags)))
		sb.WriteString(fmt.Sprintf("    Tag similarity:       %.4f\n", rec.TagSimilarity))
		sb.WriteString(fmt.Sprintf("    Attribute similarity: %.4f\n", rec.AttributeSimilarity))
	}
	if len(recs) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more\n", len(recs)-count))
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPreview outputs the ranked tasks for one demo worker.
func (p *Printer) PrintPreview(label string, worker types.Entity, ranked []types.Entity) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Worker: (%s, %s) %s\n",
		formatNumber(worker.Complexity), formatNumber(worker.Time), formatTags(worker.Tags)))
	sb.WriteString("\n")

	if len(ranked) == 0 {
		sb.WriteString("No tasks passed the tag threshold")
		p.printBox(strings.ToUpper(label), sb.String())
		return
	}

	count := p.visible(len(ranked))
	for i := 0; i < count; i++ {
		task := ranked[i]
		sb.WriteString(fmt.Sprintf("%d. (%s, %s) %s\n", i+1,
			formatNumber(task.Complexity), formatNumber(task.Time), formatTags(task.Tags)))
	}
	if len(ranked) > count {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(ranked)-count))
	}

	p.printBox(strings.ToUpper(label), strings.TrimSuffix(sb.String(), "\n"))
}

func (p *Printer) visible(n int) int {
	if p.maxItems <= 0 {
		return n
	}
	return min(n, p.maxItems)
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "(none)"
	}
	return strings.Join(tags, ", ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
