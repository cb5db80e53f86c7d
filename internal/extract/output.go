package extract

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/itsmostafa/pdfextbook/internal/outline"
)

var (
	// titleStyle for bold red headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// headerBoxStyle for the header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)

	// pagesStyle for page ranges in the outline tree
	pagesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))
)

// FormatHeader renders the run header with configuration info
func FormatHeader(w io.Writer, cfg Config) {
	mode := "interactive"
	if cfg.Selection.Batch() {
		mode = "batch"
	}

	engineName := "none"
	if cfg.Engine != nil {
		engineName = cfg.Engine.Name()
	}

	content := fmt.Sprintf("%s %s\n%s %s  %s %s  %s %s",
		dimStyle.Render("File:"), cfg.Input,
		dimStyle.Render("Mode:"), titleStyle.Render(mode),
		dimStyle.Render("Engine:"), titleStyle.Render(engineName),
		dimStyle.Render("End page:"), titleStyle.Render(string(cfg.Policy)),
	)

	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatStatus writes a progress line
func FormatStatus(w io.Writer, msg string) {
	fmt.Fprintln(w, msg)
}

// FormatNotice writes a muted informational line
func FormatNotice(w io.Writer, msg string) {
	fmt.Fprintln(w, dimStyle.Render(msg))
}

// FormatSaving writes the destination of an extraction
func FormatSaving(w io.Writer, dst, engineName string) {
	fmt.Fprintf(w, "\t%s `%s` %s\n", dimStyle.Render("Saving to:"), dst, dimStyle.Render("("+engineName+")"))
}

// FormatFailure writes an extraction error
func FormatFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "\t%s\n", errorStyle.Render("Error: "+err.Error()))
}

// FormatBatchItem writes the label of the batch entry being extracted
func FormatBatchItem(w io.Writer, i, total int, label string) {
	fmt.Fprintf(w, "%s %s\n", dimStyle.Render(fmt.Sprintf("[%d/%d]", i+1, total)), label)
}

// FormatBatchSummary writes the outcome of a batch run
func FormatBatchSummary(w io.Writer, ok, failed int) {
	status := successStyle.Render(fmt.Sprintf("%d extracted", ok))
	if failed > 0 {
		status += "  " + errorStyle.Render(fmt.Sprintf("%d failed", failed))
	}
	fmt.Fprintln(w, status)
}

// WriteLabels writes the candidate labels as an indented JSON array.
// Non-ASCII titles are written as is.
func WriteLabels(w io.Writer, labels []string) error {
	if labels == nil {
		labels = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(labels)
}

// WriteRanges writes resolved ranges as an indented JSON array of objects.
func WriteRanges(w io.Writer, ranges []outline.Range) error {
	if ranges == nil {
		ranges = []outline.Range{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(ranges)
}

// RenderTree draws the outline forest with each node's page range.
func RenderTree(w io.Writer, name string, nodes []*outline.Node) {
	root := tree.Root(titleStyle.Render(name)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(dimStyle)
	for _, n := range nodes {
		root.Child(treeNode(n))
	}
	fmt.Fprintln(w, root.String())
	FormatNotice(w, treeSummary(nodes))
}

// treeSummary counts the bookmarks of a forest and how deeply they nest.
func treeSummary(nodes []*outline.Node) string {
	count, depth := 0, 0
	outline.Walk(nodes, func(_ *outline.Node, d int) {
		count++
		depth = max(depth, d+1)
	})
	noun := "bookmarks"
	if count == 1 {
		noun = "bookmark"
	}
	return fmt.Sprintf("%d %s, %d levels deep", count, noun, depth)
}

func treeNode(n *outline.Node) any {
	label := fmt.Sprintf("%s %s", n.Title, pagesStyle.Render("["+n.Pages()+"]"))
	if len(n.Children) == 0 {
		return label
	}
	t := tree.Root(label)
	for _, child := range n.Children {
		t.Child(treeNode(child))
	}
	return t
}
