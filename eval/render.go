package eval

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderReport writes one model's classification report as a text table.
func RenderReport(w io.Writer, model string, report *Report) {
	fmt.Fprintf(w, "=== %s ===\n", model)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"class", "precision", "recall", "f1-score", "support"})
	for class, metrics := range report.Classes {
		t.AppendRow(table.Row{
			class,
			fmt.Sprintf("%.2f", metrics.Precision),
			fmt.Sprintf("%.2f", metrics.Recall),
			fmt.Sprintf("%.2f", metrics.F1),
			metrics.Support,
		})
	}
	t.AppendFooter(table.Row{"accuracy", "", "", fmt.Sprintf("%.2f", report.Accuracy), report.Total})
	t.Render()
}

// RenderImportance writes the importance table: feature rows, model columns.
func RenderImportance(w io.Writer, imp *ImportanceTable) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"feature"}
	for _, model := range imp.Models() {
		header = append(header, model)
	}
	t.AppendHeader(header)

	for i, feature := range imp.Features() {
		row := table.Row{feature}
		for _, model := range imp.Models() {
			value, err := imp.Value(i, model)
			if err != nil {
				return err
			}
			row = append(row, fmt.Sprintf("%.4f", value))
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}
