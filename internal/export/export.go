// Package export renders the board to json, csv or pdf.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"taskboard/internal/stage"
	"taskboard/internal/task"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "pdf"}

// Exporter renders the current board.
type Exporter struct{ eng *stage.Engine }

// NewExporter returns an Exporter reading from eng.
func NewExporter(eng *stage.Engine) *Exporter { return &Exporter{eng: eng} }

// Export renders the board in format.
// json is the stored wire format; csv and pdf are grouped by column.
func (e *Exporter) Export(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return task.Marshal(e.eng.Store().Tasks())
	case "csv":
		return exportCSV(e.eng.Views())
	case "pdf":
		return exportPDF(e.eng.Views())
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

type column struct {
	title string
	tasks []task.Task
}

func columns(v stage.Views) []column {
	cols := make([]column, 0, len(task.Stages)+1)
	for _, s := range task.Stages {
		cols = append(cols, column{title: s.Label(), tasks: v.Column(s)})
	}
	if len(v.Unclassified) > 0 {
		cols = append(cols, column{title: "Unclassified", tasks: v.Unclassified})
	}
	return cols
}

func exportCSV(v stage.Views) ([]byte, error) {
	var b bytes.Buffer
	if err := writeCSV(&b, v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// writeCSV stops at the first row that cannot be written.
func writeCSV(out io.Writer, v stage.Views) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"stage", "id", "task", "desc", "priority"}); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, col := range columns(v) {
		for _, t := range col.tasks {
			if err := w.Write([]string{col.title, string(t.ID), t.Title, t.Description, t.Priority}); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func exportPDF(v stage.Views) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Task Board")
	pdf.Ln(14)

	for _, col := range columns(v) {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(40, 8, fmt.Sprintf("%s (%d)", col.title, len(col.tasks)))
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 10)
		for _, t := range col.tasks {
			line := tr(t.Title)
			if t.Priority != "" {
				line += tr(" [" + t.Priority + "]")
			}
			pdf.MultiCell(0, 6, line, "0", "L", false)
			if d := strings.TrimSpace(t.Description); d != "" {
				pdf.SetFont("Arial", "I", 9)
				pdf.MultiCell(0, 5, tr(d), "0", "L", false)
				pdf.SetFont("Arial", "", 10)
			}
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
