// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"taskboard/internal/stage"
	"taskboard/internal/task"
)

const (
	// ColumnSeparator is the separator line for column sections.
	ColumnSeparator = "------------"

	// UnclassifiedTitle heads the section of tasks with unknown stage markers.
	UnclassifiedTitle = "Unclassified"
)

// Options controls board rendering.
type Options struct {
	// Long prints descriptions under each task.
	Long bool
}

// FormatBoard writes the three columns in order, followed by an
// Unclassified section when any task carries an unknown marker.
func FormatBoard(w io.Writer, v stage.Views, opts Options) {
	for _, s := range task.Stages {
		FormatColumn(w, s.Label(), s.Letter(), v.Column(s), opts)
	}
	if len(v.Unclassified) > 0 {
		FormatColumn(w, UnclassifiedTitle, 'u', v.Unclassified, opts)
	}
}

// FormatColumn writes one column header and its tasks.
func FormatColumn(w io.Writer, title string, letter rune, tasks []task.Task, opts Options) {
	fmt.Fprintln(w, ColumnSeparator)
	fmt.Fprintf(w, "%s (%d)\n", title, len(tasks))
	fmt.Fprintln(w, ColumnSeparator)
	for i, t := range tasks {
		FormatTask(w, letter, i+1, t)
		if opts.Long {
			FormatDescription(w, t)
		}
	}
}

// FormatTask formats a task line.
// Format: "{REF:<5} {TITLE}[  [PRIORITY]]\n" where REF is column letter + position.
func FormatTask(w io.Writer, letter rune, num int, t task.Task) {
	ref := fmt.Sprintf("%c%d", letter, num)
	line := fmt.Sprintf("%-5s %s", ref, normalizeTitle(t.Title))
	if p := strings.TrimSpace(t.Priority); p != "" {
		line += "  [" + normalizeText(p) + "]"
	}
	fmt.Fprintln(w, line)
}

// FormatDescription writes a task's description indented under it.
// Empty descriptions print nothing.
func FormatDescription(w io.Writer, t task.Task) {
	desc := strings.TrimSpace(normalizeText(t.Description))
	if desc == "" {
		return
	}
	for _, line := range strings.Split(desc, "\n") {
		fmt.Fprintf(w, "      %s\n", strings.TrimRight(line, " \t\r"))
	}
}

// FormatTaskDetail writes every field of a task, one per line.
func FormatTaskDetail(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "id:          %s\n", t.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(t.Title))
	fmt.Fprintf(w, "stage:       %s\n", t.Stage.Label())
	fmt.Fprintf(w, "priority:    %s\n", normalizeText(t.Priority))
	fmt.Fprintf(w, "description: %s\n", strings.ReplaceAll(normalizeText(t.Description), "\n", " "))
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeText(title)
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeText puts text in NFC so composed and decomposed input line up.
func normalizeText(s string) string {
	return norm.NFC.String(s)
}
