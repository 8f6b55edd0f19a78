package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/stage"
	"taskboard/internal/task"
	"taskboard/internal/taskstore"
	"taskboard/internal/testutil"
)

func newExporter(t *testing.T) *Exporter {
	t.Helper()
	st := taskstore.New(testutil.NewFakeStorage())
	require.NoError(t, st.ReplaceAll(context.Background(), []task.Task{
		{ID: "1", Title: "Ship", Priority: "High", Stage: task.Completed},
		{ID: "2", Title: "Plan", Description: "outline, then review", Priority: "Low", Stage: task.Pending},
		{ID: "3", Title: "Build", Stage: task.InProgress},
	}))
	return NewExporter(stage.New(st, nil))
}

func TestExport_JSONIsWireFormat(t *testing.T) {
	data, err := newExporter(t).Export("json")
	require.NoError(t, err)

	got, err := task.Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, task.ID("1"), got[0].ID, "json keeps collection order")
}

func TestExport_CSVGroupedByColumn(t *testing.T) {
	data, err := newExporter(t).Export("CSV")
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"stage", "id", "task", "desc", "priority"},
		{"Pending", "2", "Plan", "outline, then review", "Low"},
		{"InProgress", "3", "Build", "", ""},
		{"Completed", "1", "Ship", "", "High"},
	}, rows)
}

type failingWriter struct{ writes int }

var errDiskFull = errors.New("disk full")

func (f *failingWriter) Write(p []byte) (int, error) {
	f.writes++
	return 0, errDiskFull
}

func TestWriteCSV_StopsAtFirstError(t *testing.T) {
	// Rows larger than the csv buffer reach the writer from inside Write.
	long := strings.Repeat("x", 8192)
	v := stage.Views{Pending: []task.Task{
		{ID: "1", Title: "a", Description: long},
		{ID: "2", Title: "b", Description: long},
	}}

	w := &failingWriter{}
	err := writeCSV(w, v)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, 1, w.writes)
}

func TestExport_PDF(t *testing.T) {
	data, err := newExporter(t).Export("pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := newExporter(t).Export("xml")
	require.Error(t, err)
	assert.Equal(t, "unknown format xml", err.Error())
}
