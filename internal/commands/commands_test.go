package commands_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/stage"
	"taskboard/internal/task"
	"taskboard/internal/taskstore"
	"taskboard/internal/testutil"
)

func sampleBoard() []task.Task {
	return []task.Task{
		{ID: "1", Title: "Write draft", Priority: "High", Stage: task.Pending},
		{ID: "2", Title: "Review", Stage: task.InProgress},
		{ID: "3", Title: "Ship", Description: "tag release", Stage: task.Completed},
		{ID: "4", Title: "Plan", Stage: task.Pending},
	}
}

// newDeps builds a board over FakeStorage seeded with tasks.
func newDeps(t *testing.T, tasks ...task.Task) (*commands.Deps, *testutil.FakeStorage) {
	t.Helper()
	fs := testutil.NewFakeStorage()
	st := taskstore.New(fs)
	require.NoError(t, st.ReplaceAll(context.Background(), tasks))
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return &commands.Deps{Engine: stage.New(st, logger), Logger: logger}, fs
}

// runCommand is a helper to run a command against deps.
func runCommand(t *testing.T, cmd commands.Command, deps *commands.Deps, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	code = cmd.Run(context.Background(), cfg, deps, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func stageOf(t *testing.T, deps *commands.Deps, id task.ID) task.Stage {
	t.Helper()
	got, ok := deps.Engine.Store().Get(id)
	require.True(t, ok, "task %s missing", id)
	return got.Stage
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "taskboard "+commands.BuildVersion()+" (storage: file)\n", stdout)
}

func TestBuildVersion_Override(t *testing.T) {
	old := commands.Version
	t.Cleanup(func() { commands.Version = old })

	commands.Version = "1.2.0"
	assert.Equal(t, "1.2.0", commands.BuildVersion())

	commands.Version = ""
	assert.NotEmpty(t, commands.BuildVersion())
}

func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Usage:")
	for _, cmd := range commands.DefaultRegistry.All() {
		assert.Contains(t, stdout, "taskboard "+cmd.Name(), "help should mention %s", cmd.Name())
	}
}

func TestShowCommand(t *testing.T) {
	deps, _ := newDeps(t, sampleBoard()...)

	stdout, stderr, code := runCommand(t, &commands.ShowCmd{}, deps, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	testutil.GoldenString(t, "show", stdout)
}

func TestShowCommand_LongWithUnclassified(t *testing.T) {
	tasks := append(sampleBoard(), task.Task{ID: "5", Title: "Legacy", Stage: "purple"})
	deps, _ := newDeps(t, tasks...)

	cmd := &commands.ShowCmd{}
	cmd.SetLong(true)
	stdout, _, code := runCommand(t, cmd, deps, nil, false)
	assert.Equal(t, exitcode.Success, code)
	testutil.GoldenString(t, "show_long", stdout)
}

func TestShowCommand_Empty(t *testing.T) {
	deps, _ := newDeps(t)

	stdout, _, code := runCommand(t, &commands.ShowCmd{}, deps, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "no tasks found\n", stdout)

	stdout, _, _ = runCommand(t, &commands.ShowCmd{}, deps, nil, true)
	assert.Empty(t, stdout, "quiet mode")
}

func TestAddCommand(t *testing.T) {
	deps, fs := newDeps(t)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, deps, []string{"Buy", "milk"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)

	v := deps.Engine.Views()
	require.Len(t, v.Pending, 1)
	assert.Equal(t, "Buy milk", v.Pending[0].Title)
	assert.NotEmpty(t, v.Pending[0].ID)
	assert.Equal(t, 2, fs.Sets(), "seed plus add")
}

func TestAddCommand_WithStage(t *testing.T) {
	deps, _ := newDeps(t)

	cmd := &commands.AddCmd{}
	cmd.SetStage("done")
	_, _, code := runCommand(t, cmd, deps, []string{"Old"}, true)
	assert.Equal(t, exitcode.Success, code)
	assert.Len(t, deps.Engine.Views().Completed, 1)
}

func TestAddCommand_Errors(t *testing.T) {
	deps, _ := newDeps(t)

	_, stderr, code := runCommand(t, &commands.AddCmd{}, deps, nil, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: title required\n", stderr)

	cmd := &commands.AddCmd{}
	cmd.SetStage("blue")
	_, stderr, code = runCommand(t, cmd, deps, []string{"x"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown stage: blue\n", stderr)
}

func TestAddCommand_PersistWarning(t *testing.T) {
	deps, fs := newDeps(t)
	fs.SetErr = testutil.ErrStorageUnavailable

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, deps, []string{"x"}, false)
	assert.Equal(t, exitcode.PersistWarning, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "warning: board not saved (add): storage unavailable\n", stderr)
	assert.Equal(t, 1, deps.Engine.Store().Len())
}

func TestMoveCommand(t *testing.T) {
	deps, _ := newDeps(t, sampleBoard()...)

	stdout, stderr, code := runCommand(t, &commands.MoveCmd{}, deps, []string{"p2", "in-progress"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)
	assert.Equal(t, task.InProgress, stageOf(t, deps, "4"))

	stdout, _, code = runCommand(t, &commands.MoveCmd{}, deps, []string{"4", "orange"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "unchanged\n", stdout)
}

func TestMoveCommand_Errors(t *testing.T) {
	deps, _ := newDeps(t, sampleBoard()...)

	tests := []struct {
		args   []string
		stderr string
	}{
		{nil, "error: task reference and stage required\n"},
		{[]string{"p1"}, "error: task reference and stage required\n"},
		{[]string{"p1", "later"}, "error: unknown stage: later\n"},
		{[]string{"p9", "done"}, "error: task not found: p9\n"},
		{[]string{"nope", "done"}, "error: task not found: nope\n"},
	}
	for _, tt := range tests {
		_, stderr, code := runCommand(t, &commands.MoveCmd{}, deps, tt.args, false)
		assert.Equal(t, exitcode.UserError, code, "args %v", tt.args)
		assert.Equal(t, tt.stderr, stderr, "args %v", tt.args)
	}
}

func TestDragDrop(t *testing.T) {
	deps, _ := newDeps(t, sampleBoard()...)

	payload, stderr, code := runCommand(t, &commands.DragCmd{}, deps, []string{"i1"}, false)
	require.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, payload, `"id":"2"`)

	stdout, _, code := runCommand(t, &commands.DropCmd{}, deps, []string{"completed", strings.TrimSpace(payload)}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", stdout)
	assert.Equal(t, task.Completed, stageOf(t, deps, "2"))
}

func TestDrop_FromStdin(t *testing.T) {
	deps, _ := newDeps(t, sampleBoard()...)

	payload, _, _ := runCommand(t, &commands.DragCmd{}, deps, []string{"c1"}, false)

	cmd := &commands.DropCmd{}
	cmd.SetStdin(strings.NewReader(payload))
	stdout, _, code := runCommand(t, cmd, deps, []string{"pending", "-"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", stdout)
	assert.Equal(t, task.Pending, stageOf(t, deps, "3"))
}

func TestDrop_DeletedMidDrag(t *testing.T) {
	deps, _ := newDeps(t, sampleBoard()...)

	payload, _, _ := runCommand(t, &commands.DragCmd{}, deps, []string{"p1"}, false)
	_, _, code := runCommand(t, &commands.RmCmd{}, deps, []string{"1"}, true)
	require.Equal(t, exitcode.Success, code)

	before := deps.Engine.Store().Tasks()
	stdout, stderr, code := runCommand(t, &commands.DropCmd{}, deps, []string{"green", payload}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "stale\n", stdout)
	assert.Equal(t, before, deps.Engine.Store().Tasks())
}

func TestDrop_Malformed(t *testing.T) {
	deps, fs := newDeps(t, sampleBoard()...)
	writes := fs.Sets()

	_, stderr, code := runCommand(t, &commands.DropCmd{}, deps, []string{"green", "{not json"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stderr, "malformed transfer payload")
	assert.Equal(t, writes, fs.Sets())
}

func TestEditCommand(t *testing.T) {
	deps, _ := newDeps(t, sampleBoard()...)

	cmd := &commands.EditCmd{}
	fs := newFlagSet(cmd)
	require.NoError(t, fs.Parse([]string{"--priority", "Low", "--desc", "first pass", "p1"}))

	stdout, stderr, code := runCommand(t, cmd, deps, fs.Args(), false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)

	got, _ := deps.Engine.Store().Get("1")
	assert.Equal(t, task.Task{ID: "1", Title: "Write draft", Description: "first pass", Priority: "Low", Stage: task.Pending}, got)
}

func TestEditCommand_ShowsTaskWithoutFlags(t *testing.T) {
	deps, fs := newDeps(t, sampleBoard()...)
	writes := fs.Sets()

	stdout, _, code := runCommand(t, &commands.EditCmd{}, deps, []string{"c1"}, false)
	assert.Equal(t, exitcode.Success, code)
	testutil.GoldenString(t, "edit_show", stdout)
	assert.Equal(t, writes, fs.Sets())
}

func TestEditCommand_EmptyTitleRejected(t *testing.T) {
	deps, _ := newDeps(t, sampleBoard()...)

	cmd := &commands.EditCmd{}
	fs := newFlagSet(cmd)
	require.NoError(t, fs.Parse([]string{"--title", "", "p1"}))

	_, stderr, code := runCommand(t, cmd, deps, fs.Args(), false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: title required\n", stderr)
}

func TestRmCommand(t *testing.T) {
	deps, _ := newDeps(t, sampleBoard()...)

	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, deps, []string{"p1"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)

	_, found := deps.Engine.Store().Get("1")
	assert.False(t, found)
	assert.Equal(t, task.ID("4"), deps.Engine.Views().Pending[0].ID, "p1 now refers to the next task")
}

func TestRmCommand_Errors(t *testing.T) {
	deps, _ := newDeps(t, sampleBoard()...)

	_, stderr, code := runCommand(t, &commands.RmCmd{}, deps, nil, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task reference required\n", stderr)

	_, stderr, code = runCommand(t, &commands.RmCmd{}, deps, []string{"i5"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task not found: i5\n", stderr)
}

func TestExportCommand(t *testing.T) {
	deps, _ := newDeps(t, sampleBoard()...)

	cmd := &commands.ExportCmd{}
	fs := newFlagSet(cmd)
	require.NoError(t, fs.Parse([]string{"--format", "csv"}))

	stdout, _, code := runCommand(t, cmd, deps, nil, false)
	assert.Equal(t, exitcode.Success, code)
	testutil.GoldenString(t, "export_csv", stdout)
}

func TestExportCommand_ToFile(t *testing.T) {
	deps, _ := newDeps(t, sampleBoard()...)
	path := filepath.Join(t.TempDir(), "board.json")

	cmd := &commands.ExportCmd{}
	fs := newFlagSet(cmd)
	require.NoError(t, fs.Parse([]string{"-o", path}))

	stdout, _, code := runCommand(t, cmd, deps, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got, err := task.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, sampleBoard(), got)
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	deps, _ := newDeps(t)

	cmd := &commands.ExportCmd{}
	fs := newFlagSet(cmd)
	require.NoError(t, fs.Parse([]string{"--format", "xml"}))

	_, stderr, code := runCommand(t, cmd, deps, nil, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown format xml\n", stderr)
}

func TestImportCommand(t *testing.T) {
	deps, _ := newDeps(t, sampleBoard()...)
	src := testutil.NewFakeSource()
	src.AddTask(testutil.DefaultListID, "a", "Buy milk", "")
	src.AddCompletedTask(testutil.DefaultListID, "b", "Call mom")
	deps.Source = src

	stdout, stderr, code := runCommand(t, &commands.ImportCmd{}, deps, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "imported 2 tasks from My Tasks (0 skipped)\n", stdout)
	assert.Equal(t, task.Completed, stageOf(t, deps, "gtasks:b"))

	stdout, _, _ = runCommand(t, &commands.ImportCmd{}, deps, nil, false)
	assert.Equal(t, "imported 0 tasks from My Tasks (2 skipped)\n", stdout)
}

func TestImportCommand_ListNotFound(t *testing.T) {
	deps, _ := newDeps(t)
	deps.Source = testutil.NewFakeSource()

	cmd := &commands.ImportCmd{}
	cmd.SetListName("Work")
	_, stderr, code := runCommand(t, cmd, deps, nil, false)
	assert.Equal(t, exitcode.BackendError, code)
	assert.Equal(t, "error: backend error: not found\n", stderr)
}
