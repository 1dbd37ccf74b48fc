package journal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 10, 8, 21, 1, 5, 0, time.UTC)

func newTestJournal(t *testing.T, lines ...string) *Journal {
	t.Helper()
	j := New(WithClock(func() time.Time { return fixedTime }))
	for _, line := range lines {
		require.NoError(t, j.Append(line, "INFO"))
	}
	return j
}

type sinkFunc func(string) error

func (f sinkFunc) WriteLine(line string) error { return f(line) }

func TestAddUndoRedoScenario(t *testing.T) {
	j := newTestJournal(t)

	idx, err := j.Add("hello", "COMMENT", -1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	require.Equal(t, 1, j.Len())
	added, _ := j.Entry(0)
	assert.Equal(t, "[21:01:05] [COMMENT] hello", added.Message)
	assert.Equal(t, "COMMENT", added.Level)
	assert.Equal(t, StateAdded, added.State)
	assert.Equal(t, 1, j.UndoDepth())

	out := j.Undo()
	assert.True(t, out.Applied)
	assert.Equal(t, "Undid: Add log at line 1", out.Message)
	assert.Equal(t, 0, j.Len())
	assert.Equal(t, 1, j.RedoDepth())

	out = j.Redo()
	assert.True(t, out.Applied)
	require.Equal(t, 1, j.Len())
	restored, _ := j.Entry(0)
	assert.Equal(t, added, restored)
	assert.Equal(t, 1, j.UndoDepth())
	assert.Equal(t, 0, j.RedoDepth())
}

func TestAddInsertsAfterSelection(t *testing.T) {
	j := newTestJournal(t, "a", "b", "c")

	idx, err := j.Add("note", "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	e, _ := j.Entry(1)
	assert.Equal(t, "COMMENT", e.Level, "empty level defaults to COMMENT")

	idx, err = j.Add("tail", "warning", 99)
	require.NoError(t, err)
	assert.Equal(t, 4, idx)
	e, _ = j.Entry(4)
	assert.Equal(t, "WARNING", e.Level)
}

func TestAddRejectsEmptyContent(t *testing.T) {
	j := newTestJournal(t, "a")

	_, err := j.Add("   \t", "COMMENT", -1)
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Equal(t, 1, j.Len())
	assert.Equal(t, 0, j.UndoDepth())
}

func TestEdit(t *testing.T) {
	j := newTestJournal(t, "[10:00:00] [ERROR] disk failure")

	require.NoError(t, j.Edit(0, "disk recovered", ""))
	e, _ := j.Entry(0)
	assert.Equal(t, "[21:01:05] [INFO] disk recovered", e.Message, "level comes from the entry")
	assert.Equal(t, StateModified, e.State)

	require.NoError(t, j.Edit(0, "again", "error"))
	e, _ = j.Entry(0)
	assert.Equal(t, "ERROR", e.Level)
	assert.Equal(t, StateModified, e.State)
}

func TestEditErrors(t *testing.T) {
	j := newTestJournal(t, "a")

	err := j.Edit(3, "x", "")
	assert.True(t, errors.Is(err, ErrNoEntry))
	assert.ErrorIs(t, j.Edit(-1, "x", ""), ErrNoEntry)
	assert.ErrorIs(t, j.Edit(0, " ", ""), ErrEmptyContent)
	assert.Equal(t, 0, j.UndoDepth())
}

func TestDeleteIsSoftAndPrefixesOnce(t *testing.T) {
	j := newTestJournal(t, "a", "b")

	require.NoError(t, j.Delete(1))
	require.NoError(t, j.Delete(1))

	e, _ := j.Entry(1)
	assert.Equal(t, StateDeleted, e.State)
	assert.Equal(t, "DELETED: b", e.Message)
	assert.Equal(t, 2, j.Len(), "delete never removes")
	assert.ErrorIs(t, j.Delete(2), ErrNoEntry)
}

func TestDeleteMatchesExactPrefix(t *testing.T) {
	j := newTestJournal(t, "DELETED:foo", "  DELETED: padded")

	require.NoError(t, j.Delete(0))
	require.NoError(t, j.Delete(1))

	e, _ := j.Entry(0)
	assert.Equal(t, "DELETED: DELETED:foo", e.Message)
	e, _ = j.Entry(1)
	assert.Equal(t, "DELETED:   DELETED: padded", e.Message)

	j.Undo()
	j.Undo()
	e, _ = j.Entry(0)
	assert.Equal(t, "DELETED:foo", e.Message)
	assert.Equal(t, StateSaved, e.State)

	j.Redo()
	e, _ = j.Entry(0)
	assert.Equal(t, "DELETED: DELETED:foo", e.Message)
}

func TestNewActionClearsRedo(t *testing.T) {
	ops := map[string]func(j *Journal) error{
		"add": func(j *Journal) error {
			_, err := j.Add("x", "", -1)
			return err
		},
		"edit":   func(j *Journal) error { return j.Edit(0, "x", "") },
		"delete": func(j *Journal) error { return j.Delete(0) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			j := newTestJournal(t, "a", "b")
			require.NoError(t, j.Delete(1))
			require.NoError(t, j.Edit(1, "b2", ""))
			j.Undo()
			j.Undo()
			require.Equal(t, 2, j.RedoDepth())

			require.NoError(t, op(j))
			assert.Equal(t, 0, j.RedoDepth())
		})
	}
}

func TestUndoRestoresOriginalState(t *testing.T) {
	j := newTestJournal(t, "one", "two", "three")
	require.NoError(t, j.Append("[12:00:00] [WARNING] four", "WARNING"))
	before := j.Entries()

	_, err := j.Add("comment", "COMMENT", 0)
	require.NoError(t, err)
	require.NoError(t, j.Edit(2, "two edited", "ERROR"))
	require.NoError(t, j.Delete(2))
	require.NoError(t, j.Delete(4))
	_, err = j.Add("tail", "DEBUG", -1)
	require.NoError(t, err)
	require.NoError(t, j.Edit(1, "comment edited", ""))
	require.NoError(t, j.Edit(1, "comment edited twice", ""))

	for j.UndoDepth() > 0 {
		require.True(t, j.Undo().Applied)
	}
	assert.Equal(t, before, j.Entries())
}

func TestRedoAfterUndoRoundTrip(t *testing.T) {
	ops := map[string]func(j *Journal) error{
		"add": func(j *Journal) error {
			_, err := j.Add("x", "TRACE", 0)
			return err
		},
		"edit":   func(j *Journal) error { return j.Edit(1, "edited", "FATAL") },
		"delete": func(j *Journal) error { return j.Delete(1) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			j := newTestJournal(t, "a", "b", "c")
			require.NoError(t, op(j))
			want := j.Entries()

			require.True(t, j.Undo().Applied)
			require.True(t, j.Redo().Applied)

			assert.Equal(t, want, j.Entries())
			assert.Equal(t, 1, j.UndoDepth())
			assert.Equal(t, 0, j.RedoDepth())
		})
	}
}

func TestEditUndoRedoSwapsVersions(t *testing.T) {
	j := newTestJournal(t, "orig")
	require.NoError(t, j.Edit(0, "first", ""))
	require.NoError(t, j.Edit(0, "second", ""))

	j.Undo()
	e, _ := j.Entry(0)
	assert.True(t, strings.HasSuffix(e.Message, "first"))

	j.Undo()
	e, _ = j.Entry(0)
	assert.Equal(t, Entry{Message: "orig", Level: "INFO", State: StateSaved}, e)

	j.Redo()
	j.Redo()
	e, _ = j.Entry(0)
	assert.True(t, strings.HasSuffix(e.Message, "second"))
	assert.Equal(t, StateModified, e.State)
}

func TestUndoRedoOnEmptyStacks(t *testing.T) {
	j := newTestJournal(t, "a")
	before := j.Entries()

	out := j.Undo()
	assert.False(t, out.Applied)
	assert.Equal(t, "Nothing to undo.", out.Message)

	out = j.Redo()
	assert.False(t, out.Applied)
	assert.Equal(t, "Nothing to redo.", out.Message)
	assert.Equal(t, before, j.Entries())
}

func TestUndoWithMissingLineStillPops(t *testing.T) {
	j := newTestJournal(t, "a", "b")
	require.NoError(t, j.Delete(1))

	j.entries = j.entries[:1]
	out := j.Undo()
	assert.False(t, out.Applied)
	assert.Equal(t, "Undo failed: line 2 no longer exists.", out.Message)
	assert.Equal(t, 0, j.UndoDepth())
	assert.Equal(t, 0, j.RedoDepth())
}

func TestUndoNAndRedoN(t *testing.T) {
	j := newTestJournal(t)
	for _, s := range []string{"a", "b", "c"} {
		_, err := j.Add(s, "", -1)
		require.NoError(t, err)
	}

	out := j.UndoN(2)
	assert.True(t, out.Applied)
	assert.Equal(t, "Undid 2 actions.", out.Message)
	assert.Equal(t, 1, j.Len())

	out = j.UndoN(5)
	assert.True(t, out.Applied)
	assert.Equal(t, 0, j.Len())

	out = j.UndoN(1)
	assert.False(t, out.Applied)
	assert.Equal(t, "Nothing to undo.", out.Message)

	out = j.RedoN(0)
	assert.True(t, out.Applied)
	assert.Equal(t, 1, j.Len())
}

func TestAppendMirrorsToSink(t *testing.T) {
	j := newTestJournal(t)
	var got []string
	j.SetSink(sinkFunc(func(line string) error {
		got = append(got, line)
		return nil
	}))

	require.NoError(t, j.Append("x", "INFO"))
	assert.Equal(t, []string{"x"}, got)

	j.SetSink(sinkFunc(func(string) error { return os.ErrPermission }))
	err := j.Append("y", "INFO")
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, 2, j.Len(), "in-memory append stands when the mirror fails")
}

func TestSaveCompacts(t *testing.T) {
	j := newTestJournal(t, "a", "b", "c")
	require.NoError(t, j.Delete(1))
	_, err := j.Add("note", "COMMENT", 2)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "session.log")
	require.NoError(t, j.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nc\n[21:01:05] [COMMENT] note\n", string(data))

	require.Equal(t, 3, j.Len())
	for _, e := range j.Entries() {
		assert.Equal(t, StateSaved, e.State)
	}
	assert.Equal(t, 0, j.UndoDepth())
	assert.Equal(t, 0, j.RedoDepth())
}

func TestSaveWriteFailureKeepsCompaction(t *testing.T) {
	j := newTestJournal(t, "a", "b")
	require.NoError(t, j.Delete(0))

	err := j.Save(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	require.Error(t, err)
	assert.Equal(t, 1, j.Len())
}

func TestResetAndClearHistory(t *testing.T) {
	j := newTestJournal(t, "a")
	require.NoError(t, j.Delete(0))

	j.ClearHistory()
	assert.Equal(t, 0, j.UndoDepth())
	assert.Equal(t, 1, j.Len())

	j.Reset([]Entry{{Message: "x", Level: "INFO"}, {Message: "y", Level: "ERROR"}})
	assert.Equal(t, 2, j.Len())
	assert.False(t, j.Dirty())
}

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[21:01:05] [COMMENT] hello world", "hello world"},
		{"  [21:01:05]  [CUSTOM_LEVEL]   spaced", "spaced"},
		{"no prefix here", "no prefix here"},
		{"[21:01:05] missing level", "[21:01:05] missing level"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripPrefix(tt.in))
	}
}
