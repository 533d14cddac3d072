package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/editsys/internal/document"
	"github.com/dshills/editsys/internal/engine/history"
)

type fixture struct {
	doc    *document.Document
	h      *history.History
	runner *Runner
	out    *bytes.Buffer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	h := history.New()
	doc := document.New(h)
	out := &bytes.Buffer{}
	r := New(doc, h, append([]Option{WithOutput(out)}, opts...)...)
	t.Cleanup(func() { _ = r.Close() })
	return &fixture{doc: doc, h: h, runner: r, out: out}
}

func (f *fixture) run(t *testing.T, code string) error {
	t.Helper()
	return f.runner.Run(context.Background(), "test.lua", code)
}

func TestScalarProperties(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, `
		assert(doc.set_title("Draft") == true)
		assert(doc.set_title("Draft") == false)
		doc.set_count(4)
		doc.set_flag("starred", true)
		assert(doc.flag("starred"))
		assert(not doc.flag("locked"))
		print(doc.title(), doc.count())
	`))

	assert.Equal(t, "Draft", f.doc.Title())
	assert.Equal(t, 4, f.doc.Count())
	assert.True(t, f.doc.HasFlag(document.Starred))
	assert.Equal(t, 3, f.h.UndoCount())
	assert.Equal(t, "Draft\t4\n", f.out.String())
}

func TestItemsAreOneBased(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, `
		doc.add("a")
		doc.add("c")
		doc.add("b", 2)
		doc.move(1, 3)
		local removed = doc.remove(1)
		assert(removed == "b", removed)
		doc.replace(1, "z")
		local items = doc.items()
		assert(#items == 2 and items[1] == "z" and items[2] == "a")
	`))

	assert.Equal(t, []string{"z", "a"}, f.doc.Names())
}

func TestUndoRedoFromScript(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, `
		doc.set_title("one")
		doc.set_title("two")
		history.undo()
		assert(doc.title() == "one")
		assert(history.can_redo())
		history.redo()
		assert(doc.title() == "two")
		assert(history.undo_count() == 2)
		assert(history.redo_count() == 0)
	`))
}

func TestBatchFromScript(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, `
		history.batch(function()
			doc.set_title("Draft")
			doc.add("intro")
			doc.add("body")
			doc.add_tag("wip")
		end)
		assert(history.undo_count() == 1)
		history.undo()
		assert(#doc.items() == 0)
		assert(#doc.tags() == 0)
		assert(doc.title() == "")
	`))

	require.NoError(t, f.run(t, `
		history.begin_batch()
		doc.set_count(1)
		history.begin_batch()
		doc.set_count(2)
		history.end_batch()
		history.end_batch()
	`))
	assert.Equal(t, 1, f.h.UndoCount())
}

func TestPauseFromScript(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, `
		history.begin_pause()
		doc.set_count(9)
		history.end_pause()
		assert(not history.can_undo())
	`))
	assert.Equal(t, 9, f.doc.Count())
}

func TestClearFromScript(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, `
		doc.add("a")
		doc.add("b")
		history.clear()
		doc.clear()
		assert(history.undo_count() == 1)
		history.undo()
		assert(#doc.items() == 2)
	`))
}

func TestErrorsAreLuaErrors(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, `
		local ok, err = pcall(doc.remove, 5)
		assert(not ok)
		assert(string.find(err, "index out of range"), err)

		ok, err = pcall(doc.flag, "pinned")
		assert(not ok)
		assert(string.find(err, "unknown flag"), err)

		ok, err = pcall(history.end_batch)
		assert(not ok)
		assert(string.find(err, "batch"), err)

		ok = pcall(doc.add, "x", 0)
		assert(not ok)
	`))
}

func TestRuntimeErrorFailsRun(t *testing.T) {
	f := newFixture(t)

	err := f.run(t, `doc.move(1, 2)`)
	assert.ErrorContains(t, err, "index out of range")

	err = f.run(t, `this is not lua`)
	assert.Error(t, err)
}

func TestBatchFunctionErrorClosesBatch(t *testing.T) {
	f := newFixture(t)

	err := f.run(t, `
		history.batch(function()
			doc.set_count(1)
			error("stop")
		end)
	`)
	assert.ErrorContains(t, err, "stop")
	assert.Equal(t, 0, f.h.BatchDepth())
	assert.Equal(t, 1, f.h.UndoCount())
}

func TestUnbalancedScript(t *testing.T) {
	f := newFixture(t)

	err := f.run(t, `
		history.begin_batch()
		doc.set_count(1)
		history.begin_pause()
	`)
	assert.ErrorIs(t, err, ErrUnbalanced)
	assert.Equal(t, 0, f.h.BatchDepth())
	assert.Equal(t, 0, f.h.PauseDepth())
	assert.Equal(t, 1, f.h.UndoCount(), "open batch still reaches the stack")
}

func TestSandbox(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, `
		assert(io == nil)
		assert(os == nil)
		assert(require == nil)
		assert(dofile == nil)
		assert(loadstring == nil)
		assert(string.upper("x") == "X")
		assert(math.max(1, 2) == 2)
	`))
}

func TestTimeout(t *testing.T) {
	f := newFixture(t, WithTimeout(50*time.Millisecond))

	err := f.run(t, `while true do end`)
	assert.ErrorIs(t, err, ErrTimeout)

	require.NoError(t, f.run(t, `doc.set_count(1)`), "runner is usable after a timeout")
}

func TestCanceledContext(t *testing.T) {
	f := newFixture(t, WithTimeout(0))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := f.runner.Run(ctx, "spin.lua", `while true do end`)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunFile(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "edit.lua")
	require.NoError(t, os.WriteFile(path, []byte(`doc.add_tag("file")`), 0o600))

	require.NoError(t, f.runner.RunFile(context.Background(), path))
	assert.True(t, f.doc.HasTag("file"))

	assert.Error(t, f.runner.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua")))
}

func TestClosedRunner(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.runner.Close())
	require.NoError(t, f.runner.Close())

	assert.ErrorIs(t, f.run(t, `x = 1`), ErrClosed)
}

func TestGlobalsPersistAcrossRuns(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, `counter = 41`))
	require.NoError(t, f.run(t, `counter = counter + 1; doc.set_count(counter)`))
	assert.Equal(t, 42, f.doc.Count())
}
