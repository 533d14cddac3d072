package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/editsys/internal/document"
	"github.com/dshills/editsys/internal/engine/history"
)

// DefaultTimeout bounds a run when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Runner executes Lua scripts against one document and history.
//
// gopher-lua's LState is not goroutine-safe. Runner serializes its own
// methods, but the document and history must not be used elsewhere while a
// run is in progress.
type Runner struct {
	L *lua.LState

	mu sync.Mutex

	doc     *document.Document
	history *history.History

	// Configuration
	timeout time.Duration
	logger  *zap.Logger
	output  io.Writer

	closed bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout bounds every run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithOutput redirects print. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.output = w
	}
}

// New creates a Runner whose scripts edit doc and drive h.
func New(doc *document.Document, h *history.History, opts ...Option) *Runner {
	r := &Runner{
		doc:     doc,
		history: h,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
		output:  os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.L = lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(r.L)
	r.installSandbox()
	r.installModules()

	return r
}

// openSafeLibraries opens only the Lua standard libraries that cannot reach
// the file system or the process.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

func (r *Runner) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		r.L.SetGlobal(name, lua.LNil)
	}

	r.L.SetGlobal("print", r.L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		parts := make([]string, top)
		for i := 1; i <= top; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(r.output, strings.Join(parts, "\t"))
		return 0
	}))
}

// Run executes code. name identifies the chunk in error messages.
//
// If the script leaves batches or pauses open, they are closed and the run
// fails with ErrUnbalanced, unless it already failed for another reason.
func (r *Runner) Run(ctx context.Context, name, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	batchDepth, pauseDepth := r.history.BatchDepth(), r.history.PauseDepth()
	start := time.Now()

	err := r.doWithRecovery(func() error {
		fn, err := r.L.Load(strings.NewReader(code), name)
		if err != nil {
			return err
		}
		r.L.Push(fn)
		return r.L.PCall(0, lua.MultRet, nil)
	})
	r.L.SetTop(0)

	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			err = fmt.Errorf("%s: %w", name, ErrTimeout)
		} else {
			err = fmt.Errorf("%s: %w", name, ctxErr)
		}
	}

	if r.unwind(batchDepth, pauseDepth) && err == nil {
		err = fmt.Errorf("%s: %w", name, ErrUnbalanced)
	}

	r.logger.Debug("script: run",
		zap.String("name", name),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))
	return err
}

// RunFile reads and executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return r.Run(ctx, filepath.Base(path), string(data))
}

// unwind closes pauses and then batches opened since the run began and
// reports whether there were any. Pauses go first so that open batches
// still reach the undo stack.
func (r *Runner) unwind(batchDepth, pauseDepth int) bool {
	open := false
	for r.history.PauseDepth() > pauseDepth {
		open = true
		_ = r.history.EndPause()
	}
	for r.history.BatchDepth() > batchDepth {
		open = true
		_ = r.history.EndBatch()
	}
	return open
}

// doWithRecovery executes a function with panic recovery.
func (r *Runner) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}

// Close releases the Lua state. Later runs return ErrClosed.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.L.Close()
	r.closed = true
	return nil
}
