package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/misha-mad/vercel-rpc-sub000/errors"
	"github.com/misha-mad/vercel-rpc-sub000/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects callback invocations.
type recorder struct {
	mu    sync.Mutex
	calls [][]string
	ch    chan []string
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan []string, 16)}
}

func (r *recorder) callback(ctx context.Context, changed []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, changed)
	r.mu.Unlock()
	r.ch <- changed
	return nil
}

func (r *recorder) next(t *testing.T) []string {
	t.Helper()
	select {
	case changed := <-r.ch:
		return changed
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rebuild")
		return nil
	}
}

func (r *recorder) none(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case changed := <-r.ch:
		t.Fatalf("unexpected rebuild for %v", changed)
	case <-time.After(wait):
	}
}

func startWatcher(t *testing.T, opts Options, cb Callback) {
	t.Helper()
	w, err := New(opts, cb)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-errCh)
	})
}

func TestWatcherRebuildsOnRustChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))

	rec := newRecorder()
	startWatcher(t, Options{Dir: dir, Debounce: 50 * time.Millisecond, Out: &bytes.Buffer{}}, rec.callback)

	lib := filepath.Join(dir, "lib.rs")
	require.NoError(t, os.WriteFile(lib, []byte("fn a() {}"), 0644))
	assert.Equal(t, []string{lib}, rec.next(t))

	nested := filepath.Join(dir, "nested", "user.rs")
	require.NoError(t, os.WriteFile(nested, []byte("struct U;"), 0644))
	assert.Equal(t, []string{nested}, rec.next(t))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0644))
	rec.none(t, 300*time.Millisecond)
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, Options{Dir: dir, Debounce: 50 * time.Millisecond, Out: &bytes.Buffer{}}, rec.callback)

	sub := filepath.Join(dir, "handlers")
	require.NoError(t, os.Mkdir(sub, 0755))
	// Give the watcher time to add the new directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(sub, "hello.rs")
	require.NoError(t, os.WriteFile(path, []byte("fn hello() {}"), 0644))
	assert.Contains(t, rec.next(t), path)
}

func TestWatcherRespectsExclude(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gen"), 0755))

	rec := newRecorder()
	startWatcher(t, Options{
		Dir:      dir,
		Matcher:  parser.NewMatcher(nil, []string{"gen/**"}),
		Debounce: 50 * time.Millisecond,
		Out:      &bytes.Buffer{},
	}, rec.callback)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "gen", "out.rs"), []byte("x"), 0644))
	rec.none(t, 300*time.Millisecond)
}

func TestDebounceCoalesces(t *testing.T) {
	w, err := New(Options{Dir: t.TempDir(), Debounce: 100 * time.Millisecond, Out: &bytes.Buffer{}}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { w.watcher.Close() })
	rec := newRecorder()
	w.callback = rec.callback

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.rebuildLoop(ctx)

	w.schedule("b.rs")
	w.schedule("a.rs")
	w.schedule("b.rs")

	assert.Equal(t, []string{"a.rs", "b.rs"}, rec.next(t))
	rec.none(t, 250*time.Millisecond)
}

func TestCallbacksNeverOverlap(t *testing.T) {
	var running, maxRunning, calls int32
	release := make(chan struct{})

	cb := func(ctx context.Context, changed []string) error {
		n := atomic.AddInt32(&running, 1)
		for {
			m := atomic.LoadInt32(&maxRunning)
			if n <= m || atomic.CompareAndSwapInt32(&maxRunning, m, n) {
				break
			}
		}
		atomic.AddInt32(&calls, 1)
		<-release
		atomic.AddInt32(&running, -1)
		return nil
	}

	w, err := New(Options{Dir: t.TempDir(), Debounce: 10 * time.Millisecond, Out: &bytes.Buffer{}}, cb)
	require.NoError(t, err)
	t.Cleanup(func() { w.watcher.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.rebuildLoop(ctx)

	w.schedule("a.rs")
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, 2*time.Second, 5*time.Millisecond)

	// Changes during a rebuild queue a single follow-up.
	w.schedule("b.rs")
	time.Sleep(50 * time.Millisecond)
	w.schedule("c.rs")
	time.Sleep(50 * time.Millisecond)

	close(release)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 2 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxRunning))
}

func TestCallbackErrorsKeepWatching(t *testing.T) {
	var calls int32
	cb := func(ctx context.Context, changed []string) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("boom")
	}

	out := &bytes.Buffer{}
	w, err := New(Options{Dir: t.TempDir(), Debounce: 10 * time.Millisecond, ClearScreen: true, Out: out}, cb)
	require.NoError(t, err)
	t.Cleanup(func() { w.watcher.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.rebuildLoop(ctx)
	}()

	w.schedule("a.rs")
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, 2*time.Second, 5*time.Millisecond)
	w.schedule("b.rs")
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 2 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, clearScreen+clearScreen, out.String())
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(Options{Dir: filepath.Join(t.TempDir(), "missing")}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
