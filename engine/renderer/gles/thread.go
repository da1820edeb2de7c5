package gles

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/spaghettifunk/anima/engine/containers"
	"github.com/spaghettifunk/anima/engine/core"
)

var ErrThreadClosed = errors.New("render thread closed")

type task struct {
	fn   func(Context) error
	done chan error
}

/**
 * @brief The single goroutine allowed to touch a GL context.
 * Work is handed to it with RunSync or RunAsync and executed in submission order.
 */
type Thread struct {
	glctx   Context
	checked *checkedContext

	mu     sync.Mutex
	cond   *sync.Cond
	queue  *containers.RingQueue[task]
	closed bool

	owner atomic.Int64
}

func NewThread(glctx Context, queueSize int) *Thread {
	t := &Thread{
		glctx: glctx,
		queue: containers.NewRingQueue[task](queueSize),
	}
	t.cond = sync.NewCond(&t.mu)
	t.checked = &checkedContext{t: t, gl: glctx}
	return t
}

// goid returns the id of the calling goroutine.
func goid() int64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		panic(fmt.Sprintf("gles: cannot parse goroutine id: %v", err))
	}
	return id
}

// Attach makes the calling goroutine the render goroutine and locks it to its OS thread.
func (t *Thread) Attach() {
	runtime.LockOSThread()
	t.owner.Store(goid())
}

// Detach releases the render goroutine binding made by Attach.
func (t *Thread) Detach() {
	if t.IsCurrent() {
		t.owner.Store(0)
		runtime.UnlockOSThread()
	}
}

// IsCurrent reports whether the caller is the render goroutine.
func (t *Thread) IsCurrent() bool {
	owner := t.owner.Load()
	return owner != 0 && owner == goid()
}

// Check panics unless called from the render goroutine.
func (t *Thread) Check() {
	if !t.IsCurrent() {
		panic(fmt.Errorf("%w (goroutine %d)", core.ErrWrongThread, goid()))
	}
}

// Context returns the GL context guarded by the render goroutine check.
func (t *Thread) Context() Context {
	return t.checked
}

// RunSync runs fn on the render goroutine and waits for it to finish.
// Called from the render goroutine it runs fn immediately.
func (t *Thread) RunSync(fn func(Context) error) error {
	if t.IsCurrent() {
		return t.execute(fn)
	}
	done := make(chan error, 1)
	if err := t.enqueue(task{fn: fn, done: done}); err != nil {
		return err
	}
	return <-done
}

// RunAsync queues fn for the render goroutine and returns immediately.
// Errors returned by fn are logged.
func (t *Thread) RunAsync(fn func(Context) error) {
	if err := t.enqueue(task{fn: fn}); err != nil {
		core.LogWarn("render task dropped: %s", err)
	}
}

func (t *Thread) enqueue(tk task) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrThreadClosed
	}
	t.queue.Enqueue(tk)
	t.cond.Signal()
	return nil
}

// Flush runs every queued task. It must be called from the render goroutine,
// typically once per frame. It returns the number of tasks executed.
func (t *Thread) Flush() int {
	t.Check()
	n := 0
	for {
		t.mu.Lock()
		tk, err := t.queue.Dequeue()
		t.mu.Unlock()
		if err != nil {
			return n
		}
		t.runTask(tk)
		n++
	}
}

// Run attaches the calling goroutine and executes tasks until ctx is done or
// the thread is closed. Tasks queued before that point still run.
func (t *Thread) Run(ctx context.Context) error {
	t.Attach()
	defer t.Detach()

	stop := context.AfterFunc(ctx, func() {
		t.Close()
	})
	defer stop()

	for {
		t.mu.Lock()
		for t.queue.IsEmpty() && !t.closed {
			t.cond.Wait()
		}
		tk, err := t.queue.Dequeue()
		closed := t.closed
		t.mu.Unlock()

		if err != nil && closed {
			return ctx.Err()
		}
		if err == nil {
			t.runTask(tk)
		}
	}
}

// Close stops accepting work. A goroutine blocked in Run returns once the queue is drained.
func (t *Thread) Close() {
	t.mu.Lock()
	t.closed = true
	t.cond.Broadcast()
	t.mu.Unlock()
}

func (t *Thread) runTask(tk task) {
	err := t.execute(tk.fn)
	if tk.done != nil {
		tk.done <- err
		return
	}
	if err != nil {
		core.LogError("render task failed: %s", err)
	}
}

func (t *Thread) execute(fn func(Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("render task panicked: %w", e)
				return
			}
			err = fmt.Errorf("render task panicked: %v", r)
		}
	}()
	return fn(t.checked)
}

// checkedContext forwards to the GL context after verifying the caller is the render goroutine.
type checkedContext struct {
	t  *Thread
	gl Context
}
