package gles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startThread(t *testing.T) (*Thread, *fakeGL, func() error) {
	t.Helper()
	glctx := newFakeGL()
	thread := NewThread(glctx, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- thread.Run(ctx)
	}()
	stop := func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("render thread did not stop")
			return nil
		}
	}
	t.Cleanup(func() { cancel() })
	return thread, glctx, stop
}

func TestThreadRunSyncExecutesOnRenderGoroutine(t *testing.T) {
	thread, glctx, stop := startThread(t)

	var onThread bool
	err := thread.RunSync(func(c Context) error {
		onThread = thread.IsCurrent()
		c.CreateBuffer()
		return nil
	})
	require.NoError(t, err)
	assert.True(t, onThread)
	assert.False(t, thread.IsCurrent())

	require.NoError(t, thread.RunSync(func(Context) error {
		assert.Equal(t, 1, glctx.count("CreateBuffer"))
		return nil
	}))
	assert.ErrorIs(t, stop(), context.Canceled)
}

func TestThreadRunAsyncPreservesOrder(t *testing.T) {
	thread, _, stop := startThread(t)

	var order []int
	for i := 0; i < 10; i++ {
		thread.RunAsync(func(Context) error {
			order = append(order, i)
			return nil
		})
	}
	var got []int
	require.NoError(t, thread.RunSync(func(Context) error {
		got = append(got, order...)
		return nil
	}))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
	stop()
}

func TestThreadRunSyncReturnsTaskErrors(t *testing.T) {
	thread, _, stop := startThread(t)
	defer stop()

	boom := errors.New("boom")
	assert.ErrorIs(t, thread.RunSync(func(Context) error { return boom }), boom)

	err := thread.RunSync(func(Context) error { panic("bad task") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad task")
}

func TestThreadClosedRejectsWork(t *testing.T) {
	thread, _, stop := startThread(t)
	stop()

	assert.ErrorIs(t, thread.RunSync(func(Context) error { return nil }), ErrThreadClosed)
	thread.RunAsync(func(Context) error { return nil })
}

func TestCheckedContextPanicsOffThread(t *testing.T) {
	thread := NewThread(newFakeGL(), 1)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, core.ErrWrongThread))
	}()
	thread.Context().CreateBuffer()
}

func TestThreadFlushFromFrameLoop(t *testing.T) {
	glctx := newFakeGL()
	thread := NewThread(glctx, 1)

	thread.Attach()
	defer thread.Detach()

	thread.RunAsync(func(c Context) error {
		c.CreateBuffer()
		return nil
	})
	thread.RunAsync(func(c Context) error {
		c.CreateVertexArray()
		return nil
	})
	assert.Equal(t, 2, thread.Flush())
	assert.Equal(t, 0, thread.Flush())
	assert.Equal(t, []string{"CreateBuffer", "CreateVertexArray"}, glctx.calls)

	ran := false
	require.NoError(t, thread.RunSync(func(Context) error {
		ran = true
		return nil
	}))
	assert.True(t, ran, "RunSync on the render goroutine runs inline")
}

func TestThreadRendersGeometry(t *testing.T) {
	thread, glctx, stop := startThread(t)
	defer stop()

	g := NewGeometry("cube")
	g.SetAttribute(PositionAttribute, positionAttribute(t, cubeCorners()))

	require.NoError(t, thread.RunSync(func(c Context) error {
		glctx.useProgram(1, map[string]int{PositionAttribute: 0})
		g.Render(c)
		return nil
	}))
	require.NoError(t, thread.RunSync(func(Context) error {
		assert.Equal(t, 8, glctx.drawn)
		return nil
	}))

	defer func() {
		assert.NotNil(t, recover(), "rendering off the render goroutine must panic")
	}()
	g.Render(thread.Context())
}
