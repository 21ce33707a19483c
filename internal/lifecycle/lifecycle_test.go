// Package lifecycle tests the exit stack and command timing wrappers.
// Related: internal/lifecycle/handler.go, internal/lifecycle/exits.go
// Tags: lifecycle, cleanup, timing

package lifecycle

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	name     string
	success  bool
	duration time.Duration
	calls    int
}

func (h *recordingHandler) OnCommandComplete(name string, success bool, duration time.Duration) {
	h.name = name
	h.success = success
	h.duration = duration
	h.calls++
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		fnErr       error
		wantSuccess bool
	}{
		"success": {wantSuccess: true},
		"failure": {fnErr: errors.New("boom"), wantSuccess: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			handler := &recordingHandler{}
			err := Run(handler, "directories", func() error {
				time.Sleep(time.Millisecond)
				return tt.fnErr
			})

			assert.Equal(t, tt.fnErr, err)
			assert.Equal(t, 1, handler.calls)
			assert.Equal(t, "directories", handler.name)
			assert.Equal(t, tt.wantSuccess, handler.success)
			assert.GreaterOrEqual(t, handler.duration, time.Millisecond)
		})
	}
}

func TestRunWithContext_NilHandler(t *testing.T) {
	t.Parallel()

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "value")

	err := RunWithContext(ctx, nil, "configuration", func(ctx context.Context) error {
		assert.Equal(t, "value", ctx.Value(key{}))
		return nil
	})
	assert.NoError(t, err)
}

func TestLogHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	handler := &LogHandler{Logger: logger}

	require.NoError(t, Run(handler, "environment", func() error { return nil }))
	assert.Contains(t, buf.String(), "command=environment")
	assert.Contains(t, buf.String(), "success=true")

	var nilHandler *LogHandler
	assert.NotPanics(t, func() { nilHandler.OnCommandComplete("x", true, 0) })
}

func TestExits_CloseRunsInReverseOrder(t *testing.T) {
	t.Parallel()

	exits := NewExits()
	var order []int
	for i := range 3 {
		require.NoError(t, exits.Push(func() error {
			order = append(order, i)
			return nil
		}))
	}
	assert.Equal(t, 3, exits.Len())

	require.NoError(t, exits.Close())
	assert.Equal(t, []int{2, 1, 0}, order)
	assert.Equal(t, 0, exits.Len())
}

func TestExits_CloseJoinsFailures(t *testing.T) {
	t.Parallel()

	first := errors.New("first")
	second := errors.New("second")
	ran := 0

	var exits Exits
	require.NoError(t, exits.Push(func() error { ran++; return first }))
	require.NoError(t, exits.Push(func() error { ran++; return nil }))
	require.NoError(t, exits.Push(func() error { ran++; return second }))

	err := exits.Close()
	assert.Equal(t, 3, ran)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}

func TestExits_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	exits := NewExits()
	calls := 0
	require.NoError(t, exits.Push(func() error { calls++; return nil }))

	require.NoError(t, exits.Close())
	require.NoError(t, exits.Close())
	assert.Equal(t, 1, calls)
}

func TestExits_PushAfterCloseRunsImmediately(t *testing.T) {
	t.Parallel()

	exits := NewExits()
	require.NoError(t, exits.Close())

	ran := false
	err := exits.Push(func() error { ran = true; return errors.New("late") })
	assert.True(t, ran)
	assert.EqualError(t, err, "late")
}

type closer struct{ closed bool }

func (c *closer) Close() error {
	c.closed = true
	return nil
}

func TestExits_PushCloser(t *testing.T) {
	t.Parallel()

	exits := NewExits()
	c := &closer{}
	require.NoError(t, exits.PushCloser(c))
	require.NoError(t, exits.Close())
	assert.True(t, c.closed)
}
