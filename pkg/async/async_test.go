package async_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/starterkit/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		t.Parallel()
		f := async.Async(context.Background(), 42, func(_ context.Context, n int) (string, error) {
			time.Sleep(10 * time.Millisecond)
			return fmt.Sprintf("Number: %d", n), nil
		})
		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, "Number: 42", res)

		select {
		case <-f.Done():
		default:
			t.Fatal("future should be complete after Await")
		}
	})

	t.Run("propagates error", func(t *testing.T) {
		t.Parallel()
		want := errors.New("failed")
		f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
			return 0, want
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, want)
	})

	t.Run("pre-cancelled context skips fn", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		f := async.Async(ctx, 0, func(context.Context, int) (int, error) {
			called = true
			return 1, nil
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}
