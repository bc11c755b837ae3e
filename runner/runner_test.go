package runner

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func counting(counter *atomic.Int32, err error) Runnable {
	return RunnableFunc(func(context.Context) error {
		counter.Add(1)
		return err
	})
}

func TestRunAll(t *testing.T) {
	t.Run("it should run all runnables successfully", func(t *testing.T) {
		// GIVEN
		var counter atomic.Int32

		// WHEN
		err := RunAll(context.Background(), counting(&counter, nil), counting(&counter, nil), counting(&counter, nil))

		// THEN
		assert.NoError(t, err)
		assert.Equal(t, int32(3), counter.Load())
	})

	t.Run("it should return the error of a failing runnable", func(t *testing.T) {
		// GIVEN
		var counter atomic.Int32

		// WHEN
		err := RunAll(context.Background(), counting(&counter, nil), counting(&counter, errors.New("connection refused")))

		// THEN
		assert.EqualError(t, err, "connection refused")
	})

	t.Run("it should handle empty runnable list", func(t *testing.T) {
		assert.NoError(t, RunAll(context.Background()))
	})

	t.Run("it should cancel the other runnables once one fails", func(t *testing.T) {
		// GIVEN
		waiting := RunnableFunc(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
				return errors.New("not cancelled")
			}
		})
		failing := RunnableFunc(func(context.Context) error {
			return errors.New("boom")
		})

		// WHEN
		err := RunAll(context.Background(), waiting, failing)

		// THEN
		assert.EqualError(t, err, "boom")
	})
}
