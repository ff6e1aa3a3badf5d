package shutdown_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"finledger/pkg/shutdown"
)

func TestWait(t *testing.T) {
	t.Run("runs all hooks after context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		var calls int32
		hook := func(context.Context) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}

		done := make(chan struct{})
		go func() {
			shutdown.Wait(ctx, time.Second, hook, hook, hook)
			close(done)
		}()

		cancel()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("shutdown.Wait did not return")
		}

		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("returns when a hook exceeds the timeout", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		slow := func(hookCtx context.Context) error {
			<-hookCtx.Done()
			return hookCtx.Err()
		}

		done := make(chan struct{})
		go func() {
			shutdown.Wait(ctx, 50*time.Millisecond, slow)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("shutdown.Wait did not respect the timeout")
		}
	})
}
