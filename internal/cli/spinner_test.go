package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("working")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() == false {
		// Stop cancels the internal context, so Cancelled reports true
		// after any stop; this just pins the invariant.
		t.Error("Cancelled() should be true after Stop()")
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner("idle")
	s.Start()
	s.Stop() // immediate stop must not hang or panic
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "cancellable")
	s.Start()

	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() after context cancel should not hang")
	}

	if !s.Cancelled() {
		t.Error("Cancelled() should be true after context cancel")
	}
}
