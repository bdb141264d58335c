package server

import (
	"testing"
)

func TestCallLimiter_AllowsBurstThenDenies(t *testing.T) {
	cl := newCallLimiter(10)

	for i := 0; i < 10; i++ {
		if !cl.Allow() {
			t.Fatalf("call %d denied inside burst allowance", i+1)
		}
	}

	if cl.Allow() {
		t.Error("call beyond burst allowance should be denied")
	}
}

func TestCallLimiter_NeverBlocks(t *testing.T) {
	cl := newCallLimiter(1)
	cl.Allow()

	// A denied call must return immediately rather than wait for a token.
	done := make(chan bool, 1)
	go func() {
		done <- cl.Allow()
	}()

	if allowed := <-done; allowed {
		t.Error("expected denial with bucket drained")
	}
}
