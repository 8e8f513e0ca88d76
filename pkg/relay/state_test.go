package relay

import "testing"

func TestMachineHappyPath(t *testing.T) {
	m := newMachine()

	for _, next := range []State{StateAwaitingSession, StateStreaming, StateFinalizing, StateIdle} {
		if !m.to(next) {
			t.Fatalf("transition %v -> %v refused", m.current(), next)
		}
	}
}

func TestMachineCancelledIsAbsorbing(t *testing.T) {
	m := newMachine()
	m.to(StateAwaitingSession)
	m.to(StateStreaming)

	if !m.to(StateCancelled) {
		t.Fatal("streaming -> cancelled refused")
	}

	// Cancelled never reaches finalizing.
	if m.to(StateFinalizing) {
		t.Error("cancelled -> finalizing should be refused")
	}
	if m.to(StateStreaming) {
		t.Error("cancelled -> streaming should be refused")
	}

	if !m.to(StateIdle) {
		t.Error("cancelled -> idle refused")
	}
}

func TestMachineRefusesSkips(t *testing.T) {
	m := newMachine()

	if m.to(StateStreaming) {
		t.Error("idle -> streaming should be refused")
	}
	if m.to(StateFinalizing) {
		t.Error("idle -> finalizing should be refused")
	}
	if m.to(StateCancelled) {
		t.Error("idle -> cancelled should be refused")
	}
}
