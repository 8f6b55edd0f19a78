package commands

import "testing"

func TestRegistry_RejectsDuplicateNames(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&ShowCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&ShowCmd{}); err == nil {
		t.Error("expected error registering show twice")
	}

	cmd, ok := r.Find("ls")
	if !ok || cmd.Name() != "show" {
		t.Errorf("expected alias ls to resolve to show, got %v", cmd)
	}
	if got := len(r.All()); got != 1 {
		t.Errorf("expected 1 command, got %d", got)
	}
}
