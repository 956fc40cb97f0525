package status

import (
	"testing"
)

func TestModule_Name(t *testing.T) {
	m := &Module{}
	if m.Name() != "status" {
		t.Errorf("expected module name %q, got %q", "status", m.Name())
	}
}

func TestModule_Commands(t *testing.T) {
	m := &Module{}

	commands := m.Commands()
	if len(commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(commands))
	}
	if commands[0].Name != "ping" {
		t.Errorf("expected command %q, got %q", "ping", commands[0].Name)
	}

	handlers := m.CommandHandlers()
	if _, ok := handlers["ping"]; !ok {
		t.Error("expected a handler for ping")
	}
}
