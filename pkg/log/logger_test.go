package log

import (
	"testing"
	"time"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	event := Event{
		Timestamp: time.Now(),
		SessionID: "test-session",
		Component: ComponentVoltMon,
		Category:  CategoryState,
	}
	logger.Log(event)

	event.StateChange = &StateChangeEvent{OldState: "NORMAL", NewState: "UNDERVOLTAGE"}
	logger.Log(event)

	event.StateChange = nil
	event.Diag = &DiagEvent{Type: DiagRequest, ServiceID: 0x22, DID: 0xF308, Length: 3}
	logger.Log(event)

	event.Diag = nil
	event.Error = &ErrorEventData{Message: "boom"}
	logger.Log(event)
}

func TestMultiLoggerFansOut(t *testing.T) {
	a, b := &MemoryLogger{}, &MemoryLogger{}
	multi := NewMultiLogger(a, nil, b)

	multi.Log(Event{SessionID: "s-1", Component: ComponentDiag, Category: CategoryDiag})
	multi.Log(Event{SessionID: "s-2", Component: ComponentDiag, Category: CategoryDiag})

	for name, m := range map[string]*MemoryLogger{"a": a, "b": b} {
		events := m.Events()
		if len(events) != 2 {
			t.Fatalf("%s: got %d events, want 2", name, len(events))
		}
		if events[1].SessionID != "s-2" {
			t.Errorf("%s: SessionID = %q, want %q", name, events[1].SessionID, "s-2")
		}
	}
}

func TestMemoryLoggerReset(t *testing.T) {
	m := &MemoryLogger{}
	m.Log(Event{})
	m.Reset()
	if n := len(m.Events()); n != 0 {
		t.Errorf("got %d events after Reset, want 0", n)
	}
}

func TestNewSessionIDUnique(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	if a == b {
		t.Errorf("NewSessionID returned duplicate %q", a)
	}
	if len(a) != 36 {
		t.Errorf("NewSessionID length = %d, want 36", len(a))
	}
}

func TestParseNames(t *testing.T) {
	if c, ok := ParseComponent("voltmon"); !ok || c != ComponentVoltMon {
		t.Errorf("ParseComponent(voltmon) = %v, %v", c, ok)
	}
	if _, ok := ParseComponent("bogus"); ok {
		t.Error("ParseComponent(bogus) succeeded")
	}
	if c, ok := ParseCategory("DIAG"); !ok || c != CategoryDiag {
		t.Errorf("ParseCategory(DIAG) = %v, %v", c, ok)
	}
	if Category(99).String() != "UNKNOWN" || Component(99).String() != "UNKNOWN" || DiagType(99).String() != "UNKNOWN" {
		t.Error("unknown values should print UNKNOWN")
	}
}
