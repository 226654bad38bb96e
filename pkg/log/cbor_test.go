package log

import (
	"bytes"
	"testing"
	"time"
)

func TestEventCBORRoundTrip(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456789, time.UTC)
	nrc := uint8(0x31)
	pt := 150 * time.Microsecond

	original := Event{
		Timestamp: ts,
		SessionID: "abc12345-def6-7890-abcd-ef1234567890",
		Component: ComponentDiag,
		Category:  CategoryDiag,
		Tick:      42,
		Diag: &DiagEvent{
			Type:           DiagNegativeResponse,
			ServiceID:      0x22,
			DID:            0xFFFF,
			Length:         3,
			NRC:            &nrc,
			ProcessingTime: &pt,
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, original.Timestamp)
	}
	if decoded.SessionID != original.SessionID {
		t.Errorf("SessionID: got %q, want %q", decoded.SessionID, original.SessionID)
	}
	if decoded.Tick != 42 {
		t.Errorf("Tick: got %d, want 42", decoded.Tick)
	}
	if decoded.Diag == nil {
		t.Fatal("Diag is nil")
	}
	if decoded.Diag.NRC == nil || *decoded.Diag.NRC != 0x31 {
		t.Errorf("Diag.NRC: got %v, want 0x31", decoded.Diag.NRC)
	}
	if decoded.Diag.ProcessingTime == nil || *decoded.Diag.ProcessingTime != pt {
		t.Errorf("Diag.ProcessingTime: got %v, want %v", decoded.Diag.ProcessingTime, pt)
	}
	if decoded.StateChange != nil || decoded.Sample != nil || decoded.Error != nil {
		t.Error("unexpected payloads decoded")
	}
}

func TestEncodingIsDeterministic(t *testing.T) {
	event := Event{
		Timestamp: time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC),
		SessionID: "s",
		Component: ComponentVoltMon,
		Category:  CategorySample,
		Sample:    &SampleEvent{VoltageMV: 12000, ElapsedMs: 10, State: "NORMAL"},
	}

	a, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	b, _ := EncodeEvent(event)
	if !bytes.Equal(a, b) {
		t.Error("encoding differs between runs")
	}
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xFF, 0x00}); err == nil {
		t.Error("expected error decoding garbage")
	}
}
