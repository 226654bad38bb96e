package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/linecu/linecu-go/pkg/log"
)

func init() {
	color.NoColor = true
}

var baseTime = time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+log.FileExtension)

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

// sessionEvents returns a small brown-out session: one RDBI exchange,
// a transition to UNDERVOLTAGE, a failed RDBI and a recovery.
func sessionEvents() []log.Event {
	nrc := uint8(0x31)
	took := 150 * time.Microsecond
	return []log.Event{
		{
			Timestamp: baseTime,
			SessionID: "abc12345-6789",
			Component: log.ComponentDiag,
			Category:  log.CategoryDiag,
			Tick:      1,
			Diag:      &log.DiagEvent{Type: log.DiagRequest, ServiceID: 0x22, DID: 0xF308, Length: 3},
		},
		{
			Timestamp: baseTime.Add(time.Millisecond),
			SessionID: "abc12345-6789",
			Component: log.ComponentDiag,
			Category:  log.CategoryDiag,
			Tick:      1,
			Diag: &log.DiagEvent{Type: log.DiagPositiveResponse, ServiceID: 0x22, DID: 0xF308, Length: 3,
				Data: []byte{0x01}, ProcessingTime: &took},
		},
		{
			Timestamp: baseTime.Add(500 * time.Millisecond),
			SessionID: "abc12345-6789",
			Component: log.ComponentVoltMon,
			Category:  log.CategorySample,
			Tick:      50,
			Sample:    &log.SampleEvent{VoltageMV: 7500, ElapsedMs: 10, State: "UNDERVOLTAGE"},
		},
		{
			Timestamp: baseTime.Add(500 * time.Millisecond),
			SessionID: "abc12345-6789",
			Component: log.ComponentVoltMon,
			Category:  log.CategoryState,
			Tick:      50,
			StateChange: &log.StateChangeEvent{
				OldState:  "NORMAL",
				NewState:  "UNDERVOLTAGE",
				VoltageMV: 7500,
			},
		},
		{
			Timestamp: baseTime.Add(600 * time.Millisecond),
			SessionID: "abc12345-6789",
			Component: log.ComponentDiag,
			Category:  log.CategoryDiag,
			Tick:      60,
			Diag:      &log.DiagEvent{Type: log.DiagNegativeResponse, ServiceID: 0x22, DID: 0xFFFF, Length: 3, NRC: &nrc},
		},
		{
			Timestamp: baseTime.Add(time.Second),
			SessionID: "abc12345-6789",
			Component: log.ComponentVoltMon,
			Category:  log.CategorySample,
			Tick:      100,
			Sample:    &log.SampleEvent{VoltageMV: 12000, ElapsedMs: 10, State: "NORMAL", DeactivationTimer: 490},
		},
		{
			Timestamp: baseTime.Add(time.Second),
			SessionID: "abc12345-6789",
			Component: log.ComponentVoltMon,
			Category:  log.CategoryState,
			Tick:      100,
			StateChange: &log.StateChangeEvent{
				OldState:  "UNDERVOLTAGE",
				NewState:  "NORMAL",
				VoltageMV: 12000,
			},
		},
	}
}
