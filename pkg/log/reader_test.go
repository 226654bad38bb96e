package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+FileExtension)

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func readFiltered(t *testing.T, path string, filter Filter) []Event {
	t.Helper()
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	return events
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.elog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderFilterBySession(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), SessionID: "A", Component: ComponentVoltMon, Category: CategoryState},
		{Timestamp: time.Now(), SessionID: "B", Component: ComponentDiag, Category: CategoryDiag},
		{Timestamp: time.Now(), SessionID: "A", Component: ComponentDiag, Category: CategoryDiag},
	})

	read := readFiltered(t, path, Filter{SessionID: "A"})
	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}
	for _, e := range read {
		if e.SessionID != "A" {
			t.Errorf("event has SessionID=%q, want %q", e.SessionID, "A")
		}
	}
}

func TestReaderFilterByComponentAndCategory(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), SessionID: "s", Component: ComponentVoltMon, Category: CategoryState},
		{Timestamp: time.Now(), SessionID: "s", Component: ComponentVoltMon, Category: CategorySample},
		{Timestamp: time.Now(), SessionID: "s", Component: ComponentDiag, Category: CategoryDiag},
		{Timestamp: time.Now(), SessionID: "s", Component: ComponentVoltMon, Category: CategorySample},
	})

	comp := ComponentVoltMon
	if read := readFiltered(t, path, Filter{Component: &comp}); len(read) != 3 {
		t.Errorf("component filter: got %d events, want 3", len(read))
	}

	cat := CategorySample
	read := readFiltered(t, path, Filter{Component: &comp, Category: &cat})
	if len(read) != 2 {
		t.Fatalf("combined filter: got %d events, want 2", len(read))
	}
	for _, e := range read {
		if e.Category != CategorySample {
			t.Errorf("event has Category=%v, want %v", e.Category, CategorySample)
		}
	}
}

func TestReaderFilterByTimeRange(t *testing.T) {
	baseTime := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)

	path := createTestLogFile(t, []Event{
		{Timestamp: baseTime.Add(-1 * time.Hour), SessionID: "s-1"},
		{Timestamp: baseTime, SessionID: "s-2"},
		{Timestamp: baseTime.Add(30 * time.Minute), SessionID: "s-3"},
		{Timestamp: baseTime.Add(2 * time.Hour), SessionID: "s-4"},
	})

	start := baseTime.Add(-5 * time.Minute)
	end := baseTime.Add(1 * time.Hour)
	read := readFiltered(t, path, Filter{TimeStart: &start, TimeEnd: &end})

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2 (events within time range)", len(read))
	}
	if read[0].SessionID != "s-2" || read[1].SessionID != "s-3" {
		t.Errorf("got %q, %q; want s-2, s-3", read[0].SessionID, read[1].SessionID)
	}
}
