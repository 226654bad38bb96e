// Package commands implements the ecu-log CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/linecu/linecu-go/pkg/log"
	"github.com/linecu/linecu-go/pkg/rdbi"
)

var (
	stateColor    = color.New(color.FgHiBlue).SprintfFunc()
	positiveColor = color.New(color.FgGreen).SprintfFunc()
	negativeColor = color.New(color.FgRed).SprintfFunc()
	faintColor    = color.New(color.Faint).SprintfFunc()
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session] #tick COMPONENT Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	session := shortenSessionID(event.SessionID)

	var typeLabel string
	switch {
	case event.StateChange != nil:
		typeLabel = stateColor("State")
	case event.Diag != nil:
		typeLabel = diagLabel(event.Diag.Type)
	case event.Sample != nil:
		typeLabel = faintColor("Sample")
	case event.Error != nil:
		typeLabel = negativeColor("Error")
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [%s] #%d %s %s\n", ts, session, event.Tick, event.Component, typeLabel)

	switch {
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Diag != nil:
		formatDiagDetails(w, event.Diag)
	case event.Sample != nil:
		formatSampleDetails(w, event.Sample)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatStateChangeDetails writes state change details.
func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	fmt.Fprintf(w, "  Voltage: %d mV\n", sc.VoltageMV)
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

// formatDiagDetails writes diagnostic request/response details.
func formatDiagDetails(w io.Writer, d *log.DiagEvent) {
	fmt.Fprintf(w, "  Service: 0x%02X  DID: %s  Length: %d\n", d.ServiceID, rdbi.DID(d.DID), d.Length)
	if d.NRC != nil {
		code := rdbi.NRC(*d.NRC)
		fmt.Fprintf(w, "  NRC: 0x%02X (%s)\n", *d.NRC, code)
	}
	if len(d.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s\n", hex.EncodeToString(d.Data))
	}
	if d.ProcessingTime != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*d.ProcessingTime))
	}
}

// formatSampleDetails writes a supervisor tick sample.
func formatSampleDetails(w io.Writer, s *log.SampleEvent) {
	fmt.Fprintf(w, "  %d mV after %d ms, %s\n", s.VoltageMV, s.ElapsedMs, s.State)
	if s.UVActivationTimer != 0 || s.OVActivationTimer != 0 || s.DeactivationTimer != 0 {
		fmt.Fprintf(w, "  Timers: uv=%d ov=%d deact=%d\n", s.UVActivationTimer, s.OVActivationTimer, s.DeactivationTimer)
	}
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: %d\n", *err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

func diagLabel(t log.DiagType) string {
	switch t {
	case log.DiagPositiveResponse:
		return positiveColor(t.String())
	case log.DiagNegativeResponse:
		return negativeColor(t.String())
	default:
		return t.String()
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseComponentFlag parses a component string from command-line flag (case-insensitive).
func ParseComponentFlag(s string) (log.Component, error) {
	c, ok := log.ParseComponent(s)
	if !ok {
		return 0, fmt.Errorf("invalid component: %s (must be voltmon, diag, or scheduler)", s)
	}
	return c, nil
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(s)
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be state, diag, sample, or error)", s)
	}
	return c, nil
}

// RunView executes the view command.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
