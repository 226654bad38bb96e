// Package log provides structured event capture for the ECU components.
//
// This package defines the Logger interface and Event types for recording
// supervisor transitions, diagnostic requests and responses, and voltage
// samples. It is separate from operational logging (slog): an event log is a
// complete machine-readable trace for offline analysis.
//
// # Basic Usage
//
// Applications configure capture by providing a Logger implementation:
//
//	// For development: log to console via slog
//	events := log.NewSlogAdapter(slog.Default())
//
//	// For recording: write to a binary file
//	events, _ := log.NewFileLogger("/var/log/linecu/ecu.elog")
//
//	// Both: use MultiLogger
//	events := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Every event names the Component that produced it. The payload is one of:
//   - StateChange: a committed supervisor transition
//   - Diag: a diagnostic request or its positive/negative response
//   - Sample: a voltage sample with the monitor timers after the tick
//   - Error: a failure at any component
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys, using
// the .elog extension. The ecu-log command views and summarizes them.
package log
