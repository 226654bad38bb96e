package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/linecu/linecu-go/pkg/log"
	"github.com/linecu/linecu-go/pkg/rdbi"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByComponent map[log.Component]int
	EventsByCategory  map[log.Category]int
	Sessions          map[string]*SessionStats
	Transitions       map[string]int
	Requests          int
	PositiveResponses int
	NegativeResponses int
	NegativeByCode    map[rdbi.NRC]int
	Samples           int
	MinVoltage        uint16
	MaxVoltage        uint16
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single simulator session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	LastTick  uint64
}

func newStats() *Stats {
	return &Stats{
		EventsByComponent: make(map[log.Component]int),
		EventsByCategory:  make(map[log.Category]int),
		Sessions:          make(map[string]*SessionStats),
		Transitions:       make(map[string]int),
		NegativeByCode:    make(map[rdbi.NRC]int),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByComponent[event.Component]++
	s.EventsByCategory[event.Category]++

	// Track time range
	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
		}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}
	if event.Tick > sess.LastTick {
		sess.LastTick = event.Tick
	}

	switch {
	case event.StateChange != nil:
		s.Transitions[event.StateChange.OldState+" -> "+event.StateChange.NewState]++
	case event.Diag != nil:
		switch event.Diag.Type {
		case log.DiagRequest:
			s.Requests++
		case log.DiagPositiveResponse:
			s.PositiveResponses++
		case log.DiagNegativeResponse:
			s.NegativeResponses++
			if event.Diag.NRC != nil {
				s.NegativeByCode[rdbi.NRC(*event.Diag.NRC)]++
			}
		}
	case event.Sample != nil:
		v := event.Sample.VoltageMV
		if s.Samples == 0 || v < s.MinVoltage {
			s.MinVoltage = v
		}
		if s.Samples == 0 || v > s.MaxVoltage {
			s.MaxVoltage = v
		}
		s.Samples++
	case event.Error != nil:
		s.Errors++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== ECU Protocol Log Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Component:")
	for _, c := range []log.Component{log.ComponentVoltMon, log.ComponentDiag, log.ComponentScheduler} {
		if count := stats.EventsByComponent[c]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", c.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryState, log.CategoryDiag, log.CategorySample, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Transitions) > 0 {
		fmt.Fprintln(w, "State Transitions:")
		keys := make([]string, 0, len(stats.Transitions))
		for k := range stats.Transitions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %-28s %d\n", k+":", stats.Transitions[k])
		}
		fmt.Fprintln(w)
	}

	if stats.Requests > 0 || stats.PositiveResponses > 0 || stats.NegativeResponses > 0 {
		fmt.Fprintln(w, "Diagnostics:")
		fmt.Fprintf(w, "  Requests:  %d\n", stats.Requests)
		fmt.Fprintf(w, "  Positive:  %d\n", stats.PositiveResponses)
		fmt.Fprintf(w, "  Negative:  %d\n", stats.NegativeResponses)
		codes := make([]rdbi.NRC, 0, len(stats.NegativeByCode))
		for c := range stats.NegativeByCode {
			codes = append(codes, c)
		}
		sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
		for _, c := range codes {
			fmt.Fprintf(w, "    0x%02X %-34s %d\n", uint8(c), c.String(), stats.NegativeByCode[c])
		}
		fmt.Fprintln(w)
	}

	if stats.Samples > 0 {
		fmt.Fprintf(w, "Samples: %d (%d..%d mV)\n", stats.Samples, stats.MinVoltage, stats.MaxVoltage)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, %d ticks, duration %s\n",
				shortenSessionID(s.id), s.stats.Events, s.stats.LastTick, duration)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
