package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/linecu/linecu-go/cmd/ecu-sim/interactive"
	"github.com/linecu/linecu-go/pkg/config"
	"github.com/linecu/linecu-go/pkg/lindiag"
	eculog "github.com/linecu/linecu-go/pkg/log"
	"github.com/linecu/linecu-go/pkg/rdbi"
	"github.com/linecu/linecu-go/pkg/scheduler"
	"github.com/linecu/linecu-go/pkg/voltmon"
)

// ecu wires the supervisor, the diagnostic service and the scheduler.
// Monitor and service are only touched from the scheduler goroutine.
type ecu struct {
	cfg     *config.Config
	session string

	supply  *supply
	monitor *voltmon.Monitor
	table   *rdbi.Table
	diag    *lindiag.Service
	bus     *busPrinter
	sched   *scheduler.Scheduler

	events eculog.Logger
	logger *slog.Logger
	closer func()
}

func newECU(cfg *config.Config, initialMV uint16, out io.Writer, events eculog.Logger, logger *slog.Logger) *ecu {
	if events == nil {
		events = eculog.NoopLogger{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := &ecu{
		cfg:     cfg,
		session: eculog.NewSessionID(),
		supply:  newSupply(initialMV),
		bus:     &busPrinter{w: out},
		events:  events,
		logger:  logger,
	}

	e.monitor = voltmon.New(e.supply, cfg.VoltMonConfig(), voltmon.WithLogger(logger))
	e.monitor.OnStateChange(e.logStateChange)

	e.table = buildTable(e.monitor, cfg.Diag.DIDs, logger)
	e.diag = lindiag.NewService(e.table, e.bus,
		lindiag.WithNodeAddress(cfg.Diag.NodeAddress),
		lindiag.WithLogger(logger),
		lindiag.WithEventLogger(events),
		lindiag.WithSessionID(e.session),
	)

	period := time.Duration(cfg.VoltMon.TaskPeriodMs) * time.Millisecond
	tasks := []scheduler.Task{e.supply, e.monitor}
	if cfg.Log.Samples {
		tasks = append(tasks, scheduler.TaskFunc(e.logSample))
	}
	e.sched = scheduler.New(period, tasks...)
	e.sched.SetLogger(logger)

	return e
}

// buildTable serves the configured DIDs from the live monitor table, in
// configuration order.
func buildTable(m *voltmon.Monitor, dids []uint16, logger *slog.Logger) *rdbi.Table {
	if logger == nil {
		logger = slog.Default()
	}
	live := rdbi.MonitorTable(m)

	var entries []rdbi.Entry
	for _, id := range dids {
		entry, ok := live.Lookup(rdbi.DID(id))
		if !ok {
			logger.Warn("ecu-sim: no handler for configured DID, skipping", "did", rdbi.DID(id).String())
			continue
		}
		entries = append(entries, entry)
	}
	return rdbi.NewTable(entries, rdbi.WithLogger(logger))
}

func (e *ecu) logStateChange(oldState, newState voltmon.State) {
	e.events.Log(eculog.Event{
		Timestamp: time.Now(),
		SessionID: e.session,
		Component: eculog.ComponentVoltMon,
		Category:  eculog.CategoryState,
		Tick:      e.sched.Ticks(),
		StateChange: &eculog.StateChangeEvent{
			OldState:  oldState.String(),
			NewState:  newState.String(),
			VoltageMV: e.monitor.LastVoltage(),
		},
	})
}

func (e *ecu) logSample(elapsedMs uint16) {
	c := e.monitor.Context()
	e.events.Log(eculog.Event{
		Timestamp: time.Now(),
		SessionID: e.session,
		Component: eculog.ComponentVoltMon,
		Category:  eculog.CategorySample,
		Tick:      e.sched.Ticks(),
		Sample: &eculog.SampleEvent{
			VoltageMV:         e.monitor.LastVoltage(),
			ElapsedMs:         elapsedMs,
			State:             c.State.String(),
			UVActivationTimer: c.UVActivationTimer,
			OVActivationTimer: c.OVActivationTimer,
			DeactivationTimer: c.DeactivationTimer,
		},
	})
}

// close releases the event log.
func (e *ecu) close() {
	if e.closer != nil {
		e.closer()
	}
}

// Run drives the scheduler in real time until ctx is done.
func (e *ecu) Run(ctx context.Context) error {
	return e.sched.Run(ctx)
}

// SetVoltage implements interactive.ECU.
func (e *ecu) SetVoltage(mv uint16) {
	e.supply.Set(mv)
}

// Ramp implements interactive.ECU.
func (e *ecu) Ramp(target, stepMV uint16) {
	e.supply.Ramp(target, stepMV)
}

// Step implements interactive.ECU.
func (e *ecu) Step(ticks int) error {
	return e.sched.Step(ticks)
}

// ReadDID implements interactive.ECU. The request runs on the scheduler
// goroutine between ticks.
func (e *ecu) ReadDID(ctx context.Context, did rdbi.DID, length uint16) ([]byte, error) {
	frame := []byte{lindiag.ServiceIDReadDataByIdentifier, byte(did >> 8), byte(did)}

	var (
		resp   []byte
		reqErr error
	)
	if err := e.sched.Do(ctx, func() {
		resp, reqErr = e.diag.Handle(frame, length)
	}); err != nil {
		return nil, err
	}
	return resp, reqErr
}

// Status implements interactive.ECU.
func (e *ecu) Status(ctx context.Context) (interactive.Status, error) {
	var st interactive.Status
	if err := e.sched.Do(ctx, func() {
		st.Monitor = e.monitor.Context()
	}); err != nil {
		return st, fmt.Errorf("read monitor state: %w", err)
	}

	st.SessionID = e.session
	st.VoltageMV = e.supply.ReadVoltage()
	st.Ramping = e.supply.Ramping()
	st.Ticks = e.sched.Ticks()
	st.Period = e.sched.Period().String()
	st.Realtime = e.sched.Running()
	st.PositiveResponses, st.NegativeResponses = e.bus.counts()
	return st, nil
}

// Thresholds implements interactive.ECU.
func (e *ecu) Thresholds() voltmon.Thresholds {
	return e.cfg.VoltMonConfig().Thresholds()
}

// Entries implements interactive.ECU.
func (e *ecu) Entries() []rdbi.Entry {
	return e.table.Entries()
}

var _ interactive.ECU = (*ecu)(nil)
