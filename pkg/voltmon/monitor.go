package voltmon

import (
	"log/slog"
	"math"
)

// State is the supervisor state.
type State uint8

const (
	// StateUndervoltage indicates a debounced undervoltage condition.
	StateUndervoltage State = iota

	// StateNormal indicates the voltage is within range.
	StateNormal

	// StateOvervoltage indicates a debounced overvoltage condition.
	StateOvervoltage
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUndervoltage:
		return "UNDERVOLTAGE"
	case StateNormal:
		return "NORMAL"
	case StateOvervoltage:
		return "OVERVOLTAGE"
	default:
		return "UNKNOWN"
	}
}

// VoltageSource supplies the latest measured supply voltage in mV.
type VoltageSource interface {
	ReadVoltage() uint16
}

// VoltageFunc adapts a plain function to VoltageSource.
type VoltageFunc func() uint16

// ReadVoltage calls f.
func (f VoltageFunc) ReadVoltage() uint16 {
	return f()
}

// Context is the mutable state of a monitor. All timers are in ms.
type Context struct {
	State             State
	UVActivationTimer uint16
	OVActivationTimer uint16
	DeactivationTimer uint16
}

// Monitor is a debounced voltage supervisor.
// See the package documentation for the concurrency contract.
type Monitor struct {
	ctx Context

	source     VoltageSource
	thresholds ThresholdSource

	activationTime   uint16
	deactivationTime uint16

	lastVoltage uint16

	logger        *slog.Logger
	onStateChange func(oldState, newState State)
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithThresholdSource replaces the thresholds derived from the config.
// The source is queried on every tick.
func WithThresholdSource(src ThresholdSource) Option {
	return func(m *Monitor) {
		if src != nil {
			m.thresholds = src
		}
	}
}

// New creates a monitor reading from source. The returned monitor is
// already initialized.
func New(source VoltageSource, cfg Config, opts ...Option) *Monitor {
	m := &Monitor{
		source:           source,
		thresholds:       cfg.Thresholds(),
		activationTime:   cfg.ActivationTime,
		deactivationTime: cfg.DeactivationTime,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Init()
	return m
}

// Init resets the monitor to NORMAL with all timers cleared.
func (m *Monitor) Init() {
	m.ctx = Context{State: StateNormal}
}

// State returns the state committed by the last Run.
func (m *Monitor) State() State {
	return m.ctx.State
}

// Context returns a copy of the monitor context.
func (m *Monitor) Context() Context {
	return m.ctx
}

// LastVoltage returns the voltage read by the last Run.
func (m *Monitor) LastVoltage() uint16 {
	return m.lastVoltage
}

// OnStateChange sets a callback invoked after each committed transition.
func (m *Monitor) OnStateChange(fn func(oldState, newState State)) {
	m.onStateChange = fn
}

// Run executes one tick with the time elapsed since the previous tick.
func (m *Monitor) Run(elapsedMs uint16) {
	v := m.source.ReadVoltage()
	th := m.thresholds.Thresholds()
	m.lastVoltage = v

	oldState := m.ctx.State
	c := &m.ctx

	switch c.State {
	case StateNormal:
		c.DeactivationTimer = 0

		if v <= th.UnderOn {
			c.UVActivationTimer = addSaturating(c.UVActivationTimer, elapsedMs)
			c.OVActivationTimer = 0

			if c.UVActivationTimer >= m.activationTime {
				c.State = StateUndervoltage
				c.UVActivationTimer = 0
			}
		} else if v >= th.OverOn {
			c.OVActivationTimer = addSaturating(c.OVActivationTimer, elapsedMs)
			c.UVActivationTimer = 0

			if c.OVActivationTimer >= m.activationTime {
				c.State = StateOvervoltage
				c.OVActivationTimer = 0
			}
		} else {
			c.UVActivationTimer = 0
			c.OVActivationTimer = 0
		}

	case StateUndervoltage:
		c.UVActivationTimer = 0
		c.OVActivationTimer = 0

		if v >= th.UnderOff {
			m.recover(elapsedMs)
		} else {
			c.DeactivationTimer = 0
		}

	case StateOvervoltage:
		c.UVActivationTimer = 0
		c.OVActivationTimer = 0

		if v <= th.OverOff {
			m.recover(elapsedMs)
		} else {
			c.DeactivationTimer = 0
		}

	default:
		m.logger.Warn("voltmon: invalid state, resetting", "state", uint8(c.State))
		m.ctx = Context{State: StateNormal}
	}

	if m.ctx.State != oldState {
		m.logger.Info("voltmon: state change",
			"old_state", oldState.String(),
			"new_state", m.ctx.State.String(),
			"voltage_mv", v)
		if m.onStateChange != nil {
			m.onStateChange(oldState, m.ctx.State)
		}
	}
}

// recover accumulates the deactivation timer and returns to NORMAL once
// the deactivation time is reached.
func (m *Monitor) recover(elapsedMs uint16) {
	c := &m.ctx
	c.DeactivationTimer = addSaturating(c.DeactivationTimer, elapsedMs)

	if c.DeactivationTimer >= m.deactivationTime {
		c.State = StateNormal
		c.DeactivationTimer = 0
	}
}

func addSaturating(a, b uint16) uint16 {
	sum := uint32(a) + uint32(b)
	if sum > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(sum)
}
