package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/linecu/linecu-go/pkg/version"
	"github.com/linecu/linecu-go/pkg/voltmon"
)

// DefaultDIDs are the data identifiers served when none are configured.
var DefaultDIDs = []uint16{0xF308, 0xF309, 0xF30A}

// Config is the complete ECU configuration.
type Config struct {
	// Version is the configuration format version ("major.minor").
	Version string `yaml:"version"`

	// Profile names an embedded profile providing base values.
	Profile string `yaml:"profile,omitempty"`

	VoltMon VoltMonConfig `yaml:"voltmon"`
	Diag    DiagConfig    `yaml:"diag"`
	Log     LogConfig     `yaml:"log"`
}

// VoltMonConfig configures the voltage supervisor.
type VoltMonConfig struct {
	ThresholdUnderMV uint16 `yaml:"threshold_under_mv"`
	ThresholdOverMV  uint16 `yaml:"threshold_over_mv"`
	HysteresisMV     uint16 `yaml:"hysteresis_mv"`

	ActivationTimeMs   uint16 `yaml:"activation_time_ms"`
	DeactivationTimeMs uint16 `yaml:"deactivation_time_ms"`
	TaskPeriodMs       uint16 `yaml:"task_period_ms"`
}

// DiagConfig configures the LIN diagnostic service.
type DiagConfig struct {
	// NodeAddress is the node address checked on each request.
	NodeAddress uint8 `yaml:"node_address"`

	// DIDs lists the data identifiers served, in dispatch order.
	DIDs []uint16 `yaml:"dids"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the slog level name (debug, info, warn, error).
	Level string `yaml:"level"`

	// ProtocolLog is the path of the CBOR event log. Empty disables it.
	ProtocolLog string `yaml:"protocol_log,omitempty"`

	// Samples records one event per supervisor tick in the protocol log.
	Samples bool `yaml:"samples,omitempty"`
}

// LoadError describes a configuration that could not be loaded.
type LoadError struct {
	// File is the path to the file that failed to load (empty for Parse).
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Validation errors.
var (
	ErrZeroActivationTime   = errors.New("voltmon.activation_time_ms must be > 0")
	ErrZeroDeactivationTime = errors.New("voltmon.deactivation_time_ms must be > 0")
	ErrZeroTaskPeriod       = errors.New("voltmon.task_period_ms must be > 0")
	ErrInvalidLogLevel      = errors.New("invalid log level")
)

// Default returns the built-in configuration.
func Default() *Config {
	d := voltmon.DefaultConfig()
	return &Config{
		Version: version.Current,
		VoltMon: VoltMonConfig{
			ThresholdUnderMV:   d.ThresholdUnder,
			ThresholdOverMV:    d.ThresholdOver,
			HysteresisMV:       d.Hysteresis,
			ActivationTimeMs:   d.ActivationTime,
			DeactivationTimeMs: d.DeactivationTime,
			TaskPeriodMs:       d.TaskPeriod,
		},
		Diag: DiagConfig{
			DIDs: append([]uint16(nil), DefaultDIDs...),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Parse parses and validates a configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var head struct {
		Profile string `yaml:"profile"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}

	cfg := Default()
	if head.Profile != "" {
		p, err := LoadProfile(head.Profile)
		if err != nil {
			return nil, &LoadError{Message: "unknown profile", Cause: err}
		}
		p.apply(cfg)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Message: "invalid configuration", Cause: err}
	}
	return cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	cfg, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if _, err := version.Check(c.Version); err != nil {
		errs = append(errs, err)
	}
	if c.VoltMon.ActivationTimeMs == 0 {
		errs = append(errs, ErrZeroActivationTime)
	}
	if c.VoltMon.DeactivationTimeMs == 0 {
		errs = append(errs, ErrZeroDeactivationTime)
	}
	if c.VoltMon.TaskPeriodMs == 0 {
		errs = append(errs, ErrZeroTaskPeriod)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Warnings reports settings that are accepted but likely wrong.
func (c *Config) Warnings() []string {
	var warnings []string

	th := c.VoltMonConfig().Thresholds()
	if !th.BandValid() {
		warnings = append(warnings, fmt.Sprintf("threshold band is not ordered (%s); undervoltage takes precedence", th))
	}
	if c.VoltMon.ActivationTimeMs < c.VoltMon.TaskPeriodMs {
		warnings = append(warnings, fmt.Sprintf("activation time %d ms is shorter than the task period %d ms",
			c.VoltMon.ActivationTimeMs, c.VoltMon.TaskPeriodMs))
	}
	if c.VoltMon.DeactivationTimeMs < c.VoltMon.TaskPeriodMs {
		warnings = append(warnings, fmt.Sprintf("deactivation time %d ms is shorter than the task period %d ms",
			c.VoltMon.DeactivationTimeMs, c.VoltMon.TaskPeriodMs))
	}

	seen := make(map[uint16]bool, len(c.Diag.DIDs))
	for _, id := range c.Diag.DIDs {
		if seen[id] {
			warnings = append(warnings, fmt.Sprintf("diag.dids lists 0x%04X more than once; only the first entry is used", id))
		}
		seen[id] = true
	}
	if len(c.Diag.DIDs) == 0 {
		warnings = append(warnings, "diag.dids is empty; every request is answered with REQUEST_OUT_OF_RANGE")
	}

	return warnings
}

// VoltMonConfig returns the supervisor configuration.
func (c *Config) VoltMonConfig() voltmon.Config {
	return voltmon.Config{
		ThresholdUnder:   c.VoltMon.ThresholdUnderMV,
		ThresholdOver:    c.VoltMon.ThresholdOverMV,
		Hysteresis:       c.VoltMon.HysteresisMV,
		ActivationTime:   c.VoltMon.ActivationTimeMs,
		DeactivationTime: c.VoltMon.DeactivationTimeMs,
		TaskPeriod:       c.VoltMon.TaskPeriodMs,
	}
}

// SlogLevel parses the configured level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidLogLevel, l.Level)
	}
	return level, nil
}
