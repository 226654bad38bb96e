package voltmon

import "fmt"

// Default configuration values.
const (
	// DefaultThresholdUnder is the base undervoltage threshold in mV.
	DefaultThresholdUnder uint16 = 8000

	// DefaultThresholdOver is the base overvoltage threshold in mV.
	DefaultThresholdOver uint16 = 13000

	// DefaultHysteresis is the hysteresis margin in mV.
	DefaultHysteresis uint16 = 500

	// DefaultActivationTime is the fault debounce time in ms.
	DefaultActivationTime uint16 = 500

	// DefaultDeactivationTime is the recovery debounce time in ms.
	DefaultDeactivationTime uint16 = 500

	// DefaultTaskPeriod is the nominal tick period in ms.
	DefaultTaskPeriod uint16 = 10
)

// Thresholds holds the four derived millivolt thresholds.
type Thresholds struct {
	UnderOn  uint16
	UnderOff uint16
	OverOn   uint16
	OverOff  uint16
}

// DeriveThresholds computes the thresholds from the base values.
// The arithmetic is plain uint16 arithmetic; a hysteresis larger than a
// base value wraps the same way the firmware does.
func DeriveThresholds(under, over, hysteresis uint16) Thresholds {
	return Thresholds{
		UnderOn:  under,
		UnderOff: under + hysteresis,
		OverOn:   over,
		OverOff:  over - hysteresis,
	}
}

// Thresholds implements ThresholdSource.
func (t Thresholds) Thresholds() Thresholds {
	return t
}

// BandValid reports whether UnderOn < UnderOff <= OverOff < OverOn.
func (t Thresholds) BandValid() bool {
	return t.UnderOn < t.UnderOff && t.UnderOff <= t.OverOff && t.OverOff < t.OverOn
}

// String returns a compact representation of the thresholds.
func (t Thresholds) String() string {
	return fmt.Sprintf("under %d/%d mV, over %d/%d mV (on/off)",
		t.UnderOn, t.UnderOff, t.OverOn, t.OverOff)
}

// ThresholdSource supplies the thresholds read on every tick.
type ThresholdSource interface {
	Thresholds() Thresholds
}

// Config holds the monitor configuration.
type Config struct {
	// ThresholdUnder is the base undervoltage threshold in mV.
	ThresholdUnder uint16

	// ThresholdOver is the base overvoltage threshold in mV.
	ThresholdOver uint16

	// Hysteresis is the margin between "on" and "off" thresholds in mV.
	Hysteresis uint16

	// ActivationTime is how long a fault condition must persist (ms).
	ActivationTime uint16

	// DeactivationTime is how long recovery must persist (ms).
	DeactivationTime uint16

	// TaskPeriod is the nominal tick period in ms. Informational only;
	// Run uses the elapsed time it is given.
	TaskPeriod uint16
}

// DefaultConfig returns the default monitor configuration.
func DefaultConfig() Config {
	return Config{
		ThresholdUnder:   DefaultThresholdUnder,
		ThresholdOver:    DefaultThresholdOver,
		Hysteresis:       DefaultHysteresis,
		ActivationTime:   DefaultActivationTime,
		DeactivationTime: DefaultDeactivationTime,
		TaskPeriod:       DefaultTaskPeriod,
	}
}

// Thresholds derives the four thresholds from the configuration.
func (c Config) Thresholds() Thresholds {
	return DeriveThresholds(c.ThresholdUnder, c.ThresholdOver, c.Hysteresis)
}

// Compile-time interface satisfaction checks.
var (
	_ ThresholdSource = Thresholds{}
	_ ThresholdSource = Config{}
)
