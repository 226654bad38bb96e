// Package voltmon implements debounced supply voltage supervision.
//
// A Monitor compares the measured supply voltage against an undervoltage
// and an overvoltage threshold. A fault is only committed after the
// condition has persisted for the activation time, and only cleared after
// the voltage has stayed inside the recovery band for the deactivation
// time.
//
// # Thresholds
//
// Four thresholds are derived from two base values and a hysteresis margin:
//
//	UnderOn  = ThresholdUnder
//	UnderOff = ThresholdUnder + Hysteresis
//	OverOn   = ThresholdOver
//	OverOff  = ThresholdOver - Hysteresis
//
// The normal band is only meaningful when UnderOn < UnderOff <= OverOff < OverOn.
// The monitor does not check this; see Thresholds.BandValid.
//
// # States
//
//   - NORMAL: activation timers accumulate while the voltage sits at or
//     beyond an "on" threshold. The undervoltage check runs first.
//   - UNDERVOLTAGE: the deactivation timer accumulates while the voltage is
//     at or above UnderOff. Any dip below it restarts the debounce.
//   - OVERVOLTAGE: the deactivation timer accumulates while the voltage is
//     at or below OverOff.
//
// At most one timer is non-zero after any tick.
//
// # Timing
//
// Run receives the elapsed time since the previous call. A single call may
// carry enough time to satisfy a debounce on its own. Timers saturate at
// 65535 ms.
//
// # Concurrency
//
// A Monitor is not safe for concurrent use. Init and Run must be called from
// a single execution context (for example the scheduler goroutine); callers
// that tick from more than one context must serialize externally.
package voltmon
