package log

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is a captured event from any component.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies one run of the ECU (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Component that produced the event.
	Component Component `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Tick is the scheduler tick count when the event was produced.
	Tick uint64 `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"`
	Diag        *DiagEvent        `cbor:"11,keyasint,omitempty"`
	Sample      *SampleEvent      `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// Component identifies the producer of an event.
type Component uint8

const (
	// ComponentVoltMon is the voltage supervisor.
	ComponentVoltMon Component = 0
	// ComponentDiag is the LIN diagnostic service.
	ComponentDiag Component = 1
	// ComponentScheduler is the periodic task scheduler.
	ComponentScheduler Component = 2
)

// String returns the component name.
func (c Component) String() string {
	switch c {
	case ComponentVoltMon:
		return "VOLTMON"
	case ComponentDiag:
		return "DIAG"
	case ComponentScheduler:
		return "SCHEDULER"
	default:
		return "UNKNOWN"
	}
}

// ParseComponent returns the component for a name as printed by String.
func ParseComponent(s string) (Component, bool) {
	for _, c := range []Component{ComponentVoltMon, ComponentDiag, ComponentScheduler} {
		if strings.EqualFold(c.String(), s) {
			return c, true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a state change.
	CategoryState Category = 0
	// CategoryDiag indicates a diagnostic request or response.
	CategoryDiag Category = 1
	// CategorySample indicates a voltage sample.
	CategorySample Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryDiag:
		return "DIAG"
	case CategorySample:
		return "SAMPLE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the category for a name as printed by String.
func ParseCategory(s string) (Category, bool) {
	for _, c := range []Category{CategoryState, CategoryDiag, CategorySample, CategoryError} {
		if strings.EqualFold(c.String(), s) {
			return c, true
		}
	}
	return 0, false
}

// StateChangeEvent captures a committed supervisor transition.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// VoltageMV is the voltage sampled on the tick that committed the change.
	VoltageMV uint16 `cbor:"3,keyasint,omitempty"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// DiagType distinguishes requests from responses.
type DiagType uint8

const (
	// DiagRequest is an incoming request.
	DiagRequest DiagType = 0
	// DiagPositiveResponse is a positive response.
	DiagPositiveResponse DiagType = 1
	// DiagNegativeResponse is a negative response.
	DiagNegativeResponse DiagType = 2
)

// String returns the diagnostic message type name.
func (d DiagType) String() string {
	switch d {
	case DiagRequest:
		return "REQUEST"
	case DiagPositiveResponse:
		return "POSITIVE"
	case DiagNegativeResponse:
		return "NEGATIVE"
	default:
		return "UNKNOWN"
	}
}

// DiagEvent captures a diagnostic request or response.
type DiagEvent struct {
	// Type distinguishes request/positive/negative.
	Type DiagType `cbor:"1,keyasint"`

	// ServiceID is the diagnostic service identifier.
	ServiceID uint8 `cbor:"2,keyasint"`

	// DID is the data identifier.
	DID uint16 `cbor:"3,keyasint"`

	// Length is the message data length (request length or outbound length).
	Length uint16 `cbor:"4,keyasint"`

	// NRC is the negative response code (negative responses only).
	NRC *uint8 `cbor:"5,keyasint,omitempty"`

	// Data is the response data (positive responses only).
	Data []byte `cbor:"6,keyasint,omitempty"`

	// ProcessingTime from request to response (responses only).
	ProcessingTime *time.Duration `cbor:"7,keyasint,omitempty"`
}

// SampleEvent captures one supervisor tick.
type SampleEvent struct {
	VoltageMV         uint16 `cbor:"1,keyasint"`
	ElapsedMs         uint16 `cbor:"2,keyasint"`
	State             string `cbor:"3,keyasint"`
	UVActivationTimer uint16 `cbor:"4,keyasint,omitempty"`
	OVActivationTimer uint16 `cbor:"5,keyasint,omitempty"`
	DeactivationTimer uint16 `cbor:"6,keyasint,omitempty"`
}

// ErrorEventData captures errors at any component.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Code is the error code (if applicable).
	Code *int `cbor:"2,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
