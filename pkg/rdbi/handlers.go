package rdbi

import (
	"encoding/binary"

	"github.com/linecu/linecu-go/pkg/voltmon"
)

// Supported data identifiers.
const (
	// DIDOverVoltageFlag reports the overvoltage flag (1 byte).
	DIDOverVoltageFlag DID = 0xF308

	// DIDUnderVoltageFlag reports the undervoltage flag (1 byte).
	DIDUnderVoltageFlag DID = 0xF309

	// DIDSupplyVoltage reports the last sampled supply voltage in mV
	// (2 bytes, big-endian).
	DIDSupplyVoltage DID = 0xF30A
)

// Response sizes.
const (
	SizeOverVoltageFlag  uint8 = 1
	SizeUnderVoltageFlag uint8 = 1
	SizeSupplyVoltage    uint8 = 2
)

// StateReader reports the supervisor state.
type StateReader interface {
	State() voltmon.State
}

// VoltageReader reports the last sampled supply voltage.
type VoltageReader interface {
	LastVoltage() uint16
}

// DefaultTable returns the table with the overvoltage flag DID bound to
// a fixed 0x01 response.
func DefaultTable(opts ...TableOption) *Table {
	return NewTable([]Entry{
		{ID: DIDOverVoltageFlag, Size: SizeOverVoltageFlag, Name: "IS_OVERVOLT_FLAG", Handler: StaticData(0x01)},
	}, opts...)
}

// MonitorTable returns a table whose entries report the live state of a
// voltage monitor.
func MonitorTable(m *voltmon.Monitor, opts ...TableOption) *Table {
	return NewTable([]Entry{
		{ID: DIDOverVoltageFlag, Size: SizeOverVoltageFlag, Name: "IS_OVERVOLT_FLAG", Handler: OverVoltageFlag(m)},
		{ID: DIDUnderVoltageFlag, Size: SizeUnderVoltageFlag, Name: "IS_UNDERVOLT_FLAG", Handler: UnderVoltageFlag(m)},
		{ID: DIDSupplyVoltage, Size: SizeSupplyVoltage, Name: "SUPPLY_VOLTAGE", Handler: SupplyVoltage(m)},
	}, opts...)
}

// StaticData returns a handler that always responds with data.
// The response size is len(data) regardless of the preset size.
func StaticData(data ...byte) Handler {
	return HandlerFunc(func(out []byte, _ uint8) (uint8, error) {
		if len(data) > len(out) {
			return 0, NewNRCError(NRCResponseTooLong, ErrBufferTooSmall)
		}
		return uint8(copy(out, data)), nil
	})
}

// OverVoltageFlag responds 0x01 while r is in OVERVOLTAGE, else 0x00.
func OverVoltageFlag(r StateReader) Handler {
	return stateFlag(r, voltmon.StateOvervoltage)
}

// UnderVoltageFlag responds 0x01 while r is in UNDERVOLTAGE, else 0x00.
func UnderVoltageFlag(r StateReader) Handler {
	return stateFlag(r, voltmon.StateUndervoltage)
}

func stateFlag(r StateReader, want voltmon.State) Handler {
	return HandlerFunc(func(out []byte, size uint8) (uint8, error) {
		if len(out) < 1 {
			return 0, NewNRCError(NRCResponseTooLong, ErrBufferTooSmall)
		}
		var flag byte
		if r.State() == want {
			flag = 0x01
		}
		out[0] = flag
		return size, nil
	})
}

// SupplyVoltage responds with the last sampled voltage, big-endian mV.
func SupplyVoltage(r VoltageReader) Handler {
	return HandlerFunc(func(out []byte, size uint8) (uint8, error) {
		if len(out) < 2 {
			return 0, NewNRCError(NRCResponseTooLong, ErrBufferTooSmall)
		}
		binary.BigEndian.PutUint16(out, r.LastVoltage())
		return size, nil
	})
}
