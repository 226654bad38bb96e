package rdbi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linecu/linecu-go/pkg/voltmon"
)

func TestValidateNodeAddressAcceptsAll(t *testing.T) {
	for nad := 0; nad <= 0xFF; nad++ {
		assert.NoError(t, ValidateNodeAddress(uint8(nad)))
	}
}

func TestValidateMessageLength(t *testing.T) {
	tests := []struct {
		name    string
		length  uint16
		wantErr bool
	}{
		{"Zero", 0, true},
		{"Min", 1, false},
		{"Typical", 3, false},
		{"Max", MaxMessageLength, false},
		{"TooLong", MaxMessageLength + 1, true},
		{"Huge", 0xFFFF, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessageLength(tt.length)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidLength)
			assert.Equal(t, NRCRequestOutOfRange, CodeOf(err))
		})
	}
}

func TestDefaultTableOverVoltageFlag(t *testing.T) {
	out := make([]byte, 29)
	size, err := DefaultTable().Dispatch(DIDOverVoltageFlag, out)

	require.NoError(t, err)
	assert.Equal(t, uint8(1), size)
	assert.Equal(t, []byte{0x01}, out[:size])
}

func TestDispatchUnsupportedDID(t *testing.T) {
	out := make([]byte, 29)
	_, err := DefaultTable().Dispatch(0xFFFF, out)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedDID)
	assert.Equal(t, NRCRequestOutOfRange, CodeOf(err))
}

func TestDispatchFirstMatchWins(t *testing.T) {
	table := NewTable([]Entry{
		{ID: 0x1000, Size: 1, Handler: StaticData(0xAA)},
		{ID: 0x2000, Size: 1, Handler: StaticData(0xBB)},
		{ID: 0x1000, Size: 1, Handler: StaticData(0xCC)},
	})

	out := make([]byte, 4)
	size, err := table.Dispatch(0x1000, out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA}, out[:size])

	size, err = table.Dispatch(0x2000, out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xBB}, out[:size])
}

func TestDispatchPassesPresetSize(t *testing.T) {
	var gotSize uint8
	table := NewTable([]Entry{
		{ID: 0x1234, Size: 4, Handler: HandlerFunc(func(out []byte, size uint8) (uint8, error) {
			gotSize = size
			out[0], out[1] = 0xDE, 0xAD
			return 2, nil
		})},
	})

	out := make([]byte, 8)
	size, err := table.Dispatch(0x1234, out)
	require.NoError(t, err)
	assert.Equal(t, uint8(4), gotSize)
	assert.Equal(t, uint8(2), size)
	assert.Equal(t, []byte{0xDE, 0xAD}, out[:size])
}

func TestDispatchHandlerError(t *testing.T) {
	table := NewTable([]Entry{
		{ID: 0x0001, Size: 1, Handler: HandlerFunc(func([]byte, uint8) (uint8, error) {
			return 0, NewNRCError(NRCConditionsNotCorrect, nil)
		})},
		{ID: 0x0002, Size: 1, Handler: HandlerFunc(func([]byte, uint8) (uint8, error) {
			return 0, fmt.Errorf("sensor: %w", NewNRCError(NRCFailurePreventsExecution, nil))
		})},
		{ID: 0x0003, Size: 1, Handler: HandlerFunc(func([]byte, uint8) (uint8, error) {
			return 0, errors.New("boom")
		})},
	})

	tests := []struct {
		id   DID
		want NRC
	}{
		{0x0001, NRCConditionsNotCorrect},
		{0x0002, NRCFailurePreventsExecution},
		{0x0003, NRCGeneralReject},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			_, err := table.Dispatch(tt.id, make([]byte, 4))
			require.Error(t, err)
			assert.Equal(t, tt.want, CodeOf(err))

			var nrcErr *NRCError
			assert.True(t, errors.As(err, &nrcErr))
		})
	}
}

func TestDispatchBufferTooSmall(t *testing.T) {
	called := false
	table := NewTable([]Entry{
		{ID: 0x0001, Size: 8, Handler: HandlerFunc(func([]byte, uint8) (uint8, error) {
			called = true
			return 8, nil
		})},
		{ID: 0x0002, Size: 1, Handler: HandlerFunc(func([]byte, uint8) (uint8, error) {
			return 9, nil
		})},
	})

	_, err := table.Dispatch(0x0001, make([]byte, 4))
	assert.ErrorIs(t, err, ErrBufferTooSmall)
	assert.Equal(t, NRCResponseTooLong, CodeOf(err))
	assert.False(t, called)

	_, err = table.Dispatch(0x0002, make([]byte, 4))
	assert.Equal(t, NRCResponseTooLong, CodeOf(err))
}

func TestDispatchNilHandler(t *testing.T) {
	table := NewTable([]Entry{{ID: 0x0001, Size: 1}})
	_, err := table.Dispatch(0x0001, make([]byte, 4))
	assert.Equal(t, NRCGeneralReject, CodeOf(err))
}

func TestLookupAndEntries(t *testing.T) {
	table := DefaultTable()

	e, ok := table.Lookup(DIDOverVoltageFlag)
	require.True(t, ok)
	assert.Equal(t, "IS_OVERVOLT_FLAG", e.Name)

	_, ok = table.Lookup(0x0000)
	assert.False(t, ok)

	entries := table.Entries()
	entries[0].ID = 0x0000
	_, ok = table.Lookup(DIDOverVoltageFlag)
	assert.True(t, ok, "Entries must return a copy")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, NRC(0), CodeOf(nil))
	assert.Equal(t, NRCGeneralReject, CodeOf(errors.New("x")))
	assert.Equal(t, NRCRequestOutOfRange, CodeOf(NewNRCError(NRCRequestOutOfRange, nil)))
}

func TestNRCErrorMessage(t *testing.T) {
	assert.Equal(t, "nrc 0x31 (REQUEST_OUT_OF_RANGE)", NewNRCError(NRCRequestOutOfRange, nil).Error())
	assert.Equal(t, "nrc 0x31 (REQUEST_OUT_OF_RANGE): unsupported data identifier",
		NewNRCError(NRCRequestOutOfRange, ErrUnsupportedDID).Error())
	assert.Equal(t, "UNKNOWN", NRC(0x99).String())
	assert.Equal(t, "0xF308", DIDOverVoltageFlag.String())
}

type fixedSource uint16

func (f fixedSource) ReadVoltage() uint16 { return uint16(f) }

func TestMonitorTable(t *testing.T) {
	cfg := voltmon.DefaultConfig()
	mon := voltmon.New(fixedSource(14000), cfg)
	table := MonitorTable(mon)
	out := make([]byte, 29)

	mon.Run(cfg.ActivationTime)
	require.Equal(t, voltmon.StateOvervoltage, mon.State())

	size, err := table.Dispatch(DIDOverVoltageFlag, out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, out[:size])

	size, err = table.Dispatch(DIDUnderVoltageFlag, out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, out[:size])

	size, err = table.Dispatch(DIDSupplyVoltage, out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x36, 0xB0}, out[:size])
}
