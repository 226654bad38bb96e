package interactive

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linecu/linecu-go/pkg/rdbi"
	"github.com/linecu/linecu-go/pkg/voltmon"
)

type fakeECU struct {
	voltage   uint16
	target    uint16
	step      uint16
	ticks     int
	stepErr   error
	statusErr error

	lastDID    rdbi.DID
	lastLength uint16
}

func (f *fakeECU) SetVoltage(mv uint16) { f.voltage = mv }
func (f *fakeECU) Ramp(target, stepMV uint16) { f.target, f.step = target, stepMV }

func (f *fakeECU) Step(ticks int) error {
	if f.stepErr != nil {
		return f.stepErr
	}
	f.ticks += ticks
	return nil
}

func (f *fakeECU) ReadDID(_ context.Context, did rdbi.DID, length uint16) ([]byte, error) {
	f.lastDID, f.lastLength = did, length
	if did == 0xFFFF {
		return []byte{0x7F, 0x22, 0x31}, rdbi.NewNRCError(rdbi.NRCRequestOutOfRange, rdbi.ErrUnsupportedDID)
	}
	return []byte{0x62, byte(did >> 8), byte(did), 0x01}, nil
}

func (f *fakeECU) Status(ctx context.Context) (Status, error) {
	if f.statusErr != nil {
		return Status{}, f.statusErr
	}
	if _, ok := ctx.Deadline(); !ok {
		return Status{}, errors.New("status called without a deadline")
	}
	return Status{
		VoltageMV: f.voltage,
		Ticks:     uint64(f.ticks),
		Monitor:   voltmon.Context{State: voltmon.StateNormal},
	}, nil
}

func (f *fakeECU) Thresholds() voltmon.Thresholds {
	return voltmon.DefaultConfig().Thresholds()
}

func (f *fakeECU) Entries() []rdbi.Entry {
	return rdbi.DefaultTable().Entries()
}

func newTestConsole() (*Console, *fakeECU, *bytes.Buffer) {
	ecu := &fakeECU{}
	var out bytes.Buffer
	return NewWithWriter(ecu, &out), ecu, &out
}

func TestExecVolt(t *testing.T) {
	c, ecu, out := newTestConsole()

	assert.False(t, c.Exec(context.Background(), "volt 7500"))
	assert.Equal(t, uint16(7500), ecu.voltage)
	assert.Contains(t, out.String(), "7500 mV")

	out.Reset()
	c.Exec(context.Background(), "volt 70000")
	assert.Contains(t, out.String(), "Invalid voltage")
}

func TestExecRamp(t *testing.T) {
	c, ecu, out := newTestConsole()

	c.Exec(context.Background(), "ramp 14000 50")
	assert.Equal(t, uint16(14000), ecu.target)
	assert.Equal(t, uint16(50), ecu.step)

	out.Reset()
	c.Exec(context.Background(), "ramp 14000")
	assert.Contains(t, out.String(), "Usage")
}

func TestExecStep(t *testing.T) {
	c, ecu, out := newTestConsole()

	c.Exec(context.Background(), "step")
	c.Exec(context.Background(), "s 49")
	assert.Equal(t, 50, ecu.ticks)
	assert.Contains(t, out.String(), "tick 50: NORMAL")

	out.Reset()
	c.Exec(context.Background(), "step -1")
	assert.Contains(t, out.String(), "Invalid tick count")

	out.Reset()
	ecu.stepErr = errors.New("scheduler is running")
	c.Exec(context.Background(), "step")
	assert.Contains(t, out.String(), "Step failed: scheduler is running")
}

func TestExecRDBI(t *testing.T) {
	c, ecu, out := newTestConsole()

	c.Exec(context.Background(), "rdbi F308")
	assert.Equal(t, rdbi.DID(0xF308), ecu.lastDID)
	assert.Equal(t, uint16(3), ecu.lastLength)
	assert.Contains(t, out.String(), "Response: 62 F3 08 01")

	out.Reset()
	c.Exec(context.Background(), "rdbi 0xFFFF 40")
	assert.Equal(t, uint16(40), ecu.lastLength)
	assert.Contains(t, out.String(), "Response: 7F 22 31")
	assert.Contains(t, out.String(), "REQUEST_OUT_OF_RANGE")

	out.Reset()
	c.Exec(context.Background(), "rdbi zz")
	assert.Contains(t, out.String(), "Invalid DID")
}

func TestExecInspection(t *testing.T) {
	c, _, out := newTestConsole()

	c.Exec(context.Background(), "thresholds")
	assert.Contains(t, out.String(), "under 8000/8500 mV")

	out.Reset()
	c.Exec(context.Background(), "dids")
	assert.Contains(t, out.String(), "0xF308")
	assert.Contains(t, out.String(), "IS_OVERVOLT_FLAG")

	out.Reset()
	c.Exec(context.Background(), "status")
	assert.Contains(t, out.String(), "stepped")
	assert.Contains(t, out.String(), "NORMAL")
}

func TestExecQuitAndUnknown(t *testing.T) {
	c, _, out := newTestConsole()

	assert.False(t, c.Exec(context.Background(), ""))
	assert.False(t, c.Exec(context.Background(), "bogus"))
	assert.Contains(t, out.String(), "Unknown command: bogus")

	for _, cmd := range []string{"quit", "exit", "q", "QUIT"} {
		assert.True(t, c.Exec(context.Background(), cmd), cmd)
	}
}

func TestParseDID(t *testing.T) {
	tests := []struct {
		in   string
		want rdbi.DID
		ok   bool
	}{
		{"F308", 0xF308, true},
		{"0xf308", 0xF308, true},
		{"0XFFFF", 0xFFFF, true},
		{"10000", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseDID(tt.in)
		if !tt.ok {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestExecStatusReportsFailure(t *testing.T) {
	c, ecu, out := newTestConsole()

	c.Exec(context.Background(), "status")
	assert.Contains(t, out.String(), "State:        NORMAL")

	ecu.statusErr = context.DeadlineExceeded
	out.Reset()
	c.Exec(context.Background(), "status")
	assert.Contains(t, out.String(), "Status failed: context deadline exceeded")
	assert.NotContains(t, out.String(), "State:")

	out.Reset()
	c.Exec(context.Background(), "step")
	assert.Contains(t, out.String(), "Status failed")
}
