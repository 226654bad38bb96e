// Package interactive provides the interactive command-line interface
// for the ECU simulator.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/linecu/linecu-go/pkg/rdbi"
	"github.com/linecu/linecu-go/pkg/voltmon"
)

// requestTimeout bounds each call that waits on the scheduler.
const requestTimeout = 2 * time.Second

// Status is a snapshot of the simulated ECU.
type Status struct {
	SessionID string
	VoltageMV uint16
	Ramping   bool
	Monitor   voltmon.Context
	Ticks     uint64
	Period    string
	Realtime  bool

	PositiveResponses int
	NegativeResponses int
}

// ECU is the simulator surface driven by the console.
type ECU interface {
	SetVoltage(mv uint16)
	Ramp(target, stepMV uint16)
	Step(ticks int) error
	ReadDID(ctx context.Context, did rdbi.DID, length uint16) ([]byte, error)
	Status(ctx context.Context) (Status, error)
	Thresholds() voltmon.Thresholds
	Entries() []rdbi.Entry
}

// Console handles interactive mode for the simulator.
type Console struct {
	ecu ECU
	rl  *readline.Instance
	out io.Writer
}

// New creates a console backed by a readline prompt.
func New(ecu ECU) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ecu> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{ecu: ecu, rl: rl, out: rl.Stdout()}, nil
}

// NewWithWriter creates a console without a prompt that writes command
// output to w. Lines are supplied through Exec.
func NewWithWriter(ecu ECU, w io.Writer) *Console {
	return &Console{ecu: ecu, out: w}
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	if c.rl == nil {
		return c.out
	}
	return c.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (c *Console) Stderr() io.Writer {
	if c.rl == nil {
		return os.Stderr
	}
	return c.rl.Stderr()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if quit := c.Exec(ctx, line); quit {
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Exec runs one command line and reports whether the user asked to quit.
func (c *Console) Exec(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()

	case "volt", "v":
		c.cmdVolt(args)

	case "ramp":
		c.cmdRamp(args)

	case "step", "s":
		c.cmdStep(ctx, args)

	case "rdbi", "r":
		c.cmdRDBI(ctx, args)

	case "dids":
		c.cmdDIDs()

	case "status", "st":
		c.cmdStatus(ctx)

	case "thresholds", "th":
		fmt.Fprintln(c.out, c.ecu.Thresholds())

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
ECU Simulator Commands:
  Supply:
    volt <mV>              - Set the supply voltage
    ramp <mV> <mV/tick>    - Ramp the supply towards a target

  Scheduling:
    step [n]               - Run n ticks (default 1)

  Diagnostics:
    rdbi <did> [length]    - Send ReadDataByIdentifier (e.g. rdbi F308)
    dids                   - List served data identifiers

  Inspection:
    status                 - Show supervisor state and timers
    thresholds             - Show derived thresholds

  General:
    help                   - Show this help
    quit                   - Exit simulator`)
}

func (c *Console) cmdVolt(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: volt <mV>")
		return
	}
	mv, err := parseMillivolts(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid voltage: %v\n", err)
		return
	}
	c.ecu.SetVoltage(mv)
	fmt.Fprintf(c.out, "Supply set to %d mV\n", mv)
}

func (c *Console) cmdRamp(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: ramp <mV> <mV/tick>")
		return
	}
	target, err := parseMillivolts(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid target: %v\n", err)
		return
	}
	step, err := parseMillivolts(args[1])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid step: %v\n", err)
		return
	}
	c.ecu.Ramp(target, step)
	fmt.Fprintf(c.out, "Ramping to %d mV at %d mV/tick\n", target, step)
}

func (c *Console) cmdStep(ctx context.Context, args []string) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			fmt.Fprintf(c.out, "Invalid tick count: %s\n", args[0])
			return
		}
		n = v
	}
	if err := c.ecu.Step(n); err != nil {
		fmt.Fprintf(c.out, "Step failed: %v\n", err)
		return
	}
	st, err := c.status(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "Status failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "tick %d: %s at %d mV\n", st.Ticks, st.Monitor.State, st.VoltageMV)
}

func (c *Console) cmdRDBI(ctx context.Context, args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(c.out, "Usage: rdbi <did> [length]")
		return
	}
	did, err := ParseDID(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid DID: %v\n", err)
		return
	}
	length := uint16(3)
	if len(args) == 2 {
		v, err := strconv.ParseUint(args[1], 0, 16)
		if err != nil {
			fmt.Fprintf(c.out, "Invalid length: %s\n", args[1])
			return
		}
		length = uint16(v)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	resp, err := c.ecu.ReadDID(ctx, did, length)
	fmt.Fprintf(c.out, "Response: % X\n", resp)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

func (c *Console) cmdDIDs() {
	entries := c.ecu.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No data identifiers served")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(c.out, "  %s  %-20s %d byte(s)\n", e.ID, e.Name, e.Size)
	}
}

func (c *Console) cmdStatus(ctx context.Context) {
	st, err := c.status(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "Status failed: %v\n", err)
		return
	}
	mode := "stepped"
	if st.Realtime {
		mode = "realtime"
	}
	fmt.Fprintf(c.out, "Session:      %s\n", st.SessionID)
	fmt.Fprintf(c.out, "Scheduler:    %s, period %s, %d ticks\n", mode, st.Period, st.Ticks)
	ramp := ""
	if st.Ramping {
		ramp = " (ramping)"
	}
	fmt.Fprintf(c.out, "Supply:       %d mV%s\n", st.VoltageMV, ramp)
	fmt.Fprintf(c.out, "State:        %s\n", st.Monitor.State)
	fmt.Fprintf(c.out, "Timers:       uv=%d ms ov=%d ms deact=%d ms\n",
		st.Monitor.UVActivationTimer, st.Monitor.OVActivationTimer, st.Monitor.DeactivationTimer)
	fmt.Fprintf(c.out, "Responses:    %d positive, %d negative\n", st.PositiveResponses, st.NegativeResponses)
}

func (c *Console) status(ctx context.Context) (Status, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return c.ecu.Status(ctx)
}

// ParseDID parses a data identifier given as hex with or without a 0x
// prefix.
func ParseDID(s string) (rdbi.DID, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return rdbi.DID(v), nil
}

func parseMillivolts(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
