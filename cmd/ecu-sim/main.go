// Command ecu-sim simulates the LIN ECU voltage supervisor and its
// ReadDataByIdentifier service.
//
// The simulator runs the debounced voltage monitor from a fixed-period
// scheduler, serves the supervisor flags and the supply voltage over
// RDBI and optionally records all events to a CBOR protocol log.
//
// Usage:
//
//	ecu-sim [flags]
//
// Flags:
//
//	-config string        Configuration file path
//	-log-level string     Log level: debug, info, warn, error (overrides config)
//	-protocol-log string  Protocol log file path (overrides config)
//	-voltage uint         Initial supply voltage in mV (default 12000)
//	-interactive          Start the interactive console (stepped ticks)
//	-realtime             With -interactive, run ticks in real time
//
// Examples:
//
//	# Run in real time with default thresholds until Ctrl-C
//	ecu-sim
//
//	# Step through a brown-out by hand
//	ecu-sim -interactive -voltage 12000
//
//	# Record a session for ecu-log
//	ecu-sim -config ecu.yaml -protocol-log session.elog
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/linecu/linecu-go/cmd/ecu-sim/interactive"
	"github.com/linecu/linecu-go/pkg/config"
	eculog "github.com/linecu/linecu-go/pkg/log"
)

// Options holds the command line options.
type Options struct {
	ConfigFile  string
	LogLevel    string
	ProtocolLog string
	Voltage     uint
	Interactive bool
	Realtime    bool
}

var opts Options

func init() {
	flag.StringVar(&opts.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flag.StringVar(&opts.ProtocolLog, "protocol-log", "", "Protocol log file path (overrides config)")
	flag.UintVar(&opts.Voltage, "voltage", 12000, "Initial supply voltage in mV")
	flag.BoolVar(&opts.Interactive, "interactive", false, "Start the interactive console (stepped ticks)")
	flag.BoolVar(&opts.Realtime, "realtime", false, "With -interactive, run ticks in real time")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if opts.Voltage > math.MaxUint16 {
		log.Fatalf("Invalid configuration: voltage must be 0-%d mV, got %d", math.MaxUint16, opts.Voltage)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var console *interactive.Console
	var out io.Writer = os.Stdout
	var errOut io.Writer = os.Stderr
	var sim *ecu

	if opts.Interactive {
		// The console needs an ECU, the ECU needs the console writer.
		proxy := &ecuProxy{}
		console, err = interactive.New(proxy)
		if err != nil {
			log.Fatalf("Failed to start console: %v", err)
		}
		out = console.Stdout()
		errOut = console.Stderr()
		log.SetOutput(errOut)
		sim = setup(cfg, uint16(opts.Voltage), out, errOut)
		proxy.ecu = sim
	} else {
		sim = setup(cfg, uint16(opts.Voltage), out, errOut)
	}
	defer sim.close()

	log.Println("LIN ECU Simulator")
	log.Println("=================")
	log.Printf("Session:     %s", sim.session)
	log.Printf("Thresholds:  %s", sim.Thresholds())
	log.Printf("Debounce:    %d ms on, %d ms off", cfg.VoltMon.ActivationTimeMs, cfg.VoltMon.DeactivationTimeMs)
	log.Printf("Task period: %s", sim.sched.Period())
	for _, w := range cfg.Warnings() {
		log.Printf("Warning: %s", w)
	}

	g, gctx := errgroup.WithContext(ctx)
	if !opts.Interactive || opts.Realtime {
		g.Go(func() error {
			return ignoreCanceled(sim.Run(gctx))
		})
	}
	if opts.Interactive {
		g.Go(func() error {
			console.Run(gctx, cancel)
			cancel()
			return nil
		})
	} else {
		log.Println("Running (Ctrl-C to stop)")
		g.Go(func() error {
			return waitForSignal(gctx, cancel)
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("Scheduler stopped: %v", err)
	}
	log.Printf("Stopped after %d ticks, final state %s", sim.sched.Ticks(), sim.monitor.State())
}

// waitForSignal cancels the run on SIGINT or SIGTERM.
func waitForSignal(ctx context.Context, cancel context.CancelFunc) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
		cancel()
	case <-ctx.Done():
	}
	return nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadConfig loads the configuration file, if any, and applies flag
// overrides.
func loadConfig(o Options) (*config.Config, error) {
	cfg := config.Default()
	if o.ConfigFile != "" {
		loaded, err := config.Load(o.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.ProtocolLog != "" {
		cfg.Log.ProtocolLog = o.ProtocolLog
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup creates the loggers and the simulated ECU.
func setup(cfg *config.Config, initialMV uint16, out, errOut io.Writer) *ecu {
	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var fileLogger *eculog.FileLogger
	if cfg.Log.ProtocolLog != "" {
		var err error
		fileLogger, err = eculog.NewFileLogger(cfg.Log.ProtocolLog)
		if err != nil {
			log.Fatalf("Failed to open protocol log: %v", err)
		}
		log.Printf("Protocol logging to: %s", cfg.Log.ProtocolLog)
	}

	var events eculog.Logger = eculog.NoopLogger{}
	if fileLogger != nil || level <= slog.LevelDebug {
		var console eculog.Logger
		if level <= slog.LevelDebug {
			console = eculog.NewSlogAdapter(logger)
		}
		var file eculog.Logger
		if fileLogger != nil {
			file = fileLogger
		}
		events = eculog.NewMultiLogger(console, file)
	}

	e := newECU(cfg, initialMV, out, events, logger)
	e.closer = func() {
		if fileLogger == nil {
			return
		}
		if n := fileLogger.Errors(); n > 0 {
			log.Printf("Protocol log: %d event(s) could not be written", n)
		}
		if err := fileLogger.Close(); err != nil {
			log.Printf("Error closing protocol log: %v", err)
		}
	}
	return e
}

// ecuProxy lets the console be created before the ECU it drives.
type ecuProxy struct {
	*ecu
}
