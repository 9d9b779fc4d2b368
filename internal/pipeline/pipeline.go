// Package pipeline orchestrates the program execution workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/retroenv/nes6502/internal/arch"
	"github.com/retroenv/nes6502/internal/arch/m6502"
	"github.com/retroenv/nes6502/internal/bus"
	"github.com/retroenv/nes6502/internal/detector"
	"github.com/retroenv/nes6502/internal/diagnostics"
	"github.com/retroenv/nes6502/internal/loader"
	"github.com/retroenv/nes6502/internal/mapper"
	"github.com/retroenv/nes6502/internal/options"
	"github.com/retroenv/nes6502/internal/trace"
	system "github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// contextCheckInterval is the number of steps between checks for a
// cancelled context.
const contextCheckInterval = 4096

// StopReason describes why the execution stopped.
type StopReason string

// Reasons for a stopped execution.
const (
	StopTrap       StopReason = "trap"
	StopBreakpoint StopReason = "breakpoint"
	StopStepLimit  StopReason = "step limit"
)

// Report contains the outcome of a program run.
type Report struct {
	System system.System
	Reason StopReason
	Steps  uint64
	Cycles uint64
	State  m6502.State
}

// Pipeline orchestrates the complete execution workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new execution pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete execution pipeline. If the trace writer is not
// nil, a trace line is written for every executed instruction.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, emuOpts options.Emulator,
	traceWriter io.Writer) (*Report, error) {

	// Detect system architecture
	sys := p.detector.Detect(opts)

	// Load program
	cart, err := p.loader.Load(opts, sys)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	return p.ExecuteWithCartridge(ctx, cart, opts, emuOpts, traceWriter, sys)
}

// ExecuteWithCartridge runs the execution pipeline with a pre-loaded cartridge.
// This is useful for testing and programmatic usage where the program is already in memory.
func (p *Pipeline) ExecuteWithCartridge(ctx context.Context, cart *cartridge.Cartridge, opts options.Program,
	emuOpts options.Emulator, traceWriter io.Writer, sys system.System) (*Report, error) {

	mem, err := p.createBus(cart, opts, sys)
	if err != nil {
		return nil, fmt.Errorf("creating bus: %w", err)
	}

	cpu := m6502.New(p.logger, mem, emuOpts)
	cpu.Reset()
	if opts.HasStart {
		cpu.PC = opts.StartAddress
	}

	// Print info before processing
	p.printInfo(opts, cart, sys, cpu.PC)

	var tracer *trace.Writer
	if traceWriter != nil {
		tracer = trace.New(traceWriter, mem)
	}

	report, err := p.run(ctx, cpu, opts, tracer)
	if err != nil {
		return nil, fmt.Errorf("running program: %w", err)
	}
	report.System = sys
	p.printReport(opts, report)

	if opts.MemViz != "" {
		if err := diagnostics.WriteStateGraph(opts.MemViz, report); err != nil {
			return nil, fmt.Errorf("writing state graph: %w", err)
		}
	}

	return report, nil
}

// createBus creates the memory bus for the system and maps the program into it.
// Raw binaries are loaded at the origin, cartridges are mapped by their mapper.
func (p *Pipeline) createBus(cart *cartridge.Cartridge, opts options.Program, sys system.System) (arch.Bus, error) {
	switch sys {
	case system.NES:
		b := bus.New(p.logger)
		if opts.Binary {
			b.Load(opts.LoadAddress, cart.PRG)
			return b, nil
		}

		m, err := mapper.New(p.logger, cart)
		if err != nil {
			return nil, fmt.Errorf("creating mapper: %w", err)
		}
		if err := b.Attach(mapper.Start, mapper.End, 0, m); err != nil {
			return nil, fmt.Errorf("attaching mapper: %w", err)
		}
		return b, nil

	case detector.Flat:
		b := bus.NewFlat()
		b.Load(opts.LoadAddress, cart.PRG)
		return b, nil

	default:
		return nil, fmt.Errorf("unsupported system '%s'", sys)
	}
}

// run steps the processor until a stop condition is reached. An illegal
// opcode or a cancelled context is returned as error.
func (p *Pipeline) run(ctx context.Context, cpu *m6502.CPU, opts options.Program,
	tracer *trace.Writer) (*Report, error) {

	breakpoints := set.New[uint16]()
	for _, address := range opts.BreakAddresses {
		breakpoints.Add(address)
	}

	report := &Report{}
	for {
		if report.Steps%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("after %d steps: %w", report.Steps, err)
			}
		}
		if opts.MaxSteps > 0 && report.Steps >= opts.MaxSteps {
			report.Reason = StopStepLimit
			break
		}
		if breakpoints.Contains(cpu.PC) {
			report.Reason = StopBreakpoint
			break
		}

		if tracer != nil {
			if err := tracer.Write(cpu.State, cpu.Cycles()); err != nil {
				return nil, fmt.Errorf("tracing instruction: %w", err)
			}
		}

		res, err := cpu.Step()
		if err != nil {
			return nil, fmt.Errorf("executing instruction: %w", err)
		}
		report.Steps++

		if res.Interrupt != m6502.NoInterrupt {
			p.logger.Debug("Serviced interrupt",
				log.Stringer("interrupt", res.Interrupt),
				log.Hex("address", res.Address))
			continue
		}

		// an instruction that jumps or branches to itself never exits,
		// test suites use this to signal success or failure
		if cpu.PC == res.Address {
			report.Reason = StopTrap
			break
		}
	}

	report.Cycles = cpu.Cycles()
	report.State = cpu.State
	return report, nil
}

// printInfo prints information about the program being executed.
func (p *Pipeline) printInfo(opts options.Program, cart *cartridge.Cartridge, sys system.System, start uint16) {
	if opts.Quiet {
		return
	}

	switch {
	case sys == system.NES && !opts.Binary:
		p.logger.Info("Running NES ROM",
			log.String("file", opts.Input),
			log.Uint16("mapper", cart.Mapper),
			log.Hex("start", start),
		)

	default:
		p.logger.Info("Running binary",
			log.String("file", opts.Input),
			log.Stringer("system", sys),
			log.Hex("origin", opts.LoadAddress),
			log.Hex("start", start),
		)
	}
}

// printReport prints the reason the execution stopped and the final state.
func (p *Pipeline) printReport(opts options.Program, report *Report) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Execution stopped",
		log.String("reason", string(report.Reason)),
		log.Hex("pc", report.State.PC),
		log.String("steps", strconv.FormatUint(report.Steps, 10)),
		log.String("cycles", strconv.FormatUint(report.Cycles, 10)),
	)
	p.logger.Debug("Final state", log.Stringer("state", report.State))
}
