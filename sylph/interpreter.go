package sylph

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Config controls where out lines go and the execution bounds the engine
// enforces on every run.
type Config struct {
	// Output receives one line per executed out statement.
	Output io.Writer

	// StepQuota bounds the number of statements a single run may execute.
	StepQuota int

	// RecursionLimit bounds the call-stack depth.
	RecursionLimit int
}

// Engine compiles and executes programs with deterministic limits. An Engine
// holds no per-run state, so one instance may compile and run independent
// scripts concurrently.
type Engine struct {
	config Config
}

// NewEngine constructs an Engine, filling zero config fields with defaults.
func NewEngine(cfg Config) *Engine {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.StepQuota <= 0 {
		cfg.StepQuota = 500000
	}
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = 256
	}
	return &Engine{config: cfg}
}

// Run compiles source and executes it in one shot.
func (e *Engine) Run(ctx context.Context, source string) error {
	script, err := e.Compile(source)
	if err != nil {
		return err
	}
	return script.Run(ctx)
}

// ConfigSummary provides a human-readable description of the engine limits.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("steps=%d recursion=%d", e.config.StepQuota, e.config.RecursionLimit)
}

func (e *Engine) newExecution(ctx context.Context, script *Script) *Execution {
	return &Execution{
		engine:       e,
		script:       script,
		ctx:          ctx,
		out:          e.config.Output,
		quota:        e.config.StepQuota,
		recursionCap: e.config.RecursionLimit,
		globals:      newFrame(),
		functions:    make(map[string]*FunctionStmt),
		callStack:    make([]callFrame, 0, 8),
	}
}
