package sylph

import (
	"context"
	"fmt"
	"sort"
)

// Script is a compiled program bound to the engine that compiled it. The
// functions map indexes every top-level definition (last definition wins) for
// hosts and tooling; during Run the registry is rebuilt as each def executes,
// so a call site earlier in the source than the definition still fails.
type Script struct {
	engine    *Engine
	program   *Program
	functions map[string]*FunctionStmt
	source    string
}

// Compile parses source into a runnable Script. The first lexical or
// syntactic error aborts the compile; there is no partial result.
func (e *Engine) Compile(source string) (*Script, error) {
	p := newParser(source)
	program, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}

	functions := make(map[string]*FunctionStmt)
	for _, stmt := range program.Statements {
		if fn, ok := stmt.(*FunctionStmt); ok {
			functions[fn.Name] = fn
		}
	}

	return &Script{engine: e, program: program, functions: functions, source: source}, nil
}

// Run executes the program's top-level statements in order against a fresh
// global frame. Each Run starts from nothing, so running the same script
// twice produces byte-identical output.
func (s *Script) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	exec := s.engine.newExecution(ctx, s)
	_, _, err := exec.evalStatements(s.program.Statements, exec.globals)
	return err
}

// Call invokes one defined function directly with pre-built argument values.
// The whole script's definitions are visible to the callee, but no top-level
// statement runs.
func (s *Script) Call(ctx context.Context, name string, args []Value) (Value, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	fn, ok := s.functions[name]
	if !ok {
		return NewUnit(), fmt.Errorf("function %s not found", name)
	}

	exec := s.engine.newExecution(ctx, s)
	for n, f := range s.functions {
		exec.functions[n] = f
	}
	return exec.callFunction(fn, args, fn.Pos())
}

// Program exposes the parsed tree for tooling.
func (s *Script) Program() *Program {
	return s.program
}

// Functions returns the defined functions in deterministic name order.
func (s *Script) Functions() []*FunctionStmt {
	names := make([]string, 0, len(s.functions))
	for name := range s.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*FunctionStmt, 0, len(names))
	for _, name := range names {
		out = append(out, s.functions[name])
	}
	return out
}

// Function returns the definition for name when one exists.
func (s *Script) Function(name string) (*FunctionStmt, bool) {
	fn, ok := s.functions[name]
	return fn, ok
}

// Source returns the text the script was compiled from.
func (s *Script) Source() string {
	return s.source
}
