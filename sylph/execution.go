package sylph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Runtime error kinds carried by RuntimeError.Kind. The first five are
// language errors; QuotaError and CancelledError report the engine's own
// limits so hosts can tell them apart from program faults.
const (
	ErrKindName           = "NameError"
	ErrKindArity          = "ArityError"
	ErrKindType           = "TypeError"
	ErrKindOverflow       = "OverflowError"
	ErrKindDivisionByZero = "DivisionByZeroError"
	ErrKindQuota          = "QuotaError"
	ErrKindCancelled      = "CancelledError"
)

const (
	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

// Execution is the state of one run: the global frame, the function registry
// as populated so far, and the live call stack. It is created per run and
// never reused, which is what makes re-running a source byte-identical.
type Execution struct {
	engine       *Engine
	script       *Script
	ctx          context.Context
	out          io.Writer
	quota        int
	recursionCap int
	steps        int
	globals      *frame
	functions    map[string]*FunctionStmt
	callStack    []callFrame
}

type callFrame struct {
	Function string
	Pos      Position
}

// StackFrame is one entry of a RuntimeError's rendered call stack.
type StackFrame struct {
	Function string
	Pos      Position
}

// RuntimeError is the fatal result of evaluating a program. The run stops at
// the failure point; output already written stays written.
type RuntimeError struct {
	Kind      string
	Message   string
	Pos       Position
	CodeFrame string
	Frames    []StackFrame
}

func (re *RuntimeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", re.Kind, re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 && frame.Pos.Column > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (line %d)", frame.Function, frame.Pos.Line)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}

	return b.String()
}

// valueError is a kind-tagged error raised by value operations that have no
// source position of their own; the evaluator attaches position and stack via
// wrapError.
type valueError struct {
	kind    string
	message string
}

func (e *valueError) Error() string { return e.message }

func newValueError(kind string, format string, args ...any) error {
	return &valueError{kind: kind, message: fmt.Sprintf(format, args...)}
}

func (exec *Execution) step(pos Position) error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return exec.errorAt(ErrKindQuota, pos, "step quota exceeded (%d)", exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.errorAt(ErrKindCancelled, pos, "execution cancelled: %v", exec.ctx.Err())
		default:
		}
	}
	return nil
}

func (exec *Execution) errorAt(kind string, pos Position, format string, args ...any) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)

	if len(exec.callStack) > 0 {
		// First frame: where the error occurred, inside the current function.
		current := exec.callStack[len(exec.callStack)-1]
		frames = append(frames, StackFrame{Function: current.Function, Pos: pos})

		// Remaining frames: where each active call was made from.
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			frames = append(frames, StackFrame(exec.callStack[i]))
		}
	} else {
		frames = append(frames, StackFrame{Function: "<program>", Pos: pos})
	}

	codeFrame := ""
	if exec.script != nil {
		codeFrame = formatCodeFrame(exec.script.source, pos)
	}
	return &RuntimeError{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		Pos:       pos,
		CodeFrame: codeFrame,
		Frames:    frames,
	}
}

// wrapError attaches position and stack to kind-tagged value errors; anything
// else (an already-built RuntimeError, a sink write failure) passes through.
func (exec *Execution) wrapError(err error, pos Position) error {
	if err == nil {
		return nil
	}
	var ve *valueError
	if errors.As(err, &ve) {
		return exec.errorAt(ve.kind, pos, "%s", ve.message)
	}
	return err
}

func (exec *Execution) pushFrame(function string, pos Position) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.errorAt(ErrKindQuota, pos, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.callStack = append(exec.callStack, callFrame{Function: function, Pos: pos})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

func (exec *Execution) evalStatements(stmts []Statement, fr *frame) (Value, bool, error) {
	for _, stmt := range stmts {
		if err := exec.step(stmt.Pos()); err != nil {
			return NewUnit(), false, err
		}
		val, returned, err := exec.evalStatement(stmt, fr)
		if err != nil {
			return NewUnit(), false, err
		}
		if returned {
			return val, true, nil
		}
	}
	return NewUnit(), false, nil
}

func (exec *Execution) evalStatement(stmt Statement, fr *frame) (Value, bool, error) {
	switch s := stmt.(type) {
	case *ExprStmt:
		// A bare name is a zero-argument call when the name is a registered
		// function, otherwise a variable read.
		if ident, ok := s.Expr.(*Identifier); ok {
			if _, registered := exec.functions[ident.Name]; registered {
				val, err := exec.invokeFunction(ident.Name, nil, ident.Pos(), fr)
				return val, false, err
			}
		}
		val, err := exec.evalExpression(s.Expr, fr)
		return val, false, err
	case *AssignStmt:
		val, err := exec.evalExpression(s.Value, fr)
		if err != nil {
			return NewUnit(), false, err
		}
		fr.set(s.Name, val)
		return NewUnit(), false, nil
	case *CompoundAssignStmt:
		current, bound := fr.get(s.Name)
		if !bound {
			return NewUnit(), false, exec.errorAt(ErrKindName, s.Pos(), "undefined variable %q", s.Name)
		}
		operand, err := exec.evalExpression(s.Value, fr)
		if err != nil {
			return NewUnit(), false, err
		}
		val, err := applyBinaryOp(s.Op, current, operand)
		if err != nil {
			return NewUnit(), false, exec.wrapError(err, s.Pos())
		}
		fr.set(s.Name, val)
		return NewUnit(), false, nil
	case *OutStmt:
		val, err := exec.evalExpression(s.Value, fr)
		if err != nil {
			return NewUnit(), false, err
		}
		if val.IsUnit() {
			return NewUnit(), false, exec.errorAt(ErrKindType, s.Value.Pos(), "cannot output %s", val.Kind())
		}
		if _, err := io.WriteString(exec.out, val.Render()+"\n"); err != nil {
			return NewUnit(), false, err
		}
		return NewUnit(), false, nil
	case *ReturnStmt:
		if s.Value == nil {
			return NewUnit(), true, nil
		}
		val, err := exec.evalExpression(s.Value, fr)
		return val, true, err
	case *FunctionStmt:
		// Registration happens when the definition executes; a later def of
		// the same name wins from that point on.
		exec.functions[s.Name] = s
		return NewUnit(), false, nil
	case *IfStmt:
		return exec.evalIfStatement(s, fr)
	case *WhileStmt:
		return exec.evalWhileStatement(s, fr)
	default:
		return NewUnit(), false, exec.errorAt(ErrKindType, stmt.Pos(), "unsupported statement")
	}
}

func (exec *Execution) evalExpression(expr Expression, fr *frame) (Value, error) {
	switch e := expr.(type) {
	case *Identifier:
		val, ok := fr.get(e.Name)
		if !ok {
			msg := fmt.Sprintf("undefined variable %q", e.Name)
			if hint := closestName(e.Name, fr.names()); hint != "" {
				msg += fmt.Sprintf(" (did you mean %q?)", hint)
			}
			return NewUnit(), exec.errorAt(ErrKindName, e.Pos(), "%s", msg)
		}
		return val, nil
	case *IntegerLiteral:
		return NewInt(e.Width, e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *UnaryExpr:
		val, err := exec.evalExpression(e.Right, fr)
		if err != nil {
			return NewUnit(), err
		}
		negated, err := negateValue(val)
		if err != nil {
			return NewUnit(), exec.wrapError(err, e.Pos())
		}
		return negated, nil
	case *BinaryExpr:
		left, err := exec.evalExpression(e.Left, fr)
		if err != nil {
			return NewUnit(), err
		}
		right, err := exec.evalExpression(e.Right, fr)
		if err != nil {
			return NewUnit(), err
		}
		val, err := applyBinaryOp(e.Operator, left, right)
		if err != nil {
			return NewUnit(), exec.wrapError(err, e.Pos())
		}
		return val, nil
	case *CallExpr:
		return exec.invokeFunction(e.Callee, e.Args, e.Pos(), fr)
	default:
		return NewUnit(), exec.errorAt(ErrKindType, expr.Pos(), "unsupported expression")
	}
}
