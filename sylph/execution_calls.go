package sylph

import "fmt"

// invokeFunction resolves a callee against the registry, evaluates arguments
// left-to-right in the caller's frame, then runs the body in a fresh isolated
// frame. The frame binds parameters only; it cannot read the caller's names.
func (exec *Execution) invokeFunction(name string, argExprs []Expression, pos Position, fr *frame) (Value, error) {
	fn, ok := exec.functions[name]
	if !ok {
		msg := fmt.Sprintf("undefined function %q", name)
		if hint := closestName(name, exec.functionNames()); hint != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", hint)
		}
		return NewUnit(), exec.errorAt(ErrKindName, pos, "%s", msg)
	}
	if len(argExprs) != len(fn.Params) {
		return NewUnit(), exec.errorAt(ErrKindArity, pos, "%s expects %d argument(s), got %d", name, len(fn.Params), len(argExprs))
	}

	args := make([]Value, len(argExprs))
	for i, argExpr := range argExprs {
		val, err := exec.evalExpression(argExpr, fr)
		if err != nil {
			return NewUnit(), err
		}
		args[i] = val
	}

	return exec.callFunction(fn, args, pos)
}

// callFunction runs fn with already-evaluated arguments. A body that finishes
// without an explicit return yields the unit value.
func (exec *Execution) callFunction(fn *FunctionStmt, args []Value, pos Position) (Value, error) {
	if len(args) != len(fn.Params) {
		return NewUnit(), exec.errorAt(ErrKindArity, pos, "%s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}
	if err := exec.pushFrame(fn.Name, pos); err != nil {
		return NewUnit(), err
	}
	defer exec.popFrame()

	local := newFrame()
	for i, param := range fn.Params {
		local.set(param, args[i])
	}

	val, returned, err := exec.evalStatements(fn.Body, local)
	if err != nil {
		return NewUnit(), err
	}
	if returned {
		return val, nil
	}
	return NewUnit(), nil
}

func (exec *Execution) functionNames() []string {
	out := make([]string, 0, len(exec.functions))
	for name := range exec.functions {
		out = append(out, name)
	}
	return out
}
