package sylph

// Branch and loop bodies share the enclosing frame: assignments inside them
// persist after the block ends.

func (exec *Execution) evalIfStatement(stmt *IfStmt, fr *frame) (Value, bool, error) {
	cond, err := exec.evalExpression(stmt.Condition, fr)
	if err != nil {
		return NewUnit(), false, err
	}
	if cond.Kind() != KindBool {
		return NewUnit(), false, exec.errorAt(ErrKindType, stmt.Condition.Pos(), "if condition must be a bool, got %s", cond.Kind())
	}
	if cond.Bool() {
		return exec.evalStatements(stmt.Consequent, fr)
	}
	if stmt.Alternate != nil {
		return exec.evalStatements(stmt.Alternate, fr)
	}
	return NewUnit(), false, nil
}

func (exec *Execution) evalWhileStatement(stmt *WhileStmt, fr *frame) (Value, bool, error) {
	for {
		if err := exec.step(stmt.Pos()); err != nil {
			return NewUnit(), false, err
		}
		cond, err := exec.evalExpression(stmt.Condition, fr)
		if err != nil {
			return NewUnit(), false, err
		}
		if cond.Kind() != KindBool {
			return NewUnit(), false, exec.errorAt(ErrKindType, stmt.Condition.Pos(), "while condition must be a bool, got %s", cond.Kind())
		}
		if !cond.Bool() {
			return NewUnit(), false, nil
		}
		val, returned, err := exec.evalStatements(stmt.Body, fr)
		if err != nil {
			return NewUnit(), false, err
		}
		if returned {
			return val, true, nil
		}
	}
}
