package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/sahilm/fuzzy"
	"github.com/urfave/cli/v2"

	"github.com/sylph-lang/sylph/sylph"
)

type checkWarning struct {
	Scope   string
	Pos     sylph.Position
	Message string
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "report static findings without executing",
		ArgsUsage: "FILE",
		Action:    checkAction,
	}
}

func checkAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("sylph check: program file required", 2)
	}
	displayPath, err := filepath.Abs(path)
	if err != nil {
		displayPath = path
	}

	source, err := readProgram(path)
	if err != nil {
		return err
	}

	engine := sylph.NewEngine(sylph.Config{})
	script, err := engine.Compile(source)
	if err != nil {
		return err
	}

	warnings := analyzeProgram(script)
	if len(warnings) == 0 {
		fmt.Fprintln(c.App.Writer, "No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := warning.Pos.Line
		column := warning.Pos.Column
		if line <= 0 {
			line = 1
		}
		if column <= 0 {
			column = 1
		}
		fmt.Fprintf(c.App.Writer, "%s:%d:%d: %s (%s)\n", displayPath, line, column, warning.Message, warning.Scope)
	}

	return cli.Exit(fmt.Sprintf("check found %d issue(s)", len(warnings)), 1)
}

type programAnalysis struct {
	script   *sylph.Script
	warnings []checkWarning

	// referenced marks functions used from any scope other than their own
	// body, so a function that only calls itself still reports as unused.
	referenced map[string]bool
}

func analyzeProgram(script *sylph.Script) []checkWarning {
	a := &programAnalysis{
		script:     script,
		warnings:   make([]checkWarning, 0),
		referenced: make(map[string]bool),
	}

	topLevel := make([]sylph.Statement, 0, len(script.Program().Statements))
	for _, stmt := range script.Program().Statements {
		if _, isDef := stmt.(*sylph.FunctionStmt); isDef {
			continue
		}
		topLevel = append(topLevel, stmt)
	}
	a.checkStatements("<program>", topLevel)
	for _, fn := range script.Functions() {
		a.checkStatements(fn.Name, fn.Body)
	}

	for _, fn := range script.Functions() {
		if !a.referenced[fn.Name] {
			a.warn("<program>", fn.Pos(), fmt.Sprintf("function %s is never used", fn.Name))
		}
	}

	sort.SliceStable(a.warnings, func(i, j int) bool {
		if a.warnings[i].Pos.Line != a.warnings[j].Pos.Line {
			return a.warnings[i].Pos.Line < a.warnings[j].Pos.Line
		}
		if a.warnings[i].Pos.Column != a.warnings[j].Pos.Column {
			return a.warnings[i].Pos.Column < a.warnings[j].Pos.Column
		}
		return a.warnings[i].Scope < a.warnings[j].Scope
	})

	return a.warnings
}

func (a *programAnalysis) warn(scope string, pos sylph.Position, message string) {
	a.warnings = append(a.warnings, checkWarning{Scope: scope, Pos: pos, Message: message})
}

// checkStatements walks one block, flagging statements that follow a
// guaranteed return. It reports whether the block always returns.
func (a *programAnalysis) checkStatements(scope string, statements []sylph.Statement) bool {
	terminated := false
	for _, stmt := range statements {
		if terminated {
			a.warn(scope, stmt.Pos(), "unreachable statement")
			continue
		}
		if a.checkStatement(scope, stmt) {
			terminated = true
		}
	}
	return terminated
}

func (a *programAnalysis) checkStatement(scope string, stmt sylph.Statement) bool {
	switch typed := stmt.(type) {
	case *sylph.ReturnStmt:
		if typed.Value != nil {
			a.checkExpression(scope, typed.Value)
		}
		return true
	case *sylph.IfStmt:
		a.checkExpression(scope, typed.Condition)
		consequentTerminated := a.checkStatements(scope, typed.Consequent)
		if typed.Alternate == nil {
			return false
		}
		alternateTerminated := a.checkStatements(scope, typed.Alternate)
		return consequentTerminated && alternateTerminated
	case *sylph.WhileStmt:
		// A while body may run zero times, so it never guarantees a return.
		a.checkExpression(scope, typed.Condition)
		a.checkStatements(scope, typed.Body)
		return false
	case *sylph.AssignStmt:
		a.checkExpression(scope, typed.Value)
		return false
	case *sylph.CompoundAssignStmt:
		a.checkExpression(scope, typed.Value)
		return false
	case *sylph.OutStmt:
		a.checkExpression(scope, typed.Value)
		return false
	case *sylph.ExprStmt:
		// A bare registered name runs as a zero-argument call.
		if ident, ok := typed.Expr.(*sylph.Identifier); ok {
			if fn, defined := a.script.Function(ident.Name); defined {
				a.recordCall(scope, ident.Name, fn, 0, ident.Pos())
				return false
			}
		}
		a.checkExpression(scope, typed.Expr)
		return false
	default:
		return false
	}
}

func (a *programAnalysis) checkExpression(scope string, expr sylph.Expression) {
	switch typed := expr.(type) {
	case *sylph.UnaryExpr:
		a.checkExpression(scope, typed.Right)
	case *sylph.BinaryExpr:
		a.checkExpression(scope, typed.Left)
		a.checkExpression(scope, typed.Right)
	case *sylph.CallExpr:
		fn, defined := a.script.Function(typed.Callee)
		if !defined {
			message := fmt.Sprintf("call to undefined function %q", typed.Callee)
			if hint := suggestFunction(typed.Callee, a.script.Functions()); hint != "" {
				message += fmt.Sprintf(" (did you mean %q?)", hint)
			}
			a.warn(scope, typed.Pos(), message)
		} else {
			a.recordCall(scope, typed.Callee, fn, len(typed.Args), typed.Pos())
		}
		for _, arg := range typed.Args {
			a.checkExpression(scope, arg)
		}
	}
}

func (a *programAnalysis) recordCall(scope, name string, fn *sylph.FunctionStmt, argCount int, pos sylph.Position) {
	if scope != name {
		a.referenced[name] = true
	}
	if argCount != len(fn.Params) {
		a.warn(scope, pos, fmt.Sprintf("%s expects %d argument(s), got %d", name, len(fn.Params), argCount))
	}
}

func suggestFunction(name string, functions []*sylph.FunctionStmt) string {
	if len(name) < 2 || len(functions) == 0 {
		return ""
	}
	candidates := make([]string, 0, len(functions))
	for _, fn := range functions {
		candidates = append(candidates, fn.Name)
	}
	if matches := fuzzy.Find(name, candidates); len(matches) > 0 {
		return matches[0].Str
	}
	best := ""
	bestScore := -1
	for _, candidate := range candidates {
		if m := fuzzy.Find(candidate, []string{name}); len(m) > 0 && m[0].Score > bestScore {
			best = candidate
			bestScore = m[0].Score
		}
	}
	return best
}
