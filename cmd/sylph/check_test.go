package main

import (
	"strings"
	"testing"

	"github.com/sylph-lang/sylph/sylph"
)

func analyzeSource(t *testing.T, source string) []checkWarning {
	t.Helper()
	engine := sylph.NewEngine(sylph.Config{})
	script, err := engine.Compile(source)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return analyzeProgram(script)
}

func requireWarning(t *testing.T, warnings []checkWarning, fragment string) checkWarning {
	t.Helper()
	for _, warning := range warnings {
		if strings.Contains(warning.Message, fragment) {
			return warning
		}
	}
	t.Fatalf("no warning mentions %q in %+v", fragment, warnings)
	return checkWarning{}
}

func TestAnalyzeCleanProgram(t *testing.T) {
	warnings := analyzeSource(t, `def add(a, b)
  return a + b
end
out add 1, 2
`)
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %+v", warnings)
	}
}

func TestAnalyzeUndefinedCall(t *testing.T) {
	warnings := analyzeSource(t, `out missing_fn 1
`)
	warning := requireWarning(t, warnings, `call to undefined function "missing_fn"`)
	if warning.Scope != "<program>" {
		t.Fatalf("unexpected scope: %s", warning.Scope)
	}
}

func TestAnalyzeUndefinedCallSuggestion(t *testing.T) {
	warnings := analyzeSource(t, `def shout(word)
  out word
end
shot "hello"
`)
	requireWarning(t, warnings, `did you mean "shout"?`)
}

func TestAnalyzeArityMismatch(t *testing.T) {
	warnings := analyzeSource(t, `def add(a, b)
  return a + b
end
out add 1
`)
	requireWarning(t, warnings, "add expects 2 argument(s), got 1")
}

func TestAnalyzeBareNameCallArity(t *testing.T) {
	warnings := analyzeSource(t, `def add(a, b)
  return a + b
end
add
`)
	requireWarning(t, warnings, "add expects 2 argument(s), got 0")
}

func TestAnalyzeUnreachableAfterReturn(t *testing.T) {
	warnings := analyzeSource(t, `def f(a)
  return a
  out a
end
out f 1
`)
	warning := requireWarning(t, warnings, "unreachable statement")
	if warning.Scope != "f" {
		t.Fatalf("unexpected scope: %s", warning.Scope)
	}
	if warning.Pos.Line != 3 {
		t.Fatalf("unexpected line: %d", warning.Pos.Line)
	}
}

func TestAnalyzeIfTerminatesOnlyWithBothBranches(t *testing.T) {
	warnings := analyzeSource(t, `def pick(a)
  if a < 0
    return 0
  else
    return a
  end
  out a
end
out pick 1
`)
	requireWarning(t, warnings, "unreachable statement")

	warnings = analyzeSource(t, `def pick(a)
  if a < 0
    return 0
  end
  out a
end
out pick 1
`)
	for _, warning := range warnings {
		if strings.Contains(warning.Message, "unreachable") {
			t.Fatalf("one-armed if must not terminate the block: %+v", warning)
		}
	}
}

func TestAnalyzeWhileNeverTerminatesBlock(t *testing.T) {
	warnings := analyzeSource(t, `def f(a)
  while a < 10
    return a
  end
  out a
end
out f 1
`)
	for _, warning := range warnings {
		if strings.Contains(warning.Message, "unreachable") {
			t.Fatalf("statement after while must stay reachable: %+v", warning)
		}
	}
}

func TestAnalyzeUnusedFunction(t *testing.T) {
	warnings := analyzeSource(t, `def helper(a)
  return a
end
out 1
`)
	requireWarning(t, warnings, "function helper is never used")
}

func TestAnalyzeSelfCallDoesNotCountAsUse(t *testing.T) {
	warnings := analyzeSource(t, `def loop(n)
  return loop n
end
out 1
`)
	requireWarning(t, warnings, "function loop is never used")
}

func TestAnalyzeWarningsSortedByPosition(t *testing.T) {
	warnings := analyzeSource(t, `out late 1
out early 2
`)
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}
	if warnings[0].Pos.Line != 1 || warnings[1].Pos.Line != 2 {
		t.Fatalf("warnings not sorted: %+v", warnings)
	}
}

func TestSuggestFunctionNoCandidates(t *testing.T) {
	if hint := suggestFunction("anything", nil); hint != "" {
		t.Fatalf("expected no hint, got %q", hint)
	}
}
