package template_ast_test

import (
	"testing"

	"tplc-go/packages/compiler/expression_parser"
	"tplc-go/packages/compiler/ml_ast"
	"tplc-go/packages/compiler/template_ast"
	"tplc-go/packages/compiler/util"
)

func blockParam(expression string) *ml_ast.BlockParameter {
	file := util.NewParseSourceFile(expression, "test.html")
	start := util.NewParseLocation(file, 0, 0, 0)
	end := util.NewParseLocation(file, len(expression), 0, len(expression))
	return ml_ast.NewBlockParameter(expression, util.NewParseSourceSpan(start, end, nil, nil))
}

func newBindingParser() template_ast.BindingParser {
	return expression_parser.NewParser(expression_parser.NewLexer())
}

func TestParseDeferredTime(t *testing.T) {
	valid := map[string]int{
		"500":    500,
		"500ms":  500,
		"2s":     2000,
		"1.5s":   1500,
		"0":      0,
		"10.25s": 10250,
	}
	for value, expected := range valid {
		got := template_ast.ParseDeferredTime(value)
		if got == nil {
			t.Errorf("%q: expected %d, got nil", value, expected)
			continue
		}
		if *got != expected {
			t.Errorf("%q: expected %d, got %d", value, expected, *got)
		}
	}

	invalid := []string{"", "abc", "1m", "-5", "s", "500 ms", "ms500", "1.5.2s"}
	for _, value := range invalid {
		if got := template_ast.ParseDeferredTime(value); got != nil {
			t.Errorf("%q: expected nil, got %d", value, *got)
		}
	}
}

func TestGetTriggerParametersStart(t *testing.T) {
	cases := []struct {
		value    string
		start    int
		expected int
	}{
		{"minimum 500ms", 0, 8},
		{"after 100ms", 0, 6},
		{"when   x", 1, 7},
		{"when x > 0", 1, 5},
		{"minimum", 0, -1},
		{"minimum ", 0, -1},
	}
	for _, c := range cases {
		if got := template_ast.GetTriggerParametersStart(c.value, c.start); got != c.expected {
			t.Errorf("GetTriggerParametersStart(%q, %d): expected %d, got %d", c.value, c.start, c.expected, got)
		}
	}
}

func TestParseWhenTrigger(t *testing.T) {
	t.Run("should report a missing when keyword", func(t *testing.T) {
		triggers := &template_ast.DeferredBlockTriggers{}
		errors := []*util.ParseError{}
		template_ast.ParseWhenTrigger(blockParam("foo"), newBindingParser(), triggers, &errors)
		if len(errors) != 1 || errors[0].Msg != `Could not find "when" keyword in expression` {
			t.Fatalf("unexpected errors: %v", errorMessages(errors))
		}
		if triggers.When != nil {
			t.Error("no trigger should be registered")
		}
	})

	t.Run("should report a when keyword without an expression", func(t *testing.T) {
		triggers := &template_ast.DeferredBlockTriggers{}
		errors := []*util.ParseError{}
		template_ast.ParseWhenTrigger(blockParam("prefetch when "), newBindingParser(), triggers, &errors)
		if len(errors) != 1 || errors[0].Msg != "Unexpected end of expression" {
			t.Fatalf("unexpected errors: %v", errorMessages(errors))
		}
		if triggers.When != nil {
			t.Error("no trigger should be registered")
		}
	})

	t.Run("should attach the prefix spans", func(t *testing.T) {
		triggers := &template_ast.DeferredBlockTriggers{}
		errors := []*util.ParseError{}
		template_ast.ParseWhenTrigger(blockParam("prefetch when cond"), newBindingParser(), triggers, &errors)
		if len(errors) > 0 {
			t.Fatalf("unexpected errors: %v", errorMessages(errors))
		}
		trigger := triggers.When
		if trigger == nil {
			t.Fatal("expected a when trigger")
		}
		if got := trigger.PrefetchSpan.String(); got != "prefetch" {
			t.Errorf("expected prefetch span to cover the keyword, got %q", got)
		}
		if got := trigger.WhenOrOnSourceSpan.String(); got != "when" {
			t.Errorf("expected when span to cover the keyword, got %q", got)
		}
		if trigger.HydrateSpan != nil {
			t.Error("hydrate span should be nil for a prefetch trigger")
		}
	})
}

func TestParseOnTrigger(t *testing.T) {
	t.Run("should report a missing on keyword", func(t *testing.T) {
		triggers := &template_ast.DeferredBlockTriggers{}
		errors := []*util.ParseError{}
		template_ast.ParseOnTrigger(blockParam("idle"), newBindingParser(), triggers, &errors, nil)
		if len(errors) != 1 || errors[0].Msg != `Could not find "on" keyword in expression` {
			t.Fatalf("unexpected errors: %v", errorMessages(errors))
		}
	})

	t.Run("should attach name spans to each trigger", func(t *testing.T) {
		triggers := &template_ast.DeferredBlockTriggers{}
		errors := []*util.ParseError{}
		template_ast.ParseOnTrigger(blockParam("on idle, timer(1s)"), newBindingParser(), triggers, &errors, nil)
		if len(errors) > 0 {
			t.Fatalf("unexpected errors: %v", errorMessages(errors))
		}
		if got := triggers.Idle.NameSpan.String(); got != "idle" {
			t.Errorf("expected idle name span, got %q", got)
		}
		if got := triggers.Timer.NameSpan.String(); got != "timer" {
			t.Errorf("expected timer name span, got %q", got)
		}
		if triggers.Idle.WhenOrOnSourceSpan.String() != "on" {
			t.Error("expected the on span on the first trigger")
		}
		if triggers.Timer.WhenOrOnSourceSpan != nil {
			t.Error("expected no on span on later triggers")
		}
	})
}

func TestParseNeverTrigger(t *testing.T) {
	t.Run("should report a missing never keyword", func(t *testing.T) {
		triggers := &template_ast.DeferredBlockTriggers{}
		errors := []*util.ParseError{}
		template_ast.ParseNeverTrigger(blockParam("hydrate nope"), triggers, &errors)
		if len(errors) != 1 || errors[0].Msg != `Could not find "never" keyword in expression` {
			t.Fatalf("unexpected errors: %v", errorMessages(errors))
		}
	})

	t.Run("should register a never trigger with its spans", func(t *testing.T) {
		triggers := &template_ast.DeferredBlockTriggers{}
		errors := []*util.ParseError{}
		template_ast.ParseNeverTrigger(blockParam("hydrate never"), triggers, &errors)
		if len(errors) > 0 {
			t.Fatalf("unexpected errors: %v", errorMessages(errors))
		}
		if triggers.Never == nil {
			t.Fatal("expected a never trigger")
		}
		if got := triggers.Never.HydrateSpan.String(); got != "hydrate" {
			t.Errorf("expected hydrate span, got %q", got)
		}
		if got := triggers.Never.NameSpan.String(); got != "never" {
			t.Errorf("expected name span to cover the keyword, got %q", got)
		}
	})
}
