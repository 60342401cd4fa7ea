package expression_parser_test

import (
	"strings"
	"testing"

	"tplc-go/packages/compiler/expression_parser"
	"tplc-go/packages/compiler/util"
)

func parseBinding(input string) *expression_parser.ASTWithSource {
	parser := expression_parser.NewParser(expression_parser.NewLexer())
	file := util.NewParseSourceFile(input, "test.html")
	span := util.NewParseSourceSpan(
		util.NewParseLocation(file, 0, 0, 0),
		util.NewParseLocation(file, len(input), 0, len(input)),
		nil,
		nil,
	)
	return parser.ParseBinding(input, span, 0)
}

func expectNoErrors(t *testing.T, result *expression_parser.ASTWithSource) {
	t.Helper()
	for _, err := range result.Errors {
		t.Errorf("unexpected error: %s", err.Msg)
	}
}

func TestParseBinding(t *testing.T) {
	t.Run("should parse a property read off the implicit receiver", func(t *testing.T) {
		result := parseBinding("cond")
		expectNoErrors(t, result)
		read, ok := result.AST.(*expression_parser.PropertyRead)
		if !ok {
			t.Fatalf("expected PropertyRead, got %T", result.AST)
		}
		if read.Name != "cond" {
			t.Errorf("expected name cond, got %q", read.Name)
		}
		if _, ok := read.Receiver.(*expression_parser.ImplicitReceiver); !ok {
			t.Errorf("expected implicit receiver, got %T", read.Receiver)
		}
	})

	t.Run("should parse property chains and calls", func(t *testing.T) {
		result := parseBinding("user.isVisible()")
		expectNoErrors(t, result)
		call, ok := result.AST.(*expression_parser.Call)
		if !ok {
			t.Fatalf("expected Call, got %T", result.AST)
		}
		read, ok := call.Receiver.(*expression_parser.PropertyRead)
		if !ok || read.Name != "isVisible" {
			t.Fatalf("expected a property read receiver, got %T", call.Receiver)
		}
		inner, ok := read.Receiver.(*expression_parser.PropertyRead)
		if !ok || inner.Name != "user" {
			t.Fatalf("expected user as the inner receiver, got %T", read.Receiver)
		}
	})

	t.Run("should parse keyed reads", func(t *testing.T) {
		result := parseBinding("items[0]")
		expectNoErrors(t, result)
		if _, ok := result.AST.(*expression_parser.KeyedRead); !ok {
			t.Fatalf("expected KeyedRead, got %T", result.AST)
		}
	})

	t.Run("should parse binary operators with precedence", func(t *testing.T) {
		result := parseBinding("a + b * c")
		expectNoErrors(t, result)
		binary, ok := result.AST.(*expression_parser.Binary)
		if !ok {
			t.Fatalf("expected Binary, got %T", result.AST)
		}
		if binary.Operation != "+" {
			t.Errorf("expected + at the root, got %q", binary.Operation)
		}
		right, ok := binary.Right.(*expression_parser.Binary)
		if !ok || right.Operation != "*" {
			t.Errorf("expected * on the right, got %T", binary.Right)
		}
	})

	t.Run("should parse conditionals", func(t *testing.T) {
		result := parseBinding("cond ? a : b")
		expectNoErrors(t, result)
		if _, ok := result.AST.(*expression_parser.Conditional); !ok {
			t.Fatalf("expected Conditional, got %T", result.AST)
		}
	})

	t.Run("should parse literal primitives", func(t *testing.T) {
		cases := map[string]interface{}{
			"true":      true,
			"false":     false,
			"null":      nil,
			"undefined": nil,
			"42":        float64(42),
			`"str"`:     "str",
		}
		for input, expected := range cases {
			result := parseBinding(input)
			expectNoErrors(t, result)
			literal, ok := result.AST.(*expression_parser.LiteralPrimitive)
			if !ok {
				t.Fatalf("%s: expected LiteralPrimitive, got %T", input, result.AST)
			}
			if literal.Value != expected {
				t.Errorf("%s: expected %v, got %v", input, expected, literal.Value)
			}
		}
	})

	t.Run("should parse literal maps", func(t *testing.T) {
		result := parseBinding(`{threshold: 0.5, "root margin": "10px"}`)
		expectNoErrors(t, result)
		literalMap, ok := result.AST.(*expression_parser.LiteralMap)
		if !ok {
			t.Fatalf("expected LiteralMap, got %T", result.AST)
		}
		if len(literalMap.Keys) != 2 {
			t.Fatalf("expected two keys, got %d", len(literalMap.Keys))
		}
		if literalMap.Keys[0].Key != "threshold" || literalMap.Keys[0].Quoted {
			t.Errorf("unexpected first key: %+v", literalMap.Keys[0])
		}
		if literalMap.Keys[1].Key != "root margin" || !literalMap.Keys[1].Quoted {
			t.Errorf("unexpected second key: %+v", literalMap.Keys[1])
		}
	})

	t.Run("should expand shorthand map values", func(t *testing.T) {
		result := parseBinding("{foo}")
		expectNoErrors(t, result)
		literalMap, ok := result.AST.(*expression_parser.LiteralMap)
		if !ok {
			t.Fatalf("expected LiteralMap, got %T", result.AST)
		}
		read, ok := literalMap.Values[0].(*expression_parser.PropertyRead)
		if !ok || read.Name != "foo" {
			t.Fatalf("expected a property read value, got %T", literalMap.Values[0])
		}
	})

	t.Run("should parse literal arrays", func(t *testing.T) {
		result := parseBinding("[1, 2, a]")
		expectNoErrors(t, result)
		array, ok := result.AST.(*expression_parser.LiteralArray)
		if !ok {
			t.Fatalf("expected LiteralArray, got %T", result.AST)
		}
		if len(array.Expressions) != 3 {
			t.Errorf("expected three elements, got %d", len(array.Expressions))
		}
	})

	t.Run("should record absolute spans", func(t *testing.T) {
		parser := expression_parser.NewParser(expression_parser.NewLexer())
		result := parser.ParseBinding("cond", nil, 10)
		expectNoErrors(t, result)
		span := result.AST.SourceSpan()
		if span.Start != 10 || span.End != 14 {
			t.Errorf("expected span [10, 14], got [%d, %d]", span.Start, span.End)
		}
	})

	t.Run("should collect an error for trailing tokens", func(t *testing.T) {
		result := parseBinding("a b")
		if len(result.Errors) != 1 {
			t.Fatalf("expected one error, got %d", len(result.Errors))
		}
		if !strings.Contains(result.Errors[0].Msg, "Unexpected token 'b'") {
			t.Errorf("unexpected message: %s", result.Errors[0].Msg)
		}
	})

	t.Run("should collect an error for an incomplete conditional", func(t *testing.T) {
		result := parseBinding("cond ? a")
		if len(result.Errors) != 1 {
			t.Fatalf("expected one error, got %d", len(result.Errors))
		}
		if !strings.Contains(result.Errors[0].Msg, "Conditional expression requires all 3 expressions") {
			t.Errorf("unexpected message: %s", result.Errors[0].Msg)
		}
	})

	t.Run("should surface lexer errors", func(t *testing.T) {
		result := parseBinding("'abc")
		if len(result.Errors) != 1 {
			t.Fatalf("expected one error, got %d", len(result.Errors))
		}
		if !strings.Contains(result.Errors[0].Msg, "Unterminated quote") {
			t.Errorf("unexpected message: %s", result.Errors[0].Msg)
		}
	})

	t.Run("should produce an empty expression for empty input", func(t *testing.T) {
		result := parseBinding("")
		expectNoErrors(t, result)
		if _, ok := result.AST.(*expression_parser.EmptyExpr); !ok {
			t.Fatalf("expected EmptyExpr, got %T", result.AST)
		}
	})
}
