package ml_ast_test

import (
	"testing"

	"tplc-go/packages/compiler/ml_ast"
)

func TestBlockBuilder(t *testing.T) {
	t.Run("should synthesize a block with spans into the content", func(t *testing.T) {
		builder := ml_ast.NewBlockBuilder("test.html")
		block := builder.AddBlock("defer", []string{"on idle", "prefetch when cond"}, "Hi")

		if got := builder.Content(); got != "@defer (on idle; prefetch when cond) {Hi}" {
			t.Fatalf("unexpected content: %q", got)
		}
		if got := block.NameSpan.String(); got != "@defer" {
			t.Errorf("unexpected name span: %q", got)
		}
		if got := block.StartSourceSpan.String(); got != "@defer (on idle; prefetch when cond) {" {
			t.Errorf("unexpected start span: %q", got)
		}
		if got := block.EndSourceSpan.String(); got != "}" {
			t.Errorf("unexpected end span: %q", got)
		}
		if got := block.SourceSpan().String(); got != builder.Content() {
			t.Errorf("source span should cover the whole block, got %q", got)
		}
		if len(block.Parameters) != 2 {
			t.Fatalf("expected two parameters, got %d", len(block.Parameters))
		}
		if got := block.Parameters[1].SourceSpan().String(); got != "prefetch when cond" {
			t.Errorf("unexpected parameter span: %q", got)
		}
		if len(block.Children) != 1 {
			t.Fatalf("expected one child, got %d", len(block.Children))
		}
		text, ok := block.Children[0].(*ml_ast.Text)
		if !ok || text.Value != "Hi" {
			t.Errorf("unexpected child: %#v", block.Children[0])
		}
	})

	t.Run("should separate consecutive blocks", func(t *testing.T) {
		builder := ml_ast.NewBlockBuilder("test.html")
		builder.AddBlock("defer", []string{"on idle"})
		placeholder := builder.AddBlock("placeholder", nil)

		if got := builder.Content(); got != "@defer (on idle) {} @placeholder {}" {
			t.Fatalf("unexpected content: %q", got)
		}
		if got := placeholder.NameSpan.String(); got != "@placeholder" {
			t.Errorf("unexpected name span: %q", got)
		}
	})

	t.Run("should track lines across multi-line children", func(t *testing.T) {
		builder := ml_ast.NewBlockBuilder("test.html")
		builder.AddBlock("defer", nil, "line1\nline2")
		next := builder.AddBlock("error", nil)

		start := next.NameSpan.Start
		if start.Line != 1 {
			t.Errorf("expected the second block on line 1, got %d", start.Line)
		}
		if builder.Content()[start.Offset] != '@' {
			t.Errorf("name span should begin at the @ sign")
		}
	})
}
