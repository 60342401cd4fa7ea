package util_test

import (
	"testing"

	"tplc-go/packages/compiler/util"
)

func TestParseLocationMoveBy(t *testing.T) {
	file := util.NewParseSourceFile("ab\ncd", "test.html")
	start := util.NewParseLocation(file, 0, 0, 0)

	t.Run("should advance across newlines", func(t *testing.T) {
		moved := start.MoveBy(4)
		if moved.Offset != 4 || moved.Line != 1 || moved.Col != 1 {
			t.Errorf("expected 4@1:1, got %d@%d:%d", moved.Offset, moved.Line, moved.Col)
		}
	})

	t.Run("should move backwards across newlines", func(t *testing.T) {
		moved := start.MoveBy(4).MoveBy(-4)
		if moved.Offset != 0 || moved.Line != 0 || moved.Col != 0 {
			t.Errorf("expected 0@0:0, got %d@%d:%d", moved.Offset, moved.Line, moved.Col)
		}
	})

	t.Run("should clamp at the end of the content", func(t *testing.T) {
		moved := start.MoveBy(100)
		if moved.Offset != len(file.Content) {
			t.Errorf("expected offset %d, got %d", len(file.Content), moved.Offset)
		}
	})
}

func TestParseSourceSpanString(t *testing.T) {
	file := util.NewParseSourceFile("hello", "test.html")
	span := util.NewParseSourceSpan(
		util.NewParseLocation(file, 1, 0, 1),
		util.NewParseLocation(file, 4, 0, 4),
		nil,
		nil,
	)
	if got := span.String(); got != "ell" {
		t.Errorf("expected %q, got %q", "ell", got)
	}
}

func TestParseErrorString(t *testing.T) {
	file := util.NewParseSourceFile("hello", "test.html")
	span := util.NewParseSourceSpan(
		util.NewParseLocation(file, 1, 0, 1),
		util.NewParseLocation(file, 4, 0, 4),
		nil,
		nil,
	)

	t.Run("should include the surrounding source and the location", func(t *testing.T) {
		err := util.NewParseError(span, "bad input")
		expected := `bad input ("h[ERROR ->]ello"): test.html@0:1`
		if got := err.String(); got != expected {
			t.Errorf("expected %q, got %q", expected, got)
		}
	})

	t.Run("should mark warnings", func(t *testing.T) {
		warning := util.NewParseWarning(span, "odd input")
		expected := `odd input ("h[WARNING ->]ello"): test.html@0:1`
		if got := warning.String(); got != expected {
			t.Errorf("expected %q, got %q", expected, got)
		}
	})

	t.Run("should fall back to the message without a span", func(t *testing.T) {
		err := util.NewParseError(nil, "bad input")
		if got := err.String(); got != "bad input" {
			t.Errorf("expected the bare message, got %q", got)
		}
	})
}
