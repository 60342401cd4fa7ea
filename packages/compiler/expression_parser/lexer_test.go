package expression_parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tplc-go/packages/compiler/expression_parser"
)

func tokenize(text string) []*expression_parser.Token {
	return expression_parser.NewLexer().Tokenize(text)
}

func humanizeTokens(tokens []*expression_parser.Token) [][]interface{} {
	result := [][]interface{}{}
	for _, token := range tokens {
		result = append(result, []interface{}{token.Type, token.String()})
	}
	return result
}

func expectTokens(t *testing.T, text string, expected [][]interface{}) {
	t.Helper()
	if diff := cmp.Diff(expected, humanizeTokens(tokenize(text))); diff != "" {
		t.Errorf("tokenize(%q) mismatch (-want +got):\n%s", text, diff)
	}
}

func TestLexer(t *testing.T) {
	t.Run("should tokenize identifiers and keywords", func(t *testing.T) {
		expectTokens(t, "foo this true", [][]interface{}{
			{expression_parser.TokenTypeIdentifier, "foo"},
			{expression_parser.TokenTypeKeyword, "this"},
			{expression_parser.TokenTypeKeyword, "true"},
		})
	})

	t.Run("should tokenize numbers", func(t *testing.T) {
		expectTokens(t, "42 1.5 1e3 1_000", [][]interface{}{
			{expression_parser.TokenTypeNumber, "42"},
			{expression_parser.TokenTypeNumber, "1.5"},
			{expression_parser.TokenTypeNumber, "1000"},
			{expression_parser.TokenTypeNumber, "1000"},
		})
	})

	t.Run("should tokenize a number starting with a period", func(t *testing.T) {
		tokens := tokenize(".5")
		if len(tokens) != 1 || !tokens[0].IsNumber() {
			t.Fatalf("expected one number token, got %v", humanizeTokens(tokens))
		}
		if tokens[0].ToNumber() != 0.5 {
			t.Errorf("expected 0.5, got %v", tokens[0].ToNumber())
		}
	})

	t.Run("should tokenize strings with escapes", func(t *testing.T) {
		tokens := tokenize(`'a\'b' "c\nd"`)
		if len(tokens) != 2 {
			t.Fatalf("expected two tokens, got %v", humanizeTokens(tokens))
		}
		if tokens[0].StrValue != "a'b" {
			t.Errorf("expected %q, got %q", "a'b", tokens[0].StrValue)
		}
		if tokens[1].StrValue != "c\nd" {
			t.Errorf("expected %q, got %q", "c\nd", tokens[1].StrValue)
		}
	})

	t.Run("should tokenize unicode escapes", func(t *testing.T) {
		tokens := tokenize("'\\u00e9'")
		if len(tokens) != 1 || tokens[0].StrValue != "é" {
			t.Fatalf("expected an e-acute string token, got %v", humanizeTokens(tokens))
		}
	})

	t.Run("should tokenize operators", func(t *testing.T) {
		expectTokens(t, "a && b == c ?? d ?. e ** f", [][]interface{}{
			{expression_parser.TokenTypeIdentifier, "a"},
			{expression_parser.TokenTypeOperator, "&&"},
			{expression_parser.TokenTypeIdentifier, "b"},
			{expression_parser.TokenTypeOperator, "=="},
			{expression_parser.TokenTypeIdentifier, "c"},
			{expression_parser.TokenTypeOperator, "??"},
			{expression_parser.TokenTypeIdentifier, "d"},
			{expression_parser.TokenTypeOperator, "?."},
			{expression_parser.TokenTypeIdentifier, "e"},
			{expression_parser.TokenTypeOperator, "**"},
			{expression_parser.TokenTypeIdentifier, "f"},
		})
	})

	t.Run("should tokenize punctuation", func(t *testing.T) {
		expectTokens(t, "(a, [b], {c: 1})", [][]interface{}{
			{expression_parser.TokenTypeCharacter, "("},
			{expression_parser.TokenTypeIdentifier, "a"},
			{expression_parser.TokenTypeCharacter, ","},
			{expression_parser.TokenTypeCharacter, "["},
			{expression_parser.TokenTypeIdentifier, "b"},
			{expression_parser.TokenTypeCharacter, "]"},
			{expression_parser.TokenTypeCharacter, ","},
			{expression_parser.TokenTypeCharacter, "{"},
			{expression_parser.TokenTypeIdentifier, "c"},
			{expression_parser.TokenTypeCharacter, ":"},
			{expression_parser.TokenTypeNumber, "1"},
			{expression_parser.TokenTypeCharacter, "}"},
			{expression_parser.TokenTypeCharacter, ")"},
		})
	})

	t.Run("should record token positions", func(t *testing.T) {
		tokens := tokenize("ab cd")
		if tokens[0].Index != 0 || tokens[0].End != 2 {
			t.Errorf("first token span: got [%d, %d]", tokens[0].Index, tokens[0].End)
		}
		if tokens[1].Index != 3 || tokens[1].End != 5 {
			t.Errorf("second token span: got [%d, %d]", tokens[1].Index, tokens[1].End)
		}
	})

	t.Run("should produce an error token for an unterminated string", func(t *testing.T) {
		tokens := tokenize("'abc")
		if len(tokens) != 1 || !tokens[0].IsError() {
			t.Fatalf("expected one error token, got %v", humanizeTokens(tokens))
		}
		expected := "Lexer Error: Unterminated quote at column 4 in expression ['abc]"
		if tokens[0].StrValue != expected {
			t.Errorf("expected %q, got %q", expected, tokens[0].StrValue)
		}
	})

	t.Run("should produce an error token for an unexpected character", func(t *testing.T) {
		tokens := tokenize("#")
		if len(tokens) != 1 || !tokens[0].IsError() {
			t.Fatalf("expected one error token, got %v", humanizeTokens(tokens))
		}
	})
}
