package expression_parser

import (
	"strconv"
	"strings"

	"tplc-go/packages/compiler/chars"
)

// TokenType is the kind of a scanned token.
type TokenType int

const (
	TokenTypeCharacter TokenType = iota
	TokenTypeIdentifier
	TokenTypeKeyword
	TokenTypeString
	TokenTypeOperator
	TokenTypeNumber
	TokenTypeError
)

var keywords = []string{
	"var",
	"let",
	"as",
	"null",
	"undefined",
	"true",
	"false",
	"this",
	"typeof",
	"void",
	"in",
}

// Token is a single token of an expression. Index and End are offsets
// into the tokenized text.
type Token struct {
	Index    int
	End      int
	Type     TokenType
	NumValue float64
	StrValue string
}

// NewToken creates a new Token.
func NewToken(index, end int, typ TokenType, numValue float64, strValue string) *Token {
	return &Token{
		Index:    index,
		End:      end,
		Type:     typ,
		NumValue: numValue,
		StrValue: strValue,
	}
}

// IsCharacter reports whether the token is the punctuation character code.
func (t *Token) IsCharacter(code int) bool {
	return t.Type == TokenTypeCharacter && int(t.NumValue) == code
}

// IsNumber reports whether the token is a number literal.
func (t *Token) IsNumber() bool {
	return t.Type == TokenTypeNumber
}

// IsString reports whether the token is a string literal.
func (t *Token) IsString() bool {
	return t.Type == TokenTypeString
}

// IsOperator reports whether the token is the given operator.
func (t *Token) IsOperator(operator string) bool {
	return t.Type == TokenTypeOperator && t.StrValue == operator
}

// IsIdentifier reports whether the token is an identifier.
func (t *Token) IsIdentifier() bool {
	return t.Type == TokenTypeIdentifier
}

// IsKeyword reports whether the token is a keyword.
func (t *Token) IsKeyword() bool {
	return t.Type == TokenTypeKeyword
}

// IsKeywordThis reports whether the token is the `this` keyword.
func (t *Token) IsKeywordThis() bool {
	return t.Type == TokenTypeKeyword && t.StrValue == "this"
}

// IsError reports whether scanning produced an error token.
func (t *Token) IsError() bool {
	return t.Type == TokenTypeError
}

// ToNumber returns the numeric value of a number token, -1 otherwise.
func (t *Token) ToNumber() float64 {
	if t.Type == TokenTypeNumber {
		return t.NumValue
	}
	return -1
}

// String returns the source text form of the token.
func (t *Token) String() string {
	if t.Type == TokenTypeNumber {
		return strconv.FormatFloat(t.NumValue, 'f', -1, 64)
	}
	return t.StrValue
}

// EOF is the sentinel end-of-input token.
var EOF = NewToken(-1, -1, TokenTypeCharacter, 0, "")

// Lexer tokenizes expression text.
type Lexer struct{}

// NewLexer creates a new Lexer.
func NewLexer() *Lexer {
	return &Lexer{}
}

// Tokenize scans text into a token list. Scanning never fails; invalid
// input yields an error token.
func (l *Lexer) Tokenize(text string) []*Token {
	s := newScanner(text)
	return s.scan()
}

type scanner struct {
	input  string
	length int
	peek   int
	index  int
	tokens []*Token
}

func newScanner(input string) *scanner {
	s := &scanner{
		input:  input,
		length: len(input),
		index:  -1,
		tokens: []*Token{},
	}
	s.advance()
	return s
}

func (s *scanner) advance() {
	s.index++
	if s.index >= s.length {
		s.peek = chars.EOF
	} else {
		s.peek = int(s.input[s.index])
	}
}

func (s *scanner) scan() []*Token {
	for token := s.scanToken(); token != nil; token = s.scanToken() {
		s.tokens = append(s.tokens, token)
	}
	return s.tokens
}

func (s *scanner) scanToken() *Token {
	// Skip whitespace.
	for s.peek <= chars.SPACE {
		s.index++
		if s.index >= s.length {
			s.peek = chars.EOF
			break
		}
		s.peek = int(s.input[s.index])
	}

	if s.index >= s.length {
		return nil
	}

	if isIdentifierStart(s.peek) {
		return s.scanIdentifier()
	}

	if chars.IsDigit(s.peek) {
		return s.scanNumber(s.index)
	}

	start := s.index
	switch s.peek {
	case chars.PERIOD:
		s.advance()
		if chars.IsDigit(s.peek) {
			return s.scanNumber(start)
		}
		return newCharacterToken(start, s.index, chars.PERIOD)
	case chars.LPAREN, chars.RPAREN, chars.LBRACE, chars.RBRACE,
		chars.LBRACKET, chars.RBRACKET, chars.COMMA, chars.COLON, chars.SEMICOLON:
		return s.scanCharacter(start, s.peek)
	case chars.SQ, chars.DQ:
		return s.scanString()
	case chars.PLUS:
		return s.scanOperator(start, "+")
	case chars.MINUS:
		return s.scanOperator(start, "-")
	case chars.SLASH:
		return s.scanOperator(start, "/")
	case chars.PERCENT:
		return s.scanOperator(start, "%")
	case chars.CARET:
		return s.scanOperator(start, "^")
	case chars.STAR:
		return s.scanComplexOperator(start, "*", chars.STAR, "*")
	case chars.QUESTION:
		return s.scanQuestion(start)
	case chars.LT, chars.GT:
		return s.scanComplexOperator(start, string(rune(s.peek)), chars.EQ, "=")
	case chars.BANG, chars.EQ:
		return s.scanComplexOperator(start, string(rune(s.peek)), chars.EQ, "=", chars.EQ)
	case chars.AMPERSAND:
		return s.scanComplexOperator(start, "&", chars.AMPERSAND, "&")
	case chars.BAR:
		return s.scanComplexOperator(start, "|", chars.BAR, "|")
	case chars.NBSP:
		for chars.IsWhitespace(s.peek) {
			s.advance()
		}
		return s.scanToken()
	}

	peek := s.peek
	s.advance()
	return s.error("Unexpected character ["+string(rune(peek))+"]", 0)
}

func (s *scanner) scanCharacter(start, code int) *Token {
	s.advance()
	return newCharacterToken(start, s.index, code)
}

func (s *scanner) scanOperator(start int, str string) *Token {
	s.advance()
	return newOperatorToken(start, s.index, str)
}

// scanComplexOperator scans a one-to-three character operator, extending
// it while the next character matches.
func (s *scanner) scanComplexOperator(start int, one string, twoCode int, two string, threeCode ...int) *Token {
	s.advance()
	str := one
	if s.peek == twoCode {
		s.advance()
		str += two
	}
	if len(threeCode) > 0 && s.peek == threeCode[0] {
		s.advance()
		str += string(rune(threeCode[0]))
	}
	return newOperatorToken(start, s.index, str)
}

func (s *scanner) scanQuestion(start int) *Token {
	s.advance()
	operator := "?"
	if s.peek == chars.QUESTION {
		// `a ?? b`
		operator += "?"
		s.advance()
	} else if s.peek == chars.PERIOD {
		// `a?.b`
		operator += "."
		s.advance()
	}
	return newOperatorToken(start, s.index, operator)
}

func (s *scanner) scanIdentifier() *Token {
	start := s.index
	s.advance()
	for isIdentifierPart(s.peek) {
		s.advance()
	}
	str := s.input[start:s.index]
	for _, keyword := range keywords {
		if str == keyword {
			return newKeywordToken(start, s.index, str)
		}
	}
	return newIdentifierToken(start, s.index, str)
}

func (s *scanner) scanNumber(start int) *Token {
	simple := s.index == start
	hasSeparators := false
	s.advance()
	for {
		if chars.IsDigit(s.peek) {
			// Keep going.
		} else if s.peek == chars.UNDERSCORE {
			// Separators must be surrounded by digits.
			if s.index == 0 || s.index >= s.length-1 ||
				!chars.IsDigit(int(s.input[s.index-1])) || !chars.IsDigit(int(s.input[s.index+1])) {
				return s.error("Invalid numeric separator", 0)
			}
			hasSeparators = true
		} else if s.peek == chars.PERIOD {
			simple = false
		} else if isExponentStart(s.peek) {
			s.advance()
			if isExponentSign(s.peek) {
				s.advance()
			}
			if !chars.IsDigit(s.peek) {
				return s.error("Invalid exponent", -1)
			}
			simple = false
		} else {
			break
		}
		s.advance()
	}

	str := s.input[start:s.index]
	if hasSeparators {
		str = strings.ReplaceAll(str, "_", "")
	}
	var value float64
	if simple {
		val, err := strconv.ParseInt(str, 10, 64)
		if err == nil {
			value = float64(val)
		}
	} else {
		val, err := strconv.ParseFloat(str, 64)
		if err == nil {
			value = val
		}
	}
	return newNumberToken(start, s.index, value)
}

func (s *scanner) scanString() *Token {
	start := s.index
	quote := s.peek
	s.advance() // Skip the opening quote.

	buffer := ""
	marker := s.index

	for s.peek != quote {
		if s.peek == chars.BACKSLASH {
			buffer += s.input[marker:s.index]
			unescaped, errToken := s.scanStringBackslash()
			if errToken != nil {
				return errToken
			}
			buffer += unescaped
			marker = s.index
		} else if s.peek == chars.EOF {
			return s.error("Unterminated quote", 0)
		} else {
			s.advance()
		}
	}

	last := s.input[marker:s.index]
	s.advance() // Skip the closing quote.

	return newStringToken(start, s.index, buffer+last)
}

func (s *scanner) scanStringBackslash() (string, *Token) {
	s.advance()
	if s.peek == chars.LowerU {
		// Four-character hex code for a unicode character.
		if s.index+5 > s.length {
			return "", s.error("Invalid unicode escape", 0)
		}
		hex := s.input[s.index+1 : s.index+5]
		val, err := strconv.ParseInt(hex, 16, 32)
		if err != nil {
			return "", s.error("Invalid unicode escape [\\u"+hex+"]", 0)
		}
		for i := 0; i < 5; i++ {
			s.advance()
		}
		return string(rune(val)), nil
	}
	unescaped := unescape(s.peek)
	s.advance()
	return string(unescaped), nil
}

func (s *scanner) error(message string, offset int) *Token {
	position := s.index + offset
	return newErrorToken(
		position,
		s.index,
		"Lexer Error: "+message+" at column "+strconv.Itoa(position)+" in expression ["+s.input+"]",
	)
}

func isIdentifierStart(code int) bool {
	return chars.IsAsciiLetter(code) || code == chars.UNDERSCORE || code == chars.DOLLAR
}

func isIdentifierPart(code int) bool {
	return chars.IsAsciiLetter(code) || chars.IsDigit(code) || code == chars.UNDERSCORE || code == chars.DOLLAR
}

func isExponentStart(code int) bool {
	return code == chars.UpperE || code == chars.LowerE
}

func isExponentSign(code int) bool {
	return code == chars.MINUS || code == chars.PLUS
}

func unescape(code int) rune {
	switch code {
	case chars.LowerN:
		return chars.LF
	case chars.LowerF:
		return chars.FF
	case chars.LowerR:
		return chars.CR
	case chars.LowerT:
		return chars.TAB
	case chars.LowerV:
		return chars.VTAB
	default:
		return rune(code)
	}
}

func newCharacterToken(index, end, code int) *Token {
	return NewToken(index, end, TokenTypeCharacter, float64(code), string(rune(code)))
}

func newIdentifierToken(index, end int, text string) *Token {
	return NewToken(index, end, TokenTypeIdentifier, 0, text)
}

func newKeywordToken(index, end int, text string) *Token {
	return NewToken(index, end, TokenTypeKeyword, 0, text)
}

func newOperatorToken(index, end int, text string) *Token {
	return NewToken(index, end, TokenTypeOperator, 0, text)
}

func newNumberToken(index, end int, n float64) *Token {
	return NewToken(index, end, TokenTypeNumber, n, "")
}

func newStringToken(index, end int, text string) *Token {
	return NewToken(index, end, TokenTypeString, 0, text)
}

func newErrorToken(index, end int, message string) *Token {
	return NewToken(index, end, TokenTypeError, 0, message)
}
