// Package chars holds the character code constants shared by the
// expression scanner and the parse utilities.
package chars

const (
	EOF       = 0
	TAB       = 9
	LF        = 10
	VTAB      = 11
	FF        = 12
	CR        = 13
	SPACE     = 32
	BANG      = 33
	DQ        = 34
	HASH      = 35
	DOLLAR    = 36
	PERCENT   = 37
	AMPERSAND = 38
	SQ        = 39
	LPAREN    = 40
	RPAREN    = 41
	STAR      = 42
	PLUS      = 43
	COMMA     = 44
	MINUS     = 45
	PERIOD    = 46
	SLASH     = 47
	COLON     = 58
	SEMICOLON = 59
	LT        = 60
	EQ        = 61
	GT        = 62
	QUESTION  = 63

	Digit0 = 48
	Digit9 = 57

	UpperA = 65
	UpperE = 69
	UpperF = 70
	UpperZ = 90

	LBRACKET   = 91
	BACKSLASH  = 92
	RBRACKET   = 93
	CARET      = 94
	UNDERSCORE = 95

	LowerA = 97
	LowerE = 101
	LowerF = 102
	LowerN = 110
	LowerR = 114
	LowerT = 116
	LowerU = 117
	LowerV = 118
	LowerZ = 122

	LBRACE = 123
	BAR    = 124
	RBRACE = 125
	NBSP   = 160
)

// IsWhitespace reports whether code is a whitespace character.
func IsWhitespace(code int) bool {
	return (code >= TAB && code <= SPACE) || code == NBSP
}

// IsDigit reports whether code is a decimal digit.
func IsDigit(code int) bool {
	return Digit0 <= code && code <= Digit9
}

// IsAsciiLetter reports whether code is an ASCII letter.
func IsAsciiLetter(code int) bool {
	return (code >= LowerA && code <= LowerZ) || (code >= UpperA && code <= UpperZ)
}

// IsAsciiHexDigit reports whether code is a hexadecimal digit.
func IsAsciiHexDigit(code int) bool {
	return (code >= LowerA && code <= LowerF) || (code >= UpperA && code <= UpperF) || IsDigit(code)
}

// IsNewLine reports whether code is a line terminator.
func IsNewLine(code int) bool {
	return code == LF || code == CR
}

// IsQuote reports whether code starts a string literal.
func IsQuote(code int) bool {
	return code == SQ || code == DQ
}
