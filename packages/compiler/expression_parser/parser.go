package expression_parser

import (
	"fmt"

	"tplc-go/packages/compiler/chars"
	"tplc-go/packages/compiler/util"
)

// Parser turns expression text into an AST. Parsing never fails hard:
// recovery produces an EmptyExpr and an entry in the result's error list.
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new Parser.
func NewParser(lexer *Lexer) *Parser {
	return &Parser{lexer: lexer}
}

// ParseBinding parses a binding expression. The source span locates the
// expression in the original document and absoluteOffset is the offset of
// the expression's first character within that document.
func (p *Parser) ParseBinding(input string, sourceSpan *util.ParseSourceSpan, absoluteOffset int) *ASTWithSource {
	location := ""
	if sourceSpan != nil && sourceSpan.Start != nil {
		location = sourceSpan.Start.String()
	}

	tokens := p.lexer.Tokenize(input)
	pa := &parseAST{
		input:          input,
		location:       location,
		absoluteOffset: absoluteOffset,
		tokens:         tokens,
		sourceSpan:     sourceSpan,
	}
	ast := pa.parseChain()

	source := input
	return NewASTWithSource(ast, &source, location, absoluteOffset, pa.errors)
}

type parseAST struct {
	input          string
	location       string
	absoluteOffset int
	tokens         []*Token
	sourceSpan     *util.ParseSourceSpan
	index          int
	errors         []*util.ParseError
}

func (p *parseAST) next() *Token {
	if p.index < len(p.tokens) {
		return p.tokens[p.index]
	}
	return EOF
}

func (p *parseAST) advance() {
	p.index++
}

// inputIndex is the character offset of the next unconsumed token, or the
// end of input when all tokens are consumed.
func (p *parseAST) inputIndex() int {
	if p.index < len(p.tokens) {
		return p.next().Index
	}
	return len(p.input)
}

func (p *parseAST) currentEndIndex() int {
	if p.index > 0 {
		return p.tokens[p.index-1].End
	}
	if len(p.tokens) > 0 {
		return p.tokens[0].Index
	}
	return 0
}

func (p *parseAST) span(start int) *ParseSpan {
	end := p.currentEndIndex()
	if start > end {
		start, end = end, start
	}
	return NewParseSpan(start, end)
}

func (p *parseAST) srcSpan(start int) *AbsoluteSourceSpan {
	return p.span(start).ToAbsolute(p.absoluteOffset)
}

func (p *parseAST) consumeOptionalCharacter(code int) bool {
	if p.next().IsCharacter(code) {
		p.advance()
		return true
	}
	return false
}

func (p *parseAST) consumeOptionalOperator(op string) bool {
	if p.next().IsOperator(op) {
		p.advance()
		return true
	}
	return false
}

func (p *parseAST) expectCharacter(code int) {
	if p.consumeOptionalCharacter(code) {
		return
	}
	p.error(fmt.Sprintf("Missing expected %s", string(rune(code))))
}

func (p *parseAST) expectIdentifierOrKeyword() string {
	n := p.next()
	if !n.IsIdentifier() && !n.IsKeyword() {
		p.error(fmt.Sprintf("Unexpected token %s, expected identifier or keyword", n))
		return ""
	}
	p.advance()
	return n.StrValue
}

func (p *parseAST) error(message string) {
	p.errors = append(p.errors, util.NewParseError(
		p.sourceSpan,
		fmt.Sprintf("Parser Error: %s at column %d in [%s] in %s", message, p.inputIndex(), p.input, p.location),
	))
	// Skip the remaining tokens so that recovery terminates.
	p.index = len(p.tokens)
}

// parseChain parses a single expression and reports any trailing tokens.
func (p *parseAST) parseChain() AST {
	start := p.inputIndex()
	if len(p.tokens) == 0 {
		return NewEmptyExpr(p.span(start), p.srcSpan(start))
	}
	result := p.parseConditional()
	if p.index < len(p.tokens) {
		p.error(fmt.Sprintf("Unexpected token '%s'", p.next()))
	}
	return result
}

func (p *parseAST) parseConditional() AST {
	start := p.inputIndex()
	result := p.parseNullishCoalescing()

	if p.consumeOptionalOperator("?") {
		trueExp := p.parseConditional()
		var falseExp AST
		if p.consumeOptionalCharacter(chars.COLON) {
			falseExp = p.parseConditional()
		} else {
			end := p.inputIndex()
			p.error("Conditional expression requires all 3 expressions")
			falseExp = NewEmptyExpr(p.span(end), p.srcSpan(end))
		}
		return NewConditional(p.span(start), p.srcSpan(start), result, trueExp, falseExp)
	}

	return result
}

func (p *parseAST) parseNullishCoalescing() AST {
	start := p.inputIndex()
	result := p.parseLogicalOr()
	for p.consumeOptionalOperator("??") {
		right := p.parseLogicalOr()
		result = NewBinary(p.span(start), p.srcSpan(start), "??", result, right)
	}
	return result
}

func (p *parseAST) parseLogicalOr() AST {
	start := p.inputIndex()
	result := p.parseLogicalAnd()
	for p.consumeOptionalOperator("||") {
		right := p.parseLogicalAnd()
		result = NewBinary(p.span(start), p.srcSpan(start), "||", result, right)
	}
	return result
}

func (p *parseAST) parseLogicalAnd() AST {
	start := p.inputIndex()
	result := p.parseEquality()
	for p.consumeOptionalOperator("&&") {
		right := p.parseEquality()
		result = NewBinary(p.span(start), p.srcSpan(start), "&&", result, right)
	}
	return result
}

func (p *parseAST) parseEquality() AST {
	start := p.inputIndex()
	result := p.parseRelational()
	for {
		operator := p.next().StrValue
		switch operator {
		case "==", "===", "!=", "!==":
			p.advance()
			right := p.parseRelational()
			result = NewBinary(p.span(start), p.srcSpan(start), operator, result, right)
			continue
		}
		return result
	}
}

func (p *parseAST) parseRelational() AST {
	start := p.inputIndex()
	result := p.parseAdditive()
	for {
		operator := p.next().StrValue
		switch operator {
		case "<", ">", "<=", ">=":
			p.advance()
			right := p.parseAdditive()
			result = NewBinary(p.span(start), p.srcSpan(start), operator, result, right)
			continue
		}
		return result
	}
}

func (p *parseAST) parseAdditive() AST {
	start := p.inputIndex()
	result := p.parseMultiplicative()
	for {
		operator := p.next().StrValue
		switch operator {
		case "+", "-":
			p.advance()
			right := p.parseMultiplicative()
			result = NewBinary(p.span(start), p.srcSpan(start), operator, result, right)
			continue
		}
		return result
	}
}

func (p *parseAST) parseMultiplicative() AST {
	start := p.inputIndex()
	result := p.parseUnary()
	for {
		operator := p.next().StrValue
		switch operator {
		case "*", "/", "%":
			p.advance()
			right := p.parseUnary()
			result = NewBinary(p.span(start), p.srcSpan(start), operator, result, right)
			continue
		}
		return result
	}
}

func (p *parseAST) parseUnary() AST {
	start := p.inputIndex()
	if p.next().Type == TokenTypeOperator {
		operator := p.next().StrValue
		switch operator {
		case "+", "-", "!":
			p.advance()
			expr := p.parseUnary()
			return NewUnary(p.span(start), p.srcSpan(start), operator, expr)
		}
	}
	return p.parseCallChain()
}

// parseCallChain parses a primary expression followed by any number of
// property accesses, keyed reads and call argument lists.
func (p *parseAST) parseCallChain() AST {
	start := p.inputIndex()
	result := p.parsePrimary()

	for {
		if p.consumeOptionalCharacter(chars.PERIOD) {
			nameStart := p.inputIndex()
			name := p.expectIdentifierOrKeyword()
			nameSpan := p.span(nameStart).ToAbsolute(p.absoluteOffset)
			result = NewPropertyRead(p.span(start), p.srcSpan(start), nameSpan, result, name)
		} else if p.consumeOptionalCharacter(chars.LBRACKET) {
			key := p.parseConditional()
			p.expectCharacter(chars.RBRACKET)
			result = NewKeyedRead(p.span(start), p.srcSpan(start), result, key)
		} else if p.consumeOptionalCharacter(chars.LPAREN) {
			argStart := p.inputIndex()
			args := p.parseCallArguments()
			argSpan := p.span(argStart).ToAbsolute(p.absoluteOffset)
			p.expectCharacter(chars.RPAREN)
			result = NewCall(p.span(start), p.srcSpan(start), result, args, argSpan)
		} else {
			return result
		}
	}
}

func (p *parseAST) parseCallArguments() []AST {
	if p.next().IsCharacter(chars.RPAREN) {
		return []AST{}
	}
	args := []AST{p.parseConditional()}
	for p.consumeOptionalCharacter(chars.COMMA) {
		args = append(args, p.parseConditional())
	}
	return args
}

func (p *parseAST) parsePrimary() AST {
	start := p.inputIndex()
	n := p.next()

	switch {
	case p.consumeOptionalCharacter(chars.LPAREN):
		result := p.parseConditional()
		p.expectCharacter(chars.RPAREN)
		return result

	case n.IsKeyword():
		switch n.StrValue {
		case "null", "undefined":
			p.advance()
			return NewLiteralPrimitive(p.span(start), p.srcSpan(start), nil)
		case "true":
			p.advance()
			return NewLiteralPrimitive(p.span(start), p.srcSpan(start), true)
		case "false":
			p.advance()
			return NewLiteralPrimitive(p.span(start), p.srcSpan(start), false)
		case "this":
			p.advance()
			return NewThisReceiver(p.span(start), p.srcSpan(start))
		}
		p.error(fmt.Sprintf("Unexpected keyword %s", n.StrValue))
		return NewEmptyExpr(p.span(start), p.srcSpan(start))

	case n.IsNumber():
		p.advance()
		return NewLiteralPrimitive(p.span(start), p.srcSpan(start), n.ToNumber())

	case n.IsString():
		p.advance()
		return NewLiteralPrimitive(p.span(start), p.srcSpan(start), n.StrValue)

	case n.IsIdentifier():
		receiver := NewImplicitReceiver(p.span(start), p.srcSpan(start))
		nameStart := p.inputIndex()
		name := p.expectIdentifierOrKeyword()
		nameSpan := p.span(nameStart).ToAbsolute(p.absoluteOffset)
		return NewPropertyRead(p.span(start), p.srcSpan(start), nameSpan, receiver, name)

	case n.IsCharacter(chars.LBRACKET):
		p.advance()
		elements := p.parseExpressionList(chars.RBRACKET)
		p.expectCharacter(chars.RBRACKET)
		return NewLiteralArray(p.span(start), p.srcSpan(start), elements)

	case n.IsCharacter(chars.LBRACE):
		return p.parseLiteralMap()

	case n.IsError():
		p.error(n.StrValue)
		return NewEmptyExpr(p.span(start), p.srcSpan(start))

	case p.index >= len(p.tokens):
		p.error("Unexpected end of expression")
		return NewEmptyExpr(p.span(start), p.srcSpan(start))
	}

	p.error(fmt.Sprintf("Unexpected token %s", n))
	return NewEmptyExpr(p.span(start), p.srcSpan(start))
}

func (p *parseAST) parseExpressionList(terminator int) []AST {
	result := []AST{}
	if p.next().IsCharacter(terminator) {
		return result
	}
	for {
		result = append(result, p.parseConditional())
		if !p.consumeOptionalCharacter(chars.COMMA) {
			return result
		}
	}
}

func (p *parseAST) parseLiteralMap() AST {
	start := p.inputIndex()
	keys := []LiteralMapKey{}
	values := []AST{}
	p.expectCharacter(chars.LBRACE)

	if !p.consumeOptionalCharacter(chars.RBRACE) {
		for {
			quoted := p.next().IsString()
			var key string
			if quoted {
				key = p.next().StrValue
				p.advance()
			} else {
				key = p.expectIdentifierOrKeyword()
			}
			keys = append(keys, LiteralMapKey{Key: key, Quoted: quoted})

			// `{foo: bar}` carries an explicit value, `{foo}` is
			// shorthand for reading the property of the same name.
			if p.consumeOptionalCharacter(chars.COLON) {
				values = append(values, p.parseConditional())
			} else if !quoted {
				valueStart := p.currentEndIndex()
				span := p.span(valueStart)
				srcSpan := p.srcSpan(valueStart)
				values = append(values, NewPropertyRead(span, srcSpan, srcSpan, NewImplicitReceiver(span, srcSpan), key))
			} else {
				p.error("Quoted object literal keys must be followed by a value")
			}

			if !p.consumeOptionalCharacter(chars.COMMA) {
				break
			}
			if p.next().IsCharacter(chars.RBRACE) {
				// Trailing comma.
				break
			}
		}
		p.expectCharacter(chars.RBRACE)
	}

	return NewLiteralMap(p.span(start), p.srcSpan(start), keys, values)
}
