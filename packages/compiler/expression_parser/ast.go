package expression_parser

import "tplc-go/packages/compiler/util"

// ParseSpan is a range within the parsed expression text.
type ParseSpan struct {
	Start int
	End   int
}

// NewParseSpan creates a new ParseSpan.
func NewParseSpan(start, end int) *ParseSpan {
	return &ParseSpan{Start: start, End: end}
}

// ToAbsolute shifts the span into source-file coordinates.
func (ps *ParseSpan) ToAbsolute(absoluteOffset int) *AbsoluteSourceSpan {
	return NewAbsoluteSourceSpan(absoluteOffset+ps.Start, absoluteOffset+ps.End)
}

// AbsoluteSourceSpan is a span in absolute source-file coordinates.
type AbsoluteSourceSpan struct {
	Start int
	End   int
}

// NewAbsoluteSourceSpan creates a new AbsoluteSourceSpan.
func NewAbsoluteSourceSpan(start, end int) *AbsoluteSourceSpan {
	return &AbsoluteSourceSpan{Start: start, End: end}
}

// AST is a parsed expression node.
type AST interface {
	Span() *ParseSpan
	SourceSpan() *AbsoluteSourceSpan
	Visit(visitor AstVisitor, context interface{}) interface{}
}

type astNode struct {
	span       *ParseSpan
	sourceSpan *AbsoluteSourceSpan
}

// Span returns the parse span.
func (a *astNode) Span() *ParseSpan {
	return a.span
}

// SourceSpan returns the absolute source span.
func (a *astNode) SourceSpan() *AbsoluteSourceSpan {
	return a.sourceSpan
}

// EmptyExpr stands in for a missing expression.
type EmptyExpr struct {
	astNode
}

// NewEmptyExpr creates a new EmptyExpr.
func NewEmptyExpr(span *ParseSpan, sourceSpan *AbsoluteSourceSpan) *EmptyExpr {
	return &EmptyExpr{astNode{span: span, sourceSpan: sourceSpan}}
}

// Visit implements the AST interface.
func (e *EmptyExpr) Visit(visitor AstVisitor, context interface{}) interface{} {
	return nil
}

// ImplicitReceiver is the receiver of an unqualified property access.
type ImplicitReceiver struct {
	astNode
}

// NewImplicitReceiver creates a new ImplicitReceiver.
func NewImplicitReceiver(span *ParseSpan, sourceSpan *AbsoluteSourceSpan) *ImplicitReceiver {
	return &ImplicitReceiver{astNode{span: span, sourceSpan: sourceSpan}}
}

// Visit implements the AST interface.
func (i *ImplicitReceiver) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitImplicitReceiver(i, context)
}

// ThisReceiver is the receiver of an access qualified with `this`.
type ThisReceiver struct {
	*ImplicitReceiver
}

// NewThisReceiver creates a new ThisReceiver.
func NewThisReceiver(span *ParseSpan, sourceSpan *AbsoluteSourceSpan) *ThisReceiver {
	return &ThisReceiver{ImplicitReceiver: NewImplicitReceiver(span, sourceSpan)}
}

// Visit implements the AST interface.
func (t *ThisReceiver) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitThisReceiver(t, context)
}

// PropertyRead is a property access, e.g. `foo` or `obj.foo`.
type PropertyRead struct {
	astNode
	NameSpan *AbsoluteSourceSpan
	Receiver AST
	Name     string
}

// NewPropertyRead creates a new PropertyRead.
func NewPropertyRead(span *ParseSpan, sourceSpan, nameSpan *AbsoluteSourceSpan, receiver AST, name string) *PropertyRead {
	return &PropertyRead{
		astNode:  astNode{span: span, sourceSpan: sourceSpan},
		NameSpan: nameSpan,
		Receiver: receiver,
		Name:     name,
	}
}

// Visit implements the AST interface.
func (p *PropertyRead) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPropertyRead(p, context)
}

// KeyedRead is an indexed access, e.g. `obj[key]`.
type KeyedRead struct {
	astNode
	Receiver AST
	Key      AST
}

// NewKeyedRead creates a new KeyedRead.
func NewKeyedRead(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, receiver, key AST) *KeyedRead {
	return &KeyedRead{
		astNode:  astNode{span: span, sourceSpan: sourceSpan},
		Receiver: receiver,
		Key:      key,
	}
}

// Visit implements the AST interface.
func (k *KeyedRead) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitKeyedRead(k, context)
}

// Call is a function or method call.
type Call struct {
	astNode
	Receiver AST
	Args     []AST
	ArgSpan  *AbsoluteSourceSpan
}

// NewCall creates a new Call.
func NewCall(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, receiver AST, args []AST, argSpan *AbsoluteSourceSpan) *Call {
	return &Call{
		astNode:  astNode{span: span, sourceSpan: sourceSpan},
		Receiver: receiver,
		Args:     args,
		ArgSpan:  argSpan,
	}
}

// Visit implements the AST interface.
func (c *Call) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitCall(c, context)
}

// Unary is a prefix operator application, e.g. `!open` or `-count`.
type Unary struct {
	astNode
	Operator string
	Expr     AST
}

// NewUnary creates a new Unary.
func NewUnary(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, operator string, expr AST) *Unary {
	return &Unary{
		astNode:  astNode{span: span, sourceSpan: sourceSpan},
		Operator: operator,
		Expr:     expr,
	}
}

// Visit implements the AST interface.
func (u *Unary) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitUnary(u, context)
}

// Binary is a binary operator application.
type Binary struct {
	astNode
	Operation string
	Left      AST
	Right     AST
}

// NewBinary creates a new Binary.
func NewBinary(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, operation string, left, right AST) *Binary {
	return &Binary{
		astNode:   astNode{span: span, sourceSpan: sourceSpan},
		Operation: operation,
		Left:      left,
		Right:     right,
	}
}

// Visit implements the AST interface.
func (b *Binary) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitBinary(b, context)
}

// Conditional is a ternary expression `cond ? a : b`.
type Conditional struct {
	astNode
	Condition AST
	TrueExp   AST
	FalseExp  AST
}

// NewConditional creates a new Conditional.
func NewConditional(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, condition, trueExp, falseExp AST) *Conditional {
	return &Conditional{
		astNode:   astNode{span: span, sourceSpan: sourceSpan},
		Condition: condition,
		TrueExp:   trueExp,
		FalseExp:  falseExp,
	}
}

// Visit implements the AST interface.
func (c *Conditional) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitConditional(c, context)
}

// LiteralPrimitive is a number, string, boolean, null or undefined literal.
type LiteralPrimitive struct {
	astNode
	Value interface{}
}

// NewLiteralPrimitive creates a new LiteralPrimitive.
func NewLiteralPrimitive(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, value interface{}) *LiteralPrimitive {
	return &LiteralPrimitive{
		astNode: astNode{span: span, sourceSpan: sourceSpan},
		Value:   value,
	}
}

// Visit implements the AST interface.
func (l *LiteralPrimitive) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralPrimitive(l, context)
}

// LiteralArray is an array literal.
type LiteralArray struct {
	astNode
	Expressions []AST
}

// NewLiteralArray creates a new LiteralArray.
func NewLiteralArray(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, expressions []AST) *LiteralArray {
	return &LiteralArray{
		astNode:     astNode{span: span, sourceSpan: sourceSpan},
		Expressions: expressions,
	}
}

// Visit implements the AST interface.
func (l *LiteralArray) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralArray(l, context)
}

// LiteralMapKey is one key of an object literal.
type LiteralMapKey struct {
	Key    string
	Quoted bool
}

// LiteralMap is an object literal.
type LiteralMap struct {
	astNode
	Keys   []LiteralMapKey
	Values []AST
}

// NewLiteralMap creates a new LiteralMap.
func NewLiteralMap(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, keys []LiteralMapKey, values []AST) *LiteralMap {
	return &LiteralMap{
		astNode: astNode{span: span, sourceSpan: sourceSpan},
		Keys:    keys,
		Values:  values,
	}
}

// Visit implements the AST interface.
func (l *LiteralMap) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralMap(l, context)
}

// ASTWithSource wraps a parsed expression together with its source text,
// location and any parse errors.
type ASTWithSource struct {
	AST            AST
	Source         *string
	Location       string
	AbsoluteOffset int
	Errors         []*util.ParseError
	span           *ParseSpan
	sourceSpan     *AbsoluteSourceSpan
}

// NewASTWithSource creates a new ASTWithSource.
func NewASTWithSource(ast AST, source *string, location string, absoluteOffset int, errors []*util.ParseError) *ASTWithSource {
	sourceLen := 0
	if source != nil {
		sourceLen = len(*source)
	}
	span := NewParseSpan(0, sourceLen)
	return &ASTWithSource{
		AST:            ast,
		Source:         source,
		Location:       location,
		AbsoluteOffset: absoluteOffset,
		Errors:         errors,
		span:           span,
		sourceSpan:     span.ToAbsolute(absoluteOffset),
	}
}

// Span returns the parse span.
func (a *ASTWithSource) Span() *ParseSpan {
	return a.span
}

// SourceSpan returns the absolute source span.
func (a *ASTWithSource) SourceSpan() *AbsoluteSourceSpan {
	return a.sourceSpan
}

// Visit unwraps to the underlying expression.
func (a *ASTWithSource) Visit(visitor AstVisitor, context interface{}) interface{} {
	if a.AST == nil {
		return nil
	}
	return a.AST.Visit(visitor, context)
}

// AstVisitor visits expression nodes.
type AstVisitor interface {
	Visit(ast AST, context interface{}) interface{}
	VisitImplicitReceiver(ast *ImplicitReceiver, context interface{}) interface{}
	VisitThisReceiver(ast *ThisReceiver, context interface{}) interface{}
	VisitPropertyRead(ast *PropertyRead, context interface{}) interface{}
	VisitKeyedRead(ast *KeyedRead, context interface{}) interface{}
	VisitCall(ast *Call, context interface{}) interface{}
	VisitUnary(ast *Unary, context interface{}) interface{}
	VisitBinary(ast *Binary, context interface{}) interface{}
	VisitConditional(ast *Conditional, context interface{}) interface{}
	VisitLiteralPrimitive(ast *LiteralPrimitive, context interface{}) interface{}
	VisitLiteralArray(ast *LiteralArray, context interface{}) interface{}
	VisitLiteralMap(ast *LiteralMap, context interface{}) interface{}
}

// RecursiveAstVisitor is an AstVisitor base that descends into every child.
type RecursiveAstVisitor struct{}

// Visit is the default visit method.
func (r *RecursiveAstVisitor) Visit(ast AST, context interface{}) interface{} {
	ast.Visit(r, context)
	return nil
}

// VisitAll visits a list of expressions.
func (r *RecursiveAstVisitor) VisitAll(asts []AST, context interface{}) {
	for _, ast := range asts {
		r.Visit(ast, context)
	}
}

// VisitImplicitReceiver visits an implicit receiver.
func (r *RecursiveAstVisitor) VisitImplicitReceiver(ast *ImplicitReceiver, context interface{}) interface{} {
	return nil
}

// VisitThisReceiver visits a this receiver.
func (r *RecursiveAstVisitor) VisitThisReceiver(ast *ThisReceiver, context interface{}) interface{} {
	return nil
}

// VisitPropertyRead visits a property read.
func (r *RecursiveAstVisitor) VisitPropertyRead(ast *PropertyRead, context interface{}) interface{} {
	r.Visit(ast.Receiver, context)
	return nil
}

// VisitKeyedRead visits a keyed read.
func (r *RecursiveAstVisitor) VisitKeyedRead(ast *KeyedRead, context interface{}) interface{} {
	r.Visit(ast.Receiver, context)
	r.Visit(ast.Key, context)
	return nil
}

// VisitCall visits a call.
func (r *RecursiveAstVisitor) VisitCall(ast *Call, context interface{}) interface{} {
	r.Visit(ast.Receiver, context)
	r.VisitAll(ast.Args, context)
	return nil
}

// VisitUnary visits a unary expression.
func (r *RecursiveAstVisitor) VisitUnary(ast *Unary, context interface{}) interface{} {
	r.Visit(ast.Expr, context)
	return nil
}

// VisitBinary visits a binary expression.
func (r *RecursiveAstVisitor) VisitBinary(ast *Binary, context interface{}) interface{} {
	r.Visit(ast.Left, context)
	r.Visit(ast.Right, context)
	return nil
}

// VisitConditional visits a conditional expression.
func (r *RecursiveAstVisitor) VisitConditional(ast *Conditional, context interface{}) interface{} {
	r.Visit(ast.Condition, context)
	r.Visit(ast.TrueExp, context)
	r.Visit(ast.FalseExp, context)
	return nil
}

// VisitLiteralPrimitive visits a literal primitive.
func (r *RecursiveAstVisitor) VisitLiteralPrimitive(ast *LiteralPrimitive, context interface{}) interface{} {
	return nil
}

// VisitLiteralArray visits a literal array.
func (r *RecursiveAstVisitor) VisitLiteralArray(ast *LiteralArray, context interface{}) interface{} {
	r.VisitAll(ast.Expressions, context)
	return nil
}

// VisitLiteralMap visits a literal map.
func (r *RecursiveAstVisitor) VisitLiteralMap(ast *LiteralMap, context interface{}) interface{} {
	r.VisitAll(ast.Values, context)
	return nil
}
