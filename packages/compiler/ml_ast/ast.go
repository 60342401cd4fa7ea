// Package ml_ast defines the generic markup tree produced by the template
// tokenizer: untyped blocks with raw parameters and children. The typed
// template AST is assembled from these nodes by the template_ast package.
package ml_ast

import "tplc-go/packages/compiler/util"

// Node is a node in the generic markup AST.
type Node interface {
	SourceSpan() *util.ParseSourceSpan
	Visit(visitor Visitor, context interface{}) interface{}
}

// Text is a text node.
type Text struct {
	Value      string
	sourceSpan *util.ParseSourceSpan
}

// NewText creates a new Text node.
func NewText(value string, sourceSpan *util.ParseSourceSpan) *Text {
	return &Text{Value: value, sourceSpan: sourceSpan}
}

// SourceSpan returns the source span.
func (t *Text) SourceSpan() *util.ParseSourceSpan {
	return t.sourceSpan
}

// Visit implements the Node interface.
func (t *Text) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitText(t, context)
}

// Attribute is an attribute on an element.
type Attribute struct {
	Name       string
	Value      string
	sourceSpan *util.ParseSourceSpan
	KeySpan    *util.ParseSourceSpan
	ValueSpan  *util.ParseSourceSpan
}

// NewAttribute creates a new Attribute node.
func NewAttribute(name, value string, sourceSpan, keySpan, valueSpan *util.ParseSourceSpan) *Attribute {
	return &Attribute{
		Name:       name,
		Value:      value,
		sourceSpan: sourceSpan,
		KeySpan:    keySpan,
		ValueSpan:  valueSpan,
	}
}

// SourceSpan returns the source span.
func (a *Attribute) SourceSpan() *util.ParseSourceSpan {
	return a.sourceSpan
}

// Visit implements the Node interface.
func (a *Attribute) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitAttribute(a, context)
}

// Element is an element node.
type Element struct {
	Name            string
	Attrs           []*Attribute
	Children        []Node
	IsSelfClosing   bool
	sourceSpan      *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
	EndSourceSpan   *util.ParseSourceSpan
}

// NewElement creates a new Element node.
func NewElement(name string, attrs []*Attribute, children []Node, isSelfClosing bool, sourceSpan, startSourceSpan, endSourceSpan *util.ParseSourceSpan) *Element {
	return &Element{
		Name:            name,
		Attrs:           attrs,
		Children:        children,
		IsSelfClosing:   isSelfClosing,
		sourceSpan:      sourceSpan,
		StartSourceSpan: startSourceSpan,
		EndSourceSpan:   endSourceSpan,
	}
}

// SourceSpan returns the source span.
func (e *Element) SourceSpan() *util.ParseSourceSpan {
	return e.sourceSpan
}

// Visit implements the Node interface.
func (e *Element) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitElement(e, context)
}

// Comment is a comment node.
type Comment struct {
	Value      *string
	sourceSpan *util.ParseSourceSpan
}

// NewComment creates a new Comment node.
func NewComment(value *string, sourceSpan *util.ParseSourceSpan) *Comment {
	return &Comment{Value: value, sourceSpan: sourceSpan}
}

// SourceSpan returns the source span.
func (c *Comment) SourceSpan() *util.ParseSourceSpan {
	return c.sourceSpan
}

// Visit implements the Node interface.
func (c *Comment) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitComment(c, context)
}

// Block is a named block with raw parameters, e.g. `@defer (when x) {...}`.
// The tokenizer has already trimmed leading whitespace off each parameter.
type Block struct {
	Name            string
	Parameters      []*BlockParameter
	Children        []Node
	sourceSpan      *util.ParseSourceSpan
	NameSpan        *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
	EndSourceSpan   *util.ParseSourceSpan
}

// NewBlock creates a new Block node.
func NewBlock(name string, parameters []*BlockParameter, children []Node, sourceSpan, nameSpan, startSourceSpan, endSourceSpan *util.ParseSourceSpan) *Block {
	return &Block{
		Name:            name,
		Parameters:      parameters,
		Children:        children,
		sourceSpan:      sourceSpan,
		NameSpan:        nameSpan,
		StartSourceSpan: startSourceSpan,
		EndSourceSpan:   endSourceSpan,
	}
}

// SourceSpan returns the source span.
func (b *Block) SourceSpan() *util.ParseSourceSpan {
	return b.sourceSpan
}

// Visit implements the Node interface.
func (b *Block) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitBlock(b, context)
}

// BlockParameter is one raw, unparsed parameter of a block.
type BlockParameter struct {
	Expression string
	sourceSpan *util.ParseSourceSpan
}

// NewBlockParameter creates a new BlockParameter.
func NewBlockParameter(expression string, sourceSpan *util.ParseSourceSpan) *BlockParameter {
	return &BlockParameter{Expression: expression, sourceSpan: sourceSpan}
}

// SourceSpan returns the source span.
func (bp *BlockParameter) SourceSpan() *util.ParseSourceSpan {
	return bp.sourceSpan
}

// Visit implements the Node interface.
func (bp *BlockParameter) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitBlockParameter(bp, context)
}

// Visitor visits generic markup nodes.
type Visitor interface {
	// Visit, when it returns a non-nil value, short-circuits the
	// node-specific visit method in VisitAll.
	Visit(node Node, context interface{}) interface{}
	VisitElement(element *Element, context interface{}) interface{}
	VisitAttribute(attribute *Attribute, context interface{}) interface{}
	VisitText(text *Text, context interface{}) interface{}
	VisitComment(comment *Comment, context interface{}) interface{}
	VisitBlock(block *Block, context interface{}) interface{}
	VisitBlockParameter(parameter *BlockParameter, context interface{}) interface{}
}

// VisitAll visits every node and returns the non-nil results in order.
func VisitAll(visitor Visitor, nodes []Node, context interface{}) []interface{} {
	var result []interface{}

	for _, node := range nodes {
		nodeResult := visitor.Visit(node, context)
		if nodeResult == nil {
			nodeResult = node.Visit(visitor, context)
		}
		if nodeResult != nil {
			result = append(result, nodeResult)
		}
	}

	return result
}

// RecursiveVisitor is a Visitor base that descends into children and
// produces no results.
type RecursiveVisitor struct{}

// Visit is the default visit method.
func (r *RecursiveVisitor) Visit(node Node, context interface{}) interface{} {
	return nil
}

// VisitElement visits an element's children.
func (r *RecursiveVisitor) VisitElement(element *Element, context interface{}) interface{} {
	VisitAll(r, element.Children, context)
	return nil
}

// VisitAttribute visits an attribute.
func (r *RecursiveVisitor) VisitAttribute(attribute *Attribute, context interface{}) interface{} {
	return nil
}

// VisitText visits a text node.
func (r *RecursiveVisitor) VisitText(text *Text, context interface{}) interface{} {
	return nil
}

// VisitComment visits a comment node.
func (r *RecursiveVisitor) VisitComment(comment *Comment, context interface{}) interface{} {
	return nil
}

// VisitBlock visits a block's children.
func (r *RecursiveVisitor) VisitBlock(block *Block, context interface{}) interface{} {
	VisitAll(r, block.Children, context)
	return nil
}

// VisitBlockParameter visits a block parameter.
func (r *RecursiveVisitor) VisitBlockParameter(parameter *BlockParameter, context interface{}) interface{} {
	return nil
}
