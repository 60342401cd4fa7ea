package ml_ast

import (
	"strings"

	"tplc-go/packages/compiler/util"
)

// BlockBuilder synthesizes a source document together with block nodes
// whose spans point into it. It stands in for the template tokenizer in
// tools and tests that feed the typed parsers directly.
type BlockBuilder struct {
	file *util.ParseSourceFile
}

// NewBlockBuilder creates a builder over an empty document.
func NewBlockBuilder(url string) *BlockBuilder {
	return &BlockBuilder{file: util.NewParseSourceFile("", url)}
}

// Content returns the synthesized source text.
func (b *BlockBuilder) Content() string {
	return b.file.Content
}

// AddBlock appends `@name (param; param) { children }` to the document
// and returns its node. Children are plain text segments.
func (b *BlockBuilder) AddBlock(name string, parameters []string, children ...string) *Block {
	if len(b.file.Content) > 0 {
		b.append(" ")
	}

	blockStart, _ := b.append("@")
	_, nameEnd := b.append(name)
	nameSpan := b.span(blockStart, nameEnd)

	var params []*BlockParameter
	if len(parameters) > 0 {
		b.append(" (")
		for i, expression := range parameters {
			if i > 0 {
				b.append("; ")
			}
			start, end := b.append(expression)
			params = append(params, NewBlockParameter(expression, b.span(start, end)))
		}
		b.append(")")
	}

	_, openEnd := b.append(" {")
	startSourceSpan := b.span(blockStart, openEnd)

	var childNodes []Node
	for _, child := range children {
		start, end := b.append(child)
		childNodes = append(childNodes, NewText(child, b.span(start, end)))
	}

	closeStart, closeEnd := b.append("}")
	endSourceSpan := b.span(closeStart, closeEnd)
	sourceSpan := b.span(blockStart, closeEnd)

	return NewBlock(name, params, childNodes, sourceSpan, nameSpan, startSourceSpan, endSourceSpan)
}

func (b *BlockBuilder) append(text string) (start, end int) {
	start = len(b.file.Content)
	b.file.Content += text
	return start, len(b.file.Content)
}

func (b *BlockBuilder) span(start, end int) *util.ParseSourceSpan {
	return util.NewParseSourceSpan(b.location(start), b.location(end), nil, nil)
}

func (b *BlockBuilder) location(offset int) *util.ParseLocation {
	before := b.file.Content[:offset]
	line := strings.Count(before, "\n")
	col := offset
	if idx := strings.LastIndex(before, "\n"); idx != -1 {
		col = offset - idx - 1
	}
	return util.NewParseLocation(b.file, offset, line, col)
}
