package template_ast

import (
	"regexp"

	"tplc-go/packages/compiler/expression_parser"
	"tplc-go/packages/compiler/ml_ast"
	"tplc-go/packages/compiler/util"
)

// Pattern to identify a `prefetch when` trigger.
var prefetchWhenPattern = regexp.MustCompile(`^prefetch\s+when\s`)

// Pattern to identify a `prefetch on` trigger.
var prefetchOnPattern = regexp.MustCompile(`^prefetch\s+on\s`)

// Pattern to identify a `hydrate when` trigger.
var hydrateWhenPattern = regexp.MustCompile(`^hydrate\s+when\s`)

// Pattern to identify a `hydrate on` trigger.
var hydrateOnPattern = regexp.MustCompile(`^hydrate\s+on\s`)

// Pattern to identify a `hydrate never` trigger.
var hydrateNeverPattern = regexp.MustCompile(`^hydrate\s+never(\s*)$`)

// Pattern to identify a `minimum` parameter in a block.
var minimumParameterPattern = regexp.MustCompile(`^minimum\s`)

// Pattern to identify an `after` parameter in a block.
var afterParameterPattern = regexp.MustCompile(`^after\s`)

// Pattern to identify a `when` parameter in a block.
var whenParameterPattern = regexp.MustCompile(`^when\s`)

// Pattern to identify an `on` parameter in a block.
var onParameterPattern = regexp.MustCompile(`^on\s`)

// BindingParser parses a binding expression into an AST, collecting any
// expression-level errors on the returned wrapper rather than failing.
type BindingParser interface {
	ParseBinding(expression string, sourceSpan *util.ParseSourceSpan, absoluteOffset int) *expression_parser.ASTWithSource
}

// IsConnectedDeferBlock reports whether a block with the given name can
// be connected to a `@defer` block.
func IsConnectedDeferBlock(name string) bool {
	return name == "placeholder" || name == "loading" || name == "error"
}

// CreateDeferredBlockResult is the outcome of assembling a deferred
// block. Node is always non-nil; Errors holds every diagnostic produced
// along the way.
type CreateDeferredBlockResult struct {
	Node   *DeferredBlock
	Errors []*util.ParseError
}

// CreateDeferredBlock assembles a typed deferred block from a generic
// `@defer` block and the connected blocks that follow it.
func CreateDeferredBlock(
	ast *ml_ast.Block,
	connectedBlocks []*ml_ast.Block,
	visitor ml_ast.Visitor,
	bindingParser BindingParser,
) CreateDeferredBlockResult {
	errors := []*util.ParseError{}
	placeholder, loading, errorBlock := parseConnectedBlocks(connectedBlocks, &errors, visitor)
	triggers, prefetchTriggers, hydrateTriggers := parsePrimaryTriggers(
		ast,
		bindingParser,
		&errors,
		placeholder,
	)

	// The source span stretches over the connected blocks as well.
	lastEndSourceSpan := ast.EndSourceSpan
	endOfLastSourceSpan := ast.SourceSpan().End
	if len(connectedBlocks) > 0 {
		lastConnectedBlock := connectedBlocks[len(connectedBlocks)-1]
		lastEndSourceSpan = lastConnectedBlock.EndSourceSpan
		endOfLastSourceSpan = lastConnectedBlock.SourceSpan().End
	}

	sourceSpanWithConnectedBlocks := util.NewParseSourceSpan(
		ast.SourceSpan().Start,
		endOfLastSourceSpan,
		nil,
		nil,
	)

	children := convertToTemplateNodes(ml_ast.VisitAll(visitor, ast.Children, nil))
	node := NewDeferredBlock(
		children,
		triggers,
		prefetchTriggers,
		hydrateTriggers,
		placeholder,
		loading,
		errorBlock,
		ast.NameSpan,
		sourceSpanWithConnectedBlocks,
		ast.SourceSpan(),
		ast.StartSourceSpan,
		lastEndSourceSpan,
	)

	return CreateDeferredBlockResult{Node: node, Errors: errors}
}

// parseConnectedBlocks parses the placeholder, loading and error blocks
// connected to a deferred block. An unrecognized block name stops the
// walk; duplicates and malformed blocks only skip the offending block.
func parseConnectedBlocks(
	connectedBlocks []*ml_ast.Block,
	errors *[]*util.ParseError,
	visitor ml_ast.Visitor,
) (*DeferredBlockPlaceholder, *DeferredBlockLoading, *DeferredBlockError) {
	var placeholder *DeferredBlockPlaceholder
	var loading *DeferredBlockLoading
	var errorBlock *DeferredBlockError

	for _, block := range connectedBlocks {
		if !IsConnectedDeferBlock(block.Name) {
			*errors = append(*errors, util.NewParseError(block.StartSourceSpan, `Unrecognized block "@`+block.Name+`"`))
			break
		}

		switch block.Name {
		case "placeholder":
			if placeholder != nil {
				*errors = append(*errors, util.NewParseError(
					block.StartSourceSpan,
					"@defer block can only have one @placeholder block",
				))
			} else if parsed, err := parsePlaceholderBlock(block, visitor); err != nil {
				*errors = append(*errors, util.NewParseError(block.StartSourceSpan, err.Error()))
			} else {
				placeholder = parsed
			}

		case "loading":
			if loading != nil {
				*errors = append(*errors, util.NewParseError(
					block.StartSourceSpan,
					"@defer block can only have one @loading block",
				))
			} else if parsed, err := parseLoadingBlock(block, visitor); err != nil {
				*errors = append(*errors, util.NewParseError(block.StartSourceSpan, err.Error()))
			} else {
				loading = parsed
			}

		case "error":
			if errorBlock != nil {
				*errors = append(*errors, util.NewParseError(block.StartSourceSpan, "@defer block can only have one @error block"))
			} else if parsed, err := parseErrorBlock(block, visitor); err != nil {
				*errors = append(*errors, util.NewParseError(block.StartSourceSpan, err.Error()))
			} else {
				errorBlock = parsed
			}
		}
	}

	return placeholder, loading, errorBlock
}

func parsePlaceholderBlock(ast *ml_ast.Block, visitor ml_ast.Visitor) (*DeferredBlockPlaceholder, error) {
	var minimumTime *int

	for _, param := range ast.Parameters {
		if !minimumParameterPattern.MatchString(param.Expression) {
			return nil, &ParseError{Message: `Unrecognized parameter in @placeholder block: "` + param.Expression + `"`}
		}
		if minimumTime != nil {
			return nil, &ParseError{Message: `@placeholder block can only have one "minimum" parameter`}
		}

		// A keyword with no value has no parameter start.
		var parsedTime *int
		if start := GetTriggerParametersStart(param.Expression, 0); start != -1 {
			parsedTime = ParseDeferredTime(param.Expression[start:])
		}
		if parsedTime == nil {
			return nil, &ParseError{Message: `Could not parse time value of parameter "minimum"`}
		}

		minimumTime = parsedTime
	}

	children := convertToTemplateNodes(ml_ast.VisitAll(visitor, ast.Children, nil))
	return NewDeferredBlockPlaceholder(
		children,
		minimumTime,
		ast.NameSpan,
		ast.SourceSpan(),
		ast.StartSourceSpan,
		ast.EndSourceSpan,
	), nil
}

func parseLoadingBlock(ast *ml_ast.Block, visitor ml_ast.Visitor) (*DeferredBlockLoading, error) {
	var afterTime *int
	var minimumTime *int

	for _, param := range ast.Parameters {
		switch {
		case afterParameterPattern.MatchString(param.Expression):
			if afterTime != nil {
				return nil, &ParseError{Message: `@loading block can only have one "after" parameter`}
			}

			var parsedTime *int
			if start := GetTriggerParametersStart(param.Expression, 0); start != -1 {
				parsedTime = ParseDeferredTime(param.Expression[start:])
			}
			if parsedTime == nil {
				return nil, &ParseError{Message: `Could not parse time value of parameter "after"`}
			}

			afterTime = parsedTime

		case minimumParameterPattern.MatchString(param.Expression):
			if minimumTime != nil {
				return nil, &ParseError{Message: `@loading block can only have one "minimum" parameter`}
			}

			var parsedTime *int
			if start := GetTriggerParametersStart(param.Expression, 0); start != -1 {
				parsedTime = ParseDeferredTime(param.Expression[start:])
			}
			if parsedTime == nil {
				return nil, &ParseError{Message: `Could not parse time value of parameter "minimum"`}
			}

			minimumTime = parsedTime

		default:
			return nil, &ParseError{Message: `Unrecognized parameter in @loading block: "` + param.Expression + `"`}
		}
	}

	children := convertToTemplateNodes(ml_ast.VisitAll(visitor, ast.Children, nil))
	return NewDeferredBlockLoading(
		children,
		afterTime,
		minimumTime,
		ast.NameSpan,
		ast.SourceSpan(),
		ast.StartSourceSpan,
		ast.EndSourceSpan,
	), nil
}

func parseErrorBlock(ast *ml_ast.Block, visitor ml_ast.Visitor) (*DeferredBlockError, error) {
	if len(ast.Parameters) > 0 {
		return nil, &ParseError{Message: `@error block cannot have parameters`}
	}

	children := convertToTemplateNodes(ml_ast.VisitAll(visitor, ast.Children, nil))
	return NewDeferredBlockError(
		children,
		ast.NameSpan,
		ast.SourceSpan(),
		ast.StartSourceSpan,
		ast.EndSourceSpan,
	), nil
}

// parsePrimaryTriggers classifies each parameter of the primary block by
// its leading keywords and dispatches it to a trigger parser. The checks
// are ordered from the most common form to the least common one.
func parsePrimaryTriggers(
	ast *ml_ast.Block,
	bindingParser BindingParser,
	errors *[]*util.ParseError,
	placeholder *DeferredBlockPlaceholder,
) (*DeferredBlockTriggers, *DeferredBlockTriggers, *DeferredBlockTriggers) {
	triggers := &DeferredBlockTriggers{}
	prefetchTriggers := &DeferredBlockTriggers{}
	hydrateTriggers := &DeferredBlockTriggers{}

	for _, param := range ast.Parameters {
		// The tokenizer has trimmed leading whitespace so the expression
		// starts with its keyword.
		switch {
		case whenParameterPattern.MatchString(param.Expression):
			ParseWhenTrigger(param, bindingParser, triggers, errors)
		case onParameterPattern.MatchString(param.Expression):
			ParseOnTrigger(param, bindingParser, triggers, errors, placeholder)
		case prefetchWhenPattern.MatchString(param.Expression):
			ParseWhenTrigger(param, bindingParser, prefetchTriggers, errors)
		case prefetchOnPattern.MatchString(param.Expression):
			ParseOnTrigger(param, bindingParser, prefetchTriggers, errors, placeholder)
		case hydrateWhenPattern.MatchString(param.Expression):
			ParseWhenTrigger(param, bindingParser, hydrateTriggers, errors)
		case hydrateOnPattern.MatchString(param.Expression):
			ParseOnTrigger(param, bindingParser, hydrateTriggers, errors, placeholder)
		case hydrateNeverPattern.MatchString(param.Expression):
			ParseNeverTrigger(param, hydrateTriggers, errors)
		default:
			*errors = append(*errors, util.NewParseError(param.SourceSpan(), "Unrecognized trigger"))
		}
	}

	// `hydrate never` excludes every other hydrate trigger.
	if hydrateTriggers.Never != nil {
		hasOtherTriggers := hydrateTriggers.When != nil ||
			hydrateTriggers.Idle != nil ||
			hydrateTriggers.Immediate != nil ||
			hydrateTriggers.Hover != nil ||
			hydrateTriggers.Timer != nil ||
			hydrateTriggers.Interaction != nil ||
			hydrateTriggers.Viewport != nil

		if hasOtherTriggers {
			*errors = append(*errors, util.NewParseError(
				ast.StartSourceSpan,
				"Cannot specify additional `hydrate` triggers if `hydrate never` is present",
			))
		}
	}

	return triggers, prefetchTriggers, hydrateTriggers
}

// convertToTemplateNodes narrows visitor results down to template nodes.
func convertToTemplateNodes(results []interface{}) []Node {
	var nodes []Node
	for _, result := range results {
		if node, ok := result.(Node); ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}
