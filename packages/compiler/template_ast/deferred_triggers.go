package template_ast

import (
	"regexp"
	"strconv"
	"strings"

	"tplc-go/packages/compiler/chars"
	"tplc-go/packages/compiler/expression_parser"
	"tplc-go/packages/compiler/ml_ast"
	"tplc-go/packages/compiler/util"
)

// Pattern for a timing value in a trigger.
var timePattern = regexp.MustCompile(`^\d+\.?\d*(ms|s)?$`)

// Pattern for a separator between keywords in a trigger expression.
var separatorPattern = regexp.MustCompile(`^\s$`)

// commaDelimitedSyntax maps opening characters to closing characters of
// the syntaxes inside which a comma does not separate parameters.
var commaDelimitedSyntax = map[int]int{
	chars.LBRACE:   chars.RBRACE,   // Object literals
	chars.LBRACKET: chars.RBRACKET, // Array literals
	chars.LPAREN:   chars.RPAREN,   // Function calls
}

// OnTriggerType is the name of an `on` trigger.
type OnTriggerType string

const (
	OnTriggerTypeIdle        OnTriggerType = "idle"
	OnTriggerTypeTimer       OnTriggerType = "timer"
	OnTriggerTypeInteraction OnTriggerType = "interaction"
	OnTriggerTypeImmediate   OnTriggerType = "immediate"
	OnTriggerTypeHover       OnTriggerType = "hover"
	OnTriggerTypeViewport    OnTriggerType = "viewport"
	OnTriggerTypeNever       OnTriggerType = "never"
)

// ReferenceTriggerValidator validates the parameter structure of a
// reference-based trigger.
type ReferenceTriggerValidator func(triggerType OnTriggerType, parameters []ParsedParameter) error

// ParsedParameter is one parsed parameter of an `on` trigger. Start is
// the index within the trigger at which the parameter starts.
type ParsedParameter struct {
	Expression string
	Start      int
}

// ParseError is a trigger-level parse failure. The caller attaches the
// source span when converting it into a diagnostic.
type ParseError struct {
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Message
}

// ParseNeverTrigger parses a `hydrate never` trigger into the given
// trigger set.
func ParseNeverTrigger(
	param *ml_ast.BlockParameter,
	triggers *DeferredBlockTriggers,
	errors *[]*util.ParseError,
) {
	sourceSpan := param.SourceSpan()
	neverIndex := strings.Index(param.Expression, "never")
	if neverIndex == -1 {
		*errors = append(*errors, util.NewParseError(sourceSpan, `Could not find "never" keyword in expression`))
		return
	}

	neverSourceSpan := util.NewParseSourceSpan(
		sourceSpan.Start.MoveBy(neverIndex),
		sourceSpan.Start.MoveBy(neverIndex+len("never")),
		nil,
		nil,
	)
	prefetchSpan := getPrefetchSpan(param.Expression, sourceSpan)
	hydrateSpan := getHydrateSpan(param.Expression, sourceSpan)

	trackTrigger(
		"never",
		triggers,
		errors,
		NewNeverDeferredTrigger(neverSourceSpan, sourceSpan, prefetchSpan, nil, hydrateSpan),
	)
}

// ParseWhenTrigger parses a `when <expr>` trigger into the given trigger
// set.
func ParseWhenTrigger(
	param *ml_ast.BlockParameter,
	bindingParser BindingParser,
	triggers *DeferredBlockTriggers,
	errors *[]*util.ParseError,
) {
	sourceSpan := param.SourceSpan()
	whenIndex := strings.Index(param.Expression, "when")
	if whenIndex == -1 {
		*errors = append(*errors, util.NewParseError(sourceSpan, `Could not find "when" keyword in expression`))
		return
	}

	whenSourceSpan := util.NewParseSourceSpan(
		sourceSpan.Start.MoveBy(whenIndex),
		sourceSpan.Start.MoveBy(whenIndex+len("when")),
		nil,
		nil,
	)
	prefetchSpan := getPrefetchSpan(param.Expression, sourceSpan)
	hydrateSpan := getHydrateSpan(param.Expression, sourceSpan)

	start := GetTriggerParametersStart(param.Expression, whenIndex+1)
	if start == -1 {
		// The keyword is not followed by an expression.
		*errors = append(*errors, util.NewParseError(sourceSpan, "Unexpected end of expression"))
		return
	}
	parsed := bindingParser.ParseBinding(
		param.Expression[start:],
		sourceSpan,
		sourceSpan.Start.Offset+start,
	)
	trackTrigger(
		"when",
		triggers,
		errors,
		NewBoundDeferredTrigger(parsed.AST, sourceSpan, prefetchSpan, whenSourceSpan, hydrateSpan),
	)
}

// ParseOnTrigger parses an `on <trigger>, <trigger>, ...` parameter into
// the given trigger set.
func ParseOnTrigger(
	param *ml_ast.BlockParameter,
	bindingParser BindingParser,
	triggers *DeferredBlockTriggers,
	errors *[]*util.ParseError,
	placeholder *DeferredBlockPlaceholder,
) {
	sourceSpan := param.SourceSpan()
	onIndex := strings.Index(param.Expression, "on")
	if onIndex == -1 {
		*errors = append(*errors, util.NewParseError(sourceSpan, `Could not find "on" keyword in expression`))
		return
	}

	onSourceSpan := util.NewParseSourceSpan(
		sourceSpan.Start.MoveBy(onIndex),
		sourceSpan.Start.MoveBy(onIndex+len("on")),
		nil,
		nil,
	)
	prefetchSpan := getPrefetchSpan(param.Expression, sourceSpan)
	hydrateSpan := getHydrateSpan(param.Expression, sourceSpan)

	start := GetTriggerParametersStart(param.Expression, onIndex+1)
	if start == -1 {
		*errors = append(*errors, util.NewParseError(sourceSpan, "Unexpected end of expression"))
		return
	}
	isHydrationTrigger := strings.HasPrefix(param.Expression, "hydrate")
	parser := NewOnTriggerParser(
		param.Expression,
		bindingParser,
		start,
		sourceSpan,
		triggers,
		errors,
		func(triggerType OnTriggerType, parameters []ParsedParameter) error {
			if isHydrationTrigger {
				return validateHydrateReferenceBasedTrigger(triggerType, parameters)
			}
			return validatePlainReferenceBasedTrigger(triggerType, parameters)
		},
		isHydrationTrigger,
		prefetchSpan,
		onSourceSpan,
		hydrateSpan,
	)
	parser.Parse()
}

func getPrefetchSpan(expression string, sourceSpan *util.ParseSourceSpan) *util.ParseSourceSpan {
	if !strings.HasPrefix(expression, "prefetch") {
		return nil
	}
	return util.NewParseSourceSpan(sourceSpan.Start, sourceSpan.Start.MoveBy(len("prefetch")), nil, nil)
}

func getHydrateSpan(expression string, sourceSpan *util.ParseSourceSpan) *util.ParseSourceSpan {
	if !strings.HasPrefix(expression, "hydrate") {
		return nil
	}
	return util.NewParseSourceSpan(sourceSpan.Start, sourceSpan.Start.MoveBy(len("hydrate")), nil, nil)
}

// OnTriggerParser parses the comma-separated trigger list of an `on`
// parameter.
type OnTriggerParser struct {
	expression         string
	bindingParser      BindingParser
	start              int
	span               *util.ParseSourceSpan
	triggers           *DeferredBlockTriggers
	errors             *[]*util.ParseError
	validator          ReferenceTriggerValidator
	isHydrationTrigger bool
	prefetchSpan       *util.ParseSourceSpan
	onSourceSpan       *util.ParseSourceSpan
	hydrateSpan        *util.ParseSourceSpan
	index              int
	tokens             []*expression_parser.Token
}

// NewOnTriggerParser creates a new OnTriggerParser over the part of the
// expression that starts at `start`.
func NewOnTriggerParser(
	expression string,
	bindingParser BindingParser,
	start int,
	span *util.ParseSourceSpan,
	triggers *DeferredBlockTriggers,
	errors *[]*util.ParseError,
	validator ReferenceTriggerValidator,
	isHydrationTrigger bool,
	prefetchSpan *util.ParseSourceSpan,
	onSourceSpan *util.ParseSourceSpan,
	hydrateSpan *util.ParseSourceSpan,
) *OnTriggerParser {
	lexer := expression_parser.NewLexer()
	return &OnTriggerParser{
		expression:         expression,
		bindingParser:      bindingParser,
		start:              start,
		span:               span,
		triggers:           triggers,
		errors:             errors,
		validator:          validator,
		isHydrationTrigger: isHydrationTrigger,
		prefetchSpan:       prefetchSpan,
		onSourceSpan:       onSourceSpan,
		hydrateSpan:        hydrateSpan,
		tokens:             lexer.Tokenize(expression[start:]),
	}
}

// Parse walks the token list, consuming one trigger per iteration.
func (p *OnTriggerParser) Parse() {
	for len(p.tokens) > 0 && p.index < len(p.tokens) {
		token := p.token()

		if !token.IsIdentifier() {
			p.unexpectedToken(token)
			break
		}

		// An identifier followed by a comma or the end of the expression
		// cannot have parameters.
		if p.isFollowedByOrLast(chars.COMMA) {
			p.consumeTrigger(token, []ParsedParameter{})
			p.advance()
		} else if p.isFollowedByOrLast(chars.LPAREN) {
			p.advance() // Advance to the opening paren.
			prevErrors := len(*p.errors)
			parameters := p.consumeParameters()
			if len(*p.errors) != prevErrors {
				break
			}
			p.consumeTrigger(token, parameters)
			p.advance() // Advance past the closing paren.
		} else if p.index < len(p.tokens)-1 {
			p.unexpectedToken(p.tokens[p.index+1])
		}

		p.advance()
	}
}

func (p *OnTriggerParser) advance() {
	p.index++
}

func (p *OnTriggerParser) isFollowedByOrLast(char int) bool {
	if p.index == len(p.tokens)-1 {
		return true
	}
	return p.tokens[p.index+1].IsCharacter(char)
}

func (p *OnTriggerParser) token() *expression_parser.Token {
	if p.index >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.index]
}

func (p *OnTriggerParser) consumeTrigger(identifier *expression_parser.Token, parameters []ParsedParameter) {
	triggerNameStartSpan := p.span.Start.MoveBy(
		p.start + identifier.Index - p.tokens[0].Index,
	)
	nameSpan := util.NewParseSourceSpan(
		triggerNameStartSpan,
		triggerNameStartSpan.MoveBy(len(identifier.StrValue)),
		nil,
		nil,
	)
	currentToken := p.token()
	endSpan := triggerNameStartSpan.MoveBy(currentToken.End - identifier.Index)

	// The prefix spans belong to the first trigger of the parameter.
	isFirstTrigger := identifier.Index == 0
	var onSourceSpan *util.ParseSourceSpan
	var prefetchSourceSpan *util.ParseSourceSpan
	var hydrateSourceSpan *util.ParseSourceSpan
	sourceSpanStart := triggerNameStartSpan
	if isFirstTrigger {
		onSourceSpan = p.onSourceSpan
		prefetchSourceSpan = p.prefetchSpan
		hydrateSourceSpan = p.hydrateSpan
		sourceSpanStart = p.span.Start
	}
	sourceSpan := util.NewParseSourceSpan(sourceSpanStart, endSpan, nil, nil)

	triggerName := identifier.StrValue
	var trigger DeferredTriggerNode
	var err error

	switch triggerName {
	case string(OnTriggerTypeIdle):
		trigger, err = createIdleTrigger(
			parameters,
			nameSpan,
			sourceSpan,
			prefetchSourceSpan,
			onSourceSpan,
			hydrateSourceSpan,
		)

	case string(OnTriggerTypeTimer):
		trigger, err = createTimerTrigger(
			parameters,
			nameSpan,
			sourceSpan,
			prefetchSourceSpan,
			onSourceSpan,
			hydrateSourceSpan,
		)

	case string(OnTriggerTypeInteraction):
		trigger, err = createInteractionTrigger(
			parameters,
			nameSpan,
			sourceSpan,
			prefetchSourceSpan,
			onSourceSpan,
			hydrateSourceSpan,
			p.validator,
		)

	case string(OnTriggerTypeImmediate):
		trigger, err = createImmediateTrigger(
			parameters,
			nameSpan,
			sourceSpan,
			prefetchSourceSpan,
			onSourceSpan,
			hydrateSourceSpan,
		)

	case string(OnTriggerTypeHover):
		trigger, err = createHoverTrigger(
			parameters,
			nameSpan,
			sourceSpan,
			prefetchSourceSpan,
			onSourceSpan,
			hydrateSourceSpan,
			p.validator,
		)

	case string(OnTriggerTypeViewport):
		trigger, err = createViewportTrigger(
			p.start,
			p.isHydrationTrigger,
			p.bindingParser,
			parameters,
			nameSpan,
			sourceSpan,
			prefetchSourceSpan,
			onSourceSpan,
			hydrateSourceSpan,
			p.validator,
		)

	default:
		err = &ParseError{Message: `Unrecognized trigger type "` + triggerName + `"`}
	}

	if err != nil {
		p.error(identifier, err.Error())
	} else {
		trackTrigger(triggerName, p.triggers, p.errors, trigger)
	}
}

// consumeParameters consumes a parenthesized, comma-separated parameter
// list, keeping commas inside nested `{}`, `[]` and `()` syntax with
// their parameter.
func (p *OnTriggerParser) consumeParameters() []ParsedParameter {
	parameters := []ParsedParameter{}

	if !p.token().IsCharacter(chars.LPAREN) {
		p.unexpectedToken(p.token())
		return parameters
	}

	p.advance()

	commaDelimStack := []int{}
	var tokens []*expression_parser.Token

	for p.index < len(p.tokens) {
		token := p.token()

		if token.IsCharacter(chars.RPAREN) && len(commaDelimStack) == 0 {
			if len(tokens) > 0 {
				parameters = append(parameters, ParsedParameter{
					Expression: p.tokenRangeText(tokens),
					Start:      tokens[0].Index,
				})
			}
			break
		}

		if token.Type == expression_parser.TokenTypeCharacter {
			if closingChar, ok := commaDelimitedSyntax[int(token.NumValue)]; ok {
				commaDelimStack = append(commaDelimStack, closingChar)
			}
		}

		if len(commaDelimStack) > 0 && token.IsCharacter(commaDelimStack[len(commaDelimStack)-1]) {
			commaDelimStack = commaDelimStack[:len(commaDelimStack)-1]
		}

		// A top-level comma starts a new parameter.
		if len(commaDelimStack) == 0 && token.IsCharacter(chars.COMMA) && len(tokens) > 0 {
			parameters = append(parameters, ParsedParameter{
				Expression: p.tokenRangeText(tokens),
				Start:      tokens[0].Index,
			})
			p.advance()
			tokens = nil
			continue
		}

		tokens = append(tokens, token)
		p.advance()
	}

	if !p.token().IsCharacter(chars.RPAREN) || len(commaDelimStack) > 0 {
		p.error(p.token(), "Unexpected end of expression")
	}

	if p.index < len(p.tokens)-1 && !p.tokens[p.index+1].IsCharacter(chars.COMMA) {
		p.unexpectedToken(p.tokens[p.index+1])
	}

	return parameters
}

// tokenRangeText returns the expression text covered by a token range.
func (p *OnTriggerParser) tokenRangeText(tokens []*expression_parser.Token) string {
	if len(tokens) == 0 {
		return ""
	}
	return p.expression[p.start+tokens[0].Index : p.start+tokens[len(tokens)-1].End]
}

func (p *OnTriggerParser) error(token *expression_parser.Token, message string) {
	newStart := p.span.Start.MoveBy(p.start + token.Index)
	newEnd := newStart.MoveBy(token.End - token.Index)
	*p.errors = append(*p.errors, util.NewParseError(
		util.NewParseSourceSpan(newStart, newEnd, nil, nil),
		message,
	))
}

func (p *OnTriggerParser) unexpectedToken(token *expression_parser.Token) {
	p.error(token, `Unexpected token "`+token.String()+`"`)
}

// trackTrigger stores a trigger in its set, rejecting duplicates of the
// same kind.
func trackTrigger(
	name string,
	allTriggers *DeferredBlockTriggers,
	errors *[]*util.ParseError,
	trigger DeferredTriggerNode,
) {
	if triggerByKey(allTriggers, name) != nil {
		*errors = append(*errors, util.NewParseError(trigger.SourceSpan(), `Duplicate "`+name+`" trigger is not allowed`))
		return
	}

	switch name {
	case "when":
		if t, ok := trigger.(*BoundDeferredTrigger); ok {
			allTriggers.When = t
		}
	case "idle":
		if t, ok := trigger.(*IdleDeferredTrigger); ok {
			allTriggers.Idle = t
		}
	case "immediate":
		if t, ok := trigger.(*ImmediateDeferredTrigger); ok {
			allTriggers.Immediate = t
		}
	case "hover":
		if t, ok := trigger.(*HoverDeferredTrigger); ok {
			allTriggers.Hover = t
		}
	case "timer":
		if t, ok := trigger.(*TimerDeferredTrigger); ok {
			allTriggers.Timer = t
		}
	case "interaction":
		if t, ok := trigger.(*InteractionDeferredTrigger); ok {
			allTriggers.Interaction = t
		}
	case "viewport":
		if t, ok := trigger.(*ViewportDeferredTrigger); ok {
			allTriggers.Viewport = t
		}
	case "never":
		if t, ok := trigger.(*NeverDeferredTrigger); ok {
			allTriggers.Never = t
		}
	}
}

func createIdleTrigger(
	parameters []ParsedParameter,
	nameSpan *util.ParseSourceSpan,
	sourceSpan *util.ParseSourceSpan,
	prefetchSpan *util.ParseSourceSpan,
	onSourceSpan *util.ParseSourceSpan,
	hydrateSpan *util.ParseSourceSpan,
) (DeferredTriggerNode, error) {
	if len(parameters) > 0 {
		return nil, &ParseError{Message: `"` + string(OnTriggerTypeIdle) + `" trigger cannot have parameters`}
	}
	return NewIdleDeferredTrigger(nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan), nil
}

func createTimerTrigger(
	parameters []ParsedParameter,
	nameSpan *util.ParseSourceSpan,
	sourceSpan *util.ParseSourceSpan,
	prefetchSpan *util.ParseSourceSpan,
	onSourceSpan *util.ParseSourceSpan,
	hydrateSpan *util.ParseSourceSpan,
) (DeferredTriggerNode, error) {
	if len(parameters) != 1 {
		return nil, &ParseError{Message: `"` + string(OnTriggerTypeTimer) + `" trigger must have exactly one parameter`}
	}

	delay := ParseDeferredTime(parameters[0].Expression)
	if delay == nil {
		return nil, &ParseError{Message: `Could not parse time value of trigger "` + string(OnTriggerTypeTimer) + `"`}
	}

	return NewTimerDeferredTrigger(*delay, nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan), nil
}

func createImmediateTrigger(
	parameters []ParsedParameter,
	nameSpan *util.ParseSourceSpan,
	sourceSpan *util.ParseSourceSpan,
	prefetchSpan *util.ParseSourceSpan,
	onSourceSpan *util.ParseSourceSpan,
	hydrateSpan *util.ParseSourceSpan,
) (DeferredTriggerNode, error) {
	if len(parameters) > 0 {
		return nil, &ParseError{Message: `"` + string(OnTriggerTypeImmediate) + `" trigger cannot have parameters`}
	}
	return NewImmediateDeferredTrigger(nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan), nil
}

func createHoverTrigger(
	parameters []ParsedParameter,
	nameSpan *util.ParseSourceSpan,
	sourceSpan *util.ParseSourceSpan,
	prefetchSpan *util.ParseSourceSpan,
	onSourceSpan *util.ParseSourceSpan,
	hydrateSpan *util.ParseSourceSpan,
	validator ReferenceTriggerValidator,
) (DeferredTriggerNode, error) {
	if err := validator(OnTriggerTypeHover, parameters); err != nil {
		return nil, err
	}
	var reference *string
	if len(parameters) > 0 {
		ref := parameters[0].Expression
		reference = &ref
	}
	return NewHoverDeferredTrigger(reference, nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan), nil
}

func createInteractionTrigger(
	parameters []ParsedParameter,
	nameSpan *util.ParseSourceSpan,
	sourceSpan *util.ParseSourceSpan,
	prefetchSpan *util.ParseSourceSpan,
	onSourceSpan *util.ParseSourceSpan,
	hydrateSpan *util.ParseSourceSpan,
	validator ReferenceTriggerValidator,
) (DeferredTriggerNode, error) {
	if err := validator(OnTriggerTypeInteraction, parameters); err != nil {
		return nil, err
	}
	var reference *string
	if len(parameters) > 0 {
		ref := parameters[0].Expression
		reference = &ref
	}
	return NewInteractionDeferredTrigger(reference, nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan), nil
}

func createViewportTrigger(
	start int,
	isHydrationTrigger bool,
	bindingParser BindingParser,
	parameters []ParsedParameter,
	nameSpan *util.ParseSourceSpan,
	sourceSpan *util.ParseSourceSpan,
	prefetchSpan *util.ParseSourceSpan,
	onSourceSpan *util.ParseSourceSpan,
	hydrateSpan *util.ParseSourceSpan,
	validator ReferenceTriggerValidator,
) (DeferredTriggerNode, error) {
	if err := validator(OnTriggerTypeViewport, parameters); err != nil {
		return nil, err
	}

	var reference *string
	var options *expression_parser.LiteralMap

	if len(parameters) > 0 && !strings.HasPrefix(parameters[0].Expression, "{") {
		ref := parameters[0].Expression
		reference = &ref
	} else if len(parameters) > 0 {
		parsed := bindingParser.ParseBinding(
			parameters[0].Expression,
			sourceSpan,
			sourceSpan.Start.Offset+start+parameters[0].Start,
		)

		literalMap, ok := parsed.AST.(*expression_parser.LiteralMap)
		if !ok {
			return nil, &ParseError{Message: `Options parameter of the "viewport" trigger must be an object literal`}
		}

		for _, key := range literalMap.Keys {
			if key.Key == "root" {
				return nil, &ParseError{Message: `The "root" option is not supported in the options parameter of the "viewport" trigger`}
			}
		}

		triggerIndex := -1
		for i, key := range literalMap.Keys {
			if key.Key == "trigger" {
				triggerIndex = i
				break
			}
		}

		if triggerIndex == -1 {
			options = literalMap
		} else {
			// A `trigger` option names the trigger element; pull it out of
			// the options.
			value := literalMap.Values[triggerIndex]
			propertyRead, ok := value.(*expression_parser.PropertyRead)
			if !ok {
				return nil, &ParseError{Message: `"trigger" option of the "viewport" trigger must be an identifier`}
			}

			_, isImplicitReceiver := propertyRead.Receiver.(*expression_parser.ImplicitReceiver)
			if !isImplicitReceiver {
				return nil, &ParseError{Message: `"trigger" option of the "viewport" trigger must be an identifier`}
			}

			ref := propertyRead.Name
			reference = &ref

			filteredKeys := []expression_parser.LiteralMapKey{}
			filteredValues := []expression_parser.AST{}
			for i, key := range literalMap.Keys {
				if i != triggerIndex {
					filteredKeys = append(filteredKeys, key)
					filteredValues = append(filteredValues, literalMap.Values[i])
				}
			}
			options = expression_parser.NewLiteralMap(literalMap.Span(), literalMap.SourceSpan(), filteredKeys, filteredValues)
		}
	}

	if isHydrationTrigger && reference != nil {
		return nil, &ParseError{Message: `"viewport" hydration trigger cannot have a "trigger"`}
	}

	if options != nil {
		if dynamicNode := findDynamicNode(options); dynamicNode != nil {
			return nil, &ParseError{
				Message: `Options of the "viewport" trigger must be an object literal containing only literal values, but "` + getTypeName(dynamicNode) + `" was found`,
			}
		}
	}

	return NewViewportDeferredTrigger(reference, options, nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan), nil
}

// validatePlainReferenceBasedTrigger checks a non-hydrate
// reference-based trigger.
func validatePlainReferenceBasedTrigger(triggerType OnTriggerType, parameters []ParsedParameter) error {
	if len(parameters) > 1 {
		return &ParseError{Message: `"` + string(triggerType) + `" trigger can only have zero or one parameters`}
	}
	return nil
}

// validateHydrateReferenceBasedTrigger checks a hydrate trigger. Hydrate
// triggers always target the deferred content itself, so only viewport
// may carry an options parameter.
func validateHydrateReferenceBasedTrigger(triggerType OnTriggerType, parameters []ParsedParameter) error {
	if triggerType == OnTriggerTypeViewport {
		if len(parameters) > 1 {
			return &ParseError{Message: `Hydration trigger "` + string(triggerType) + `" cannot have more than one parameter`}
		}
		return nil
	}

	if len(parameters) > 0 {
		return &ParseError{Message: `Hydration trigger "` + string(triggerType) + `" cannot have parameters`}
	}

	return nil
}

// GetTriggerParametersStart returns the index within an expression at
// which the trigger parameters start, or -1 when there is no separator.
func GetTriggerParametersStart(value string, startPosition int) int {
	hasFoundSeparator := false

	for i := startPosition; i < len(value); i++ {
		if separatorPattern.MatchString(string(value[i])) {
			hasFoundSeparator = true
		} else if hasFoundSeparator {
			return i
		}
	}

	return -1
}

// ParseDeferredTime parses a trigger time expression to milliseconds.
// Returns nil when the value is not a valid time.
func ParseDeferredTime(value string) *int {
	match := timePattern.FindStringSubmatch(value)
	if match == nil {
		return nil
	}

	units := match[1]
	numeric := value
	if units != "" {
		numeric = value[:len(value)-len(units)]
	}

	timeValue, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return nil
	}

	var milliseconds int
	if units == "s" {
		milliseconds = int(timeValue * 1000)
	} else {
		milliseconds = int(timeValue)
	}

	return &milliseconds
}

// findDynamicNode returns the first node of the expression that is not a
// literal, or nil when the whole expression is static.
func findDynamicNode(ast expression_parser.AST) expression_parser.AST {
	switch node := ast.(type) {
	case *expression_parser.ASTWithSource:
		if node.AST == nil {
			return nil
		}
		return findDynamicNode(node.AST)
	case *expression_parser.LiteralPrimitive:
		return nil
	case *expression_parser.LiteralArray:
		for _, expr := range node.Expressions {
			if dynamic := findDynamicNode(expr); dynamic != nil {
				return dynamic
			}
		}
		return nil
	case *expression_parser.LiteralMap:
		for _, value := range node.Values {
			if dynamic := findDynamicNode(value); dynamic != nil {
				return dynamic
			}
		}
		return nil
	default:
		return ast
	}
}

func getTypeName(ast expression_parser.AST) string {
	switch ast.(type) {
	case *expression_parser.PropertyRead:
		return "PropertyRead"
	case *expression_parser.KeyedRead:
		return "KeyedRead"
	case *expression_parser.Call:
		return "Call"
	case *expression_parser.Unary:
		return "Unary"
	case *expression_parser.Binary:
		return "Binary"
	case *expression_parser.Conditional:
		return "Conditional"
	case *expression_parser.EmptyExpr:
		return "EmptyExpr"
	default:
		return "Unknown"
	}
}
