// Package template_ast defines the typed template AST for deferred
// rendering constructs and the parser that assembles it from the generic
// block tree produced by the tokenizer.
package template_ast

import (
	"tplc-go/packages/compiler/expression_parser"
	"tplc-go/packages/compiler/util"
)

// Node is a typed template AST node.
type Node interface {
	SourceSpan() *util.ParseSourceSpan
	Visit(visitor Visitor) interface{}
}

// Visitor visits typed template nodes.
type Visitor interface {
	// Visit, when it returns a non-nil value, short-circuits the
	// node-specific visit method in VisitAll.
	Visit(node Node) interface{}
	VisitText(text *Text) interface{}
	VisitDeferredBlock(deferred *DeferredBlock) interface{}
	VisitDeferredBlockPlaceholder(block *DeferredBlockPlaceholder) interface{}
	VisitDeferredBlockLoading(block *DeferredBlockLoading) interface{}
	VisitDeferredBlockError(block *DeferredBlockError) interface{}
	VisitDeferredTrigger(trigger DeferredTriggerNode) interface{}
}

// VisitAll visits every node and returns the non-nil results in order.
func VisitAll(visitor Visitor, nodes []Node) []interface{} {
	var result []interface{}
	for _, node := range nodes {
		nodeResult := visitor.Visit(node)
		if nodeResult == nil {
			nodeResult = node.Visit(visitor)
		}
		if nodeResult != nil {
			result = append(result, nodeResult)
		}
	}
	return result
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
func (t *Text) Visit(visitor Visitor) interface{} {
	return visitor.VisitText(t)
}

// DeferredTriggerNode is implemented by every deferred trigger node.
type DeferredTriggerNode interface {
	Node
	trigger() *DeferredTrigger
}

// DeferredTrigger is the common part of every deferred trigger. The
// prefix spans record where the `prefetch`/`hydrate` qualifiers and the
// `when`/`on` keyword appeared; they are nil when the trigger was not
// written with that prefix.
type DeferredTrigger struct {
	NameSpan           *util.ParseSourceSpan
	sourceSpan         *util.ParseSourceSpan
	PrefetchSpan       *util.ParseSourceSpan
	WhenOrOnSourceSpan *util.ParseSourceSpan
	HydrateSpan        *util.ParseSourceSpan
}

// NewDeferredTrigger creates a new DeferredTrigger.
func NewDeferredTrigger(nameSpan, sourceSpan, prefetchSpan, whenOrOnSourceSpan, hydrateSpan *util.ParseSourceSpan) *DeferredTrigger {
	return &DeferredTrigger{
		NameSpan:           nameSpan,
		sourceSpan:         sourceSpan,
		PrefetchSpan:       prefetchSpan,
		WhenOrOnSourceSpan: whenOrOnSourceSpan,
		HydrateSpan:        hydrateSpan,
	}
}

// SourceSpan returns the source span.
func (dt *DeferredTrigger) SourceSpan() *util.ParseSourceSpan {
	return dt.sourceSpan
}

func (dt *DeferredTrigger) trigger() *DeferredTrigger {
	return dt
}

// Visit implements the Node interface.
func (dt *DeferredTrigger) Visit(visitor Visitor) interface{} {
	return visitor.VisitDeferredTrigger(dt)
}

// BoundDeferredTrigger is a `when <expr>` trigger.
type BoundDeferredTrigger struct {
	*DeferredTrigger
	Value expression_parser.AST
}

// NewBoundDeferredTrigger creates a new BoundDeferredTrigger.
func NewBoundDeferredTrigger(value expression_parser.AST, sourceSpan, prefetchSpan, whenSourceSpan, hydrateSpan *util.ParseSourceSpan) *BoundDeferredTrigger {
	return &BoundDeferredTrigger{
		// nameSpan is nil: `when` triggers carry no trigger name.
		DeferredTrigger: NewDeferredTrigger(nil, sourceSpan, prefetchSpan, whenSourceSpan, hydrateSpan),
		Value:           value,
	}
}

// IdleDeferredTrigger is an `on idle` trigger.
type IdleDeferredTrigger struct {
	*DeferredTrigger
}

// NewIdleDeferredTrigger creates a new IdleDeferredTrigger.
func NewIdleDeferredTrigger(nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan *util.ParseSourceSpan) *IdleDeferredTrigger {
	return &IdleDeferredTrigger{
		DeferredTrigger: NewDeferredTrigger(nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan),
	}
}

// ImmediateDeferredTrigger is an `on immediate` trigger.
type ImmediateDeferredTrigger struct {
	*DeferredTrigger
}

// NewImmediateDeferredTrigger creates a new ImmediateDeferredTrigger.
func NewImmediateDeferredTrigger(nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan *util.ParseSourceSpan) *ImmediateDeferredTrigger {
	return &ImmediateDeferredTrigger{
		DeferredTrigger: NewDeferredTrigger(nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan),
	}
}

// NeverDeferredTrigger is a `hydrate never` trigger.
type NeverDeferredTrigger struct {
	*DeferredTrigger
}

// NewNeverDeferredTrigger creates a new NeverDeferredTrigger.
func NewNeverDeferredTrigger(nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan *util.ParseSourceSpan) *NeverDeferredTrigger {
	return &NeverDeferredTrigger{
		DeferredTrigger: NewDeferredTrigger(nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan),
	}
}

// HoverDeferredTrigger is an `on hover(<ref>?)` trigger.
type HoverDeferredTrigger struct {
	*DeferredTrigger
	Reference *string
}

// NewHoverDeferredTrigger creates a new HoverDeferredTrigger.
func NewHoverDeferredTrigger(reference *string, nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan *util.ParseSourceSpan) *HoverDeferredTrigger {
	return &HoverDeferredTrigger{
		DeferredTrigger: NewDeferredTrigger(nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan),
		Reference:       reference,
	}
}

// TimerDeferredTrigger is an `on timer(<delay>)` trigger. Delay is in
// milliseconds.
type TimerDeferredTrigger struct {
	*DeferredTrigger
	Delay int
}

// NewTimerDeferredTrigger creates a new TimerDeferredTrigger.
func NewTimerDeferredTrigger(delay int, nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan *util.ParseSourceSpan) *TimerDeferredTrigger {
	return &TimerDeferredTrigger{
		DeferredTrigger: NewDeferredTrigger(nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan),
		Delay:           delay,
	}
}

// InteractionDeferredTrigger is an `on interaction(<ref>?)` trigger.
type InteractionDeferredTrigger struct {
	*DeferredTrigger
	Reference *string
}

// NewInteractionDeferredTrigger creates a new InteractionDeferredTrigger.
func NewInteractionDeferredTrigger(reference *string, nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan *util.ParseSourceSpan) *InteractionDeferredTrigger {
	return &InteractionDeferredTrigger{
		DeferredTrigger: NewDeferredTrigger(nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan),
		Reference:       reference,
	}
}

// ViewportDeferredTrigger is an `on viewport(<ref>|<options>?)` trigger.
type ViewportDeferredTrigger struct {
	*DeferredTrigger
	Reference *string
	Options   *expression_parser.LiteralMap
}

// NewViewportDeferredTrigger creates a new ViewportDeferredTrigger.
func NewViewportDeferredTrigger(reference *string, options *expression_parser.LiteralMap, nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan *util.ParseSourceSpan) *ViewportDeferredTrigger {
	return &ViewportDeferredTrigger{
		DeferredTrigger: NewDeferredTrigger(nameSpan, sourceSpan, prefetchSpan, onSourceSpan, hydrateSpan),
		Reference:       reference,
		Options:         options,
	}
}

// DeferredBlockTriggers is one trigger set. Each trigger kind can appear
// at most once per set; trackTrigger enforces the uniqueness.
type DeferredBlockTriggers struct {
	When        *BoundDeferredTrigger
	Idle        *IdleDeferredTrigger
	Immediate   *ImmediateDeferredTrigger
	Hover       *HoverDeferredTrigger
	Timer       *TimerDeferredTrigger
	Interaction *InteractionDeferredTrigger
	Viewport    *ViewportDeferredTrigger
	Never       *NeverDeferredTrigger
}

// BlockNode is the common part of block nodes.
type BlockNode struct {
	NameSpan        *util.ParseSourceSpan
	sourceSpan      *util.ParseSourceSpan
	StartSourceSpan *util.ParseSourceSpan
	EndSourceSpan   *util.ParseSourceSpan
}

// NewBlockNode creates a new BlockNode.
func NewBlockNode(nameSpan, sourceSpan, startSourceSpan, endSourceSpan *util.ParseSourceSpan) *BlockNode {
	return &BlockNode{
		NameSpan:        nameSpan,
		sourceSpan:      sourceSpan,
		StartSourceSpan: startSourceSpan,
		EndSourceSpan:   endSourceSpan,
	}
}

// SourceSpan returns the source span.
func (bn *BlockNode) SourceSpan() *util.ParseSourceSpan {
	return bn.sourceSpan
}

// DeferredBlockPlaceholder is the `@placeholder` connected block.
// MinimumTime is in milliseconds, nil when not specified.
type DeferredBlockPlaceholder struct {
	*BlockNode
	Children    []Node
	MinimumTime *int
}

// NewDeferredBlockPlaceholder creates a new DeferredBlockPlaceholder.
func NewDeferredBlockPlaceholder(children []Node, minimumTime *int, nameSpan, sourceSpan, startSourceSpan, endSourceSpan *util.ParseSourceSpan) *DeferredBlockPlaceholder {
	return &DeferredBlockPlaceholder{
		BlockNode:   NewBlockNode(nameSpan, sourceSpan, startSourceSpan, endSourceSpan),
		Children:    children,
		MinimumTime: minimumTime,
	}
}

// Visit implements the Node interface.
func (dbp *DeferredBlockPlaceholder) Visit(visitor Visitor) interface{} {
	return visitor.VisitDeferredBlockPlaceholder(dbp)
}

// DeferredBlockLoading is the `@loading` connected block. AfterTime and
// MinimumTime are in milliseconds, nil when not specified.
type DeferredBlockLoading struct {
	*BlockNode
	Children    []Node
	AfterTime   *int
	MinimumTime *int
}

// NewDeferredBlockLoading creates a new DeferredBlockLoading.
func NewDeferredBlockLoading(children []Node, afterTime, minimumTime *int, nameSpan, sourceSpan, startSourceSpan, endSourceSpan *util.ParseSourceSpan) *DeferredBlockLoading {
	return &DeferredBlockLoading{
		BlockNode:   NewBlockNode(nameSpan, sourceSpan, startSourceSpan, endSourceSpan),
		Children:    children,
		AfterTime:   afterTime,
		MinimumTime: minimumTime,
	}
}

// Visit implements the Node interface.
func (dbl *DeferredBlockLoading) Visit(visitor Visitor) interface{} {
	return visitor.VisitDeferredBlockLoading(dbl)
}

// DeferredBlockError is the `@error` connected block. It never carries
// parameters.
type DeferredBlockError struct {
	*BlockNode
	Children []Node
}

// NewDeferredBlockError creates a new DeferredBlockError.
func NewDeferredBlockError(children []Node, nameSpan, sourceSpan, startSourceSpan, endSourceSpan *util.ParseSourceSpan) *DeferredBlockError {
	return &DeferredBlockError{
		BlockNode: NewBlockNode(nameSpan, sourceSpan, startSourceSpan, endSourceSpan),
		Children:  children,
	}
}

// Visit implements the Node interface.
func (dbe *DeferredBlockError) Visit(visitor Visitor) interface{} {
	return visitor.VisitDeferredBlockError(dbe)
}

// DeferredBlock is a parsed `@defer` block together with its connected
// blocks and trigger sets. MainBlockSpan covers the primary block only,
// while the source span stretches over the connected blocks as well.
type DeferredBlock struct {
	*BlockNode
	Children                []Node
	Triggers                *DeferredBlockTriggers
	PrefetchTriggers        *DeferredBlockTriggers
	HydrateTriggers         *DeferredBlockTriggers
	Placeholder             *DeferredBlockPlaceholder
	Loading                 *DeferredBlockLoading
	Error                   *DeferredBlockError
	MainBlockSpan           *util.ParseSourceSpan
	definedTriggers         []string
	definedPrefetchTriggers []string
	definedHydrateTriggers  []string
}

// NewDeferredBlock creates a new DeferredBlock.
func NewDeferredBlock(
	children []Node,
	triggers *DeferredBlockTriggers,
	prefetchTriggers *DeferredBlockTriggers,
	hydrateTriggers *DeferredBlockTriggers,
	placeholder *DeferredBlockPlaceholder,
	loading *DeferredBlockLoading,
	errorBlock *DeferredBlockError,
	nameSpan *util.ParseSourceSpan,
	sourceSpan *util.ParseSourceSpan,
	mainBlockSpan *util.ParseSourceSpan,
	startSourceSpan *util.ParseSourceSpan,
	endSourceSpan *util.ParseSourceSpan,
) *DeferredBlock {
	return &DeferredBlock{
		BlockNode:        NewBlockNode(nameSpan, sourceSpan, startSourceSpan, endSourceSpan),
		Children:         children,
		Triggers:         triggers,
		PrefetchTriggers: prefetchTriggers,
		HydrateTriggers:  hydrateTriggers,
		Placeholder:      placeholder,
		Loading:          loading,
		Error:            errorBlock,
		MainBlockSpan:    mainBlockSpan,
		// Cache the defined keys for stable traversal order.
		definedTriggers:         definedTriggerKeys(triggers),
		definedPrefetchTriggers: definedTriggerKeys(prefetchTriggers),
		definedHydrateTriggers:  definedTriggerKeys(hydrateTriggers),
	}
}

// Visit implements the Node interface.
func (db *DeferredBlock) Visit(visitor Visitor) interface{} {
	return visitor.VisitDeferredBlock(db)
}

// VisitAll walks the block's triggers (hydrate, then immediate, then
// prefetch), its children and its connected blocks.
func (db *DeferredBlock) VisitAll(visitor Visitor) {
	db.visitTriggers(db.definedHydrateTriggers, db.HydrateTriggers, visitor)
	db.visitTriggers(db.definedTriggers, db.Triggers, visitor)
	db.visitTriggers(db.definedPrefetchTriggers, db.PrefetchTriggers, visitor)
	VisitAll(visitor, db.Children)

	var remaining []Node
	if db.Placeholder != nil {
		remaining = append(remaining, db.Placeholder)
	}
	if db.Loading != nil {
		remaining = append(remaining, db.Loading)
	}
	if db.Error != nil {
		remaining = append(remaining, db.Error)
	}
	VisitAll(visitor, remaining)
}

func (db *DeferredBlock) visitTriggers(keys []string, triggers *DeferredBlockTriggers, visitor Visitor) {
	if triggers == nil {
		return
	}
	for _, key := range keys {
		if trigger := triggerByKey(triggers, key); trigger != nil {
			visitor.VisitDeferredTrigger(trigger)
		}
	}
}

func definedTriggerKeys(triggers *DeferredBlockTriggers) []string {
	var keys []string
	if triggers == nil {
		return keys
	}
	if triggers.When != nil {
		keys = append(keys, "when")
	}
	if triggers.Idle != nil {
		keys = append(keys, "idle")
	}
	if triggers.Immediate != nil {
		keys = append(keys, "immediate")
	}
	if triggers.Hover != nil {
		keys = append(keys, "hover")
	}
	if triggers.Timer != nil {
		keys = append(keys, "timer")
	}
	if triggers.Interaction != nil {
		keys = append(keys, "interaction")
	}
	if triggers.Viewport != nil {
		keys = append(keys, "viewport")
	}
	if triggers.Never != nil {
		keys = append(keys, "never")
	}
	return keys
}

func triggerByKey(triggers *DeferredBlockTriggers, key string) DeferredTriggerNode {
	switch key {
	case "when":
		if triggers.When != nil {
			return triggers.When
		}
	case "idle":
		if triggers.Idle != nil {
			return triggers.Idle
		}
	case "immediate":
		if triggers.Immediate != nil {
			return triggers.Immediate
		}
	case "hover":
		if triggers.Hover != nil {
			return triggers.Hover
		}
	case "timer":
		if triggers.Timer != nil {
			return triggers.Timer
		}
	case "interaction":
		if triggers.Interaction != nil {
			return triggers.Interaction
		}
	case "viewport":
		if triggers.Viewport != nil {
			return triggers.Viewport
		}
	case "never":
		if triggers.Never != nil {
			return triggers.Never
		}
	}
	return nil
}
