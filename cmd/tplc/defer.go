package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tplc-go/packages/compiler/expression_parser"
	"tplc-go/packages/compiler/ml_ast"
	"tplc-go/packages/compiler/template_ast"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tplc",
		Short:         "Template compiler front end",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDeferCommand())
	return root
}

func newDeferCommand() *cobra.Command {
	var connected []string

	cmd := &cobra.Command{
		Use:   "defer [trigger parameter]...",
		Short: "Parse a @defer block from its raw parameters",
		Long: `Synthesizes a @defer block from raw trigger parameters and connected
blocks, runs the deferred-block parser over it and prints the resulting
tree. Every diagnostic is reported; the command fails when any exist.

Examples:
  tplc defer "on idle" "prefetch when isVisible()"
  tplc defer "on viewport(trigger)" --connected "placeholder:minimum 500ms"
  tplc defer "hydrate never" --connected placeholder --connected error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefer(cmd, args, connected)
		},
	}

	cmd.Flags().StringArrayVar(&connected, "connected", nil,
		`connected block, as "name" or "name:param;param" (e.g. "loading:after 100ms;minimum 1s")`)

	return cmd
}

func runDefer(cmd *cobra.Command, triggers, connected []string) error {
	builder := ml_ast.NewBlockBuilder("<command line>")
	primary := builder.AddBlock("defer", triggers)

	var connectedBlocks []*ml_ast.Block
	for _, raw := range connected {
		name, params := splitConnected(raw)
		connectedBlocks = append(connectedBlocks, builder.AddBlock(name, params))
	}

	result := template_ast.CreateDeferredBlock(
		primary,
		connectedBlocks,
		&childConverter{},
		expression_parser.NewParser(expression_parser.NewLexer()),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "source: %s\n", builder.Content())
	printer := &deferPrinter{out: out}
	result.Node.Visit(printer)

	if len(result.Errors) > 0 {
		errOut := cmd.ErrOrStderr()
		for _, diagnostic := range result.Errors {
			fmt.Fprintln(errOut, diagnostic.String())
		}
		return fmt.Errorf("defer block has %d diagnostic(s)", len(result.Errors))
	}
	return nil
}

// splitConnected splits "name:param;param" into the block name and its
// parameter list.
func splitConnected(raw string) (string, []string) {
	name, rest, found := strings.Cut(raw, ":")
	if !found || rest == "" {
		return name, nil
	}
	var params []string
	for _, param := range strings.Split(rest, ";") {
		params = append(params, strings.TrimSpace(param))
	}
	return name, params
}

// childConverter maps the synthesized generic children onto typed
// template nodes. Only text children occur here.
type childConverter struct {
	ml_ast.RecursiveVisitor
}

func (c *childConverter) VisitText(text *ml_ast.Text, context interface{}) interface{} {
	return template_ast.NewText(text.Value, text.SourceSpan())
}

// deferPrinter renders the parsed tree as an indented outline.
type deferPrinter struct {
	out    io.Writer
	indent int
}

func (p *deferPrinter) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s%s\n", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *deferPrinter) Visit(node template_ast.Node) interface{} {
	return nil
}

func (p *deferPrinter) VisitText(text *template_ast.Text) interface{} {
	p.printf("text %q", text.Value)
	return nil
}

func (p *deferPrinter) VisitDeferredBlock(deferred *template_ast.DeferredBlock) interface{} {
	p.printf("@defer")
	p.indent++
	deferred.VisitAll(p)
	p.indent--
	return nil
}

func (p *deferPrinter) VisitDeferredBlockPlaceholder(block *template_ast.DeferredBlockPlaceholder) interface{} {
	p.printf("@placeholder (minimum %s)", formatTime(block.MinimumTime))
	p.visitChildren(block.Children)
	return nil
}

func (p *deferPrinter) VisitDeferredBlockLoading(block *template_ast.DeferredBlockLoading) interface{} {
	p.printf("@loading (after %s, minimum %s)", formatTime(block.AfterTime), formatTime(block.MinimumTime))
	p.visitChildren(block.Children)
	return nil
}

func (p *deferPrinter) VisitDeferredBlockError(block *template_ast.DeferredBlockError) interface{} {
	p.printf("@error")
	p.visitChildren(block.Children)
	return nil
}

func (p *deferPrinter) VisitDeferredTrigger(trigger template_ast.DeferredTriggerNode) interface{} {
	switch t := trigger.(type) {
	case *template_ast.BoundDeferredTrigger:
		p.printf("%swhen <expr>", qualifier(t.DeferredTrigger))
	case *template_ast.IdleDeferredTrigger:
		p.printf("%son idle", qualifier(t.DeferredTrigger))
	case *template_ast.ImmediateDeferredTrigger:
		p.printf("%son immediate", qualifier(t.DeferredTrigger))
	case *template_ast.TimerDeferredTrigger:
		p.printf("%son timer(%dms)", qualifier(t.DeferredTrigger), t.Delay)
	case *template_ast.HoverDeferredTrigger:
		p.printf("%son hover(%s)", qualifier(t.DeferredTrigger), formatReference(t.Reference))
	case *template_ast.InteractionDeferredTrigger:
		p.printf("%son interaction(%s)", qualifier(t.DeferredTrigger), formatReference(t.Reference))
	case *template_ast.ViewportDeferredTrigger:
		options := ""
		if t.Options != nil {
			options = " +options"
		}
		p.printf("%son viewport(%s)%s", qualifier(t.DeferredTrigger), formatReference(t.Reference), options)
	case *template_ast.NeverDeferredTrigger:
		p.printf("hydrate never")
	default:
		p.printf("trigger %s", trigger.SourceSpan().String())
	}
	return nil
}

func (p *deferPrinter) visitChildren(children []template_ast.Node) {
	p.indent++
	template_ast.VisitAll(p, children)
	p.indent--
}

func qualifier(trigger *template_ast.DeferredTrigger) string {
	switch {
	case trigger.PrefetchSpan != nil:
		return "prefetch "
	case trigger.HydrateSpan != nil:
		return "hydrate "
	default:
		return ""
	}
}

func formatTime(ms *int) string {
	if ms == nil {
		return "-"
	}
	return fmt.Sprintf("%dms", *ms)
}

func formatReference(reference *string) string {
	if reference == nil {
		return ""
	}
	return *reference
}
