package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/mcncl/devkit/internal/config"
	"github.com/mcncl/devkit/internal/diff"
	"github.com/mcncl/devkit/internal/encoder"
	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/formatter"
	"github.com/mcncl/devkit/internal/keycase"
	"github.com/mcncl/devkit/internal/log"
	"github.com/mcncl/devkit/internal/models"
	"github.com/mcncl/devkit/internal/parser"
	"github.com/mcncl/devkit/internal/report"
	"github.com/mcncl/devkit/internal/search"
	"github.com/mcncl/devkit/internal/sorter"
)

// FormatCmd pretty-prints JSON
type FormatCmd struct {
	Input   string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Indent  int    `help:"Spaces per indentation level. Negative uses the configured value." default:"-1"`
	Sort    bool   `help:"Sort object keys." short:"s"`
	KeyCase string `help:"Rename keys to a naming style (none, snake, camel, lower_camel, kebab, screaming_snake)." short:"k" placeholder:"STYLE"`
}

// CompressCmd minifies JSON
type CompressCmd struct {
	Input string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
}

// ValidateCmd checks JSON syntax
type ValidateCmd struct {
	Input string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
}

// SortCmd sorts object keys
type SortCmd struct {
	Input  string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Indent int    `help:"Spaces per indentation level. Negative uses the configured value." default:"-1"`
}

// DiffCmd compares two JSON documents
type DiffCmd struct {
	Left     string `arg:"" help:"Original JSON file." type:"path"`
	Right    string `arg:"" help:"Changed JSON file." type:"path"`
	Format   string `help:"Output format: text, table or json." short:"f"`
	Sort     bool   `help:"Sort keys of both documents first, ignoring member order." short:"s"`
	ExitCode bool   `help:"Exit with status 1 when the documents differ."`
	Width    int    `help:"Truncate value previews to N characters. 0 disables truncation, negative uses the default." default:"-1" short:"w"`
}

// SearchCmd finds keys and string values
type SearchCmd struct {
	Term   string `arg:"" help:"Case-insensitive term to look for."`
	Input  string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Format string `help:"Output format: text, table or json." short:"f"`
	Limit  int    `help:"Maximum number of hits to show. 0 shows all, negative uses the configured value." default:"-1" short:"n"`
	Width  int    `help:"Truncate value previews to N characters. 0 disables truncation, negative uses the default." default:"-1" short:"w"`
}

// KeycaseCmd renames object keys
type KeycaseCmd struct {
	Style  string `arg:"" help:"Target style: none, snake, camel, lower_camel, kebab or screaming_snake."`
	Input  string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Indent int    `help:"Spaces per indentation level. Negative uses the configured value." default:"-1"`
}

// useColor reports whether output is a colour-capable terminal and colour is enabled
func (ctx *Context) useColor() bool {
	return ctx.Config.Diff.Color && ctx.Output == "" && !color.NoColor
}

// renderer builds a report renderer honouring the --width flag
func (ctx *Context) renderer(w io.Writer, width int) *report.Renderer {
	r := report.NewRenderer(w, ctx.useColor())
	if width >= 0 {
		r.WithMaxWidth(width)
	}
	return r
}

// formatterOptions reads formatter settings from the resolved config
func (ctx *Context) formatterOptions() (formatter.Options, error) {
	opts := formatter.DefaultOptions()
	opts.Indent = ctx.Config.JSON.Indent
	opts.SortKeys = ctx.Config.JSON.SortKeys
	opts.MaxDepth = ctx.Config.JSON.MaxDepth

	style, err := keycase.ParseStyle(ctx.Config.JSON.KeyCase)
	if err != nil {
		return opts, err
	}
	opts.KeyCase = style
	return opts, nil
}

// Run formats the input document
func (c *FormatCmd) Run(ctx *Context) error {
	if err := ctx.applyFlags(config.CLIOverrides{
		Indent:   intFlag(c.Indent),
		SortKeys: boolFlag(c.Sort),
		KeyCase:  stringFlag(c.KeyCase),
	}); err != nil {
		return err
	}
	opts, err := ctx.formatterOptions()
	if err != nil {
		return err
	}
	text, err := ctx.readInput(c.Input)
	if err != nil {
		return err
	}
	out, err := formatter.NewFormatter(opts).Format(text)
	if err != nil {
		return err
	}
	return ctx.writeOutput(out)
}

// Run compresses the input document
func (c *CompressCmd) Run(ctx *Context) error {
	opts, err := ctx.formatterOptions()
	if err != nil {
		return err
	}
	text, err := ctx.readInput(c.Input)
	if err != nil {
		return err
	}
	out, err := formatter.NewFormatter(opts).Compress(text)
	if err != nil {
		return err
	}
	return ctx.writeOutput(out)
}

// Run validates the input document
func (c *ValidateCmd) Run(ctx *Context) error {
	text, err := ctx.readInput(c.Input)
	if err != nil {
		return err
	}
	result := parser.Validate(text, ctx.parserOptions()...)
	if !result.Valid {
		return errors.NewParsingError(result.Error, errors.ErrInvalidJSON)
	}
	return ctx.writeOutput("Valid JSON")
}

// Run sorts the keys of the input document
func (c *SortCmd) Run(ctx *Context) error {
	if err := ctx.applyFlags(config.CLIOverrides{Indent: intFlag(c.Indent)}); err != nil {
		return err
	}
	v, err := ctx.parseInput(c.Input)
	if err != nil {
		return err
	}
	return ctx.writeOutput(string(encoder.MarshalIndent(sorter.SortKeys(v), ctx.Config.JSON.Indent)))
}

// Run compares the two documents
func (c *DiffCmd) Run(ctx *Context) error {
	if err := ctx.applyFlags(config.CLIOverrides{
		Output:    stringFlag(c.Format),
		SortFirst: boolFlag(c.Sort),
	}); err != nil {
		return err
	}
	leftText, err := ctx.readInput(c.Left)
	if err != nil {
		return err
	}
	rightText, err := ctx.readInput(c.Right)
	if err != nil {
		return err
	}

	done := log.Stage(ctx.Logger, "compare", zap.String("left", c.Left), zap.String("right", c.Right))
	result, err := compareDocuments(leftText, rightText, ctx.Config.Diff.SortFirst, ctx.parserOptions()...)
	done()
	if err != nil {
		return err
	}
	ctx.Logger.Debug("comparison finished", zap.Int("differences", len(result.Differences)))

	var b strings.Builder
	if err := ctx.renderer(&b, c.Width).Differences(result, ctx.Config.Diff.Output); err != nil {
		return err
	}
	if err := ctx.writeOutput(b.String()); err != nil {
		return err
	}

	if c.ExitCode && !result.IsEqual {
		return errDifferencesFound
	}
	return nil
}

// compareDocuments compares two texts, key-sorting both sides first when asked
func compareDocuments(leftText, rightText string, sortFirst bool, opts ...parser.Option) (models.CompareResult, error) {
	if !sortFirst {
		return diff.CompareText(leftText, rightText, opts...)
	}

	left, right, err := diff.ParsePair(leftText, rightText, opts...)
	if err != nil {
		return models.CompareResult{}, err
	}
	return diff.Compare(sorter.SortKeys(left), sorter.SortKeys(right)), nil
}

// Run searches the input document
func (c *SearchCmd) Run(ctx *Context) error {
	if err := ctx.applyFlags(config.CLIOverrides{
		Output:     stringFlag(c.Format),
		MaxResults: intFlag(c.Limit),
	}); err != nil {
		return err
	}
	v, err := ctx.parseInput(c.Input)
	if err != nil {
		return err
	}

	hits := search.Search(v, c.Term)
	ctx.Logger.Debug("search finished", zap.String("term", c.Term), zap.Int("hits", len(hits)))

	if limit := ctx.Config.Search.MaxResults; limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	var b strings.Builder
	if err := ctx.renderer(&b, c.Width).Hits(hits, ctx.Config.Search.Output); err != nil {
		return err
	}
	return ctx.writeOutput(b.String())
}

// Run renames the keys of the input document
func (c *KeycaseCmd) Run(ctx *Context) error {
	style, err := keycase.ParseStyle(c.Style)
	if err != nil {
		return err
	}
	if err := ctx.applyFlags(config.CLIOverrides{Indent: intFlag(c.Indent)}); err != nil {
		return err
	}
	v, err := ctx.parseInput(c.Input)
	if err != nil {
		return err
	}
	converted := keycase.Convert(v, style)
	ctx.Logger.Debug("keys converted", zap.String("style", fmt.Sprint(style)))
	return ctx.writeOutput(string(encoder.MarshalIndent(converted, ctx.Config.JSON.Indent)))
}
