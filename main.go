package main

import (
	"bufio"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"github.com/mcncl/devkit/internal/config"
	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/log"
	"github.com/mcncl/devkit/internal/models"
	"github.com/mcncl/devkit/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Config   string `help:"Path to a config file. Defaults to the nearest .devkit.yml." short:"c" type:"path"`
	Output   string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Debug    bool   `help:"Enable debug logging." short:"d"`
	NoColor  bool   `help:"Disable colored output."`
	MaxDepth int    `help:"Maximum JSON nesting depth. 0 disables the guard, negative uses the configured value." default:"-1"`

	Format   FormatCmd   `cmd:"" help:"Pretty-print a JSON document."`
	Compress CompressCmd `cmd:"" help:"Print a JSON document on a single line."`
	Validate ValidateCmd `cmd:"" help:"Check that the input is a single well-formed JSON document."`
	Sort     SortCmd     `cmd:"" help:"Sort object keys of a JSON document recursively."`
	Diff     DiffCmd     `cmd:"" help:"Compare two JSON documents."`
	Search   SearchCmd   `cmd:"" help:"Find keys and string values containing a term."`
	Keycase  KeycaseCmd  `cmd:"" help:"Rename object keys to a naming style."`
	Base64   Base64Cmd   `cmd:"" name:"base64" help:"Encode, decode and inspect Base64."`
	URL      URLCmd      `cmd:"" name:"url" help:"Percent-encode, decode and inspect URLs."`
	Hash     HashCmd     `cmd:"" help:"Compute message digests."`
	Time     TimeCmd     `cmd:"" help:"Convert timestamps, dates and time zones."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// Context holds the runtime context shared by every command
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *zap.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Output string
}

// Version information
const (
	Version = "0.1.0"
)

// errDifferencesFound makes diff --exit-code exit with status 1 without a message
var errDifferencesFound = stderrors.New("differences found")

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("devkit"),
		kong.Description("Small developer utilities for JSON, encodings, hashes and time"),
		kong.UsageOnError(),
	)

	// Parse the command line arguments
	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	ctx, err := newContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
	defer func() { _ = ctx.Logger.Sync() }()

	if err := kctx.Run(ctx); err != nil {
		if stderrors.Is(err, errDifferencesFound) {
			os.Exit(1)
		}
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: devkit --help\n")
		os.Exit(1)
	}
}

// newContext loads configuration and builds the logger from the global flags
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, os.LookupEnv, config.CLIOverrides{
		MaxDepth: intFlag(CLI.MaxDepth),
		NoColor:  CLI.NoColor,
		Debug:    CLI.Debug,
	})
	if err != nil {
		return nil, err
	}

	logger, err := log.New(cfg.Dev.Debug)
	if err != nil {
		return nil, errors.NewConfigError("failed to initialise logging", err)
	}
	if configPath != "" {
		logger.Debug("loaded config file", zap.String("path", configPath))
	}

	return &Context{
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Logger: logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Output: CLI.Output,
	}, nil
}

// applyFlags layers a command's explicitly set flags over the loaded config
func (ctx *Context) applyFlags(cli config.CLIOverrides) error {
	if err := ctx.Config.ApplyCLI(cli); err != nil {
		return err
	}
	ctx.Logger.Debug("flags applied",
		zap.Int("indent", ctx.Config.JSON.Indent),
		zap.String("key_case", ctx.Config.JSON.KeyCase),
		zap.String("diff_output", ctx.Config.Diff.Output),
	)
	return nil
}

// intFlag treats negative values as "not given"
func intFlag(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}

// boolFlag treats false as "not given"; switches can only turn a setting on
func boolFlag(v bool) *bool {
	if !v {
		return nil
	}
	return &v
}

// stringFlag treats the empty string as "not given"
func stringFlag(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// parserOptions applies the configured depth guard
func (ctx *Context) parserOptions() []parser.Option {
	return []parser.Option{parser.WithMaxDepth(ctx.Config.JSON.MaxDepth)}
}

// parseInput reads a JSON document from file or stdin
func (ctx *Context) parseInput(path string) (models.Value, error) {
	done := log.Stage(ctx.Logger, "parse", zap.String("input", inputName(path)))
	defer done()

	if path != "" {
		return parser.ParseFile(path, ctx.parserOptions()...)
	}
	text, err := ctx.readStdin()
	if err != nil {
		return models.Value{}, err
	}
	return parser.ParseString(text, ctx.parserOptions()...)
}

// readInput returns the raw contents of a file, or stdin when path is empty
func (ctx *Context) readInput(path string) (string, error) {
	if path == "" {
		return ctx.readStdin()
	}
	if strings.TrimSpace(path) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(fmt.Sprintf("file '%s' not found", path), errors.ErrFileNotFound)
		}
		return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", path), err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError(fmt.Sprintf("input file '%s' is empty", path), errors.ErrFileEmpty)
	}
	return string(data), nil
}

// readStdin reads all of stdin. On a terminal the user is prompted to paste
// input and finish with Ctrl+D.
func (ctx *Context) readStdin() (string, error) {
	if f, ok := ctx.Stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return "", errors.NewInputError("failed to access stdin", err)
		}
		if (info.Mode() & os.ModeCharDevice) != 0 {
			return readInteractiveInput(f)
		}
	}

	data, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// readInteractiveInput lets users paste input and signal completion with Ctrl+D (EOF)
func readInteractiveInput(in io.Reader) (string, error) {
	fmt.Fprintln(os.Stderr, "Paste your input below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(in)
	var builder strings.Builder
	for {
		line, err := reader.ReadString('\n')
		builder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	if len(strings.TrimSpace(builder.String())) == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}
	return builder.String(), nil
}

// textArgs joins positional text arguments, falling back to stdin without
// its trailing newline
func (ctx *Context) textArgs(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	text, err := ctx.readStdin()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(text, "\r\n"), nil
}

// writeOutput writes text to the output file or stdout
func (ctx *Context) writeOutput(text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	if ctx.Output != "" {
		if err := os.WriteFile(ctx.Output, []byte(text), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", ctx.Output), err)
		}
		ctx.Logger.Info("output written", zap.String("path", ctx.Output))
		return nil
	}

	if _, err := io.WriteString(ctx.Stdout, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// writeJSON writes a structured result as indented JSON
func (ctx *Context) writeJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewOutputError("failed to encode result", err)
	}
	return ctx.writeOutput(string(data))
}

// writeFields writes label/value rows as a borderless two-column table
func (ctx *Context) writeFields(rows [][]string) error {
	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
	return ctx.writeOutput(b.String())
}

func inputName(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}
