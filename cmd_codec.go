package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mcncl/devkit/internal/codec"
	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/hashing"
)

// Base64Cmd groups the Base64 commands
type Base64Cmd struct {
	Encode   Base64EncodeCmd   `cmd:"" help:"Encode text as Base64."`
	Decode   Base64DecodeCmd   `cmd:"" help:"Decode Base64 into text."`
	Validate Base64ValidateCmd `cmd:"" help:"Check that the input is well-formed Base64."`
	Info     Base64InfoCmd     `cmd:"" help:"Show the decoded size of a Base64 string."`
}

// Base64EncodeCmd encodes text
type Base64EncodeCmd struct {
	Text []string `arg:"" optional:"" help:"Text to encode. Reads stdin when omitted."`
}

// Base64DecodeCmd decodes text
type Base64DecodeCmd struct {
	Text []string `arg:"" optional:"" help:"Base64 to decode. Reads stdin when omitted."`
}

// Base64ValidateCmd validates Base64
type Base64ValidateCmd struct {
	Text []string `arg:"" optional:"" help:"Base64 to validate. Reads stdin when omitted."`
}

// Base64InfoCmd reports Base64 payload size
type Base64InfoCmd struct {
	Text []string `arg:"" optional:"" help:"Base64 to inspect. Reads stdin when omitted."`
	JSON bool     `help:"Print the result as JSON."`
}

// Run encodes the input
func (c *Base64EncodeCmd) Run(ctx *Context) error {
	text, err := ctx.textArgs(c.Text)
	if err != nil {
		return err
	}
	return ctx.writeOutput(codec.EncodeBase64(text))
}

// Run decodes the input
func (c *Base64DecodeCmd) Run(ctx *Context) error {
	text, err := ctx.textArgs(c.Text)
	if err != nil {
		return err
	}
	decoded, err := codec.DecodeBase64(text)
	if err != nil {
		return err
	}
	return ctx.writeOutput(decoded)
}

// Run validates the input
func (c *Base64ValidateCmd) Run(ctx *Context) error {
	text, err := ctx.textArgs(c.Text)
	if err != nil {
		return err
	}
	if result := codec.ValidateBase64(strings.TrimSpace(text)); !result.Valid {
		return errors.NewEncodingError(result.Error, errors.ErrInvalidBase64)
	}
	return ctx.writeOutput("Valid Base64")
}

// Run reports the payload size
func (c *Base64InfoCmd) Run(ctx *Context) error {
	text, err := ctx.textArgs(c.Text)
	if err != nil {
		return err
	}
	info := codec.Base64BytesInfo(strings.TrimSpace(text))
	if c.JSON {
		return ctx.writeJSON(info)
	}
	return ctx.writeFields([][]string{
		{"Valid", fmt.Sprint(info.IsValid)},
		{"Size", fmt.Sprintf("%d bytes", info.Size)},
		{"Human size", info.SizeFormatted},
	})
}

// URLCmd groups the URL commands
type URLCmd struct {
	Encode URLEncodeCmd `cmd:"" help:"Percent-encode text as a URL component."`
	Decode URLDecodeCmd `cmd:"" help:"Decode a percent-encoded URL component."`
	Parse  URLParseCmd  `cmd:"" help:"Split an absolute URL into its parts."`
	Query  URLQueryCmd  `cmd:"" help:"Parse a query string, or build one from key=value pairs."`
}

// URLEncodeCmd encodes components
type URLEncodeCmd struct {
	Text  []string `arg:"" optional:"" help:"Text to encode. Reads stdin when omitted."`
	Lines bool     `help:"Encode each input line separately." short:"l"`
}

// URLDecodeCmd decodes components
type URLDecodeCmd struct {
	Text  []string `arg:"" optional:"" help:"Text to decode. Reads stdin when omitted."`
	Lines bool     `help:"Decode each input line separately, reporting failures in place." short:"l"`
}

// URLParseCmd parses a URL
type URLParseCmd struct {
	URL  string `arg:"" help:"Absolute URL."`
	JSON bool   `help:"Print the result as JSON."`
}

// URLQueryCmd parses or builds query strings
type URLQueryCmd struct {
	Args  []string `arg:"" help:"Query string to parse, or key=value pairs with --build."`
	Build bool     `help:"Build a query string from key=value pairs." short:"b"`
	JSON  bool     `help:"Print parsed parameters as JSON."`
}

// Run encodes the input
func (c *URLEncodeCmd) Run(ctx *Context) error {
	text, err := ctx.textArgs(c.Text)
	if err != nil {
		return err
	}
	if c.Lines {
		return ctx.writeOutput(strings.Join(codec.BatchEncodeURL(splitLines(text)), "\n"))
	}
	return ctx.writeOutput(codec.EncodeURL(text))
}

// Run decodes the input
func (c *URLDecodeCmd) Run(ctx *Context) error {
	text, err := ctx.textArgs(c.Text)
	if err != nil {
		return err
	}
	if c.Lines {
		return ctx.writeOutput(strings.Join(codec.BatchDecodeURL(splitLines(text)), "\n"))
	}
	decoded, err := codec.DecodeURL(text)
	if err != nil {
		return err
	}
	return ctx.writeOutput(decoded)
}

// Run prints the parts of the URL
func (c *URLParseCmd) Run(ctx *Context) error {
	parts, err := codec.ParseURL(c.URL)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.writeJSON(parts)
	}
	return ctx.writeFields([][]string{
		{"Protocol", parts.Protocol},
		{"Hostname", parts.Hostname},
		{"Port", parts.Port},
		{"Pathname", parts.Pathname},
		{"Search", parts.Search},
		{"Hash", parts.Hash},
		{"Origin", parts.Origin},
	})
}

// Run parses or builds a query string
func (c *URLQueryCmd) Run(ctx *Context) error {
	if c.Build {
		params := make(map[string]string, len(c.Args))
		for _, arg := range c.Args {
			key, value, ok := strings.Cut(arg, "=")
			if !ok || key == "" {
				return errors.NewInputError(fmt.Sprintf("'%s' is not a key=value pair", arg), nil)
			}
			params[key] = value
		}
		return ctx.writeOutput(codec.BuildQuery(params))
	}

	params, err := codec.ParseQuery(strings.Join(c.Args, "&"))
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.writeJSON(params)
	}
	rows := make([][]string, 0, len(params))
	for _, key := range codec.SortedKeys(params) {
		rows = append(rows, []string{key, params[key]})
	}
	if len(rows) == 0 {
		return ctx.writeOutput("No parameters")
	}
	return ctx.writeFields(rows)
}

// HashCmd computes digests
type HashCmd struct {
	Text      []string `arg:"" optional:"" help:"Text to hash. Reads stdin when omitted."`
	Algorithm string   `help:"Digest algorithm. Defaults to the configured one." short:"a"`
	File      string   `help:"Hash the contents of a file instead of text." short:"f" type:"path"`
	Lines     bool     `help:"Hash each input line separately." short:"l"`
	Verify    string   `help:"Compare the digest with an expected value, ignoring case."`
	List      bool     `help:"List supported algorithms."`
}

// Run computes the digest
func (c *HashCmd) Run(ctx *Context) error {
	if c.List {
		rows := make([][]string, 0, len(hashing.Algorithms()))
		for _, info := range hashing.Algorithms() {
			rows = append(rows, []string{string(info.Name), fmt.Sprintf("%d bits", info.Bits), info.Description})
		}
		return ctx.writeFields(rows)
	}

	name := c.Algorithm
	if name == "" {
		name = ctx.Config.Hash.Algorithm
	}
	algo, err := hashing.ParseAlgorithm(name)
	if err != nil {
		return err
	}

	var sum string
	switch {
	case c.File != "":
		f, err := os.Open(c.File)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.NewInputError(fmt.Sprintf("file '%s' not found", c.File), errors.ErrFileNotFound)
			}
			return errors.NewInputError(fmt.Sprintf("failed to open file '%s'", c.File), err)
		}
		defer func() { _ = f.Close() }()
		sum, err = hashing.GenerateReader(f, algo)
		if err != nil {
			return err
		}
	case c.Lines:
		text, err := ctx.textArgs(c.Text)
		if err != nil {
			return err
		}
		return ctx.writeOutput(strings.Join(hashing.BatchGenerate(splitLines(text), algo), "\n"))
	default:
		text, err := ctx.textArgs(c.Text)
		if err != nil {
			return err
		}
		sum, err = hashing.Generate(text, algo)
		if err != nil {
			return err
		}
	}

	if c.Verify != "" {
		if algo == hashing.MD5 {
			if result := hashing.ValidateMD5(c.Verify); !result.Valid {
				return errors.NewHashError(result.Error, nil)
			}
		}
		if !hashing.CompareHashes(sum, c.Verify) {
			return errors.NewHashError(fmt.Sprintf("digest mismatch: got %s", sum), nil)
		}
		return ctx.writeOutput(fmt.Sprintf("%s  OK", sum))
	}
	return ctx.writeOutput(sum)
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
