package formatter

import (
	"github.com/mcncl/devkit/internal/encoder"
	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/keycase"
	"github.com/mcncl/devkit/internal/models"
	"github.com/mcncl/devkit/internal/parser"
	"github.com/mcncl/devkit/internal/sorter"
)

// DefaultIndent is the number of spaces used per nesting level
const DefaultIndent = 2

// Options controls how JSON documents are rendered
type Options struct {
	Indent   int
	SortKeys bool
	KeyCase  keycase.Style
	MaxDepth int
}

// DefaultOptions returns two-space indentation without key sorting
func DefaultOptions() Options {
	return Options{
		Indent:   DefaultIndent,
		KeyCase:  keycase.None,
		MaxDepth: parser.DefaultMaxDepth,
	}
}

// Formatter pretty-prints and compresses JSON text
type Formatter struct {
	opts Options
}

// NewFormatter creates a new Formatter instance
func NewFormatter(opts Options) *Formatter {
	return &Formatter{opts: opts}
}

// Format parses text and renders it with the configured indentation and key transforms
func (f *Formatter) Format(text string) (string, error) {
	v, err := f.parse(text)
	if err != nil {
		return "", err
	}
	return string(encoder.MarshalIndent(f.Transform(v), f.opts.Indent)), nil
}

// Compress parses text and renders it on a single line.
// Key transforms still apply, indentation does not.
func (f *Formatter) Compress(text string) (string, error) {
	v, err := f.parse(text)
	if err != nil {
		return "", err
	}
	return encoder.MarshalString(f.Transform(v)), nil
}

// Transform applies key-case conversion and then key sorting, as configured
func (f *Formatter) Transform(v models.Value) models.Value {
	v = keycase.Convert(v, f.opts.KeyCase)
	if f.opts.SortKeys {
		v = sorter.SortKeys(v)
	}
	return v
}

func (f *Formatter) parse(text string) (models.Value, error) {
	v, err := parser.ParseString(text, parser.WithMaxDepth(f.opts.MaxDepth))
	if err != nil {
		if errors.IsParsingError(err) {
			return models.Value{}, err
		}
		return models.Value{}, errors.NewParsingError(parser.Message(err), err)
	}
	return v, nil
}

// Format renders text with the default options
func Format(text string) (string, error) {
	return NewFormatter(DefaultOptions()).Format(text)
}

// Compress renders text on a single line with the default options
func Compress(text string) (string, error) {
	return NewFormatter(DefaultOptions()).Compress(text)
}
