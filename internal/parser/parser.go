package parser

import (
	stderrors "errors" // Standard errors package
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/devkit/internal/errors" // Custom errors package
	"github.com/mcncl/devkit/internal/models"
)

// DefaultMaxDepth is the nesting limit applied when no WithMaxDepth option is given
const DefaultMaxDepth = 512

type options struct {
	maxDepth int
}

// Option configures parsing
type Option func(*options)

// WithMaxDepth limits how deeply objects and arrays may nest. Zero disables the limit.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

func newOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// decoder walks the token stream so object member order survives parsing,
// which map-based decoding would lose.
type decoder struct {
	dec      *json.Decoder
	maxDepth int
}

// Parse converts JSON data from an io.Reader into a Value
func Parse(reader io.Reader, opts ...Option) (models.Value, error) {
	o := newOptions(opts)
	dec := json.NewDecoder(reader)
	dec.UseNumber() // Keep number literals intact

	d := &decoder{dec: dec, maxDepth: o.maxDepth}

	first, err := dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.Value{}, d.wrap(err)
	}

	root, err := d.value(first, 0)
	if err != nil {
		return models.Value{}, d.wrap(err)
	}

	// Only whitespace may follow the root value.
	if _, err := dec.Token(); err != nil {
		if !stderrors.Is(err, io.EOF) {
			return models.Value{}, errors.NewParsingError("invalid trailing data after first JSON value", err)
		}
	} else {
		return models.Value{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}

	return root, nil
}

func (d *decoder) next() (json.Token, error) {
	tok, err := d.dec.Token()
	if stderrors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (d *decoder) value(tok json.Token, depth int) (models.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return d.object(depth + 1)
		case '[':
			return d.array(depth + 1)
		}
		return models.Value{}, &json.SyntaxError{Offset: d.dec.InputOffset()}
	case bool:
		return models.Bool(t), nil
	case json.Number:
		return models.Number(t), nil
	case string:
		return models.String(t), nil
	case nil:
		return models.Null(), nil
	default:
		return models.Value{}, fmt.Errorf("unexpected json token type: %T", t)
	}
}

func (d *decoder) object(depth int) (models.Value, error) {
	if err := d.checkDepth(depth); err != nil {
		return models.Value{}, err
	}

	members := make([]models.Member, 0)
	for {
		tok, err := d.next()
		if err != nil {
			return models.Value{}, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return models.Object(members...), nil
		}
		key, ok := tok.(string)
		if !ok {
			return models.Value{}, fmt.Errorf("object key is %T, not a string", tok)
		}

		valTok, err := d.next()
		if err != nil {
			return models.Value{}, err
		}
		val, err := d.value(valTok, depth)
		if err != nil {
			return models.Value{}, err
		}

		// models.Object collapses repeated keys.
		members = append(members, models.M(key, val))
	}
}

func (d *decoder) array(depth int) (models.Value, error) {
	if err := d.checkDepth(depth); err != nil {
		return models.Value{}, err
	}

	items := make([]models.Value, 0)
	for {
		tok, err := d.next()
		if err != nil {
			return models.Value{}, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == ']' {
			return models.Array(items...), nil
		}
		item, err := d.value(tok, depth)
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, item)
	}
}

func (d *decoder) checkDepth(depth int) error {
	if d.maxDepth > 0 && depth > d.maxDepth {
		return errors.ErrDepthExceeded
	}
	return nil
}

// wrap converts decoder failures into parsing AppErrors
func (d *decoder) wrap(err error) error {
	var syntaxError *json.SyntaxError
	switch {
	case stderrors.Is(err, errors.ErrDepthExceeded):
		return errors.NewParsingError(
			fmt.Sprintf("document nested deeper than %d levels", d.maxDepth),
			errors.ErrDepthExceeded,
		)
	case stderrors.As(err, &syntaxError):
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d: %s", syntaxError.Offset, syntaxError.Error()),
			errors.ErrInvalidJSON,
		)
	case stderrors.Is(err, io.ErrUnexpectedEOF):
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	default:
		return errors.NewParsingError("failed to decode JSON", err)
	}
}

// ParseString parses JSON from a string
func ParseString(jsonString string, opts ...Option) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString), opts...)
}

// ParseBytes parses JSON from a byte slice
func ParseBytes(data []byte, opts ...Option) (models.Value, error) {
	return ParseString(string(data), opts...)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string, opts ...Option) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file, opts...)
}

// Validate reports whether text is a single well-formed JSON document
func Validate(text string, opts ...Option) models.Validation {
	if _, err := ParseString(text, opts...); err != nil {
		return models.Validation{Valid: false, Error: Message(err)}
	}
	return models.Validation{Valid: true}
}

// Message returns the human-readable part of a parse failure
func Message(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Cause returns the error a parse failure wraps, so callers re-wrapping
// the failure with their own message do not repeat Message.
func Cause(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Err
	}
	return err
}
