// Package keycase rewrites object keys of a JSON value tree into a naming style.
package keycase

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/models"
)

// Style names a key naming convention
type Style string

const (
	None           Style = "none"
	Snake          Style = "snake"
	Camel          Style = "camel"
	LowerCamel     Style = "lower_camel"
	Kebab          Style = "kebab"
	ScreamingSnake Style = "screaming_snake"
)

// Styles lists every supported style
func Styles() []Style {
	return []Style{None, Snake, Camel, LowerCamel, Kebab, ScreamingSnake}
}

// ParseStyle resolves a style name. Dashes and case are ignored, so "lower-camel" works too.
func ParseStyle(name string) (Style, error) {
	normalized := Style(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	if normalized == "" {
		return None, nil
	}
	for _, s := range Styles() {
		if s == normalized {
			return s, nil
		}
	}
	return None, errors.NewInputError(fmt.Sprintf("unknown key case '%s'", name), errors.ErrUnknownKeyCase)
}

func (s Style) convert(key string) string {
	switch s {
	case Snake:
		return strcase.ToSnake(key)
	case Camel:
		return strcase.ToCamel(key)
	case LowerCamel:
		return strcase.ToLowerCamel(key)
	case Kebab:
		return strcase.ToKebab(key)
	case ScreamingSnake:
		return strcase.ToScreamingSnake(key)
	default:
		return key
	}
}

// Convert returns a copy of v with every object key rewritten in the given style.
// When two keys collapse to the same name the first position is kept and the later value wins.
func Convert(v models.Value, style Style) models.Value {
	if style == None || style == "" {
		return v
	}
	return convert(v, style)
}

func convert(v models.Value, style Style) models.Value {
	switch v.Kind() {
	case models.ArrayKind:
		items := v.Items()
		out := make([]models.Value, len(items))
		for i, item := range items {
			out[i] = convert(item, style)
		}
		return models.Array(out...)
	case models.ObjectKind:
		members := v.Members()
		out := make([]models.Member, 0, len(members))
		for _, m := range members {
			out = append(out, models.M(style.convert(m.Key), convert(m.Value, style)))
		}
		// Keys that collide after renaming are collapsed by models.Object.
		return models.Object(out...)
	default:
		return v
	}
}
