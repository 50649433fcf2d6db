// Package report renders comparison results and search hits for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/mcncl/devkit/internal/encoder"
	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/models"
)

// Output formats
const (
	Text  = "text"
	Table = "table"
	JSON  = "json"
)

// RootLabel is shown in place of the empty root path
const RootLabel = "(root)"

// DefaultMaxWidth caps value previews in text and table output
const DefaultMaxWidth = 60

// Renderer writes results in one of the output formats
type Renderer struct {
	w        io.Writer
	maxWidth int
	added    *color.Color
	removed  *color.Color
	modified *color.Color
	path     *color.Color
}

// NewRenderer creates a renderer writing to w. Colors are only used when
// useColor is set.
func NewRenderer(w io.Writer, useColor bool) *Renderer {
	r := &Renderer{
		w:        w,
		maxWidth: DefaultMaxWidth,
		added:    color.New(color.FgGreen),
		removed:  color.New(color.FgRed),
		modified: color.New(color.FgYellow),
		path:     color.New(color.Bold),
	}
	for _, c := range []*color.Color{r.added, r.removed, r.modified, r.path} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// WithMaxWidth sets the preview width. 0 disables truncation.
func (r *Renderer) WithMaxWidth(width int) *Renderer {
	r.maxWidth = width
	return r
}

// Differences renders a comparison result
func (r *Renderer) Differences(result models.CompareResult, format string) error {
	switch format {
	case Text, "":
		return r.differencesText(result)
	case Table:
		return r.differencesTable(result)
	case JSON:
		return r.write(encoder.MarshalIndent(DifferencesValue(result), 2))
	}
	return unknownFormat(format)
}

// Hits renders search hits
func (r *Renderer) Hits(hits []models.SearchHit, format string) error {
	switch format {
	case Text, "":
		return r.hitsText(hits)
	case Table:
		return r.hitsTable(hits)
	case JSON:
		return r.write(encoder.MarshalIndent(HitsValue(hits), 2))
	}
	return unknownFormat(format)
}

func (r *Renderer) differencesText(result models.CompareResult) error {
	var b strings.Builder
	if result.IsEqual {
		b.WriteString("No differences found\n")
		return r.write([]byte(b.String()))
	}

	for _, d := range result.Differences {
		path := r.path.Sprint(PathLabel(d.Path))
		switch d.Kind {
		case models.Added:
			b.WriteString(r.added.Sprintf("+ %s: %s", path, r.preview(*d.NewValue)))
		case models.Removed:
			b.WriteString(r.removed.Sprintf("- %s: %s", path, r.preview(*d.OldValue)))
		case models.Modified:
			b.WriteString(r.modified.Sprintf("~ %s: %s -> %s", path, r.preview(*d.OldValue), r.preview(*d.NewValue)))
		}
		b.WriteByte('\n')
	}
	b.WriteString(Summary(result))
	b.WriteByte('\n')
	return r.write([]byte(b.String()))
}

func (r *Renderer) differencesTable(result models.CompareResult) error {
	if result.IsEqual {
		return r.write([]byte("No differences found\n"))
	}

	table := tablewriter.NewWriter(r.w)
	table.SetHeader([]string{"PATH", "CHANGE", "OLD", "NEW"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, d := range result.Differences {
		oldText, newText := "", ""
		if d.OldValue != nil {
			oldText = r.preview(*d.OldValue)
		}
		if d.NewValue != nil {
			newText = r.preview(*d.NewValue)
		}
		table.Append([]string{PathLabel(d.Path), string(d.Kind), oldText, newText})
	}
	table.Render()
	return r.write([]byte(Summary(result) + "\n"))
}

func (r *Renderer) hitsText(hits []models.SearchHit) error {
	if len(hits) == 0 {
		return r.write([]byte("No matches found\n"))
	}
	var b strings.Builder
	for _, h := range hits {
		fmt.Fprintf(&b, "%s: %s\n", r.path.Sprint(PathLabel(h.Path)), r.preview(h.Value))
	}
	b.WriteString(english.Plural(len(hits), "match", "matches"))
	b.WriteByte('\n')
	return r.write([]byte(b.String()))
}

func (r *Renderer) hitsTable(hits []models.SearchHit) error {
	if len(hits) == 0 {
		return r.write([]byte("No matches found\n"))
	}
	table := tablewriter.NewWriter(r.w)
	table.SetHeader([]string{"PATH", "VALUE"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, h := range hits {
		table.Append([]string{PathLabel(h.Path), r.preview(h.Value)})
	}
	table.Render()
	return nil
}

// Summary describes the difference counts, e.g. "3 differences (1 added, 2 modified)"
func Summary(result models.CompareResult) string {
	if result.IsEqual {
		return "No differences found"
	}
	counts := map[models.DifferenceKind]int{}
	for _, d := range result.Differences {
		counts[d.Kind]++
	}
	var parts []string
	for _, kind := range []models.DifferenceKind{models.Added, models.Removed, models.Modified} {
		if counts[kind] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[kind], kind))
		}
	}
	return fmt.Sprintf("%s (%s)", english.Plural(len(result.Differences), "difference", ""), strings.Join(parts, ", "))
}

// PathLabel renders a path, showing the root as RootLabel
func PathLabel(p models.Path) string {
	if p.IsRoot() {
		return RootLabel
	}
	return p.String()
}

// DifferencesValue converts a result into a document for JSON output
func DifferencesValue(result models.CompareResult) models.Value {
	items := make([]models.Value, 0, len(result.Differences))
	for _, d := range result.Differences {
		members := []models.Member{
			models.M("path", models.String(d.Path.String())),
			models.M("kind", models.String(string(d.Kind))),
		}
		if d.OldValue != nil {
			members = append(members, models.M("oldValue", *d.OldValue))
		}
		if d.NewValue != nil {
			members = append(members, models.M("newValue", *d.NewValue))
		}
		items = append(items, models.Object(members...))
	}
	return models.Object(
		models.M("isEqual", models.Bool(result.IsEqual)),
		models.M("differences", models.Array(items...)),
	)
}

// HitsValue converts search hits into a document for JSON output
func HitsValue(hits []models.SearchHit) models.Value {
	items := make([]models.Value, 0, len(hits))
	for _, h := range hits {
		items = append(items, models.Object(
			models.M("path", models.String(h.Path.String())),
			models.M("value", h.Value),
		))
	}
	return models.Array(items...)
}

func (r *Renderer) preview(v models.Value) string {
	text := encoder.MarshalString(v)
	if r.maxWidth <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= r.maxWidth {
		return text
	}
	return string(runes[:r.maxWidth]) + "..."
}

func (r *Renderer) write(data []byte) error {
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if _, err := r.w.Write(data); err != nil {
		return errors.NewOutputError("failed to write output", err)
	}
	return nil
}

func unknownFormat(format string) error {
	return errors.NewOutputError(fmt.Sprintf("unknown output format '%s'", format), nil)
}
