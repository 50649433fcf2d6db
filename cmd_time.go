package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/timeutil"
)

// TimeCmd groups the time commands
type TimeCmd struct {
	Now       TimeNowCmd       `cmd:"" help:"Show the current time."`
	Convert   TimeConvertCmd   `cmd:"" help:"Convert a date between time zones."`
	Format    TimeFormatCmd    `cmd:"" help:"Render a date with a pattern such as yyyy-MM-dd."`
	Diff      TimeDiffCmd      `cmd:"" help:"Show the distance between two dates."`
	Timestamp TimeTimestampCmd `cmd:"" help:"Convert between Unix timestamps and dates."`
	Zones     TimeZonesCmd     `cmd:"" help:"List common time zones with their current offset."`
	Patterns  TimePatternsCmd  `cmd:"" help:"List common date patterns with an example."`
}

// TimeNowCmd shows the current time
type TimeNowCmd struct {
	Zone string `help:"IANA time zone. Defaults to the configured or local zone." short:"z"`
	JSON bool   `help:"Print the result as JSON."`
}

// TimeConvertCmd converts between zones
type TimeConvertCmd struct {
	Date string `arg:"" help:"Date to convert."`
	From string `help:"Zone the date is written in. Defaults to the configured or local zone."`
	To   string `help:"Target zone." required:""`
}

// TimeFormatCmd renders a date with a pattern
type TimeFormatCmd struct {
	Date    string `arg:"" help:"Date to format."`
	Pattern string `help:"Pattern made of date-fns tokens. Defaults to the configured pattern." short:"p"`
	Zone    string `help:"Zone to render in." short:"z"`
}

// TimeDiffCmd measures the distance between dates
type TimeDiffCmd struct {
	Start string `arg:"" help:"First date."`
	End   string `arg:"" help:"Second date."`
	JSON  bool   `help:"Print the result as JSON."`
}

// TimeTimestampCmd converts timestamps
type TimeTimestampCmd struct {
	Value   string `arg:"" help:"Unix timestamp (seconds or milliseconds) or a date."`
	Unit    string `help:"Unit of the produced timestamp: seconds or milliseconds." default:"milliseconds" enum:"seconds,milliseconds"`
	Pattern string `help:"Pattern for the produced date." short:"p"`
	Zone    string `help:"Zone to read or render dates in." short:"z"`
}

// TimeZonesCmd lists common zones
type TimeZonesCmd struct{}

// TimePatternsCmd lists common patterns
type TimePatternsCmd struct{}

// VersionCmd prints the version
type VersionCmd struct{}

func (ctx *Context) location(zone string) (*time.Location, error) {
	if zone == "" {
		zone = ctx.Config.Time.Timezone
	}
	return timeutil.LoadLocation(zone)
}

func (ctx *Context) pattern(pattern string) string {
	if pattern != "" {
		return pattern
	}
	if ctx.Config.Time.Pattern != "" {
		return ctx.Config.Time.Pattern
	}
	return timeutil.DefaultPattern
}

// Run shows the current time
func (c *TimeNowCmd) Run(ctx *Context) error {
	loc, err := ctx.location(c.Zone)
	if err != nil {
		return err
	}
	now := timeutil.Current(time.Now(), loc)
	if c.JSON {
		return ctx.writeJSON(now)
	}
	return ctx.writeFields([][]string{
		{"Timestamp", strconv.FormatInt(now.Timestamp, 10)},
		{"Date", now.DateString},
		{"Zone", now.Timezone},
	})
}

// Run converts the date
func (c *TimeConvertCmd) Run(ctx *Context) error {
	from := c.From
	if from == "" {
		from = ctx.Config.Time.Timezone
	}
	out, err := timeutil.ConvertTimezone(c.Date, from, c.To)
	if err != nil {
		return err
	}
	return ctx.writeOutput(out)
}

// Run formats the date
func (c *TimeFormatCmd) Run(ctx *Context) error {
	loc, err := ctx.location(c.Zone)
	if err != nil {
		return err
	}
	out, err := timeutil.FormatDate(c.Date, ctx.pattern(c.Pattern), loc)
	if err != nil {
		return err
	}
	return ctx.writeOutput(out)
}

// Run prints the distance between the dates
func (c *TimeDiffCmd) Run(ctx *Context) error {
	loc, err := ctx.location("")
	if err != nil {
		return err
	}
	d, err := timeutil.Difference(c.Start, c.End, loc)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.writeJSON(d)
	}
	return ctx.writeFields([][]string{
		{"Years", strconv.Itoa(d.Years)},
		{"Months", strconv.Itoa(d.Months)},
		{"Days", strconv.FormatInt(d.Days, 10)},
		{"Hours", strconv.FormatInt(d.Hours, 10)},
		{"Minutes", strconv.FormatInt(d.Minutes, 10)},
		{"Seconds", strconv.FormatInt(d.Seconds, 10)},
	})
}

// Run converts a timestamp to a date, or a date to a timestamp
func (c *TimeTimestampCmd) Run(ctx *Context) error {
	loc, err := ctx.location(c.Zone)
	if err != nil {
		return err
	}

	value := strings.TrimSpace(c.Value)
	if ts, err := strconv.ParseInt(value, 10, 64); err == nil {
		return ctx.writeOutput(timeutil.TimestampToDate(ts, ctx.pattern(c.Pattern), loc))
	}

	if result := timeutil.ValidateDate(value); !result.Valid {
		return errors.NewTimeError(fmt.Sprintf("'%s' is neither a timestamp nor a date", value), errors.ErrInvalidDate)
	}
	ts, err := timeutil.DateToTimestamp(value, timeutil.Unit(c.Unit), loc)
	if err != nil {
		return err
	}
	return ctx.writeOutput(strconv.FormatInt(ts, 10))
}

// Run lists the zones
func (c *TimeZonesCmd) Run(ctx *Context) error {
	zones := timeutil.CommonTimezones(time.Now())
	rows := make([][]string, 0, len(zones))
	for _, z := range zones {
		rows = append(rows, []string{z.Value, z.Offset, z.Label})
	}
	return ctx.writeFields(rows)
}

// Run lists the patterns
func (c *TimePatternsCmd) Run(ctx *Context) error {
	patterns := timeutil.CommonPatterns(time.Now())
	rows := make([][]string, 0, len(patterns))
	for _, p := range patterns {
		rows = append(rows, []string{p.Label, p.Pattern, p.Example})
	}
	return ctx.writeFields(rows)
}

// Run prints the version
func (c *VersionCmd) Run(ctx *Context) error {
	return ctx.writeOutput(fmt.Sprintf("devkit version %s", Version))
}
