// Package timeutil converts between timestamps, date strings and time zones.
package timeutil

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone names resolve without a system zoneinfo database

	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/models"
)

// Unit selects the resolution of a Unix timestamp
type Unit string

const (
	Seconds      Unit = "seconds"
	Milliseconds Unit = "milliseconds"
)

// secondsThreshold separates second timestamps from millisecond ones
const secondsThreshold = 10_000_000_000

// inputLayouts are tried in order when parsing a date string
var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// Now describes the current moment
type Now struct {
	Timestamp  int64  `json:"timestamp"`
	DateString string `json:"date_string"`
	Timezone   string `json:"timezone"`
}

// DateDifference is the absolute distance between two instants, each field in whole units
type DateDifference struct {
	Years   int   `json:"years"`
	Months  int   `json:"months"`
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// Timezone is an entry of the common time zone list
type Timezone struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Offset string `json:"offset"`
}

// PatternExample is an entry of the common pattern list
type PatternExample struct {
	Label   string `json:"label"`
	Pattern string `json:"pattern"`
	Example string `json:"example"`
}

// LoadLocation resolves an IANA zone name. The empty name is the local zone.
func LoadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.NewTimeError(fmt.Sprintf("unknown timezone '%s'", name), errors.ErrUnknownTimezone)
	}
	return loc, nil
}

// ParseDate parses text in one of the accepted layouts.
// Layouts without an offset are read in loc.
func ParseDate(text string, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewTimeError(fmt.Sprintf("cannot parse '%s' as a date", text), errors.ErrInvalidDate)
}

// FromTimestamp converts a Unix timestamp in seconds or milliseconds.
// Values below 10^10 are taken as seconds.
func FromTimestamp(ts int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	abs := ts
	if abs < 0 {
		abs = -abs
	}
	if abs < secondsThreshold {
		return time.Unix(ts, 0).In(loc)
	}
	return time.UnixMilli(ts).In(loc)
}

// TimestampToDate renders a Unix timestamp with a date-fns style pattern
func TimestampToDate(ts int64, pattern string, loc *time.Location) string {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return FormatPattern(FromTimestamp(ts, loc), pattern)
}

// DateToTimestamp parses text and returns its Unix timestamp in the given unit
func DateToTimestamp(text string, unit Unit, loc *time.Location) (int64, error) {
	t, err := ParseDate(text, loc)
	if err != nil {
		return 0, err
	}
	if unit == Seconds {
		return t.Unix(), nil
	}
	return t.UnixMilli(), nil
}

// ConvertTimezone reads text in the from zone and renders it in the to zone
func ConvertTimezone(text, from, to string) (string, error) {
	fromLoc, err := LoadLocation(from)
	if err != nil {
		return "", err
	}
	toLoc, err := LoadLocation(to)
	if err != nil {
		return "", err
	}
	t, err := ParseDate(text, fromLoc)
	if err != nil {
		return "", err
	}
	return FormatPattern(t.In(toLoc), DefaultPattern), nil
}

// FormatDate parses text and renders it with a date-fns style pattern
func FormatDate(text, pattern string, loc *time.Location) (string, error) {
	t, err := ParseDate(text, loc)
	if err != nil {
		return "", err
	}
	if loc != nil {
		t = t.In(loc)
	}
	return FormatPattern(t, pattern), nil
}

// Difference returns the absolute distance between two date strings
func Difference(start, end string, loc *time.Location) (DateDifference, error) {
	a, err := ParseDate(start, loc)
	if err != nil {
		return DateDifference{}, err
	}
	b, err := ParseDate(end, loc)
	if err != nil {
		return DateDifference{}, err
	}
	return Between(a, b), nil
}

// Between returns the absolute distance between two instants.
// Years and months are whole calendar units; the rest are elapsed time.
func Between(a, b time.Time) DateDifference {
	if b.Before(a) {
		a, b = b, a
	}
	d := b.Sub(a)

	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if months > 0 && a.AddDate(0, months, 0).After(b) {
		months--
	}

	return DateDifference{
		Years:   months / 12,
		Months:  months,
		Days:    int64(d / (24 * time.Hour)),
		Hours:   int64(d / time.Hour),
		Minutes: int64(d / time.Minute),
		Seconds: int64(d / time.Second),
	}
}

// ValidateDate reports whether text parses as a date
func ValidateDate(text string) models.Validation {
	if _, err := ParseDate(text, time.UTC); err != nil {
		return models.Validation{Valid: false, Error: "invalid date format"}
	}
	return models.Validation{Valid: true}
}

// Current describes now in loc
func Current(now time.Time, loc *time.Location) Now {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	return Now{
		Timestamp:  now.UnixMilli(),
		DateString: FormatPattern(now, DefaultPattern),
		Timezone:   loc.String(),
	}
}

var commonZones = []struct{ label, name string }{
	{"Beijing (CST)", "Asia/Shanghai"},
	{"Tokyo (JST)", "Asia/Tokyo"},
	{"Seoul (KST)", "Asia/Seoul"},
	{"Singapore (SGT)", "Asia/Singapore"},
	{"Hong Kong (HKT)", "Asia/Hong_Kong"},
	{"Taipei (CST)", "Asia/Taipei"},
	{"Coordinated Universal Time (UTC)", "UTC"},
	{"London (GMT/BST)", "Europe/London"},
	{"Paris (CET/CEST)", "Europe/Paris"},
	{"New York (EST/EDT)", "America/New_York"},
	{"Los Angeles (PST/PDT)", "America/Los_Angeles"},
	{"Chicago (CST/CDT)", "America/Chicago"},
	{"Denver (MST/MDT)", "America/Denver"},
	{"Sydney (AEST/AEDT)", "Australia/Sydney"},
	{"Melbourne (AEST/AEDT)", "Australia/Melbourne"},
}

// CommonTimezones lists frequently used zones with their offset at the given instant
func CommonTimezones(at time.Time) []Timezone {
	out := make([]Timezone, 0, len(commonZones))
	for _, z := range commonZones {
		loc, err := time.LoadLocation(z.name)
		if err != nil {
			continue
		}
		out = append(out, Timezone{
			Label:  z.label,
			Value:  z.name,
			Offset: at.In(loc).Format("-07:00"),
		})
	}
	return out
}

var commonPatterns = []struct{ label, pattern string }{
	{"Standard", DefaultPattern},
	{"Date", "yyyy-MM-dd"},
	{"Time", "HH:mm:ss"},
	{"ISO", "yyyy-MM-dd'T'HH:mm:ss.SSSxxx"},
	{"US", "MM/dd/yyyy"},
	{"European", "dd/MM/yyyy"},
	{"Chinese", "yyyy年MM月dd日"},
	{"Chinese full", "yyyy年MM月dd日 HH时mm分ss秒"},
	{"RFC2822", "EEE, dd MMM yyyy HH:mm:ss xx"},
	{"With weekday", "yyyy-MM-dd (EEEE)"},
}

// CommonPatterns lists frequently used patterns rendered for the given instant
func CommonPatterns(at time.Time) []PatternExample {
	out := make([]PatternExample, len(commonPatterns))
	for i, p := range commonPatterns {
		out[i] = PatternExample{Label: p.label, Pattern: p.pattern, Example: FormatPattern(at, p.pattern)}
	}
	return out
}
