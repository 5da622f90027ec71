// Package timefmt converts between microsecond timestamps and human-readable
// calendar strings, and expands the filename token language used by the
// file sink.
package timefmt

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Never is the sentinel timestamp/duration meaning "no time at all".
const Never uint64 = math.MaxUint64

// Zone selects which civil clock a TimeValue is expressed in.
type Zone int

const (
	ZoneUTC Zone = iota
	ZoneLocal
)

var (
	// ErrNever is returned when a Never timestamp is decomposed.
	ErrNever = errors.New("timefmt: timestamp is never")
	// ErrInvalidTime is returned when a TimeValue does not name a real instant.
	ErrInvalidTime = errors.New("timefmt: invalid calendar value")
)

// TimeValue is a decomposed civil time. Month, DayOfMonth and DayOfWeek are
// 0-based (January = 0, first of the month = 0, Sunday = 0).
type TimeValue struct {
	Year        int
	Month       int
	DayOfMonth  int
	DayOfWeek   int
	Hour        int
	Minute      int
	Second      int
	Microsecond int
	Zone        Zone
}

func (z Zone) location() *time.Location {
	if z == ZoneLocal {
		return time.Local
	}
	return time.UTC
}

// Micros converts a time.Time into microseconds since the Unix epoch.
// Instants before the epoch clamp to zero.
func Micros(t time.Time) uint64 {
	us := t.UnixMicro()
	if us < 0 {
		return 0
	}
	return uint64(us)
}

// Decompose splits a microsecond timestamp into calendar fields in the given zone.
func Decompose(ts uint64, zone Zone) (TimeValue, error) {
	if ts == Never {
		return TimeValue{}, ErrNever
	}
	if ts > math.MaxInt64 {
		return TimeValue{}, errors.Wrapf(ErrInvalidTime, "timestamp %d out of range", ts)
	}
	t := time.UnixMicro(int64(ts)).In(zone.location())
	return FromTime(t, zone), nil
}

// FromTime decomposes t after converting it to the given zone.
func FromTime(t time.Time, zone Zone) TimeValue {
	t = t.In(zone.location())
	return TimeValue{
		Year:        t.Year(),
		Month:       int(t.Month()) - 1,
		DayOfMonth:  t.Day() - 1,
		DayOfWeek:   int(t.Weekday()),
		Hour:        t.Hour(),
		Minute:      t.Minute(),
		Second:      t.Second(),
		Microsecond: t.Nanosecond() / 1000,
		Zone:        zone,
	}
}

// Compose is the inverse of Decompose. DayOfWeek is ignored; every other
// field must already be in range, no normalization is performed.
func Compose(v TimeValue, zone Zone) (uint64, error) {
	if v.Month < 0 || v.Month > 11 || v.DayOfMonth < 0 || v.Hour < 0 || v.Hour > 23 ||
		v.Minute < 0 || v.Minute > 59 || v.Second < 0 || v.Second > 59 ||
		v.Microsecond < 0 || v.Microsecond > 999999 {
		return 0, errors.Wrapf(ErrInvalidTime, "%+v", v)
	}
	t := time.Date(v.Year, time.Month(v.Month+1), v.DayOfMonth+1, v.Hour, v.Minute, v.Second,
		v.Microsecond*1000, zone.location())
	if t.Day() != v.DayOfMonth+1 || int(t.Month()) != v.Month+1 {
		return 0, errors.Wrapf(ErrInvalidTime, "day %d does not exist in %04d-%02d", v.DayOfMonth+1, v.Year, v.Month+1)
	}
	us := t.UnixMicro()
	if us < 0 {
		return 0, errors.Wrapf(ErrInvalidTime, "%04d-%02d-%02d precedes the epoch", v.Year, v.Month+1, v.DayOfMonth+1)
	}
	return uint64(us), nil
}

// Composite tokens are rewritten into elementary ones before substitution.
var compositeTokens = []struct{ token, expansion string }{
	{"%T", "%Q %D %Y %h:%m:%s"},
	{"%t", "%Y/%M/%D %h:%m:%s"},
	{"%f", "%Y-%M-%D_%hh%mm%s"},
}

// ExpandTokens substitutes the % tokens of template with fields of v.
//
//	%Y year           %M month (01-12)   %Q month name
//	%D, %d day (01-31) %W, %w weekday (01-07) %q weekday name
//	%h hour  %m minute  %s second  %x microsecond (6 digits)
//	%r random 64-bit decimal
//	%T "%Q %D %Y %h:%m:%s"  %t "%Y/%M/%D %h:%m:%s"  %f "%Y-%M-%D_%hh%mm%s"
//	%% literal percent, replaced first
func (v TimeValue) ExpandTokens(template string) string {
	if !strings.Contains(template, "%") {
		return template
	}

	s := strings.ReplaceAll(template, "%%", "%")
	for _, c := range compositeTokens {
		s = strings.ReplaceAll(s, c.token, c.expansion)
	}

	month := time.Month(v.Month + 1)
	weekday := time.Weekday(v.DayOfWeek % 7)
	replacer := strings.NewReplacer(
		"%Y", strconv.Itoa(v.Year),
		"%M", fmt.Sprintf("%02d", v.Month+1),
		"%Q", month.String(),
		"%D", fmt.Sprintf("%02d", v.DayOfMonth+1),
		"%d", fmt.Sprintf("%02d", v.DayOfMonth+1),
		"%W", fmt.Sprintf("%02d", v.DayOfWeek+1),
		"%w", fmt.Sprintf("%02d", v.DayOfWeek+1),
		"%q", weekday.String(),
		"%h", fmt.Sprintf("%02d", v.Hour),
		"%m", fmt.Sprintf("%02d", v.Minute),
		"%s", fmt.Sprintf("%02d", v.Second),
		"%x", fmt.Sprintf("%06d", v.Microsecond),
		"%r", strconv.FormatUint(rand.Uint64(), 10),
	)
	return replacer.Replace(s)
}

// String renders v as "%T", e.g. "January 02 2024 13:04:05".
func (v TimeValue) String() string {
	return v.ExpandTokens("%T")
}

// HumanTimeString renders ts as "YYYY/MM/DD hh:mm:ss", or "(never)".
func HumanTimeString(ts uint64, zone Zone) string {
	v, err := Decompose(ts, zone)
	if err != nil {
		return "(never)"
	}
	return fmt.Sprintf("%04d/%02d/%02d %02d:%02d:%02d", v.Year, v.Month+1, v.DayOfMonth+1, v.Hour, v.Minute, v.Second)
}

// ParseHumanTimeString parses the fields year, month, day, hour, minute and
// second, separated by any of "/", ":" or " ", interpreted in zone. Missing
// fields are zero. Any string containing "never" yields Never; strings that
// resolve to an instant before the epoch yield 0.
func ParseHumanTimeString(s string, zone Zone) uint64 {
	if strings.Contains(strings.ToLower(s), "never") {
		return Never
	}

	var fields [6]int
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ':' || r == ' '
	})
	for i := 0; i < len(tokens) && i < len(fields); i++ {
		fields[i] = leadingInt(tokens[i])
	}

	t := time.Date(fields[0], time.Month(fields[1]), fields[2], fields[3], fields[4], fields[5], 0, zone.location())
	return Micros(t)
}

// leadingInt parses an optional sign and the digits that follow it, ignoring
// anything after. Strings with no digits yield 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
