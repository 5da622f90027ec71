package timefmt

import (
	"math"
	"strconv"
	"strings"
)

// NoLimit passed as maxClauses lets FormatDurationString emit every clause.
const NoLimit uint32 = math.MaxUint32

// Duration units in microseconds.
const (
	Microsecond uint64 = 1
	Millisecond        = 1000 * Microsecond
	Second             = 1000 * Millisecond
	Minute             = 60 * Second
	Hour               = 60 * Minute
	Day                = 24 * Hour
	Week               = 7 * Day
	Month              = 30 * Day
	Year               = 365 * Day
)

var durationUnits = []struct {
	size uint64
	name string
}{
	{Microsecond, "microsecond"},
	{Millisecond, "millisecond"},
	{Second, "second"},
	{Minute, "minute"},
	{Hour, "hour"},
	{Day, "day"},
	{Week, "week"},
	{Month, "month"},
	{Year, "year"},
}

// unitPrefixes is checked in order, so the two-letter prefixes win over
// their one-letter neighbours ("ms" before "m", "mo" before "m").
var unitPrefixes = []struct {
	prefix string
	size   uint64
}{
	{"us", Microsecond},
	{"micro", Microsecond},
	{"ms", Millisecond},
	{"milli", Millisecond},
	{"mo", Month},
	{"s", Second},
	{"m", Minute},
	{"h", Hour},
	{"d", Day},
	{"w", Week},
	{"y", Year},
}

// unitMultiplier returns the size of the unit word s begins with, or def.
func unitMultiplier(s string, def uint64) uint64 {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, u := range unitPrefixes {
		if strings.HasPrefix(s, u.prefix) {
			return u.size
		}
	}
	return def
}

// ParseDurationString parses strings like "5", "1.5h", "1h 30m" or
// "2 days, 3 hours" into microseconds. A number with no unit is seconds,
// a bare unit word is a single unit, and "forever", "never" or anything
// starting with "inf" is Never. Unparseable input yields 0.
func ParseDurationString(s string) uint64 {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "forever" || lower == "never" || strings.HasPrefix(lower, "inf") {
		return Never
	}

	digit := strings.IndexFunc(s, isDigit)
	if digit < 0 {
		return unitMultiplier(s, 0)
	}

	multiplier := Second
	rest := ""
	if letter := strings.IndexFunc(s, func(r rune) bool { return r < 0x80 && isLetter(byte(r)) }); letter >= 0 {
		multiplier = unitMultiplier(s[letter:], Second)
		after := letter
		for after < len(s) && (isLetter(s[after]) || s[after] == ',' || s[after] == ' ') {
			after++
		}
		rest = s[after:]
	}

	var value uint64
	number := leadingNumber(s[digit:])
	if strings.Contains(number, ".") {
		f, _ := strconv.ParseFloat(number, 64)
		value = uint64(f * float64(multiplier))
	} else {
		n, err := strconv.ParseUint(number, 10, 64)
		if err != nil {
			n = math.MaxUint64 / multiplier
		}
		value = n * multiplier
	}

	if rest != "" {
		value += ParseDurationString(rest)
	}
	return value
}

// FormatDurationString renders us as comma-separated "N unit(s)" clauses,
// largest unit first, e.g. "1 hour, 30 minutes". At most maxClauses clauses
// are written, and a remainder at or below minPrecision is dropped. The
// second result reports whether the text represents us exactly.
func FormatDurationString(us uint64, maxClauses uint32, minPrecision uint64) (string, bool) {
	if us == Never {
		return "forever", true
	}

	which := 0
	for i := len(durationUnits) - 1; i >= 0; i-- {
		if durationUnits[i].size <= us {
			which = i
			break
		}
	}
	unit := durationUnits[which]

	n := us / unit.size
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(n, 10))
	sb.WriteByte(' ')
	sb.WriteString(unit.name)
	if n != 1 {
		sb.WriteByte('s')
	}

	leftover := us % unit.size
	if leftover == 0 {
		return sb.String(), true
	}
	if leftover > minPrecision && maxClauses > 1 {
		tail, exact := FormatDurationString(leftover, maxClauses-1, minPrecision)
		sb.WriteString(", ")
		sb.WriteString(tail)
		return sb.String(), exact
	}
	return sb.String(), false
}

// leadingNumber returns the digits, with at most one decimal point, that s starts with.
func leadingNumber(s string) string {
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c == '.' && !seenDot {
			seenDot = true
		} else if c < '0' || c > '9' {
			break
		}
		end++
	}
	return s[:end]
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
