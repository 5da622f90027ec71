package syslog

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/bvarner/syslog/loccode"
	"github.com/bvarner/syslog/timefmt"
)

// dumper renders arbitrary values compactly for Dump.
var dumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true, // Cleaner for logs
	DisableCapacities:       true, // Less noise
	SortKeys:                true, // Consistent map output
}

// Preamble renders the prefix written before a message by the built-in
// sinks: "[L MM/DD hh:mm:ss] " in local time, where L is the first letter of
// the level name, followed by "[CODE] " when withLocation is set and the
// event carries a source file.
func Preamble(ev LogEvent, withLocation bool) string {
	v := timefmt.FromTime(ev.When, timefmt.ZoneLocal)
	var sb strings.Builder
	sb.Grow(32)
	fmt.Fprintf(&sb, "[%c %02d/%02d %02d:%02d:%02d] ",
		levelLetter(ev.Level), v.Month+1, v.DayOfMonth+1, v.Hour, v.Minute, v.Second)
	if withLocation && ev.SourceFile != "" {
		if code := loccode.Code(ev.SourceFile, ev.SourceLine); code != "" {
			sb.WriteByte('[')
			sb.WriteString(code)
			sb.WriteString("] ")
		}
	}
	return sb.String()
}

// formatMessage applies args to format. A format without args is used verbatim.
func formatMessage(format string, args []any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// terminate makes sure s ends in exactly one newline.
func terminate(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// dumpValue renders v with type information.
func dumpValue(v any) string {
	var b bytes.Buffer
	dumper.Fdump(&b, v)
	return string(bytes.TrimSpace(b.Bytes()))
}
