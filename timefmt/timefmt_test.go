package timefmt

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTokens(t *testing.T) {
	v := TimeValue{Year: 2024, Month: 0, DayOfMonth: 0, DayOfWeek: 1, Hour: 13, Minute: 4, Second: 5, Microsecond: 42}

	tests := []struct {
		name     string
		template string
		expected string
	}{
		{"date", "%Y-%M-%D", "2024-01-01"},
		{"no tokens", "plain.log", "plain.log"},
		{"aliases", "%d %w", "01 02"},
		{"names", "%q %Q", "Monday January"},
		{"time of day", "%h:%m:%s.%x", "13:04:05.000042"},
		{"file shortcut", "%f.log", "2024-01-01_13h04m05.log"},
		{"slash shortcut", "%t", "2024/01/01 13:04:05"},
		{"long shortcut", "%T", "January 01 2024 13:04:05"},
		{"percent escape", "100%%", "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.ExpandTokens(tt.template))
		})
	}

	t.Run("random nonce", func(t *testing.T) {
		assert.Regexp(t, regexp.MustCompile(`^app-\d+\.log$`), v.ExpandTokens("app-%r.log"))
	})

	assert.Equal(t, v.ExpandTokens("%T"), v.String())
}

func TestDecomposeCompose(t *testing.T) {
	ts := Micros(time.Date(2024, time.February, 29, 23, 59, 58, 123456000, time.UTC))

	v, err := Decompose(ts, ZoneUTC)
	require.NoError(t, err)
	assert.Equal(t, TimeValue{
		Year: 2024, Month: 1, DayOfMonth: 28, DayOfWeek: int(time.Thursday),
		Hour: 23, Minute: 59, Second: 58, Microsecond: 123456, Zone: ZoneUTC,
	}, v)

	back, err := Compose(v, ZoneUTC)
	require.NoError(t, err)
	assert.Equal(t, ts, back)

	local, err := Decompose(ts, ZoneLocal)
	require.NoError(t, err)
	back, err = Compose(local, ZoneLocal)
	require.NoError(t, err)
	assert.Equal(t, ts, back)

	t.Run("never", func(t *testing.T) {
		_, err := Decompose(Never, ZoneUTC)
		assert.ErrorIs(t, err, ErrNever)
	})

	t.Run("invalid calendar values", func(t *testing.T) {
		bad := []TimeValue{
			{Year: 2023, Month: 1, DayOfMonth: 28},
			{Year: 2024, Month: 12},
			{Year: 2024, Hour: 24},
			{Year: 1960},
		}
		for _, b := range bad {
			_, err := Compose(b, ZoneUTC)
			assert.ErrorIs(t, err, ErrInvalidTime, "%+v", b)
		}
	})
}

func TestHumanTimeString(t *testing.T) {
	ts := Micros(time.Date(2023, time.July, 4, 9, 8, 7, 0, time.UTC))

	s := HumanTimeString(ts, ZoneUTC)
	assert.Equal(t, "2023/07/04 09:08:07", s)
	assert.Equal(t, ts, ParseHumanTimeString(s, ZoneUTC))

	assert.Equal(t, "(never)", HumanTimeString(Never, ZoneUTC))
	assert.Equal(t, Never, ParseHumanTimeString("NEVER", ZoneUTC))
	assert.Equal(t, Never, ParseHumanTimeString(HumanTimeString(Never, ZoneLocal), ZoneLocal))

	t.Run("local round trip", func(t *testing.T) {
		assert.Equal(t, ts, ParseHumanTimeString(HumanTimeString(ts, ZoneLocal), ZoneLocal))
	})

	t.Run("missing fields are zero", func(t *testing.T) {
		expected := Micros(time.Date(2023, time.July, 4, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, expected, ParseHumanTimeString("2023/07/04", ZoneUTC))
	})

	t.Run("garbage", func(t *testing.T) {
		assert.Equal(t, uint64(0), ParseHumanTimeString("not a time", ZoneUTC))
	})
}
