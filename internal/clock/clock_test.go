package clock

import (
	"math"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := ResolveZone(name)
	require.NoError(t, err)
	return loc
}

func mustDate(t *testing.T, s string) BaseDate {
	t.Helper()
	d, err := ParseBaseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseBaseDate(t *testing.T) {
	d, err := ParseBaseDate(" 2024-03-01 ")
	require.NoError(t, err)
	require.Equal(t, BaseDate{Year: 2024, Month: time.March, Day: 1}, d)
	require.Equal(t, "2024-03-01", d.String())
}

func TestParseBaseDate_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"2024/03/01",
		"2024-3-1",
		"2024-02-30",
		"01-03-2024",
		"2024-03-01T10:00:00",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseBaseDate(in)
			require.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestResolveZone(t *testing.T) {
	loc, err := ResolveZone("")
	require.NoError(t, err)
	require.Equal(t, time.Local, loc)

	loc, err = ResolveZone("Local")
	require.NoError(t, err)
	require.Equal(t, time.Local, loc)

	loc, err = ResolveZone("Europe/Berlin")
	require.NoError(t, err)
	require.Equal(t, "Europe/Berlin", loc.String())

	_, err = ResolveZone("Nowhere/Atlantis")
	require.ErrorIs(t, err, ErrUnknownTimeZone)
}

func TestElapsedDuration(t *testing.T) {
	d, err := ElapsedDuration(1500.25)
	require.NoError(t, err)
	require.Equal(t, 1500*time.Millisecond+250*time.Microsecond, d)

	d, err = ElapsedDuration(-500)
	require.NoError(t, err)
	require.Equal(t, -500*time.Millisecond, d)

	for _, ms := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e300, -1e300} {
		_, err := ElapsedDuration(ms)
		require.ErrorIs(t, err, ErrElapsedRange)
	}
}

func TestConverterTimestamp(t *testing.T) {
	cases := []struct {
		name string
		zone string
		date string
		ms   float64
		want string
	}{
		{"MidnightUTCPlusOne", "Etc/GMT-1", "2024-03-01", 0, "2024-02-29T23:00:00Z"},
		{"MidnightUTC", "UTC", "2024-03-01", 0, "2024-03-01T00:00:00Z"},
		{"MidnightWest", "America/New_York", "2024-01-15", 0, "2024-01-15T05:00:00Z"},
		{"MorningRun", "Europe/Zurich", "2024-02-10", 9*3600*1000 + 30*60*1000 + 15*1000, "2024-02-10T08:30:15Z"},
		{"SubSecondTruncated", "UTC", "2024-03-01", 1999.999, "2024-03-01T00:00:01Z"},
		{"NegativeRollsBack", "UTC", "2024-03-01", -500, "2024-02-29T23:59:59Z"},
		{"NegativeWholeHour", "Etc/GMT-1", "2024-03-01", -3600 * 1000, "2024-02-29T22:00:00Z"},
		{"SpansNextDay", "UTC", "2024-03-01", 25 * 3600 * 1000, "2024-03-02T01:00:00Z"},
		// Europe/Berlin switches from +01:00 to +02:00 at 02:00 local on 2024-03-31.
		{"BeforeSpringForward", "Europe/Berlin", "2024-03-31", 3600 * 1000, "2024-03-31T00:00:00Z"},
		{"AfterSpringForward", "Europe/Berlin", "2024-03-31", 3 * 3600 * 1000, "2024-03-31T01:00:00Z"},
		{"AfterFallBack", "Europe/Berlin", "2024-10-27", 12 * 3600 * 1000, "2024-10-27T11:00:00Z"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConverter(mustDate(t, tc.date), mustZone(t, tc.zone))
			got, err := c.Timestamp(tc.ms)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestConverterTime_WallClockOffset(t *testing.T) {
	berlin := mustZone(t, "Europe/Berlin")
	c := NewConverter(mustDate(t, "2024-03-31"), berlin)

	tm, err := c.Time(3 * 3600 * 1000)
	require.NoError(t, err)
	require.Equal(t, 3, tm.Hour())
	_, offset := tm.Zone()
	require.Equal(t, 2*3600, offset)

	midnight, err := c.Time(0)
	require.NoError(t, err)
	_, offset = midnight.Zone()
	require.Equal(t, 3600, offset)
}

func TestConverterTimestamp_Deterministic(t *testing.T) {
	c := NewConverter(mustDate(t, "2024-03-01"), mustZone(t, "Europe/Vienna"))
	a, err := c.Timestamp(36000123.456)
	require.NoError(t, err)
	b, err := c.Timestamp(36000123.456)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestNewConverter_NilLocation(t *testing.T) {
	c := NewConverter(BaseDate{Year: 2024, Month: time.March, Day: 1}, nil)
	require.Equal(t, time.Local, c.Location)
}

func TestConverterTimestamp_OutOfRange(t *testing.T) {
	c := NewConverter(mustDate(t, "2024-03-01"), time.UTC)
	_, err := c.Timestamp(math.Inf(1))
	require.ErrorIs(t, err, ErrElapsedRange)
}
