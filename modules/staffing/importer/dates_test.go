package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate_Serials(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"unix epoch", 25569, "1970-01-01"},
		{"float serial", float64(45323), "2024-02-01"},
		{"fraction truncated", 45323.75, "2024-02-01"},
		{"numeric string", "45323", "2024-02-01"},
		{"first post-defect day", 61, "1900-03-01"},
		{"int64", int64(45292), "2024-01-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDate(tc.value)
			require.True(t, ok)
			require.Equal(t, tc.want, got.Format(time.DateOnly))
			require.Equal(t, time.UTC, got.Location())
			require.Zero(t, got.Hour())
		})
	}
}

func TestParseDate_RejectsGarbage(t *testing.T) {
	for _, v := range []any{nil, "", "   ", "not a date", float64(0), -3, float64(maxSerial + 1), "2024-13-01", "2024-02-30", "03/15/2024", struct{}{}} {
		_, ok := ParseDate(v)
		require.False(t, ok, "value %v should not parse", v)
	}
}

func TestParseDate_ISO(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-15", "2024-03-15"},
		{" 2024-03-15 ", "2024-03-15"},
		{"2024-03-15 10:30:00", "2024-03-15"},
		{"2024-03-15T23:59:59+02:00", "2024-03-15"},
		{"2024-02-29", "2024-02-29"},
	}
	for _, tc := range cases {
		got, ok := ParseDate(tc.in)
		require.True(t, ok, tc.in)
		require.Equal(t, tc.want, got.Format(time.DateOnly))
	}
}

func TestParseDate_DayFirstFallback(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"15/03/2024", "2024-03-15"},
		{"1/2/2024", "2024-02-01"},
		{"15-03-2024", "2024-03-15"},
	}
	for _, tc := range cases {
		got, ok := ParseDate(tc.in)
		require.True(t, ok, tc.in)
		require.Equal(t, tc.want, got.Format(time.DateOnly))
	}
}

func TestParseDate_NativeTime(t *testing.T) {
	in := time.Date(2024, 3, 15, 23, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	got, ok := ParseDate(in)
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestFormatForStorage(t *testing.T) {
	d, ok := ParseDate("2024-03-15")
	require.True(t, ok)
	s := FormatForStorage(d, ok)
	require.NotNil(t, s)
	require.Equal(t, "2024-03-15", *s)

	require.Nil(t, FormatForStorage(time.Time{}, false))
}

func TestFormatForStorage_SerialRoundTrip(t *testing.T) {
	for _, serial := range []float64{61, 25569, 45292, 45323} {
		d, ok := ParseDate(serial)
		require.True(t, ok)
		again, ok := ParseDate(*FormatForStorage(d, true))
		require.True(t, ok)
		require.Equal(t, d, again)
	}
}

func TestDaysInclusive(t *testing.T) {
	day := func(s string) time.Time {
		d, ok := ParseDate(s)
		require.True(t, ok)
		return d
	}
	require.Equal(t, 1, DaysInclusive(day("2024-01-01"), day("2024-01-01")))
	require.Equal(t, 60, DaysInclusive(day("2024-01-01"), day("2024-02-29")))
	require.Equal(t, 59, DaysInclusive(day("2024-01-01"), day("2024-02-28")))
	require.Equal(t, 366, DaysInclusive(day("2024-01-01"), day("2024-12-31")))
}
