package importer

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// serialEpoch anchors spreadsheet day serials. The anchor is 1899-12-30
// rather than 1899-12-31: the originating format counts a phantom 1900-02-29,
// and the extra day is absorbed here so serials from 61 up land on the right
// calendar date.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxSerial is 9999-12-31 in serial form.
const maxSerial = 2958465

var fallbackLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	time.RFC3339,
	time.DateTime,
}

// ParseDate folds every date shape a worksheet cell can carry into UTC
// midnight of its calendar date: day serials (numbers or numeric strings),
// ISO strings with an optional time part, a short list of lenient layouts
// with day-first slashes, and native time values. Anything else reports
// false; callers treat that as an absent field, never as an error.
func ParseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return midnight(v), true
	case float64:
		return fromSerial(v)
	case float32:
		return fromSerial(float64(v))
	case int:
		return fromSerial(float64(v))
	case int32:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	case string:
		return parseDateString(v)
	}
	return time.Time{}, false
}

// FormatForStorage renders a parsed date as "YYYY-MM-DD", or nil when the
// parse failed, so the value binds straight into a nullable DATE column.
func FormatForStorage(t time.Time, ok bool) *string {
	if !ok || t.IsZero() {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

// DaysInclusive counts calendar days between two UTC midnights, both ends
// included. A single day yields 1.
func DaysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fromSerial(serial float64) (time.Time, bool) {
	days := math.Trunc(serial)
	if days < 1 || days > maxSerial {
		return time.Time{}, false
	}
	return serialEpoch.AddDate(0, 0, int(days)), true
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// Serial-formatted cells surface as bare numbers when read raw.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(serial)
	}
	if t, ok := parseISO(s); ok {
		return t, true
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnight(t), true
		}
	}
	return time.Time{}, false
}

// parseISO decomposes a strict YYYY-MM-DD prefix, discarding any trailing
// time component. Components are validated numerically so 2024-02-30 fails
// instead of normalizing into March.
func parseISO(s string) (time.Time, bool) {
	if len(s) < 10 {
		return time.Time{}, false
	}
	if s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	if len(s) > 10 && s[10] != ' ' && s[10] != 'T' {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(s[5:7])
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(s[8:10])
	if err != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
