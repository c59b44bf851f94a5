package normalize

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"dashboard-curvas/internal/constants"
)

var ErrInvalidMonth = errors.New("invalid month key, expected YYYY-MM")

var (
	monthKeyRe   = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	datePrefixRe = regexp.MustCompile(`^(\d{4}-(0[1-9]|1[0-2]))-\d{2}`)
	zoneNameRe   = regexp.MustCompile(`\s*\([^()]*\)$`)
	ptMonthRe    = regexp.MustCompile(`^([a-z]{3})[a-z]*\.?(?:\s*[/\-.]\s*|\s+)(?:de\s+)?(\d{4})$`)
)

// dateLayouts are tried in order for strings that are not ISO dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-1-2",
	"2006-1",
	"02/01/2006",
	"02/01/2006 15:04:05",
	"2/1/2006",
	"01/2006",
	"1/2006",
	"2006/01/02",
	"2006/01",
	"Jan 2006",
	"January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon Jan 02 2006",
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.UnixDate,
}

var ptMonths = map[string]time.Month{
	"jan": time.January,
	"fev": time.February,
	"mar": time.March,
	"abr": time.April,
	"mai": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August,
	"set": time.September,
	"out": time.October,
	"nov": time.November,
	"dez": time.December,
}

// Month converts a raw month value into a YYYY-MM key.
// The second result is false when the value has no recognizable month.
func Month(raw any) (string, bool) {
	return month(raw, 0)
}

func month(raw any, depth int) (string, bool) {
	if depth > maxDepth {
		return "", false
	}

	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return monthFromString(v)
	case []byte:
		return monthFromString(string(v))
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return MonthOf(v), true
	case *time.Time:
		if v == nil || v.IsZero() {
			return "", false
		}
		return MonthOf(*v), true
	}

	if inner, ok := unbox(raw); ok {
		return month(inner, depth+1)
	}

	return "", false
}

func monthFromString(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	if monthKeyRe.MatchString(s) {
		return s, true
	}

	if m := datePrefixRe.FindStringSubmatch(s); m != nil {
		return m[1], true
	}

	// Date.toString() output ends in "(zone name)", which no layout covers.
	bare := zoneNameRe.ReplaceAllString(s, "")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, bare); err == nil {
			return MonthOf(t), true
		}
	}

	if m := ptMonthRe.FindStringSubmatch(Text(s)); m != nil {
		if mon, ok := ptMonths[m[1]]; ok {
			t, err := time.Parse("2006", m[2])
			if err == nil {
				return MonthOf(time.Date(t.Year(), mon, 1, 0, 0, 0, 0, time.UTC)), true
			}
		}
	}

	return "", false
}

// MonthOf returns the month key of t in t's own location.
func MonthOf(t time.Time) string {
	return t.Format(constants.MonthLayout)
}

// ValidMonth reports whether key is already a canonical month key.
func ValidMonth(key string) bool {
	return monthKeyRe.MatchString(key)
}

// AddMonths shifts a canonical month key by n months.
func AddMonths(key string, n int) (string, error) {
	t, err := time.Parse(constants.MonthLayout, key)
	if err != nil || !ValidMonth(key) {
		return "", ErrInvalidMonth
	}

	return MonthOf(t.AddDate(0, n, 0)), nil
}
