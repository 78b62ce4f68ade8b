// Package format holds pure display helpers shared by the console pages.
package format

import (
	"strings"
	"time"
)

// Placeholder is shown for missing values.
const Placeholder = "—"

// IST is Indian Standard Time (UTC+05:30, no DST).
var IST = time.FixedZone("IST", 5*60*60+30*60)

const indianLayout = "02 Jan 2006, 03:04:05 pm"

// Zone-less layouts are read as UTC; the backend writes naive UTC ISO strings.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// UTCToIndianTime renders a UTC timestamp in Indian-locale style, e.g.
// "01 May 2024, 03:30:00 pm". Empty input yields Placeholder and unparsable
// input yields "Invalid Date".
func UTCToIndianTime(utc string) string {
	s := strings.TrimSpace(utc)
	if s == "" {
		return Placeholder
	}
	t, ok := parseTime(s)
	if !ok {
		return "Invalid Date"
	}
	return t.In(IST).Format(indianLayout)
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
