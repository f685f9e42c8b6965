package util

import (
	"fmt"
	"strings"
	"time"
)

const queryTimeLayout = "2006-01-02T15:04:05"

// ParseQueryTime parses a local time. A bare clock time ("15:04:05") falls
// on the day of refer.
func ParseQueryTime(query string, refer time.Time) (time.Time, error) {
	if !strings.Contains(query, "T") {
		query = refer.Format("2006-01-02") + "T" + query
	}
	return time.ParseInLocation(queryTimeLayout, query, time.Local)
}

// ParseTimeRange parses "start~end". A start without date is today, an end
// without date shares the start's day.
func ParseTimeRange(query string) (start, end time.Time, err error) {
	from, to, ok := strings.Cut(query, "~")
	if !ok {
		err = fmt.Errorf("time range %q: want start~end", query)
		return
	}
	if start, err = ParseQueryTime(from, time.Now()); err != nil {
		return
	}
	if end, err = ParseQueryTime(to, start); err != nil {
		return
	}
	if end.Before(start) {
		err = fmt.Errorf("time range %q: end before start", query)
	}
	return
}
