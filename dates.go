package library

import (
	"time"

	"github.com/agentstation/utc"
)

// dateOnly truncates a timestamp to its UTC calendar day. Loan rules
// ("strictly before today") work at day granularity, never on the clock time.
func dateOnly(t utc.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// beforeDay reports whether a falls on an earlier calendar day than b.
func beforeDay(a, b utc.Time) bool {
	return dateOnly(a).Before(dateOnly(b))
}
