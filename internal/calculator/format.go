package calculator

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// dateTimeLayout renders a short local date followed by hour and minute.
const dateTimeLayout = "1/2/2006 03:04 PM"

// FormatCurrency renders v with exactly two decimals and no currency symbol.
func FormatCurrency(v float64) string {
	if !scalable(v) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return cents(v).StringFixed(2)
}

// FormatDateTime renders t in loc as "1/2/2006 03:04 PM".
// A nil loc means the local time zone.
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dateTimeLayout)
}

// GenerateID returns a new unique identifier for rows and notes.
// IDs are time-ordered UUIDv7 strings.
func GenerateID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
