// Package xmltime formats time values the way EWS expects them on the
// wire, as xs:dateTime strings.
package xmltime

import "time"

// dateTimeFormat is an xs:dateTime with a UTC offset, per XML Schema
// part 2 section 3.2.7.
const dateTimeFormat = "2006-01-02T15:04:05Z07:00"

// FormatDateTime formats value as an xs:dateTime.
func FormatDateTime(value time.Time) string {
	return value.Format(dateTimeFormat)
}

// ParseDateTime parses an xs:dateTime string.
func ParseDateTime(value string) (time.Time, error) {
	return time.Parse(dateTimeFormat, value)
}
