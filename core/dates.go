package core

import "time"

// Date is a calendar date in yyyy-mm-dd form, without a time or zone.
// Purchase dates, delivery dates, and return deadlines come from the
// user as dates, are stored as dates, and are exported as dates, so
// nothing here pretends they are instants.
type Date string

const dateLayout = "2006-01-02"

// Today returns the current date.
func Today() Date {
	return Date(time.Now().Format(dateLayout))
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// Valid reports whether d parses as yyyy-mm-dd. The empty Date is not
// valid; callers treat it as "not set".
func (d Date) Valid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

// AddDays returns d shifted by the given number of days. An unparsable
// date is returned unchanged.
func (d Date) AddDays(days int) Date {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return d
	}
	return Date(t.AddDate(0, 0, days).Format(dateLayout))
}

// Before reports whether d sorts before other. Because the layout is
// fixed-width big-endian, plain string comparison is date order.
func (d Date) Before(other Date) bool {
	return d < other
}
