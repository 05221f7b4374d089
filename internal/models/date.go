package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout is the only accepted wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time or zone. It is stored as a SQL
// date and serialized as "YYYY-MM-DD".
type Date struct {
	civil.Date
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{civil.Date{Year: year, Month: month, Day: day}}
}

func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, err
	}
	return Date{d}, nil
}

func DateOf(t time.Time) Date {
	return Date{civil.DateOf(t)}
}

func (d Date) AddDays(n int) Date {
	return Date{d.Date.AddDays(n)}
}

// DaysSince returns the number of whole days from s to d.
func (d Date) DaysSince(s Date) int {
	return d.Date.DaysSince(s.Date)
}

func (d Date) Before(o Date) bool {
	return d.Date.Before(o.Date)
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Date = civil.DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case nil:
		d.Date = civil.Date{}
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

func (d *Date) scanString(s string) error {
	// some drivers hand back full timestamps for date columns
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := civil.ParseDate(s)
	if err != nil {
		return fmt.Errorf("scan date %q: %w", s, err)
	}
	d.Date = parsed
	return nil
}
