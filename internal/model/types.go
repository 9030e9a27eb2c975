package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for calendar dates. Dates and
// times are wall-clock values with no timezone; times are zero-padded
// "HH:MM" strings compared lexically within a day.
const DateLayout = "2006-01-02"

// WeekdayName returns the English weekday name ("Monday".."Sunday") for a
// calendar date, using the fixed Gregorian calendar.
func WeekdayName(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.Weekday().String(), nil
}

// AddDays returns the calendar date n days after date.
func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

func jsonbValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func jsonbScan(src, dst interface{}) error {
	if src == nil {
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported scan type %T", src)
	}
	return json.Unmarshal(b, dst)
}
