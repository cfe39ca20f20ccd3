package domain

import (
	"fmt"
	"time"
)

// MonthKey identifies an accounting month as "YYYY-MM".
// Lexicographic order equals chronological order, so keys sort naturally.
type MonthKey string

// MonthKeyOf returns the MonthKey containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// ParseMonthKey validates s and returns it as a MonthKey.
func ParseMonthKey(s string) (MonthKey, error) {
	if _, err := time.Parse("2006-01", s); err != nil {
		return "", fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return MonthKey(s), nil
}

// IsValid reports whether m is a well-formed YYYY-MM key.
func (m MonthKey) IsValid() bool {
	_, err := time.Parse("2006-01", string(m))
	return err == nil
}

func (m MonthKey) String() string { return string(m) }

// Start returns midnight UTC on the first day of the month.
func (m MonthKey) Start() time.Time {
	t, _ := time.Parse("2006-01", string(m))
	return t
}

// Prev returns the key of the preceding month.
func (m MonthKey) Prev() MonthKey {
	return MonthKeyOf(m.Start().AddDate(0, -1, 0))
}

// Next returns the key of the following month.
func (m MonthKey) Next() MonthKey {
	return MonthKeyOf(m.Start().AddDate(0, 1, 0))
}

// Days returns the number of calendar days in the month.
func (m MonthKey) Days() int {
	start := m.Start()
	return int(start.AddDate(0, 1, 0).Sub(start).Hours() / 24)
}
