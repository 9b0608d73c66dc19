package valueobject

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BillingPeriod is a value object identifying a calendar month for billing.
// It is immutable and always stored in the normalized "YYYY-MM" form so that
// "2025-7" and "2025-07" address the same bill.
type BillingPeriod struct {
	year  int
	month time.Month
}

// NewBillingPeriod creates a period from a year and month
func NewBillingPeriod(year int, month time.Month) (BillingPeriod, error) {
	if year < 2000 || year > 2100 {
		return BillingPeriod{}, fmt.Errorf("year %d out of range", year)
	}
	if month < time.January || month > time.December {
		return BillingPeriod{}, fmt.Errorf("invalid month %d", month)
	}
	return BillingPeriod{year: year, month: month}, nil
}

// ParseBillingPeriod parses "YYYY-MM" (or the loose "YYYY-M" form)
func ParseBillingPeriod(s string) (BillingPeriod, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return BillingPeriod{}, fmt.Errorf("invalid billing period %q: expected YYYY-MM", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return BillingPeriod{}, fmt.Errorf("invalid billing period %q: bad year", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return BillingPeriod{}, fmt.Errorf("invalid billing period %q: bad month", s)
	}
	return NewBillingPeriod(year, time.Month(month))
}

// BillingPeriodOf returns the period containing the given time
func BillingPeriodOf(t time.Time) BillingPeriod {
	return BillingPeriod{year: t.Year(), month: t.Month()}
}

// Year returns the calendar year
func (p BillingPeriod) Year() int {
	return p.year
}

// Month returns the calendar month
func (p BillingPeriod) Month() time.Month {
	return p.month
}

// IsZero reports whether the period is the zero value
func (p BillingPeriod) IsZero() bool {
	return p.year == 0
}

// String returns the normalized "YYYY-MM" form
func (p BillingPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.year, int(p.month))
}

// Interval returns the half-open [start, end) range covering the month,
// suitable for indexed range predicates on challan dates.
func (p BillingPeriod) Interval() (start, end time.Time) {
	start = time.Date(p.year, p.month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Next returns the following calendar month
func (p BillingPeriod) Next() BillingPeriod {
	start, _ := p.Interval()
	return BillingPeriodOf(start.AddDate(0, 1, 0))
}

// Equal reports whether two periods address the same month
func (p BillingPeriod) Equal(other BillingPeriod) bool {
	return p.year == other.year && p.month == other.month
}
