// Package calendar builds the per-day month matrix behind the spending
// heatmap: one bucket per calendar day plus the layout metadata needed
// to place each day on a standard Sunday-first month grid.
package calendar

import (
	"time"

	"github.com/shopspring/decimal"

	"spendcal/internal/store"
)

// DayBucket aggregates one calendar day. Transactions holds every kind
// (for the detail view); TotalExpense sums only expense amounts.
type DayBucket struct {
	Date         time.Time
	TotalExpense decimal.Decimal
	Transactions []store.Transaction
	Label        string
}

// MonthMatrix is the full set of day buckets for one displayed month.
// MaxDayAmount is floor-clamped to 1 so the color scale stays
// well-defined in a month with no spending.
type MonthMatrix struct {
	Year         int
	Month        time.Month
	Days         []DayBucket // Days[0] is the 1st
	MaxDayAmount decimal.Decimal
	FirstWeekday int // weekday of the 1st, 0=Sunday..6=Saturday
	WeekRows     int
}

// Build constructs the matrix for one month from transactions already
// scoped to that month. Input order is preserved within each bucket.
func Build(year int, month time.Month, txs []store.Transaction) MonthMatrix {
	days := DaysIn(year, month)
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	offset := int(first.Weekday())

	m := MonthMatrix{
		Year:         year,
		Month:        month,
		Days:         make([]DayBucket, days),
		MaxDayAmount: decimal.Zero,
		FirstWeekday: offset,
		WeekRows:     (offset + days + 6) / 7,
	}

	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		bucket := DayBucket{
			Date:         date,
			TotalExpense: decimal.Zero,
			Label:        date.Format("January 2"),
		}
		for _, tx := range txs {
			if tx.Date.Year() != year || tx.Date.Month() != month || tx.Date.Day() != day {
				continue
			}
			bucket.Transactions = append(bucket.Transactions, tx)
			if tx.Kind == store.KindExpense {
				bucket.TotalExpense = bucket.TotalExpense.Add(tx.Amount)
			}
		}
		if bucket.TotalExpense.GreaterThan(m.MaxDayAmount) {
			m.MaxDayAmount = bucket.TotalExpense
		}
		m.Days[day-1] = bucket
	}

	one := decimal.NewFromInt(1)
	if m.MaxDayAmount.LessThan(one) {
		m.MaxDayAmount = one
	}
	return m
}

// Bucket returns the bucket for a 1-based day of the month.
func (m MonthMatrix) Bucket(day int) DayBucket {
	return m.Days[day-1]
}

// TotalExpense sums the expense totals of every bucket.
func (m MonthMatrix) TotalExpense() decimal.Decimal {
	total := decimal.Zero
	for _, b := range m.Days {
		total = total.Add(b.TotalExpense)
	}
	return total
}

// MeanDailyExpense is the month's total expense divided by its day count.
func (m MonthMatrix) MeanDailyExpense() decimal.Decimal {
	return m.TotalExpense().Div(decimal.NewFromInt(int64(len(m.Days))))
}

// GridPos maps a 1-based day of the month to its (row, column) on the
// month grid. Column is the weekday (0=Sunday); rows fill top to bottom
// exactly as a wall calendar does.
func (m MonthMatrix) GridPos(day int) (row, col int) {
	date := time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.Local)
	col = int(date.Weekday())
	row = (day + m.FirstWeekday - 1) / 7
	return row, col
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekNumber returns the ISO-8601 week of the year containing t: the
// date is shifted to the Thursday of its ISO week (Monday-start, Sunday
// counted as day 7), then weeks are counted from January 1 of the
// shifted date's year. Late-December dates can land in week 1 of the
// next year and early-January dates in the last week of the previous
// year.
func WeekNumber(t time.Time) int {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	d = d.AddDate(0, 0, 4-wd)
	jan1 := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(jan1).Hours() / 24)
	return days/7 + 1
}
