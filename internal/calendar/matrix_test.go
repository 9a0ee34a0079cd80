package calendar

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spendcal/internal/store"
)

func tx(t *testing.T, date string, kind store.Kind, amount string) store.Transaction {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	a, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("parse amount %q: %v", amount, err)
	}
	return store.Transaction{ID: date + amount, Date: d, Kind: kind, Amount: a}
}

// March 2025 fixture: two expenses and one income on the 1st, one
// expense on the 15th.
func march2025(t *testing.T) []store.Transaction {
	t.Helper()
	return []store.Transaction{
		tx(t, "2025-03-01", store.KindExpense, "50"),
		tx(t, "2025-03-01", store.KindExpense, "30"),
		tx(t, "2025-03-01", store.KindIncome, "100"),
		tx(t, "2025-03-15", store.KindExpense, "20"),
	}
}

func TestBuildMarch2025(t *testing.T) {
	m := Build(2025, time.March, march2025(t))

	if len(m.Days) != 31 {
		t.Fatalf("march should have 31 buckets, got %d", len(m.Days))
	}

	day1 := m.Bucket(1)
	if !day1.TotalExpense.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("day 1 total = %s, want 80", day1.TotalExpense)
	}
	if len(day1.Transactions) != 3 {
		t.Fatalf("day 1 should hold all 3 transactions (income included), got %d", len(day1.Transactions))
	}

	day15 := m.Bucket(15)
	if !day15.TotalExpense.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("day 15 total = %s, want 20", day15.TotalExpense)
	}
	if len(day15.Transactions) != 1 {
		t.Fatalf("day 15 should hold 1 transaction, got %d", len(day15.Transactions))
	}

	if !m.MaxDayAmount.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("max day amount = %s, want 80", m.MaxDayAmount)
	}
	if !m.TotalExpense().Equal(decimal.NewFromInt(100)) {
		t.Fatalf("month total = %s, want 100", m.TotalExpense())
	}

	for day := 1; day <= 31; day++ {
		if day == 1 || day == 15 {
			continue
		}
		if !m.Bucket(day).TotalExpense.IsZero() {
			t.Fatalf("day %d should have zero expense", day)
		}
	}
}

func TestMatrixSumMatchesTotalExpense(t *testing.T) {
	txs := march2025(t)
	m := Build(2025, time.March, txs)

	sum := decimal.Zero
	for _, b := range m.Days {
		sum = sum.Add(b.TotalExpense)
	}

	want := decimal.Zero
	for _, tx := range txs {
		if tx.Kind == store.KindExpense {
			want = want.Add(tx.Amount)
		}
	}
	if !sum.Equal(want) {
		t.Fatalf("bucket sum %s != expense total %s", sum, want)
	}
}

func TestMaxDayAmountClampedToOne(t *testing.T) {
	m := Build(2025, time.June, nil)

	if !m.MaxDayAmount.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("empty month max = %s, want clamp to 1", m.MaxDayAmount)
	}
	for _, b := range m.Days {
		if !b.TotalExpense.IsZero() {
			t.Fatal("empty month should have all-zero buckets")
		}
	}
}

func TestGridPositions(t *testing.T) {
	months := []struct {
		year  int
		month time.Month
	}{
		{2025, time.March},    // starts Saturday, 31 days
		{2025, time.June},     // starts Sunday, 30 days
		{2025, time.February}, // starts Saturday, 28 days
		{2024, time.February}, // leap year, starts Thursday
		{2026, time.February}, // starts Sunday, 28 days: exactly 4 rows
	}

	for _, tc := range months {
		m := Build(tc.year, tc.month, nil)
		name := fmt.Sprintf("%d-%s", tc.year, tc.month)

		seen := make(map[[2]int]int)
		for day := 1; day <= len(m.Days); day++ {
			row, col := m.GridPos(day)
			if col < 0 || col > 6 {
				t.Fatalf("%s day %d: column %d out of range", name, day, col)
			}
			if row < 0 || row >= m.WeekRows {
				t.Fatalf("%s day %d: row %d outside %d rows", name, day, row, m.WeekRows)
			}
			if other, dup := seen[[2]int{row, col}]; dup {
				t.Fatalf("%s: days %d and %d share cell (%d,%d)", name, other, day, row, col)
			}
			seen[[2]int{row, col}] = day
		}

		// Row 0's first populated column is the first-day offset.
		_, col := m.GridPos(1)
		if col != m.FirstWeekday {
			t.Fatalf("%s: day 1 column %d != offset %d", name, col, m.FirstWeekday)
		}

		wantRows := (m.FirstWeekday + len(m.Days) + 6) / 7
		if m.WeekRows != wantRows {
			t.Fatalf("%s: week rows %d, want %d", name, m.WeekRows, wantRows)
		}

		// Last day lands on the last row, so no row is empty.
		lastRow, _ := m.GridPos(len(m.Days))
		if lastRow != m.WeekRows-1 {
			t.Fatalf("%s: last day on row %d of %d", name, lastRow, m.WeekRows)
		}
	}
}

func TestDaysIn(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2000, time.February, 29},
		{1900, time.February, 28},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tc := range cases {
		if got := DaysIn(tc.year, tc.month); got != tc.want {
			t.Fatalf("DaysIn(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestMeanDailyExpense(t *testing.T) {
	m := Build(2025, time.March, march2025(t))

	want := decimal.NewFromInt(100).Div(decimal.NewFromInt(31))
	if !m.MeanDailyExpense().Equal(want) {
		t.Fatalf("mean daily = %s, want %s", m.MeanDailyExpense(), want)
	}
}

func TestWeekNumberMatchesISOWeek(t *testing.T) {
	// Sweep several years day by day, including leap years and years
	// with 53 ISO weeks, against the standard library.
	start := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		_, want := d.ISOWeek()
		if got := WeekNumber(d); got != want {
			t.Fatalf("WeekNumber(%s) = %d, want %d", d.Format("2006-01-02"), got, want)
		}
	}
}

func TestWeekNumberYearBoundaries(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2019-12-30", 1},  // belongs to week 1 of 2020
		{"2019-12-31", 1},
		{"2020-01-01", 1},
		{"2021-01-01", 53}, // belongs to the last week of 2020
		{"2021-01-02", 53},
		{"2021-01-04", 1},
		{"2025-12-29", 1},  // belongs to week 1 of 2026
		{"2025-12-28", 52},
	}
	for _, tc := range cases {
		d, _ := time.Parse("2006-01-02", tc.date)
		if got := WeekNumber(d); got != tc.want {
			t.Fatalf("WeekNumber(%s) = %d, want %d", tc.date, got, tc.want)
		}
	}
}

func TestWeekNumberStableWithinWeek(t *testing.T) {
	// Monday through Sunday of one ISO week all report the same number.
	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	want := WeekNumber(monday)
	for i := 1; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		if got := WeekNumber(d); got != want {
			t.Fatalf("WeekNumber(%s) = %d, want %d", d.Format("2006-01-02"), got, want)
		}
	}
}
