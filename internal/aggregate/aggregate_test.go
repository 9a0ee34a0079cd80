package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spendcal/internal/daterange"
	"spendcal/internal/store"
)

func tx(t *testing.T, date string, kind store.Kind, amount, categoryID string) store.Transaction {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	a, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("parse amount %q: %v", amount, err)
	}
	return store.Transaction{ID: date + amount, Date: d, Kind: kind, Amount: a, CategoryID: categoryID}
}

func fixture(t *testing.T) []store.Transaction {
	t.Helper()
	return []store.Transaction{
		tx(t, "2025-03-01", store.KindExpense, "50", "food"),
		tx(t, "2025-03-01", store.KindExpense, "30", "transport"),
		tx(t, "2025-03-01", store.KindIncome, "100", "salary"),
		tx(t, "2025-03-15", store.KindExpense, "20", "food"),
		tx(t, "2025-04-02", store.KindExpense, "5", "ghost"),
	}
}

func lookup(cats map[string]store.Category) CategoryLookup {
	return func(id string) *store.Category {
		if c, ok := cats[id]; ok {
			return &c
		}
		return nil
	}
}

var cats = map[string]store.Category{
	"food":      {ID: "food", Name: "Food", Glyph: "🍔", Kind: store.KindExpense},
	"transport": {ID: "transport", Name: "Transport", Glyph: "🚗", Kind: store.KindExpense},
	"salary":    {ID: "salary", Name: "Salary", Glyph: "💼", Kind: store.KindIncome},
}

func TestTotals(t *testing.T) {
	txs := fixture(t)

	if got := TotalExpense(txs); !got.Equal(decimal.NewFromInt(105)) {
		t.Fatalf("total expense = %s, want 105", got)
	}
	if got := TotalIncome(txs); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("total income = %s, want 100", got)
	}
	if got := Balance(txs); !got.Equal(decimal.NewFromInt(-5)) {
		t.Fatalf("balance = %s, want -5", got)
	}
}

func TestTotalsEmpty(t *testing.T) {
	if got := TotalExpense(nil); !got.IsZero() {
		t.Fatalf("empty expense = %s, want 0", got)
	}
	if got := Balance(nil); !got.IsZero() {
		t.Fatalf("empty balance = %s, want 0", got)
	}
}

func TestExpenseByCategory(t *testing.T) {
	txs := fixture(t)
	totals := ExpenseByCategory(txs, lookup(cats))

	if len(totals) != 3 {
		t.Fatalf("got %d buckets, want 3", len(totals))
	}

	// Insertion order: first occurrence wins.
	if totals[0].Label != "🍔 Food" {
		t.Fatalf("first bucket = %q", totals[0].Label)
	}
	if !totals[0].Amount.Equal(decimal.NewFromInt(70)) || totals[0].Count != 2 {
		t.Fatalf("food bucket = %s × %d, want 70 × 2", totals[0].Amount, totals[0].Count)
	}
	if totals[1].Label != "🚗 Transport" {
		t.Fatalf("second bucket = %q", totals[1].Label)
	}
	if totals[2].Label != UnknownCategoryLabel {
		t.Fatalf("unresolved id should collapse to sentinel, got %q", totals[2].Label)
	}

	// Income never appears in the expense breakdown.
	for _, ct := range totals {
		if ct.Label == "💼 Salary" {
			t.Fatal("income category should not appear")
		}
	}
}

func TestExpenseByCategoryUnknownCollapses(t *testing.T) {
	txs := []store.Transaction{
		tx(t, "2025-03-01", store.KindExpense, "10", "gone-1"),
		tx(t, "2025-03-02", store.KindExpense, "15", "gone-2"),
	}
	totals := ExpenseByCategory(txs, lookup(cats))

	if len(totals) != 1 {
		t.Fatalf("all unknown ids should share one bucket, got %d", len(totals))
	}
	if totals[0].Label != UnknownCategoryLabel || !totals[0].Amount.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("sentinel bucket = %q %s", totals[0].Label, totals[0].Amount)
	}
}

func TestByDay(t *testing.T) {
	groups := ByDay(fixture(t))

	if len(groups["2025-03-01"]) != 3 {
		t.Fatalf("march 1 group = %d, want 3", len(groups["2025-03-01"]))
	}
	if len(groups["2025-03-15"]) != 1 {
		t.Fatalf("march 15 group = %d, want 1", len(groups["2025-03-15"]))
	}
	if _, ok := groups["2025-03-02"]; ok {
		t.Fatal("days without transactions get no key")
	}
}

func TestByMonth(t *testing.T) {
	groups := ByMonth(fixture(t))

	if len(groups["2025-03"]) != 4 {
		t.Fatalf("march group = %d, want 4", len(groups["2025-03"]))
	}
	if len(groups["2025-04"]) != 1 {
		t.Fatalf("april group = %d, want 1", len(groups["2025-04"]))
	}
}

func TestInRange(t *testing.T) {
	txs := fixture(t)
	r := daterange.CustomRange(time.Now(),
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	)

	got := InRange(txs, r)
	if len(got) != 4 {
		t.Fatalf("got %d in range, want 4", len(got))
	}
	for _, tx := range got {
		if tx.Date.Month() != time.March {
			t.Fatalf("transaction outside range: %v", tx.Date)
		}
	}
}

func TestInRangeDoesNotMutateInput(t *testing.T) {
	txs := fixture(t)
	before := len(txs)
	InRange(txs, daterange.Resolve(daterange.ThisMonth, time.Now()))
	if len(txs) != before {
		t.Fatal("input slice length changed")
	}
}
