// Package aggregate provides pure summary functions over transaction
// slices. Nothing here mutates its inputs.
package aggregate

import (
	"github.com/shopspring/decimal"

	"spendcal/internal/daterange"
	"spendcal/internal/store"
)

// UnknownCategoryLabel is the sentinel bucket for transactions whose
// category has been deleted or never existed.
const UnknownCategoryLabel = "❓ Unknown Category"

// CategoryLookup resolves a category id. A nil result means the
// category is absent, which callers must treat as the sentinel bucket.
type CategoryLookup func(id string) *store.Category

func TotalIncome(txs []store.Transaction) decimal.Decimal {
	return totalOfKind(txs, store.KindIncome)
}

func TotalExpense(txs []store.Transaction) decimal.Decimal {
	return totalOfKind(txs, store.KindExpense)
}

func Balance(txs []store.Transaction) decimal.Decimal {
	return TotalIncome(txs).Sub(TotalExpense(txs))
}

func totalOfKind(txs []store.Transaction, kind store.Kind) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Kind == kind {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// CategoryTotal is one expense bucket keyed by display label.
type CategoryTotal struct {
	Label  string
	Amount decimal.Decimal
	Count  int
}

// ExpenseByCategory groups expense transactions by category display
// label ("<glyph> <name>"). Buckets appear in first-occurrence order;
// consumers sort as needed. Unresolved ids collapse into one sentinel
// bucket.
func ExpenseByCategory(txs []store.Transaction, lookup CategoryLookup) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal

	for _, tx := range txs {
		if tx.Kind != store.KindExpense {
			continue
		}
		label := UnknownCategoryLabel
		if c := lookup(tx.CategoryID); c != nil {
			label = c.Glyph + " " + c.Name
		}
		i, ok := index[label]
		if !ok {
			i = len(totals)
			index[label] = i
			totals = append(totals, CategoryTotal{Label: label, Amount: decimal.Zero})
		}
		totals[i].Amount = totals[i].Amount.Add(tx.Amount)
		totals[i].Count++
	}
	return totals
}

// ByDay groups transactions by calendar day, keyed YYYY-MM-DD.
func ByDay(txs []store.Transaction) map[string][]store.Transaction {
	return groupBy(txs, "2006-01-02")
}

// ByMonth groups transactions by calendar month, keyed YYYY-MM.
func ByMonth(txs []store.Transaction) map[string][]store.Transaction {
	return groupBy(txs, "2006-01")
}

func groupBy(txs []store.Transaction, layout string) map[string][]store.Transaction {
	groups := make(map[string][]store.Transaction)
	for _, tx := range txs {
		key := tx.Date.Format(layout)
		groups[key] = append(groups[key], tx)
	}
	return groups
}

// InRange returns the transactions whose date falls inside r.
func InRange(txs []store.Transaction, r daterange.Range) []store.Transaction {
	var out []store.Transaction
	for _, tx := range txs {
		if r.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}
