package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"spendcal/internal/aggregate"
	"spendcal/internal/colorscale"
	"spendcal/internal/money"
	"spendcal/internal/store"
)

// renderDetailPanel shows the statistics and category breakdown for the
// currently selected day.
func (hm heatmapModel) renderDetailPanel(w int) string {
	if w < 24 {
		w = 24
	}
	bucket := hm.matrix.Bucket(hm.selected)

	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("%s, %d", bucket.Label, hm.year)))
	rows = append(rows, "")

	if bucket.TotalExpense.IsZero() {
		rows = append(rows, mutedStyle.Render("No spending on this day."))
	} else {
		total := money.Format(bucket.TotalExpense, hm.settings.CurrencyCode)
		rows = append(rows, fmt.Sprintf("%s %s", mutedStyle.Render("Spent"), highlightStyle.Render(total)))
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("%.1f%% of the month's spending", percentOfMonth(bucket.TotalExpense, hm.monthTotal))))

		if line := deviationLine(bucket.TotalExpense, hm.matrix.MeanDailyExpense()); line != "" {
			rows = append(rows, line)
		}

		if breakdown := hm.renderBreakdown(bucket.Transactions, w); breakdown != "" {
			rows = append(rows, "", breakdown)
		}
	}

	if len(bucket.Transactions) > 0 {
		rows = append(rows, "", hm.renderDayTransactions(bucket.Transactions))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// deviationLine compares a day against the month's mean daily expense.
// Small deviations stay quiet; higher spend reads as unfavorable.
func deviationLine(dayTotal, mean decimal.Decimal) string {
	dev := deviationFromMean(dayTotal, mean)
	switch {
	case dev > detailDeviationThreshold:
		return warningStyle.Render(fmt.Sprintf("▲ %.0f%% above the daily average", dev))
	case dev < -detailDeviationThreshold:
		return successStyle.Render(fmt.Sprintf("▼ %.0f%% below the daily average", -dev))
	}
	return ""
}

// renderBreakdown draws a descending per-category bar chart for the
// day. Rendered only when the day's expenses span several categories.
func (hm heatmapModel) renderBreakdown(txs []store.Transaction, w int) string {
	totals := aggregate.ExpenseByCategory(txs, hm.lookupCategory)
	if len(totals) < 2 {
		return ""
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount.GreaterThan(totals[j].Amount)
	})

	barWidth := w - 10
	if barWidth < 6 {
		barWidth = 6
	}
	top := totals[0].Amount

	var rows []string
	for _, ct := range totals {
		frac, _ := ct.Amount.Div(top).Float64()
		n := int(frac * float64(barWidth))
		if n < 1 {
			n = 1
		}
		// Bar color is derived from the label hash, stable across renders.
		barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorscale.HexForLabel(ct.Label)))
		rows = append(rows, fmt.Sprintf("%s %s",
			normalItemStyle.Render(ct.Label),
			mutedStyle.Render(money.Format(ct.Amount, hm.settings.CurrencyCode)),
		))
		rows = append(rows, barStyle.Render(strings.Repeat("█", n)))
	}
	return strings.Join(rows, "\n")
}

func (hm heatmapModel) renderDayTransactions(txs []store.Transaction) string {
	var rows []string
	rows = append(rows, mutedStyle.Render("Transactions"))
	for _, tx := range txs {
		glyph := "❓"
		if c := hm.lookupCategory(tx.CategoryID); c != nil {
			glyph = c.Glyph
		}
		amount := money.Format(tx.Amount, hm.settings.CurrencyCode)
		line := fmt.Sprintf("  %s %-18s ", glyph, tx.Description)
		if tx.Kind == store.KindIncome {
			line += successStyle.Render("+" + amount)
		} else {
			line += accentStyle.Render("-" + amount)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}
