package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"spendcal/internal/calendar"
	"spendcal/internal/colorscale"
	"spendcal/internal/money"
	"spendcal/internal/store"
)

// Deviation-from-mean thresholds (percent) above which the comparison
// is surfaced, in the tooltip and the detail panel respectively.
const (
	tooltipDeviationThreshold = 20.0
	detailDeviationThreshold  = 10.0
)

// heatmapModel owns one displayed month: its matrix, a transient
// hovered day driven by cursor movement, and a persisted selected day.
// Hovering never replaces the selection; only enter does.
type heatmapModel struct {
	store  *store.Store
	width  int
	height int

	year  int
	month time.Month

	matrix     calendar.MonthMatrix
	settings   store.Settings
	categories map[string]store.Category
	monthTotal decimal.Decimal
	loaded     bool

	hovered  int // 1-based day under the cursor
	selected int // 1-based day with the persisted selection
}

func newHeatmapModel(s *store.Store) heatmapModel {
	now := time.Now()
	return heatmapModel{store: s, year: now.Year(), month: now.Month()}
}

func (hm heatmapModel) Init() tea.Cmd {
	return hm.loadMonth()
}

// setSize recomputes layout parameters only. The matrix and the
// selection survive every resize.
func (hm *heatmapModel) setSize(w, h int) {
	hm.width = w
	hm.height = h
}

// loadMonth reads the month's transactions, the category directory and
// a fresh settings snapshot, and rebuilds the matrix from scratch.
func (hm heatmapModel) loadMonth() tea.Cmd {
	s, year, month := hm.store, hm.year, hm.month
	return func() tea.Msg {
		txs, _ := s.ListTransactionsForMonth(year, month)
		cats, _ := s.ListCategories()
		byID := make(map[string]store.Category, len(cats))
		for _, c := range cats {
			byID[c.ID] = c
		}
		return matrixDataMsg{
			year:       year,
			month:      month,
			matrix:     calendar.Build(year, month, txs),
			settings:   s.Snapshot(),
			categories: byID,
		}
	}
}

func (hm heatmapModel) update(msg tea.Msg) (heatmapModel, tea.Cmd) {
	switch msg := msg.(type) {
	case matrixDataMsg:
		hm.year = msg.year
		hm.month = msg.month
		hm.matrix = msg.matrix
		hm.settings = msg.settings
		hm.categories = msg.categories
		hm.monthTotal = msg.matrix.TotalExpense()
		hm.loaded = true
		hm.selected = initialSelection(msg.matrix, time.Now())
		hm.hovered = hm.selected
		return hm, nil

	case tea.KeyMsg:
		if !hm.loaded {
			return hm, nil
		}
		switch {
		case key.Matches(msg, keys.Left):
			hm.moveHover(-1)
		case key.Matches(msg, keys.Right):
			hm.moveHover(1)
		case key.Matches(msg, keys.Up):
			hm.moveHover(-7)
		case key.Matches(msg, keys.Down):
			hm.moveHover(7)
		case key.Matches(msg, keys.Enter):
			hm.selected = hm.hovered
		case key.Matches(msg, keys.PrevMonth):
			return hm.navigate(hm.year, hm.month-1)
		case key.Matches(msg, keys.NextMonth):
			return hm.navigate(hm.year, hm.month+1)
		case key.Matches(msg, keys.Today):
			now := time.Now()
			return hm.navigate(now.Year(), now.Month())
		}
	}
	return hm, nil
}

func (hm *heatmapModel) moveHover(delta int) {
	day := hm.hovered + delta
	if day < 1 {
		day = 1
	}
	if day > len(hm.matrix.Days) {
		day = len(hm.matrix.Days)
	}
	hm.hovered = day
}

func (hm heatmapModel) navigate(year int, month time.Month) (heatmapModel, tea.Cmd) {
	// time.Date normalizes month overflow (month 0 and 13 included).
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	hm.year = t.Year()
	hm.month = t.Month()
	hm.loaded = false
	return hm, hm.loadMonth()
}

// initialSelection picks the selected day for a freshly built matrix:
// today when the current month is displayed, otherwise the first day
// with spending, otherwise the 1st.
func initialSelection(m calendar.MonthMatrix, now time.Time) int {
	if m.Year == now.Year() && m.Month == now.Month() {
		return now.Day()
	}
	for i, b := range m.Days {
		if b.TotalExpense.IsPositive() {
			return i + 1
		}
	}
	return 1
}

// cellGap shrinks the horizontal gap between cells as the container
// narrows. A zero or negative width (container not yet laid out)
// degrades to the minimum layout instead of failing.
func cellGap(width int) int {
	switch {
	case width < 50:
		return 0
	case width < 70:
		return 1
	default:
		return 2
	}
}

// percentOfMonth returns dayTotal as a percentage of monthTotal, zero
// when the month has no spending.
func percentOfMonth(dayTotal, monthTotal decimal.Decimal) float64 {
	if monthTotal.IsZero() {
		return 0
	}
	f, _ := dayTotal.Div(monthTotal).Float64()
	return f * 100
}

// deviationFromMean returns the percent deviation of dayTotal from the
// month's mean daily expense, zero when the mean is zero.
func deviationFromMean(dayTotal, mean decimal.Decimal) float64 {
	if mean.IsZero() {
		return 0
	}
	f, _ := dayTotal.Sub(mean).Div(mean).Float64()
	return f * 100
}

func (hm heatmapModel) scheme() colorscale.Scheme {
	return colorscale.ForSettings(hm.settings.ColorScheme, hm.settings.CustomColorHex)
}

func (hm heatmapModel) lookupCategory(id string) *store.Category {
	if c, ok := hm.categories[id]; ok {
		return &c
	}
	return nil
}

func (hm heatmapModel) view() string {
	if !hm.loaded {
		return mutedStyle.Render("Loading…")
	}

	gridPanel := activePanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		hm.renderMonthHeader(),
		"",
		hm.renderGrid(),
		"",
		hm.renderTooltip(),
	))

	detailWidth := hm.width - lipgloss.Width(gridPanel) - 6
	if hm.width >= 96 && detailWidth >= 34 {
		detail := hm.renderDetailPanel(detailWidth)
		return lipgloss.JoinHorizontal(lipgloss.Top, gridPanel, " ", detail)
	}
	detail := hm.renderDetailPanel(hm.width - 6)
	return lipgloss.JoinVertical(lipgloss.Left, gridPanel, detail)
}

func (hm heatmapModel) renderMonthHeader() string {
	label := time.Date(hm.year, hm.month, 1, 0, 0, 0, 0, time.Local).Format("January 2006")
	total := money.Format(hm.monthTotal, hm.settings.CurrencyCode)
	nav := mutedStyle.Render("  [: prev  ]: next  t: today")
	return titleStyle.Render(label) + "  " + highlightStyle.Render(total) + nav
}

func (hm heatmapModel) renderGrid() string {
	gap := strings.Repeat(" ", cellGap(hm.width))
	gutter := hm.settings.ShowWeekNumbers

	var lines []string

	weekdays := []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	var header []string
	if gutter {
		header = append(header, weekNumberStyle.Render("    "))
	}
	for _, wd := range weekdays {
		header = append(header, weekdayHeaderStyle.Render(" "+wd+" "))
	}
	lines = append(lines, strings.Join(header, gap))

	for row := 0; row < hm.matrix.WeekRows; row++ {
		var cells []string
		if gutter {
			cells = append(cells, weekNumberStyle.Render(fmt.Sprintf("W%-3d", hm.rowWeekNumber(row))))
		}
		for col := 0; col < 7; col++ {
			day := row*7 + col - hm.matrix.FirstWeekday + 1
			if day < 1 || day > len(hm.matrix.Days) {
				cells = append(cells, "    ")
				continue
			}
			cells = append(cells, hm.renderCell(day))
		}
		lines = append(lines, strings.Join(cells, gap))
	}
	return strings.Join(lines, "\n")
}

// rowWeekNumber returns the ISO week of the first real day in a grid row.
func (hm heatmapModel) rowWeekNumber(row int) int {
	day := row*7 - hm.matrix.FirstWeekday + 1
	if day < 1 {
		day = 1
	}
	return calendar.WeekNumber(time.Date(hm.year, hm.month, day, 0, 0, 0, 0, time.Local))
}

func (hm heatmapModel) renderCell(day int) string {
	bucket := hm.matrix.Bucket(day)
	bg := hm.scheme().ColorFor(bucket.TotalExpense, hm.matrix.MaxDayAmount)
	fg := colorscale.ReadableTextColor(bg)

	style := lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg))

	text := fmt.Sprintf(" %2d ", day)
	if day == hm.selected {
		// The selection border persists regardless of where the cursor is.
		text = fmt.Sprintf("[%2d]", day)
		style = style.Inherit(selectedCellStyle)
	}
	if day == hm.hovered {
		style = style.Inherit(hoveredCellStyle)
	}
	return style.Render(text)
}

// renderTooltip shows the hovered day's total and share of the month,
// plus the mean-daily comparison when the deviation is large enough.
func (hm heatmapModel) renderTooltip() string {
	bucket := hm.matrix.Bucket(hm.hovered)
	total := money.Format(bucket.TotalExpense, hm.settings.CurrencyCode)
	pct := percentOfMonth(bucket.TotalExpense, hm.monthTotal)

	line := fmt.Sprintf("%s — %s · %.1f%% of month", bucket.Label, total, pct)

	dev := deviationFromMean(bucket.TotalExpense, hm.matrix.MeanDailyExpense())
	if dev > tooltipDeviationThreshold {
		line += fmt.Sprintf(" · %.0f%% above daily avg", dev)
	} else if dev < -tooltipDeviationThreshold {
		line += fmt.Sprintf(" · %.0f%% below daily avg", -dev)
	}
	return mutedStyle.Render(line)
}
