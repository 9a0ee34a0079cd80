package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"spendcal/internal/aggregate"
	"spendcal/internal/daterange"
	"spendcal/internal/money"
	"spendcal/internal/store"
)

// rangeCycle is the order the f key walks through the list filter.
var rangeCycle = []daterange.Kind{
	daterange.ThisMonth,
	daterange.Today,
	daterange.ThisWeek,
	daterange.LastMonth,
	daterange.ThisYear,
}

type transactionsModel struct {
	store  *store.Store
	width  int
	height int

	txs        []store.Transaction
	categories []store.Category
	cursor     int
	rangeIdx   int
	settings   store.Settings

	formActive bool
	form       *huh.Form
	editingID  string // empty when creating

	// Form field pointers (survive value copies)
	formDescription *string
	formAmount      *string
	formKind        *string
	formCategoryID  *string
	formDate        *string
	formNotes       *string
}

func newTransactionsModel(s *store.Store) transactionsModel {
	desc, amount, kind, cat, date, notes := "", "", string(store.KindExpense), "", "", ""
	return transactionsModel{
		store:           s,
		formDescription: &desc,
		formAmount:      &amount,
		formKind:        &kind,
		formCategoryID:  &cat,
		formDate:        &date,
		formNotes:       &notes,
	}
}

func (t *transactionsModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t transactionsModel) currentRange() daterange.Range {
	return daterange.Resolve(rangeCycle[t.rangeIdx], time.Now())
}

func (t transactionsModel) refresh() tea.Cmd {
	s, r := t.store, t.currentRange()
	return func() tea.Msg {
		all, _ := s.ListAllTransactions()
		cats, _ := s.ListCategories()
		return txDataMsg{
			txs:        aggregate.InRange(all, r),
			categories: cats,
		}
	}
}

func (t transactionsModel) update(msg tea.Msg) (transactionsModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case txDataMsg:
		t.txs = msg.txs
		t.categories = msg.categories
		t.settings = t.store.Snapshot()
		if t.cursor >= len(t.txs) {
			t.cursor = max(0, len(t.txs)-1)
		}
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(t.txs)-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.Filter):
			t.rangeIdx = (t.rangeIdx + 1) % len(rangeCycle)
			t.cursor = 0
			return t, t.refresh()
		case key.Matches(msg, keys.New):
			return t.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(t.txs) > 0 {
				tx := t.txs[t.cursor]
				return t.showForm(&tx)
			}
		case key.Matches(msg, keys.Delete):
			if len(t.txs) > 0 {
				t.store.DeleteTransaction(t.txs[t.cursor].ID)
				return t, func() tea.Msg { return txMutatedMsg{action: "deleted"} }
			}
		}
	}
	return t, nil
}

func (t transactionsModel) showForm(tx *store.Transaction) (transactionsModel, tea.Cmd) {
	if tx != nil {
		t.editingID = tx.ID
		*t.formDescription = tx.Description
		*t.formAmount = tx.Amount.String()
		*t.formKind = string(tx.Kind)
		*t.formCategoryID = tx.CategoryID
		*t.formDate = tx.Date.Format("2006-01-02")
		*t.formNotes = tx.Notes
	} else {
		t.editingID = ""
		*t.formDescription = ""
		*t.formAmount = ""
		*t.formKind = string(store.KindExpense)
		*t.formCategoryID = ""
		*t.formDate = time.Now().Format("2006-01-02")
		*t.formNotes = ""
	}

	catOptions := make([]huh.Option[string], 0, len(t.categories)+1)
	for _, c := range t.categories {
		catOptions = append(catOptions, huh.NewOption(c.Glyph+" "+c.Name, c.ID))
	}
	catOptions = append(catOptions, huh.NewOption("(none)", ""))

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Description").Value(t.formDescription),
			huh.NewInput().Title("Amount").Value(t.formAmount).Validate(validateAmount),
			huh.NewSelect[string]().Title("Kind").
				Options(
					huh.NewOption("Expense", string(store.KindExpense)),
					huh.NewOption("Income", string(store.KindIncome)),
				).Value(t.formKind),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(t.formCategoryID),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(t.formDate).Validate(validateDate),
			huh.NewInput().Title("Notes").Value(t.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateDate(s string) error {
	_, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local)
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func (t transactionsModel) updateForm(msg tea.Msg) (transactionsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		return t, t.saveForm()
	}

	return t, cmd
}

func (t transactionsModel) saveForm() tea.Cmd {
	amount, err := decimal.NewFromString(strings.TrimSpace(*t.formAmount))
	if err != nil {
		return func() tea.Msg { return statusMsg{text: "Invalid amount", isError: true} }
	}
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(*t.formDate), time.Local)
	if err != nil {
		return func() tea.Msg { return statusMsg{text: "Invalid date", isError: true} }
	}

	kind := store.Kind(*t.formKind)
	if t.editingID != "" {
		if err := t.store.UpdateTransaction(t.editingID, date, kind, amount, *t.formDescription, *t.formCategoryID, *t.formNotes); err != nil {
			return func() tea.Msg { return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true} }
		}
		return func() tea.Msg { return txMutatedMsg{action: "updated"} }
	}
	if _, err := t.store.CreateTransaction(date, kind, amount, *t.formDescription, *t.formCategoryID, *t.formNotes); err != nil {
		return func() tea.Msg { return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true} }
	}
	return func() tea.Msg { return txMutatedMsg{action: "created"} }
}

func (t transactionsModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		title := titleStyle.Render("New Transaction")
		if t.editingID != "" {
			title = titleStyle.Render("Edit Transaction")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View())
		return panelStyle.Width(w).Render(content)
	}

	r := t.currentRange()
	header := titleStyle.Render("Transactions") + "  " + mutedStyle.Render(r.Label)

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	if len(t.txs) == 0 {
		rows = append(rows, mutedStyle.Render("No transactions in this range. Press n to add one."))
	} else {
		for i, tx := range t.txs {
			rows = append(rows, t.renderRow(i, tx))
		}
	}

	rows = append(rows, "")
	rows = append(rows, t.renderTotals())
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  f: cycle range"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t transactionsModel) renderRow(i int, tx store.Transaction) string {
	cursor := "  "
	style := normalItemStyle
	if i == t.cursor {
		cursor = "> "
		style = selectedItemStyle
	}

	glyph := "❓"
	for _, c := range t.categories {
		if c.ID == tx.CategoryID {
			glyph = c.Glyph
			break
		}
	}

	amount := money.Format(tx.Amount, t.settings.CurrencyCode)
	amountCol := accentStyle.Render("-" + amount)
	if tx.Kind == store.KindIncome {
		amountCol = successStyle.Render("+" + amount)
	}

	return style.Render(fmt.Sprintf("%s%s %s %-28s", cursor, tx.Date.Format("Jan 02"), glyph, tx.Description)) + " " + amountCol
}

func (t transactionsModel) renderTotals() string {
	income := money.Format(aggregate.TotalIncome(t.txs), t.settings.CurrencyCode)
	expense := money.Format(aggregate.TotalExpense(t.txs), t.settings.CurrencyCode)
	balance := money.Format(aggregate.Balance(t.txs), t.settings.CurrencyCode)
	return fmt.Sprintf("  %s %s   %s %s   %s %s",
		mutedStyle.Render("In"), successStyle.Render(income),
		mutedStyle.Render("Out"), accentStyle.Render(expense),
		mutedStyle.Render("Balance"), highlightStyle.Render(balance),
	)
}
