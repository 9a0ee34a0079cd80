package tui

import (
	"time"

	"spendcal/internal/calendar"
	"spendcal/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCalendar viewState = iota
	viewTransactions
	viewSettings
)

var viewNames = []string{"Calendar", "Transactions", "Settings"}

// --- Messages ---

type matrixDataMsg struct {
	year       int
	month      time.Month
	matrix     calendar.MonthMatrix
	settings   store.Settings
	categories map[string]store.Category
}

type txDataMsg struct {
	txs        []store.Transaction
	categories []store.Category
}

type settingsDataMsg struct {
	settings []store.Setting
}

// txMutatedMsg signals a create/update/delete; the calendar reloads its
// whole month rather than patching incrementally.
type txMutatedMsg struct {
	action string // "created", "updated", "deleted"
}

// settingsSavedMsg signals that the settings snapshot changed.
type settingsSavedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}
