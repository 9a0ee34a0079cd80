package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind discriminates expense and income records. A single parameterized
// type is used for both; behavior differences are data, not subclasses.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

type Transaction struct {
	ID          string
	Date        time.Time // local calendar day at midnight, no tz conversion
	Kind        Kind
	Amount      decimal.Decimal // non-negative
	Description string
	CategoryID  string
	Notes       string
	CreatedAt   time.Time
}

type Category struct {
	ID        string
	Name      string
	Glyph     string
	Kind      Kind
	CreatedAt time.Time
}

type Setting struct {
	Key   string
	Value string
}

// Settings is an immutable snapshot of the user-facing settings. Each
// rebuild of the calendar reads a fresh snapshot instead of consulting
// shared state mid-render.
type Settings struct {
	CurrencyCode    string
	ColorScheme     string
	CustomColorHex  string
	ShowWeekNumbers bool
}

// TxFilter is used to filter transactions in queries.
type TxFilter struct {
	From       *time.Time
	To         *time.Time
	Kind       Kind
	CategoryID string
	Limit      int
}
