package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func (s *Store) CreateTransaction(date time.Time, kind Kind, amount decimal.Decimal, description, categoryID, notes string) (*Transaction, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("create transaction: negative amount %s", amount)
	}
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO transactions (id, tx_date, kind, amount, description, category_id, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, date.Format(dateLayout), string(kind), amount.String(), description, categoryID, notes, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return s.GetTransaction(id)
}

func (s *Store) UpdateTransaction(id string, date time.Time, kind Kind, amount decimal.Decimal, description, categoryID, notes string) error {
	if amount.IsNegative() {
		return fmt.Errorf("update transaction: negative amount %s", amount)
	}
	_, err := s.db.Exec(
		`UPDATE transactions SET tx_date = ?, kind = ?, amount = ?, description = ?, category_id = ?, notes = ? WHERE id = ?`,
		date.Format(dateLayout), string(kind), amount.String(), description, categoryID, notes, id,
	)
	return err
}

func (s *Store) DeleteTransaction(id string) error {
	_, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, id)
	return err
}

func (s *Store) GetTransaction(id string) (*Transaction, error) {
	row := s.db.QueryRow(
		`SELECT id, tx_date, kind, amount, description, category_id, notes, created_at
		 FROM transactions WHERE id = ?`, id,
	)
	tx, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return tx, nil
}

// ListTransactionsForMonth returns all transactions dated within the given
// calendar month, ordered by date.
func (s *Store) ListTransactionsForMonth(year int, month time.Month) ([]Transaction, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	next := first.AddDate(0, 1, 0)
	from, to := first, next.AddDate(0, 0, -1)
	return s.ListTransactions(TxFilter{From: &from, To: &to})
}

func (s *Store) ListAllTransactions() ([]Transaction, error) {
	return s.ListTransactions(TxFilter{})
}

func (s *Store) ListTransactions(f TxFilter) ([]Transaction, error) {
	query := `SELECT id, tx_date, kind, amount, description, category_id, notes, created_at FROM transactions WHERE 1=1`
	var args []any

	if f.From != nil {
		query += ` AND tx_date >= ?`
		args = append(args, f.From.Format(dateLayout))
	}
	if f.To != nil {
		query += ` AND tx_date <= ?`
		args = append(args, f.To.Format(dateLayout))
	}
	if f.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(f.Kind))
	}
	if f.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	query += ` ORDER BY tx_date, created_at`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*Transaction, error) {
	tx := &Transaction{}
	var txDate, kind, amount, createdAt string
	if err := row.Scan(&tx.ID, &txDate, &kind, &amount, &tx.Description, &tx.CategoryID, &tx.Notes, &createdAt); err != nil {
		return nil, err
	}
	tx.Kind = Kind(kind)
	var err error
	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	tx.Date, err = time.ParseInLocation(dateLayout, txDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", txDate, err)
	}
	tx.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return tx, nil
}
