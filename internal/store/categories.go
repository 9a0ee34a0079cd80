package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (s *Store) CreateCategory(name, glyph string, kind Kind) (*Category, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO categories (id, name, glyph, kind) VALUES (?, ?, ?, ?)`,
		id, name, glyph, string(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return s.mustGetCategory(id)
}

// GetCategory returns (nil, nil) when the category does not exist.
// Deleted categories are a normal condition: transactions keep their
// category id and aggregation falls back to a sentinel label.
func (s *Store) GetCategory(id string) (*Category, error) {
	c, err := s.getCategory(id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category %s: %w", id, err)
	}
	return c, nil
}

func (s *Store) mustGetCategory(id string) (*Category, error) {
	c, err := s.getCategory(id)
	if err != nil {
		return nil, fmt.Errorf("get category %s: %w", id, err)
	}
	return c, nil
}

func (s *Store) getCategory(id string) (*Category, error) {
	c := &Category{}
	var kind, createdAt string
	err := s.db.QueryRow(
		`SELECT id, name, glyph, kind, created_at FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Glyph, &kind, &createdAt)
	if err != nil {
		return nil, err
	}
	c.Kind = Kind(kind)
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return c, nil
}

func (s *Store) ListCategories() ([]Category, error) {
	rows, err := s.db.Query(`SELECT id, name, glyph, kind, created_at FROM categories ORDER BY kind, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		var kind, createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Glyph, &kind, &createdAt); err != nil {
			return nil, err
		}
		c.Kind = Kind(kind)
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DeleteCategory removes a category. Transactions referencing it keep
// their id and aggregate under the unknown-category sentinel.
func (s *Store) DeleteCategory(id string) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
