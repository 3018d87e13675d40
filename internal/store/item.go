package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/sabzi/internal/model"
)

var ErrEmptyName = errors.New("item name is required")

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.ShoppingItem, error) {
	var item model.ShoppingItem
	var note sql.NullString
	var status string

	err := scanner.Scan(
		&item.ID, &item.Name, &item.Quantity, &note, &status,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Status = model.ItemStatus(status)
	if note.Valid {
		item.Note = &note.String
	}
	return &item, nil
}

const itemCols = `id, name, quantity, note, status, created_at, updated_at`

func nullNote(note *string) sql.NullString {
	if note == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *note, Valid: true}
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertItem(e execer, item model.ShoppingItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return ErrEmptyName
	}
	_, err := e.Exec(
		`INSERT INTO shopping_items (`+itemCols+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Quantity, nullNote(item.Note), string(item.Status),
		item.CreatedAt.UTC(), item.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert item %s: %w", item.ID, err)
	}
	return nil
}

func (s *ItemStore) GetByID(id string) (*model.ShoppingItem, error) {
	row := s.db.QueryRow(`SELECT `+itemCols+` FROM shopping_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns every item in creation order.
func (s *ItemStore) List() ([]model.ShoppingItem, error) {
	rows, err := s.db.Query(`SELECT ` + itemCols + ` FROM shopping_items ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.ShoppingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ItemStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM shopping_items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

func (s *ItemStore) Create(item model.ShoppingItem) (*model.ShoppingItem, error) {
	if err := insertItem(s.db, item); err != nil {
		return nil, err
	}
	return s.GetByID(item.ID)
}

// CreateBatch inserts items in one transaction; either all land or none do.
func (s *ItemStore) CreateBatch(items []model.ShoppingItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		if err := insertItem(tx, item); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// ReplaceAll swaps the whole collection for items in one transaction.
func (s *ItemStore) ReplaceAll(items []model.ShoppingItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM shopping_items`); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	for _, item := range items {
		if err := insertItem(tx, item); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (s *ItemStore) Update(id, name, quantity string, note *string, status model.ItemStatus, updatedAt time.Time) (*model.ShoppingItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	_, err := s.db.Exec(
		`UPDATE shopping_items SET name = ?, quantity = ?, note = ?, status = ?, updated_at = ? WHERE id = ?`,
		name, quantity, nullNote(note), string(status), updatedAt.UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.GetByID(id)
}

// SetStatus moves an item to another bucket. Returns nil, nil if id is unknown.
func (s *ItemStore) SetStatus(id string, status model.ItemStatus, updatedAt time.Time) (*model.ShoppingItem, error) {
	_, err := s.db.Exec(
		`UPDATE shopping_items SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), updatedAt.UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}
	return s.GetByID(id)
}

func (s *ItemStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM shopping_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
