// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lists persists user reading lists in SQLite. A list is an ordered
// set of books with a name, slug, emoji and visibility; lists are returned
// newest first.
package lists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/curated-reads/pkg/types"
)

const defaultDBPath = "data/lists.db"

// timeLayout matches the ISO-8601 millisecond form browsers produce.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	// ErrListNotFound is returned for operations on an unknown list id.
	ErrListNotFound = errors.New("list not found")

	// ErrInvalidInput wraps validation failures of list input.
	ErrInvalidInput = errors.New("invalid list input")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateInput holds the fields a new list is created with.
type CreateInput struct {
	Name        string               `json:"name" validate:"required,max=120"`
	Description string               `json:"description,omitempty" validate:"max=2000"`
	Emoji       string               `json:"emoji,omitempty" validate:"max=16"`
	Visibility  types.ListVisibility `json:"visibility,omitempty" validate:"omitempty,oneof=private unlisted public"`
}

// MetaUpdate holds optional metadata changes. Nil fields are left alone.
type MetaUpdate struct {
	Name        *string               `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string               `json:"description,omitempty" validate:"omitempty,max=2000"`
	Emoji       *string               `json:"emoji,omitempty" validate:"omitempty,max=16"`
	Visibility  *types.ListVisibility `json:"visibility,omitempty" validate:"omitempty,oneof=private unlisted public"`
}

// Store manages the reading-list SQLite database.
type Store struct {
	db    *sql.DB
	clock clockwork.Clock
}

// Open opens or creates the database at cfg.DBPath and ensures the schema
// exists. A nil clock uses the real clock.
func Open(cfg types.ListsConfig, clock clockwork.Clock) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = defaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Store{db: db, clock: clock}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS lists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			emoji TEXT NOT NULL DEFAULT '',
			visibility TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS list_books (
			list_id TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
			book_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			cover_image_url TEXT NOT NULL DEFAULT '',
			published_year INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (list_id, book_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_list_books_position ON list_books(list_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_lists_slug ON lists(slug)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name, collapses every run of characters outside
// [a-z0-9] into one hyphen and trims hyphens from both ends.
func Slugify(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func (s *Store) now() string {
	return s.clock.Now().UTC().Format(timeLayout)
}

// Create stores a new, empty list. Visibility defaults to private.
func (s *Store) Create(ctx context.Context, in CreateInput) (types.ReadingList, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return types.ReadingList{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.Visibility == "" {
		in.Visibility = types.VisibilityPrivate
	}

	now := s.now()
	l := types.ReadingList{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Slug:        Slugify(in.Name),
		Description: in.Description,
		Emoji:       in.Emoji,
		Visibility:  in.Visibility,
		Books:       []types.ListBook{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lists (id, name, slug, description, emoji, visibility, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Slug, l.Description, l.Emoji, string(l.Visibility), l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return types.ReadingList{}, fmt.Errorf("inserting list: %w", err)
	}
	return l, nil
}

// Get returns the list with its books in list order.
func (s *Store) Get(ctx context.Context, id string) (types.ReadingList, error) {
	var l types.ReadingList
	var visibility string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, slug, description, emoji, visibility, created_at, updated_at
		 FROM lists WHERE id = ?`, id,
	).Scan(&l.ID, &l.Name, &l.Slug, &l.Description, &l.Emoji, &visibility, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ReadingList{}, ErrListNotFound
	}
	if err != nil {
		return types.ReadingList{}, fmt.Errorf("querying list: %w", err)
	}
	l.Visibility = types.ListVisibility(visibility)

	books, err := s.books(ctx, `WHERE list_id = ?`, id)
	if err != nil {
		return types.ReadingList{}, err
	}
	l.Books = books[id]
	if l.Books == nil {
		l.Books = []types.ListBook{}
	}
	return l, nil
}

// List returns every list, newest first.
func (s *Store) List(ctx context.Context) ([]types.ReadingList, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, slug, description, emoji, visibility, created_at, updated_at
		 FROM lists ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying lists: %w", err)
	}
	defer rows.Close()

	lists := []types.ReadingList{}
	for rows.Next() {
		var l types.ReadingList
		var visibility string
		if err := rows.Scan(&l.ID, &l.Name, &l.Slug, &l.Description, &l.Emoji, &visibility, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning list: %w", err)
		}
		l.Visibility = types.ListVisibility(visibility)
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lists: %w", err)
	}

	books, err := s.books(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range lists {
		lists[i].Books = books[lists[i].ID]
		if lists[i].Books == nil {
			lists[i].Books = []types.ListBook{}
		}
	}
	return lists, nil
}

// books loads list entries grouped by list id, each group in list order.
func (s *Store) books(ctx context.Context, where string, args ...any) (map[string][]types.ListBook, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT list_id, book_id, title, authors, cover_image_url, published_year
		 FROM list_books `+where+` ORDER BY list_id, position`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying list books: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]types.ListBook)
	for rows.Next() {
		var (
			listID, authorsJSON string
			b                   types.ListBook
			year                int
		)
		if err := rows.Scan(&listID, &b.ID, &b.Title, &authorsJSON, &b.CoverImageURL, &year); err != nil {
			return nil, fmt.Errorf("scanning list book: %w", err)
		}
		if err := json.Unmarshal([]byte(authorsJSON), &b.Authors); err != nil {
			return nil, fmt.Errorf("decoding authors of %s: %w", b.ID, err)
		}
		b.PublishedYear = types.Year(year)
		out[listID] = append(out[listID], b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating list books: %w", err)
	}
	return out, nil
}

// AddBook appends book to the list. A book already on the list is left in
// place, the list is not touched and added is false.
func (s *Store) AddBook(ctx context.Context, listID string, book types.ListBook) (added bool, err error) {
	if err := validate.Struct(book); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if book.Authors == nil {
		book.Authors = []string{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := listExists(ctx, tx, listID); err != nil {
		return false, err
	}

	authorsJSON, err := json.Marshal(book.Authors)
	if err != nil {
		return false, fmt.Errorf("encoding authors: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO list_books (list_id, book_id, position, title, authors, cover_image_url, published_year)
		 SELECT ?, ?, COALESCE(MAX(position), -1) + 1, ?, ?, ?, ?
		 FROM list_books WHERE list_id = ?
		 ON CONFLICT(list_id, book_id) DO NOTHING`,
		listID, book.ID, book.Title, string(authorsJSON), book.CoverImageURL, int(book.PublishedYear), listID,
	)
	if err != nil {
		return false, fmt.Errorf("inserting list book: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking insert: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if err := touch(ctx, tx, listID, s.now()); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing: %w", err)
	}
	return true, nil
}

// RemoveBook drops bookID from the list and bumps the list's update time.
func (s *Store) RemoveBook(ctx context.Context, listID, bookID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := listExists(ctx, tx, listID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM list_books WHERE list_id = ? AND book_id = ?`, listID, bookID,
	); err != nil {
		return fmt.Errorf("deleting list book: %w", err)
	}
	if err := touch(ctx, tx, listID, s.now()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// UpdateMeta applies upd and returns the updated list. The slug keeps the
// value derived at creation.
func (s *Store) UpdateMeta(ctx context.Context, id string, upd MetaUpdate) (types.ReadingList, error) {
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		upd.Name = &trimmed
	}
	if err := validate.Struct(upd); err != nil {
		return types.ReadingList{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		sets []string
		args []any
	)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Emoji != nil {
		sets = append(sets, "emoji = ?")
		args = append(args, *upd.Emoji)
	}
	if upd.Visibility != nil {
		sets = append(sets, "visibility = ?")
		args = append(args, string(*upd.Visibility))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, s.now(), id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE lists SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return types.ReadingList{}, fmt.Errorf("updating list: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.ReadingList{}, ErrListNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes the list and its books.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting list: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete: %w", err)
	}
	if n == 0 {
		return ErrListNotFound
	}
	return nil
}

func listExists(ctx context.Context, tx *sql.Tx, id string) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM lists WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrListNotFound
	}
	if err != nil {
		return fmt.Errorf("querying list: %w", err)
	}
	return nil
}

func touch(ctx context.Context, tx *sql.Tx, id, now string) error {
	if _, err := tx.ExecContext(ctx, `UPDATE lists SET updated_at = ? WHERE id = ?`, now, id); err != nil {
		return fmt.Errorf("updating list timestamp: %w", err)
	}
	return nil
}
