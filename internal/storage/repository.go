package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tally/internal/core"

	_ "modernc.org/sqlite"
)

// Repository is the durable table of expense records. Every operation opens
// its own implicit transaction and commits before returning; correctness of
// concurrent writers is delegated to SQLite's serialization.
type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert writes one new expense row and returns the store-assigned id.
func (r *Repository) Insert(ctx context.Context, e core.NewExpense) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (date, amount, category, subcategory, note) VALUES (?, ?, ?, ?, ?)`,
		e.Date, e.Amount, e.Category, e.Subcategory, e.Note)
	if err != nil {
		return 0, &core.StorageError{Op: "insert", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &core.StorageError{Op: "insert", Err: err}
	}

	slog.InfoContext(ctx, "Expense recorded",
		"id", id,
		"date", e.Date,
		"amount", e.Amount,
		"category", e.Category)

	return id, nil
}

// Get returns the expense with the given id, or core.ErrNotFound.
func (r *Repository) Get(ctx context.Context, id int64) (core.Expense, error) {
	var e core.Expense
	err := r.db.QueryRowContext(ctx,
		`SELECT id, date, amount, category, subcategory, note FROM expenses WHERE id = ?`, id).
		Scan(&e.ID, &e.Date, &e.Amount, &e.Category, &e.Subcategory, &e.Note)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, &core.StorageError{Op: "get", Err: err}
	}
	return e, nil
}

// ListRange returns all expenses with date in [start, end], both bounds
// inclusive, ordered by id ascending so same-date records keep insertion
// order. An inverted range matches nothing and is not an error.
func (r *Repository) ListRange(ctx context.Context, start, end string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, amount, category, subcategory, note
         FROM expenses
         WHERE date BETWEEN ? AND ?
         ORDER BY id ASC`,
		start, end)
	if err != nil {
		return nil, &core.StorageError{Op: "list", Err: err}
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Amount, &e.Category, &e.Subcategory, &e.Note); err != nil {
			return nil, &core.StorageError{Op: "list", Err: err}
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "list", Err: err}
	}

	return expenses, nil
}

// Update applies a sparse update: only the supplied fields change. The
// statement is generated from the (column, value) pairs and executed with
// bound parameters only; caller values never reach the SQL text.
func (r *Repository) Update(ctx context.Context, id int64, upd core.ExpenseUpdate) error {
	fields := upd.Fields()
	if len(fields) == 0 {
		return core.ErrNoFields
	}

	assignments := make([]string, len(fields))
	args := make([]any, 0, len(fields)+1)
	for i, f := range fields {
		assignments[i] = f.Name + " = ?"
		args = append(args, f.Value)
	}
	args = append(args, id)

	query := "UPDATE expenses SET " + strings.Join(assignments, ", ") + " WHERE id = ?"

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return &core.StorageError{Op: "update", Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return &core.StorageError{Op: "update", Err: err}
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Expense updated", "id", id, "fields", len(fields))
	return nil
}

// Summarize sums amounts grouped by category over [start, end] inclusive.
// A non-empty category restricts the aggregate to that category. The base
// clause and its parameters are built together and the optional filter is
// appended as a parameterized clause before anything executes.
func (r *Repository) Summarize(ctx context.Context, start, end, category string) ([]core.CategoryTotal, error) {
	query := `SELECT category, SUM(amount) AS total_amount
              FROM expenses
              WHERE date BETWEEN ? AND ?`
	args := []any{start, end}

	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}

	query += " GROUP BY category ORDER BY category ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &core.StorageError{Op: "summarize", Err: err}
	}
	defer rows.Close()

	totals := []core.CategoryTotal{}
	for rows.Next() {
		var t core.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, &core.StorageError{Op: "summarize", Err: err}
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "summarize", Err: err}
	}

	return totals, nil
}
