package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"

	_ "modernc.org/sqlite"
)

const selectExpenses = `SELECT id, title, amount, selected_type, selected_date FROM expenses ORDER BY id`

type SQLiteRepository struct {
	db     *sql.DB
	logger *applog.Logger
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// migrates it.
func NewSQLiteRepository(dbPath string, logger *applog.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = applog.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:     db,
		logger: logger.WithComponent(applog.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// List returns every record in insertion order.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, selectExpenses)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var (
			id int64
			e  core.Expense
		)
		if err := rows.Scan(&id, &e.Title, &e.Amount, &e.SelectedType, &e.SelectedDate); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.ID = strconv.FormatInt(id, 10)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Create inserts e and returns it with the id assigned by the database.
// Any id on e is ignored.
func (r *SQLiteRepository) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (title, amount, selected_type, selected_date) VALUES (?, ?, ?, ?)`,
		e.Title, e.Amount, string(e.SelectedType), e.SelectedDate)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	e.ID = strconv.FormatInt(id, 10)

	r.logger.InfoContext(ctx, "Expense saved to SQLite",
		applog.NewFields().
			WithExpense(e.ID, e.Title, e.Amount, string(e.SelectedType)).
			ToSlice()...)
	return e, nil
}

// Update overwrites every field of the record with e's id.
func (r *SQLiteRepository) Update(ctx context.Context, e core.Expense) error {
	id, err := parseID(e.ID)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET title = ?, amount = ?, selected_type = ?, selected_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		e.Title, e.Amount, string(e.SelectedType), e.SelectedDate, id)
	if err != nil {
		return fmt.Errorf("update expense %s: %w", e.ID, err)
	}
	return expectOneRow(res, e.ID)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, n)
	if err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	if err := expectOneRow(res, id); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "Expense deleted from SQLite", applog.FieldExpenseID, id)
	return nil
}

// parseID maps ids that cannot be rowids to ErrNotFound.
func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expense %q: %w", id, core.ErrNotFound)
	}
	return n, nil
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("expense %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
	}
	return nil
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}
