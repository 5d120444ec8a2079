package faqrepo

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS faqs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	question_hi TEXT,
	answer_hi TEXT,
	question_bn TEXT,
	answer_bn TEXT,
	question_es TEXT,
	answer_es TEXT,
	question_te TEXT,
	answer_te TEXT,
	question_sa TEXT,
	answer_sa TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteRepository implements faq.Repository on database/sql with the sqlite3 driver.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database file at path and ensures the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)
	repo, err := NewSQLiteRepository(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// NewSQLiteRepository wraps an open handle and creates the faqs table if missing.
func NewSQLiteRepository(ctx context.Context, db *sql.DB) (*SQLiteRepository, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, err
	}
	return &SQLiteRepository{db: db}, nil
}

// List implements faq.Repository.
func (r *SQLiteRepository) List(ctx context.Context) ([]faq.FAQ, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns()+` FROM faqs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]faq.FAQ, 0)
	for rows.Next() {
		record, err := scanFAQ(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// Get implements faq.Repository.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (faq.FAQ, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns()+` FROM faqs WHERE id = ?`, id)
	record, err := scanFAQ(row)
	if errors.Is(err, sql.ErrNoRows) {
		return faq.FAQ{}, false, nil
	}
	if err != nil {
		return faq.FAQ{}, false, err
	}
	return record, true, nil
}

// Insert implements faq.Repository.
func (r *SQLiteRepository) Insert(ctx context.Context, record faq.FAQ) (faq.FAQ, error) {
	res, err := r.db.ExecContext(ctx, insertStatement(questionPlaceholder), insertArgs(record)...)
	if err != nil {
		return faq.FAQ{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return faq.FAQ{}, err
	}
	stored := record.Clone()
	stored.ID = id
	return stored, nil
}

// Update implements faq.Repository.
func (r *SQLiteRepository) Update(ctx context.Context, record faq.FAQ) (faq.FAQ, bool, error) {
	res, err := r.db.ExecContext(ctx, updateStatement(questionPlaceholder), updateArgs(record)...)
	if err != nil {
		return faq.FAQ{}, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return faq.FAQ{}, false, err
	}
	if affected == 0 {
		return faq.FAQ{}, false, nil
	}
	return record.Clone(), true, nil
}

// Delete implements faq.Repository.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

var _ faq.Repository = (*SQLiteRepository)(nil)
