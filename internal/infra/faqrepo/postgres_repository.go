package faqrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
)

// PostgresRepository implements faq.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List returns every row ordered by id.
func (r *PostgresRepository) List(ctx context.Context) ([]faq.FAQ, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns()+` FROM faqs ORDER BY id`)
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

// Get fetches a row by id.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (faq.FAQ, bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns()+` FROM faqs WHERE id = $1`, id)
	record, err := scanFAQ(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return faq.FAQ{}, false, nil
	}
	if err != nil {
		return faq.FAQ{}, false, err
	}
	return record, true, nil
}

// Insert adds a row and returns it with the assigned id.
func (r *PostgresRepository) Insert(ctx context.Context, record faq.FAQ) (faq.FAQ, error) {
	row := r.pool.QueryRow(ctx, insertStatement(dollarPlaceholder)+` RETURNING `+selectColumns(), insertArgs(record)...)
	return scanFAQ(row)
}

// Update rewrites the canonical and translated columns of an existing row.
func (r *PostgresRepository) Update(ctx context.Context, record faq.FAQ) (faq.FAQ, bool, error) {
	row := r.pool.QueryRow(ctx, updateStatement(dollarPlaceholder)+` RETURNING `+selectColumns(), updateArgs(record)...)
	stored, err := scanFAQ(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return faq.FAQ{}, false, nil
	}
	if err != nil {
		return faq.FAQ{}, false, err
	}
	return stored, true, nil
}

// Delete removes a row by id.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

var _ faq.Repository = (*PostgresRepository)(nil)
