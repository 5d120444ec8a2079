package faq

import "context"

// Repository persists FAQ records. Lookups report absence through the bool result.
type Repository interface {
	List(ctx context.Context) ([]FAQ, error)
	Get(ctx context.Context, id int64) (FAQ, bool, error)
	Insert(ctx context.Context, record FAQ) (FAQ, error)
	Update(ctx context.Context, record FAQ) (FAQ, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
