package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const queryTimeout = 5 * time.Second

// PostgresSource reads products(id, title, description) ordered by id.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) String() string { return "postgres:products" }

func (s *PostgresSource) Products(ctx context.Context) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, title, description
			FROM products
			ORDER BY id ASC
		`)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDatasetUnreadable, err)
		}
		defer rows.Close()

		out = make([]Product, 0, 64)
		for rows.Next() {
			var p Product
			if err := rows.Scan(&p.ID, &p.Title, &p.Description); err != nil {
				return fmt.Errorf("%w: %v", ErrDatasetMalformed, err)
			}
			out = append(out, p)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrDatasetUnreadable, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
