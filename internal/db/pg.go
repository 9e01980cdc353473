package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"worldcup/internal/models"
)

// NewPool configures a pgx connection pool for the results database.
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	return pgxpool.NewWithConfig(ctx, cfg)
}

// PostgresReader provides read-only access to the results table in PostgreSQL.
type PostgresReader struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresReader creates a reader for table.
func NewPostgresReader(pool *pgxpool.Pool, table string) (*PostgresReader, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return &PostgresReader{pool: pool, table: table}, nil
}

// ReadEditions returns every row in table order by year. A NULL in any column is an error.
func (r *PostgresReader) ReadEditions(ctx context.Context) ([]models.Edition, error) {
	query := fmt.Sprintf(selectEditions, pgx.Identifier{r.table}.Sanitize())
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query editions: %w", err)
	}

	editions, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Edition])
	if err != nil {
		return nil, fmt.Errorf("scan editions: %w", err)
	}
	return editions, nil
}
