package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"worldcup/internal/models"
)

// OpenSQLite opens a SQLite database file. Only reads are ever issued on it.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return db, nil
}

// SQLiteReader provides read-only access to the results table in SQLite.
type SQLiteReader struct {
	db    *sql.DB
	table string
}

func NewSQLiteReader(db *sql.DB, table string) (*SQLiteReader, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return &SQLiteReader{db: db, table: table}, nil
}

// ReadEditions returns every row ordered by year. A NULL in any column is an error.
func (r *SQLiteReader) ReadEditions(ctx context.Context) ([]models.Edition, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(selectEditions, `"`+r.table+`"`))
	if err != nil {
		return nil, fmt.Errorf("query editions: %w", err)
	}
	defer rows.Close()

	var editions []models.Edition
	for rows.Next() {
		var e models.Edition
		if err := rows.Scan(&e.Year, &e.Winner, &e.WinnerCode, &e.RunnerUp, &e.RunnerUpCode); err != nil {
			return nil, fmt.Errorf("scan edition: %w", err)
		}
		editions = append(editions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate editions: %w", err)
	}
	return editions, nil
}
