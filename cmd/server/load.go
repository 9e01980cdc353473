package main

import (
	"context"
	"fmt"

	"worldcup/internal/config"
	"worldcup/internal/db"
	"worldcup/internal/engine"
	"worldcup/internal/logging"
	"worldcup/internal/metrics"
	"worldcup/internal/models"
)

// loadDataset reads the result table from the configured source and derives
// everything the resolver needs.
func loadDataset(ctx context.Context, cfg *config.Config) (*engine.Dataset, error) {
	policy, err := engine.ParseCodePolicy(cfg.CodePolicy)
	if err != nil {
		return nil, err
	}

	table, err := loadTable(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}

	ds := engine.NewDataset(table, policy)
	metrics.EditionsLoaded.Set(float64(table.Len()))

	dups := ds.Summary.DuplicateYears()
	metrics.DuplicateYears.Set(float64(len(dups)))
	if len(dups) > 0 {
		logging.L().Warn().Ints("years", dups).Msg("result table has more than one row for some years; the first row is used")
	}
	return ds, nil
}

func loadTable(ctx context.Context, cfg *config.Config) (*engine.ResultTable, error) {
	var rows []models.Edition

	switch cfg.DataSource {
	case config.SourceCSV:
		return engine.LoadCSV(cfg.DataPath)

	case config.SourceSQLite:
		path := cfg.DataPath
		if cfg.DBURL != "" {
			path = cfg.DBURL
		}
		conn, err := db.OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		r, err := db.NewSQLiteReader(conn, cfg.DBTable)
		if err != nil {
			return nil, err
		}
		if rows, err = r.ReadEditions(ctx); err != nil {
			return nil, err
		}

	case config.SourcePostgres:
		pool, err := db.NewPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("db connection failed: %w", err)
		}
		defer pool.Close()
		r, err := db.NewPostgresReader(pool, cfg.DBTable)
		if err != nil {
			return nil, err
		}
		if rows, err = r.ReadEditions(ctx); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}

	return engine.NewResultTable(rows)
}
