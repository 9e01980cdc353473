package db

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"worldcup/internal/models"
)

// RowToStructByPos fills models.Edition by position, so the SELECT list must follow
// the struct's field order.
func TestSelectEditionsMatchesEditionFields(t *testing.T) {
	columnFor := map[string]string{
		"Year":         "year",
		"Winner":       "winner",
		"WinnerCode":   "winner_country_code",
		"RunnerUp":     "runner_up",
		"RunnerUpCode": "runner_up_country_code",
	}

	q := strings.TrimSpace(selectEditions)
	start := strings.Index(q, "SELECT") + len("SELECT")
	end := strings.Index(q, "FROM")
	var cols []string
	for _, c := range strings.Split(q[start:end], ",") {
		cols = append(cols, strings.TrimSpace(c))
	}

	typ := reflect.TypeOf(models.Edition{})
	if typ.NumField() != len(cols) {
		t.Fatalf("models.Edition has %d fields, query selects %d columns: %v", typ.NumField(), len(cols), cols)
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if want := columnFor[f.Name]; cols[i] != want {
			t.Errorf("column %d is %q, field %s needs %q", i, cols[i], f.Name, want)
		}
	}
}

// Runs against a real server when WORLDCUP_TEST_PG_URL is set.
func TestPostgresReadEditions(t *testing.T) {
	url := os.Getenv("WORLDCUP_TEST_PG_URL")
	if url == "" {
		t.Skip("WORLDCUP_TEST_PG_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, url)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer pool.Close()

	table := fmt.Sprintf("world_cup_results_test_%d", time.Now().UnixNano())
	stmts := []string{
		`CREATE TABLE ` + table + ` (
			year INTEGER NOT NULL,
			winner TEXT,
			runner_up TEXT,
			winner_country_code TEXT,
			runner_up_country_code TEXT
		)`,
		`INSERT INTO ` + table + ` VALUES (1938, 'Italy', 'Hungary', 'ITA', 'HUN')`,
		`INSERT INTO ` + table + ` VALUES (1930, 'Uruguay', 'Argentina', 'URY', 'ARG')`,
	}
	for _, s := range stmts {
		if _, err := pool.Exec(ctx, s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DROP TABLE IF EXISTS `+table)
	})

	r, err := NewPostgresReader(pool, table)
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.ReadEditions(ctx)
	if err != nil {
		t.Fatalf("ReadEditions: %v", err)
	}
	want := []models.Edition{
		{Year: 1930, Winner: "Uruguay", WinnerCode: "URY", RunnerUp: "Argentina", RunnerUpCode: "ARG"},
		{Year: 1938, Winner: "Italy", WinnerCode: "ITA", RunnerUp: "Hungary", RunnerUpCode: "HUN"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadEditions = %+v, want %+v", got, want)
	}
}
