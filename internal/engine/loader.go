package engine

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/csv"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"worldcup/internal/logging"
	"worldcup/internal/models"
)

// Source columns of the results file.
const (
	ColYear         = "Year"
	ColWinner       = "Winner"
	ColRunnerUp     = "Runner_Up"
	ColWinnerCode   = "Winner_Country_Code"
	ColRunnerUpCode = "Runner_Up_Country_Code"
)

var csvColumns = []string{ColYear, ColWinner, ColRunnerUp, ColWinnerCode, ColRunnerUpCode}

var csvTypes = map[string]arrow.DataType{
	ColYear:         arrow.PrimitiveTypes.Int64,
	ColWinner:       arrow.BinaryTypes.String,
	ColRunnerUp:     arrow.BinaryTypes.String,
	ColWinnerCode:   arrow.BinaryTypes.String,
	ColRunnerUpCode: arrow.BinaryTypes.String,
}

// LoadCSV reads the results file at path into a ResultTable.
// Any missing column or empty field is an error; no row is ever dropped.
func LoadCSV(path string) (*ResultTable, error) {
	start := time.Now()
	logger := logging.L()
	logger.Info().Str("path", path).Msg("loading results file")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()

	table, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	logger.Info().Int("rows", table.Len()).Dur("elapsed", time.Since(start)).Msg("load complete")
	return table, nil
}

// ReadCSV parses results CSV from r. Columns are matched by header name, so their
// order does not matter and extra columns are skipped.
func ReadCSV(r io.Reader) (*ResultTable, error) {
	rdr := csv.NewInferringReader(r,
		csv.WithAllocator(memory.NewGoAllocator()),
		csv.WithHeader(true),
		csv.WithChunk(-1),
		csv.WithIncludeColumns(csvColumns),
		csv.WithColumnTypes(csvTypes),
		csv.WithNullReader(true, ""),
	)
	defer rdr.Release()

	var rows []models.Edition
	for rdr.Next() {
		batch, err := editionsFromRecord(rdr.Record(), len(rows))
		if err != nil {
			return nil, err
		}
		rows = append(rows, batch...)
	}
	if err := rdr.Err(); err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	return NewResultTable(rows)
}

func editionsFromRecord(rec arrow.Record, offset int) ([]models.Edition, error) {
	schema := rec.Schema()
	cols := make(map[string]arrow.Array, len(csvColumns))
	for _, name := range csvColumns {
		idx := schema.FieldIndices(name)
		// arrow already fails on a missing included column; this guards the index below
		if len(idx) == 0 {
			return nil, fmt.Errorf("missing required column %q", name)
		}
		cols[name] = rec.Column(idx[0])
	}

	years, ok := cols[ColYear].(*array.Int64)
	if !ok {
		return nil, fmt.Errorf("column %q: expected integers, got %s", ColYear, cols[ColYear].DataType())
	}
	str := func(name string) (*array.String, error) {
		a, ok := cols[name].(*array.String)
		if !ok {
			return nil, fmt.Errorf("column %q: expected text, got %s", name, cols[name].DataType())
		}
		return a, nil
	}
	winners, err := str(ColWinner)
	if err != nil {
		return nil, err
	}
	runnerUps, err := str(ColRunnerUp)
	if err != nil {
		return nil, err
	}
	winnerCodes, err := str(ColWinnerCode)
	if err != nil {
		return nil, err
	}
	runnerUpCodes, err := str(ColRunnerUpCode)
	if err != nil {
		return nil, err
	}

	n := int(rec.NumRows())
	out := make([]models.Edition, 0, n)
	for i := 0; i < n; i++ {
		line := offset + i + 2 // header is line 1
		for _, name := range csvColumns {
			if cols[name].IsNull(i) {
				return nil, fmt.Errorf("line %d: %s is empty", line, name)
			}
		}
		out = append(out, models.Edition{
			Year:         int(years.Value(i)),
			Winner:       winners.Value(i),
			WinnerCode:   winnerCodes.Value(i),
			RunnerUp:     runnerUps.Value(i),
			RunnerUpCode: runnerUpCodes.Value(i),
		})
	}
	return out, nil
}
