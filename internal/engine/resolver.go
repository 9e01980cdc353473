package engine

import (
	"fmt"

	"worldcup/internal/models"
)

// Fixed color values. The winner of an edition always outranks the runner-up so any
// linear scale draws it darker.
const (
	highlightValue = 1
	winnerValue    = 2
	runnerUpValue  = 1
)

func editionColors() map[string]string {
	return map[string]string{
		models.CategoryWinner:   "gold",
		models.CategoryRunnerUp: "silver",
	}
}

// Resolver turns a Selection into a Projection. It only reads the table and summary,
// so one Resolver may serve any number of goroutines.
type Resolver struct {
	table   *ResultTable
	summary *Summary
	span    string
}

func NewResolver(table *ResultTable, summary *Summary) *Resolver {
	r := &Resolver{table: table, summary: summary}
	if ys := summary.years; len(ys) > 0 {
		r.span = fmt.Sprintf("%d-%d", ys[0], ys[len(ys)-1])
	}
	return r
}

// Resolve computes the projection for sel. It fails only with ErrInvalidSelection
// or ErrNotFound.
func (r *Resolver) Resolve(sel Selection) (models.Projection, error) {
	switch s := sel.(type) {
	case AllWinners:
		return r.allWinners(), nil
	case ByCountry:
		return r.byCountry(s.Country)
	case ByYear:
		return r.byYear(s.Year)
	case nil:
		return models.Projection{}, fmt.Errorf("%w: no selection", ErrInvalidSelection)
	default:
		return models.Projection{}, fmt.Errorf("%w: unsupported selection %T", ErrInvalidSelection, sel)
	}
}

func (r *Resolver) allWinners() models.Projection {
	ranking := r.summary.WinRanking(ByCountryName)
	records := make([]models.MapRecord, 0, len(ranking))
	for _, row := range ranking {
		// every winner appears in the code index
		code := r.summary.codes[row.Country]
		records = append(records, models.MapRecord{LocationCode: code, ColorValue: row.Wins})
	}

	return models.Projection{
		Mode:       models.ModeAllWinners,
		Title:      fmt.Sprintf("Number of World Cup Wins by Country (%s)", r.span),
		Scale:      models.ColorScale{Kind: models.ScaleContinuous, Min: 0, Max: r.summary.MaxWins()},
		MapRecords: records,
		Detail: models.Detail{Ranking: &models.RankingDetail{
			Heading: fmt.Sprintf("World Cup Winners (%s)", r.span),
			Rows:    ranking,
		}},
	}
}

func (r *Resolver) byCountry(country string) (models.Projection, error) {
	country = normalizeCountry(country)
	if country == "" {
		return models.Projection{}, fmt.Errorf("%w: country is required in %s mode", ErrInvalidSelection, models.ModeByCountry)
	}
	code, err := r.summary.CountryCode(country)
	if err != nil {
		return models.Projection{}, err
	}

	wins := r.summary.Wins(country)
	detail := &models.CountryDetail{
		Country:       country,
		Code:          code,
		Wins:          wins,
		RunnerUps:     r.summary.RunnerUps(country),
		YearsWon:      r.summary.YearsWon(country),
		YearsRunnerUp: r.summary.YearsRunnerUp(country),
		Finals:        r.summary.Finals(country),
	}

	return models.Projection{
		Mode:       models.ModeByCountry,
		Title:      fmt.Sprintf("World Cup Wins: %s (%d wins)", country, wins),
		Scale:      models.ColorScale{Kind: models.ScaleContinuous, Min: 0, Max: highlightValue},
		MapRecords: []models.MapRecord{{LocationCode: code, ColorValue: highlightValue}},
		Detail:     models.Detail{Country: detail},
	}, nil
}

func (r *Resolver) byYear(year int) (models.Projection, error) {
	if year <= 0 {
		return models.Projection{}, fmt.Errorf("%w: year is required in %s mode", ErrInvalidSelection, models.ModeByYear)
	}
	i, ok := r.summary.row(year)
	if !ok {
		return models.Projection{}, fmt.Errorf("%w: no edition in %d", ErrNotFound, year)
	}
	e := r.table.Edition(i)

	return models.Projection{
		Mode:  models.ModeByYear,
		Title: fmt.Sprintf("World Cup %d: %s (Winner) vs %s (Runner-Up)", year, e.Winner, e.RunnerUp),
		Scale: models.ColorScale{
			Kind:   models.ScaleDiscrete,
			Min:    runnerUpValue,
			Max:    winnerValue,
			Colors: editionColors(),
		},
		MapRecords: []models.MapRecord{
			{LocationCode: e.WinnerCode, ColorValue: winnerValue, Category: models.CategoryWinner},
			{LocationCode: e.RunnerUpCode, ColorValue: runnerUpValue, Category: models.CategoryRunnerUp},
		},
		Detail: models.Detail{Edition: &models.EditionDetail{
			Year:         e.Year,
			Winner:       e.Winner,
			WinnerCode:   e.WinnerCode,
			RunnerUp:     e.RunnerUp,
			RunnerUpCode: e.RunnerUpCode,
		}},
	}, nil
}
