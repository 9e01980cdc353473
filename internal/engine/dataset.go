package engine

import (
	"fmt"
	"strconv"

	"worldcup/internal/models"
)

// Dataset is the process-wide context: the loaded table, its summary and the resolver
// over both. It is built once at startup and shared read-only.
type Dataset struct {
	Table       *ResultTable
	Summary     *Summary
	Resolver    *Resolver
	Fingerprint uint64
}

func NewDataset(table *ResultTable, policy CodePolicy) *Dataset {
	summary := table.Aggregate(policy)
	return &Dataset{
		Table:       table,
		Summary:     summary,
		Resolver:    NewResolver(table, summary),
		Fingerprint: table.Fingerprint(),
	}
}

// Resolve is shorthand for d.Resolver.Resolve.
func (d *Dataset) Resolve(sel Selection) (models.Projection, error) {
	return d.Resolver.Resolve(sel)
}

// Controls builds the dropdown for a mode: every country (first one preselected) or
// every year (most recent preselected). AllWinners has no dropdown.
func (d *Dataset) Controls(mode models.Mode) (models.Controls, error) {
	switch mode {
	case "", models.ModeAllWinners:
		return models.Controls{Mode: models.ModeAllWinners, Options: []models.Option{}}, nil

	case models.ModeByCountry:
		countries := d.Summary.DistinctCountries()
		c := models.Controls{Mode: mode, Label: "Select a Country:", Options: make([]models.Option, 0, len(countries))}
		for _, name := range countries {
			c.Options = append(c.Options, models.Option{Label: name, Value: name})
		}
		if len(countries) > 0 {
			c.Default = countries[0]
		}
		return c, nil

	case models.ModeByYear:
		years := d.Summary.DistinctYears()
		c := models.Controls{Mode: mode, Label: "Select a Year:", Options: make([]models.Option, 0, len(years))}
		for _, y := range years {
			v := strconv.Itoa(y)
			c.Options = append(c.Options, models.Option{Label: v, Value: v})
		}
		if len(years) > 0 {
			c.Default = strconv.Itoa(years[len(years)-1])
		}
		return c, nil

	default:
		return models.Controls{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidSelection, mode)
	}
}
