package engine

import (
	"fmt"
	"strconv"
	"strings"

	"worldcup/internal/models"
)

// Selection is one of AllWinners, ByCountry or ByYear.
type Selection interface {
	Mode() models.Mode
	// Key identifies the selection in caches; equal selections share a key.
	Key() string
	isSelection()
}

type AllWinners struct{}

type ByCountry struct {
	Country string
}

type ByYear struct {
	Year int
}

func (AllWinners) Mode() models.Mode { return models.ModeAllWinners }
func (ByCountry) Mode() models.Mode  { return models.ModeByCountry }
func (ByYear) Mode() models.Mode     { return models.ModeByYear }

func (AllWinners) Key() string  { return string(models.ModeAllWinners) }
func (s ByCountry) Key() string { return string(models.ModeByCountry) + ":" + s.Country }
func (s ByYear) Key() string    { return string(models.ModeByYear) + ":" + strconv.Itoa(s.Year) }

func (AllWinners) isSelection() {}
func (ByCountry) isSelection()  {}
func (ByYear) isSelection()     {}

// ParseSelection turns raw control values into a Selection. Only the field the mode
// uses is read; the other one is dropped. An empty mode means AllWinners.
func ParseSelection(mode, country, year string) (Selection, error) {
	switch models.Mode(strings.TrimSpace(mode)) {
	case "", models.ModeAllWinners:
		return AllWinners{}, nil

	case models.ModeByCountry:
		c := normalizeCountry(country)
		if c == "" {
			return nil, fmt.Errorf("%w: country is required in %s mode", ErrInvalidSelection, models.ModeByCountry)
		}
		return ByCountry{Country: c}, nil

	case models.ModeByYear:
		y := strings.TrimSpace(year)
		if y == "" {
			return nil, fmt.Errorf("%w: year is required in %s mode", ErrInvalidSelection, models.ModeByYear)
		}
		n, err := strconv.Atoi(y)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: year %q is not a valid year", ErrInvalidSelection, year)
		}
		return ByYear{Year: n}, nil

	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidSelection, mode)
	}
}
