package engine

import (
	"fmt"
	"runtime"
	"slices"
	"sort"
	"strings"
	"sync"

	"worldcup/internal/models"
)

// CodePolicy picks the representative ISO code for a country that was recorded
// under more than one code.
type CodePolicy string

const (
	CodePolicyFirst  CodePolicy = "first"
	CodePolicyLatest CodePolicy = "latest"
)

func ParseCodePolicy(s string) (CodePolicy, error) {
	switch p := CodePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", CodePolicyFirst:
		return CodePolicyFirst, nil
	case CodePolicyLatest:
		return CodePolicyLatest, nil
	default:
		return "", fmt.Errorf("unknown code policy %q", s)
	}
}

// RankingOrder is the sort key for ranking tables.
type RankingOrder string

const (
	ByCountryName RankingOrder = "country"
	ByCountDesc   RankingOrder = "count"
)

// Summary holds everything derived from a ResultTable. It is read-only once built.
type Summary struct {
	wins          map[string]int
	runnerUps     map[string]int
	yearsWon      map[string][]int
	yearsRunnerUp map[string][]int
	finals        map[string][]models.Final
	codes         map[string]string
	rowByYear     map[int]int

	years     []int
	countries []string
	winners   []string
	dupYears  []int
	maxWins   int
}

// Aggregate computes the summary tables in one pass over the table.
func (t *ResultTable) Aggregate(policy CodePolicy) *Summary {
	// 1. Dimensions
	numCountries := len(t.CountryDict)
	numRows := t.Len()

	// 2. Setup Workers
	numWorkers := runtime.NumCPU()
	if numWorkers > numRows {
		numWorkers = numRows
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	chunkSize := numRows / numWorkers

	type partialAgg struct {
		wins      []int
		runnerUps []int
	}

	results := make(chan *partialAgg, numWorkers)
	var wg sync.WaitGroup

	// 3. Parallel count over dictionary IDs
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == numWorkers-1 {
			end = numRows
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			p := &partialAgg{
				wins:      make([]int, numCountries),
				runnerUps: make([]int, numCountries),
			}
			idsW := t.WinnerIDs
			idsR := t.RunnerUpIDs
			for j := s; j < e; j++ {
				p.wins[idsW[j]]++
				p.runnerUps[idsR[j]]++
			}
			results <- p
		}(start, end)
	}

	go func() { wg.Wait(); close(results) }()

	// 4. Merge Phase (Reducer)
	finalWins := make([]int, numCountries)
	finalRunnerUps := make([]int, numCountries)
	for p := range results {
		for i := 0; i < numCountries; i++ {
			finalWins[i] += p.wins[i]
			finalRunnerUps[i] += p.runnerUps[i]
		}
	}

	// 5. Build Summary
	s := &Summary{
		wins:          make(map[string]int),
		runnerUps:     make(map[string]int),
		yearsWon:      make(map[string][]int),
		yearsRunnerUp: make(map[string][]int),
		finals:        make(map[string][]models.Final),
		codes:         make(map[string]string, numCountries),
		rowByYear:     make(map[int]int, numRows),
	}

	for id, name := range t.CountryDict {
		if finalWins[id] > 0 {
			s.wins[name] = finalWins[id]
			s.winners = append(s.winners, name)
			if finalWins[id] > s.maxWins {
				s.maxWins = finalWins[id]
			}
		}
		if finalRunnerUps[id] > 0 {
			s.runnerUps[name] = finalRunnerUps[id]
		}
		s.countries = append(s.countries, name)
	}
	sort.Strings(s.winners)
	sort.Strings(s.countries)

	// Year index, year lists and code index need row order, so this part is sequential.
	latest := make(map[string]int, numCountries)
	observe := func(country, code string, year int) {
		_, seen := s.codes[country]
		switch {
		case !seen:
			s.codes[country] = code
			latest[country] = year
		case policy == CodePolicyLatest && year > latest[country]:
			s.codes[country] = code
			latest[country] = year
		}
	}

	dups := make(map[int]bool)
	for i := 0; i < numRows; i++ {
		year := int(t.Years[i])
		winner := t.CountryDict[t.WinnerIDs[i]]
		runnerUp := t.CountryDict[t.RunnerUpIDs[i]]

		if _, ok := s.rowByYear[year]; ok {
			dups[year] = true
		} else {
			s.rowByYear[year] = i
			s.years = append(s.years, year)
		}

		s.yearsWon[winner] = append(s.yearsWon[winner], year)
		s.yearsRunnerUp[runnerUp] = append(s.yearsRunnerUp[runnerUp], year)
		s.finals[winner] = append(s.finals[winner], models.Final{Year: year, Opponent: runnerUp, Result: models.CategoryWinner})
		s.finals[runnerUp] = append(s.finals[runnerUp], models.Final{Year: year, Opponent: winner, Result: models.CategoryRunnerUp})

		observe(winner, t.WinnerCodes[i], year)
		observe(runnerUp, t.RunnerUpCodes[i], year)
	}

	sort.Ints(s.years)
	for _, ys := range s.yearsWon {
		sort.Ints(ys)
	}
	for _, ys := range s.yearsRunnerUp {
		sort.Ints(ys)
	}
	for _, fs := range s.finals {
		sort.SliceStable(fs, func(i, j int) bool { return fs[i].Year < fs[j].Year })
	}
	for y := range dups {
		s.dupYears = append(s.dupYears, y)
	}
	sort.Ints(s.dupYears)

	return s
}

// WinCounts returns country -> wins. Countries that never won are absent.
func (s *Summary) WinCounts() map[string]int {
	out := make(map[string]int, len(s.wins))
	for k, v := range s.wins {
		out[k] = v
	}
	return out
}

// RunnerUpCounts returns country -> runner-up finishes. Countries that never lost a final are absent.
func (s *Summary) RunnerUpCounts() map[string]int {
	out := make(map[string]int, len(s.runnerUps))
	for k, v := range s.runnerUps {
		out[k] = v
	}
	return out
}

func (s *Summary) Wins(country string) int      { return s.wins[country] }
func (s *Summary) RunnerUps(country string) int { return s.runnerUps[country] }

func (s *Summary) DistinctYears() []int        { return slices.Clone(s.years) }
func (s *Summary) DistinctCountries() []string { return slices.Clone(s.countries) }
func (s *Summary) Winners() []string           { return slices.Clone(s.winners) }
func (s *Summary) MaxWins() int                { return s.maxWins }

// DuplicateYears lists years recorded by more than one row. Lookups by year use the
// first of those rows.
func (s *Summary) DuplicateYears() []int { return slices.Clone(s.dupYears) }

// YearsWon is ascending and empty, not nil, for countries that never won.
func (s *Summary) YearsWon(country string) []int { return cloneYears(s.yearsWon[country]) }

func (s *Summary) YearsRunnerUp(country string) []int { return cloneYears(s.yearsRunnerUp[country]) }

// Finals lists every final the country played, ascending by year.
func (s *Summary) Finals(country string) []models.Final {
	fs := s.finals[country]
	out := make([]models.Final, len(fs))
	copy(out, fs)
	return out
}

// CountryCode returns the representative ISO code of a country.
func (s *Summary) CountryCode(country string) (string, error) {
	code, ok := s.codes[country]
	if !ok {
		return "", fmt.Errorf("%w: country %q", ErrNotFound, country)
	}
	return code, nil
}

// row returns the table index of the first row recorded for year.
func (s *Summary) row(year int) (int, bool) {
	i, ok := s.rowByYear[year]
	return i, ok
}

// WinRanking lists every winner with its win count.
func (s *Summary) WinRanking(order RankingOrder) []models.CountryWins {
	out := make([]models.CountryWins, 0, len(s.winners))
	for _, c := range s.winners {
		out = append(out, models.CountryWins{Country: c, Wins: s.wins[c]})
	}
	if order == ByCountDesc {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Wins > out[j].Wins })
	}
	return out
}

// RunnerUpRanking lists every losing finalist with its runner-up count.
func (s *Summary) RunnerUpRanking(order RankingOrder) []models.CountryRunnerUps {
	out := make([]models.CountryRunnerUps, 0, len(s.runnerUps))
	for _, c := range s.countries {
		if n := s.runnerUps[c]; n > 0 {
			out = append(out, models.CountryRunnerUps{Country: c, RunnerUps: n})
		}
	}
	if order == ByCountDesc {
		sort.SliceStable(out, func(i, j int) bool { return out[i].RunnerUps > out[j].RunnerUps })
	}
	return out
}

// cloneYears never returns nil so empty lists encode as [].
func cloneYears(ys []int) []int {
	out := make([]int, len(ys))
	copy(out, ys)
	return out
}
