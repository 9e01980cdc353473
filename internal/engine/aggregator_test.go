package engine

import (
	"errors"
	"reflect"
	"testing"

	"worldcup/internal/models"
)

// sampleEditions is the 1930-1938 scenario plus two later finals.
func sampleEditions() []models.Edition {
	return []models.Edition{
		{Year: 1930, Winner: "Uruguay", WinnerCode: "URY", RunnerUp: "Argentina", RunnerUpCode: "ARG"},
		{Year: 1934, Winner: "Italy", WinnerCode: "ITA", RunnerUp: "Czechoslovakia", RunnerUpCode: "CZE"},
		{Year: 1938, Winner: "Italy", WinnerCode: "ITA", RunnerUp: "Hungary", RunnerUpCode: "HUN"},
		{Year: 1978, Winner: "Argentina", WinnerCode: "ARG", RunnerUp: "Netherlands", RunnerUpCode: "NLD"},
		{Year: 1950, Winner: "Uruguay", WinnerCode: "URY", RunnerUp: "Brazil", RunnerUpCode: "BRA"},
	}
}

func mustTable(t *testing.T, rows []models.Edition) *ResultTable {
	t.Helper()
	store, err := NewResultTable(rows)
	if err != nil {
		t.Fatalf("NewResultTable: %v", err)
	}
	return store
}

func TestAggregateConcreteScenario(t *testing.T) {
	// 1. Setup: the first three editions only
	store := mustTable(t, sampleEditions()[:3])

	// 2. Run Aggregation
	s := store.Aggregate(CodePolicyFirst)

	// 3. Assertions
	want := map[string]int{"Uruguay": 1, "Italy": 2}
	if got := s.WinCounts(); !reflect.DeepEqual(got, want) {
		t.Errorf("WinCounts = %v, want %v", got, want)
	}

	wantRU := map[string]int{"Argentina": 1, "Czechoslovakia": 1, "Hungary": 1}
	if got := s.RunnerUpCounts(); !reflect.DeepEqual(got, wantRU) {
		t.Errorf("RunnerUpCounts = %v, want %v", got, wantRU)
	}

	if got := s.DistinctYears(); !reflect.DeepEqual(got, []int{1930, 1934, 1938}) {
		t.Errorf("DistinctYears = %v", got)
	}

	wantCountries := []string{"Argentina", "Czechoslovakia", "Hungary", "Italy", "Uruguay"}
	if got := s.DistinctCountries(); !reflect.DeepEqual(got, wantCountries) {
		t.Errorf("DistinctCountries = %v, want %v", got, wantCountries)
	}

	if s.MaxWins() != 2 {
		t.Errorf("MaxWins = %d, want 2", s.MaxWins())
	}
}

func TestAggregateYearsAreSortedRegardlessOfRowOrder(t *testing.T) {
	s := mustTable(t, sampleEditions()).Aggregate(CodePolicyFirst)

	if got := s.DistinctYears(); !reflect.DeepEqual(got, []int{1930, 1934, 1938, 1950, 1978}) {
		t.Errorf("DistinctYears = %v", got)
	}
	if got := s.YearsWon("Uruguay"); !reflect.DeepEqual(got, []int{1930, 1950}) {
		t.Errorf("YearsWon(Uruguay) = %v", got)
	}
	if got := s.Finals("Argentina"); len(got) != 2 || got[0].Year != 1930 || got[0].Result != models.CategoryRunnerUp || got[1].Opponent != "Netherlands" {
		t.Errorf("Finals(Argentina) = %+v", got)
	}
}

func TestAggregateAbsentMeansZero(t *testing.T) {
	s := mustTable(t, sampleEditions()).Aggregate(CodePolicyFirst)

	if _, ok := s.WinCounts()["Hungary"]; ok {
		t.Error("Hungary never won and should be absent from WinCounts")
	}
	if s.Wins("Hungary") != 0 {
		t.Errorf("Wins(Hungary) = %d, want 0", s.Wins("Hungary"))
	}
	if got := s.YearsWon("Hungary"); got == nil || len(got) != 0 {
		t.Errorf("YearsWon(Hungary) = %#v, want empty non-nil slice", got)
	}
}

func TestAggregateDoesNotLeakInternalSlices(t *testing.T) {
	s := mustTable(t, sampleEditions()).Aggregate(CodePolicyFirst)

	years := s.YearsWon("Italy")
	years[0] = 0
	if s.YearsWon("Italy")[0] != 1934 {
		t.Error("mutating a returned slice changed the summary")
	}
	counts := s.WinCounts()
	counts["Italy"] = 99
	if s.Wins("Italy") != 2 {
		t.Error("mutating a returned map changed the summary")
	}
}

func TestCountryCode(t *testing.T) {
	s := mustTable(t, sampleEditions()).Aggregate(CodePolicyFirst)

	code, err := s.CountryCode("Hungary")
	if err != nil || code != "HUN" {
		t.Errorf("CountryCode(Hungary) = %q, %v", code, err)
	}

	if _, err := s.CountryCode("Atlantis"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CountryCode(Atlantis) err = %v, want ErrNotFound", err)
	}
}

func TestCountryCodePolicies(t *testing.T) {
	// Germany recorded under two codes; rows deliberately out of year order.
	rows := []models.Edition{
		{Year: 2014, Winner: "Germany", WinnerCode: "DEU", RunnerUp: "Argentina", RunnerUpCode: "ARG"},
		{Year: 1954, Winner: "Germany", WinnerCode: "FRG", RunnerUp: "Hungary", RunnerUpCode: "HUN"},
		{Year: 1990, Winner: "Germany", WinnerCode: "FRG", RunnerUp: "Argentina", RunnerUpCode: "ARG"},
	}
	store := mustTable(t, rows)

	first, _ := store.Aggregate(CodePolicyFirst).CountryCode("Germany")
	if first != "DEU" {
		t.Errorf("first policy: got %q, want DEU", first)
	}

	latest, _ := store.Aggregate(CodePolicyLatest).CountryCode("Germany")
	if latest != "DEU" {
		t.Errorf("latest policy: got %q, want DEU", latest)
	}

	rows[0], rows[1] = rows[1], rows[0]
	latest, _ = mustTable(t, rows).Aggregate(CodePolicyLatest).CountryCode("Germany")
	if latest != "DEU" {
		t.Errorf("latest policy after reorder: got %q, want DEU", latest)
	}
	first, _ = mustTable(t, rows).Aggregate(CodePolicyFirst).CountryCode("Germany")
	if first != "FRG" {
		t.Errorf("first policy after reorder: got %q, want FRG", first)
	}
}

func TestParseCodePolicy(t *testing.T) {
	for in, want := range map[string]CodePolicy{"": CodePolicyFirst, "first": CodePolicyFirst, "LATEST": CodePolicyLatest} {
		got, err := ParseCodePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseCodePolicy(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseCodePolicy("newest"); err == nil {
		t.Error("expected an error for an unknown policy")
	}
}

func TestRankings(t *testing.T) {
	s := mustTable(t, sampleEditions()).Aggregate(CodePolicyFirst)

	byName := s.WinRanking(ByCountryName)
	wantNames := []models.CountryWins{{Country: "Argentina", Wins: 1}, {Country: "Italy", Wins: 2}, {Country: "Uruguay", Wins: 2}}
	if !reflect.DeepEqual(byName, wantNames) {
		t.Errorf("WinRanking(country) = %v", byName)
	}

	// ties keep name order
	byCount := s.WinRanking(ByCountDesc)
	wantCount := []models.CountryWins{{Country: "Italy", Wins: 2}, {Country: "Uruguay", Wins: 2}, {Country: "Argentina", Wins: 1}}
	if !reflect.DeepEqual(byCount, wantCount) {
		t.Errorf("WinRanking(count) = %v", byCount)
	}

	ru := s.RunnerUpRanking(ByCountryName)
	if len(ru) != 5 || ru[0].Country != "Argentina" {
		t.Errorf("RunnerUpRanking = %v", ru)
	}
}

func TestDuplicateYears(t *testing.T) {
	rows := append(sampleEditions(), models.Edition{Year: 1934, Winner: "Austria", WinnerCode: "AUT", RunnerUp: "Spain", RunnerUpCode: "ESP"})
	store := mustTable(t, rows)
	s := store.Aggregate(CodePolicyFirst)

	if got := s.DuplicateYears(); !reflect.DeepEqual(got, []int{1934}) {
		t.Errorf("DuplicateYears = %v", got)
	}
	if i, _ := s.row(1934); store.Edition(i).Winner != "Italy" {
		t.Errorf("duplicate year should resolve to the first row, got %+v", store.Edition(i))
	}
	if got := len(s.DistinctYears()); got != 5 {
		t.Errorf("DistinctYears has %d entries, want 5", got)
	}
}
