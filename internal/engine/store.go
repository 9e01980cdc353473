package engine

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/text/unicode/norm"

	"worldcup/internal/models"
)

// MaxYear is the largest year a row may carry. Years are stored as int32.
const MaxYear = 9999

// ResultTable holds the editions in Struct-of-Arrays format.
// It is built once and never mutated afterwards.
type ResultTable struct {
	// Data Columns (Flat Arrays)
	Years         []int32
	WinnerCodes   []string
	RunnerUpCodes []string

	// Dictionary Encoded IDs (0..N)
	WinnerIDs   []int32
	RunnerUpIDs []int32

	// Dictionary (ID -> Country), in order of first appearance
	CountryDict []string
}

// NewResultTable validates rows and dictionary-encodes the country columns.
// Row order is preserved: it decides the representative code under the "first" policy
// and which row wins when a year is duplicated.
func NewResultTable(rows []models.Edition) (*ResultTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("result table is empty")
	}

	t := &ResultTable{
		Years:         make([]int32, len(rows)),
		WinnerCodes:   make([]string, len(rows)),
		RunnerUpCodes: make([]string, len(rows)),
		WinnerIDs:     make([]int32, len(rows)),
		RunnerUpIDs:   make([]int32, len(rows)),
	}
	ids := make(map[string]int32)
	encode := func(name string) int32 {
		if id, ok := ids[name]; ok {
			return id
		}
		id := int32(len(t.CountryDict))
		t.CountryDict = append(t.CountryDict, name)
		ids[name] = id
		return id
	}

	for i, r := range rows {
		winner := normalizeCountry(r.Winner)
		runnerUp := normalizeCountry(r.RunnerUp)
		winnerCode := normalizeCode(r.WinnerCode)
		runnerUpCode := normalizeCode(r.RunnerUpCode)

		switch {
		case r.Year <= 0 || r.Year > MaxYear:
			return nil, fmt.Errorf("row %d: invalid year %d", i+1, r.Year)
		case winner == "":
			return nil, fmt.Errorf("row %d (%d): winner is empty", i+1, r.Year)
		case runnerUp == "":
			return nil, fmt.Errorf("row %d (%d): runner-up is empty", i+1, r.Year)
		case winnerCode == "":
			return nil, fmt.Errorf("row %d (%d): winner country code is empty", i+1, r.Year)
		case runnerUpCode == "":
			return nil, fmt.Errorf("row %d (%d): runner-up country code is empty", i+1, r.Year)
		case winner == runnerUp:
			return nil, fmt.Errorf("row %d (%d): %s is both winner and runner-up", i+1, r.Year, winner)
		}

		t.Years[i] = int32(r.Year)
		t.WinnerIDs[i] = encode(winner)
		t.RunnerUpIDs[i] = encode(runnerUp)
		t.WinnerCodes[i] = winnerCode
		t.RunnerUpCodes[i] = runnerUpCode
	}
	return t, nil
}

func (t *ResultTable) Len() int { return len(t.Years) }

// Edition materializes row i.
func (t *ResultTable) Edition(i int) models.Edition {
	return models.Edition{
		Year:         int(t.Years[i]),
		Winner:       t.CountryDict[t.WinnerIDs[i]],
		WinnerCode:   t.WinnerCodes[i],
		RunnerUp:     t.CountryDict[t.RunnerUpIDs[i]],
		RunnerUpCode: t.RunnerUpCodes[i],
	}
}

func (t *ResultTable) Editions() []models.Edition {
	out := make([]models.Edition, t.Len())
	for i := range out {
		out[i] = t.Edition(i)
	}
	return out
}

// Fingerprint is a content hash of the table. Two tables with the same rows in the
// same order share a fingerprint.
func (t *ResultTable) Fingerprint() uint64 {
	h := xxh3.New()
	var buf [4]byte
	for i := 0; i < t.Len(); i++ {
		binary.LittleEndian.PutUint32(buf[:], uint32(t.Years[i]))
		h.Write(buf[:])
		for _, s := range []string{
			t.CountryDict[t.WinnerIDs[i]], t.WinnerCodes[i],
			t.CountryDict[t.RunnerUpIDs[i]], t.RunnerUpCodes[i],
		} {
			h.WriteString(s)
			h.Write([]byte{0})
		}
	}
	return h.Sum64()
}

// Country names are compared byte-wise, so composed and decomposed spellings
// ("Côte d'Ivoire") must collapse to one form.
func normalizeCountry(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func normalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
