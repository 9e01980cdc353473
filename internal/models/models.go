package models

// Edition is one tournament final: a single row of the result table.
type Edition struct {
	Year         int    `json:"year"`
	Winner       string `json:"winner"`
	WinnerCode   string `json:"winner_code"`
	RunnerUp     string `json:"runner_up"`
	RunnerUpCode string `json:"runner_up_code"`
}

type CountryWins struct {
	Country string `json:"country"`
	Wins    int    `json:"wins"`
}

type CountryRunnerUps struct {
	Country   string `json:"country"`
	RunnerUps int    `json:"runner_ups"`
}

// Mode values match the radio options of the dashboard.
type Mode string

const (
	ModeAllWinners Mode = "all_winners"
	ModeByCountry  Mode = "by_country"
	ModeByYear     Mode = "by_year"
)

// MapRecord is one location on the choropleth, independent of any charting library.
type MapRecord struct {
	LocationCode string `json:"location_code"`
	ColorValue   int    `json:"color_value"`
	Category     string `json:"category,omitempty"`
}

const (
	CategoryWinner   = "Winner"
	CategoryRunnerUp = "Runner-Up"
)

type ScaleKind string

const (
	ScaleContinuous ScaleKind = "continuous"
	ScaleDiscrete   ScaleKind = "discrete"
)

// ColorScale is a hint for the renderer. Continuous scales use Min/Max,
// discrete scales use Colors keyed by category.
type ColorScale struct {
	Kind   ScaleKind         `json:"kind"`
	Min    int               `json:"min"`
	Max    int               `json:"max"`
	Colors map[string]string `json:"colors,omitempty"`
}

type Projection struct {
	Mode       Mode        `json:"mode"`
	Title      string      `json:"title"`
	Scale      ColorScale  `json:"scale"`
	MapRecords []MapRecord `json:"map_records"`
	Detail     Detail      `json:"detail"`
}

// Detail carries exactly one content model. Message is only set on placeholders.
type Detail struct {
	Ranking *RankingDetail `json:"ranking,omitempty"`
	Country *CountryDetail `json:"country,omitempty"`
	Edition *EditionDetail `json:"edition,omitempty"`
	Message string         `json:"message,omitempty"`
}

type RankingDetail struct {
	Heading string        `json:"heading"`
	Rows    []CountryWins `json:"rows"`
}

type CountryDetail struct {
	Country       string  `json:"country"`
	Code          string  `json:"code"`
	Wins          int     `json:"wins"`
	RunnerUps     int     `json:"runner_ups"`
	YearsWon      []int   `json:"years_won"`
	YearsRunnerUp []int   `json:"years_runner_up"`
	Finals        []Final `json:"finals"`
}

// Final is one appearance of a country in a final, seen from that country.
type Final struct {
	Year     int    `json:"year"`
	Opponent string `json:"opponent"`
	Result   string `json:"result"`
}

type EditionDetail struct {
	Year         int    `json:"year"`
	Winner       string `json:"winner"`
	WinnerCode   string `json:"winner_code"`
	RunnerUp     string `json:"runner_up"`
	RunnerUpCode string `json:"runner_up_code"`
}

// Placeholder is what the control surface shows when a selection cannot be resolved.
func Placeholder(mode Mode, message string) Projection {
	return Projection{
		Mode:       mode,
		Scale:      ColorScale{Kind: ScaleContinuous},
		MapRecords: []MapRecord{},
		Detail:     Detail{Message: message},
	}
}

// Controls describes the dropdown the UI shows for a mode.
type Controls struct {
	Mode    Mode     `json:"mode"`
	Label   string   `json:"label,omitempty"`
	Options []Option `json:"options"`
	Default string   `json:"default,omitempty"`
}

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
