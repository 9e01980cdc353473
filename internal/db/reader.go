package db

import (
	"fmt"
	"regexp"
)

// Column order matches the fields of models.Edition.
const selectEditions = `
	SELECT year, winner, winner_country_code, runner_up, runner_up_country_code
	FROM %s
	ORDER BY year`

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validateTable(name string) error {
	if !tableName.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}
