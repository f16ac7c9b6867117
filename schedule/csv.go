// Package schedule parses the spreadsheet export handed over by the field
// management crew before the event.
package schedule

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Expected columns: Match No., Red Team 1, Red Team 2, Blue Team 1, Blue Team 2.
// The first row is a header and is skipped.

var ErrEmptyFile = errors.New("schedule file is empty")

type Row struct {
	MatchNumber int
	RedTeams    []string
	BlueTeams   []string
}

// Parse reads the schedule CSV. Rows with fewer than five cells are skipped
// (trailing blank lines from spreadsheet exports); a match number that does
// not parse as an integer aborts the whole upload.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports are ragged, validate per row

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 5 {
			continue
		}

		matchNumber, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid match number %q", i+2, record[0])
		}

		rows = append(rows, Row{
			MatchNumber: matchNumber,
			RedTeams:    []string{strings.TrimSpace(record[1]), strings.TrimSpace(record[2])},
			BlueTeams:   []string{strings.TrimSpace(record[3]), strings.TrimSpace(record[4])},
		})
	}
	return rows, nil
}

// TeamNumbers returns every distinct team number in the parsed rows, in first
// appearance order.
func TeamNumbers(rows []Row) []string {
	seen := make(map[string]bool)
	var numbers []string
	for _, row := range rows {
		for _, n := range append(append([]string{}, row.RedTeams...), row.BlueTeams...) {
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			numbers = append(numbers, n)
		}
	}
	return numbers
}
