// Package scoring derives point totals from raw score entries. Everything here
// is pure: no state, no storage, same inputs always produce the same total.
package scoring

import (
	"encoding/json"

	"github.com/Akhil2453/NRLScoringApp/models"
)

const (
	basePoints        = 5
	capturedPoints    = 10
	fullParkingPoints = 10
	partialParking    = 5
	dockedPoints      = 15
	engagedPoints     = 10
	minorPenaltyCost  = 5
	majorPenaltyCost  = 15

	goldenBaseValue = 10
	goldenStepValue = 5
)

// GoldenPoints scores the golden charge stack grid. Row 0 is the top of the
// grid, the last row is the floor. Blocks can only stack contiguously from the
// floor: per column, the run of filled cells counted bottom-up stops at the
// first gap, and the k-th block of the run (k from 0) is worth 10 + 5k.
func GoldenPoints(grid [][]bool) int {
	rows := len(grid)
	if rows == 0 {
		return 0
	}
	cols := len(grid[0])

	total := 0
	for c := 0; c < cols; c++ {
		h := 0
		for r := rows - 1; r >= 0; r-- {
			if c >= len(grid[r]) || !grid[r][c] {
				break
			}
			h++
		}
		total += goldenBaseValue*h + goldenStepValue*(h*(h-1)/2)
	}
	return total
}

// GoldenPointsFromText decodes the stored grid encoding and scores it.
// The encoding comes straight from referee tablets and is not trusted:
// anything that fails to decode into a grid degrades to 0 points so a corrupt
// grid never blocks a submission.
func GoldenPointsFromText(text string) int {
	if text == "" {
		return 0
	}
	var raw [][]interface{}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return 0
	}

	grid := make([][]bool, len(raw))
	for r, row := range raw {
		grid[r] = make([]bool, len(row))
		for c, cell := range row {
			grid[r][c] = truthy(cell)
		}
	}
	return GoldenPoints(grid)
}

// truthy mirrors the loose cell coercion of the submission clients, which send
// true/false, 1/0 or "x"/"" interchangeably.
func truthy(cell interface{}) bool {
	switch v := cell.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return false
	}
}

// CalculateTotalScore folds a score entry into its point total. Supercharge
// mode raises the per-charge base by one. Penalties subtract and the result
// may go negative; it is reported as-is.
func CalculateTotalScore(entry *models.ScoreEntry) int {
	if entry == nil {
		return 0
	}

	base := basePoints
	if entry.SuperchargeMode {
		base++
	}

	total := 0
	total += entry.AllianceCharge * base
	total += entry.CapturedCharge * capturedPoints
	total += entry.FullParking * fullParkingPoints
	total += entry.PartialParking * partialParking
	total += entry.Docked * dockedPoints
	total += entry.Engaged * engagedPoints
	total += GoldenPointsFromText(entry.GoldenChargeStack)
	total -= entry.MinorPenalties * minorPenaltyCost
	total -= entry.MajorPenalties * majorPenaltyCost
	return total
}
