package models

type Alliance string

const (
	AllianceRed  Alliance = "red"
	AllianceBlue Alliance = "blue"
)

func ValidAlliance(a Alliance) bool {
	return a == AllianceRed || a == AllianceBlue
}

// ScoreEntry holds the raw referee submission for one (match, alliance) pair.
// GoldenChargeStack keeps the grid exactly as submitted (JSON text); the
// derived bonus is recomputed from it on every read.
type ScoreEntry struct {
	ID                 int      `json:"id"`
	MatchID            int      `json:"match_id"`
	Alliance           Alliance `json:"alliance"`
	AllianceCharge     int      `json:"alliance_charge"`
	CapturedCharge     int      `json:"captured_charge"`
	GoldenChargeStack  string   `json:"golden_charge_stack"`
	MinorPenalties     int      `json:"minor_penalties"`
	MajorPenalties     int      `json:"major_penalties"`
	FullParking        int      `json:"full_parking"`
	PartialParking     int      `json:"partial_parking"`
	Docked             int      `json:"docked"`
	Engaged            int      `json:"engaged"`
	SuperchargeMode    bool     `json:"supercharge_mode"`
	SuperchargeEndTime string   `json:"supercharge_end_time"`
	SubmittedBy        *int     `json:"submitted_by,omitempty"`
	Finalised          bool     `json:"finalised"`
	ConfirmedBy        *int     `json:"confirmed_by,omitempty"`
}

// ScorePatch is a merge patch over a ScoreEntry: nil fields keep whatever the
// stored entry already has, and default to zero values on first insert.
type ScorePatch struct {
	AllianceCharge     *int    `json:"alliance_charge"`
	CapturedCharge     *int    `json:"captured_charge"`
	GoldenChargeStack  *string `json:"golden_charge_stack"`
	MinorPenalties     *int    `json:"minor_penalties"`
	MajorPenalties     *int    `json:"major_penalties"`
	FullParking        *int    `json:"full_parking"`
	PartialParking     *int    `json:"partial_parking"`
	Docked             *int    `json:"docked"`
	Engaged            *int    `json:"engaged"`
	SuperchargeMode    *bool   `json:"supercharge_mode"`
	SuperchargeEndTime *string `json:"supercharge_end_time"`
	SubmittedBy        *int    `json:"submitted_by"`
}
