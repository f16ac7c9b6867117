package models

type InspectionStatus string

const (
	InspectionPending InspectionStatus = "pending"
	InspectionPassed  InspectionStatus = "passed"
	InspectionFailed  InspectionStatus = "failed"
)

func ValidInspectionStatus(status InspectionStatus) bool {
	switch status {
	case InspectionPending, InspectionPassed, InspectionFailed:
		return true
	}
	return false
}

type CardColor string

const (
	CardRed    CardColor = "red"
	CardYellow CardColor = "yellow"
)

// Team is keyed by the competition-assigned number. The number is an opaque
// string, not an ordinal: "0042" and "42" are different teams.
type Team struct {
	ID               int              `json:"id"`
	Number           string           `json:"team_number"`
	InspectionStatus InspectionStatus `json:"inspection_status"`
	RedCards         int              `json:"red_cards"`
	YellowCards      int              `json:"yellow_cards"`
}
