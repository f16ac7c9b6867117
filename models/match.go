package models

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
)

type Match struct {
	ID          int         `json:"match_id"`
	MatchNumber int         `json:"match_number"`
	Arena       string      `json:"arena"`
	RedTeams    []string    `json:"red_teams"`
	BlueTeams   []string    `json:"blue_teams"`
	Status      MatchStatus `json:"status"`
}
