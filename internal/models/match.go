package models

import "time"

// MatchMode describes where a fixture is in its lifecycle.
type MatchMode string

const (
	ModePreMatch  MatchMode = "pre_match"
	ModeLive      MatchMode = "live"
	ModePostMatch MatchMode = "post_match"
)

// MatchContext is the immutable per-request description of the fixture a
// question is about. Identifier fields are zero when the room layer does not
// know them; the orchestrator resolves team ids on demand.
type MatchContext struct {
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	HomeTeamID int       `json:"home_team_id,omitempty"`
	AwayTeamID int       `json:"away_team_id,omitempty"`
	FixtureID  int       `json:"fixture_id,omitempty"`
	LeagueID   int       `json:"league_id,omitempty"`
	Season     int       `json:"season,omitempty"`
	Mode       MatchMode `json:"mode"`
	HomeScore  int       `json:"home_score"`
	AwayScore  int       `json:"away_score"`
	Venue      string    `json:"venue,omitempty"`
	KickoffAt  time.Time `json:"kickoff_at,omitempty"`
}

// FixtureState is the provider's view of a fixture: current score and status.
type FixtureState struct {
	FixtureID  int    `json:"fixture_id"`
	Status     string `json:"status"`
	StatusText string `json:"status_text"`
	Elapsed    int    `json:"elapsed"`
	HomeGoals  int    `json:"home_goals"`
	AwayGoals  int    `json:"away_goals"`
}

// MatchEvent is a single in-match incident (goal, card, substitution).
type MatchEvent struct {
	Minute     int    `json:"minute"`
	ExtraTime  int    `json:"extra_time"`
	TeamName   string `json:"team_name"`
	PlayerName string `json:"player_name"`
	AssistName string `json:"assist_name,omitempty"`
	Type       string `json:"type"`   // "Goal", "Card", "subst"
	Detail     string `json:"detail"` // "Normal Goal", "Yellow Card", ...
}
