package models

// FormResult is one recent match from a team's perspective.
type FormResult struct {
	Outcome      string `json:"outcome"` // "W", "D" or "L"
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Opponent     string `json:"opponent"`
	Home         bool   `json:"home"`
}

// TeamForm is the derived recent-form summary for one team.
// FormScore is normalized into [0,100].
type TeamForm struct {
	TeamID         int          `json:"team_id"`
	TeamName       string       `json:"team_name"`
	Results        []FormResult `json:"results"`
	FormScore      float64      `json:"form_score"`
	WinStreak      int          `json:"win_streak"`
	UnbeatenStreak int          `json:"unbeaten_streak"`
	GoalsPerGame   float64      `json:"goals_per_game"`
	CleanSheets    int          `json:"clean_sheets"`
}

// Standing is one row of a league table as the provider reports it.
type Standing struct {
	Rank         int    `json:"rank"`
	TeamID       int    `json:"team_id"`
	TeamName     string `json:"team_name"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Points       int    `json:"points"`
	Form         string `json:"form,omitempty"`
}

// InjuryRecord is a provider-shaped injury/suspension entry.
type InjuryRecord struct {
	TeamID     int    `json:"team_id"`
	TeamName   string `json:"team_name"`
	PlayerName string `json:"player_name"`
	Reason     string `json:"reason"`
	Status     string `json:"status"` // "Missing Fixture", "Questionable", ...
}

// LineupRecord is one team's announced lineup for a fixture.
type LineupRecord struct {
	TeamID     int      `json:"team_id"`
	TeamName   string   `json:"team_name"`
	Formation  string   `json:"formation"`
	Coach      string   `json:"coach,omitempty"`
	StartingXI []string `json:"starting_xi"`
	Bench      []string `json:"bench,omitempty"`
}

// SquadPlayer is one entry of a team's squad list.
type SquadPlayer struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Age      int    `json:"age,omitempty"`
	Number   int    `json:"number,omitempty"`
}

// HeadToHeadMatch is one prior meeting between the two sides.
type HeadToHeadMatch struct {
	FixtureID int    `json:"fixture_id"`
	Date      string `json:"date"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
}

// TeamSeasonStats carries a team's aggregate season numbers.
type TeamSeasonStats struct {
	TeamID         int     `json:"team_id"`
	TeamName       string  `json:"team_name"`
	Played         int     `json:"played"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	GoalsScored    int     `json:"goals_scored"`
	GoalsConceded  int     `json:"goals_conceded"`
	CleanSheets    int     `json:"clean_sheets"`
	AvgGoalsScored float64 `json:"avg_goals_scored"`
	WinRate        float64 `json:"win_rate"`
	PossessionPct  float64 `json:"possession_pct,omitempty"`
}
