package models

import "time"

// Insight categories
const (
	InsightCategoryTeam   = "team"
	InsightCategoryPlayer = "player"
	InsightCategoryMatch  = "match"
	InsightCategoryLeague = "league"
)

// Insight sources
const (
	InsightSourceAPIData     = "api_data"
	InsightSourceFanQuestion = "fan_question"
	InsightSourceMatchEvent  = "match_event"
)

// Insight is a short learned fact derived from fetched data. Rows are
// append-only; Confidence stays within [0,1].
type Insight struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Subject    string    `json:"subject"`
	Text       string    `json:"text"`
	Source     string    `json:"source"`
	Confidence float64   `json:"confidence"`
	MatchKey   string    `json:"match_key,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CachedAnalysisSnapshot is the best known current state for one room,
// overwritten on every refresh rather than versioned.
type CachedAnalysisSnapshot struct {
	RoomID      string    `json:"room_id"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	ContextText string    `json:"context_text"`
	Tags        []string  `json:"tags"`
	UpdatedAt   time.Time `json:"updated_at"`
}
