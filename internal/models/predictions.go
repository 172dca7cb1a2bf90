package models

// PredictedScore is the most probable scoreline.
type PredictedScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// MatchPrediction forecasts the outcome of a fixture. The three win/draw
// probabilities are integer percentages that always sum to exactly 100.
type MatchPrediction struct {
	HomeTeam       string         `json:"home_team"`
	AwayTeam       string         `json:"away_team"`
	HomeWinPct     int            `json:"home_win_pct"`
	DrawPct        int            `json:"draw_pct"`
	AwayWinPct     int            `json:"away_win_pct"`
	PredictedScore PredictedScore `json:"predicted_score"`
	Confidence     float64        `json:"confidence"`
	Factors        []string       `json:"factors"`
}
