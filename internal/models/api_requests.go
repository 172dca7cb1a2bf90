package models

// AnswerRequest is the payload for POST /api/v1/analyst/answer.
type AnswerRequest struct {
	Question  string       `json:"question" validate:"required"`
	RoomID    string       `json:"room_id"`
	AIEnabled *bool        `json:"ai_enabled,omitempty"`
	Match     MatchContext `json:"match" validate:"required"`
}

// AnswerResponse carries the analyst's reply.
type AnswerResponse struct {
	Answer   string `json:"answer"`
	Enabled  bool   `json:"enabled"`
	Fallback bool   `json:"fallback"`
}

// PredictRequest is the payload for POST /api/v1/analyst/predict.
type PredictRequest struct {
	Match         MatchContext `json:"match" validate:"required"`
	HomeFormScore *float64     `json:"home_form_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	AwayFormScore *float64     `json:"away_form_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	Jitter        bool         `json:"jitter"`
}
