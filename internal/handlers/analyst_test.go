package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fanarena/analyst-api/internal/models"
)

func newTestHandler(analyst *MockAnalystService) *Handler {
	return &Handler{
		analyst:   analyst,
		logger:    zap.NewNop().Sugar(),
		validator: validator.New(),
		pool:      &MockLearnQueue{},
	}
}

func TestAnswerQuestion(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mock           *MockAnalystService
		expectedStatus int
		wantAnswered   bool
	}{
		{
			name:           "Success",
			body:           `{"question":"who wins?","room_id":"r1","match":{"home_team":"Arsenal","away_team":"Chelsea"}}`,
			mock:           &MockAnalystService{},
			expectedStatus: http.StatusOK,
			wantAnswered:   true,
		},
		{
			name:           "Invalid JSON",
			body:           `{"question": `,
			mock:           &MockAnalystService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing question",
			body:           `{"room_id":"r1","match":{"home_team":"Arsenal","away_team":"Chelsea"}}`,
			mock:           &MockAnalystService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing teams",
			body:           `{"question":"who wins?","match":{"home_team":"Arsenal"}}`,
			mock:           &MockAnalystService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Service error",
			body: `{"question":"who wins?","match":{"home_team":"Arsenal","away_team":"Chelsea"}}`,
			mock: &MockAnalystService{
				AnswerFunc: func(ctx context.Context, q string, m models.MatchContext, r string) (*models.AnswerResponse, error) {
					return nil, context.DeadlineExceeded
				},
			},
			expectedStatus: http.StatusInternalServerError,
			wantAnswered:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(tt.mock)

			req := httptest.NewRequest("POST", "/api/v1/analyst/answer", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.AnswerQuestion(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v (body %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.wantAnswered != (tt.mock.answerCalls > 0) {
				t.Errorf("answer calls = %d, wantAnswered %v", tt.mock.answerCalls, tt.wantAnswered)
			}
		})
	}
}

func TestAnswerQuestionAIDisabled(t *testing.T) {
	mock := &MockAnalystService{}
	h := newTestHandler(mock)

	body := `{"question":"who wins?","ai_enabled":false,"match":{"home_team":"Arsenal","away_team":"Chelsea"}}`
	req := httptest.NewRequest("POST", "/api/v1/analyst/answer", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.AnswerQuestion(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want 200", w.Code)
	}
	if mock.answerCalls != 0 {
		t.Error("disabled AI must not reach the pipeline")
	}

	var resp models.AnswerResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Enabled || resp.Answer != "" {
		t.Errorf("resp = %+v, want disabled empty response", resp)
	}
}

func TestPredictMatch(t *testing.T) {
	h := newTestHandler(&MockAnalystService{})

	body := `{"match":{"home_team":"Arsenal","away_team":"Chelsea"},"home_form_score":80,"away_form_score":40}`
	req := httptest.NewRequest("POST", "/api/v1/analyst/predict", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.PredictMatch(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v (body %s)", w.Code, w.Body.String())
	}

	var pred models.MatchPrediction
	if err := json.Unmarshal(w.Body.Bytes(), &pred); err != nil {
		t.Fatal(err)
	}
	if sum := pred.HomeWinPct + pred.DrawPct + pred.AwayWinPct; sum != 100 {
		t.Errorf("probabilities sum to %d", sum)
	}
	if pred.HomeWinPct <= pred.AwayWinPct {
		t.Errorf("home on better form should be favored: %+v", pred)
	}
}

func TestPredictMatchValidation(t *testing.T) {
	h := newTestHandler(&MockAnalystService{})

	tests := []struct {
		name string
		body string
	}{
		{name: "Out of range form score", body: `{"match":{"home_team":"A","away_team":"B"},"home_form_score":150}`},
		{name: "Missing away team", body: `{"match":{"home_team":"A"}}`},
		{name: "Invalid JSON", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/analyst/predict", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.PredictMatch(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %v, want 400", w.Code)
			}
		})
	}
}

func TestGetInsights(t *testing.T) {
	mock := &MockAnalystService{
		InsightsFunc: func(ctx context.Context, subject, category string, limit int) ([]models.Insight, error) {
			if subject != "Arsenal" || category != "team" {
				t.Errorf("filters = %q/%q", subject, category)
			}
			return []models.Insight{{Subject: "Arsenal", Text: "on a roll"}}, nil
		},
	}
	h := newTestHandler(mock)

	req := httptest.NewRequest("GET", "/api/v1/analyst/insights?subject=Arsenal&category=team", nil)
	w := httptest.NewRecorder()

	h.GetInsights(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v", w.Code)
	}
	var resp struct {
		Insights []models.Insight `json:"insights"`
		Count    int              `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || len(resp.Insights) != 1 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGetInsightsBadLimit(t *testing.T) {
	h := newTestHandler(&MockAnalystService{})

	req := httptest.NewRequest("GET", "/api/v1/analyst/insights?limit=abc", nil)
	w := httptest.NewRecorder()
	h.GetInsights(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %v, want 400", w.Code)
	}
}

func TestGetSnapshot(t *testing.T) {
	tests := []struct {
		name           string
		roomID         string
		mock           *MockAnalystService
		expectedStatus int
	}{
		{
			name:   "Found",
			roomID: "room-1",
			mock: &MockAnalystService{
				SnapshotFunc: func(ctx context.Context, roomID string) (*models.CachedAnalysisSnapshot, error) {
					return &models.CachedAnalysisSnapshot{RoomID: roomID, HomeTeam: "Arsenal"}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing",
			roomID:         "room-2",
			mock:           &MockAnalystService{},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(tt.mock)

			r := chi.NewRouter()
			r.Get("/api/v1/analyst/snapshot/{roomID}", h.GetSnapshot)

			req := httptest.NewRequest("GET", "/api/v1/analyst/snapshot/"+tt.roomID, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}
