package handlers

import (
	"context"

	"github.com/fanarena/analyst-api/internal/logic"
	"github.com/fanarena/analyst-api/internal/models"
)

// MockAnalystService
type MockAnalystService struct {
	AnswerFunc   func(ctx context.Context, question string, match models.MatchContext, roomID string) (*models.AnswerResponse, error)
	PredictFunc  func(match models.MatchContext, opts logic.PredictOptions) *models.MatchPrediction
	InsightsFunc func(ctx context.Context, subject, category string, limit int) ([]models.Insight, error)
	SnapshotFunc func(ctx context.Context, roomID string) (*models.CachedAnalysisSnapshot, error)

	answerCalls int
}

func (m *MockAnalystService) Answer(ctx context.Context, question string, match models.MatchContext, roomID string) (*models.AnswerResponse, error) {
	m.answerCalls++
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, question, match, roomID)
	}
	return &models.AnswerResponse{Answer: "mock answer", Enabled: true}, nil
}

func (m *MockAnalystService) Predict(match models.MatchContext, opts logic.PredictOptions) *models.MatchPrediction {
	if m.PredictFunc != nil {
		return m.PredictFunc(match, opts)
	}
	return logic.Predict(match, opts)
}

func (m *MockAnalystService) Insights(ctx context.Context, subject, category string, limit int) ([]models.Insight, error) {
	if m.InsightsFunc != nil {
		return m.InsightsFunc(ctx, subject, category, limit)
	}
	return nil, nil
}

func (m *MockAnalystService) Snapshot(ctx context.Context, roomID string) (*models.CachedAnalysisSnapshot, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx, roomID)
	}
	return nil, nil
}

// MockLearnQueue
type MockLearnQueue struct {
	depth int
}

func (m *MockLearnQueue) QueueDepth() int { return m.depth }
