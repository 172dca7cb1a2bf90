package logic

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fanarena/analyst-api/internal/models"
)

type analystService struct {
	orchestrator *Orchestrator
	responder    *Responder
	history      ConversationStore
	insights     InsightStore
	snapshots    SnapshotCache
	learner      Learner
	logger       *zap.SugaredLogger

	historyWindow int
	charBudget    int
}

// AnalystConfig wires the pipeline's collaborators together.
type AnalystConfig struct {
	Orchestrator  *Orchestrator
	Responder     *Responder
	History       ConversationStore
	Insights      InsightStore
	Snapshots     SnapshotCache
	Learner       Learner
	Logger        *zap.Logger
	HistoryWindow int
	CharBudget    int
}

func NewAnalystService(cfg AnalystConfig) AnalystService {
	historyWindow := cfg.HistoryWindow
	if historyWindow <= 0 {
		historyWindow = 12
	}
	charBudget := cfg.CharBudget
	if charBudget <= 0 {
		charBudget = 4000
	}
	return &analystService{
		orchestrator:  cfg.Orchestrator,
		responder:     cfg.Responder,
		history:       cfg.History,
		insights:      cfg.Insights,
		snapshots:     cfg.Snapshots,
		learner:       cfg.Learner,
		logger:        cfg.Logger.Sugar(),
		historyWindow: historyWindow,
		charBudget:    charBudget,
	}
}

// Answer runs the full pipeline for one fan question. It always returns a
// non-empty answer: every external failure degrades rather than propagates.
func (s *analystService) Answer(ctx context.Context, question string, match models.MatchContext, roomID string) (*models.AnswerResponse, error) {
	start := time.Now()
	tags := DetectNeeds(question)

	var bundle *models.TargetedDataBundle
	var contextText string

	// A question that needs no fresh data can run off the room's cached
	// snapshot instead of re-fetching.
	if len(tags) == 0 && roomID != "" {
		snap, err := s.snapshots.Get(ctx, roomID)
		if err != nil {
			s.logger.Warnw("Failed to read analysis snapshot", "room", roomID, "error", err)
		} else if snap != nil {
			contextText = snap.ContextText
			bundle = &models.TargetedDataBundle{}
		}
	}
	if contextText == "" {
		bundle = s.orchestrator.FetchBundle(ctx, match, tags)
		contextText = FormatContext(match, bundle, s.charBudget)
	}

	key := ConversationKey(roomID, match)
	history, err := s.history.Recent(ctx, key, s.historyWindow)
	if err != nil {
		s.logger.Warnw("Failed to read conversation history", "key", key, "error", err)
	}

	answer, usedFallback := s.responder.Generate(ctx, question, match, bundle, contextText, history)

	now := time.Now().UTC()
	if err := s.history.Append(ctx, key, models.ConversationTurn{
		Role: models.RoleUser, Content: question, Timestamp: now,
	}); err != nil {
		s.logger.Warnw("Failed to append user turn", "key", key, "error", err)
	}
	if err := s.history.Append(ctx, key, models.ConversationTurn{
		Role: models.RoleAssistant, Content: answer, Timestamp: now,
	}); err != nil {
		s.logger.Warnw("Failed to append assistant turn", "key", key, "error", err)
	}

	// Learning and analytics happen off the response path.
	if s.learner != nil {
		s.learner.Enqueue(LearnJob{
			RoomID:      roomID,
			Match:       match,
			Bundle:      bundle,
			Tags:        tags,
			ContextText: contextText,
			Record: models.AnswerRecord{
				Timestamp:   now,
				RoomID:      roomID,
				Question:    question,
				Tags:        NeedStrings(tags),
				Categories:  fetchedCategories(bundle),
				Fallback:    usedFallback,
				AnswerChars: len(answer),
				LatencyMS:   time.Since(start).Milliseconds(),
			},
		})
	}

	questionsAnswered.Inc()
	return &models.AnswerResponse{Answer: answer, Enabled: true, Fallback: usedFallback}, nil
}

func (s *analystService) Predict(match models.MatchContext, opts PredictOptions) *models.MatchPrediction {
	return Predict(match, opts)
}

func (s *analystService) Insights(ctx context.Context, subject, category string, limit int) ([]models.Insight, error) {
	return s.insights.Search(ctx, subject, category, limit)
}

func (s *analystService) Snapshot(ctx context.Context, roomID string) (*models.CachedAnalysisSnapshot, error) {
	return s.snapshots.Get(ctx, roomID)
}

func fetchedCategories(bundle *models.TargetedDataBundle) []string {
	if bundle == nil {
		return nil
	}
	var out []string
	if bundle.HomeForm != nil || bundle.AwayForm != nil {
		out = append(out, "form")
	}
	if len(bundle.HeadToHead) > 0 {
		out = append(out, "h2h")
	}
	if len(bundle.Standings) > 0 {
		out = append(out, "standings")
	}
	if bundle.HomeStats != nil || bundle.AwayStats != nil {
		out = append(out, "stats")
	}
	if len(bundle.Injuries) > 0 {
		out = append(out, "injuries")
	}
	if len(bundle.Lineups) > 0 {
		out = append(out, "lineups")
	}
	if len(bundle.Events) > 0 {
		out = append(out, "events")
	}
	if bundle.Live != nil {
		out = append(out, "live")
	}
	if len(bundle.HomeSquad) > 0 || len(bundle.AwaySquad) > 0 {
		out = append(out, "squad")
	}
	return out
}
