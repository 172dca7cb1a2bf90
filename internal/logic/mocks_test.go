package logic

import (
	"context"
	"errors"
	"sync"

	"github.com/fanarena/analyst-api/internal/gateway"
	"github.com/fanarena/analyst-api/internal/models"
)

var errProviderDown = errors.New("provider unavailable")

// MockProvider
type MockProvider struct {
	SearchTeamFunc func(ctx context.Context, name string) (int, error)
	TeamFormFunc   func(ctx context.Context, teamID int) (*models.TeamForm, error)
	StandingsFunc  func(ctx context.Context, leagueID, season int) ([]models.Standing, error)
	TeamStatsFunc  func(ctx context.Context, teamID, leagueID, season int) (*models.TeamSeasonStats, error)
	InjuriesFunc   func(ctx context.Context, teamID, season int) ([]models.InjuryRecord, error)
	LineupsFunc    func(ctx context.Context, fixtureID int) ([]models.LineupRecord, error)
	EventsFunc     func(ctx context.Context, fixtureID int) ([]models.MatchEvent, error)
	FixtureFunc    func(ctx context.Context, fixtureID int) (*models.FixtureState, error)
	SquadFunc      func(ctx context.Context, teamID int) ([]models.SquadPlayer, error)
	HeadToHeadFunc func(ctx context.Context, homeID, awayID, last int) ([]models.HeadToHeadMatch, error)

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockProvider) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

func (m *MockProvider) callCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockProvider) SearchTeam(ctx context.Context, name string) (int, error) {
	m.record("SearchTeam")
	if m.SearchTeamFunc != nil {
		return m.SearchTeamFunc(ctx, name)
	}
	return 1, nil
}

func (m *MockProvider) TeamForm(ctx context.Context, teamID int) (*models.TeamForm, error) {
	m.record("TeamForm")
	if m.TeamFormFunc != nil {
		return m.TeamFormFunc(ctx, teamID)
	}
	return &models.TeamForm{TeamID: teamID}, nil
}

func (m *MockProvider) Standings(ctx context.Context, leagueID, season int) ([]models.Standing, error) {
	m.record("Standings")
	if m.StandingsFunc != nil {
		return m.StandingsFunc(ctx, leagueID, season)
	}
	return nil, nil
}

func (m *MockProvider) TeamStats(ctx context.Context, teamID, leagueID, season int) (*models.TeamSeasonStats, error) {
	m.record("TeamStats")
	if m.TeamStatsFunc != nil {
		return m.TeamStatsFunc(ctx, teamID, leagueID, season)
	}
	return nil, nil
}

func (m *MockProvider) Injuries(ctx context.Context, teamID, season int) ([]models.InjuryRecord, error) {
	m.record("Injuries")
	if m.InjuriesFunc != nil {
		return m.InjuriesFunc(ctx, teamID, season)
	}
	return nil, nil
}

func (m *MockProvider) Lineups(ctx context.Context, fixtureID int) ([]models.LineupRecord, error) {
	m.record("Lineups")
	if m.LineupsFunc != nil {
		return m.LineupsFunc(ctx, fixtureID)
	}
	return nil, nil
}

func (m *MockProvider) Events(ctx context.Context, fixtureID int) ([]models.MatchEvent, error) {
	m.record("Events")
	if m.EventsFunc != nil {
		return m.EventsFunc(ctx, fixtureID)
	}
	return nil, nil
}

func (m *MockProvider) Fixture(ctx context.Context, fixtureID int) (*models.FixtureState, error) {
	m.record("Fixture")
	if m.FixtureFunc != nil {
		return m.FixtureFunc(ctx, fixtureID)
	}
	return nil, nil
}

func (m *MockProvider) Squad(ctx context.Context, teamID int) ([]models.SquadPlayer, error) {
	m.record("Squad")
	if m.SquadFunc != nil {
		return m.SquadFunc(ctx, teamID)
	}
	return nil, nil
}

func (m *MockProvider) HeadToHead(ctx context.Context, homeID, awayID, last int) ([]models.HeadToHeadMatch, error) {
	m.record("HeadToHead")
	if m.HeadToHeadFunc != nil {
		return m.HeadToHeadFunc(ctx, homeID, awayID, last)
	}
	return nil, nil
}

// MockGateway
type MockGateway struct {
	CompleteFunc func(ctx context.Context, req gateway.ChatRequest) (string, error)
}

func (m *MockGateway) Complete(ctx context.Context, req gateway.ChatRequest) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "mock answer", nil
}

// MockLearner
type MockLearner struct {
	mu   sync.Mutex
	jobs []LearnJob
}

func (m *MockLearner) Enqueue(job LearnJob) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
	return true
}

func (m *MockLearner) Jobs() []LearnJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LearnJob, len(m.jobs))
	copy(out, m.jobs)
	return out
}

// MockSnapshotCache
type MockSnapshotCache struct {
	mu      sync.Mutex
	snaps   map[string]models.CachedAnalysisSnapshot
	GetFunc func(ctx context.Context, roomID string) (*models.CachedAnalysisSnapshot, error)
}

func (m *MockSnapshotCache) Put(_ context.Context, snap models.CachedAnalysisSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snaps == nil {
		m.snaps = make(map[string]models.CachedAnalysisSnapshot)
	}
	m.snaps[snap.RoomID] = snap
	return nil
}

func (m *MockSnapshotCache) Get(ctx context.Context, roomID string) (*models.CachedAnalysisSnapshot, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, roomID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[roomID]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

// MockInsightStore
type MockInsightStore struct {
	mu       sync.Mutex
	insights []models.Insight
}

func (m *MockInsightStore) Append(_ context.Context, insight models.Insight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insights = append(m.insights, insight)
	return nil
}

func (m *MockInsightStore) Search(_ context.Context, subject, category string, limit int) ([]models.Insight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Insight, len(m.insights))
	copy(out, m.insights)
	return out, nil
}
