package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fanarena/analyst-api/internal/models"
)

const snapshotKeyPrefix = "analyst:snapshot:"

// pgInsightStore persists insights append-only in Postgres.
type pgInsightStore struct {
	pg PgPool
}

func NewPgInsightStore(pg PgPool) InsightStore {
	return &pgInsightStore{pg: pg}
}

func (s *pgInsightStore) Append(ctx context.Context, insight models.Insight) error {
	if insight.ID == "" {
		insight.ID = uuid.NewString()
	}
	if insight.CreatedAt.IsZero() {
		insight.CreatedAt = time.Now().UTC()
	}
	_, err := s.pg.Exec(ctx, `
		INSERT INTO insights (id, category, subject, text, source, confidence, match_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, insight.ID, insight.Category, insight.Subject, insight.Text, insight.Source,
		insight.Confidence, insight.MatchKey, insight.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert insight: %w", err)
	}
	return nil
}

func (s *pgInsightStore) Search(ctx context.Context, subject, category string, limit int) ([]models.Insight, error) {
	if limit <= 0 || limit > 20 {
		limit = 20
	}
	rows, err := s.pg.Query(ctx, `
		SELECT id, category, subject, text, source, confidence, match_key, created_at
		FROM insights
		WHERE ($1 = '' OR subject ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR category = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`, subject, category, limit)
	if err != nil {
		return nil, fmt.Errorf("query insights: %w", err)
	}
	defer rows.Close()

	var out []models.Insight
	for rows.Next() {
		var ins models.Insight
		if err := rows.Scan(&ins.ID, &ins.Category, &ins.Subject, &ins.Text,
			&ins.Source, &ins.Confidence, &ins.MatchKey, &ins.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan insight: %w", err)
		}
		out = append(out, ins)
	}
	return out, rows.Err()
}

// redisSnapshotCache stores one overwritable snapshot per room. No expiry:
// the snapshot is the room's best known current state until the next refresh.
type redisSnapshotCache struct {
	redis RedisClient
}

func NewRedisSnapshotCache(client RedisClient) SnapshotCache {
	return &redisSnapshotCache{redis: client}
}

func (c *redisSnapshotCache) Put(ctx context.Context, snap models.CachedAnalysisSnapshot) error {
	if snap.RoomID == "" {
		return fmt.Errorf("snapshot requires a room id")
	}
	snap.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.redis.Set(ctx, snapshotKeyPrefix+snap.RoomID, data, 0).Err(); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

func (c *redisSnapshotCache) Get(ctx context.Context, roomID string) (*models.CachedAnalysisSnapshot, error) {
	data, err := c.redis.Get(ctx, snapshotKeyPrefix+roomID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap models.CachedAnalysisSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// ExtractInsights applies the fixed learning rule set over a fetched bundle.
// Each rule carries a constant confidence. Pure function: persistence is the
// worker's job.
func ExtractInsights(match models.MatchContext, bundle *models.TargetedDataBundle) []models.Insight {
	if bundle == nil {
		return nil
	}
	matchKey := fmt.Sprintf("%s vs %s", match.HomeTeam, match.AwayTeam)
	var out []models.Insight

	add := func(category, subject, text string, confidence float64) {
		out = append(out, models.Insight{
			ID:         uuid.NewString(),
			Category:   category,
			Subject:    subject,
			Text:       text,
			Source:     models.InsightSourceAPIData,
			Confidence: confidence,
			MatchKey:   matchKey,
			CreatedAt:  time.Now().UTC(),
		})
	}

	for _, form := range []*models.TeamForm{bundle.HomeForm, bundle.AwayForm} {
		if form == nil {
			continue
		}
		if form.WinStreak >= 3 {
			add(models.InsightCategoryTeam, form.TeamName,
				fmt.Sprintf("%s are on a %d-game winning streak", form.TeamName, form.WinStreak), 0.8)
		}
		if form.FormScore >= 80 {
			add(models.InsightCategoryTeam, form.TeamName,
				fmt.Sprintf("%s are in excellent form (%.0f/100)", form.TeamName, form.FormScore), 0.7)
		}
	}

	if len(bundle.HeadToHead) >= 3 {
		homeWins, draws, awayWins := 0, 0, 0
		for _, m := range bundle.HeadToHead {
			switch {
			case m.HomeGoals > m.AwayGoals && m.HomeTeam == match.HomeTeam,
				m.AwayGoals > m.HomeGoals && m.AwayTeam == match.HomeTeam:
				homeWins++
			case m.HomeGoals == m.AwayGoals:
				draws++
			default:
				awayWins++
			}
		}
		add(models.InsightCategoryMatch, matchKey,
			fmt.Sprintf("Recent meetings: %s %d wins, %d draws, %s %d wins",
				match.HomeTeam, homeWins, draws, match.AwayTeam, awayWins), 0.75)
	}

	if gap, ok := standingsPointGap(match, bundle.Standings); ok && gap <= 3 {
		add(models.InsightCategoryMatch, matchKey,
			fmt.Sprintf("Only %d points separate the sides in the table - tight matchup", gap), 0.7)
	}

	for _, stats := range []*models.TeamSeasonStats{bundle.HomeStats, bundle.AwayStats} {
		if stats == nil {
			continue
		}
		if stats.AvgGoalsScored > 2 {
			add(models.InsightCategoryTeam, stats.TeamName,
				fmt.Sprintf("%s score %.2f goals per game this season - strong attack", stats.TeamName, stats.AvgGoalsScored), 0.7)
		}
		if stats.CleanSheets > 5 {
			add(models.InsightCategoryTeam, stats.TeamName,
				fmt.Sprintf("%s have kept %d clean sheets this season - solid defense", stats.TeamName, stats.CleanSheets), 0.7)
		}
	}

	if len(bundle.Injuries) > 0 {
		counts := map[string]int{}
		for _, inj := range bundle.Injuries {
			counts[inj.TeamName]++
		}
		for team, n := range counts {
			add(models.InsightCategoryTeam, team,
				fmt.Sprintf("%s have %d players injured or unavailable", team, n), 0.9)
		}
	}

	return out
}

func standingsPointGap(match models.MatchContext, standings []models.Standing) (int, bool) {
	var homePts, awayPts *int
	for _, row := range standings {
		row := row
		if row.TeamName == match.HomeTeam || (match.HomeTeamID > 0 && row.TeamID == match.HomeTeamID) {
			homePts = &row.Points
		}
		if row.TeamName == match.AwayTeam || (match.AwayTeamID > 0 && row.TeamID == match.AwayTeamID) {
			awayPts = &row.Points
		}
	}
	if homePts == nil || awayPts == nil {
		return 0, false
	}
	gap := *homePts - *awayPts
	if gap < 0 {
		gap = -gap
	}
	return gap, true
}

// StandingRank returns a team's rank in the table, 0 when unknown.
func StandingRank(teamID int, teamName string, standings []models.Standing) int {
	for _, row := range standings {
		if (teamID > 0 && row.TeamID == teamID) || (teamName != "" && row.TeamName == teamName) {
			return row.Rank
		}
	}
	return 0
}
