package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/fanarena/analyst-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RedisClient defines the subset of the Redis client the analyst stores use
type RedisClient interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// ConversationStore keeps per-conversation turn history. Storage is
// unbounded; Recent windows reads to the most recent k turns. Appends for
// the same key must be serialized relative to each other.
type ConversationStore interface {
	Append(ctx context.Context, key string, turn models.ConversationTurn) error
	Recent(ctx context.Context, key string, k int) ([]models.ConversationTurn, error)
}

// InsightStore persists learned facts append-only and reads them back
// filtered by subject/category substring, most recent first.
type InsightStore interface {
	Append(ctx context.Context, insight models.Insight) error
	Search(ctx context.Context, subject, category string, limit int) ([]models.Insight, error)
}

// SnapshotCache holds one overwritable analysis snapshot per room.
type SnapshotCache interface {
	Put(ctx context.Context, snap models.CachedAnalysisSnapshot) error
	Get(ctx context.Context, roomID string) (*models.CachedAnalysisSnapshot, error)
}

// AnalystService is the exposed surface of the match analyst pipeline.
type AnalystService interface {
	Answer(ctx context.Context, question string, match models.MatchContext, roomID string) (*models.AnswerResponse, error)
	Predict(match models.MatchContext, opts PredictOptions) *models.MatchPrediction
	Insights(ctx context.Context, subject, category string, limit int) ([]models.Insight, error)
	Snapshot(ctx context.Context, roomID string) (*models.CachedAnalysisSnapshot, error)
}

// Learner receives finished answers for asynchronous insight extraction.
// Implementations must never block the response path.
type Learner interface {
	Enqueue(job LearnJob) bool
}

// LearnJob carries everything the learning worker needs after a response
// has already been delivered.
type LearnJob struct {
	RoomID      string
	Match       models.MatchContext
	Bundle      *models.TargetedDataBundle
	Tags        []Need
	ContextText string
	Record      models.AnswerRecord
}
