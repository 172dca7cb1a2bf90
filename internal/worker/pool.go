// Package worker implements the buffered worker pool behind the analyst's
// learning path. It decouples insight extraction and analytics writes from
// the HTTP response path, providing:
// - Non-blocking enqueue with load shedding
// - Batch inserts for efficient ClickHouse analytics writes
// - Graceful shutdown with flush guarantees

package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/fanarena/analyst-api/internal/logic"
	"github.com/fanarena/analyst-api/internal/models"
)

// Prometheus metrics
var (
	jobsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyst_learn_jobs_enqueued_total",
		Help: "Total number of learning jobs enqueued",
	})

	jobsShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyst_learn_jobs_shed_total",
		Help: "Total number of learning jobs dropped because the queue was full",
	})

	insightsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyst_insights_extracted_total",
		Help: "Total number of insights extracted and persisted",
	})

	insightFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyst_insight_failures_total",
		Help: "Total number of insight persistence failures",
	})

	learnQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "analyst_learn_queue_depth",
		Help: "Current depth of the learning queue",
	})

	analyticsFlushDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analyst_analytics_flush_duration_seconds",
		Help:    "Duration of analytics batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})
)

// PoolConfig configures the learning worker pool. ClickHouse is optional:
// when nil the analytics sink is skipped and only insights/snapshots run.
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Insights      logic.InsightStore
	Snapshots     logic.SnapshotCache
	Logger        *zap.Logger
}

// Pool consumes finished answers and turns them into persisted insights,
// room snapshots, and analytics rows. It never blocks the response path.
type Pool struct {
	config   PoolConfig
	jobQueue chan logic.LearnJob
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new learning worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 2000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 2 * time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan logic.LearnJob, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Learning worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the worker pool. Queued jobs are drained and
// pending analytics flushed before workers exit.
func (p *Pool) Stop() {
	p.logger.Info("Stopping learning worker pool...")
	close(p.jobQueue)
	p.wg.Wait()
	p.cancel()
	p.logger.Info("Learning worker pool stopped")
}

// Enqueue hands a finished answer to the pool. Never blocks: a full queue
// sheds the job, because learning is strictly best-effort.
func (p *Pool) Enqueue(job logic.LearnJob) bool {
	// Protect against sending on closed channel during shutdown
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue learning job (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- job:
		jobsEnqueued.Inc()
		return true
	default:
		jobsShed.Inc()
		p.logger.Warnw("Learning queue full, shedding job", "room", job.RoomID)
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker processes learning jobs and batches analytics rows
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]models.AnswerRecord, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 || p.config.ClickHouse == nil {
			batch = batch[:0]
			return
		}
		start := time.Now()
		if err := p.flushAnalytics(batch); err != nil {
			p.logger.Errorw("Analytics batch insert failed", "worker", id, "batchSize", len(batch), "error", err)
		}
		analyticsFlushDuration.Observe(time.Since(start).Seconds())
		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}

			p.processJob(job)
			batch = append(batch, job.Record)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

// processJob extracts and persists insights and refreshes the room
// snapshot. Every failure is logged and swallowed; nothing here may ever
// surface on the answer path.
func (p *Pool) processJob(job logic.LearnJob) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorw("Learning job panic", "room", job.RoomID, "error", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, insight := range logic.ExtractInsights(job.Match, job.Bundle) {
		if err := p.config.Insights.Append(ctx, insight); err != nil {
			insightFailures.Inc()
			p.logger.Warnw("Failed to persist insight", "subject", insight.Subject, "error", err)
			continue
		}
		insightsExtracted.Inc()
	}

	if job.RoomID != "" && job.ContextText != "" {
		snap := models.CachedAnalysisSnapshot{
			RoomID:      job.RoomID,
			HomeTeam:    job.Match.HomeTeam,
			AwayTeam:    job.Match.AwayTeam,
			ContextText: job.ContextText,
			Tags:        logic.NeedStrings(job.Tags),
		}
		if err := p.config.Snapshots.Put(ctx, snap); err != nil {
			p.logger.Warnw("Failed to refresh room snapshot", "room", job.RoomID, "error", err)
		}
	}
}

// flushAnalytics batch-inserts answer records into ClickHouse.
func (p *Pool) flushAnalytics(batch []models.AnswerRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, `
		INSERT INTO analyst.answer_log (
			timestamp, room_id, question, tags, categories,
			fallback, answer_chars, latency_ms
		)
	`)
	if err != nil {
		return err
	}

	for _, rec := range batch {
		fallback := uint8(0)
		if rec.Fallback {
			fallback = 1
		}
		if err := chBatch.Append(
			rec.Timestamp,
			rec.RoomID,
			rec.Question,
			rec.Tags,
			rec.Categories,
			fallback,
			uint32(rec.AnswerChars),
			uint64(rec.LatencyMS),
		); err != nil {
			p.logger.Warnw("Failed to append analytics row", "error", err)
			continue
		}
	}

	return chBatch.Send()
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			learnQueueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
