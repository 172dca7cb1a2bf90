package models

import "time"

// AnswerRecord is one row of the analyst analytics log, batch-inserted into
// ClickHouse by the learning worker for product analytics. It never sits on
// the response path.
type AnswerRecord struct {
	Timestamp   time.Time
	RoomID      string
	Question    string
	Tags        []string
	Categories  []string // bundle categories that were actually fetched
	Fallback    bool
	AnswerChars int
	LatencyMS   int64
}
