package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fanarena/analyst-api/internal/models"
)

const conversationKeyPrefix = "analyst:conv:"

// ConversationKey returns the history key for a question: the room id when
// the room layer supplies one, otherwise a stable key derived from the
// ordered team pair so pre-room chats still accumulate context.
func ConversationKey(roomID string, match models.MatchContext) string {
	if roomID != "" {
		return roomID
	}
	pair := strings.ToLower(match.HomeTeam) + "|" + strings.ToLower(match.AwayTeam)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(pair)).String()
}

// redisConversationStore keeps turns in a Redis list per conversation.
// RPUSH is atomic per key, which gives the append ordering guarantee
// without any locking on our side; different keys are fully independent.
type redisConversationStore struct {
	redis RedisClient
}

func NewRedisConversationStore(client RedisClient) ConversationStore {
	return &redisConversationStore{redis: client}
}

func (s *redisConversationStore) Append(ctx context.Context, key string, turn models.ConversationTurn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}
	if err := s.redis.RPush(ctx, conversationKeyPrefix+key, data).Err(); err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	return nil
}

func (s *redisConversationStore) Recent(ctx context.Context, key string, k int) ([]models.ConversationTurn, error) {
	if k <= 0 {
		return nil, nil
	}
	raw, err := s.redis.LRange(ctx, conversationKeyPrefix+key, int64(-k), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read recent turns: %w", err)
	}

	turns := make([]models.ConversationTurn, 0, len(raw))
	for _, item := range raw {
		var turn models.ConversationTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			continue // skip corrupt entries rather than failing the read
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// memoryConversationStore is the in-process implementation used in tests
// and single-node development. Appends per key are serialized by a mutex.
type memoryConversationStore struct {
	mu    sync.Mutex
	turns map[string][]models.ConversationTurn
}

func NewMemoryConversationStore() ConversationStore {
	return &memoryConversationStore{turns: make(map[string][]models.ConversationTurn)}
}

func (s *memoryConversationStore) Append(_ context.Context, key string, turn models.ConversationTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[key] = append(s.turns[key], turn)
	return nil
}

func (s *memoryConversationStore) Recent(_ context.Context, key string, k int) ([]models.ConversationTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.turns[key]
	if k <= 0 || len(all) == 0 {
		return nil, nil
	}
	if len(all) > k {
		all = all[len(all)-k:]
	}
	out := make([]models.ConversationTurn, len(all))
	copy(out, all)
	return out, nil
}
