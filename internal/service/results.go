package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const resultDateLayout = "02.01.2006 15:04"

type QuizResult struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	SessionID string `json:"session_id"`
	Score     int    `json:"score"`
	Outcome   string `json:"outcome"`
	Date      string `json:"date"`
}

type OutcomeCount struct {
	Outcome string `json:"outcome"`
	Count   int64  `json:"count"`
}

type ResultService interface {
	Record(ctx context.Context, result QuizResult) error
	// Last возвращает nil, если пользователь еще не проходил тест
	Last(ctx context.Context, userID int64) (*QuizResult, error)
	OutcomeStats(ctx context.Context) ([]OutcomeCount, error)
}

// NewResultService выбирает Redis, если клиент передан, иначе память
func NewResultService(client *redis.Client) ResultService {
	if client != nil {
		return NewRedisResultService(client, "breadbot")
	}
	// Fallback - in-memory (данные теряются при рестарте)
	return NewMemoryResultService()
}

func stampResult(result QuizResult) QuizResult {
	if result.Date == "" {
		result.Date = time.Now().Format(resultDateLayout)
	}
	return result
}

// Сортируем по количеству, при равенстве по названию
func sortOutcomeCounts(counts []OutcomeCount) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count == counts[j].Count {
			return counts[i].Outcome < counts[j].Outcome
		}
		return counts[i].Count > counts[j].Count
	})
}

// RedisResultService хранит последний результат пользователя и счетчики результатов в Redis
type RedisResultService struct {
	client *redis.Client
	prefix string
}

func NewRedisResultService(client *redis.Client, prefix string) *RedisResultService {
	return &RedisResultService{client: client, prefix: prefix}
}

func (rs *RedisResultService) lastKey(userID int64) string {
	return fmt.Sprintf("%s:result:%s", rs.prefix, strconv.FormatInt(userID, 10))
}

func (rs *RedisResultService) statsKey() string {
	return rs.prefix + ":outcomes"
}

func (rs *RedisResultService) Record(ctx context.Context, result QuizResult) error {
	result = stampResult(result)
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}

	pipe := rs.client.TxPipeline()
	pipe.Set(ctx, rs.lastKey(result.UserID), payload, 0)
	pipe.ZIncrBy(ctx, rs.statsKey(), 1, result.Outcome)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error saving result to redis: %w", err)
	}
	return nil
}

func (rs *RedisResultService) Last(ctx context.Context, userID int64) (*QuizResult, error) {
	raw, err := rs.client.Get(ctx, rs.lastKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading result from redis: %w", err)
	}

	var result QuizResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("error decoding result: %w", err)
	}
	return &result, nil
}

func (rs *RedisResultService) OutcomeStats(ctx context.Context) ([]OutcomeCount, error) {
	members, err := rs.client.ZRevRangeWithScores(ctx, rs.statsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("error loading outcome stats: %w", err)
	}

	counts := make([]OutcomeCount, 0, len(members))
	for _, m := range members {
		label, _ := m.Member.(string)
		counts = append(counts, OutcomeCount{Outcome: label, Count: int64(m.Score)})
	}
	sortOutcomeCounts(counts)
	return counts, nil
}

// MemoryResultService - fallback вариант
type MemoryResultService struct {
	mu       sync.RWMutex
	last     map[int64]QuizResult
	outcomes map[string]int64
}

func NewMemoryResultService() *MemoryResultService {
	return &MemoryResultService{
		last:     make(map[int64]QuizResult),
		outcomes: make(map[string]int64),
	}
}

func (ms *MemoryResultService) Record(_ context.Context, result QuizResult) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	result = stampResult(result)
	ms.last[result.UserID] = result
	ms.outcomes[result.Outcome]++
	return nil
}

func (ms *MemoryResultService) Last(_ context.Context, userID int64) (*QuizResult, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	result, ok := ms.last[userID]
	if !ok {
		return nil, nil
	}
	return &result, nil
}

func (ms *MemoryResultService) OutcomeStats(_ context.Context) ([]OutcomeCount, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	counts := make([]OutcomeCount, 0, len(ms.outcomes))
	for label, n := range ms.outcomes {
		counts = append(counts, OutcomeCount{Outcome: label, Count: n})
	}
	sortOutcomeCounts(counts)
	return counts, nil
}
