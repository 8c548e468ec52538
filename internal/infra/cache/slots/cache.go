package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const (
	keyPrefix  = "slots"
	scanBatch  = 100
	defaultTTL = 30 * time.Second
)

// Результаты обращения к кэшу для метрики slot_cache_requests_total
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// RedisCache кэш списка слотов на день.
// Кэш только ускоряет чтение: допуск брони всегда пересчитывает слоты в транзакции.
type RedisCache struct {
	client   redis.UniversalClient
	ttl      time.Duration
	requests *prometheus.CounterVec
}

// NewRedisCache создает кэш слотов. requests может быть nil.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration, requests *prometheus.CounterVec) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{
		client:   client,
		ttl:      ttl,
		requests: requests,
	}
}

// Key ключ кэша: slots:{eventID}:{YYYY-MM-DD}
func Key(eventID int64, date time.Time) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, eventID, date.Format(domain.DateFormat))
}

func eventPattern(eventID int64) string {
	return fmt.Sprintf("%s:%d:*", keyPrefix, eventID)
}

type cachedSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Capacity  int       `json:"capacity"`
	Booked    int       `json:"booked"`
	Location  *string   `json:"location,omitempty"`
	SessionID *int64    `json:"session_id,omitempty"`
}

// Get возвращает слоты дня или ErrCacheMiss
func (c *RedisCache) Get(ctx context.Context, eventID int64, date time.Time) ([]domain.Slot, error) {
	data, err := c.client.Get(ctx, Key(eventID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.observe(resultMiss)
		return nil, ErrCacheMiss
	}
	if err != nil {
		c.observe(resultError)
		return nil, fmt.Errorf("%w: Get: %v", ErrRedis, err)
	}

	var cached []cachedSlot
	if err := json.Unmarshal(data, &cached); err != nil {
		c.observe(resultError)
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	c.observe(resultHit)

	result := make([]domain.Slot, 0, len(cached))
	for _, s := range cached {
		result = append(result, domain.Slot{
			Start:     s.Start.UTC(),
			End:       s.End.UTC(),
			Capacity:  s.Capacity,
			Booked:    s.Booked,
			Location:  s.Location,
			SessionID: s.SessionID,
		})
	}
	return result, nil
}

// Set сохраняет слоты дня на ttl
func (c *RedisCache) Set(ctx context.Context, eventID int64, date time.Time, slots []domain.Slot) error {
	cached := make([]cachedSlot, 0, len(slots))
	for _, s := range slots {
		cached = append(cached, cachedSlot{
			Start:     s.Start,
			End:       s.End,
			Capacity:  s.Capacity,
			Booked:    s.Booked,
			Location:  s.Location,
			SessionID: s.SessionID,
		})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := c.client.Set(ctx, Key(eventID, date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrRedis, err)
	}
	return nil
}

// InvalidateDate удаляет слоты одного дня
func (c *RedisCache) InvalidateDate(ctx context.Context, eventID int64, date time.Time) error {
	if err := c.client.Del(ctx, Key(eventID, date)).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateDate: %v", ErrRedis, err)
	}
	return nil
}

// InvalidateEvent удаляет все закэшированные дни события (SCAN по шаблону, без KEYS)
func (c *RedisCache) InvalidateEvent(ctx context.Context, eventID int64) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, eventPattern(eventID), scanBatch).Result()
		if err != nil {
			return fmt.Errorf("%w: InvalidateEvent - scan: %v", ErrRedis, err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("%w: InvalidateEvent - del: %v", ErrRedis, err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *RedisCache) observe(result string) {
	if c.requests == nil {
		return
	}
	c.requests.WithLabelValues(result).Inc()
}

// NoopCache используется, когда redis выключен или недоступен
type NoopCache struct{}

func (NoopCache) Get(context.Context, int64, time.Time) ([]domain.Slot, error) {
	return nil, ErrCacheMiss
}

func (NoopCache) Set(context.Context, int64, time.Time, []domain.Slot) error { return nil }

func (NoopCache) InvalidateDate(context.Context, int64, time.Time) error { return nil }

func (NoopCache) InvalidateEvent(context.Context, int64) error { return nil }
