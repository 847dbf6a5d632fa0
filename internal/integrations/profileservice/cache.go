package profileservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TutorGetter интерфейс источника профилей (оборачиваемый клиент)
type TutorGetter interface {
	GetTutor(ctx context.Context, tutorID int64) (*TutorProfile, error)
}

// CachedClient декоратор над клиентом ProfileService с TTL-кешем в Redis
// Контракт кеша: профиль живёт не дольше ttl; бизнес-ошибки (not found)
// не кешируются; при недоступности Redis запрос уходит напрямую в сервис
type CachedClient struct {
	inner TutorGetter
	rdb   *redis.Client
	ttl   time.Duration
	log   Logger
}

// NewCachedClient создает кеширующий декоратор
func NewCachedClient(inner TutorGetter, rdb *redis.Client, ttl time.Duration, log Logger) *CachedClient {
	return &CachedClient{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
		log:   log,
	}
}

func cacheKey(tutorID int64) string {
	return fmt.Sprintf("tutor_profile:%d", tutorID)
}

// GetTutor получает профиль из кеша или из ProfileService
func (c *CachedClient) GetTutor(ctx context.Context, tutorID int64) (*TutorProfile, error) {
	key := cacheKey(tutorID)

	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var profile TutorProfile
		if jsonErr := json.Unmarshal([]byte(cached), &profile); jsonErr == nil {
			return &profile, nil
		}
		// Битая запись в кеше - удаляем и идём в сервис
		c.log.Warn("profile cache: corrupted entry for tutor_id=%d, evicting", tutorID)
		c.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis недоступен - не считаем фатальным, идём напрямую
		c.log.Warn("profile cache: redis unavailable for tutor_id=%d: %v", tutorID, err)
	}

	profile, err := c.inner.GetTutor(ctx, tutorID)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(profile); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			c.log.Warn("profile cache: failed to store tutor_id=%d: %v", tutorID, setErr)
		}
	}

	return profile, nil
}

// Invalidate сбрасывает закешированный профиль репетитора
func (c *CachedClient) Invalidate(ctx context.Context, tutorID int64) error {
	return c.rdb.Del(ctx, cacheKey(tutorID)).Err()
}
