package slots

import "errors"

var (
	// ErrCacheMiss в кэше нет слотов для ключа
	ErrCacheMiss = errors.New("slots.cache: miss")

	// ErrRedisUnavailable redis не ответил на ping при старте
	ErrRedisUnavailable = errors.New("slots.cache: redis unavailable")

	ErrEncode = errors.New("slots.cache: failed to encode slots")
	ErrDecode = errors.New("slots.cache: failed to decode slots")
	ErrRedis  = errors.New("slots.cache: redis command failed")
)
