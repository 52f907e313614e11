package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRetryInterval = 10 * time.Millisecond
	releaseTimeout       = 2 * time.Second
)

// Удаляем ключ, только если он всё ещё принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock распределённая блокировка на SET NX PX с токеном владельца
type RedisLock struct {
	client         *redis.Client
	ttl            time.Duration
	acquireTimeout time.Duration
	retryInterval  time.Duration
	logger         Logger
}

// RedisConfig параметры подключения и блокировки
type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	TTL            time.Duration
	AcquireTimeout time.Duration
}

// NewRedisLock подключается к Redis и проверяет соединение
func NewRedisLock(ctx context.Context, cfg RedisConfig, logger Logger) (*RedisLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: NewRedisLock - ping %s: %v", ErrLockBackend, cfg.Addr, err)
	}

	return &RedisLock{
		client:         client,
		ttl:            cfg.TTL,
		acquireTimeout: cfg.AcquireTimeout,
		retryInterval:  defaultRetryInterval,
		logger:         logger,
	}, nil
}

// Acquire захватывает ключ, опрашивая Redis до acquireTimeout
func (l *RedisLock) Acquire(ctx context.Context, key string) (func(), error) {
	lockKey := "lock:" + key
	token := uuid.NewString()

	deadline := time.Now().Add(l.acquireTimeout)
	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: Acquire - setnx %s: %v", ErrLockBackend, lockKey, err)
		}
		if ok {
			break
		}

		if l.acquireTimeout > 0 && time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, l.client, []string{lockKey}, token).Err(); err != nil && l.logger != nil {
			l.logger.Warn("RedisLock: failed to release %s: %v", lockKey, err)
		}
	}, nil
}

// Close закрывает соединение с Redis
func (l *RedisLock) Close() error {
	return l.client.Close()
}
