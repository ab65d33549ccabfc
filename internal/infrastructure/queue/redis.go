package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"faceduker/internal/domain/entity"
	"faceduker/internal/domain/port"
	"faceduker/pkg/log"
)

// RedisPollTimeout сколько BRPOP ждёт сообщения перед повторной проверкой ctx
const RedisPollTimeout = time.Second

// RedisOptions параметры подключения к Redis
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // префикс ключей списков
}

// RedisQueue очередь на списках Redis: LPUSH на публикации, BRPOP у получателей.
type RedisQueue struct {
	client *redis.Client
	prefix string
	done   chan struct{}
	once   sync.Once
}

type redisEnvelope struct {
	ID      string `json:"id"`
	Payload []byte `json:"payload"`
}

// NewRedisQueue подключается к Redis и проверяет соединение PING'ом
func NewRedisQueue(ctx context.Context, opts RedisOptions) (*RedisQueue, error) {
	log.Info(log.Fields{"addr": opts.Addr}, "connecting to redis")

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisQueue{
		client: client,
		prefix: opts.Prefix,
		done:   make(chan struct{}),
	}, nil
}

func (q *RedisQueue) key(subject string) string {
	if q.prefix == "" {
		return subject
	}
	return q.prefix + ":" + subject
}

func (q *RedisQueue) closed() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

func (q *RedisQueue) Publish(ctx context.Context, subject string, payload []byte) (string, error) {
	if q.closed() {
		return "", entity.ErrQueueClosed
	}

	env := redisEnvelope{ID: uuid.NewString(), Payload: payload}
	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshal message: %w", err)
	}

	if err := q.client.LPush(ctx, q.key(subject), data).Err(); err != nil {
		return "", fmt.Errorf("redis lpush: %w", err)
	}
	return env.ID, nil
}

func (q *RedisQueue) Receive(ctx context.Context, subject string) (<-chan entity.Message, error) {
	if q.closed() {
		return nil, entity.ErrQueueClosed
	}

	key := q.key(subject)
	out := make(chan entity.Message)

	go func() {
		defer close(out)
		for {
			if ctx.Err() != nil || q.closed() {
				return
			}

			res, err := q.client.BRPop(ctx, RedisPollTimeout, key).Result()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				if ctx.Err() != nil || q.closed() || errors.Is(err, redis.ErrClosed) {
					return
				}
				log.Error(log.Fields{"key": key, "error": err}, "redis brpop failed")
				select {
				case <-time.After(RedisPollTimeout):
				case <-ctx.Done():
					return
				}
				continue
			}

			// BRPOP возвращает пару [ключ, значение]
			var env redisEnvelope
			if err := json.Unmarshal([]byte(res[1]), &env); err != nil {
				log.Warn(log.Fields{"key": key, "error": err}, "drop malformed message")
				continue
			}

			select {
			case out <- entity.Message{ID: env.ID, Subject: subject, Payload: env.Payload}:
			case <-ctx.Done():
				return
			case <-q.done:
				return
			}
		}
	}()

	return out, nil
}

func (q *RedisQueue) Close() error {
	var err error
	q.once.Do(func() {
		close(q.done)
		err = q.client.Close()
	})
	return err
}

var _ port.Queue = (*RedisQueue)(nil)
