package queue

import (
	"context"
	"fmt"

	"faceduker/internal/domain/port"
)

// Options выбор и параметры бэкенда очереди
type Options struct {
	Backend string // memory, nats или redis
	Buffer  int
	NATSURL string
	Redis   RedisOptions
}

// New создаёт очередь выбранного бэкенда
func New(ctx context.Context, opts Options) (port.Queue, error) {
	switch opts.Backend {
	case "", "memory":
		return NewMemoryQueue(opts.Buffer), nil
	case "nats":
		q, err := NewNATSQueue(opts.NATSURL, "faceduker", opts.Buffer)
		if err != nil {
			return nil, err
		}
		return q, nil
	case "redis":
		if opts.Redis.Prefix == "" {
			opts.Redis.Prefix = "faceduker"
		}
		q, err := NewRedisQueue(ctx, opts.Redis)
		if err != nil {
			return nil, err
		}
		return q, nil
	}
	return nil, fmt.Errorf("unknown queue backend %q", opts.Backend)
}
