package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"faceduker/internal/domain/entity"
)

// fakeLocator всегда возвращает заранее заданные лица
type fakeLocator struct {
	faces []entity.FaceRect
	err   error
	calls int
}

func (l *fakeLocator) Detect(_ context.Context, _ image.Image) ([]entity.FaceRect, error) {
	l.calls++
	return l.faces, l.err
}

type published struct {
	subject string
	payload []byte
}

type fakeQueue struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (q *fakeQueue) Publish(_ context.Context, subject string, payload []byte) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	q.sent = append(q.sent, published{subject: subject, payload: payload})
	return "msg-" + strconv.Itoa(len(q.sent)), nil
}

func (q *fakeQueue) Receive(_ context.Context, _ string) (<-chan entity.Message, error) {
	return nil, errors.New("not supported")
}

func (q *fakeQueue) Close() error { return nil }

type broadcast struct {
	topic   string
	payload []byte
}

type fakeBroadcaster struct {
	mu   sync.Mutex
	sent []broadcast
	err  error
}

func (b *fakeBroadcaster) Broadcast(_ context.Context, topic string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.sent = append(b.sent, broadcast{topic: topic, payload: payload})
	return nil
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
