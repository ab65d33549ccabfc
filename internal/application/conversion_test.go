package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"faceduker/internal/domain/entity"
)

func newConversion(locator *fakeLocator) (*ConversionService, *fakeQueue, *fakeBroadcaster) {
	q := &fakeQueue{}
	b := &fakeBroadcaster{}
	return NewConversionService(NewPipelineService(locator, 200), q, b), q, b
}

func TestConversionService_Enqueue(t *testing.T) {
	svc, q, _ := newConversion(&fakeLocator{})

	id, err := svc.Enqueue(context.Background(), []byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, "msg-1", id)
	require.Len(t, q.sent, 1)
	require.Equal(t, entity.SubjectFaceConverter, q.sent[0].subject)
	require.Equal(t, []byte{1, 2, 3}, q.sent[0].payload)

	_, err = svc.Enqueue(context.Background(), nil)
	require.ErrorIs(t, err, entity.ErrDecodeFailure)
	require.Len(t, q.sent, 1)
}

func TestConversionService_Resubmit(t *testing.T) {
	svc, q, _ := newConversion(&fakeLocator{})
	ctx := context.Background()

	_, err := svc.Resubmit(ctx, base64.StdEncoding.EncodeToString([]byte("abc")))
	require.NoError(t, err)
	_, err = svc.Resubmit(ctx, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("xyz")))
	require.NoError(t, err)

	require.Len(t, q.sent, 2)
	require.Equal(t, []byte("abc"), q.sent[0].payload)
	require.Equal(t, []byte("xyz"), q.sent[1].payload)

	_, err = svc.Resubmit(ctx, "%%% not base64 %%%")
	require.ErrorIs(t, err, entity.ErrDecodeFailure)
	require.Len(t, q.sent, 2)
}

func TestConversionService_HandleBroadcastsResult(t *testing.T) {
	locator := &fakeLocator{faces: []entity.FaceRect{{X: 50, Y: 50, Width: 200, Height: 200}}}
	svc, _, b := newConversion(locator)

	src := image.NewRGBA(image.Rect(0, 0, 800, 400))
	err := svc.Handle(context.Background(), entity.Message{ID: "1", Payload: encodePNG(t, src)})
	require.NoError(t, err)

	require.Len(t, b.sent, 1)
	require.Equal(t, entity.TopicFaces, b.sent[0].topic)

	raw, err := base64.StdEncoding.DecodeString(string(b.sent[0].payload))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())
}

func TestConversionService_HandleMalformedDoesNotBroadcast(t *testing.T) {
	svc, _, b := newConversion(&fakeLocator{})

	err := svc.Handle(context.Background(), entity.Message{ID: "1", Payload: []byte("garbage")})
	require.ErrorIs(t, err, entity.ErrDecodeFailure)
	require.Empty(t, b.sent)
}
