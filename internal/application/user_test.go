package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"faceduker/internal/domain/entity"
	"faceduker/internal/infrastructure/storage"
)

func TestUserService_ProcessingAndFinish(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.BeginProcessing(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)

	user, err = svc.Finish(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateIdle, user.State)
}

func TestUserService_ChooseVariant(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.Get(ctx, 2, 20)
	require.NoError(t, err)
	require.Equal(t, entity.DefaultVariant, user.Variant)

	user, err = svc.ChooseVariant(ctx, 2, 20, entity.VariantMask)
	require.NoError(t, err)
	require.Equal(t, entity.VariantMask, user.Variant)
	require.Equal(t, int64(20), user.ChatID)
}
