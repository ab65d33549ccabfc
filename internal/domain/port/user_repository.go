package port

import (
	"context"

	"faceduker/internal/domain/entity"
)

// UserRepository интерфейс хранилища пользователей бота
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет пользователя
	Save(ctx context.Context, user *entity.User) error

	// UpdateVariant меняет выбранный пользователем узор
	UpdateVariant(ctx context.Context, userID int64, variant entity.Variant) error
}
