package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateIdle       UserState = "idle"       // Ждём фото
	StateProcessing UserState = "processing" // Обработка изображения
)

// User представляет пользователя бота
type User struct {
	ID      int64     // Telegram User ID
	ChatID  int64     // Telegram Chat ID
	State   UserState // Текущее состояние пользователя
	Variant Variant   // Выбранный узор
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:      userID,
		ChatID:  chatID,
		State:   StateIdle,
		Variant: DefaultVariant,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// SetVariant меняет узор, которым бот рисует лица
func (u *User) SetVariant(v Variant) {
	u.Variant = v
}
