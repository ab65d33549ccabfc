package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"faceduker/internal/container"
	"faceduker/internal/domain/entity"
	"faceduker/pkg/log"
)

const (
	msgStart = `👋 Привет! Я дорисовываю лица на фотографиях.

📸 Отправьте мне фото, и я закрашу каждое найденное лицо.

📋 Команды:
/cartoon — мультяшное лицо (по умолчанию)
/mask — чёрно-белая маска с красным кругом
/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Выберите узор: /cartoon или /mask
2️⃣ Отправьте фото (можно файлом, тогда без сжатия)
3️⃣ Получите фото с закрашенными лицами

💡 Лица ищутся только анфас, лучше при хорошем освещении.`

	msgSendPhoto       = "📸 Пожалуйста, отправьте фото с лицами."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgBusy            = "⏳ Ещё обрабатываю предыдущее фото, подождите."
	msgNoFaces         = "🤷 Лиц не нашлось, фото без изменений."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другое фото."
	msgUnavailable     = "⚠️ Поиск лиц сейчас недоступен. Попробуйте позже."
	msgVariantCartoon  = "🙂 Буду рисовать мультяшные лица."
	msgVariantMask     = "🎭 Буду рисовать маски."
)

// MaxDownloadSize предел размера скачиваемого из Telegram файла
const MaxDownloadSize = 20 << 20

// API часть tgbotapi.BotAPI, которой пользуется бот
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot представляет Telegram-бота
type Bot struct {
	api  API
	app  *container.Container
	http *http.Client
}

// NewBot создаёт нового бота
func NewBot(token string, app *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info(log.Fields{"account": api.Self.UserName}, "telegram bot authorized")

	return NewBotWithAPI(api, app), nil
}

// NewBotWithAPI создаёт бота поверх готового клиента API
func NewBotWithAPI(api API, app *container.Container) *Bot {
	return &Bot{
		api:  api,
		app:  app,
		http: &http.Client{Timeout: time.Minute},
	}
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}

			mctx := log.ContextWithRequestID(ctx, uuid.NewString())
			b.handleMessage(mctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}

	user, err := b.app.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.WithRequestID(ctx).WithError(err).Error("failed to get user")
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Фото или картинка файлом
	if fileID := imageFileID(msg); fileID != "" {
		b.handleImage(ctx, msg, user, fileID)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	switch msg.Command() {
	case "start":
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "mask":
		b.chooseVariant(ctx, msg, user, entity.VariantMask, msgVariantMask)

	case "cartoon":
		b.chooseVariant(ctx, msg, user, entity.VariantCartoon, msgVariantCartoon)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

func (b *Bot) chooseVariant(ctx context.Context, msg *tgbotapi.Message, user *entity.User, v entity.Variant, reply string) {
	if _, err := b.app.UserService.ChooseVariant(ctx, user.ID, user.ChatID, v); err != nil {
		log.WithRequestID(ctx).WithError(err).Error("failed to save variant")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	b.sendMessage(msg.Chat.ID, reply)
}

// handleImage скачивает картинку, рисует узор и отправляет результат
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, user *entity.User, fileID string) {
	if user.State == entity.StateProcessing {
		b.sendMessage(msg.Chat.ID, msgBusy)
		return
	}

	if _, err := b.app.UserService.BeginProcessing(ctx, user.ID, user.ChatID); err != nil {
		log.WithRequestID(ctx).WithError(err).Error("failed to update user state")
	}
	defer func() {
		if _, err := b.app.UserService.Finish(ctx, user.ID, user.ChatID); err != nil {
			log.WithRequestID(ctx).WithError(err).Error("failed to update user state")
		}
	}()

	b.sendMessage(msg.Chat.ID, msgProcessing)

	data, err := b.downloadFile(ctx, fileID)
	if err != nil {
		log.WithRequestID(ctx).WithError(err).Error("failed to download photo")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	out, err := b.app.PipelineService.Transform(ctx, data, user.Variant)
	if err != nil {
		log.WithRequestID(ctx).WithError(err).Warn("failed to process photo")
		if errors.Is(err, entity.ErrDetectionUnavailable) {
			b.sendMessage(msg.Chat.ID, msgUnavailable)
			return
		}
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	if out.Faces == 0 {
		b.sendMessage(msg.Chat.ID, msgNoFaces)
	}

	ext := strings.TrimPrefix(out.ContentType, "image/")
	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "faceduker." + ext, Bytes: out.Data})
	if out.Faces > 0 {
		photo.Caption = fmt.Sprintf("Найдено лиц: %d", out.Faces)
	}
	if _, err := b.api.Send(photo); err != nil {
		log.WithRequestID(ctx).WithError(err).Error("failed to send photo")
	}
}

// imageFileID возвращает ID фото с максимальным разрешением или картинки, отправленной файлом
func imageFileID(msg *tgbotapi.Message) string {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID
	}
	return ""
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Error(log.Fields{"chat_id": chatID, "error": err}, "failed to send message")
	}
}
