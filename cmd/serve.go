package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"faceduker/internal/api/httpapi"
	"faceduker/internal/api/telegram"
	"faceduker/internal/api/ws"
	"faceduker/internal/container"
	"faceduker/internal/domain/entity"
	"faceduker/internal/domain/port"
	"faceduker/internal/infrastructure/broadcast"
	"faceduker/internal/infrastructure/mqtt"
	"faceduker/internal/infrastructure/queue"
	"faceduker/internal/infrastructure/storage"
	"faceduker/internal/infrastructure/vision"
	"faceduker/internal/worker"
	"faceduker/pkg/log"
)

const shutdownTimeout = 15 * time.Second

var newBot = telegram.NewBot

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запускает HTTP-сервер, воркеры очереди и, если задан токен, Telegram-бота",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	// Модель загружается один раз и дальше только читается
	locator, err := vision.NewLocator(vision.Options{
		Backend:        cfg.DetectorBackend,
		ClassifierFile: cfg.ClassifierFile,
		MinQuality:     cfg.PigoMinQuality,
	})
	if err != nil {
		return fmt.Errorf("failed to load face detector: %w", err)
	}
	defer locator.Close()

	q, err := queue.New(ctx, queue.Options{
		Backend: cfg.QueueBackend,
		Buffer:  cfg.QueueBuffer,
		NATSURL: cfg.NATSURL,
		Redis: queue.RedisOptions{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to open queue: %w", err)
	}
	defer q.Close()

	hub := ws.NewHub()
	var broadcaster port.Broadcaster = hub
	if cfg.MQTTBroker != "" {
		m, err := mqtt.Connect(cfg.MQTTBroker, cfg.MQTTTopicPrefix)
		if err != nil {
			return err
		}
		defer m.Close()
		broadcaster = broadcast.Fanout{hub, m}
	}

	// Собираем сервисы приложения
	app := container.New(storage.NewMemoryUserRepository(), locator, q, broadcaster, cfg.ResizedWidth)

	// Бот создаётся до запуска сервера и воркеров
	var bot *telegram.Bot
	if cfg.TelegramToken != "" {
		bot, err = newBot(cfg.TelegramToken, app)
		if err != nil {
			return fmt.Errorf("failed to create bot: %w", err)
		}
	}

	socket := ws.NewHandler(hub, cfg.WSMessageLimit)
	socket.Route("/app/greet", func(ctx context.Context, body string) error {
		_, err := app.MessagingService.Greet(ctx, body)
		return err
	})
	socket.Route("/app/faceConverter", func(ctx context.Context, body string) error {
		_, err := app.ConversionService.Resubmit(ctx, body)
		return err
	})

	// Воркеры живут дольше HTTP-сервера, чтобы дообработать взятые сообщения
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	pools := []*worker.Pool{
		worker.NewPool(q, entity.SubjectFaceConverter, cfg.WorkerConcurrency, app.ConversionService.Handle),
		worker.NewPool(q, entity.SubjectHello, 1, app.MessagingService.HandleHello),
	}
	for i, p := range pools {
		if err := p.Start(workerCtx); err != nil {
			stopWorkers()
			for _, started := range pools[:i] {
				started.Wait()
			}
			return err
		}
	}

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(app, socket),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info(log.Fields{"addr": cfg.HTTPAddr, "detector": cfg.DetectorBackend, "queue": cfg.QueueBackend}, "http server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if bot != nil {
		go func() {
			log.Info(nil, "bot is running")
			if err := bot.Run(ctx); err != nil {
				errCh <- fmt.Errorf("bot: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info(nil, "shutting down")
	case runErr = <-errCh:
		log.Error(log.Fields{"error": runErr}, "server stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(log.Fields{"error": err}, "http shutdown")
	}

	stopWorkers()
	for _, p := range pools {
		p.Wait()
	}

	return runErr
}
