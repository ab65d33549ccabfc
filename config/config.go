package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Бэкенды детектора
const (
	DetectorPigo   = "pigo"
	DetectorOpenCV = "opencv"
	DetectorDlib   = "dlib"
)

// Бэкенды очереди
const (
	QueueMemory = "memory"
	QueueNATS   = "nats"
	QueueRedis  = "redis"
)

// Модели по умолчанию для каждого детектора
var defaultClassifierFiles = map[string]string{
	DetectorPigo:   "data/facefinder",
	DetectorOpenCV: "data/haarcascade_frontalface_default.xml",
	DetectorDlib:   "data/models",
}

type Config struct {
	HTTPAddr string `validate:"required"`

	DetectorBackend string  `validate:"oneof=pigo opencv dlib"`
	ClassifierFile  string  `validate:"required"`
	PigoMinQuality  float64 `validate:"gte=0"`

	// Ширина картинки после ресайза в очереди конвертации
	ResizedWidth int `validate:"min=1,max=8192"`

	QueueBackend  string `validate:"oneof=memory nats redis"`
	QueueBuffer   int    `validate:"min=1"`
	NATSURL       string `validate:"required_if=QueueBackend nats"`
	RedisAddress  string `validate:"required_if=QueueBackend redis"`
	RedisPassword string
	RedisDB       int `validate:"gte=0"`

	WorkerConcurrency int `validate:"min=1,max=64"`

	MQTTBroker      string
	MQTTTopicPrefix string

	TelegramToken string

	WSMessageLimit int64 `validate:"min=1024"`

	LogLevel string `validate:"oneof=trace debug info warn warning error"`
	LogFile  string
	AppEnv   string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:          ":8080",
		DetectorBackend:   DetectorPigo,
		PigoMinQuality:    5,
		ResizedWidth:      200,
		QueueBackend:      QueueMemory,
		QueueBuffer:       64,
		NATSURL:           "nats://127.0.0.1:4222",
		RedisAddress:      "127.0.0.1:6379",
		WorkerConcurrency: 5,
		MQTTTopicPrefix:   "faceduker",
		WSMessageLimit:    10 * 1024 * 1024,
		LogLevel:          "info",
		AppEnv:            "development",
	}

	readEnvString("HTTP_ADDR", &cfg.HTTPAddr)
	readEnvString("DETECTOR_BACKEND", &cfg.DetectorBackend)
	readEnvString("CLASSIFIER_FILE", &cfg.ClassifierFile)
	readEnvFloat("PIGO_MIN_QUALITY", &cfg.PigoMinQuality)
	readEnvInt("FACEDUKER_WIDTH", &cfg.ResizedWidth)
	readEnvString("QUEUE_BACKEND", &cfg.QueueBackend)
	readEnvInt("QUEUE_BUFFER", &cfg.QueueBuffer)
	readEnvString("NATS_URL", &cfg.NATSURL)
	readEnvString("REDIS_ADDRESS", &cfg.RedisAddress)
	readEnvString("REDIS_PASSWORD", &cfg.RedisPassword)
	readEnvInt("REDIS_DB", &cfg.RedisDB)
	readEnvInt("WORKER_CONCURRENCY", &cfg.WorkerConcurrency)
	readEnvString("MQTT_BROKER", &cfg.MQTTBroker)
	readEnvString("MQTT_TOPIC_PREFIX", &cfg.MQTTTopicPrefix)
	readEnvString("TELEGRAM_TOKEN", &cfg.TelegramToken)
	readEnvInt64("WS_MESSAGE_LIMIT", &cfg.WSMessageLimit)
	readEnvString("LOG_LEVEL", &cfg.LogLevel)
	readEnvString("LOG_FILE", &cfg.LogFile)
	readEnvString("APP_ENV", &cfg.AppEnv)

	if cfg.ClassifierFile == "" {
		cfg.ClassifierFile = defaultClassifierFiles[cfg.DetectorBackend]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения по тегам validate
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvFloat(name string, value *float64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return
	}
	*value = f
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}

func readEnvInt64(name string, value *int64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return
	}
	*value = i
}
