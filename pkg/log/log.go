package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger = logrus.New()
	once   sync.Once
)

const RequestIDKey = "request_id"

type Fields = logrus.Fields

// Options настройки логгера
type Options struct {
	Level string // debug, info, warn, error
	File  string // путь к файлу с ротацией, если пусто, пишем только в stderr
	Env   string // при "test" файл не пишется
}

// Init настраивает глобальный логгер. Повторные вызовы ничего не делают.
func Init(opts Options) *logrus.Logger {
	once.Do(func() {
		level, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)

		logger.SetFormatter(&formatter.Formatter{
			NoColors:        false,
			TimestampFormat: "02 Jan 06 - 15:04:05",
			HideKeys:        false,
			CallerFirst:     true,
			CustomCallerFormatter: func(f *runtime.Frame) string {
				s := strings.Split(f.Function, ".")
				funcName := s[len(s)-1]
				return fmt.Sprintf(" \x1b[%dm[%s:%d][%s()]", 34, path.Base(f.File), f.Line, funcName)
			},
		})

		writers := []io.Writer{os.Stderr}
		if opts.File != "" && opts.Env != "test" {
			writers = append(writers, &lumberjack.Logger{
				Filename:   opts.File,
				LocalTime:  true,
				Compress:   true,
				MaxSize:    100,
				MaxAge:     7,
				MaxBackups: 3,
			})
		}

		logger.SetOutput(io.MultiWriter(writers...))
		logger.SetReportCaller(true)
	})

	return logger
}

// Logger возвращает глобальный логгер
func Logger() *logrus.Logger {
	return logger
}

func Debug(fields Fields, msg string) {
	logger.WithFields(nonNil(fields)).Debug(msg)
}

func Info(fields Fields, msg string) {
	logger.WithFields(nonNil(fields)).Info(msg)
}

func Warn(fields Fields, msg string) {
	logger.WithFields(nonNil(fields)).Warn(msg)
}

func Error(fields Fields, msg string) {
	logger.WithFields(nonNil(fields)).Error(msg)
}

func Fatal(fields Fields, msg string) {
	logger.WithFields(nonNil(fields)).Fatal(msg)
}

// ContextWithRequestID кладёт ID запроса или сообщения в контекст
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithRequestID возвращает запись лога с ID запроса из контекста
func WithRequestID(ctx context.Context) *logrus.Entry {
	requestID := "unknown"
	if ctx != nil {
		if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
			requestID = id
		}
	}

	return logger.WithField(RequestIDKey, requestID)
}

type requestIDKey struct{}

func nonNil(fields Fields) Fields {
	if fields == nil {
		return Fields{}
	}
	return fields
}
