package entity

import "errors"

var (
	// ErrDecodeFailure входные байты не являются изображением
	ErrDecodeFailure = errors.New("decode failure")
	// ErrDetectionUnavailable модель детектора не загрузилась при старте
	ErrDetectionUnavailable = errors.New("detection unavailable")
	// ErrEncodeFailure результат не удалось закодировать
	ErrEncodeFailure = errors.New("encode failure")
	// ErrUnknownVariant неизвестный узор
	ErrUnknownVariant = errors.New("unknown decoration variant")
	// ErrQueueClosed очередь уже закрыта
	ErrQueueClosed = errors.New("queue is closed")
)
