package broadcast

import (
	"context"
	"errors"

	"faceduker/internal/domain/port"
)

// Fanout рассылает каждое сообщение во все вложенные рассыльщики.
// Ошибка одного не мешает остальным, ошибки объединяются.
type Fanout []port.Broadcaster

func (f Fanout) Broadcast(ctx context.Context, topic string, payload []byte) error {
	var errs []error
	for _, b := range f {
		if b == nil {
			continue
		}
		if err := b.Broadcast(ctx, topic, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ port.Broadcaster = Fanout(nil)
