package satwa

import (
	"context"
	"log/slog"
	"time"

	"github.com/cekresi/satwa/internal/broker/messages"
	"github.com/cekresi/satwa/internal/models"
)

const (
	eventSatwaCreated  = messages.SatwaCreated
	eventSatwaUpdated  = messages.SatwaUpdated
	eventStatusChanged = messages.SatwaStatusChanged
	eventSatwaDeleted  = messages.SatwaDeleted
	eventProgressAdded = messages.ProgressAdded
)

// Publisher реализуют kafka.Producer и rabbitmq.Publisher.
type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

type eventSink struct {
	pub   Publisher
	topic string
	now   func() time.Time
}

func newEventSink(pub Publisher, topic string) *eventSink {
	return &eventSink{pub: pub, topic: topic, now: time.Now}
}

func (e *eventSink) emit(ctx context.Context, typ string, t *models.Satwa) {
	e.send(ctx, messages.SatwaEvent{
		Type:     typ,
		SatwaID:  t.ID,
		KodeResi: t.KodeResi,
		Status:   string(t.Status),
	})
}

func (e *eventSink) emitProgress(ctx context.Context, t *models.Satwa, p *models.Progress) {
	e.send(ctx, messages.SatwaEvent{
		Type:     eventProgressAdded,
		SatwaID:  t.ID,
		KodeResi: t.KodeResi,
		Status:   p.Status,
		Lokasi:   p.Lokasi,
	})
}

// send не возвращает ошибку: событие не должно ломать уже сделанную запись.
func (e *eventSink) send(ctx context.Context, ev messages.SatwaEvent) {
	if e.pub == nil {
		return
	}
	ev.OccurredAt = e.now().UTC()

	b, err := ev.Encode()
	if err != nil {
		slog.Error("event marshal failed", "type", ev.Type, "err", err)
		return
	}
	if err := e.pub.Publish(ctx, e.topic, ev.Key(), b); err != nil {
		slog.Warn("event publish failed", "type", ev.Type, "satwa_id", ev.SatwaID, "err", err)
	}
}
