package rabbitmq

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher пишет события в durable очередь с именем топика через default exchange.
type Publisher struct {
	conn *amqp.Connection
	ch   channel

	mu       sync.Mutex
	declared map[string]struct{}
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "rabbitmq dial")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "rabbitmq channel")
	}
	p := newPublisherWithChannel(ch)
	p.conn = conn
	return p, nil
}

func newPublisherWithChannel(ch channel) *Publisher {
	return &Publisher{ch: ch, declared: make(map[string]struct{})}
}

func (p *Publisher) Publish(ctx context.Context, topic string, key, value []byte) error {
	if err := p.declare(topic); err != nil {
		return err
	}
	err := p.ch.PublishWithContext(ctx, "", topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    string(key),
		Body:         value,
	})
	if err != nil {
		return errors.Wrap(err, "rabbitmq publish")
	}
	return nil
}

func (p *Publisher) declare(queue string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.declared[queue]; ok {
		return nil
	}
	if _, err := p.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return errors.Wrap(err, "rabbitmq queue declare")
	}
	p.declared[queue] = struct{}{}
	return nil
}

func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
