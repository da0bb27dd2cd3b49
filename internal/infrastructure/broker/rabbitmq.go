package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"fonda/internal/domain"
)

// RabbitMQ difunde cambios de disponibilidad entre instancias por un exchange fanout.
type RabbitMQ struct {
	url      string
	exchange string
	conn     *amqp.Connection
	ch       *amqp.Channel
	logger   *zap.Logger
	mu       sync.Mutex
}

func New(url, exchange string, logger *zap.Logger) (*RabbitMQ, error) {
	r := &RabbitMQ{
		url:      url,
		exchange: exchange,
		logger:   logger,
	}
	if err := r.connect(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RabbitMQ) connect() error {
	conn, err := amqp.Dial(r.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(r.exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare exchange %s: %w", r.exchange, err)
	}

	r.conn = conn
	r.ch = ch
	return nil
}

func (r *RabbitMQ) IsAlive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil || r.conn.IsClosed() {
		return false
	}
	if r.ch == nil || r.ch.IsClosed() {
		return false
	}
	return true
}

func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ch != nil && !r.ch.IsClosed() {
		if err := r.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %w", err)
		}
	}
	if r.conn != nil && !r.conn.IsClosed() {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	return nil
}

func (r *RabbitMQ) Publish(ctx context.Context, ev domain.AvailabilityEvent) error {
	body, err := EncodeEvent(ev)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err = r.ch.PublishWithContext(ctx, r.exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish availability event: %w", err)
	}
	return nil
}

// Consume liga una cola exclusiva al exchange y entrega cada evento a handle
// hasta que ctx termina. Si la conexion se cae reintenta cada 5 segundos.
func (r *RabbitMQ) Consume(ctx context.Context, handle func(domain.AvailabilityEvent)) error {
	for {
		err := r.consumeOnce(ctx, handle)
		if ctx.Err() != nil {
			return nil
		}
		r.logger.Warn("availability consumer stopped, reconnecting", zap.Error(err))

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(5 * time.Second):
		}

		r.mu.Lock()
		if !r.aliveLocked() {
			if err := r.connect(); err != nil {
				r.logger.Warn("rabbitmq reconnect failed", zap.Error(err))
			} else {
				r.logger.Info("rabbitmq reconnected")
			}
		}
		r.mu.Unlock()
	}
}

func (r *RabbitMQ) consumeOnce(ctx context.Context, handle func(domain.AvailabilityEvent)) error {
	r.mu.Lock()
	ch := r.ch
	r.mu.Unlock()
	if ch == nil || ch.IsClosed() {
		return fmt.Errorf("rabbitmq channel closed")
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "", r.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, q.Name, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume queue: %w", err)
	}

	for d := range deliveries {
		ev, err := DecodeEvent(d.Body)
		if err != nil {
			r.logger.Warn("discarding malformed availability event", zap.Error(err))
			continue
		}
		handle(ev)
	}

	return fmt.Errorf("delivery channel closed")
}

func (r *RabbitMQ) aliveLocked() bool {
	return r.conn != nil && !r.conn.IsClosed() && r.ch != nil && !r.ch.IsClosed()
}
