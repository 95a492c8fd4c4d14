// Package worker consumes analysis requests from RabbitMQ and publishes the
// resulting reports.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"
)

// Default broker topology
const (
	RequestQueue   = "analysis_requests"
	ResultExchange = "analysis_results"
)

// ErrDeliveriesClosed is returned when the broker closes a consumer's delivery channel
var ErrDeliveriesClosed = errors.New("delivery channel closed")

// Channel is the subset of *amqp.Channel the worker uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Broker opens channels.
type Broker interface {
	Channel() (Channel, error)
}

// Connection is a Broker backed by a RabbitMQ connection.
type Connection struct {
	conn *amqp.Connection
}

// Dial connects to RabbitMQ
func Dial(url string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	return &Connection{conn: conn}, nil
}

// Channel opens a new channel on the connection.
func (c *Connection) Channel() (Channel, error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	return ch, nil
}

// Close closes the connection
func (c *Connection) Close() error {
	return c.conn.Close()
}

// Pool runs a fixed number of consumers on the request queue.
type Pool struct {
	broker    Broker
	processor *Processor
	workers   int
	queue     string
	exchange  string
	now       func() time.Time
}

// NewPool creates a pool of n workers (at least one).
func NewPool(broker Broker, processor *Processor, n int) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{
		broker:    broker,
		processor: processor,
		workers:   n,
		queue:     RequestQueue,
		exchange:  ResultExchange,
		now:       time.Now,
	}
}

// Run declares the topology and consumes until ctx is cancelled or a worker
// loses its channel.
func (p *Pool) Run(ctx context.Context) error {
	if err := p.declare(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range p.workers {
		id := i + 1
		g.Go(func() error {
			return p.work(gctx, id)
		})
	}
	log.Printf("[worker] %d workers consuming %q", p.workers, p.queue)

	err := g.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (p *Pool) declare() error {
	ch, err := p.broker.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", p.queue, err)
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", p.exchange, err)
	}
	return nil
}

func (p *Pool) work(ctx context.Context, id int) error {
	ch, err := p.broker.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("worker %d: failed to set qos: %w", id, err)
	}
	msgs, err := ch.Consume(p.queue, fmt.Sprintf("skillbyte-worker-%d", id), false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("worker %d: failed to consume: %w", id, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("worker %d: %w", id, ErrDeliveriesClosed)
			}
			p.handle(ctx, ch, id, msg)
		}
	}
}

func (p *Pool) handle(ctx context.Context, ch Channel, workerID int, msg amqp.Delivery) {
	var req Request
	if err := json.Unmarshal(msg.Body, &req); err != nil {
		log.Printf("[worker] %d: dropping malformed message: %v", workerID, err)
		_ = msg.Nack(false, false)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	log.Printf("[worker] %d processing request %s", workerID, req.ID)

	p.publish(ch, Update{ID: req.ID, Status: StatusProcessing, Message: "analysis started"})

	report, err := p.processor.Process(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			// shutting down; let another consumer take it
			_ = msg.Nack(false, true)
			return
		}
		log.Printf("[worker] request %s failed: %v", req.ID, err)
		p.publish(ch, Update{ID: req.ID, Status: StatusFailed, Message: "analysis failed", Error: err.Error()})
		_ = msg.Ack(false)
		return
	}

	p.publish(ch, Update{ID: req.ID, Status: StatusCompleted, Message: "analysis completed", Report: report})
	_ = msg.Ack(false)
}

func (p *Pool) publish(ch Channel, update Update) {
	update.Timestamp = p.now().UTC()
	body, err := json.Marshal(update)
	if err != nil {
		log.Printf("[worker] failed to encode update for %s: %v", update.ID, err)
		return
	}
	err = ch.Publish(p.exchange, RoutingKey(update.ID), false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   update.Timestamp,
		Body:        body,
	})
	if err != nil {
		log.Printf("[worker] failed to publish update for %s: %v", update.ID, err)
	}
}

// RoutingKey is the results routing key for a request ID
func RoutingKey(id string) string {
	return "analysis." + id
}
