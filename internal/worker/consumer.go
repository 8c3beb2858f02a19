package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"
)

// Channel is the subset of *amqp.Channel the consumer uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Consumer runs a pool of workers, each on its own channel.
type Consumer struct {
	Open         func() (Channel, error)
	Queue        string
	ResultsQueue string
	Workers      int
	Processor    *Processor
	Logger       *slog.Logger
}

// Dial connects to the broker and returns a channel opener bound to that
// connection. The caller closes the connection.
func Dial(url string) (conn *amqp.Connection, open func() (Channel, error), err error) {
	conn, err = amqp.Dial(url)
	if err != nil {
		err = errors.Wrap(err, "error connecting to RabbitMQ")
		return conn, open, err
	}
	open = func() (Channel, error) {
		return conn.Channel()
	}
	return conn, open, err
}

// Run blocks until ctx is cancelled or a worker fails to set up its channel.
func (c *Consumer) Run(ctx context.Context) (err error) {
	workers := max(1, c.Workers)
	g, gCtx := errgroup.WithContext(ctx)
	for i := range workers {
		g.Go(func() error {
			return c.work(gCtx, i+1)
		})
	}
	err = g.Wait()
	return err
}

func (c *Consumer) work(ctx context.Context, id int) (err error) {
	logger := c.logger().With("worker", id)

	ch, err := c.Open()
	if err != nil {
		err = errors.Wrap(err, "error opening channel")
		return err
	}
	defer ch.Close()

	for _, q := range []string{c.Queue, c.ResultsQueue} {
		_, err = ch.QueueDeclare(
			q,     // queue name
			true,  // durable
			false, // auto-delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			err = errors.Wrapf(err, "failed to declare queue %s", q)
			return err
		}
	}

	err = ch.Qos(1, 0, false)
	if err != nil {
		err = errors.Wrap(err, "failed to set prefetch")
		return err
	}

	msgs, err := ch.Consume(
		c.Queue, // queue name
		"",      // consumer tag
		false,   // manual ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		err = errors.Wrapf(err, "failed to consume %s", c.Queue)
		return err
	}

	logger.Info("worker started", "queue", c.Queue)
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopping")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				err = errors.New("delivery channel closed by broker")
				return err
			}
			c.handle(ctx, ch, msg, logger)
		}
	}
}

// handle processes one delivery and publishes its result. The delivery is
// acknowledged only after the result is published; a failed publish
// requeues it.
func (c *Consumer) handle(ctx context.Context, ch Channel, msg amqp.Delivery, logger *slog.Logger) {
	result := c.Processor.Process(ctx, msg.Body)

	body, err := json.Marshal(result)
	if err != nil {
		logger.Error("failed to encode result", "job_id", result.ID, "error", err)
		_ = msg.Nack(false, false)
		return
	}

	err = ch.Publish(
		"",             // default exchange
		c.ResultsQueue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: result.ID,
			DeliveryMode:  amqp.Persistent,
			Timestamp:     result.Timestamp,
			Body:          body,
		},
	)
	if err != nil {
		logger.Error("failed to publish result", "job_id", result.ID, "error", err)
		_ = msg.Nack(false, true)
		return
	}

	if err := msg.Ack(false); err != nil {
		logger.Warn("failed to ack delivery", "job_id", result.ID, "error", err)
	}
}

func (c *Consumer) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
