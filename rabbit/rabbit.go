// Package rabbit consumes and publishes manifest processing messages over AMQP.
package rabbit

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// Rabbit describes one queue bound to an exchange. The queue name doubles as
// the routing key.
type Rabbit struct {
	Url          string
	Exchange     string
	ExchangeType string
	Queue        string
}

func (r *Rabbit) String() string {
	return fmt.Sprintf("exchange=%s(%s) queue=%s", r.Exchange, r.ExchangeType, r.Queue)
}

// Handler receives the body of one delivery.
type Handler func(ctx context.Context, data string)

// channel dials r.Url and declares the exchange and queue.
func (r *Rabbit) channel() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(r.Url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	if err = r.declare(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

func (r *Rabbit) declare(ch *amqp.Channel) error {
	if r.Exchange != "" {
		if err := ch.ExchangeDeclare(r.Exchange, r.ExchangeType, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare exchange %s: %w", r.Exchange, err)
		}
	}
	if _, err := ch.QueueDeclare(r.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", r.Queue, err)
	}
	if r.Exchange != "" {
		if err := ch.QueueBind(r.Queue, r.Queue, r.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", r.Queue, r.Exchange, err)
		}
	}
	return nil
}

// Consume hands every delivery of r.Queue to handler, one at a time, until ctx
// is done or the channel closes. Deliveries are acked after handler returns.
func Consume(ctx context.Context, r *Rabbit, handler Handler) error {
	conn, ch, err := r.channel()
	if err != nil {
		return err
	}
	defer conn.Close()
	defer ch.Close()

	if err = ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	deliveries, err := ch.Consume(r.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", r.Queue, err)
	}
	log.Infof("Consumer started: %s", r)

	for {
		select {
		case <-ctx.Done():
			log.Infof("Consumer stopped: %s", r)
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel of %s closed", r.Queue)
			}
			handle(ctx, d, handler)
		}
	}
}

func handle(ctx context.Context, d amqp.Delivery, handler Handler) {
	defer func() {
		if p := recover(); p != nil {
			log.Errorf("Handle message %s panicked: %v", d.MessageId, p)
			if err := d.Nack(false, false); err != nil {
				log.Errorf("Nack message failed: %v", err)
			}
		}
	}()
	handler(ctx, string(d.Body))
	if err := d.Ack(false); err != nil {
		log.Errorf("Ack message failed: %v", err)
	}
}

// Publish sends body to r.Exchange with r.Queue as routing key.
func Publish(r *Rabbit, body string) error {
	conn, ch, err := r.channel()
	if err != nil {
		return err
	}
	defer conn.Close()
	defer ch.Close()

	err = ch.Publish(r.Exchange, r.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         []byte(body),
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", r.Queue, err)
	}
	log.Debugf("Published %d bytes to %s", len(body), r)
	return nil
}
