package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"teadesk-system/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OrdersExchange carries order lifecycle events for the dashboard
// feed, routed as orders.<company>.<status>.
const OrdersExchange = "beverage.orders"

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string // default "/"
}

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	acks <-chan amqp.Confirmation // publisher confirms
	mu   sync.Mutex               // serialize Publish while waiting on confirms
}

func Dial(cfg Config) (*Client, error) {
	if cfg.VHost == "" {
		cfg.VHost = "/"
	}
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/%s", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.VHost)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	c := &Client{conn: conn, ch: ch, acks: acks}
	if err := c.declareTopology(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) declareTopology() error {
	return c.ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil)
}

func (c *Client) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// PublishOrderEvent publishes the event persistently and waits for
// the broker's ack.
func (c *Client) PublishOrderEvent(ctx context.Context, ev domain.OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}
	key := fmt.Sprintf("orders.%s.%s", ev.Company, ev.Status)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ch.PublishWithContext(
		ctx,
		OrdersExchange,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode:  amqp.Persistent,
			ContentType:   "application/json",
			Timestamp:     time.Now().UTC(),
			CorrelationId: ev.OrderID,
			Body:          body,
		},
	); err != nil {
		return err
	}

	select {
	case conf := <-c.acks:
		if conf.Ack {
			return nil
		}
		return errors.New("publish NACK from broker")
	case <-ctx.Done():
		return ctx.Err()
	}
}
