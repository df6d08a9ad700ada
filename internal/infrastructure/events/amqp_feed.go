package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"

	"github.com/rabbitmq/amqp091-go"
)

// AMQPFeed publishes change events to a topic exchange with routing key
// "<user_id>.<collection>". Each subscription gets its own exclusive,
// auto-deleted queue bound to "<user_id>.*", so every API instance sees
// writes made by the others.
type AMQPFeed struct {
	conn     *amqp091.Connection
	mu       sync.Mutex
	channel  *amqp091.Channel
	exchange string
}

var _ interfaces.IChangeFeed = (*AMQPFeed)(nil)

func NewAMQPFeed(url, exchange string) (*AMQPFeed, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	log.Printf("[events][amqp] connected exchange=%s", exchange)
	return &AMQPFeed{conn: conn, channel: channel, exchange: exchange}, nil
}

func RoutingKey(ev entities.ChangeEvent) string {
	return ev.UserID + "." + string(ev.Collection)
}

func BindingKey(userID string) string {
	return userID + ".*"
}

func (f *AMQPFeed) Publish(ctx context.Context, ev entities.ChangeEvent) error {
	if strings.ContainsAny(ev.UserID, ".*#") {
		return fmt.Errorf("user id %q is not routable", ev.UserID)
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp091 channels are not safe for concurrent publishing.
	f.mu.Lock()
	defer f.mu.Unlock()
	err = f.channel.PublishWithContext(
		ctx,
		f.exchange,     // exchange
		RoutingKey(ev), // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   ev.At,
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

func (f *AMQPFeed) Subscribe(ctx context.Context, userID string) (<-chan entities.ChangeEvent, error) {
	channel, err := f.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	q, err := channel.QueueDeclare(
		"",    // server-named
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := channel.QueueBind(q.Name, BindingKey(userID), f.exchange, false, nil); err != nil {
		channel.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}
	deliveries, err := channel.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		channel.Close()
		return nil, fmt.Errorf("start consuming: %w", err)
	}

	out := make(chan entities.ChangeEvent, subscriberBuffer)
	go func() {
		defer close(out)
		defer channel.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					log.Printf("[events][amqp] delivery channel closed user_id=%s", userID)
					return
				}
				ev, err := DecodeEvent(d.Body)
				if err != nil {
					log.Printf("[events][amqp] dropping malformed event err=%v", err)
					continue
				}
				select {
				case out <- ev:
				default:
				}
			}
		}
	}()
	return out, nil
}

func DecodeEvent(body []byte) (entities.ChangeEvent, error) {
	var ev entities.ChangeEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return entities.ChangeEvent{}, err
	}
	if ev.UserID == "" || ev.Collection == "" {
		return entities.ChangeEvent{}, fmt.Errorf("event missing user or collection")
	}
	return ev, nil
}

func (f *AMQPFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.channel != nil {
		f.channel.Close()
	}
	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}
