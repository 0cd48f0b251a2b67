package queue

import (
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// RabbitMQQueue implements MessageQueue over a topic exchange so the same
// subject names work on both brokers.
type RabbitMQQueue struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
	log     *zap.Logger
}

const exchangeName = "translog.events"

func NewRabbitMQQueue(url string, log *zap.Logger) (MessageQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info("Successfully connected to RabbitMQ")
	return &RabbitMQQueue{conn: conn, channel: ch, log: log}, nil
}

func (q *RabbitMQQueue) Publish(subject string, data []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.channel.Publish(exchangeName, subject, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        data,
	})
}

func (q *RabbitMQQueue) Subscribe(subject string, handler func(data []byte) error) error {
	queue, err := q.channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := q.channel.QueueBind(queue.Name, subject, exchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := q.channel.Consume(queue.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := handler(msg.Body); err != nil {
				q.log.Error("Error processing message", zap.String("subject", subject), zap.Error(err))
			}
		}
	}()
	return nil
}

func (q *RabbitMQQueue) Close() error {
	q.channel.Close()
	return q.conn.Close()
}
