package queue

// MessageQueue is the broker-agnostic pub/sub surface used for transfer
// status events and notification fan-out. NATS and RabbitMQ implementations
// are selected by configuration.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}
