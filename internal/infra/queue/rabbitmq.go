package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.crm"
	TriggerQueue = "q.automation.triggers"
	TriggerDLQ   = "q.automation.triggers.dlq"
	DLXName      = "ex.crm.dlx"
	TriggerKey   = "k.trigger"
	EnrollKey    = "k.enrollment"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(user, pass, host, port string) (*RabbitMQ, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%s/", user, pass, host, port)

	conn, err := amqp.Dial(dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		return nil, err
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

// setupTopology declares the trigger queue with its dead-letter pair.
// Malformed trigger events are nack'd without requeue and land in the DLQ.
func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(TriggerDLQ, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(TriggerDLQ, TriggerKey, DLXName, false, nil); err != nil {
		return err
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": TriggerKey,
	}

	if err := ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(TriggerQueue, true, false, false, false, args); err != nil {
		return err
	}
	if err := ch.QueueBind(TriggerQueue, TriggerKey, ExchangeName, false, nil); err != nil {
		return err
	}

	return nil
}
