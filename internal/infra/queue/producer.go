package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rusingacademy/ecosystem-crm/internal/usecase"
)

type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{Conn: conn, Ch: ch}
}

// PublishTrigger hands a lead trigger event to the automation consumer.
// Messages are persistent so a broker restart doesn't eat events.
func (p *Producer) PublishTrigger(ctx context.Context, event usecase.TriggerEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal trigger event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		TriggerKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish trigger event: %w", err)
	}
	return nil
}

type enrollmentMessage struct {
	LeadID string         `json:"lead_id"`
	Course map[string]any `json:"course"`
}

// Enroll forwards an enroll_course step payload to the LMS consumers. The
// course reference is opaque here, the LMS side knows what to do with it.
func (p *Producer) Enroll(ctx context.Context, leadID string, config map[string]any) error {
	body, err := json.Marshal(enrollmentMessage{LeadID: leadID, Course: config})
	if err != nil {
		return fmt.Errorf("marshal enrollment: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		EnrollKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish enrollment: %w", err)
	}
	return nil
}
