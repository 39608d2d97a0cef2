package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rusingacademy/ecosystem-crm/internal/usecase"
)

// Worker consumes trigger events and fans them out to active automations.
type Worker struct {
	Channel *amqp.Channel
	Trigger *usecase.TriggerUseCase
}

func NewWorker(ch *amqp.Channel, trigger *usecase.TriggerUseCase) *Worker {
	return &Worker{Channel: ch, Trigger: trigger}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] failed to register consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var event usecase.TriggerEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				log.Printf("❌ [WORKER] invalid trigger payload: %s", err)
				// Rotten message, off to the DLQ.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] trigger=%s lead=%s", event.TriggerType, event.LeadID)

			if err := w.Trigger.Execute(context.Background(), event); err != nil {
				log.Printf("❌ [WORKER] trigger processing failed: %s", err)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}()

	log.Printf("🚀 [WORKER] consuming %s", queueName)
	<-forever
}
