package notify

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	sender Sender
}

func NewConsumer(sender Sender) *Consumer {
	return &Consumer{sender: sender}
}

// Start listens for messages and mails the customer for each one.
func (c *Consumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			c.handleMessage(ctx, msg)
		}
		log.Println("[Notifier] channel closed, stopping consumer")
	}()
}

func (c *Consumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var m Message
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		log.Printf("[Notifier] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	subject, body, err := Render(m)
	if err != nil {
		log.Printf("[Notifier] dropping %s: %v", m.ID, err)
		msg.Nack(false, false)
		return
	}

	if err := c.sender.Send(ctx, m.Email, subject, body); err != nil {
		log.Printf("[Notifier] failed to send %s for %d: %v", m.Kind, m.Reference, err)
		msg.Nack(false, !msg.Redelivered) // retry once
		return
	}

	log.Printf("[Notifier] sent %s for %d", m.Kind, m.Reference)
	msg.Ack(false)
}
