package service

import (
	"context"
	"log"
	"time"

	"github.com/myrsple/rezervace-sub000/internal/notify"
)

// Publisher delivers notifications to the broker. A nil Publisher disables
// notifications.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type Clock func() time.Time

func publish(ctx context.Context, p Publisher, msg notify.Message) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, string(msg.Kind), msg); err != nil {
		log.Printf("[Notify] failed to publish %s for %d: %v", msg.Kind, msg.Reference, err)
	}
}
