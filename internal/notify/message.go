package notify

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindReservationCreated   Kind = "reservation.created"
	KindReservationPaid      Kind = "reservation.paid"
	KindReservationCancelled Kind = "reservation.cancelled"
	KindRegistrationCreated  Kind = "registration.created"
	KindRegistrationPaid     Kind = "registration.paid"
)

// Message is the payload published on the broker for every customer-facing
// change. Kind doubles as the routing key.
type Message struct {
	ID             string     `json:"id"`
	Kind           Kind       `json:"kind"`
	OccurredAt     time.Time  `json:"occurred_at"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Reference      uint       `json:"reference"`
	Title          string     `json:"title"`
	Start          *time.Time `json:"start,omitempty"`
	End            *time.Time `json:"end,omitempty"`
	Amount         int        `json:"amount"`
	VariableSymbol string     `json:"variable_symbol"`
	Account        string     `json:"account,omitempty"`
}

func NewMessage(kind Kind, now time.Time) Message {
	return Message{
		ID:         uuid.NewString(),
		Kind:       kind,
		OccurredAt: now,
	}
}
