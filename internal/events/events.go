// Package events publishes ledger changes for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/sharedledger/internal/models"
)

// Routing keys.
const (
	TransactionCreated = "transaction.created"
	GroupCreated       = "group.created"
)

// Event is a message body published under a routing key.
type Event interface {
	RoutingKey() string
}

// Publisher delivers events. Publish failures never roll back the ledger write.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// TransactionCreatedEvent is published after a transaction is appended.
type TransactionCreatedEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	GroupID   string          `json:"group"`
	CreatedBy string          `json:"createdBy"`
	Actor     string          `json:"actor"`
	Category  string          `json:"category,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func (TransactionCreatedEvent) RoutingKey() string { return TransactionCreated }

// NewTransactionCreated builds the event for tx.
func NewTransactionCreated(tx *models.Transaction) *TransactionCreatedEvent {
	e := &TransactionCreatedEvent{
		ID:        tx.ID,
		Type:      string(tx.Type()),
		Amount:    tx.Amount,
		GroupID:   tx.GroupID,
		CreatedBy: tx.CreatedBy,
		Timestamp: time.Now(),
	}
	if tx.Details != nil {
		e.Actor = tx.Details.Actor()
	}
	if expense, ok := tx.Details.(models.ExpenseDetails); ok {
		e.Category = string(expense.Category)
	}
	return e
}

// GroupCreatedEvent is published after a group is created.
type GroupCreatedEvent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"createdBy"`
	Invited   []string  `json:"invited"`
	Timestamp time.Time `json:"timestamp"`
}

func (GroupCreatedEvent) RoutingKey() string { return GroupCreated }

// NewGroupCreated builds the event for group.
func NewGroupCreated(group *models.Group) *GroupCreatedEvent {
	return &GroupCreatedEvent{
		ID:        group.ID,
		Name:      group.Name,
		CreatedBy: group.CreatedBy,
		Invited:   group.Invited,
		Timestamp: time.Now(),
	}
}

// Encode marshals an event body.
func Encode(event Event) ([]byte, error) {
	return json.Marshal(event)
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *Recorder) Close() error { return nil }
