package outbox

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrMessageIsNotConstructed is returned when a Message instance was not
// created through the NewMessage or RestoreMessage factory methods.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage constructor")

// MessageStatus is the delivery state of an outbox message.
type MessageStatus int

const (
	// StatusUnknown represents an invalid or undefined message status.
	StatusUnknown MessageStatus = iota

	// StatusPending marks a message waiting to be dispatched.
	StatusPending

	// StatusSent marks a message that was dispatched successfully.
	StatusSent

	// StatusFailed marks a message that exhausted its dispatch attempts.
	StatusFailed
)

func getMessageStatusStrings() map[MessageStatus]string {
	return map[MessageStatus]string{
		StatusUnknown: "unknown",
		StatusPending: "pending",
		StatusSent:    "sent",
		StatusFailed:  "failed",
	}
}

// String returns the lowercase status name.
func (s MessageStatus) String() string {
	if name, ok := getMessageStatusStrings()[s]; ok {
		return name
	}
	return "unknown"
}

// Validate checks that the status is one of the known statuses.
func (s MessageStatus) Validate() error {
	if s != StatusPending && s != StatusSent && s != StatusFailed {
		return errs.NewValueIsInvalidError("message status")
	}
	return nil
}

// Message kinds emitted by the order pipeline.
const (
	KindOrderCreated       = "order_created"
	KindOrderStatusChanged = "order_status_changed"
	KindFollowUpCreated    = "follow_up_created"
)

// Message is a notification side effect recorded in the same transaction as
// the order change that caused it. A background job dispatches pending
// messages after commit, so a crashed dispatcher never loses a notification
// and a rolled back transaction never sends one.
type Message struct {
	id        kernel.UUID
	orderID   kernel.UUID
	kind      string
	payload   []byte
	status    MessageStatus
	attempts  int
	lastError string
	createdAt time.Time
	sentAt    *time.Time

	isConstructed bool
}

// NewMessage records a pending notification for an order.
func NewMessage(id, orderID kernel.UUID, kind string, payload []byte, now time.Time) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if kind == "" {
		return nil, errs.NewValueIsRequiredError("message kind")
	}

	return &Message{
		id:            id,
		orderID:       orderID,
		kind:          kind,
		payload:       payload,
		status:        StatusPending,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreMessage reconstructs a message from persistence.
func RestoreMessage(
	id, orderID kernel.UUID,
	kind string,
	payload []byte,
	status MessageStatus,
	attempts int,
	lastError string,
	createdAt time.Time,
	sentAt *time.Time,
) (*Message, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	restored, err := NewMessage(id, orderID, kind, payload, createdAt)
	if err != nil {
		return nil, err
	}

	restored.status = status
	restored.attempts = attempts
	restored.lastError = lastError
	restored.sentAt = sentAt
	return restored, nil
}

// Validate ensures the Message was created through a constructor.
func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

// ID returns the message's unique identifier.
func (m *Message) ID() kernel.UUID {
	return m.id
}

// OrderID returns the order the notification is about.
func (m *Message) OrderID() kernel.UUID {
	return m.orderID
}

// Kind returns the notification kind, e.g. "order_created".
func (m *Message) Kind() string {
	return m.kind
}

// Payload returns the serialized notification body.
func (m *Message) Payload() []byte {
	return m.payload
}

// Status returns the delivery state.
func (m *Message) Status() MessageStatus {
	return m.status
}

// Attempts returns the number of dispatch attempts made so far.
func (m *Message) Attempts() int {
	return m.attempts
}

// LastError returns the error text of the most recent failed attempt.
func (m *Message) LastError() string {
	return m.lastError
}

// CreatedAt returns when the message was recorded.
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// SentAt returns when the message was dispatched. Nil until sent.
func (m *Message) SentAt() *time.Time {
	return m.sentAt
}

// MarkSent transitions the message to sent.
func (m *Message) MarkSent(now time.Time) {
	m.status = StatusSent
	m.attempts++
	m.lastError = ""
	m.sentAt = &now
}

// RecordFailure counts a failed dispatch attempt. The message stays pending
// and will be retried until maxAttempts is reached, then moves to failed.
func (m *Message) RecordFailure(cause error, maxAttempts int) {
	m.attempts++
	if cause != nil {
		m.lastError = cause.Error()
	}
	if m.attempts >= maxAttempts {
		m.status = StatusFailed
	}
}
