// Package outboxrepo provides data transfer objects and mapping functions
// for notification outbox persistence.
package outboxrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO represents the database structure for persisting outbox messages.
// Indexed by status and creation time so the dispatch job drains pending
// messages oldest first.
type MessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind      string    `gorm:"type:varchar(64);not null"`
	Payload   []byte    `gorm:"type:jsonb"`
	Status    int       `gorm:"type:int;not null;index"`
	Attempts  int       `gorm:"type:int;not null"`
	LastError string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
	SentAt    *time.Time
}

// TableName specifies the database table name for outbox messages.
// Overrides GORM's default naming convention to use "outbox_messages".
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// fromDomain converts an outbox message to its database representation.
func fromDomain(message *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:        message.ID().Bytes(),
		OrderID:   message.OrderID().Bytes(),
		Kind:      message.Kind(),
		Payload:   message.Payload(),
		Status:    int(message.Status()),
		Attempts:  message.Attempts(),
		LastError: message.LastError(),
		CreatedAt: message.CreatedAt(),
		SentAt:    message.SentAt(),
	}
}

// toDomain converts a database DTO to an outbox message using RestoreMessage.
func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(
		id,
		orderID,
		dto.Kind,
		dto.Payload,
		outbox.MessageStatus(dto.Status),
		dto.Attempts,
		dto.LastError,
		dto.CreatedAt,
		dto.SentAt,
	)
}
