package outbox_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMessage(t *testing.T) *outbox.Message {
	t.Helper()

	message, err := outbox.NewMessage(
		kernel.NewUUID(), kernel.NewUUID(),
		outbox.KindOrderCreated, []byte(`{"order_number":"PO-1"}`),
		time.Now(),
	)
	require.NoError(t, err)
	return message
}

func TestNewMessage(t *testing.T) {
	t.Run("should create a pending message", func(t *testing.T) {
		message := newTestMessage(t)

		assert.Equal(t, outbox.StatusPending, message.Status())
		assert.Equal(t, 0, message.Attempts())
		assert.Nil(t, message.SentAt())
		assert.Empty(t, message.LastError())
		require.NoError(t, message.Validate())
	})

	t.Run("should require a kind", func(t *testing.T) {
		_, err := outbox.NewMessage(kernel.NewUUID(), kernel.NewUUID(), "", nil, time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestMessage_MarkSent(t *testing.T) {
	message := newTestMessage(t)
	sentAt := time.Now()

	message.MarkSent(sentAt)

	assert.Equal(t, outbox.StatusSent, message.Status())
	assert.Equal(t, 1, message.Attempts())
	require.NotNil(t, message.SentAt())
	assert.Equal(t, sentAt, *message.SentAt())
}

func TestMessage_RecordFailure(t *testing.T) {
	t.Run("should stay pending until attempts are exhausted", func(t *testing.T) {
		message := newTestMessage(t)

		message.RecordFailure(errors.New("connection refused"), 3)
		message.RecordFailure(errors.New("connection refused"), 3)

		assert.Equal(t, outbox.StatusPending, message.Status())
		assert.Equal(t, 2, message.Attempts())
		assert.Equal(t, "connection refused", message.LastError())
	})

	t.Run("should move to failed on the last attempt", func(t *testing.T) {
		message := newTestMessage(t)

		for i := 0; i < 3; i++ {
			message.RecordFailure(errors.New("connection refused"), 3)
		}

		assert.Equal(t, outbox.StatusFailed, message.Status())
		assert.Equal(t, 3, message.Attempts())
	})
}

func TestRestoreMessage(t *testing.T) {
	t.Run("should restore dispatch state", func(t *testing.T) {
		sentAt := time.Now()

		restored, err := outbox.RestoreMessage(
			kernel.NewUUID(), kernel.NewUUID(),
			outbox.KindOrderStatusChanged, []byte(`{}`),
			outbox.StatusSent, 2, "", time.Now().Add(-time.Hour), &sentAt,
		)

		require.NoError(t, err)
		assert.Equal(t, outbox.StatusSent, restored.Status())
		assert.Equal(t, 2, restored.Attempts())
		require.NotNil(t, restored.SentAt())
	})

	t.Run("should reject an invalid status", func(t *testing.T) {
		_, err := outbox.RestoreMessage(
			kernel.NewUUID(), kernel.NewUUID(),
			outbox.KindOrderStatusChanged, nil,
			outbox.StatusUnknown, 0, "", time.Now(), nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
