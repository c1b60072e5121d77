package commands

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrIngestPaymentEventCommandIsNotConstructed = errors.New(
	"IngestPaymentEventCommand must be created via NewIngestPaymentEventCommand constructor",
)

// IngestPaymentEventCommand represents a payment-completed webhook delivery:
// the raw body exactly as received, plus the signature header that
// authenticates it. The body stays raw because the signature is computed
// over the bytes on the wire, not over a re-serialized form.
type IngestPaymentEventCommand struct { //nolint:recvcheck //using for validation
	payload   []byte
	signature string

	guard guard.ConstructorGuard
}

// NewIngestPaymentEventCommand creates a command from a webhook request.
// Validates that both the payload and the signature header are present.
func NewIngestPaymentEventCommand(payload []byte, signature string) (IngestPaymentEventCommand, error) {
	cmd := IngestPaymentEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPayload(payload),
		cmd.setSignature(signature),
	); err != nil {
		return IngestPaymentEventCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c IngestPaymentEventCommand) Validate() error {
	return c.guard.Validate(ErrIngestPaymentEventCommandIsNotConstructed)
}

// Payload returns the raw webhook body.
func (c IngestPaymentEventCommand) Payload() []byte {
	return c.payload
}

// Signature returns the signature header value.
func (c IngestPaymentEventCommand) Signature() string {
	return c.signature
}

func (c *IngestPaymentEventCommand) setPayload(payload []byte) error {
	if len(payload) == 0 {
		return errs.NewValueIsRequiredError("payload")
	}

	c.payload = payload
	return nil
}

func (c *IngestPaymentEventCommand) setSignature(signature string) error {
	if signature == "" {
		return errs.NewValueIsRequiredError("signature")
	}

	c.signature = signature
	return nil
}
