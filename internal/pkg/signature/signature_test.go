package signature_test

import (
	"testing"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/signature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_ValidSignature(t *testing.T) {
	payload := []byte(`{"payment_session_id":"cs_1"}`)
	header := signature.Compute("secret", payload)

	require.NoError(t, signature.Verify("secret", payload, header))
}

func TestVerify_AcceptsSchemePrefix(t *testing.T) {
	payload := []byte(`{"payment_session_id":"cs_1"}`)
	header := "sha256=" + signature.Compute("secret", payload)

	require.NoError(t, signature.Verify("secret", payload, header))
}

func TestVerify_RejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"payment_session_id":"cs_1"}`)
	header := signature.Compute("secret", payload)

	err := signature.Verify("secret", []byte(`{"payment_session_id":"cs_2"}`), header)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrSignatureIsInvalid)
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	payload := []byte(`{}`)
	header := signature.Compute("secret", payload)

	err := signature.Verify("other", payload, header)
	require.ErrorIs(t, err, errs.ErrSignatureIsInvalid)
}

func TestVerify_MissingHeader(t *testing.T) {
	err := signature.Verify("secret", []byte(`{}`), "")
	require.ErrorIs(t, err, errs.ErrSignatureIsInvalid)
}

func TestVerify_MissingSecret(t *testing.T) {
	payload := []byte(`{}`)
	err := signature.Verify("", payload, signature.Compute("", payload))
	require.ErrorIs(t, err, errs.ErrSignatureIsInvalid)
}

func TestCompute_Deterministic(t *testing.T) {
	payload := []byte("body")
	assert.Equal(t, signature.Compute("k", payload), signature.Compute("k", payload))
	assert.NotEqual(t, signature.Compute("k", payload), signature.Compute("k2", payload))
}
