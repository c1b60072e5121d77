// Package signature verifies the authenticity of inbound payment gateway
// payloads using an HMAC-SHA256 digest over the raw request body.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"marketplace/internal/pkg/errs"
)

// headerPrefix is the optional scheme prefix some gateways prepend to the
// signature header value.
const headerPrefix = "sha256="

// Compute returns the hex-encoded HMAC-SHA256 digest of payload under secret.
func Compute(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the signature header value against the expected digest of the
// payload. The comparison is constant-time. An optional "sha256=" prefix on
// the header value is accepted.
//
// Returns a SignatureIsInvalidError when the secret or header is missing or
// the digests do not match.
func Verify(secret string, payload []byte, header string) error {
	if secret == "" {
		return errs.NewSignatureIsInvalidError("shared secret is not configured")
	}

	provided := strings.TrimPrefix(strings.TrimSpace(header), headerPrefix)
	if provided == "" {
		return errs.NewSignatureIsInvalidError("signature header is missing")
	}

	expected := Compute(secret, payload)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(provided))) {
		return errs.NewSignatureIsInvalidError("payload digest mismatch")
	}

	return nil
}
