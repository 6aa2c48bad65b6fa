package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var ErrInvalidSignature = errors.New("webhook signature verification failed")

// VerifySignature checks the processor's webhook signature: a hex-encoded
// HMAC-SHA256 of the raw request body keyed by the shared endpoint secret.
func VerifySignature(body []byte, signature, secret string) error {
	if signature == "" || secret == "" {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
