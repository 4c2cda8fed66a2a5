// Package codec converts SRP byte strings to and from their wire encodings.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/fzdarsky/pmsrp/pkg/protocol"
)

// bcryptAlphabet is the base64 alphabet used by bcrypt salts.
const bcryptAlphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var bcryptEncoding = base64.NewEncoding(bcryptAlphabet).WithPadding(base64.NoPadding)

// EncodeBase64 encodes data with the standard padded base64 alphabet.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes standard padded base64. Embedded whitespace or line
// breaks are rejected.
func DecodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil || containsNewline(s) {
		return nil, fmt.Errorf("invalid base64: %w", protocol.ErrMalformedInput)
	}
	return data, nil
}

// DecodeBase64Len decodes standard base64 and requires exactly n bytes.
func DecodeBase64Len(s string, n int) ([]byte, error) {
	data, err := DecodeBase64(s)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("decoded %d bytes, want %d: %w", len(data), n, protocol.ErrMalformedInput)
	}
	return data, nil
}

// EncodeHex encodes data as lowercase hex.
func EncodeHex(data []byte) string {
	return hex.EncodeToString(data)
}

// EncodeBcrypt64 encodes data with the bcrypt alphabet and no padding.
func EncodeBcrypt64(data []byte) string {
	return bcryptEncoding.EncodeToString(data)
}

// encoding/base64 silently skips \r and \n even in strict mode.
func containsNewline(s string) bool {
	for i := range len(s) {
		if s[i] == '\n' || s[i] == '\r' {
			return true
		}
	}
	return false
}
