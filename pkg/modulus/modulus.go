// Package modulus authenticates SRP moduli delivered as OpenPGP clearsigned
// messages. Only moduli signed by the pinned modulus key are ever returned.
package modulus

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/clearsign"

	"github.com/fzdarsky/pmsrp/pkg/codec"
	"github.com/fzdarsky/pmsrp/pkg/protocol"
)

// pinnedKey is the armored public key that signs every SRP modulus.
const pinnedKey = "-----BEGIN PGP PUBLIC KEY BLOCK-----\r\n\r\nxjMEXAHLgxYJKwYBBAHaRw8BAQdAFurWXXwjTemqjD7CXjXVyKf0of7n9Ctm\r\nL8v9enkzggHNEnByb3RvbkBzcnAubW9kdWx1c8J3BBAWCgApBQJcAcuDBgsJ\r\nBwgDAgkQNQWFxOlRjyYEFQgKAgMWAgECGQECGwMCHgEAAPGRAP9sauJsW12U\r\nMnTQUZpsbJb53d0Wv55mZIIiJL2XulpWPQD/V6NglBd96lZKBmInSXX/kXat\r\nSv+y0io+LR8i2+jV+AbOOARcAcuDEgorBgEEAZdVAQUBAQdAeJHUz1c9+KfE\r\nkSIgcBRE3WuXC4oj5a2/U3oASExGDW4DAQgHwmEEGBYIABMFAlwBy4MJEDUF\r\nhcTpUY8mAhsMAAD/XQD8DxNI6E78meodQI+wLsrKLeHn32iLvUqJbVDhfWSU\r\nWO4BAMcm1u02t4VKw++ttECPt+HUgPUq5pqQWe5Q2cW4TMsE\r\n=Y4Mw\r\n-----END PGP PUBLIC KEY BLOCK-----"

// pinnedKeyring parses pinnedKey once; the result is shared read-only.
var pinnedKeyring = sync.OnceValues(func() (openpgp.EntityList, error) {
	return openpgp.ReadArmoredKeyRing(strings.NewReader(pinnedKey))
})

// PublicKey returns the armored pinned modulus signing key.
func PublicKey() string {
	return pinnedKey
}

// Verifier checks clearsigned moduli against a fixed keyring.
type Verifier struct {
	keyring openpgp.KeyRing
}

// NewVerifier returns a Verifier bound to the pinned modulus key.
func NewVerifier() (*Verifier, error) {
	keyring, err := pinnedKeyring()
	if err != nil {
		return nil, fmt.Errorf("failed to read pinned modulus key: %w", err)
	}
	return &Verifier{keyring: keyring}, nil
}

// Verify checks the detached signature of a clearsigned message and returns
// the signed payload with surrounding whitespace removed. Any trailing data
// after the signature block is rejected.
func (v *Verifier) Verify(armored string) ([]byte, error) {
	block, rest := clearsign.Decode([]byte(armored))
	if block == nil {
		return nil, fmt.Errorf("no clearsigned message found: %w", protocol.ErrModulusAuthentication)
	}
	if len(bytes.TrimSpace(rest)) != 0 {
		return nil, fmt.Errorf("extra data after signed modulus: %w", protocol.ErrModulusAuthentication)
	}

	if _, err := openpgp.CheckDetachedSignature(v.keyring, bytes.NewReader(block.Bytes), block.ArmoredSignature.Body, nil); err != nil {
		return nil, fmt.Errorf("invalid modulus signature (%v): %w", err, protocol.ErrModulusAuthentication)
	}

	return bytes.TrimSpace(block.Bytes), nil
}

// Decode verifies armored and base64-decodes the payload into raw modulus bytes.
func (v *Verifier) Decode(armored string) ([]byte, error) {
	payload, err := v.Verify(armored)
	if err != nil {
		return nil, err
	}

	modulus, err := codec.DecodeBase64(string(payload))
	if err != nil {
		return nil, fmt.Errorf("signed modulus: %w", err)
	}
	return modulus, nil
}
