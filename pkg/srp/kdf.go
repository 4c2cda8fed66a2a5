package srp

import (
	"crypto/md5" //nolint:gosec // legacy versions salt bcrypt with MD5(username)
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jameskeane/bcrypt"

	"github.com/fzdarsky/pmsrp/pkg/codec"
	"github.com/fzdarsky/pmsrp/pkg/protocol"
)

// KDF names a password derivation strategy, the way x is computed from the
// password, salt and modulus. Suites map protocol versions onto KDFs.
type KDF int

// Supported password derivations.
const (
	// KDFProtonV0 runs KDFProtonV1 over
	// base64(SHA-512(lowercase(username) | password)).
	KDFProtonV0 KDF = iota
	// KDFProtonV1 salts bcrypt with hex(MD5(lowercase(username))).
	KDFProtonV1
	// KDFProtonV2 is KDFProtonV1 over the username stripped of '-', '.' and '_'.
	KDFProtonV2
	// KDFProtonV3 salts bcrypt with the 10-byte account salt plus "proton".
	KDFProtonV3
	// KDFRFC2945 computes x = H(s | H(I ":" P)).
	KDFRFC2945
)

// bcryptCost is the work factor fixed by the protocol.
const bcryptCost = "$2a$10$"

// String returns the strategy name.
func (k KDF) String() string {
	switch k {
	case KDFProtonV0:
		return "proton-v0"
	case KDFProtonV1:
		return "proton-v1"
	case KDFProtonV2:
		return "proton-v2"
	case KDFProtonV3:
		return "proton-v3"
	case KDFRFC2945:
		return "rfc2945"
	default:
		return fmt.Sprintf("kdf(%d)", int(k))
	}
}

// checkSalt validates the salt length the strategy requires.
func (k KDF) checkSalt(salt []byte) error {
	switch k {
	case KDFProtonV3:
		if len(salt) != 10 {
			return fmt.Errorf("salt is %d bytes, want 10: %w", len(salt), protocol.ErrMalformedInput)
		}
	case KDFRFC2945:
		if len(salt) == 0 {
			return fmt.Errorf("empty salt: %w", protocol.ErrMalformedInput)
		}
	}
	return nil
}

// derive computes the raw bytes of x. modulus is N in the suite byte order.
func (k KDF) derive(h hashFunc, password []byte, username string, salt, modulus []byte) ([]byte, error) {
	switch k {
	case KDFProtonV3:
		return bcryptExpand(password, codec.EncodeBcrypt64(append(salt[:len(salt):len(salt)], "proton"...)), modulus)
	case KDFProtonV2:
		return KDFProtonV1.derive(h, password, cleanUsername(username), salt, modulus)
	case KDFProtonV1:
		sum := md5.Sum([]byte(strings.ToLower(username))) //nolint:gosec // see import
		return bcryptExpand(password, codec.EncodeHex(sum[:]), modulus)
	case KDFProtonV0:
		prehashed := sha512.Sum512(append([]byte(strings.ToLower(username)), password...))
		return KDFProtonV1.derive(h, []byte(base64.StdEncoding.EncodeToString(prehashed[:])), username, salt, modulus)
	case KDFRFC2945:
		inner := h([]byte(username), []byte(":"), password)
		return h(salt, inner), nil
	default:
		return nil, fmt.Errorf("unknown password derivation %s: %w", k, protocol.ErrProtocolViolation)
	}
}

// bcryptExpand hashes password with bcrypt and stretches the $2y$ encoded
// result together with the modulus.
func bcryptExpand(password []byte, salt string, modulus []byte) ([]byte, error) {
	crypted, err := bcrypt.Hash(string(password), bcryptCost+salt)
	if err != nil {
		return nil, fmt.Errorf("bcrypt: %w", err)
	}
	crypted = strings.Replace(crypted, "$2a", "$2y", 1)

	return expandHash([]byte(crypted), modulus), nil
}

func cleanUsername(username string) string {
	return strings.ToLower(strings.NewReplacer("-", "", ".", "", "_", "").Replace(username))
}
