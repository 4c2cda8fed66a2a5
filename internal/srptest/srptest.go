// Package srptest provides fixtures shared by the SRP test suites: a genuine
// signed modulus and throwaway OpenPGP signers.
package srptest

import (
	"bytes"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/pmsrp/pkg/modulus"
)

// SignedModulus is a production 2048-bit modulus clearsigned by the pinned key.
const SignedModulus = "-----BEGIN PGP SIGNED MESSAGE-----\nHash: SHA256\n\ni3R3vxdGFzII3wQ9AmpKKib3g6y/gqHtB2rzEep6akBVyS91kIW8zy57pxLqlKtUWxCxvbdfa4XfIC2FX9euldG1Am5jpQpOvEFN5fQeMv5/FiWf5J/i76Na68Y2tT6ZpSMuk/J0GgdhpvClB5Dctzwe46T8pkrtFcfnt/dylaVXVNUW0W627PWYWyqqj45Xo81xcIw+NrIYp7xwBRkrHBiZx4Jv0QGX4inBLA6spE1Bdds3Eh+ghXbnqUZQtqTg7xXApsvy7TKqhVvRBtd41g7e0PQdGuAlnWHa0Q+83gJaIPsTgDtxI6T8Wqzb4YMJXGTLJPAvg+c3E6e24tBomg==\n-----BEGIN PGP SIGNATURE-----\nVersion: ProtonMail\nComment: https://protonmail.com\n\nwl4EARYIABAFAlwB1jwJEDUFhcTpUY8mAAAAHQD/SQYkVKlp0tNDO+iwTccE\nlkbiIqkBKeQ/NYOJWnH6wg8A+weOxJ/YhNC82mZI6Jva5IeY48vOg1IWF7lz\nskZLjU4B\n=KepV\n-----END PGP SIGNATURE-----\n"

// ModulusPayload is the base64 payload signed in SignedModulus.
const ModulusPayload = "i3R3vxdGFzII3wQ9AmpKKib3g6y/gqHtB2rzEep6akBVyS91kIW8zy57pxLqlKtUWxCxvbdfa4XfIC2FX9euldG1Am5jpQpOvEFN5fQeMv5/FiWf5J/i76Na68Y2tT6ZpSMuk/J0GgdhpvClB5Dctzwe46T8pkrtFcfnt/dylaVXVNUW0W627PWYWyqqj45Xo81xcIw+NrIYp7xwBRkrHBiZx4Jv0QGX4inBLA6spE1Bdds3Eh+ghXbnqUZQtqTg7xXApsvy7TKqhVvRBtd41g7e0PQdGuAlnWHa0Q+83gJaIPsTgDtxI6T8Wqzb4YMJXGTLJPAvg+c3E6e24tBomg=="

// Modulus returns the verified raw bytes of SignedModulus.
func Modulus(t testing.TB) []byte {
	t.Helper()

	v, err := modulus.NewVerifier()
	require.NoError(t, err)

	raw, err := v.Decode(SignedModulus)
	require.NoError(t, err)
	require.Len(t, raw, 256)
	return raw
}

// Signer clearsigns payloads with a freshly generated EdDSA key.
type Signer struct {
	entity *openpgp.Entity
}

// NewSigner generates a throwaway signing key.
func NewSigner(t testing.TB) *Signer {
	t.Helper()

	entity, err := openpgp.NewEntity("srp test", "", "srp@example.invalid", &packet.Config{
		Algorithm: packet.PubKeyAlgoEdDSA,
	})
	require.NoError(t, err)
	return &Signer{entity: entity}
}

// Keyring returns a keyring holding only the signer's key.
func (s *Signer) Keyring() openpgp.EntityList {
	return openpgp.EntityList{s.entity}
}

// Sign returns payload as an armored clearsigned message.
func (s *Signer) Sign(t testing.TB, payload string) string {
	t.Helper()

	var buf bytes.Buffer
	w, err := clearsign.Encode(&buf, s.entity.PrivateKey, nil)
	require.NoError(t, err)
	_, err = w.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.String()
}
