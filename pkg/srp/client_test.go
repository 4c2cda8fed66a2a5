package srp_test

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/pmsrp/internal/modmath"
	"github.com/fzdarsky/pmsrp/internal/srptest"
	"github.com/fzdarsky/pmsrp/pkg/protocol"
	"github.com/fzdarsky/pmsrp/pkg/srp"
)

const testPassword = "hunter2-but-longer"

func newProtonClient(t *testing.T, opts ...srp.Option) *srp.Client {
	t.Helper()
	client, err := srp.NewClient([]byte(testPassword), srptest.Modulus(t), opts...)
	require.NoError(t, err)
	return client
}

func rejection(t *testing.T, result srp.Result) error {
	t.Helper()
	rejected, ok := result.(srp.Rejected)
	require.True(t, ok, "expected a rejection, got %T", result)
	require.Error(t, rejected.Err)
	return rejected.Err
}

func TestNewClient_InvalidModulus(t *testing.T) {
	flipped := srptest.Modulus(t)
	flipped[0] ^= 0x04 // N no longer 3 mod 8

	composite := srptest.Modulus(t)
	composite[100] ^= 0x01

	tests := []struct {
		name    string
		modulus []byte
	}{
		{name: "empty", modulus: nil},
		{name: "too short", modulus: srptest.Modulus(t)[:255]},
		{name: "not 3 mod 8", modulus: flipped},
		{name: "not prime", modulus: composite},
		{name: "rfc group", modulus: mustHex(t, rfcN)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srp.NewClient([]byte(testPassword), tt.modulus)
			require.Error(t, err)
			assert.ErrorIs(t, err, protocol.ErrProtocolViolation)
		})
	}
}

func TestClient_GetChallenge(t *testing.T) {
	client := newProtonClient(t)

	first, err := client.GetChallenge()
	require.NoError(t, err)
	require.Len(t, first, 256)

	n := modmath.LittleEndian.Int(srptest.Modulus(t))
	a := modmath.LittleEndian.Int(first)
	assert.Equal(t, 1, a.Cmp(big.NewInt(1)))
	assert.Equal(t, -1, a.Cmp(n))

	second, err := client.GetChallenge()
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "each challenge must use a fresh secret")
}

func TestClient_GetChallenge_Deterministic(t *testing.T) {
	secret := bytes.Repeat([]byte{0x01}, 256)

	a1, err := newProtonClient(t, srp.WithRandom(bytes.NewReader(secret))).GetChallenge()
	require.NoError(t, err)
	a2, err := newProtonClient(t, srp.WithRandom(bytes.NewReader(secret))).GetChallenge()
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
}

func TestClient_GetChallenge_BrokenRandom(t *testing.T) {
	// All-zero secrets never satisfy the lower bound.
	client := newProtonClient(t, srp.WithRandom(bytes.NewReader(make([]byte, 256*100))))
	_, err := client.GetChallenge()
	assert.Error(t, err)

	client = newProtonClient(t, srp.WithRandom(bytes.NewReader(nil)))
	_, err = client.GetChallenge()
	assert.Error(t, err)
}

func TestClient_RoundTrip(t *testing.T) {
	modulus := srptest.Modulus(t)

	gen, err := srp.NewVerifierGenerator([]byte(testPassword), modulus)
	require.NoError(t, err)
	verifier, err := gen.Compute()
	require.NoError(t, err)
	assert.Equal(t, 4, verifier.Version)
	assert.Len(t, verifier.Salt, 10)
	assert.Len(t, verifier.Verifier, 256)

	server, err := srp.NewServer(modulus, verifier.Salt, verifier.Verifier)
	require.NoError(t, err)
	pubB, err := server.GenerateChallenge()
	require.NoError(t, err)

	client := newProtonClient(t)
	_, err = client.GetChallenge()
	require.NoError(t, err)

	accepted, ok := client.ProcessChallenge(verifier.Salt, pubB, verifier.Version).(srp.Accepted)
	require.True(t, ok)
	assert.Len(t, accepted.Proofs.ClientProof, 256)
	assert.Len(t, accepted.Proofs.ExpectedServerProof, 256)

	serverProof, err := server.VerifyProofs(accepted.Proofs.ClientEphemeral, accepted.Proofs.ClientProof)
	require.NoError(t, err)
	assert.Equal(t, accepted.Proofs.ExpectedServerProof, serverProof)
	assert.NoError(t, client.VerifyServerProof(serverProof))

	tampered := bytes.Clone(serverProof)
	tampered[0] ^= 0xff
	assert.ErrorIs(t, client.VerifyServerProof(tampered), protocol.ErrProtocolViolation)
}

func TestClient_RoundTrip_WrongPassword(t *testing.T) {
	modulus := srptest.Modulus(t)

	gen, err := srp.NewVerifierGenerator([]byte("a different password"), modulus)
	require.NoError(t, err)
	verifier, err := gen.Compute()
	require.NoError(t, err)

	server, err := srp.NewServer(modulus, verifier.Salt, verifier.Verifier)
	require.NoError(t, err)
	pubB, err := server.GenerateChallenge()
	require.NoError(t, err)

	client := newProtonClient(t)
	_, err = client.GetChallenge()
	require.NoError(t, err)

	accepted, ok := client.ProcessChallenge(verifier.Salt, pubB, verifier.Version).(srp.Accepted)
	require.True(t, ok)

	_, err = server.VerifyProofs(accepted.Proofs.ClientEphemeral, accepted.Proofs.ClientProof)
	assert.Error(t, err)
}

func TestClient_LegacyVersions(t *testing.T) {
	modulus := srptest.Modulus(t)
	g, err := srp.NewGroup(srp.Proton, modulus)
	require.NoError(t, err)

	salt := []byte("0123456789")
	username := "Jane.Doe-x_y"

	tests := []struct {
		version int
		kdf     srp.KDF
	}{
		{version: 0, kdf: srp.KDFProtonV0},
		{version: 1, kdf: srp.KDFProtonV1},
		{version: 2, kdf: srp.KDFProtonV2},
		{version: 3, kdf: srp.KDFProtonV3},
		{version: 4, kdf: srp.KDFProtonV3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("version %d", tt.version), func(t *testing.T) {
			x, err := g.DeriveX(tt.kdf, []byte(testPassword), username, salt)
			require.NoError(t, err)

			server, err := srp.NewServer(modulus, salt, g.VerifierFor(x), srp.WithUsername(username))
			require.NoError(t, err)
			pubB, err := server.GenerateChallenge()
			require.NoError(t, err)

			client := newProtonClient(t, srp.WithUsername(username))
			_, err = client.GetChallenge()
			require.NoError(t, err)

			accepted, ok := client.ProcessChallenge(salt, pubB, tt.version).(srp.Accepted)
			require.True(t, ok)

			_, err = server.VerifyProofs(accepted.Proofs.ClientEphemeral, accepted.Proofs.ClientProof)
			assert.NoError(t, err)
		})
	}
}

func TestKDF_UsernameHandling(t *testing.T) {
	g, err := srp.NewGroup(srp.Proton, srptest.Modulus(t))
	require.NoError(t, err)
	password := []byte(testPassword)

	v1, err := g.DeriveX(srp.KDFProtonV1, password, "JaneDoe", nil)
	require.NoError(t, err)
	v1Lower, err := g.DeriveX(srp.KDFProtonV1, password, "janedoe", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, v1.Cmp(v1Lower), "version 1 is case-insensitive")

	v2, err := g.DeriveX(srp.KDFProtonV2, password, "Jane.Doe_-", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, v1.Cmp(v2), "version 2 ignores '-', '.' and '_'")

	v1Dotted, err := g.DeriveX(srp.KDFProtonV1, password, "Jane.Doe_-", nil)
	require.NoError(t, err)
	assert.NotEqual(t, 0, v1.Cmp(v1Dotted))

	v0, err := g.DeriveX(srp.KDFProtonV0, password, "janedoe", nil)
	require.NoError(t, err)
	assert.NotEqual(t, 0, v1.Cmp(v0), "version 0 prehashes the password")
}

func TestKDF_SaltMatters(t *testing.T) {
	g, err := srp.NewGroup(srp.Proton, srptest.Modulus(t))
	require.NoError(t, err)

	x1, err := g.DeriveX(srp.KDFProtonV3, []byte(testPassword), "", []byte("0123456789"))
	require.NoError(t, err)
	x2, err := g.DeriveX(srp.KDFProtonV3, []byte(testPassword), "", []byte("0123456780"))
	require.NoError(t, err)
	assert.NotEqual(t, 0, x1.Cmp(x2))

	again, err := g.DeriveX(srp.KDFProtonV3, []byte(testPassword), "", []byte("0123456789"))
	require.NoError(t, err)
	assert.Equal(t, 0, x1.Cmp(again), "derivation is deterministic")
}

func TestClient_ProcessChallenge_Rejections(t *testing.T) {
	modulus := srptest.Modulus(t)
	n := modmath.LittleEndian.Int(modulus)
	encode := func(x *big.Int) []byte {
		b, err := modmath.LittleEndian.Bytes(x, 256)
		require.NoError(t, err)
		return b
	}
	validB := encode(big.NewInt(0xC0FFEE))
	salt := []byte("0123456789")

	tests := []struct {
		name    string
		salt    []byte
		pubB    []byte
		version int
		want    error
	}{
		{name: "zero B", salt: salt, pubB: make([]byte, 256), version: 4, want: protocol.ErrProtocolViolation},
		{name: "B equal to N", salt: salt, pubB: bytes.Clone(modulus), version: 4, want: protocol.ErrProtocolViolation},
		{name: "B equal to 1", salt: salt, pubB: encode(big.NewInt(1)), version: 4, want: protocol.ErrProtocolViolation},
		{name: "B equal to N-1", salt: salt, pubB: encode(new(big.Int).Sub(n, big.NewInt(1))), version: 4, want: protocol.ErrProtocolViolation},
		{name: "unsupported version", salt: salt, pubB: validB, version: 5, want: protocol.ErrProtocolViolation},
		{name: "negative version", salt: salt, pubB: validB, version: -1, want: protocol.ErrProtocolViolation},
		{name: "short B", salt: salt, pubB: validB[:128], version: 4, want: protocol.ErrMalformedInput},
		{name: "long B", salt: salt, pubB: append(bytes.Clone(validB), 0), version: 4, want: protocol.ErrMalformedInput},
		{name: "short salt", salt: salt[:9], pubB: validB, version: 4, want: protocol.ErrMalformedInput},
		{name: "empty salt", salt: nil, pubB: validB, version: 3, want: protocol.ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newProtonClient(t)
			_, err := client.GetChallenge()
			require.NoError(t, err)

			err = rejection(t, client.ProcessChallenge(tt.salt, tt.pubB, tt.version))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_ProcessChallenge_RequiresChallenge(t *testing.T) {
	pubB, err := modmath.LittleEndian.Bytes(big.NewInt(0xC0FFEE), 256)
	require.NoError(t, err)
	salt := []byte("0123456789")

	client := newProtonClient(t)
	err = rejection(t, client.ProcessChallenge(salt, pubB, 4))
	assert.True(t, errors.Is(err, srp.ErrNoChallenge))

	_, err = client.GetChallenge()
	require.NoError(t, err)
	_, ok := client.ProcessChallenge(salt, pubB, 4).(srp.Accepted)
	require.True(t, ok)

	// The secret is consumed by the first proof.
	err = rejection(t, client.ProcessChallenge(salt, pubB, 4))
	assert.ErrorIs(t, err, srp.ErrNoChallenge)

	_, err = client.GetChallenge()
	require.NoError(t, err)
	client.Clear()
	err = rejection(t, client.ProcessChallenge(salt, pubB, 4))
	assert.ErrorIs(t, err, srp.ErrNoChallenge)
	assert.ErrorIs(t, client.VerifyServerProof(make([]byte, 256)), srp.ErrNoChallenge)
}

func TestVerifierGenerator_NonDeterministic(t *testing.T) {
	gen, err := srp.NewVerifierGenerator([]byte(testPassword), srptest.Modulus(t))
	require.NoError(t, err)

	first, err := gen.Compute()
	require.NoError(t, err)
	second, err := gen.Compute()
	require.NoError(t, err)

	assert.NotEqual(t, first.Salt, second.Salt)
	assert.NotEqual(t, first.Verifier, second.Verifier)
}

func TestVerifierGenerator_RandomFailure(t *testing.T) {
	gen, err := srp.NewVerifierGenerator([]byte(testPassword), srptest.Modulus(t),
		srp.WithRandom(bytes.NewReader([]byte{1, 2, 3})))
	require.NoError(t, err)

	_, err = gen.Compute()
	assert.Error(t, err)
}

func TestSuite_KDF(t *testing.T) {
	kdf, err := srp.Proton.KDF(4)
	require.NoError(t, err)
	assert.Equal(t, srp.KDFProtonV3, kdf)
	assert.Equal(t, "proton-v3", kdf.String())

	_, err = srp.Proton.KDF(7)
	assert.ErrorIs(t, err, protocol.ErrProtocolViolation)

	_, err = srp.RFC5054SHA1.KDF(4)
	assert.ErrorIs(t, err, protocol.ErrProtocolViolation)

	assert.Equal(t, modmath.LittleEndian, srp.Proton.ByteOrder())
	assert.Equal(t, modmath.BigEndian, srp.RFC5054SHA256.ByteOrder())
	assert.Equal(t, "proton", srp.Proton.Name())
}
