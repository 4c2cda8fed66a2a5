// Package srp provides the client side of SRP-6a password authentication and
// verifier generation. The protocol variant (hash, byte order, proof layout
// and password derivation) is selected through a Suite; Proton is the suite
// used by the account API, the RFC 5054 suites follow the standard.
package srp

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // RFC 5054 test vectors are defined over SHA-1
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"math/big"

	"github.com/fzdarsky/pmsrp/internal/modmath"
	"github.com/fzdarsky/pmsrp/pkg/protocol"
)

// generator is the only generator accepted by every suite.
var generator = big.NewInt(2)

type hashFunc func(parts ...[]byte) []byte

type proofScheme int

const (
	// M1 = H(A | B | S), M2 = H(A | M1 | S)
	proofProton proofScheme = iota
	// K = H(S), M1 = H(H(N) xor H(g) | H(I) | s | A | B | K), M2 = H(A | M1 | K)
	proofRFC5054
)

// Suite is a complete SRP-6a variant. The set of suites is closed; use the
// package-level values.
type Suite struct {
	name      string
	order     modmath.ByteOrder
	bits      int // exact modulus size in bits
	minBits   int // lower bound when bits is 0
	hash      hashFunc
	proof     proofScheme
	saltSize  int // salt length drawn for new verifiers
	versions  map[int]KDF
	current   int
	kGenFirst bool // k = H(PAD(g) | N) instead of H(N | PAD(g))
}

var (
	// Proton is the account API variant: little-endian integers, 2048-bit
	// moduli and a 2048-bit expanded SHA-512 hash.
	Proton = &Suite{
		name:     "proton",
		order:    modmath.LittleEndian,
		bits:     2048,
		hash:     expandHash,
		proof:    proofProton,
		saltSize: 10,
		versions: map[int]KDF{
			0: KDFProtonV0,
			1: KDFProtonV1,
			2: KDFProtonV2,
			3: KDFProtonV3,
			4: KDFProtonV3,
		},
		current:   4,
		kGenFirst: true,
	}

	// RFC5054SHA1 is SRP-6a as specified in RFC 5054 with SHA-1.
	RFC5054SHA1 = &Suite{
		name:     "rfc5054-sha1",
		order:    modmath.BigEndian,
		minBits:  1024,
		hash:     digest(func(b []byte) []byte { s := sha1.Sum(b); return s[:] }), //nolint:gosec // see import
		proof:    proofRFC5054,
		saltSize: 16,
		versions: map[int]KDF{1: KDFRFC2945},
		current:  1,
	}

	// RFC5054SHA256 is SRP-6a as specified in RFC 5054 with SHA-256.
	RFC5054SHA256 = &Suite{
		name:     "rfc5054-sha256",
		order:    modmath.BigEndian,
		minBits:  1024,
		hash:     digest(func(b []byte) []byte { s := sha256.Sum256(b); return s[:] }),
		proof:    proofRFC5054,
		saltSize: 16,
		versions: map[int]KDF{1: KDFRFC2945},
		current:  1,
	}
)

// Name returns the suite identifier.
func (s *Suite) Name() string { return s.name }

// ByteOrder returns the integer encoding used on the wire.
func (s *Suite) ByteOrder() modmath.ByteOrder { return s.order }

// CurrentVersion returns the version used for new verifiers.
func (s *Suite) CurrentVersion() int { return s.current }

// SaltSize returns the length of salts drawn for new verifiers.
func (s *Suite) SaltSize() int { return s.saltSize }

// KDF returns the password derivation for version. Unknown versions are an
// error; there is no fallback.
func (s *Suite) KDF(version int) (KDF, error) {
	kdf, ok := s.versions[version]
	if !ok {
		return 0, fmt.Errorf("unsupported %s version %d: %w", s.name, version, protocol.ErrProtocolViolation)
	}
	return kdf, nil
}

// expandHash stretches SHA-512 to 2048 bits: H(d|0) | H(d|1) | H(d|2) | H(d|3).
func expandHash(parts ...[]byte) []byte {
	data := bytes.Join(parts, nil)

	out := make([]byte, 0, 4*sha512.Size)
	for i := range byte(4) {
		sum := sha512.Sum512(append(data[:len(data):len(data)], i))
		out = append(out, sum[:]...)
	}
	return out
}

func digest(sum func([]byte) []byte) hashFunc {
	return func(parts ...[]byte) []byte {
		return sum(bytes.Join(parts, nil))
	}
}

// group holds a validated modulus with its derived constants.
type group struct {
	suite   *Suite
	mod     *modmath.Modulus
	nBytes  []byte // N in suite byte order, full width
	k       *big.Int
	gPadded []byte
}

// newGroup validates modulus (encoded in the suite byte order) and derives k.
// Every rejection wraps protocol.ErrProtocolViolation.
func newGroup(s *Suite, modulus []byte) (*group, error) {
	n := s.order.Int(modulus)

	switch {
	case s.bits != 0 && n.BitLen() != s.bits:
		return nil, fmt.Errorf("modulus is %d bits, want %d: %w", n.BitLen(), s.bits, protocol.ErrProtocolViolation)
	case s.bits == 0 && n.BitLen() < s.minBits:
		return nil, fmt.Errorf("modulus is %d bits, want at least %d: %w", n.BitLen(), s.minBits, protocol.ErrProtocolViolation)
	}
	if err := modmath.CheckSafePrime(n); err != nil {
		return nil, fmt.Errorf("%w: %w", err, protocol.ErrProtocolViolation)
	}

	g := &group{suite: s, mod: modmath.NewModulus(n)}
	g.nBytes = g.mustEncode(n)
	g.gPadded = g.mustEncode(generator)

	var kHash []byte
	if s.kGenFirst {
		kHash = s.hash(g.gPadded, g.nBytes)
	} else {
		kHash = s.hash(g.nBytes, g.gPadded)
	}
	g.k = g.mod.Reduce(s.order.Int(kHash))
	if !g.mod.InRange(g.k) {
		return nil, fmt.Errorf("multiplier out of bounds: %w", protocol.ErrProtocolViolation)
	}

	return g, nil
}

// encode pads x to the width of N in the suite byte order.
func (g *group) encode(x *big.Int) ([]byte, error) {
	return g.suite.order.Bytes(x, g.mod.Size())
}

// mustEncode is encode for values already reduced mod N.
func (g *group) mustEncode(x *big.Int) []byte {
	b, err := g.encode(x)
	if err != nil {
		panic(fmt.Sprintf("srp: reduced value does not fit modulus width: %v", err))
	}
	return b
}

func (g *group) toInt(b []byte) *big.Int {
	return g.suite.order.Int(b)
}

// checkEphemeral rejects ephemerals that are 0, 1 or -1 mod N. Zero would
// let an attacker force S = 0 without knowing the password.
func (g *group) checkEphemeral(e *big.Int) error {
	r := g.mod.Reduce(e)
	if r.Sign() == 0 {
		return fmt.Errorf("server ephemeral is 0 mod N: %w", protocol.ErrProtocolViolation)
	}
	if !g.mod.InRange(r) {
		return fmt.Errorf("server ephemeral is ±1 mod N: %w", protocol.ErrProtocolViolation)
	}
	return nil
}

// scramble computes u = H(PAD(A) | PAD(B)).
func (g *group) scramble(aPub, bPub []byte) *big.Int {
	return g.toInt(g.suite.hash(aPub, bPub))
}

// proofs computes the client proof and the expected server proof.
func (g *group) proofs(username string, salt, aPub, bPub []byte, secret *big.Int) (m1, m2 []byte) {
	h := g.suite.hash

	switch g.suite.proof {
	case proofRFC5054:
		key := h(secret.Bytes())
		hn := h(g.nBytes)
		hg := h(generator.Bytes())
		for i := range hn {
			hn[i] ^= hg[i]
		}
		m1 = h(hn, h([]byte(username)), salt, aPub, bPub, key)
		m2 = h(aPub, m1, key)
		modmath.Wipe(key)
	default:
		s := g.mustEncode(secret)
		m1 = h(aPub, bPub, s)
		m2 = h(aPub, m1, s)
		modmath.Wipe(s)
	}
	return m1, m2
}
