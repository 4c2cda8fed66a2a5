package srp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/fzdarsky/pmsrp/internal/modmath"
	"github.com/fzdarsky/pmsrp/pkg/protocol"
)

// ErrNoChallenge is returned when a challenge is processed before
// GetChallenge, or after its secret has already been consumed.
var ErrNoChallenge = errors.New("no pending challenge: call GetChallenge first")

// maxSecretDraws bounds rejection sampling of ephemeral secrets. Exhausting it
// means the random source is broken.
const maxSecretDraws = 64

// Option configures a Client, VerifierGenerator or Server.
type Option func(*options)

type options struct {
	suite    *Suite
	username string
	random   io.Reader
}

func newOptions(opts []Option) options {
	o := options{suite: Proton, random: rand.Reader}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSuite selects the protocol variant. The default is Proton.
func WithSuite(s *Suite) Option {
	return func(o *options) { o.suite = s }
}

// WithUsername sets the identity used by username-salted versions and by
// RFC 5054 proofs.
func WithUsername(username string) Option {
	return func(o *options) { o.username = username }
}

// WithRandom replaces crypto/rand as the source of secrets and salts.
func WithRandom(r io.Reader) Option {
	return func(o *options) { o.random = r }
}

// Proofs is the outcome of a successful challenge.
type Proofs struct {
	ClientEphemeral     []byte
	ClientProof         []byte
	ExpectedServerProof []byte
}

// Result is either Accepted or Rejected.
type Result interface {
	isResult()
}

// Accepted carries the proofs for a valid challenge.
type Accepted struct {
	Proofs Proofs
}

// Rejected carries the reason a challenge was refused. No partial proof is
// ever returned alongside it.
type Rejected struct {
	Err error
}

func (Accepted) isResult() {}
func (Rejected) isResult() {}

// Client is the client half of one SRP-6a exchange. A Client is not safe for
// concurrent use.
type Client struct {
	group    *group
	username string
	password []byte
	random   io.Reader

	secret     *big.Int // a, discarded once proofs are computed
	public     []byte   // A, padded
	expectedM2 []byte
}

// NewClient validates modulus (raw bytes in the suite byte order) and returns
// a client for password.
func NewClient(password, modulus []byte, opts ...Option) (*Client, error) {
	o := newOptions(opts)

	g, err := newGroup(o.suite, modulus)
	if err != nil {
		return nil, err
	}

	return &Client{
		group:    g,
		username: o.username,
		password: append([]byte(nil), password...),
		random:   o.random,
	}, nil
}

// GetChallenge draws a fresh ephemeral secret a and returns A = g^a mod N.
// Calling it again starts a new exchange and discards the previous one.
func (c *Client) GetChallenge() ([]byte, error) {
	c.reset()

	secret, err := c.group.randomSecret(c.random)
	if err != nil {
		return nil, err
	}

	c.secret = secret
	c.public = c.group.mustEncode(c.group.mod.Exp(generator, secret))
	return append([]byte(nil), c.public...), nil
}

// ProcessChallenge computes the client proof for the server's salt and
// ephemeral B under the given protocol version.
func (c *Client) ProcessChallenge(salt, serverEphemeral []byte, version int) Result {
	proofs, err := c.processChallenge(salt, serverEphemeral, version)
	if err != nil {
		return Rejected{Err: err}
	}
	return Accepted{Proofs: *proofs}
}

func (c *Client) processChallenge(salt, serverEphemeral []byte, version int) (*Proofs, error) {
	if c.secret == nil {
		return nil, ErrNoChallenge
	}

	g := c.group
	kdf, err := g.suite.KDF(version)
	if err != nil {
		return nil, err
	}
	if err := kdf.checkSalt(salt); err != nil {
		return nil, err
	}
	if len(serverEphemeral) != g.mod.Size() {
		return nil, fmt.Errorf("server ephemeral is %d bytes, want %d: %w", len(serverEphemeral), g.mod.Size(), protocol.ErrMalformedInput)
	}

	bPub := g.toInt(serverEphemeral)
	if err := g.checkEphemeral(bPub); err != nil {
		return nil, err
	}

	u := g.scramble(c.public, serverEphemeral)
	if u.Sign() == 0 {
		return nil, fmt.Errorf("scrambling parameter is zero: %w", protocol.ErrProtocolViolation)
	}

	xBytes, err := kdf.derive(g.suite.hash, c.password, c.username, salt, g.nBytes)
	if err != nil {
		return nil, err
	}
	x := g.toInt(xBytes)
	modmath.Wipe(xBytes)

	secret := g.clientPremaster(c.secret, bPub, x, u)
	m1, m2 := g.proofs(c.username, salt, c.public, serverEphemeral, secret)

	modmath.WipeInt(x)
	modmath.WipeInt(secret)
	modmath.WipeInt(c.secret)
	c.secret = nil
	c.expectedM2 = m2

	return &Proofs{
		ClientEphemeral:     append([]byte(nil), c.public...),
		ClientProof:         m1,
		ExpectedServerProof: append([]byte(nil), m2...),
	}, nil
}

// VerifyServerProof checks the server's M2 against the expected value in
// constant time.
func (c *Client) VerifyServerProof(serverProof []byte) error {
	if c.expectedM2 == nil {
		return ErrNoChallenge
	}
	if !modmath.Equal(serverProof, c.expectedM2) {
		return fmt.Errorf("server proof mismatch: %w", protocol.ErrProtocolViolation)
	}
	return nil
}

// Clear zeroes the password and every secret held by the client.
func (c *Client) Clear() {
	c.reset()
	modmath.Wipe(c.password)
	c.password = nil
}

func (c *Client) reset() {
	modmath.WipeInt(c.secret)
	c.secret = nil
	c.public = nil
	modmath.Wipe(c.expectedM2)
	c.expectedM2 = nil
}

// randomSecret draws a uniformly random exponent with 2*bits < a < N-1. The
// lower bound keeps g^a from being smaller than N.
func (g *group) randomSecret(r io.Reader) (*big.Int, error) {
	lower := big.NewInt(int64(2 * g.mod.Bits()))
	upper := g.mod.MinusOne()
	buf := make([]byte, g.mod.Size())
	defer modmath.Wipe(buf)

	for range maxSecretDraws {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("failed to read random secret: %w", err)
		}
		secret := g.toInt(buf)
		if secret.Cmp(lower) > 0 && secret.Cmp(upper) < 0 {
			return secret, nil
		}
	}
	return nil, errors.New("failed to draw an ephemeral secret in range")
}

// clientPremaster computes S = (B - k*g^x)^(u*x + a) mod N.
func (g *group) clientPremaster(a, bPub, x, u *big.Int) *big.Int {
	m := g.mod
	base := m.Sub(bPub, m.Mul(g.k, m.Exp(generator, x)))
	return m.Exp(base, m.ExponentMulAdd(u, x, a))
}

// serverPremaster computes S = (A * v^u)^b mod N.
func (g *group) serverPremaster(aPub, v, u, b *big.Int) *big.Int {
	m := g.mod
	return m.Exp(m.Mul(aPub, m.Exp(v, u)), b)
}
