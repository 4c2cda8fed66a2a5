package srp

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/fzdarsky/pmsrp/internal/modmath"
	"github.com/fzdarsky/pmsrp/pkg/protocol"
)

// Server is the server half of an SRP-6a exchange over a stored verifier. It
// exists to check clients end to end; it is not a hardened authentication
// service.
type Server struct {
	group    *group
	username string
	salt     []byte
	verifier *big.Int
	random   io.Reader

	secret *big.Int // b
	public []byte   // B, padded
}

// NewServer returns a server for the account described by salt and verifier
// (raw bytes in the suite byte order).
func NewServer(modulus, salt, verifier []byte, opts ...Option) (*Server, error) {
	o := newOptions(opts)

	g, err := newGroup(o.suite, modulus)
	if err != nil {
		return nil, err
	}

	v := g.toInt(verifier)
	if g.mod.IsZero(v) {
		return nil, fmt.Errorf("verifier is 0 mod N: %w", protocol.ErrMalformedInput)
	}

	return &Server{
		group:    g,
		username: o.username,
		salt:     append([]byte(nil), salt...),
		verifier: v,
		random:   o.random,
	}, nil
}

// GenerateChallenge draws b and returns B = k*v + g^b mod N.
func (s *Server) GenerateChallenge() ([]byte, error) {
	g := s.group
	s.Clear()

	secret, err := g.randomSecret(s.random)
	if err != nil {
		return nil, err
	}

	m := g.mod
	bPub := m.Add(m.Mul(g.k, s.verifier), m.Exp(generator, secret))
	if m.IsZero(bPub) {
		return nil, errors.New("invalid B: B mod N == 0 (regenerate b)")
	}

	s.secret = secret
	s.public = g.mustEncode(bPub)
	return append([]byte(nil), s.public...), nil
}

// VerifyProofs checks the client's ephemeral and proof and returns the server
// proof M2.
func (s *Server) VerifyProofs(clientEphemeral, clientProof []byte) ([]byte, error) {
	g := s.group
	if s.secret == nil {
		return nil, errors.New("GenerateChallenge must be called before VerifyProofs")
	}
	if len(clientEphemeral) != g.mod.Size() {
		return nil, fmt.Errorf("client ephemeral is %d bytes, want %d: %w", len(clientEphemeral), g.mod.Size(), protocol.ErrMalformedInput)
	}

	aPub := g.toInt(clientEphemeral)
	if g.mod.IsZero(aPub) {
		return nil, fmt.Errorf("client ephemeral is 0 mod N: %w", protocol.ErrProtocolViolation)
	}

	u := g.scramble(clientEphemeral, s.public)
	secret := g.serverPremaster(aPub, s.verifier, u, s.secret)
	defer modmath.WipeInt(secret)

	m1, m2 := g.proofs(s.username, s.salt, clientEphemeral, s.public, secret)
	if !modmath.Equal(clientProof, m1) {
		return nil, errors.New("authentication failed: invalid proof M1")
	}
	return m2, nil
}

// Clear zeroes the server's ephemeral secret.
func (s *Server) Clear() {
	modmath.WipeInt(s.secret)
	s.secret = nil
	s.public = nil
}
