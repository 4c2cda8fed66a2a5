package srp

import (
	"fmt"
	"io"

	"github.com/fzdarsky/pmsrp/internal/modmath"
)

// Verifier is the registration record a server stores for an account.
type Verifier struct {
	Version  int
	Salt     []byte
	Verifier []byte
}

// VerifierGenerator derives verifiers for new or changed passwords.
type VerifierGenerator struct {
	group    *group
	username string
	password []byte
	random   io.Reader
}

// NewVerifierGenerator validates modulus and returns a generator for password.
func NewVerifierGenerator(password, modulus []byte, opts ...Option) (*VerifierGenerator, error) {
	o := newOptions(opts)

	g, err := newGroup(o.suite, modulus)
	if err != nil {
		return nil, err
	}

	return &VerifierGenerator{
		group:    g,
		username: o.username,
		password: append([]byte(nil), password...),
		random:   o.random,
	}, nil
}

// Compute draws a fresh salt and returns v = g^x mod N for the suite's current
// version. Every call uses a new salt.
func (vg *VerifierGenerator) Compute() (*Verifier, error) {
	g := vg.group
	version := g.suite.CurrentVersion()

	kdf, err := g.suite.KDF(version)
	if err != nil {
		return nil, err
	}

	salt := make([]byte, g.suite.SaltSize())
	if _, err := io.ReadFull(vg.random, salt); err != nil {
		return nil, fmt.Errorf("failed to generate random salt: %w", err)
	}

	xBytes, err := kdf.derive(g.suite.hash, vg.password, vg.username, salt, g.nBytes)
	if err != nil {
		return nil, err
	}
	x := g.toInt(xBytes)
	modmath.Wipe(xBytes)
	defer modmath.WipeInt(x)

	return &Verifier{
		Version:  version,
		Salt:     salt,
		Verifier: g.mustEncode(g.mod.Exp(generator, x)),
	}, nil
}

// Clear zeroes the password held by the generator.
func (vg *VerifierGenerator) Clear() {
	modmath.Wipe(vg.password)
	vg.password = nil
}
