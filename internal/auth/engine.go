package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/fzdarsky/pmsrp/pkg/srp"
)

// ModulusSource authenticates an armored modulus and returns its raw bytes.
// *modulus.Verifier satisfies it.
type ModulusSource interface {
	Decode(armored string) ([]byte, error)
}

// ProveParams are the decoded inputs of one login.
type ProveParams struct {
	Username        string
	Password        []byte
	Salt            []byte
	ServerEphemeral []byte
	Version         int
}

// Engine performs the SRP computations over an authenticated modulus.
type Engine interface {
	// Prove runs the client side of one exchange and returns its proofs.
	Prove(ctx context.Context, modulus []byte, params ProveParams) (*srp.Proofs, error)
	// Register returns a fresh verifier for password.
	Register(ctx context.Context, modulus, password []byte) (*srp.Verifier, error)
}

// SRPEngine is the Engine backed by pkg/srp. The zero value uses the Proton
// suite.
type SRPEngine struct {
	Suite *srp.Suite
}

func (e SRPEngine) suite() *srp.Suite {
	if e.Suite == nil {
		return srp.Proton
	}
	return e.Suite
}

// Prove implements Engine.
func (e SRPEngine) Prove(ctx context.Context, modulus []byte, params ProveParams) (*srp.Proofs, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, err := srp.NewClient(params.Password, modulus,
		srp.WithSuite(e.suite()),
		srp.WithUsername(params.Username),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SRP client: %w", err)
	}
	defer client.Clear()

	if _, err := client.GetChallenge(); err != nil {
		return nil, fmt.Errorf("failed to generate client ephemeral: %w", err)
	}

	switch r := client.ProcessChallenge(params.Salt, params.ServerEphemeral, params.Version).(type) {
	case srp.Accepted:
		return &r.Proofs, nil
	case srp.Rejected:
		return nil, r.Err
	default:
		return nil, errors.New("unexpected challenge result")
	}
}

// Register implements Engine.
func (e SRPEngine) Register(ctx context.Context, modulus, password []byte) (*srp.Verifier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gen, err := srp.NewVerifierGenerator(password, modulus, srp.WithSuite(e.suite()))
	if err != nil {
		return nil, fmt.Errorf("failed to create verifier generator: %w", err)
	}
	defer gen.Clear()

	return gen.Compute()
}
