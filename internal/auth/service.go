package auth

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/fzdarsky/pmsrp/internal/logging"
	"github.com/fzdarsky/pmsrp/pkg/codec"
	"github.com/fzdarsky/pmsrp/pkg/protocol"
	"github.com/fzdarsky/pmsrp/pkg/srp"
)

// Service handles login and verifier requests.
type Service struct {
	source  ModulusSource
	engine  Engine
	logger  *logging.Logger
	workers int
}

// NewService creates a Service. workers bounds GenerateVerifiers; values below
// 1 use GOMAXPROCS.
func NewService(source ModulusSource, engine Engine, logger *logging.Logger, workers int) *Service {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Service{
		source:  source,
		engine:  engine,
		logger:  logger,
		workers: workers,
	}
}

// Login computes the client ephemeral and proofs for req. No SRP computation
// runs unless the modulus signature verifies.
func (s *Service) Login(ctx context.Context, req *protocol.LoginRequest) (*protocol.LoginResponse, error) {
	ctx = logging.WithFields(ctx, map[string]any{
		"flow":     "login",
		"username": req.Username,
		"version":  req.Version,
	})

	salt, err := decodeSalt(req.Salt, req.Version)
	if err != nil {
		s.logger.WarnContext(ctx, "invalid salt", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("salt: %w", err)
	}
	serverEphemeral, err := codec.DecodeBase64(req.ServerEphemeral)
	if err != nil {
		s.logger.WarnContext(ctx, "invalid server ephemeral encoding")
		return nil, fmt.Errorf("server ephemeral: %w", err)
	}

	modulus, err := s.source.Decode(req.Modulus)
	if err != nil {
		s.logger.WarnContext(ctx, "modulus verification failed", map[string]any{"error": err.Error()})
		return nil, err
	}
	s.logger.DebugContext(ctx, "modulus verified", map[string]any{"modulus_bits": len(modulus) * 8})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	proofs, err := s.engine.Prove(ctx, modulus, ProveParams{
		Username:        req.Username,
		Password:        []byte(req.Password),
		Salt:            salt,
		ServerEphemeral: serverEphemeral,
		Version:         req.Version,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "challenge rejected", map[string]any{"error": err.Error()})
		return nil, err
	}
	s.logger.InfoContext(ctx, "client proof computed")

	return &protocol.LoginResponse{
		Username:            req.Username,
		ClientEphemeral:     codec.EncodeBase64(proofs.ClientEphemeral),
		ClientProof:         codec.EncodeBase64(proofs.ClientProof),
		ExpectedServerProof: codec.EncodeBase64(proofs.ExpectedServerProof),
		SharedSession:       req.SRPSession,
	}, nil
}

// GenerateVerifier returns a fresh salt and verifier for req.
func (s *Service) GenerateVerifier(ctx context.Context, req *protocol.VerifierRequest) (*protocol.VerifierResponse, error) {
	ctx = logging.WithFields(ctx, map[string]any{"flow": "verifier"})

	modulus, err := s.source.Decode(req.Modulus)
	if err != nil {
		s.logger.WarnContext(ctx, "modulus verification failed", map[string]any{"error": err.Error()})
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, err := s.engine.Register(ctx, modulus, []byte(req.Password))
	if err != nil {
		s.logger.ErrorContext(ctx, "verifier generation failed", map[string]any{"error": err.Error()})
		return nil, err
	}
	s.logger.InfoContext(ctx, "verifier generated", map[string]any{"version": v.Version})

	return &protocol.VerifierResponse{
		Version:  v.Version,
		Salt:     codec.EncodeBase64(v.Salt),
		Verifier: codec.EncodeBase64(v.Verifier),
	}, nil
}

// GenerateVerifiers runs GenerateVerifier for every request on a bounded pool.
// Responses are returned in request order; the first failure cancels the
// remaining jobs.
func (s *Service) GenerateVerifiers(ctx context.Context, reqs []protocol.VerifierRequest) ([]*protocol.VerifierResponse, error) {
	responses := make([]*protocol.VerifierResponse, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range reqs {
		g.Go(func() error {
			resp, err := s.GenerateVerifier(logging.WithFields(ctx, map[string]any{"request": i}), &reqs[i])
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			responses[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "verifier batch complete", map[string]any{
		"count":   len(reqs),
		"workers": s.workers,
	})
	return responses, nil
}

// decodeSalt enforces the fixed salt length of the bcrypt-based versions.
// Unknown versions are left for the engine to reject.
func decodeSalt(s string, version int) ([]byte, error) {
	if kdf, err := srp.Proton.KDF(version); err == nil && kdf == srp.KDFProtonV3 {
		return codec.DecodeBase64Len(s, srp.Proton.SaltSize())
	}
	return codec.DecodeBase64(s)
}
