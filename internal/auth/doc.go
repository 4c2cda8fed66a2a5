// Package auth drives SRP logins and verifier generation from API-shaped
// requests: it authenticates the signed modulus, decodes the wire fields and
// hands the raw values to an Engine.
package auth

//go:generate go tool mockgen -destination=mock_auth.go -package=auth github.com/fzdarsky/pmsrp/internal/auth Engine,ModulusSource
