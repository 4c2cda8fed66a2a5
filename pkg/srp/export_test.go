package srp

import "math/big"

// Group exposes the derived constants of a validated modulus to tests.
type Group = group

func NewGroup(s *Suite, modulus []byte) (*Group, error) {
	return newGroup(s, modulus)
}

func (g *group) Multiplier() *big.Int {
	return g.k
}

func (g *group) Scramble(aPub, bPub []byte) *big.Int {
	return g.scramble(aPub, bPub)
}

func (g *group) DeriveX(kdf KDF, password []byte, username string, salt []byte) (*big.Int, error) {
	x, err := kdf.derive(g.suite.hash, password, username, salt, g.nBytes)
	if err != nil {
		return nil, err
	}
	return g.toInt(x), nil
}

func (g *group) VerifierFor(x *big.Int) []byte {
	return g.mustEncode(g.mod.Exp(generator, x))
}

func (g *group) ClientPremaster(a, bPub, x, u *big.Int) *big.Int {
	return g.clientPremaster(a, bPub, x, u)
}

func (g *group) ServerPremaster(aPub, v, u, b *big.Int) *big.Int {
	return g.serverPremaster(aPub, v, u, b)
}
