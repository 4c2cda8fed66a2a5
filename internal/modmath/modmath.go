// Package modmath implements the modular arithmetic and fixed-width integer
// encodings used by the SRP packages. Exponentiation and multiplication run on
// constant-time saferith naturals; big.Int is used for parsing, comparisons and
// public values.
package modmath

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// ByteOrder selects how integers map to byte strings.
type ByteOrder int

// Supported byte orders.
const (
	BigEndian ByteOrder = iota
	LittleEndian
)

// String returns the byte order name.
func (o ByteOrder) String() string {
	if o == LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

// Int parses b as an unsigned integer.
func (o ByteOrder) Int(b []byte) *big.Int {
	if o == LittleEndian {
		return new(big.Int).SetBytes(Reverse(b))
	}
	return new(big.Int).SetBytes(b)
}

// Bytes encodes x into exactly size bytes, padding with zeros on the
// most-significant side.
func (o ByteOrder) Bytes(x *big.Int, size int) ([]byte, error) {
	if x.Sign() < 0 {
		return nil, errors.New("cannot encode negative integer")
	}
	if (x.BitLen()+7)/8 > size {
		return nil, fmt.Errorf("integer of %d bits does not fit in %d bytes", x.BitLen(), size)
	}

	buf := x.FillBytes(make([]byte, size))
	if o == LittleEndian {
		return Reverse(buf), nil
	}
	return buf, nil
}

// Reverse returns a reversed copy of b.
func Reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}

// Equal reports whether a and b are equal in constant time.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	clear(b)
}

// WipeInt sets x to zero.
func WipeInt(x *big.Int) {
	if x != nil {
		x.SetInt64(0)
	}
}

// Modulus is an odd modulus N with the constant-time contexts for N and N-1.
type Modulus struct {
	n         *big.Int
	nMinusOne *big.Int
	size      int

	mod         *saferith.Modulus
	modMinusOne *saferith.Modulus
}

// NewModulus prepares n for modular arithmetic. n must be at least 3; a
// smaller modulus is a programming error and panics.
func NewModulus(n *big.Int) *Modulus {
	if n == nil || n.Cmp(two) <= 0 {
		panic("modmath: modulus must be at least 3")
	}

	nMinusOne := new(big.Int).Sub(n, one)
	return &Modulus{
		n:           new(big.Int).Set(n),
		nMinusOne:   nMinusOne,
		size:        (n.BitLen() + 7) / 8,
		mod:         saferith.ModulusFromBytes(n.Bytes()),
		modMinusOne: saferith.ModulusFromNat(toNat(nMinusOne)),
	}
}

// Int returns a copy of N.
func (m *Modulus) Int() *big.Int {
	return new(big.Int).Set(m.n)
}

// MinusOne returns a copy of N-1.
func (m *Modulus) MinusOne() *big.Int {
	return new(big.Int).Set(m.nMinusOne)
}

// Bits returns the bit length of N.
func (m *Modulus) Bits() int {
	return m.n.BitLen()
}

// Size returns the byte length of N, the width of every padded group element.
func (m *Modulus) Size() int {
	return m.size
}

// Reduce returns x mod N.
func (m *Modulus) Reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, m.n)
}

// IsZero reports whether x ≡ 0 mod N.
func (m *Modulus) IsZero(x *big.Int) bool {
	return m.Reduce(x).Sign() == 0
}

// InRange reports whether 1 < x < N-1.
func (m *Modulus) InRange(x *big.Int) bool {
	return x.Cmp(one) > 0 && x.Cmp(m.nMinusOne) < 0
}

// Exp returns base^exp mod N.
func (m *Modulus) Exp(base, exp *big.Int) *big.Int {
	z := new(saferith.Nat).Exp(toNat(m.Reduce(base)), toNat(exp), m.mod)
	return fromNat(z)
}

// Mul returns x*y mod N.
func (m *Modulus) Mul(x, y *big.Int) *big.Int {
	z := new(saferith.Nat).ModMul(toNat(m.Reduce(x)), toNat(m.Reduce(y)), m.mod)
	return fromNat(z)
}

// Add returns x+y mod N.
func (m *Modulus) Add(x, y *big.Int) *big.Int {
	z := new(saferith.Nat).ModAdd(toNat(m.Reduce(x)), toNat(m.Reduce(y)), m.mod)
	return fromNat(z)
}

// Sub returns x-y mod N, always in [0, N).
func (m *Modulus) Sub(x, y *big.Int) *big.Int {
	z := new(saferith.Nat).ModSub(toNat(m.Reduce(x)), toNat(m.Reduce(y)), m.mod)
	return fromNat(z)
}

// ExponentMulAdd returns (u*x + a) mod (N-1), the client-side SRP exponent.
// Reducing by the group order keeps the exponent within the width of N.
func (m *Modulus) ExponentMulAdd(u, x, a *big.Int) *big.Int {
	reduce := func(v *big.Int) *saferith.Nat {
		return toNat(new(big.Int).Mod(v, m.nMinusOne))
	}

	ux := new(saferith.Nat).ModMul(reduce(u), reduce(x), m.modMinusOne)
	z := new(saferith.Nat).ModAdd(ux, reduce(a), m.modMinusOne)
	return fromNat(z)
}

// CheckSafePrime verifies that n is a safe prime for which 2 generates the
// full group: n ≡ 3 mod 8, (n-1)/2 is prime and 2^((n-1)/2) ≡ -1 mod n.
func CheckSafePrime(n *big.Int) error {
	if n.Cmp(two) <= 0 {
		return errors.New("modulus too small")
	}

	// 2 is a quadratic non-residue exactly when n is 3 or 5 mod 8, and
	// (n-1)/2 odd rules out 5.
	if n.Bit(0) != 1 || n.Bit(1) != 1 || n.Bit(2) != 0 {
		return errors.New("modulus is not 3 mod 8")
	}

	half := new(big.Int).Rsh(n, 1)
	if !half.ProbablyPrime(10) {
		return errors.New("modulus is not a safe prime")
	}

	// Lucas test with base 2. With (n-1)/2 prime this proves n prime and
	// shows 2 is not a square.
	nMinusOne := new(big.Int).Sub(n, one)
	if new(big.Int).Exp(two, half, n).Cmp(nMinusOne) != 0 {
		return errors.New("modulus is not prime")
	}

	return nil
}

func toNat(x *big.Int) *saferith.Nat {
	return new(saferith.Nat).SetBytes(x.Bytes())
}

func fromNat(z *saferith.Nat) *big.Int {
	return new(big.Int).SetBytes(z.Bytes())
}
