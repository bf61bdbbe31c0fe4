package henc

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
)

// InsufficientDepthError is returned when the multiplicative depth required
// to evaluate a polynomial exceeds what the modulus chain can absorb. This
// is a parameter-design-time error: the caller must provision a deeper
// chain, retrying cannot help.
type InsufficientDepthError struct {
	Degree   int
	Depth    int
	MaxDepth int
}

func (e InsufficientDepthError) Error() string {
	return fmt.Sprintf("not enough ciphertext levels for a degree %d polynomial: depth %d exceeds the budget of %d", e.Degree, e.Depth, e.MaxDepth)
}

// ZeroExponentError is returned when an exponentiation is requested with an
// exponent smaller than one. Evaluating x^0 would require a multiplication
// by the zero plaintext at the top level, yielding a transparent ciphertext
// that decrypts without the secret key.
type ZeroExponentError struct {
	Exponent int
}

func (e ZeroExponentError) Error() string {
	return fmt.Sprintf("exponent must be positive, got %d: x^0 would produce a transparent ciphertext", e.Exponent)
}

// TransparentCiphertextError is returned when an operation would produce a
// ciphertext whose content is trivially recoverable without the secret key,
// such as a replication with count zero. Security-relevant: the operation
// aborts, it never silently continues.
type TransparentCiphertextError struct {
	Op string
}

func (e TransparentCiphertextError) Error() string {
	return fmt.Sprintf("cannot %s: result would be a transparent ciphertext", e.Op)
}

// LevelScaleMismatchError reports two ciphertexts that cannot be aligned for
// addition. It is unreachable when the evaluation protocol of this package
// is followed and is therefore raised as a panic, not returned.
type LevelScaleMismatchError struct {
	Level0, Level1 int
	Scale0, Scale1 rlwe.Scale
}

func (e LevelScaleMismatchError) Error() string {
	return fmt.Sprintf("ciphertexts cannot be aligned: levels %d != %d, scales %f != %f", e.Level0, e.Level1, e.Scale0.Float64(), e.Scale1.Float64())
}
