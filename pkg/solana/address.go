package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"math"

	"github.com/jdgcs/ed25519/edwards25519"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32

	pdaMarker = "ProgramDerivedAddress"
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")

	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrNoBumpSeedFound  = errors.New("unable to find a viable program address bump seed")
)

var (
	programHashCtor = sha256.New
)

// CreateProgramAddress mirrors the implementation of the Solana SDK's CreateProgramAddress.
//
// ProgramAddresses are public keys that _do not_ lie on the ed25519 curve to ensure that
// there is no associated private key. In the event that the program and seed parameters
// result in a valid public key, ErrInvalidPublicKey is returned.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L158
func CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	if len(seeds) > maxSeeds {
		return nil, ErrTooManySeeds
	}

	h := programHashCtor()
	for _, s := range seeds {
		if len(s) > maxSeedLength {
			return nil, ErrMaxSeedLengthExceeded
		}

		if _, err := h.Write(s); err != nil {
			return nil, errors.Wrap(err, "failed to hash seed")
		}
	}

	for _, v := range [][]byte{program, []byte(pdaMarker)} {
		if _, err := h.Write(v); err != nil {
			return nil, errors.Wrap(err, "failed to hash seed")
		}
	}

	hash := h.Sum(nil)
	var pub [32]byte
	copy(pub[:], hash)

	// The runtime rejects any derived key that decompresses to a valid
	// EdwardsPoint, since someone could hold its private key.
	//
	// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L182-L187
	var A edwards25519.ExtendedGroupElement
	if A.FromBytes(&pub) {
		return nil, ErrInvalidPublicKey
	}

	return pub[:], nil
}

// FindProgramAddressAndBump mirrors the implementation of the Solana SDK's
// FindProgramAddress. It returns the address and bump seed.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L234
func FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	bumpSeed := []byte{math.MaxUint8}
	for i := 0; i < math.MaxUint8; i++ {
		pub, err := CreateProgramAddress(program, append(seeds, bumpSeed)...)
		if err == nil {
			return pub, bumpSeed[0], nil
		}
		if err != ErrInvalidPublicKey {
			return nil, 0, err
		}

		bumpSeed[0]--
	}

	return nil, 0, ErrNoBumpSeedFound
}

// FindProgramAddress mirrors the implementation of the Solana SDK's FindProgramAddress.
// It only returns the address.
func FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	pub, _, err := FindProgramAddressAndBump(program, seeds...)
	return pub, err
}

// SignerSeeds is the full seed set, bump included, that lets a program sign
// for one of its derived addresses during a cross-program invocation.
type SignerSeeds [][]byte

// NewSignerSeeds returns the signer seeds for an address derived from seeds
// with the provided bump.
func NewSignerSeeds(bump uint8, seeds ...[]byte) SignerSeeds {
	res := make(SignerSeeds, 0, len(seeds)+1)
	for _, seed := range seeds {
		res = append(res, append([]byte(nil), seed...))
	}
	return append(res, []byte{bump})
}

// Bump returns the trailing bump byte, or 0 for an empty seed set.
func (s SignerSeeds) Bump() uint8 {
	if len(s) == 0 || len(s[len(s)-1]) != 1 {
		return 0
	}
	return s[len(s)-1][0]
}

// Address re-derives the program address these seeds sign for.
func (s SignerSeeds) Address(program ed25519.PublicKey) (ed25519.PublicKey, error) {
	return CreateProgramAddress(program, s...)
}

// VerifyProgramAddress checks that address was derived from seeds and bump under
// program.
func VerifyProgramAddress(program, address ed25519.PublicKey, bump uint8, seeds ...[]byte) bool {
	derived, err := NewSignerSeeds(bump, seeds...).Address(program)
	if err != nil {
		return false
	}
	return bytes.Equal(derived, address)
}

// MustPublicKeyFromBase58 decodes a base58 encoded public key, panicking on
// malformed input. It is meant for package-level program id constants.
func MustPublicKeyFromBase58(value string) ed25519.PublicKey {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(errors.Wrapf(err, "invalid base58 public key %q", value))
	}
	if len(decoded) != ed25519.PublicKeySize {
		panic(errors.Errorf("invalid public key length for %q: %d", value, len(decoded)))
	}
	return decoded
}

// PublicKeyToBase58 is a convenience for log fields and error messages.
func PublicKeyToBase58(key ed25519.PublicKey) string {
	return base58.Encode(key)
}
