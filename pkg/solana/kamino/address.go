package kamino

import (
	"crypto/ed25519"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
)

var (
	LendingMarketAuthorityPrefix = []byte("lma")
	UserMetadataPrefix           = []byte("user_meta")
)

type GetLendingMarketAuthorityAddressArgs struct {
	LendingMarket ed25519.PublicKey
}

func GetLendingMarketAuthorityAddress(args *GetLendingMarketAuthorityAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		LendingMarketAuthorityPrefix,
		args.LendingMarket,
	)
}

type GetUserMetadataAddressArgs struct {
	Owner ed25519.PublicKey
}

func GetUserMetadataAddress(args *GetUserMetadataAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		UserMetadataPrefix,
		args.Owner,
	)
}

// GetObligationAddressArgs are the seeds of an obligation. Seed1 and Seed2
// are the default public key unless Tag selects an obligation type that uses
// them.
type GetObligationAddressArgs struct {
	Tag           uint8
	ID            uint8
	Owner         ed25519.PublicKey
	LendingMarket ed25519.PublicKey
	Seed1         ed25519.PublicKey
	Seed2         ed25519.PublicKey
}

func GetObligationAddress(args *GetObligationAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		[]byte{args.Tag},
		[]byte{args.ID},
		args.Owner,
		args.LendingMarket,
		args.Seed1,
		args.Seed2,
	)
}
