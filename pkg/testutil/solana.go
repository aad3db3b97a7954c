package testutil

import (
	"bytes"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/system"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/token"
)

func GenerateSolanaKeypair(t *testing.T) ed25519.PrivateKey {
	_, p, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return p
}

func GenerateSolanaKeys(t *testing.T, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := 0; i < n; i++ {
		p, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = p
	}
	return keys
}

// GenerateProgramAddress finds the PDA for seeds under program and returns it
// with the signer seeds that reproduce it.
func GenerateProgramAddress(t *testing.T, program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, solana.SignerSeeds) {
	address, bump, err := solana.FindProgramAddressAndBump(program, seeds...)
	require.NoError(t, err)
	return address, solana.NewSignerSeeds(bump, seeds...)
}

// NewWallet returns a system owned, writable signer holding lamports.
func NewWallet(t *testing.T, lamports uint64) *cpi.AccountInfo {
	return &cpi.AccountInfo{
		Key:        GenerateSolanaKeys(t, 1)[0],
		IsSigner:   true,
		IsWritable: true,
		Owner:      system.ProgramKey[:],
		Lamports:   lamports,
	}
}

// NewAccount returns a plain, non-privileged account handle.
func NewAccount(t *testing.T) *cpi.AccountInfo {
	return cpi.NewAccountInfo(GenerateSolanaKeys(t, 1)[0])
}

// NewMintAccount returns an initialized, writable mint.
func NewMintAccount(t *testing.T, key ed25519.PublicKey, decimals uint8) *cpi.AccountInfo {
	if key == nil {
		key = GenerateSolanaKeys(t, 1)[0]
	}

	mint := token.Mint{
		Decimals:      decimals,
		IsInitialized: true,
	}
	return &cpi.AccountInfo{
		Key:      key,
		Owner:    token.ProgramKey,
		Lamports: system.MinimumBalanceForRentExemption(token.MintSize),
		Data:     mint.Marshal(),
	}
}

// NewTokenAccount returns an initialized, writable token account.
func NewTokenAccount(t *testing.T, key, mint, owner ed25519.PublicKey, amount uint64) *cpi.AccountInfo {
	if key == nil {
		key = GenerateSolanaKeys(t, 1)[0]
	}

	rent := system.MinimumBalanceForRentExemption(token.AccountSize)
	account := token.Account{
		Mint:   mint,
		Owner:  owner,
		Amount: amount,
		State:  token.AccountStateInitialized,
	}

	lamports := rent
	if bytes.Equal(mint, token.NativeMint) {
		account.IsNative = &rent
		lamports += amount
	}

	return &cpi.AccountInfo{
		Key:        key,
		IsWritable: true,
		Owner:      token.ProgramKey,
		Lamports:   lamports,
		Data:       account.Marshal(),
	}
}

// LoadTokenAccount decodes the token account held by info.
func LoadTokenAccount(t *testing.T, info *cpi.AccountInfo) *token.Account {
	var account token.Account
	require.True(t, account.Unmarshal(info.Data))
	return &account
}
