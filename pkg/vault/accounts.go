package vault

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/token"
)

// accountReader hands out an instruction's accounts in declaration order.
// The first shortfall is remembered and every later read returns nil.
type accountReader struct {
	accounts []*cpi.AccountInfo
	next     int
	err      error
}

func newAccountReader(accounts []*cpi.AccountInfo) *accountReader {
	return &accountReader{accounts: accounts}
}

func (r *accountReader) one() *cpi.AccountInfo {
	if r.err != nil {
		return nil
	}
	if r.next >= len(r.accounts) {
		r.err = ErrorAccountNotEnoughKeys
		return nil
	}

	account := r.accounts[r.next]
	r.next++
	return account
}

// optional reads an Option<Account>. A slot holding the executing program id
// is absent.
func (r *accountReader) optional() cpi.Optional {
	account := r.one()
	if account == nil || account.Is(PROGRAM_ID) {
		return cpi.None()
	}
	return cpi.Some(account)
}

func (r *accountReader) remaining() []*cpi.AccountInfo {
	if r.err != nil || r.next >= len(r.accounts) {
		return nil
	}

	rest := r.accounts[r.next:]
	r.next = len(r.accounts)
	return rest
}

func requireSigner(account *cpi.AccountInfo) error {
	if !account.IsSigner {
		return ErrorAccountNotSigner
	}
	return nil
}

func requireWritable(account *cpi.AccountInfo) error {
	if !account.IsWritable {
		return ErrorConstraintMut
	}
	return nil
}

func requireAddress(account *cpi.AccountInfo, expected ed25519.PublicKey) error {
	if !account.Is(expected) {
		return ErrorConstraintAddress
	}
	return nil
}

func requireProgram(account *cpi.AccountInfo, expected ed25519.PublicKey) error {
	if !account.Is(expected) || !account.Executable {
		return ErrorInvalidProgramID
	}
	return nil
}

// requireSeeds checks account is the canonical PDA for seeds under the vault
// program, returning the signer seeds that reproduce it.
func requireSeeds(account *cpi.AccountInfo, seeds ...[]byte) (solana.SignerSeeds, error) {
	address, bump, err := solana.FindProgramAddressAndBump(PROGRAM_ID, seeds...)
	if err != nil || !account.Is(address) {
		return nil, ErrorConstraintSeeds
	}
	return solana.NewSignerSeeds(bump, seeds...), nil
}

func loadProtocol(account *cpi.AccountInfo) (*ProtocolAccount, error) {
	if !account.IsOwnedBy(PROGRAM_ID) {
		return nil, ErrorAccountOwnedByWrongProgram
	}

	var protocol ProtocolAccount
	if err := protocol.Unmarshal(account.Data); err != nil {
		return nil, err
	}
	return &protocol, nil
}

func loadVault(account *cpi.AccountInfo) (*VaultAccount, error) {
	if !account.IsOwnedBy(PROGRAM_ID) {
		return nil, ErrorAccountOwnedByWrongProgram
	}

	var vault VaultAccount
	if err := vault.Unmarshal(account.Data); err != nil {
		return nil, err
	}
	return &vault, nil
}

func loadTokenAccount(account *cpi.AccountInfo) (*token.Account, error) {
	var tokenAccount token.Account
	if !account.IsOwnedBy(token.ProgramKey) || !tokenAccount.Unmarshal(account.Data) {
		return nil, ErrorInvalidTokenAccount
	}
	return &tokenAccount, nil
}

func loadMint(account *cpi.AccountInfo) (*token.Mint, error) {
	var mint token.Mint
	if !account.IsOwnedBy(token.ProgramKey) || !mint.Unmarshal(account.Data) {
		return nil, ErrorInvalidTokenAccount
	}
	return &mint, nil
}

func keysEqual(a, b ed25519.PublicKey) bool {
	return bytes.Equal(a, b)
}
