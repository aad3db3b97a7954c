package memory

import (
	"bytes"
	"context"

	"github.com/pkg/errors"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/system"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/token"
)

const (
	tokenTransferUnits     = 4_500
	tokenCloseAccountUnits = 3_000
	tokenSyncNativeUnits   = 3_000
)

func processToken(_ context.Context, _ cpi.Host, call *Call) error {
	command, err := token.GetCommand(call.Instruction)
	if err != nil {
		return err
	}

	switch command {
	case token.CommandTransfer:
		v, err := token.DecompileTransfer(call.Instruction)
		if err != nil {
			return errors.Wrap(ErrInvalidAccountData, err.Error())
		}
		if err := call.ConsumeUnits(tokenTransferUnits); err != nil {
			return err
		}
		return tokenTransfer(call.Accounts[0], nil, call.Accounts[1], call.Accounts[2], v.Amount, nil)
	case token.CommandTransfer2:
		v, err := token.DecompileTransfer2(call.Instruction)
		if err != nil {
			return errors.Wrap(ErrInvalidAccountData, err.Error())
		}
		if err := call.ConsumeUnits(tokenTransferUnits); err != nil {
			return err
		}
		return tokenTransfer(call.Accounts[0], call.Accounts[1], call.Accounts[2], call.Accounts[3], v.Amount, &v.Decimals)
	case token.CommandCloseAccount:
		if _, err := token.DecompileCloseAccount(call.Instruction); err != nil {
			return errors.Wrap(ErrInvalidAccountData, err.Error())
		}
		if err := call.ConsumeUnits(tokenCloseAccountUnits); err != nil {
			return err
		}
		return tokenCloseAccount(call.Accounts[0], call.Accounts[1], call.Accounts[2])
	case token.CommandSyncNative:
		if _, err := token.DecompileSyncNative(call.Instruction); err != nil {
			return errors.Wrap(ErrInvalidAccountData, err.Error())
		}
		if err := call.ConsumeUnits(tokenSyncNativeUnits); err != nil {
			return err
		}
		return tokenSyncNative(call.Accounts[0])
	default:
		return errors.Wrapf(solana.ErrIncorrectInstruction, "unsupported token command %d", command)
	}
}

func tokenTransfer(sourceInfo, mintInfo, destInfo, ownerInfo *cpi.AccountInfo, amount uint64, decimals *byte) error {
	source, err := loadTokenAccount(sourceInfo)
	if err != nil {
		return err
	}
	dest, err := loadTokenAccount(destInfo)
	if err != nil {
		return err
	}

	if source.State == token.AccountStateFrozen || dest.State == token.AccountStateFrozen {
		return token.ErrorAccountFrozen
	}
	if !bytes.Equal(source.Mint, dest.Mint) {
		return token.ErrorMintMismatch
	}
	if mintInfo != nil {
		if !mintInfo.Is(source.Mint) {
			return token.ErrorMintMismatch
		}
		mint, err := loadMint(mintInfo)
		if err != nil {
			return err
		}
		if decimals != nil && *decimals != mint.Decimals {
			return token.ErrorMintDecimalsMismatch
		}
	}
	if !ownerInfo.Is(source.Owner) {
		return token.ErrorOwnerMismatch
	}
	if !ownerInfo.IsSigner {
		return ErrMissingRequiredSignature
	}
	if source.Amount < amount {
		return token.ErrorInsufficientFunds
	}

	if sourceInfo.Is(destInfo.Key) {
		return nil
	}

	if dest.Amount+amount < dest.Amount {
		return token.ErrorOverflow
	}
	source.Amount -= amount
	dest.Amount += amount

	// Wrapped SOL moves with its lamports
	if source.IsNativeAccount() {
		if sourceInfo.Lamports < amount {
			return token.ErrorInsufficientFunds
		}
		sourceInfo.Lamports -= amount
		destInfo.Lamports += amount
	}

	sourceInfo.Data = source.Marshal()
	destInfo.Data = dest.Marshal()
	return nil
}

func tokenCloseAccount(accountInfo, destInfo, ownerInfo *cpi.AccountInfo) error {
	account, err := loadTokenAccount(accountInfo)
	if err != nil {
		return err
	}

	if accountInfo.Is(destInfo.Key) {
		return ErrInvalidAccountData
	}
	if !account.IsNativeAccount() && account.Amount != 0 {
		return token.ErrorNonNativeHasBalance
	}

	authority := account.Owner
	if len(account.CloseAuthority) > 0 {
		authority = account.CloseAuthority
	}
	if !ownerInfo.Is(authority) {
		return token.ErrorOwnerMismatch
	}
	if !ownerInfo.IsSigner {
		return ErrMissingRequiredSignature
	}

	destInfo.Lamports += accountInfo.Lamports
	accountInfo.Lamports = 0
	accountInfo.Data = nil
	accountInfo.Owner = append([]byte(nil), system.ProgramKey[:]...)
	return nil
}

func tokenSyncNative(accountInfo *cpi.AccountInfo) error {
	account, err := loadTokenAccount(accountInfo)
	if err != nil {
		return err
	}
	if !account.IsNativeAccount() {
		return token.ErrorNonNativeNotSupported
	}

	rentExemptReserve := *account.IsNative
	if accountInfo.Lamports < rentExemptReserve {
		return ErrInvalidAccountData
	}

	newAmount := accountInfo.Lamports - rentExemptReserve
	if newAmount < account.Amount {
		return ErrInvalidAccountData
	}
	account.Amount = newAmount

	accountInfo.Data = account.Marshal()
	return nil
}

func loadTokenAccount(info *cpi.AccountInfo) (*token.Account, error) {
	if !info.IsOwnedBy(token.ProgramKey) {
		return nil, errors.Wrapf(ErrInvalidAccountData, "%s is not a token account", info)
	}

	var account token.Account
	if !account.Unmarshal(info.Data) || account.State == token.AccountStateUninitialized {
		return nil, token.ErrorUninitializedState
	}
	return &account, nil
}

func loadMint(info *cpi.AccountInfo) (*token.Mint, error) {
	if !info.IsOwnedBy(token.ProgramKey) {
		return nil, errors.Wrapf(ErrInvalidAccountData, "%s is not a mint", info)
	}

	var mint token.Mint
	if !mint.Unmarshal(info.Data) || !mint.IsInitialized {
		return nil, token.ErrorUninitializedState
	}
	return &mint, nil
}
