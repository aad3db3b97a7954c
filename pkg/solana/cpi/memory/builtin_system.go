package memory

import (
	"context"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/system"
)

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/system_instruction.rs
const (
	systemErrorAccountAlreadyInUse solana.CustomError = iota
	systemErrorResultWithNegativeLamports
)

const (
	systemCreateAccountUnits = 150
	systemTransferUnits      = 150
)

func processSystem(_ context.Context, _ cpi.Host, call *Call) error {
	if len(call.Instruction.Data) < 4 {
		return solana.ErrIncorrectInstruction
	}

	if v, err := system.DecompileCreateAccount(call.Instruction); err == nil {
		if err := call.ConsumeUnits(systemCreateAccountUnits); err != nil {
			return err
		}
		return systemCreateAccount(call, v)
	}

	if v, err := system.DecompileTransfer(call.Instruction); err == nil {
		if err := call.ConsumeUnits(systemTransferUnits); err != nil {
			return err
		}
		return systemTransfer(call, v)
	}

	return errors.Wrapf(solana.ErrIncorrectInstruction, "unsupported system command %d", binary.LittleEndian.Uint32(call.Instruction.Data))
}

func systemCreateAccount(call *Call, v *system.DecompiledCreateAccount) error {
	funder, address := call.Accounts[0], call.Accounts[1]
	if !funder.IsSigner || !address.IsSigner {
		return ErrMissingRequiredSignature
	}
	if address.Lamports > 0 || len(address.Data) > 0 || !isSystemOwned(address) {
		return systemErrorAccountAlreadyInUse
	}
	if funder.Lamports < v.Lamports {
		return systemErrorResultWithNegativeLamports
	}

	funder.Lamports -= v.Lamports
	address.Lamports = v.Lamports
	address.Data = make([]byte, v.Size)
	address.Owner = v.Owner
	return nil
}

func systemTransfer(call *Call, v *system.DecompiledTransfer) error {
	from, to := call.Accounts[0], call.Accounts[1]
	if !from.IsSigner {
		return ErrMissingRequiredSignature
	}
	if len(from.Data) > 0 || !isSystemOwned(from) {
		return errors.Errorf("transfer from %s: account must not carry data", from)
	}
	if from.Lamports < v.Lamports {
		return systemErrorResultWithNegativeLamports
	}

	// from and to may share a view, so debit before credit
	from.Lamports -= v.Lamports
	to.Lamports += v.Lamports
	return nil
}

func isSystemOwned(account *cpi.AccountInfo) bool {
	return len(account.Owner) == 0 || account.IsOwnedBy(system.ProgramKey[:])
}
