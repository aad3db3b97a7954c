package memory

import (
	"github.com/pkg/errors"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
)

var (
	ErrComputeBudgetExceeded   = errors.New("compute budget exceeded")
	ErrCallDepth               = errors.New("cross-program invocation call depth too deep")
	ErrProgramNotProvided      = errors.New("program account not provided")
	ErrProgramNotExecutable    = errors.New("program account is not executable")
	ErrUnsupportedProgram      = errors.New("program is not registered with the runtime")
	ErrAccountNotFound         = errors.New("account not found in caller accounts")
	ErrWritablePrivilege       = errors.New("writable privilege escalation")
	ErrSignerPrivilege         = errors.New("signer privilege escalation")
	ErrInvalidSignerSeeds      = errors.New("invalid signer seeds")
	ErrReentrancy              = errors.New("program reentrancy not allowed")
	ErrReadonlyDataModified    = errors.New("instruction modified data of a read-only account")
	ErrExternalAccountModified = errors.New("instruction modified an account it does not own")
	ErrUnbalancedInstruction   = errors.New("sum of account balances before and after instruction do not match")
	ErrNoActiveTransaction     = errors.New("invocation outside of an executing transaction")
	ErrTransactionAborted      = errors.New("transaction aborted by a failed invocation")

	// Returned by the builtin programs
	ErrMissingRequiredSignature = errors.New(string(solana.InstructionErrorMissingRequiredSignature))
	ErrInvalidAccountData       = errors.New(string(solana.InstructionErrorInvalidAccountData))
	ErrNotEnoughAccountKeys     = errors.New(string(solana.InstructionErrorNotEnoughAccountKeys))
)
