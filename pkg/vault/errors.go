package vault

import (
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
)

// Program errors start at Anchor's custom error offset.
const customErrorOffset = 6000

const (
	ErrorInvalidAmount solana.CustomError = iota + customErrorOffset
	ErrorInsufficientSolToWrap
	ErrorInsufficientWSolToUnwrap
	ErrorProtocolFrozen
	ErrorInvalidAuthority
	ErrorInvalidTokenAccount
	ErrorInvalidDestinationAccount
	ErrorOperationNotAllowed
	ErrorUnauthorizedAccess
	ErrorAlreadyFrozen
	ErrorAlreadyUnfrozen
	ErrorVaultFrozen
	ErrorInvalidVaultAuthority
	ErrorInvalidVaultFeeAuthority
	ErrorInvalidDepositTokenMint
	ErrorInvalidProtocol
	ErrorArithmeticOverflow
	ErrorInvalidVaultName
)

// Anchor framework errors raised while dispatching an instruction and
// validating its accounts.
//
// Reference: https://github.com/coral-xyz/anchor/blob/v0.29.0/lang/src/error.rs
const (
	ErrorInstructionFallbackNotFound  solana.CustomError = 101
	ErrorInstructionDidNotDeserialize solana.CustomError = 102

	ErrorConstraintMut     solana.CustomError = 2000
	ErrorConstraintSeeds   solana.CustomError = 2006
	ErrorConstraintAddress solana.CustomError = 2012

	ErrorAccountDiscriminatorMismatch solana.CustomError = 3002
	ErrorAccountNotEnoughKeys         solana.CustomError = 3005
	ErrorAccountOwnedByWrongProgram   solana.CustomError = 3007
	ErrorInvalidProgramID             solana.CustomError = 3008
	ErrorAccountNotSigner             solana.CustomError = 3010

	ErrorDeclaredProgramIDMismatch solana.CustomError = 4100
)

var errorMessages = map[solana.CustomError]string{
	ErrorInvalidAmount:             "Invalid amount",
	ErrorInsufficientSolToWrap:     "Insufficient SOL to wrap",
	ErrorInsufficientWSolToUnwrap:  "Insufficient WSOL to unwrap",
	ErrorProtocolFrozen:            "Protocol is frozen",
	ErrorInvalidAuthority:          "Invalid authority",
	ErrorInvalidTokenAccount:       "Invalid token account",
	ErrorInvalidDestinationAccount: "Invalid destination account",
	ErrorOperationNotAllowed:       "Operation not allowed",
	ErrorUnauthorizedAccess:        "Unauthorized access",
	ErrorAlreadyFrozen:             "Already frozen",
	ErrorAlreadyUnfrozen:           "Already unfrozen",
	ErrorVaultFrozen:               "Vault is frozen",
	ErrorInvalidVaultAuthority:     "Invalid vault authority",
	ErrorInvalidVaultFeeAuthority:  "Invalid vault fee authority",
	ErrorInvalidDepositTokenMint:   "Invalid deposit token mint",
	ErrorInvalidProtocol:           "Invalid protocol",
	ErrorArithmeticOverflow:        "Arithmetic overflow",
	ErrorInvalidVaultName:          "Vault name is too long",

	ErrorInstructionFallbackNotFound:  "Fallback functions are not supported",
	ErrorInstructionDidNotDeserialize: "The program could not deserialize the given instruction",
	ErrorConstraintMut:                "A mut constraint was violated",
	ErrorConstraintSeeds:              "A seeds constraint was violated",
	ErrorConstraintAddress:            "An address constraint was violated",
	ErrorAccountDiscriminatorMismatch: "Account discriminator did not match what was expected",
	ErrorAccountNotEnoughKeys:         "Not enough account keys given to the instruction",
	ErrorAccountOwnedByWrongProgram:   "The given account is owned by a different program than expected",
	ErrorInvalidProgramID:             "Program ID was not as expected",
	ErrorAccountNotSigner:             "The given account did not sign",
	ErrorDeclaredProgramIDMismatch:    "The declared program id does not match the actual program id",
}

// ErrorMessage returns the human readable message for a vault error code.
func ErrorMessage(code solana.CustomError) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return code.Error()
}
