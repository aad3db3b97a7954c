package pluto

import (
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
)

// PROGRAM_ID is the Pluto leverage program.
var (
	PROGRAM_ADDRESS = "DNcR7b5ZpU7X4nTa62sTmroyvsSa52d66hunbCaMUjq2"
	PROGRAM_ID      = solana.MustPublicKeyFromBase58(PROGRAM_ADDRESS)
)

const (
	InstructionPlutonianInitialize = "plutonian_initialize"
)
