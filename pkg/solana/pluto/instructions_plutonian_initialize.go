package pluto

import (
	"context"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
)

// The trailing program entry is the Anchor event CPI account, so the program
// id appears both as a descriptor and as the invoked program handle.
var plutonianInitializeSchema = cpi.NewSchema(
	InstructionPlutonianInitialize,
	cpi.Account("actor", true, true),
	cpi.Account("user", false, false),
	cpi.Account("protocol", false, false),
	cpi.Account("plutonian", true, false),
	cpi.Account("plutonian_authority", false, false),
	cpi.Account("system_program", false, false),
	cpi.Account("event_authority", false, false),
	cpi.Account("program", false, false),
)

type PlutonianInitializeInstructionAccounts struct {
	Actor              *cpi.AccountInfo
	User               *cpi.AccountInfo
	Protocol           *cpi.AccountInfo
	Plutonian          *cpi.AccountInfo
	PlutonianAuthority *cpi.AccountInfo
	SystemProgram      *cpi.AccountInfo
	EventAuthority     *cpi.AccountInfo
}

func (a *PlutonianInitializeInstructionAccounts) accountSet(program *cpi.AccountInfo) cpi.AccountSet {
	return cpi.AccountSet{
		"actor":               cpi.One(a.Actor),
		"user":                cpi.One(a.User),
		"protocol":            cpi.One(a.Protocol),
		"plutonian":           cpi.One(a.Plutonian),
		"plutonian_authority": cpi.One(a.PlutonianAuthority),
		"system_program":      cpi.One(a.SystemProgram),
		"event_authority":     cpi.One(a.EventAuthority),
		"program":             cpi.One(program),
	}
}

func NewPlutonianInitializeInstruction(
	program *cpi.AccountInfo,
	accounts *PlutonianInitializeInstructionAccounts,
) (solana.Instruction, []*cpi.AccountInfo, error) {
	return cpi.BuildInstruction(program, plutonianInitializeSchema, nil, accounts.accountSet(program))
}

// PlutonianInitialize creates a plutonian position for user.
func PlutonianInitialize(
	ctx context.Context,
	host cpi.Host,
	program *cpi.AccountInfo,
	accounts *PlutonianInitializeInstructionAccounts,
	signers ...solana.SignerSeeds,
) error {
	ix, handles, err := NewPlutonianInitializeInstruction(program, accounts)
	if err != nil {
		return err
	}

	return cpi.Invoke(ctx, host, program, ix, handles, signers...)
}
