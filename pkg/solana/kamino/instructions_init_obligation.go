package kamino

import (
	"context"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
)

const (
	InitObligationInstructionArgsSize = (1 + // tag
		1) // id
)

// Reference: https://github.com/Kamino-Finance/klend/blob/master/programs/klend/src/handlers/handler_init_obligation.rs
var initObligationSchema = cpi.NewSchema(
	InstructionInitObligation,
	cpi.Account("obligation_owner", false, true),
	cpi.Account("fee_payer", true, true),
	cpi.Account("obligation", true, false),
	cpi.Account("lending_market", false, false),
	cpi.Account("seed1_account", false, false),
	cpi.Account("seed2_account", false, false),
	cpi.Account("owner_user_metadata", false, false),
	cpi.Account("rent", false, false),
	cpi.Account("system_program", false, false),
)

type InitObligationInstructionArgs struct {
	Tag uint8
	ID  uint8
}

type InitObligationInstructionAccounts struct {
	ObligationOwner   *cpi.AccountInfo
	FeePayer          *cpi.AccountInfo
	Obligation        *cpi.AccountInfo
	LendingMarket     *cpi.AccountInfo
	Seed1Account      *cpi.AccountInfo
	Seed2Account      *cpi.AccountInfo
	OwnerUserMetadata *cpi.AccountInfo
	Rent              *cpi.AccountInfo
	SystemProgram     *cpi.AccountInfo
}

func (a *InitObligationInstructionAccounts) accountSet() cpi.AccountSet {
	return cpi.AccountSet{
		"obligation_owner":    cpi.One(a.ObligationOwner),
		"fee_payer":           cpi.One(a.FeePayer),
		"obligation":          cpi.One(a.Obligation),
		"lending_market":      cpi.One(a.LendingMarket),
		"seed1_account":       cpi.One(a.Seed1Account),
		"seed2_account":       cpi.One(a.Seed2Account),
		"owner_user_metadata": cpi.One(a.OwnerUserMetadata),
		"rent":                cpi.One(a.Rent),
		"system_program":      cpi.One(a.SystemProgram),
	}
}

func NewInitObligationInstruction(
	program *cpi.AccountInfo,
	accounts *InitObligationInstructionAccounts,
	args *InitObligationInstructionArgs,
) (solana.Instruction, []*cpi.AccountInfo, error) {
	return cpi.BuildInstruction(program, initObligationSchema, args, accounts.accountSet())
}

// InitObligation creates an obligation for the owner in a lending market.
func InitObligation(
	ctx context.Context,
	host cpi.Host,
	program *cpi.AccountInfo,
	accounts *InitObligationInstructionAccounts,
	args *InitObligationInstructionArgs,
	signers ...solana.SignerSeeds,
) error {
	return execute(ctx, host, program, initObligationSchema, args, accounts.accountSet(), signers)
}
