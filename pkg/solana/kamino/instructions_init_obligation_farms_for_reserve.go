package kamino

import (
	"context"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
)

const (
	InitObligationFarmsForReserveInstructionArgsSize = 8 // farms_count
)

var initObligationFarmsForReserveSchema = cpi.NewSchema(
	InstructionInitObligationFarmsForReserve,
	cpi.Account("owner", false, true),
	cpi.Account("obligation", true, false),
	cpi.Account("lending_market", false, false),
	cpi.Account("reserve", false, false),
	cpi.Account("obligation_farm", true, false),
	cpi.Account("system_program", false, false),
	cpi.Account("rent", false, false),
)

type InitObligationFarmsForReserveInstructionArgs struct {
	FarmsCount uint64
}

type InitObligationFarmsForReserveInstructionAccounts struct {
	Owner          *cpi.AccountInfo
	Obligation     *cpi.AccountInfo
	LendingMarket  *cpi.AccountInfo
	Reserve        *cpi.AccountInfo
	ObligationFarm *cpi.AccountInfo
	SystemProgram  *cpi.AccountInfo
	Rent           *cpi.AccountInfo
}

func (a *InitObligationFarmsForReserveInstructionAccounts) accountSet() cpi.AccountSet {
	return cpi.AccountSet{
		"owner":           cpi.One(a.Owner),
		"obligation":      cpi.One(a.Obligation),
		"lending_market":  cpi.One(a.LendingMarket),
		"reserve":         cpi.One(a.Reserve),
		"obligation_farm": cpi.One(a.ObligationFarm),
		"system_program":  cpi.One(a.SystemProgram),
		"rent":            cpi.One(a.Rent),
	}
}

func NewInitObligationFarmsForReserveInstruction(
	program *cpi.AccountInfo,
	accounts *InitObligationFarmsForReserveInstructionAccounts,
	args *InitObligationFarmsForReserveInstructionArgs,
) (solana.Instruction, []*cpi.AccountInfo, error) {
	return cpi.BuildInstruction(program, initObligationFarmsForReserveSchema, args, accounts.accountSet())
}

// InitObligationFarmsForReserve creates the obligation's farm state for a
// reserve.
func InitObligationFarmsForReserve(
	ctx context.Context,
	host cpi.Host,
	program *cpi.AccountInfo,
	accounts *InitObligationFarmsForReserveInstructionAccounts,
	args *InitObligationFarmsForReserveInstructionArgs,
	signers ...solana.SignerSeeds,
) error {
	return execute(ctx, host, program, initObligationFarmsForReserveSchema, args, accounts.accountSet(), signers)
}
