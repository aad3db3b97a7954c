package kamino

import (
	"context"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
)

var refreshObligationSchema = cpi.NewSchema(
	InstructionRefreshObligation,
	cpi.Account("obligation", true, false),
	cpi.RepeatedAccounts("reserves", false, false),
)

// RefreshObligationInstructionAccounts carries the obligation followed by
// every reserve it has deposits or borrows in. Reserves are passed in the
// order the obligation records them.
type RefreshObligationInstructionAccounts struct {
	Obligation *cpi.AccountInfo
	Reserves   []*cpi.AccountInfo
}

func (a *RefreshObligationInstructionAccounts) accountSet() cpi.AccountSet {
	return cpi.AccountSet{
		"obligation": cpi.One(a.Obligation),
		"reserves":   cpi.Many(a.Reserves),
	}
}

func NewRefreshObligationInstruction(
	program *cpi.AccountInfo,
	accounts *RefreshObligationInstructionAccounts,
) (solana.Instruction, []*cpi.AccountInfo, error) {
	return cpi.BuildInstruction(program, refreshObligationSchema, nil, accounts.accountSet())
}

// RefreshObligation recomputes an obligation's deposit and borrow values.
func RefreshObligation(
	ctx context.Context,
	host cpi.Host,
	program *cpi.AccountInfo,
	accounts *RefreshObligationInstructionAccounts,
	signers ...solana.SignerSeeds,
) error {
	return execute(ctx, host, program, refreshObligationSchema, nil, accounts.accountSet(), signers)
}
