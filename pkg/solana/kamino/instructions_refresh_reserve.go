package kamino

import (
	"context"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
)

var refreshReserveSchema = cpi.NewSchema(
	InstructionRefreshReserve,
	cpi.Account("reserve", true, false),
	cpi.Account("pyth_oracle", false, false),
	cpi.Account("switchboard_price_oracle", false, false),
	cpi.Account("scope_prices", false, false),
)

type RefreshReserveInstructionAccounts struct {
	Reserve                *cpi.AccountInfo
	PythOracle             *cpi.AccountInfo
	SwitchboardPriceOracle *cpi.AccountInfo
	ScopePrices            *cpi.AccountInfo
}

func (a *RefreshReserveInstructionAccounts) accountSet() cpi.AccountSet {
	return cpi.AccountSet{
		"reserve":                  cpi.One(a.Reserve),
		"pyth_oracle":              cpi.One(a.PythOracle),
		"switchboard_price_oracle": cpi.One(a.SwitchboardPriceOracle),
		"scope_prices":             cpi.One(a.ScopePrices),
	}
}

func NewRefreshReserveInstruction(
	program *cpi.AccountInfo,
	accounts *RefreshReserveInstructionAccounts,
) (solana.Instruction, []*cpi.AccountInfo, error) {
	return cpi.BuildInstruction(program, refreshReserveSchema, nil, accounts.accountSet())
}

// RefreshReserve updates a reserve's interest and oracle prices.
func RefreshReserve(
	ctx context.Context,
	host cpi.Host,
	program *cpi.AccountInfo,
	accounts *RefreshReserveInstructionAccounts,
	signers ...solana.SignerSeeds,
) error {
	return execute(ctx, host, program, refreshReserveSchema, nil, accounts.accountSet(), signers)
}
