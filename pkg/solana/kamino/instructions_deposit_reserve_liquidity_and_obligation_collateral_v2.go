package kamino

import (
	"context"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
)

const (
	DepositReserveLiquidityAndObligationCollateralV2InstructionArgsSize = 8 // liquidity_amount
)

var depositReserveLiquidityAndObligationCollateralV2Schema = cpi.NewSchema(
	InstructionDepositReserveLiquidityAndObligationCollateralV2,
	cpi.Account("source_liquidity", true, false),
	cpi.Account("destination_collateral", true, false),
	cpi.Account("reserve", true, false),
	cpi.Account("reserve_liquidity_supply", true, false),
	cpi.Account("reserve_collateral_mint", true, false),
	cpi.Account("lending_market", false, false),
	cpi.Account("lending_market_authority", false, false),
	cpi.Account("obligation", true, false),
	cpi.Account("owner", false, true),
	cpi.Account("pyth_oracle_price", false, false),
	cpi.Account("switchboard_oracle_price", false, false),
	cpi.Account("scope_price", false, false),
	cpi.OptionalAccount("flt_denomination_token_mint", false, false),
	cpi.Account("token_program", false, false),
)

type DepositReserveLiquidityAndObligationCollateralV2InstructionArgs struct {
	LiquidityAmount uint64
}

type DepositReserveLiquidityAndObligationCollateralV2InstructionAccounts struct {
	SourceLiquidity        *cpi.AccountInfo
	DestinationCollateral  *cpi.AccountInfo
	Reserve                *cpi.AccountInfo
	ReserveLiquiditySupply *cpi.AccountInfo
	ReserveCollateralMint  *cpi.AccountInfo
	LendingMarket          *cpi.AccountInfo
	LendingMarketAuthority *cpi.AccountInfo
	Obligation             *cpi.AccountInfo
	Owner                  *cpi.AccountInfo
	PythOraclePrice        *cpi.AccountInfo
	SwitchboardOraclePrice *cpi.AccountInfo
	ScopePrice             *cpi.AccountInfo

	// Only passed for reserves denominated through a farm token
	FltDenominationTokenMint cpi.Optional

	TokenProgram *cpi.AccountInfo
}

func (a *DepositReserveLiquidityAndObligationCollateralV2InstructionAccounts) accountSet() cpi.AccountSet {
	return cpi.AccountSet{
		"source_liquidity":            cpi.One(a.SourceLiquidity),
		"destination_collateral":      cpi.One(a.DestinationCollateral),
		"reserve":                     cpi.One(a.Reserve),
		"reserve_liquidity_supply":    cpi.One(a.ReserveLiquiditySupply),
		"reserve_collateral_mint":     cpi.One(a.ReserveCollateralMint),
		"lending_market":              cpi.One(a.LendingMarket),
		"lending_market_authority":    cpi.One(a.LendingMarketAuthority),
		"obligation":                  cpi.One(a.Obligation),
		"owner":                       cpi.One(a.Owner),
		"pyth_oracle_price":           cpi.One(a.PythOraclePrice),
		"switchboard_oracle_price":    cpi.One(a.SwitchboardOraclePrice),
		"scope_price":                 cpi.One(a.ScopePrice),
		"flt_denomination_token_mint": cpi.Maybe(a.FltDenominationTokenMint),
		"token_program":               cpi.One(a.TokenProgram),
	}
}

func NewDepositReserveLiquidityAndObligationCollateralV2Instruction(
	program *cpi.AccountInfo,
	accounts *DepositReserveLiquidityAndObligationCollateralV2InstructionAccounts,
	args *DepositReserveLiquidityAndObligationCollateralV2InstructionArgs,
) (solana.Instruction, []*cpi.AccountInfo, error) {
	return cpi.BuildInstruction(program, depositReserveLiquidityAndObligationCollateralV2Schema, args, accounts.accountSet())
}

// DepositReserveLiquidityAndObligationCollateralV2 deposits liquidity into a
// reserve and posts the minted collateral to the obligation.
func DepositReserveLiquidityAndObligationCollateralV2(
	ctx context.Context,
	host cpi.Host,
	program *cpi.AccountInfo,
	accounts *DepositReserveLiquidityAndObligationCollateralV2InstructionAccounts,
	args *DepositReserveLiquidityAndObligationCollateralV2InstructionArgs,
	signers ...solana.SignerSeeds,
) error {
	return execute(ctx, host, program, depositReserveLiquidityAndObligationCollateralV2Schema, args, accounts.accountSet(), signers)
}
