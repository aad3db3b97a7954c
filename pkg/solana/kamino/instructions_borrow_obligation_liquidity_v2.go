package kamino

import (
	"context"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
)

const (
	BorrowObligationLiquidityV2InstructionArgsSize = 8 // liquidity_amount
)

var borrowObligationLiquidityV2Schema = cpi.NewSchema(
	InstructionBorrowObligationLiquidityV2,
	cpi.Account("source_liquidity", true, false),
	cpi.Account("destination_liquidity", true, false),
	cpi.Account("reserve", true, false),
	cpi.Account("reserve_liquidity_supply", true, false),
	cpi.Account("reserve_fee_receiver", true, false),
	cpi.Account("obligation", true, false),
	cpi.Account("lending_market", false, false),
	cpi.Account("lending_market_authority", false, false),
	cpi.Account("obligation_owner", false, true),
	cpi.Account("pyth_oracle_price", false, false),
	cpi.Account("switchboard_oracle_price", false, false),
	cpi.Account("scope_price", false, false),
	cpi.OptionalAccount("flt_denomination_token_mint", false, false),
	cpi.Account("token_program", false, false),
)

type BorrowObligationLiquidityV2InstructionArgs struct {
	LiquidityAmount uint64
}

type BorrowObligationLiquidityV2InstructionAccounts struct {
	SourceLiquidity        *cpi.AccountInfo
	DestinationLiquidity   *cpi.AccountInfo
	Reserve                *cpi.AccountInfo
	ReserveLiquiditySupply *cpi.AccountInfo
	ReserveFeeReceiver     *cpi.AccountInfo
	Obligation             *cpi.AccountInfo
	LendingMarket          *cpi.AccountInfo
	LendingMarketAuthority *cpi.AccountInfo
	ObligationOwner        *cpi.AccountInfo
	PythOraclePrice        *cpi.AccountInfo
	SwitchboardOraclePrice *cpi.AccountInfo
	ScopePrice             *cpi.AccountInfo

	FltDenominationTokenMint cpi.Optional

	TokenProgram *cpi.AccountInfo
}

func (a *BorrowObligationLiquidityV2InstructionAccounts) accountSet() cpi.AccountSet {
	return cpi.AccountSet{
		"source_liquidity":            cpi.One(a.SourceLiquidity),
		"destination_liquidity":       cpi.One(a.DestinationLiquidity),
		"reserve":                     cpi.One(a.Reserve),
		"reserve_liquidity_supply":    cpi.One(a.ReserveLiquiditySupply),
		"reserve_fee_receiver":        cpi.One(a.ReserveFeeReceiver),
		"obligation":                  cpi.One(a.Obligation),
		"lending_market":              cpi.One(a.LendingMarket),
		"lending_market_authority":    cpi.One(a.LendingMarketAuthority),
		"obligation_owner":            cpi.One(a.ObligationOwner),
		"pyth_oracle_price":           cpi.One(a.PythOraclePrice),
		"switchboard_oracle_price":    cpi.One(a.SwitchboardOraclePrice),
		"scope_price":                 cpi.One(a.ScopePrice),
		"flt_denomination_token_mint": cpi.Maybe(a.FltDenominationTokenMint),
		"token_program":               cpi.One(a.TokenProgram),
	}
}

func NewBorrowObligationLiquidityV2Instruction(
	program *cpi.AccountInfo,
	accounts *BorrowObligationLiquidityV2InstructionAccounts,
	args *BorrowObligationLiquidityV2InstructionArgs,
) (solana.Instruction, []*cpi.AccountInfo, error) {
	return cpi.BuildInstruction(program, borrowObligationLiquidityV2Schema, args, accounts.accountSet())
}

// BorrowObligationLiquidityV2 borrows liquidity from a reserve against the
// obligation's collateral.
func BorrowObligationLiquidityV2(
	ctx context.Context,
	host cpi.Host,
	program *cpi.AccountInfo,
	accounts *BorrowObligationLiquidityV2InstructionAccounts,
	args *BorrowObligationLiquidityV2InstructionArgs,
	signers ...solana.SignerSeeds,
) error {
	return execute(ctx, host, program, borrowObligationLiquidityV2Schema, args, accounts.accountSet(), signers)
}
