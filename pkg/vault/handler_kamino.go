package vault

import (
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/kamino"
)

// The Kamino handlers forward their accounts to klend unchanged. The
// obligation owner signs the outer transaction, so no signer seeds are
// attached.

type KaminoInitObligationAccounts struct {
	kamino.InitObligationInstructionAccounts
	KaminoProgram *cpi.AccountInfo
}

func readKaminoInitObligationAccounts(r *accountReader) *KaminoInitObligationAccounts {
	res := &KaminoInitObligationAccounts{}
	res.ObligationOwner = r.one()
	res.FeePayer = r.one()
	res.Obligation = r.one()
	res.LendingMarket = r.one()
	res.Seed1Account = r.one()
	res.Seed2Account = r.one()
	res.OwnerUserMetadata = r.one()
	res.KaminoProgram = r.one()
	res.Rent = r.one()
	res.SystemProgram = r.one()
	return res
}

func KaminoInitObligation(c *Context, accounts *KaminoInitObligationAccounts, args *kamino.InitObligationInstructionArgs) error {
	for _, signer := range []*cpi.AccountInfo{accounts.ObligationOwner, accounts.FeePayer} {
		if err := requireSigner(signer); err != nil {
			return err
		}
	}
	if err := requireWritable(accounts.FeePayer); err != nil {
		return err
	}
	if err := requireAddress(accounts.KaminoProgram, kamino.PROGRAM_ID); err != nil {
		return err
	}

	if err := kamino.InitObligation(c.ctx, c.host, accounts.KaminoProgram, &accounts.InitObligationInstructionAccounts, args); err != nil {
		return err
	}

	c.log.WithField("obligation", accounts.Obligation.String()).Info("Successfully initialized obligation in Kamino lending protocol")
	return nil
}

type KaminoInitObligationFarmsForReserveAccounts struct {
	kamino.InitObligationFarmsForReserveInstructionAccounts
	KaminoProgram *cpi.AccountInfo
}

func readKaminoInitObligationFarmsForReserveAccounts(r *accountReader) *KaminoInitObligationFarmsForReserveAccounts {
	res := &KaminoInitObligationFarmsForReserveAccounts{}
	res.Owner = r.one()
	res.Obligation = r.one()
	res.LendingMarket = r.one()
	res.Reserve = r.one()
	res.ObligationFarm = r.one()
	res.SystemProgram = r.one()
	res.Rent = r.one()
	res.KaminoProgram = r.one()
	return res
}

func KaminoInitObligationFarmsForReserve(c *Context, accounts *KaminoInitObligationFarmsForReserveAccounts, args *kamino.InitObligationFarmsForReserveInstructionArgs) error {
	if err := requireAddress(accounts.KaminoProgram, kamino.PROGRAM_ID); err != nil {
		return err
	}

	if err := kamino.InitObligationFarmsForReserve(c.ctx, c.host, accounts.KaminoProgram, &accounts.InitObligationFarmsForReserveInstructionAccounts, args); err != nil {
		return err
	}

	c.log.WithField("obligation", accounts.Obligation.String()).Info("Successfully initialized obligation farms for reserve")
	return nil
}

type KaminoRefreshReserveAccounts struct {
	kamino.RefreshReserveInstructionAccounts
	KaminoProgram *cpi.AccountInfo
}

func readKaminoRefreshReserveAccounts(r *accountReader) *KaminoRefreshReserveAccounts {
	res := &KaminoRefreshReserveAccounts{}
	res.Reserve = r.one()
	res.PythOracle = r.one()
	res.SwitchboardPriceOracle = r.one()
	res.ScopePrices = r.one()
	res.KaminoProgram = r.one()
	return res
}

func KaminoRefreshReserve(c *Context, accounts *KaminoRefreshReserveAccounts) error {
	if err := requireAddress(accounts.KaminoProgram, kamino.PROGRAM_ID); err != nil {
		return err
	}

	return kamino.RefreshReserve(c.ctx, c.host, accounts.KaminoProgram, &accounts.RefreshReserveInstructionAccounts)
}

// KaminoRefreshObligationAccounts takes the obligation's reserves from the
// accounts following the program.
type KaminoRefreshObligationAccounts struct {
	kamino.RefreshObligationInstructionAccounts
	KaminoProgram *cpi.AccountInfo
}

func readKaminoRefreshObligationAccounts(r *accountReader) *KaminoRefreshObligationAccounts {
	res := &KaminoRefreshObligationAccounts{}
	res.Obligation = r.one()
	res.KaminoProgram = r.one()
	res.Reserves = r.remaining()
	return res
}

func KaminoRefreshObligation(c *Context, accounts *KaminoRefreshObligationAccounts) error {
	if err := requireAddress(accounts.KaminoProgram, kamino.PROGRAM_ID); err != nil {
		return err
	}

	return kamino.RefreshObligation(c.ctx, c.host, accounts.KaminoProgram, &accounts.RefreshObligationInstructionAccounts)
}

type KaminoDepositAccounts struct {
	kamino.DepositReserveLiquidityAndObligationCollateralV2InstructionAccounts
	KaminoProgram *cpi.AccountInfo
}

func readKaminoDepositAccounts(r *accountReader) *KaminoDepositAccounts {
	res := &KaminoDepositAccounts{}
	res.SourceLiquidity = r.one()
	res.DestinationCollateral = r.one()
	res.Reserve = r.one()
	res.ReserveLiquiditySupply = r.one()
	res.ReserveCollateralMint = r.one()
	res.LendingMarket = r.one()
	res.LendingMarketAuthority = r.one()
	res.Obligation = r.one()
	res.Owner = r.one()
	res.PythOraclePrice = r.one()
	res.SwitchboardOraclePrice = r.one()
	res.ScopePrice = r.one()
	res.FltDenominationTokenMint = r.optional()
	res.TokenProgram = r.one()
	res.KaminoProgram = r.one()
	return res
}

func KaminoDeposit(c *Context, accounts *KaminoDepositAccounts, args *kamino.DepositReserveLiquidityAndObligationCollateralV2InstructionArgs) error {
	if err := requireAddress(accounts.KaminoProgram, kamino.PROGRAM_ID); err != nil {
		return err
	}
	if args.LiquidityAmount == 0 {
		return ErrorInvalidAmount
	}

	if err := kamino.DepositReserveLiquidityAndObligationCollateralV2(c.ctx, c.host, accounts.KaminoProgram, &accounts.DepositReserveLiquidityAndObligationCollateralV2InstructionAccounts, args); err != nil {
		return err
	}

	c.log.WithField("obligation", accounts.Obligation.String()).Infof("Deposited %d into Kamino reserve", args.LiquidityAmount)
	return nil
}

type KaminoBorrowAccounts struct {
	kamino.BorrowObligationLiquidityV2InstructionAccounts
	KaminoProgram *cpi.AccountInfo
}

func readKaminoBorrowAccounts(r *accountReader) *KaminoBorrowAccounts {
	res := &KaminoBorrowAccounts{}
	res.SourceLiquidity = r.one()
	res.DestinationLiquidity = r.one()
	res.Reserve = r.one()
	res.ReserveLiquiditySupply = r.one()
	res.ReserveFeeReceiver = r.one()
	res.Obligation = r.one()
	res.LendingMarket = r.one()
	res.LendingMarketAuthority = r.one()
	res.ObligationOwner = r.one()
	res.PythOraclePrice = r.one()
	res.SwitchboardOraclePrice = r.one()
	res.ScopePrice = r.one()
	res.FltDenominationTokenMint = r.optional()
	res.TokenProgram = r.one()
	res.KaminoProgram = r.one()
	return res
}

func KaminoBorrow(c *Context, accounts *KaminoBorrowAccounts, args *kamino.BorrowObligationLiquidityV2InstructionArgs) error {
	if err := requireAddress(accounts.KaminoProgram, kamino.PROGRAM_ID); err != nil {
		return err
	}
	if args.LiquidityAmount == 0 {
		return ErrorInvalidAmount
	}

	if err := kamino.BorrowObligationLiquidityV2(c.ctx, c.host, accounts.KaminoProgram, &accounts.BorrowObligationLiquidityV2InstructionAccounts, args); err != nil {
		return err
	}

	c.log.WithField("obligation", accounts.Obligation.String()).Infof("Borrowed %d from Kamino reserve", args.LiquidityAmount)
	return nil
}
