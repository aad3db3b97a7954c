package kamino

import (
	"context"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
)

// PROGRAM_ID is the Kamino lending (klend) program.
var (
	PROGRAM_ADDRESS = "KLend2g3cP87fffoy8q1mQqGKjrxjC8boSyAYavgmjD"
	PROGRAM_ID      = solana.MustPublicKeyFromBase58(PROGRAM_ADDRESS)
)

// Instruction names, as compiled into the klend program. The Anchor selector
// of each is the first 8 bytes of sha256("global:" + name).
const (
	InstructionInitObligation                                   = "init_obligation"
	InstructionInitObligationFarmsForReserve                    = "init_obligation_farms_for_reserve"
	InstructionRefreshReserve                                   = "refresh_reserve"
	InstructionRefreshObligation                                = "refresh_obligation"
	InstructionDepositReserveLiquidityAndObligationCollateralV2 = "deposit_reserve_liquidity_and_obligation_collateral_v2"
	InstructionBorrowObligationLiquidityV2                      = "borrow_obligation_liquidity_v2"
)

func execute(
	ctx context.Context,
	host cpi.Host,
	program *cpi.AccountInfo,
	schema cpi.Schema,
	args interface{},
	set cpi.AccountSet,
	signers []solana.SignerSeeds,
) error {
	ix, handles, err := cpi.BuildInstruction(program, schema, args, set)
	if err != nil {
		return err
	}

	return cpi.Invoke(ctx, host, program, ix, handles, signers...)
}
