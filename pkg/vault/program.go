package vault

import (
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
)

// PROGRAM_ID is the MirrorFi vault program.
var (
	PROGRAM_ADDRESS = "5NK8X7nuDaVB8ZhLGsbsUSXiFszbXjwSUp2FZN1vHA55"
	PROGRAM_ID      = solana.MustPublicKeyFromBase58(PROGRAM_ADDRESS)
)

const (
	InstructionInitializeProtocol = "initialize_protocol"
	InstructionFreezeProtocol     = "freeze_protocol"
	InstructionUnfreezeProtocol   = "unfreeze_protocol"

	InstructionInitializeVault = "initialize_vault"
	InstructionFreezeVault     = "freeze_vault"
	InstructionUnfreezeVault   = "unfreeze_vault"
	InstructionCollectVaultFee = "collect_vault_fee"

	InstructionWrapSol   = "wrap_sol"
	InstructionUnwrapSol = "unwrap_sol"

	InstructionKaminoInitObligation                = "kamino_init_obligation"
	InstructionKaminoInitObligationFarmsForReserve = "kamino_init_obligation_farms_for_reserve"
	InstructionKaminoRefreshReserve                = "kamino_refresh_reserve"
	InstructionKaminoRefreshObligation             = "kamino_refresh_obligation"
	InstructionKaminoDeposit                       = "kamino_deposit"
	InstructionKaminoBorrow                        = "kamino_borrow"

	InstructionRandomCpi = "random_cpi"
)
