package system

import (
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
)

// https://explorer.solana.com/address/11111111111111111111111111111111
var SystemAccount = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")

// RentSysVar points to the system variable "Rent"
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/sysvar/rent.rs#L11
var RentSysVar = solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
