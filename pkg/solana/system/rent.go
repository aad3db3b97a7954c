package system

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/rent.rs
const (
	accountStorageOverhead     = 128
	defaultLamportsPerByteYear = 3480
	defaultExemptionYears      = 2
)

// MinimumBalanceForRentExemption returns the lamports an account of size bytes
// must hold to be rent exempt under the default rent parameters.
func MinimumBalanceForRentExemption(size uint64) uint64 {
	return (accountStorageOverhead + size) * defaultLamportsPerByteYear * defaultExemptionYears
}
