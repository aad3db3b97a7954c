package vault

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
)

var (
	WsolAuthorityPrefix        = []byte("mf_wsol_auth")
	ProtocolPrefix             = []byte("mf_protocol")
	ProtocolAuthorityPrefix    = []byte("mf_protocol_authority")
	ProtocolFeeAuthorityPrefix = []byte("mf_protocol_fee_authority")
	VaultPrefix                = []byte("mf_vault")
	VaultAuthorityPrefix       = []byte("mf_vault_authority")
	VaultFeeAuthorityPrefix    = []byte("mf_vault_fee_authority")
)

type GetProtocolAddressArgs struct {
	Creator ed25519.PublicKey
	ID      uint64
}

func GetProtocolAddress(args *GetProtocolAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		ProtocolPrefix,
		args.Creator,
		idSeed(args.ID),
	)
}

type GetProtocolAuthorityAddressArgs struct {
	Protocol ed25519.PublicKey
}

func GetProtocolAuthorityAddress(args *GetProtocolAuthorityAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		ProtocolAuthorityPrefix,
		args.Protocol,
	)
}

type GetProtocolFeeAuthorityAddressArgs struct {
	Protocol ed25519.PublicKey
}

func GetProtocolFeeAuthorityAddress(args *GetProtocolFeeAuthorityAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		ProtocolFeeAuthorityPrefix,
		args.Protocol,
	)
}

type GetVaultAddressArgs struct {
	Creator ed25519.PublicKey
	ID      uint64
}

func GetVaultAddress(args *GetVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		VaultPrefix,
		args.Creator,
		idSeed(args.ID),
	)
}

type GetVaultAuthorityAddressArgs struct {
	Vault ed25519.PublicKey
}

func GetVaultAuthorityAddress(args *GetVaultAuthorityAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		VaultAuthorityPrefix,
		args.Vault,
	)
}

type GetVaultFeeAuthorityAddressArgs struct {
	Vault ed25519.PublicKey
}

func GetVaultFeeAuthorityAddress(args *GetVaultFeeAuthorityAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		VaultFeeAuthorityPrefix,
		args.Vault,
	)
}

// GetWsolBufferAddressArgs are the seeds of the per-user authority that owns
// the temporary WSOL account used while unwrapping.
type GetWsolBufferAddressArgs struct {
	User ed25519.PublicKey
}

func GetWsolBufferAddress(args *GetWsolBufferAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		WsolAuthorityPrefix,
		args.User,
	)
}

func idSeed(id uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, id)
	return b
}
