package vault

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/binary"
)

const MaxVaultNameSize = 32

const (
	VaultAccountSize = (8 + // discriminator
		MaxVaultNameSize + // name
		32 + // pubkey
		32 + // manager
		32 + // protocol
		32 + // vault_authority
		32 + // vault_fee_authority
		32 + // protocol_fee_authority
		32 + // deposit_token_mint
		32 + // share_token_mint
		8 + // manager_fee_rate
		8 + // total_manager_fee
		8 + // created_at
		8 + // updated_at
		1 + // is_initialized
		1 + // freeze
		1 + // version
		1 + // bump
		4) // alignment
)

var VaultAccountDiscriminator = solana.AccountDiscriminator("Vault")

type VaultAccount struct {
	Name                 string
	Pubkey               ed25519.PublicKey
	Manager              ed25519.PublicKey
	Protocol             ed25519.PublicKey
	VaultAuthority       ed25519.PublicKey
	VaultFeeAuthority    ed25519.PublicKey
	ProtocolFeeAuthority ed25519.PublicKey
	DepositTokenMint     ed25519.PublicKey
	ShareTokenMint       ed25519.PublicKey
	ManagerFeeRate       uint64
	TotalManagerFee      uint64
	CreatedAt            int64
	UpdatedAt            int64
	IsInitialized        bool
	Freeze               bool
	Version              uint8
	Bump                 uint8
}

func (obj *VaultAccount) Marshal() []byte {
	data := make([]byte, VaultAccountSize)

	var offset int
	binary.PutFixedBytes(data, VaultAccountDiscriminator[:], solana.DiscriminatorSize, &offset)
	binary.PutFixedBytes(data[offset:], []byte(obj.Name), MaxVaultNameSize, &offset)
	binary.PutKey32(data[offset:], obj.Pubkey, &offset)
	binary.PutKey32(data[offset:], obj.Manager, &offset)
	binary.PutKey32(data[offset:], obj.Protocol, &offset)
	binary.PutKey32(data[offset:], obj.VaultAuthority, &offset)
	binary.PutKey32(data[offset:], obj.VaultFeeAuthority, &offset)
	binary.PutKey32(data[offset:], obj.ProtocolFeeAuthority, &offset)
	binary.PutKey32(data[offset:], obj.DepositTokenMint, &offset)
	binary.PutKey32(data[offset:], obj.ShareTokenMint, &offset)
	binary.PutUint64(data[offset:], obj.ManagerFeeRate, &offset)
	binary.PutUint64(data[offset:], obj.TotalManagerFee, &offset)
	binary.PutInt64(data[offset:], obj.CreatedAt, &offset)
	binary.PutInt64(data[offset:], obj.UpdatedAt, &offset)
	binary.PutBool(data[offset:], obj.IsInitialized, &offset)
	binary.PutBool(data[offset:], obj.Freeze, &offset)
	binary.PutUint8(data[offset:], obj.Version, &offset)
	binary.PutUint8(data[offset:], obj.Bump, &offset)

	return data
}

func (obj *VaultAccount) Unmarshal(data []byte) error {
	if len(data) < VaultAccountSize {
		return ErrorAccountDiscriminatorMismatch
	}
	if !bytes.Equal(data[:solana.DiscriminatorSize], VaultAccountDiscriminator[:]) {
		return ErrorAccountDiscriminatorMismatch
	}

	offset := solana.DiscriminatorSize

	var name []byte
	binary.GetFixedBytes(data[offset:], &name, MaxVaultNameSize, &offset)
	obj.Name = string(bytes.TrimRight(name, "\x00"))

	binary.GetKey32(data[offset:], &obj.Pubkey, &offset)
	binary.GetKey32(data[offset:], &obj.Manager, &offset)
	binary.GetKey32(data[offset:], &obj.Protocol, &offset)
	binary.GetKey32(data[offset:], &obj.VaultAuthority, &offset)
	binary.GetKey32(data[offset:], &obj.VaultFeeAuthority, &offset)
	binary.GetKey32(data[offset:], &obj.ProtocolFeeAuthority, &offset)
	binary.GetKey32(data[offset:], &obj.DepositTokenMint, &offset)
	binary.GetKey32(data[offset:], &obj.ShareTokenMint, &offset)
	binary.GetUint64(data[offset:], &obj.ManagerFeeRate, &offset)
	binary.GetUint64(data[offset:], &obj.TotalManagerFee, &offset)
	binary.GetInt64(data[offset:], &obj.CreatedAt, &offset)
	binary.GetInt64(data[offset:], &obj.UpdatedAt, &offset)
	binary.GetBool(data[offset:], &obj.IsInitialized, &offset)
	binary.GetBool(data[offset:], &obj.Freeze, &offset)
	binary.GetUint8(data[offset:], &obj.Version, &offset)
	binary.GetUint8(data[offset:], &obj.Bump, &offset)

	return nil
}

func (obj *VaultAccount) String() string {
	return fmt.Sprintf(
		"Vault{name=%s,pubkey=%s,manager=%s,protocol=%s,deposit_token_mint=%s,share_token_mint=%s,manager_fee_rate=%d,total_manager_fee=%d,freeze=%t,version=%d,bump=%d}",
		obj.Name,
		base58.Encode(obj.Pubkey),
		base58.Encode(obj.Manager),
		base58.Encode(obj.Protocol),
		base58.Encode(obj.DepositTokenMint),
		base58.Encode(obj.ShareTokenMint),
		obj.ManagerFeeRate,
		obj.TotalManagerFee,
		obj.Freeze,
		obj.Version,
		obj.Bump,
	)
}
