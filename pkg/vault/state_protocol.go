package vault

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/binary"
)

const (
	protocolPaddingSize = 64 * 8

	// Fee rates are expressed in thousandths of a percent, 1000 is 1%.
	FeeRateOnePercent = 1000
)

const (
	ProtocolAccountSize = (8 + // discriminator
		32 + // creator
		32 + // owner
		8 + // created_at
		8 + // updated_at
		32 + // protocol_fee_authority
		protocolPaddingSize + // padding
		8 + // protocol_fee_rate
		1 + // is_initialized
		1 + // freeze
		1 + // version
		1 + // bump
		4) // alignment
)

var ProtocolAccountDiscriminator = solana.AccountDiscriminator("Protocol")

type ProtocolAccount struct {
	Creator              ed25519.PublicKey
	Owner                ed25519.PublicKey
	CreatedAt            int64
	UpdatedAt            int64
	ProtocolFeeAuthority ed25519.PublicKey
	ProtocolFeeRate      uint64
	IsInitialized        bool
	Freeze               bool
	Version              uint8
	Bump                 uint8
}

func (obj *ProtocolAccount) Marshal() []byte {
	data := make([]byte, ProtocolAccountSize)

	var offset int
	binary.PutFixedBytes(data, ProtocolAccountDiscriminator[:], solana.DiscriminatorSize, &offset)
	binary.PutKey32(data[offset:], obj.Creator, &offset)
	binary.PutKey32(data[offset:], obj.Owner, &offset)
	binary.PutInt64(data[offset:], obj.CreatedAt, &offset)
	binary.PutInt64(data[offset:], obj.UpdatedAt, &offset)
	binary.PutKey32(data[offset:], obj.ProtocolFeeAuthority, &offset)
	offset += protocolPaddingSize
	binary.PutUint64(data[offset:], obj.ProtocolFeeRate, &offset)
	binary.PutBool(data[offset:], obj.IsInitialized, &offset)
	binary.PutBool(data[offset:], obj.Freeze, &offset)
	binary.PutUint8(data[offset:], obj.Version, &offset)
	binary.PutUint8(data[offset:], obj.Bump, &offset)

	return data
}

func (obj *ProtocolAccount) Unmarshal(data []byte) error {
	if len(data) < ProtocolAccountSize {
		return ErrorAccountDiscriminatorMismatch
	}
	if !bytes.Equal(data[:solana.DiscriminatorSize], ProtocolAccountDiscriminator[:]) {
		return ErrorAccountDiscriminatorMismatch
	}

	offset := solana.DiscriminatorSize
	binary.GetKey32(data[offset:], &obj.Creator, &offset)
	binary.GetKey32(data[offset:], &obj.Owner, &offset)
	binary.GetInt64(data[offset:], &obj.CreatedAt, &offset)
	binary.GetInt64(data[offset:], &obj.UpdatedAt, &offset)
	binary.GetKey32(data[offset:], &obj.ProtocolFeeAuthority, &offset)
	offset += protocolPaddingSize
	binary.GetUint64(data[offset:], &obj.ProtocolFeeRate, &offset)
	binary.GetBool(data[offset:], &obj.IsInitialized, &offset)
	binary.GetBool(data[offset:], &obj.Freeze, &offset)
	binary.GetUint8(data[offset:], &obj.Version, &offset)
	binary.GetUint8(data[offset:], &obj.Bump, &offset)

	return nil
}

func (obj *ProtocolAccount) String() string {
	return fmt.Sprintf(
		"Protocol{creator=%s,owner=%s,created_at=%d,updated_at=%d,protocol_fee_authority=%s,protocol_fee_rate=%d,is_initialized=%t,freeze=%t,version=%d,bump=%d}",
		base58.Encode(obj.Creator),
		base58.Encode(obj.Owner),
		obj.CreatedAt,
		obj.UpdatedAt,
		base58.Encode(obj.ProtocolFeeAuthority),
		obj.ProtocolFeeRate,
		obj.IsInitialized,
		obj.Freeze,
		obj.Version,
		obj.Bump,
	)
}
