package vault

import (
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/system"
)

// AccountVersion is written into every record this program creates.
const AccountVersion = 1

type InitializeProtocolArgs struct {
	ID              uint64
	ProtocolFeeRate uint64
}

type InitializeProtocolAccounts struct {
	Creator              *cpi.AccountInfo
	Protocol             *cpi.AccountInfo
	ProtocolAuthority    *cpi.AccountInfo
	ProtocolFeeAuthority *cpi.AccountInfo
	SystemProgram        *cpi.AccountInfo
}

func readInitializeProtocolAccounts(r *accountReader) *InitializeProtocolAccounts {
	return &InitializeProtocolAccounts{
		Creator:              r.one(),
		Protocol:             r.one(),
		ProtocolAuthority:    r.one(),
		ProtocolFeeAuthority: r.one(),
		SystemProgram:        r.one(),
	}
}

// InitializeProtocol creates the protocol record owned by the creator.
func InitializeProtocol(c *Context, accounts *InitializeProtocolAccounts, args *InitializeProtocolArgs) error {
	if err := requireSigner(accounts.Creator); err != nil {
		return err
	}
	if err := requireWritable(accounts.Creator); err != nil {
		return err
	}
	if err := requireWritable(accounts.Protocol); err != nil {
		return err
	}
	if err := requireProgram(accounts.SystemProgram, system.ProgramKey[:]); err != nil {
		return err
	}

	protocolSeeds, err := requireSeeds(accounts.Protocol, ProtocolPrefix, accounts.Creator.Key, idSeed(args.ID))
	if err != nil {
		return err
	}
	if _, err := requireSeeds(accounts.ProtocolAuthority, ProtocolAuthorityPrefix, accounts.Protocol.Key); err != nil {
		return err
	}
	if _, err := requireSeeds(accounts.ProtocolFeeAuthority, ProtocolFeeAuthorityPrefix, accounts.Protocol.Key); err != nil {
		return err
	}

	if err := createProgramAccount(c, accounts.Creator, accounts.Protocol, accounts.SystemProgram, ProtocolAccountSize, protocolSeeds); err != nil {
		return err
	}

	now := c.UnixTimestamp()
	protocol := &ProtocolAccount{
		Creator:              accounts.Creator.Key,
		Owner:                accounts.Creator.Key,
		CreatedAt:            now,
		UpdatedAt:            now,
		ProtocolFeeAuthority: accounts.ProtocolFeeAuthority.Key,
		ProtocolFeeRate:      args.ProtocolFeeRate,
		IsInitialized:        true,
		Version:              AccountVersion,
		Bump:                 protocolSeeds.Bump(),
	}
	accounts.Protocol.Data = protocol.Marshal()

	c.log.WithField("protocol", accounts.Protocol.String()).Infof("Protocol initialized with ID: %d", args.ID)
	return nil
}

type ProtocolOwnerAccounts struct {
	Owner    *cpi.AccountInfo
	Protocol *cpi.AccountInfo
}

func readProtocolOwnerAccounts(r *accountReader) *ProtocolOwnerAccounts {
	return &ProtocolOwnerAccounts{
		Owner:    r.one(),
		Protocol: r.one(),
	}
}

// FreezeProtocol stops new vaults and fee collection under the protocol.
func FreezeProtocol(c *Context, accounts *ProtocolOwnerAccounts) error {
	return setProtocolFreeze(c, accounts, true)
}

// UnfreezeProtocol reverses FreezeProtocol.
func UnfreezeProtocol(c *Context, accounts *ProtocolOwnerAccounts) error {
	return setProtocolFreeze(c, accounts, false)
}

func setProtocolFreeze(c *Context, accounts *ProtocolOwnerAccounts, freeze bool) error {
	if err := requireSigner(accounts.Owner); err != nil {
		return err
	}
	if err := requireWritable(accounts.Protocol); err != nil {
		return err
	}

	protocol, err := loadProtocol(accounts.Protocol)
	if err != nil {
		return err
	}
	if !keysEqual(protocol.Owner, accounts.Owner.Key) {
		return ErrorUnauthorizedAccess
	}

	if freeze && protocol.Freeze {
		return ErrorAlreadyFrozen
	}
	if !freeze && !protocol.Freeze {
		return ErrorAlreadyUnfrozen
	}

	protocol.Freeze = freeze
	protocol.UpdatedAt = c.UnixTimestamp()
	accounts.Protocol.Data = protocol.Marshal()

	c.log.WithField("protocol", accounts.Protocol.String()).Infof("Protocol freeze set to %t", freeze)
	return nil
}

// createProgramAccount allocates a rent exempt account of size bytes at the
// PDA described by seeds and assigns it to the vault program.
func createProgramAccount(c *Context, payer, account, systemProgram *cpi.AccountInfo, size uint64, seeds solana.SignerSeeds) error {
	ix := system.CreateAccount(
		payer.Key,
		account.Key,
		PROGRAM_ID,
		system.MinimumBalanceForRentExemption(size),
		size,
	)
	return cpi.Invoke(c.ctx, c.host, systemProgram, ix, []*cpi.AccountInfo{payer, account}, seeds)
}
