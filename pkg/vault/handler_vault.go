package vault

import (
	"math/bits"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/system"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/token"
)

type InitializeVaultArgs struct {
	ID             uint64
	Name           []byte
	ManagerFeeRate uint64
}

type InitializeVaultAccounts struct {
	Creator              *cpi.AccountInfo
	Protocol             *cpi.AccountInfo
	Vault                *cpi.AccountInfo
	VaultAuthority       *cpi.AccountInfo
	VaultFeeAuthority    *cpi.AccountInfo
	ProtocolFeeAuthority *cpi.AccountInfo
	DepositTokenMint     *cpi.AccountInfo
	ShareTokenMint       *cpi.AccountInfo
	SystemProgram        *cpi.AccountInfo
}

func readInitializeVaultAccounts(r *accountReader) *InitializeVaultAccounts {
	return &InitializeVaultAccounts{
		Creator:              r.one(),
		Protocol:             r.one(),
		Vault:                r.one(),
		VaultAuthority:       r.one(),
		VaultFeeAuthority:    r.one(),
		ProtocolFeeAuthority: r.one(),
		DepositTokenMint:     r.one(),
		ShareTokenMint:       r.one(),
		SystemProgram:        r.one(),
	}
}

// InitializeVault creates a vault under an unfrozen protocol. The creator
// becomes the vault's manager.
func InitializeVault(c *Context, accounts *InitializeVaultAccounts, args *InitializeVaultArgs) error {
	if err := requireSigner(accounts.Creator); err != nil {
		return err
	}
	if err := requireWritable(accounts.Creator); err != nil {
		return err
	}
	if err := requireWritable(accounts.Vault); err != nil {
		return err
	}
	if err := requireProgram(accounts.SystemProgram, system.ProgramKey[:]); err != nil {
		return err
	}

	protocol, err := loadProtocol(accounts.Protocol)
	if err != nil {
		return err
	}
	if protocol.Freeze {
		return ErrorProtocolFrozen
	}

	vaultSeeds, err := requireSeeds(accounts.Vault, VaultPrefix, accounts.Creator.Key, idSeed(args.ID))
	if err != nil {
		return err
	}
	if _, err := requireSeeds(accounts.VaultAuthority, VaultAuthorityPrefix, accounts.Vault.Key); err != nil {
		return err
	}
	if _, err := requireSeeds(accounts.VaultFeeAuthority, VaultFeeAuthorityPrefix, accounts.Vault.Key); err != nil {
		return err
	}
	if _, err := requireSeeds(accounts.ProtocolFeeAuthority, ProtocolFeeAuthorityPrefix, accounts.Protocol.Key); err != nil {
		return err
	}

	if len(args.Name) > MaxVaultNameSize {
		return ErrorInvalidVaultName
	}

	if err := createProgramAccount(c, accounts.Creator, accounts.Vault, accounts.SystemProgram, VaultAccountSize, vaultSeeds); err != nil {
		return err
	}

	now := c.UnixTimestamp()
	vault := &VaultAccount{
		Name:                 string(args.Name),
		Pubkey:               accounts.Vault.Key,
		Manager:              accounts.Creator.Key,
		Protocol:             accounts.Protocol.Key,
		VaultAuthority:       accounts.VaultAuthority.Key,
		VaultFeeAuthority:    accounts.VaultFeeAuthority.Key,
		ProtocolFeeAuthority: accounts.ProtocolFeeAuthority.Key,
		DepositTokenMint:     accounts.DepositTokenMint.Key,
		ShareTokenMint:       accounts.ShareTokenMint.Key,
		ManagerFeeRate:       args.ManagerFeeRate,
		CreatedAt:            now,
		UpdatedAt:            now,
		IsInitialized:        true,
		Version:              AccountVersion,
		Bump:                 vaultSeeds.Bump(),
	}
	accounts.Vault.Data = vault.Marshal()

	c.log.WithField("vault", accounts.Vault.String()).Infof("Vault initialized with ID: %d", args.ID)
	return nil
}

type VaultManagerAccounts struct {
	Manager *cpi.AccountInfo
	Vault   *cpi.AccountInfo
}

func readVaultManagerAccounts(r *accountReader) *VaultManagerAccounts {
	return &VaultManagerAccounts{
		Manager: r.one(),
		Vault:   r.one(),
	}
}

// FreezeVault stops fee collection from the vault.
func FreezeVault(c *Context, accounts *VaultManagerAccounts) error {
	return setVaultFreeze(c, accounts, true)
}

// UnfreezeVault reverses FreezeVault.
func UnfreezeVault(c *Context, accounts *VaultManagerAccounts) error {
	return setVaultFreeze(c, accounts, false)
}

func setVaultFreeze(c *Context, accounts *VaultManagerAccounts, freeze bool) error {
	if err := requireSigner(accounts.Manager); err != nil {
		return err
	}
	if err := requireWritable(accounts.Vault); err != nil {
		return err
	}

	vault, err := loadVault(accounts.Vault)
	if err != nil {
		return err
	}
	if !keysEqual(vault.Manager, accounts.Manager.Key) {
		return ErrorUnauthorizedAccess
	}

	if freeze && vault.Freeze {
		return ErrorAlreadyFrozen
	}
	if !freeze && !vault.Freeze {
		return ErrorAlreadyUnfrozen
	}

	vault.Freeze = freeze
	vault.UpdatedAt = c.UnixTimestamp()
	accounts.Vault.Data = vault.Marshal()

	c.log.WithField("vault", accounts.Vault.String()).Infof("Vault freeze set to %t", freeze)
	return nil
}

type CollectVaultFeeArgs struct {
	Amount uint64
}

type CollectVaultFeeAccounts struct {
	Manager                *cpi.AccountInfo
	Protocol               *cpi.AccountInfo
	Vault                  *cpi.AccountInfo
	DepositTokenMint       *cpi.AccountInfo
	VaultAuthority         *cpi.AccountInfo
	VaultFeeAuthority      *cpi.AccountInfo
	VaultTokenAccount      *cpi.AccountInfo
	FeeTokenAccount        *cpi.AccountInfo
	TokenProgram           *cpi.AccountInfo
	AssociatedTokenProgram *cpi.AccountInfo
}

func readCollectVaultFeeAccounts(r *accountReader) *CollectVaultFeeAccounts {
	return &CollectVaultFeeAccounts{
		Manager:                r.one(),
		Protocol:               r.one(),
		Vault:                  r.one(),
		DepositTokenMint:       r.one(),
		VaultAuthority:         r.one(),
		VaultFeeAuthority:      r.one(),
		VaultTokenAccount:      r.one(),
		FeeTokenAccount:        r.one(),
		TokenProgram:           r.one(),
		AssociatedTokenProgram: r.one(),
	}
}

// CollectVaultFee moves amount deposit tokens from the vault's token account
// to its fee account and adds them to the manager's collected total.
func CollectVaultFee(c *Context, accounts *CollectVaultFeeAccounts, args *CollectVaultFeeArgs) error {
	if err := requireSigner(accounts.Manager); err != nil {
		return err
	}
	for _, account := range []*cpi.AccountInfo{
		accounts.Manager,
		accounts.Vault,
		accounts.VaultAuthority,
		accounts.VaultFeeAuthority,
		accounts.VaultTokenAccount,
		accounts.FeeTokenAccount,
	} {
		if err := requireWritable(account); err != nil {
			return err
		}
	}
	if err := requireProgram(accounts.TokenProgram, token.ProgramKey); err != nil {
		return err
	}
	if err := requireProgram(accounts.AssociatedTokenProgram, token.AssociatedTokenAccountProgramKey); err != nil {
		return err
	}

	protocol, err := loadProtocol(accounts.Protocol)
	if err != nil {
		return err
	}
	if protocol.Freeze {
		return ErrorProtocolFrozen
	}

	vault, err := loadVault(accounts.Vault)
	if err != nil {
		return err
	}
	switch {
	case !keysEqual(vault.Manager, accounts.Manager.Key):
		return ErrorUnauthorizedAccess
	case !keysEqual(vault.VaultAuthority, accounts.VaultAuthority.Key):
		return ErrorInvalidVaultAuthority
	case !keysEqual(vault.VaultFeeAuthority, accounts.VaultFeeAuthority.Key):
		return ErrorInvalidVaultFeeAuthority
	case !keysEqual(vault.DepositTokenMint, accounts.DepositTokenMint.Key):
		return ErrorInvalidDepositTokenMint
	case !keysEqual(vault.Protocol, accounts.Protocol.Key):
		return ErrorInvalidProtocol
	case vault.Freeze:
		return ErrorVaultFrozen
	}

	authoritySeeds, err := requireSeeds(accounts.VaultAuthority, VaultAuthorityPrefix, accounts.Vault.Key)
	if err != nil {
		return err
	}
	if _, err := requireSeeds(accounts.VaultFeeAuthority, VaultFeeAuthorityPrefix, accounts.Vault.Key); err != nil {
		return err
	}

	if err := requireTokenAccount(accounts.VaultTokenAccount, vault.DepositTokenMint, vault.VaultAuthority); err != nil {
		return err
	}
	if err := requireTokenAccount(accounts.FeeTokenAccount, vault.DepositTokenMint, vault.VaultFeeAuthority); err != nil {
		return err
	}

	if args.Amount == 0 {
		return ErrorInvalidAmount
	}

	ix := token.Transfer(accounts.VaultTokenAccount.Key, accounts.FeeTokenAccount.Key, accounts.VaultAuthority.Key, args.Amount)
	handles := []*cpi.AccountInfo{accounts.VaultTokenAccount, accounts.FeeTokenAccount, accounts.VaultAuthority}
	if err := cpi.Invoke(c.ctx, c.host, accounts.TokenProgram, ix, handles, authoritySeeds); err != nil {
		return err
	}

	total, carry := bits.Add64(vault.TotalManagerFee, args.Amount, 0)
	if carry != 0 {
		return ErrorArithmeticOverflow
	}
	vault.TotalManagerFee = total
	vault.UpdatedAt = c.UnixTimestamp()
	accounts.Vault.Data = vault.Marshal()

	c.log.WithField("vault", accounts.Vault.String()).Infof("Collected %d vault fees successfully", args.Amount)
	return nil
}

// requireTokenAccount checks account is a token account for mint held by
// authority.
func requireTokenAccount(account *cpi.AccountInfo, mint, authority []byte) error {
	tokenAccount, err := loadTokenAccount(account)
	if err != nil {
		return err
	}
	if !keysEqual(tokenAccount.Mint, mint) || !keysEqual(tokenAccount.Owner, authority) {
		return ErrorInvalidTokenAccount
	}
	return nil
}
