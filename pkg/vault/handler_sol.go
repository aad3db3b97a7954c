package vault

import (
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/system"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/token"
)

type WrapSolArgs struct {
	Amount uint64
}

type WrapSolAccounts struct {
	User                   *cpi.AccountInfo
	UserAta                *cpi.AccountInfo
	TokenMint              *cpi.AccountInfo
	TokenProgram           *cpi.AccountInfo
	SystemProgram          *cpi.AccountInfo
	AssociatedTokenProgram *cpi.AccountInfo
	Rent                   *cpi.AccountInfo
}

func readWrapSolAccounts(r *accountReader) *WrapSolAccounts {
	return &WrapSolAccounts{
		User:                   r.one(),
		UserAta:                r.one(),
		TokenMint:              r.one(),
		TokenProgram:           r.one(),
		SystemProgram:          r.one(),
		AssociatedTokenProgram: r.one(),
		Rent:                   r.one(),
	}
}

// WrapSol moves amount lamports from the user into their WSOL associated
// token account and syncs its token balance.
func WrapSol(c *Context, accounts *WrapSolAccounts, args *WrapSolArgs) error {
	if err := requireSigner(accounts.User); err != nil {
		return err
	}
	if err := requireWritable(accounts.User); err != nil {
		return err
	}
	if err := requireWritable(accounts.UserAta); err != nil {
		return err
	}
	if err := requireAddress(accounts.TokenMint, token.NativeMint); err != nil {
		return err
	}
	if err := requireAddress(accounts.Rent, system.RentSysVar); err != nil {
		return err
	}
	if err := requireProgram(accounts.TokenProgram, token.ProgramKey); err != nil {
		return err
	}
	if err := requireProgram(accounts.SystemProgram, system.ProgramKey[:]); err != nil {
		return err
	}
	if err := requireProgram(accounts.AssociatedTokenProgram, token.AssociatedTokenAccountProgramKey); err != nil {
		return err
	}
	if err := requireAssociatedAccount(accounts.UserAta, accounts.User, token.NativeMint); err != nil {
		return err
	}

	if accounts.User.Lamports < args.Amount {
		return ErrorInsufficientSolToWrap
	}

	transfer := system.Transfer(accounts.User.Key, accounts.UserAta.Key, args.Amount)
	if err := cpi.Invoke(c.ctx, c.host, accounts.SystemProgram, transfer, []*cpi.AccountInfo{accounts.User, accounts.UserAta}); err != nil {
		return err
	}

	sync := token.SyncNative(accounts.UserAta.Key)
	if err := cpi.Invoke(c.ctx, c.host, accounts.TokenProgram, sync, []*cpi.AccountInfo{accounts.UserAta}); err != nil {
		return err
	}

	c.log.WithField("user", accounts.User.String()).Infof("Wrapped %d lamports", args.Amount)
	return nil
}

type UnwrapSolArgs struct {
	Amount uint64
}

type UnwrapSolAccounts struct {
	WsolBuffer             *cpi.AccountInfo
	User                   *cpi.AccountInfo
	WsolAta                *cpi.AccountInfo
	UserAta                *cpi.AccountInfo
	TokenMint              *cpi.AccountInfo
	TokenProgram           *cpi.AccountInfo
	SystemProgram          *cpi.AccountInfo
	AssociatedTokenProgram *cpi.AccountInfo
}

func readUnwrapSolAccounts(r *accountReader) *UnwrapSolAccounts {
	return &UnwrapSolAccounts{
		WsolBuffer:             r.one(),
		User:                   r.one(),
		WsolAta:                r.one(),
		UserAta:                r.one(),
		TokenMint:              r.one(),
		TokenProgram:           r.one(),
		SystemProgram:          r.one(),
		AssociatedTokenProgram: r.one(),
	}
}

// UnwrapSol moves amount WSOL from the user's associated token account into
// a buffer account held by a per-user PDA, then closes the buffer back to
// the user so its lamports become SOL.
func UnwrapSol(c *Context, accounts *UnwrapSolAccounts, args *UnwrapSolArgs) error {
	if err := requireSigner(accounts.User); err != nil {
		return err
	}
	for _, account := range []*cpi.AccountInfo{accounts.User, accounts.WsolAta, accounts.UserAta} {
		if err := requireWritable(account); err != nil {
			return err
		}
	}
	if err := requireAddress(accounts.TokenMint, token.NativeMint); err != nil {
		return err
	}
	if err := requireProgram(accounts.TokenProgram, token.ProgramKey); err != nil {
		return err
	}
	if err := requireProgram(accounts.SystemProgram, system.ProgramKey[:]); err != nil {
		return err
	}
	if err := requireProgram(accounts.AssociatedTokenProgram, token.AssociatedTokenAccountProgramKey); err != nil {
		return err
	}

	bufferSeeds, err := requireSeeds(accounts.WsolBuffer, WsolAuthorityPrefix, accounts.User.Key)
	if err != nil {
		return err
	}
	if err := requireAssociatedAccount(accounts.WsolAta, accounts.WsolBuffer, token.NativeMint); err != nil {
		return err
	}
	if err := requireAssociatedAccount(accounts.UserAta, accounts.User, token.NativeMint); err != nil {
		return err
	}

	userAta, err := loadTokenAccount(accounts.UserAta)
	if err != nil {
		return err
	}
	if userAta.Amount < args.Amount {
		return ErrorInsufficientWSolToUnwrap
	}

	mint, err := loadMint(accounts.TokenMint)
	if err != nil {
		return err
	}

	transfer := token.Transfer2(accounts.UserAta.Key, accounts.TokenMint.Key, accounts.WsolAta.Key, accounts.User.Key, args.Amount, mint.Decimals)
	handles := []*cpi.AccountInfo{accounts.UserAta, accounts.TokenMint, accounts.WsolAta, accounts.User}
	if err := cpi.Invoke(c.ctx, c.host, accounts.TokenProgram, transfer, handles); err != nil {
		return err
	}

	closeBuffer := token.CloseAccount(accounts.WsolAta.Key, accounts.User.Key, accounts.WsolBuffer.Key)
	handles = []*cpi.AccountInfo{accounts.WsolAta, accounts.User, accounts.WsolBuffer}
	if err := cpi.Invoke(c.ctx, c.host, accounts.TokenProgram, closeBuffer, handles, bufferSeeds); err != nil {
		return err
	}

	c.log.WithField("user", accounts.User.String()).Infof("Unwrapped %d lamports", args.Amount)
	return nil
}

// requireAssociatedAccount checks account is the associated token account of
// wallet for mint.
func requireAssociatedAccount(account, wallet *cpi.AccountInfo, mint []byte) error {
	expected, err := token.GetAssociatedAccount(wallet.Key, mint)
	if err != nil || !account.Is(expected) {
		return ErrorInvalidTokenAccount
	}
	return nil
}
