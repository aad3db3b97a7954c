package vault

import (
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/pluto"
)

type RandomCpiAccounts struct {
	pluto.PlutonianInitializeInstructionAccounts
	Program *cpi.AccountInfo
}

func readRandomCpiAccounts(r *accountReader) *RandomCpiAccounts {
	res := &RandomCpiAccounts{}
	res.Actor = r.one()
	res.User = r.one()
	res.Protocol = r.one()
	res.Plutonian = r.one()
	res.PlutonianAuthority = r.one()
	res.SystemProgram = r.one()
	res.EventAuthority = r.one()
	res.Program = r.one()
	return res
}

// RandomCpi initializes a plutonian position on the Pluto leverage program.
func RandomCpi(c *Context, accounts *RandomCpiAccounts) error {
	if err := requireAddress(accounts.Program, pluto.PROGRAM_ID); err != nil {
		return err
	}
	if err := requireSigner(accounts.Actor); err != nil {
		return err
	}

	c.log.WithField("program", accounts.Program.String()).Info("Invoking plutonian_initialize")
	if err := pluto.PlutonianInitialize(c.ctx, c.host, accounts.Program, &accounts.PlutonianInitializeInstructionAccounts); err != nil {
		return err
	}

	c.log.Info("Successfully executed plutonian_initialize CPI call")
	return nil
}
