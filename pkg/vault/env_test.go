package vault

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi/memory"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/system"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/token"
	"github.com/mirrorfi/mirrorfi-vault/pkg/testutil"
)

var testNow = time.Unix(1_700_000_000, 0)

type testEnv struct {
	ctx       context.Context
	runtime   *memory.Runtime
	processor *Processor

	program                *cpi.AccountInfo
	systemProgram          *cpi.AccountInfo
	tokenProgram           *cpi.AccountInfo
	associatedTokenProgram *cpi.AccountInfo
	rent                   *cpi.AccountInfo
}

func setup(t *testing.T) *testEnv {
	runtime := memory.NewRuntime(memory.WithTestOverrides(&memory.TestOverrides{DisableLogging: true}))
	processor := NewProcessor(WithClock(func() time.Time { return testNow }))
	processor.Register(runtime)

	return &testEnv{
		ctx:                    context.Background(),
		runtime:                runtime,
		processor:              processor,
		program:                cpi.NewProgramAccountInfo(PROGRAM_ID),
		systemProgram:          cpi.NewProgramAccountInfo(system.ProgramKey[:]),
		tokenProgram:           cpi.NewProgramAccountInfo(token.ProgramKey),
		associatedTokenProgram: cpi.NewProgramAccountInfo(token.AssociatedTokenAccountProgramKey),
		rent:                   cpi.NewAccountInfo(system.RentSysVar),
	}
}

// execute runs a top-level vault instruction. Descriptor flags are taken from
// the handles' privileges.
func (e *testEnv) execute(t *testing.T, name string, args interface{}, accounts ...*cpi.AccountInfo) error {
	data, err := solana.NewInstructionData(name, args)
	require.NoError(t, err)

	return e.executeData(data, accounts...)
}

func (e *testEnv) executeData(data []byte, accounts ...*cpi.AccountInfo) error {
	metas := make([]solana.AccountMeta, len(accounts))
	for i, account := range accounts {
		if account.IsWritable {
			metas[i] = solana.NewAccountMeta(account.Key, account.IsSigner)
		} else {
			metas[i] = solana.NewReadonlyAccountMeta(account.Key, account.IsSigner)
		}
	}

	ix := solana.NewInstruction(PROGRAM_ID, data, metas...)
	return e.runtime.Execute(e.ctx, ix, append(accounts, e.program))
}

// newPDA returns a writable, unfunded handle for the vault PDA of seeds.
func newPDA(t *testing.T, seeds ...[]byte) *cpi.AccountInfo {
	address, _ := testutil.GenerateProgramAddress(t, PROGRAM_ID, seeds...)
	return &cpi.AccountInfo{
		Key:        address,
		IsWritable: true,
		Owner:      system.ProgramKey[:],
	}
}

type protocolFixture struct {
	creator              *cpi.AccountInfo
	protocol             *cpi.AccountInfo
	protocolAuthority    *cpi.AccountInfo
	protocolFeeAuthority *cpi.AccountInfo
}

func (e *testEnv) newProtocolFixture(t *testing.T, id uint64) *protocolFixture {
	creator := testutil.NewWallet(t, 10_000_000_000)
	protocol := newPDA(t, ProtocolPrefix, creator.Key, idSeed(id))

	authority := newPDA(t, ProtocolAuthorityPrefix, protocol.Key)
	authority.IsWritable = false
	feeAuthority := newPDA(t, ProtocolFeeAuthorityPrefix, protocol.Key)
	feeAuthority.IsWritable = false

	return &protocolFixture{
		creator:              creator,
		protocol:             protocol,
		protocolAuthority:    authority,
		protocolFeeAuthority: feeAuthority,
	}
}

func (e *testEnv) initializeProtocol(t *testing.T, f *protocolFixture, id, feeRate uint64) error {
	return e.execute(t, InstructionInitializeProtocol, &InitializeProtocolArgs{ID: id, ProtocolFeeRate: feeRate},
		f.creator,
		f.protocol,
		f.protocolAuthority,
		f.protocolFeeAuthority,
		e.systemProgram,
	)
}

type vaultFixture struct {
	*protocolFixture

	manager           *cpi.AccountInfo
	vault             *cpi.AccountInfo
	vaultAuthority    *cpi.AccountInfo
	vaultFeeAuthority *cpi.AccountInfo
	depositTokenMint  *cpi.AccountInfo
	shareTokenMint    *cpi.AccountInfo
}

// newVaultFixture initializes a protocol and returns the handles for a vault
// under it, not yet initialized.
func (e *testEnv) newVaultFixture(t *testing.T, id uint64) *vaultFixture {
	p := e.newProtocolFixture(t, id)
	require.NoError(t, e.initializeProtocol(t, p, id, FeeRateOnePercent))
	p.protocol.IsWritable = false

	manager := testutil.NewWallet(t, 10_000_000_000)
	vault := newPDA(t, VaultPrefix, manager.Key, idSeed(id))

	return &vaultFixture{
		protocolFixture:   p,
		manager:           manager,
		vault:             vault,
		vaultAuthority:    newPDA(t, VaultAuthorityPrefix, vault.Key),
		vaultFeeAuthority: newPDA(t, VaultFeeAuthorityPrefix, vault.Key),
		depositTokenMint:  testutil.NewMintAccount(t, nil, 6),
		shareTokenMint:    testutil.NewMintAccount(t, nil, 6),
	}
}

func (e *testEnv) initializeVault(t *testing.T, f *vaultFixture, id uint64, name string) error {
	return e.execute(t, InstructionInitializeVault, &InitializeVaultArgs{ID: id, Name: []byte(name), ManagerFeeRate: 2 * FeeRateOnePercent},
		f.manager,
		f.protocol,
		f.vault,
		f.vaultAuthority,
		f.vaultFeeAuthority,
		f.protocolFeeAuthority,
		f.depositTokenMint,
		f.shareTokenMint,
		e.systemProgram,
	)
}

func loadProtocolRecord(t *testing.T, account *cpi.AccountInfo) *ProtocolAccount {
	protocol, err := loadProtocol(account)
	require.NoError(t, err)
	return protocol
}

func loadVaultRecord(t *testing.T, account *cpi.AccountInfo) *VaultAccount {
	vault, err := loadVault(account)
	require.NoError(t, err)
	return vault
}

func readonly(account *cpi.AccountInfo) *cpi.AccountInfo {
	cloned := account.Clone()
	cloned.IsWritable = false
	return cloned
}

func unsigned(account *cpi.AccountInfo) *cpi.AccountInfo {
	cloned := account.Clone()
	cloned.IsSigner = false
	return cloned
}

func keyOf(t *testing.T) ed25519.PublicKey {
	return testutil.GenerateSolanaKeys(t, 1)[0]
}
