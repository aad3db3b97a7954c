package vault

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/token"
	"github.com/mirrorfi/mirrorfi-vault/pkg/testutil"
)

func TestInitializeVault(t *testing.T) {
	env := setup(t)
	f := env.newVaultFixture(t, 3)

	require.NoError(t, env.initializeVault(t, f, 3, "sol yield"))
	assert.True(t, f.vault.IsOwnedBy(PROGRAM_ID))

	vault := loadVaultRecord(t, f.vault)
	_, bump, err := GetVaultAddress(&GetVaultAddressArgs{Creator: f.manager.Key, ID: 3})
	require.NoError(t, err)

	assert.Equal(t, "sol yield", vault.Name)
	assert.EqualValues(t, f.vault.Key, vault.Pubkey)
	assert.EqualValues(t, f.manager.Key, vault.Manager)
	assert.EqualValues(t, f.protocol.Key, vault.Protocol)
	assert.EqualValues(t, f.vaultAuthority.Key, vault.VaultAuthority)
	assert.EqualValues(t, f.vaultFeeAuthority.Key, vault.VaultFeeAuthority)
	assert.EqualValues(t, f.protocolFeeAuthority.Key, vault.ProtocolFeeAuthority)
	assert.EqualValues(t, f.depositTokenMint.Key, vault.DepositTokenMint)
	assert.EqualValues(t, f.shareTokenMint.Key, vault.ShareTokenMint)
	assert.EqualValues(t, 2*FeeRateOnePercent, vault.ManagerFeeRate)
	assert.Zero(t, vault.TotalManagerFee)
	assert.Equal(t, testNow.Unix(), vault.CreatedAt)
	assert.True(t, vault.IsInitialized)
	assert.False(t, vault.Freeze)
	assert.Equal(t, bump, vault.Bump)
}

func TestInitializeVault_ProtocolFrozen(t *testing.T) {
	env := setup(t)
	f := env.newVaultFixture(t, 3)

	f.protocol.IsWritable = true
	require.NoError(t, env.execute(t, InstructionFreezeProtocol, nil, f.creator, f.protocol))
	f.protocol.IsWritable = false

	err := env.initializeVault(t, f, 3, "frozen")
	testutil.AssertCustomError(t, err, ErrorProtocolFrozen)
	assert.Empty(t, f.vault.Data)
}

func TestInitializeVault_Constraints(t *testing.T) {
	for _, tc := range []struct {
		name     string
		mutate   func(f *vaultFixture)
		id       uint64
		label    string
		expected solana.CustomError
	}{
		{"name too long", func(*vaultFixture) {}, 3, strings.Repeat("x", MaxVaultNameSize+1), ErrorInvalidVaultName},
		{"id does not match vault", func(*vaultFixture) {}, 4, "vault", ErrorConstraintSeeds},
		{"swapped authorities", func(f *vaultFixture) {
			f.vaultAuthority, f.vaultFeeAuthority = f.vaultFeeAuthority, f.vaultAuthority
		}, 3, "vault", ErrorConstraintSeeds},
		{"protocol fee authority of another protocol", func(f *vaultFixture) {
			f.protocolFeeAuthority = newPDA(t, ProtocolFeeAuthorityPrefix, keyOf(t))
		}, 3, "vault", ErrorConstraintSeeds},
		{"protocol is not a record", func(f *vaultFixture) {
			f.protocol = testutil.NewMintAccount(t, nil, 6)
		}, 3, "vault", ErrorAccountOwnedByWrongProgram},
	} {
		t.Run(tc.name, func(t *testing.T) {
			env := setup(t)
			f := env.newVaultFixture(t, 3)
			tc.mutate(f)

			err := env.initializeVault(t, f, tc.id, tc.label)
			testutil.AssertCustomError(t, err, tc.expected)
			assert.Empty(t, f.vault.Data)
		})
	}
}

type feeFixture struct {
	*vaultFixture

	vaultTokenAccount *cpi.AccountInfo
	feeTokenAccount   *cpi.AccountInfo
}

func (e *testEnv) newFeeFixture(t *testing.T, balance uint64) *feeFixture {
	f := e.newVaultFixture(t, 9)
	require.NoError(t, e.initializeVault(t, f, 9, "fees"))

	return &feeFixture{
		vaultFixture:      f,
		vaultTokenAccount: testutil.NewTokenAccount(t, nil, f.depositTokenMint.Key, f.vaultAuthority.Key, balance),
		feeTokenAccount:   testutil.NewTokenAccount(t, nil, f.depositTokenMint.Key, f.vaultFeeAuthority.Key, 0),
	}
}

func (e *testEnv) collectVaultFee(t *testing.T, f *feeFixture, amount uint64) error {
	return e.execute(t, InstructionCollectVaultFee, &CollectVaultFeeArgs{Amount: amount},
		f.manager,
		f.protocol,
		f.vault,
		f.depositTokenMint,
		f.vaultAuthority,
		f.vaultFeeAuthority,
		f.vaultTokenAccount,
		f.feeTokenAccount,
		e.tokenProgram,
		e.associatedTokenProgram,
	)
}

func TestCollectVaultFee(t *testing.T) {
	env := setup(t)
	f := env.newFeeFixture(t, 1_000)

	require.NoError(t, env.collectVaultFee(t, f, 300))
	require.NoError(t, env.collectVaultFee(t, f, 200))

	assert.EqualValues(t, 500, testutil.LoadTokenAccount(t, f.vaultTokenAccount).Amount)
	assert.EqualValues(t, 500, testutil.LoadTokenAccount(t, f.feeTokenAccount).Amount)
	assert.EqualValues(t, 500, loadVaultRecord(t, f.vault).TotalManagerFee)

	err := env.collectVaultFee(t, f, 501)
	testutil.AssertCustomError(t, err, token.ErrorInsufficientFunds)
	assert.EqualValues(t, 500, loadVaultRecord(t, f.vault).TotalManagerFee)
}

func TestCollectVaultFee_Constraints(t *testing.T) {
	for _, tc := range []struct {
		name     string
		mutate   func(env *testEnv, f *feeFixture)
		amount   uint64
		expected solana.CustomError
	}{
		{"zero amount", func(*testEnv, *feeFixture) {}, 0, ErrorInvalidAmount},
		{"not the manager", func(_ *testEnv, f *feeFixture) { f.manager = testutil.NewWallet(t, 0) }, 1, ErrorUnauthorizedAccess},
		{"wrong vault authority", func(_ *testEnv, f *feeFixture) { f.vaultAuthority = newPDA(t, VaultAuthorityPrefix, keyOf(t)) }, 1, ErrorInvalidVaultAuthority},
		{"wrong vault fee authority", func(_ *testEnv, f *feeFixture) { f.vaultFeeAuthority = newPDA(t, VaultFeeAuthorityPrefix, keyOf(t)) }, 1, ErrorInvalidVaultFeeAuthority},
		{"wrong deposit mint", func(_ *testEnv, f *feeFixture) { f.depositTokenMint = testutil.NewMintAccount(t, nil, 6) }, 1, ErrorInvalidDepositTokenMint},
		{"wrong protocol", func(env *testEnv, f *feeFixture) {
			other := env.newProtocolFixture(t, 10)
			require.NoError(t, env.initializeProtocol(t, other, 10, FeeRateOnePercent))
			f.protocol = other.protocol
		}, 1, ErrorInvalidProtocol},
		{"fee account held by another authority", func(_ *testEnv, f *feeFixture) {
			f.feeTokenAccount = testutil.NewTokenAccount(t, nil, f.depositTokenMint.Key, keyOf(t), 0)
		}, 1, ErrorInvalidTokenAccount},
		{"vault token account for another mint", func(_ *testEnv, f *feeFixture) {
			f.vaultTokenAccount = testutil.NewTokenAccount(t, nil, keyOf(t), f.vaultAuthority.Key, 10)
		}, 1, ErrorInvalidTokenAccount},
		{"vault readonly", func(_ *testEnv, f *feeFixture) { f.vault.IsWritable = false }, 1, ErrorConstraintMut},
		{"wrong token program", func(env *testEnv, _ *feeFixture) { env.tokenProgram = readonly(env.systemProgram) }, 1, ErrorInvalidProgramID},
	} {
		t.Run(tc.name, func(t *testing.T) {
			env := setup(t)
			f := env.newFeeFixture(t, 1_000)
			tc.mutate(env, f)

			err := env.collectVaultFee(t, f, tc.amount)
			testutil.AssertCustomError(t, err, tc.expected)
			assert.Zero(t, testutil.LoadTokenAccount(t, f.feeTokenAccount).Amount)
		})
	}
}

func TestCollectVaultFee_Frozen(t *testing.T) {
	env := setup(t)
	f := env.newFeeFixture(t, 1_000)

	require.NoError(t, env.execute(t, InstructionFreezeVault, nil, f.manager, f.vault))
	testutil.AssertCustomError(t, env.collectVaultFee(t, f, 1), ErrorVaultFrozen)

	err := env.execute(t, InstructionFreezeVault, nil, f.manager, f.vault)
	testutil.AssertCustomError(t, err, ErrorAlreadyFrozen)

	require.NoError(t, env.execute(t, InstructionUnfreezeVault, nil, f.manager, f.vault))
	require.NoError(t, env.collectVaultFee(t, f, 1))

	f.protocol.IsWritable = true
	require.NoError(t, env.execute(t, InstructionFreezeProtocol, nil, f.creator, f.protocol))
	f.protocol.IsWritable = false
	testutil.AssertCustomError(t, env.collectVaultFee(t, f, 1), ErrorProtocolFrozen)

	stranger := testutil.NewWallet(t, 0)
	err = env.execute(t, InstructionUnfreezeVault, nil, stranger, f.vault)
	testutil.AssertCustomError(t, err, ErrorUnauthorizedAccess)
}

func TestCollectVaultFee_OverflowReverts(t *testing.T) {
	env := setup(t)
	f := env.newFeeFixture(t, 1_000)

	vault := loadVaultRecord(t, f.vault)
	vault.TotalManagerFee = math.MaxUint64 - 5
	f.vault.Data = vault.Marshal()
	before := append([]byte(nil), f.vault.Data...)
	env.runtime.Reset()

	// The token transfer succeeds before the overflow is detected
	err := env.collectVaultFee(t, f, 10)
	testutil.AssertCustomError(t, err, ErrorArithmeticOverflow)

	assert.EqualValues(t, 1_000, testutil.LoadTokenAccount(t, f.vaultTokenAccount).Amount)
	assert.EqualValues(t, 0, testutil.LoadTokenAccount(t, f.feeTokenAccount).Amount)
	assert.Equal(t, before, f.vault.Data)

	invocations := env.runtime.Invocations()
	require.Len(t, invocations, 2)
	assert.EqualValues(t, token.ProgramKey, invocations[0].Program)
	assert.NoError(t, invocations[0].Err)
	assert.EqualValues(t, PROGRAM_ID, invocations[1].Program)
	assert.Error(t, invocations[1].Err)

	require.NoError(t, env.collectVaultFee(t, f, 5))
	assert.EqualValues(t, uint64(math.MaxUint64), loadVaultRecord(t, f.vault).TotalManagerFee)
}
