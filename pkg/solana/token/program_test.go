package token

import (
	"crypto/ed25519"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
)

func TestGetCommand_Error(t *testing.T) {
	keys := generateKeys(t, 2)

	// invalid program
	cmd, err := GetCommand(solana.NewInstruction(keys[1], []byte{}))
	assert.Equal(t, CommandUnknown, cmd)
	assert.Equal(t, solana.ErrIncorrectProgram, err)

	// no data
	cmd, err = GetCommand(solana.NewInstruction(ProgramKey, []byte{}))
	assert.Equal(t, CommandUnknown, cmd)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "missing data")
}

func TestTransfer(t *testing.T) {
	keys := generateKeys(t, 4)

	instruction := Transfer(keys[0], keys[1], keys[2], 123456789)

	expectedAmount := make([]byte, 8)
	binary.LittleEndian.PutUint64(expectedAmount, 123456789)

	assert.Equal(t, byte(CommandTransfer), instruction.Data[0])
	assert.Equal(t, expectedAmount, instruction.Data[1:])

	assert.False(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)
	assert.True(t, instruction.Accounts[2].IsSigner)
	assert.False(t, instruction.Accounts[2].IsWritable)

	decompiled, err := DecompileTransfer(instruction)
	require.NoError(t, err)
	assert.Equal(t, keys[0], decompiled.Source)
	assert.Equal(t, keys[1], decompiled.Destination)
	assert.Equal(t, keys[2], decompiled.Owner)
	assert.EqualValues(t, 123456789, decompiled.Amount)

	cmd, err := GetCommand(instruction)
	require.NoError(t, err)
	assert.Equal(t, CommandTransfer, cmd)

	instruction.Accounts = instruction.Accounts[:2]
	_, err = DecompileTransfer(instruction)
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid number of accounts"))

	instruction.Program = keys[3]
	_, err = DecompileTransfer(instruction)
	assert.Equal(t, solana.ErrIncorrectProgram, err)
}

func TestTransfer2(t *testing.T) {
	keys := generateKeys(t, 4)

	instruction := Transfer2(keys[0], keys[1], keys[2], keys[3], 123456789, NativeDecimals)

	expectedAmount := make([]byte, 8)
	binary.LittleEndian.PutUint64(expectedAmount, 123456789)

	assert.Equal(t, byte(CommandTransfer2), instruction.Data[0])
	assert.Equal(t, expectedAmount, instruction.Data[1:9])
	assert.EqualValues(t, NativeDecimals, instruction.Data[9])

	require.Len(t, instruction.Accounts, 4)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[1].IsWritable)
	assert.True(t, instruction.Accounts[2].IsWritable)
	assert.True(t, instruction.Accounts[3].IsSigner)
	assert.False(t, instruction.Accounts[3].IsWritable)

	decompiled, err := DecompileTransfer2(instruction)
	require.NoError(t, err)
	assert.Equal(t, keys[0], decompiled.Source)
	assert.Equal(t, keys[1], decompiled.Mint)
	assert.Equal(t, keys[2], decompiled.Destination)
	assert.Equal(t, keys[3], decompiled.Owner)
	assert.EqualValues(t, 123456789, decompiled.Amount)
	assert.EqualValues(t, NativeDecimals, decompiled.Decimals)

	instruction.Data = instruction.Data[:9]
	_, err = DecompileTransfer2(instruction)
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid instruction data size"))

	_, err = DecompileTransfer2(Transfer(keys[0], keys[1], keys[2], 1))
	assert.Equal(t, solana.ErrIncorrectInstruction, err)
}

func TestCloseAccount(t *testing.T) {
	keys := generateKeys(t, 4)

	instruction := CloseAccount(keys[0], keys[1], keys[2])

	assert.Equal(t, []byte{byte(CommandCloseAccount)}, instruction.Data)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.True(t, instruction.Accounts[1].IsWritable)
	assert.True(t, instruction.Accounts[2].IsSigner)
	assert.False(t, instruction.Accounts[2].IsWritable)

	decompiled, err := DecompileCloseAccount(instruction)
	require.NoError(t, err)
	assert.Equal(t, keys[0], decompiled.Account)
	assert.Equal(t, keys[1], decompiled.Destination)
	assert.Equal(t, keys[2], decompiled.Owner)

	instruction.Data = []byte{byte(CommandTransfer)}
	_, err = DecompileCloseAccount(instruction)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)

	instruction.Program = keys[3]
	_, err = DecompileCloseAccount(instruction)
	assert.Equal(t, solana.ErrIncorrectProgram, err)
}

func TestSyncNative(t *testing.T) {
	keys := generateKeys(t, 1)

	instruction := SyncNative(keys[0])

	assert.Equal(t, []byte{17}, instruction.Data)
	require.Len(t, instruction.Accounts, 1)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[0].IsSigner)

	decompiled, err := DecompileSyncNative(instruction)
	require.NoError(t, err)
	assert.Equal(t, keys[0], decompiled.Account)

	instruction.Accounts = nil
	_, err = DecompileSyncNative(instruction)
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid number of accounts"))
}

func generateKeys(t *testing.T, amount int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, amount)

	for i := 0; i < amount; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = pub
	}

	return keys
}
