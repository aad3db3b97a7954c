package wrapper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorfi/mirrorfi-vault/pkg/config"
	"github.com/mirrorfi/mirrorfi-vault/pkg/config/memory"
)

func TestUint64Config_ComputeUnitLimit(t *testing.T) {
	ctx := context.Background()
	source := memory.NewConfig(nil)
	limit := NewUint64Config(source, 200_000)

	for _, tc := range []struct {
		name     string
		raw      interface{}
		expected uint64
		err      error
		invalid  bool
	}{
		{name: "unset", raw: nil, expected: 200_000},
		{name: "native", raw: uint64(1_400_000), expected: 1_400_000},
		{name: "uint", raw: uint(64), expected: 64},
		{name: "env bytes", raw: []byte("300000"), expected: 300_000},
		{name: "garbage bytes", raw: []byte("lots"), expected: 300_000, invalid: true},
		{name: "unsupported type", raw: "1400000", expected: 300_000, err: ErrUnsuportedConversion},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if tc.raw == nil {
				source.ClearValue()
			} else {
				source.SetValue(tc.raw)
			}

			val, err := limit.GetSafe(ctx)
			switch {
			case tc.err != nil:
				assert.Equal(t, tc.err, err)
			case tc.invalid:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expected, val)
			assert.Equal(t, tc.expected, limit.Get(ctx))
		})
	}
}

func TestUint64Config_LastObservedValue(t *testing.T) {
	ctx := context.Background()
	source := memory.NewConfig(uint64(8))
	depth := NewUint64Config(source, 4)
	assert.EqualValues(t, 8, depth.Get(ctx))

	source.InduceErrors()
	val, err := depth.GetSafe(ctx)
	assert.Error(t, err)
	assert.EqualValues(t, 8, val)

	source.StopInducingErrors()
	source.ClearValue()
	assert.EqualValues(t, 4, depth.Get(ctx))

	depth.Shutdown()
	_, err = depth.GetSafe(ctx)
	assert.Equal(t, config.ErrShutdown, err)
}

func TestBoolConfig_LogInvocations(t *testing.T) {
	ctx := context.Background()
	source := memory.NewConfig(nil)
	enabled := NewBoolConfig(source, true)
	assert.True(t, enabled.Get(ctx))

	source.SetValue(false)
	assert.False(t, enabled.Get(ctx))

	// Errors keep the last observed value
	source.InduceErrors()
	val, err := enabled.GetSafe(ctx)
	assert.Error(t, err)
	assert.False(t, val)

	source.StopInducingErrors()
	source.SetValue([]byte("true"))
	assert.True(t, enabled.Get(ctx))

	source.SetValue([]byte("maybe"))
	_, err = enabled.GetSafe(ctx)
	assert.Error(t, err)
	assert.True(t, enabled.Get(ctx))

	source.SetValue(1)
	_, err = enabled.GetSafe(ctx)
	assert.Equal(t, ErrUnsuportedConversion, err)

	enabled.Shutdown()
	_, err = enabled.GetSafe(ctx)
	assert.Equal(t, config.ErrShutdown, err)
}
