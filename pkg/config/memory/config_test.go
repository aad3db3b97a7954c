package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorfi/mirrorfi-vault/pkg/config"
)

func TestConfig_Lifecycle(t *testing.T) {
	ctx := context.Background()

	c := NewConfig(uint64(4))
	val, err := c.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, val)

	c.SetValue(uint64(8))
	val, err = c.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 8, val)

	c.InduceErrors()
	_, err = c.Get(ctx)
	assert.Equal(t, errDeveloperInduced, err)
	c.StopInducingErrors()

	c.ClearValue()
	_, err = c.Get(ctx)
	assert.Equal(t, config.ErrNoValue, err)

	c.Shutdown()
	c.SetValue(uint64(16))
	_, err = c.Get(ctx)
	assert.Equal(t, config.ErrShutdown, err)

	assert.Equal(t, 5, c.Reads())
}
