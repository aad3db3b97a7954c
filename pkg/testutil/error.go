package testutil

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
)

// AssertCustomError verifies that the provided error carries the expected
// custom program error somewhere in its chain.
func AssertCustomError(t *testing.T, err error, expected solana.CustomError) {
	require.Error(t, err)

	var actual solana.CustomError
	require.True(t, errors.As(err, &actual), "expected custom error 0x%x, got %v", uint32(expected), err)
	assert.Equal(t, expected, actual)
}
