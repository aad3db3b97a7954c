package memory

import (
	"github.com/mirrorfi/mirrorfi-vault/pkg/config"
	"github.com/mirrorfi/mirrorfi-vault/pkg/config/env"
	memoryconfig "github.com/mirrorfi/mirrorfi-vault/pkg/config/memory"
	"github.com/mirrorfi/mirrorfi-vault/pkg/config/wrapper"
)

const (
	envConfigPrefix = "RUNTIME_"

	ComputeUnitLimitConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_LIMIT"
	defaultComputeUnitLimit       = 200_000

	MaxCPIDepthConfigEnvName = envConfigPrefix + "MAX_CPI_DEPTH"
	defaultMaxCPIDepth       = 4

	LogInvocationsConfigEnvName = envConfigPrefix + "LOG_INVOCATIONS"
	defaultLogInvocations       = true
)

type conf struct {
	computeUnitLimit config.Uint64
	maxCPIDepth      config.Uint64
	logInvocations   config.Bool
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			computeUnitLimit: env.NewUint64Config(ComputeUnitLimitConfigEnvName, defaultComputeUnitLimit),
			maxCPIDepth:      env.NewUint64Config(MaxCPIDepthConfigEnvName, defaultMaxCPIDepth),
			logInvocations:   env.NewBoolConfig(LogInvocationsConfigEnvName, defaultLogInvocations),
		}
	}
}

// TestOverrides pins runtime limits. Zero values fall back to the defaults.
type TestOverrides struct {
	ComputeUnitLimit uint64
	MaxCPIDepth      uint64
	DisableLogging   bool
}

// WithTestOverrides returns configuration backed by in memory values
func WithTestOverrides(overrides *TestOverrides) ConfigProvider {
	computeUnitLimit := uint64(defaultComputeUnitLimit)
	if overrides.ComputeUnitLimit > 0 {
		computeUnitLimit = overrides.ComputeUnitLimit
	}

	maxCPIDepth := uint64(defaultMaxCPIDepth)
	if overrides.MaxCPIDepth > 0 {
		maxCPIDepth = overrides.MaxCPIDepth
	}

	return func() *conf {
		return &conf{
			computeUnitLimit: wrapper.NewUint64Config(memoryconfig.NewConfig(computeUnitLimit), defaultComputeUnitLimit),
			maxCPIDepth:      wrapper.NewUint64Config(memoryconfig.NewConfig(maxCPIDepth), defaultMaxCPIDepth),
			logInvocations:   wrapper.NewBoolConfig(memoryconfig.NewConfig(!overrides.DisableLogging), defaultLogInvocations),
		}
	}
}
