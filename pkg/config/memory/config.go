package memory

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/mirrorfi/mirrorfi-vault/pkg/config"
)

var errDeveloperInduced = errors.New("in memory config: developer induced error")

// Config is an in memory config used for testing
type Config struct {
	stateMu  sync.RWMutex
	value    interface{}
	err      error
	shutdown bool
	reads    int
}

// NewConfig returns a new in memory config. Use an initial nil value to indicate
// no value is set
func NewConfig(value interface{}) *Config {
	return &Config{
		value: value,
	}
}

// Get implements Config.Get
func (c *Config) Get(_ context.Context) (interface{}, error) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	c.reads++

	switch {
	case c.shutdown:
		return nil, config.ErrShutdown
	case c.err != nil:
		return nil, c.err
	case c.value == nil:
		return nil, config.ErrNoValue
	}
	return c.value, nil
}

// Shutdown implements Config.Shutdown
func (c *Config) Shutdown() {
	c.set(func() { c.shutdown = true })
}

// SetValue sets the value that should be returned on subsequent Get calls
func (c *Config) SetValue(value interface{}) {
	c.set(func() { c.value = value })
}

// ClearValue sets up the config as if no value has been set, resulting in
// ErrNoValue being returned on subsequent Get Calls
func (c *Config) ClearValue() {
	c.set(func() { c.value = nil })
}

// InduceErrors instructs the config to simulate an error getting a config value
func (c *Config) InduceErrors() {
	c.set(func() { c.err = errDeveloperInduced })
}

// StopInducingErrors stops the config from simulating an error getting a config value
func (c *Config) StopInducingErrors() {
	c.set(func() { c.err = nil })
}

// Reads returns the number of Get calls observed so far.
func (c *Config) Reads() int {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.reads
}

func (c *Config) set(fn func()) {
	c.stateMu.Lock()
	fn()
	c.stateMu.Unlock()
}
