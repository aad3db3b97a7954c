package vault

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
)

// Context is what a handler needs besides its accounts and arguments.
type Context struct {
	ctx  context.Context
	host cpi.Host
	now  time.Time
	log  *logrus.Entry
}

// NewContext returns a handler context whose nested invocations go through
// host, observing now as the cluster time.
func NewContext(ctx context.Context, host cpi.Host, now time.Time) *Context {
	return &Context{
		ctx:  ctx,
		host: host,
		now:  now,
		log:  logrus.StandardLogger().WithField("type", "vault/handler"),
	}
}

// UnixTimestamp is the cluster clock as seen by the instruction.
func (c *Context) UnixTimestamp() int64 {
	return c.now.Unix()
}

func (c *Context) withInstruction(name string) *Context {
	cloned := *c
	cloned.log = c.log.WithField("instruction", name)
	return &cloned
}
