package memory

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/pkg/errors"
)

type frameKey struct{}

// frame is one level of the invocation stack. The root frame has no program
// and no views.
type frame struct {
	program ed25519.PublicKey
	depth   int
	parent  *frame
	views   []*view
	tx      *transaction
}

func (f *frame) verify() error {
	return verifyChanges(f.program, f.views)
}

// sync verifies the frame's pending changes and makes them its new baseline.
func (f *frame) sync() error {
	if err := f.verify(); err != nil {
		return err
	}
	f.resync()
	return nil
}

func (f *frame) resync() {
	for _, v := range f.views {
		v.pre = v.callee.Clone()
	}
}

func withFrame(ctx context.Context, f *frame) context.Context {
	return context.WithValue(ctx, frameKey{}, f)
}

func frameFromContext(ctx context.Context) (*frame, bool) {
	f, ok := ctx.Value(frameKey{}).(*frame)
	return f, ok && f != nil
}

// reenters reports whether invoking program from f would re-enter a program
// already on the stack. A program calling itself directly is allowed.
func (f *frame) reenters(program ed25519.PublicKey) bool {
	if f.program == nil || bytes.Equal(f.program, program) {
		return false
	}

	for cur := f.parent; cur != nil; cur = cur.parent {
		if cur.program != nil && bytes.Equal(cur.program, program) {
			return true
		}
	}
	return false
}

// transaction holds the state shared by every frame of one Execute call.
type transaction struct {
	mu             sync.Mutex
	remaining      uint64
	maxDepth       uint64
	logInvocations bool
	failure        error
}

func (t *transaction) consume(units uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.remaining < units {
		t.remaining = 0
		return errors.Wrapf(ErrComputeBudgetExceeded, "requested %d units", units)
	}
	t.remaining -= units
	return nil
}

func (t *transaction) fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.failure == nil {
		t.failure = err
	}
}

func (t *transaction) failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.failure != nil
}
