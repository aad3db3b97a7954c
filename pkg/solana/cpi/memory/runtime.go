package memory

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"math/bits"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/system"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/token"
)

// InvokeUnits is the compute cost charged for every program invocation,
// including the top-level one.
const InvokeUnits = 1_000

// ProgramFunc is the behaviour of a program registered with the runtime.
//
// Any nested invocation must go through host with the provided ctx, so the
// runtime can attribute it to this program.
type ProgramFunc func(ctx context.Context, host cpi.Host, call *Call) error

// Call is what a program sees when it is invoked.
type Call struct {
	Program     ed25519.PublicKey
	Caller      ed25519.PublicKey
	Depth       int
	Instruction solana.Instruction

	// Accounts holds one handle per instruction descriptor, in descriptor
	// order. Descriptors that reference the same key share a handle.
	Accounts []*cpi.AccountInfo

	tx *transaction
}

// ConsumeUnits charges units against the transaction's compute budget.
func (c *Call) ConsumeUnits(units uint64) error {
	return c.tx.consume(units)
}

// Invocation is a log entry for one attempted program invocation.
type Invocation struct {
	Program     ed25519.PublicKey
	Caller      ed25519.PublicKey
	Depth       int
	Signed      bool
	Instruction solana.Instruction
	Err         error
}

// Runtime is an in-memory cpi.Host. It executes registered programs against
// caller supplied account handles and enforces the cross-program invocation
// privilege rules.
type Runtime struct {
	log  *logrus.Entry
	conf *conf

	programsMu sync.RWMutex
	programs   map[string]ProgramFunc

	invocationsMu sync.RWMutex
	invocations   []Invocation
}

// NewRuntime returns a Runtime with the system and token programs registered.
func NewRuntime(configProvider ConfigProvider) *Runtime {
	r := &Runtime{
		log:      logrus.StandardLogger().WithField("type", "solana/cpi/memory"),
		conf:     configProvider(),
		programs: make(map[string]ProgramFunc),
	}

	r.RegisterProgram(system.ProgramKey[:], processSystem)
	r.RegisterProgram(token.ProgramKey, processToken)

	return r
}

// RegisterProgram sets the behaviour of program, replacing any previous
// registration.
func (r *Runtime) RegisterProgram(program ed25519.PublicKey, fn ProgramFunc) {
	r.programsMu.Lock()
	r.programs[string(program)] = fn
	r.programsMu.Unlock()
}

// Invocations returns a copy of the invocation log.
func (r *Runtime) Invocations() []Invocation {
	r.invocationsMu.RLock()
	defer r.invocationsMu.RUnlock()

	res := make([]Invocation, len(r.invocations))
	copy(res, r.invocations)
	return res
}

// Reset clears the invocation log.
func (r *Runtime) Reset() {
	r.invocationsMu.Lock()
	r.invocations = nil
	r.invocationsMu.Unlock()
}

// Execute runs ix as a top-level instruction. The handles' IsSigner and
// IsWritable flags are the privileges granted by the transaction.
//
// Account changes are applied to the handles only if the instruction and every
// nested invocation succeed. Any failure aborts the whole instruction, even if
// the calling program ignored it.
func (r *Runtime) Execute(ctx context.Context, ix solana.Instruction, accounts []*cpi.AccountInfo) error {
	limit, err := r.conf.computeUnitLimit.GetSafe(ctx)
	if err != nil {
		return errors.Wrap(err, "error getting compute unit limit")
	}
	maxDepth, err := r.conf.maxCPIDepth.GetSafe(ctx)
	if err != nil {
		return errors.Wrap(err, "error getting max cpi depth")
	}

	tx := &transaction{
		remaining:      limit,
		maxDepth:       maxDepth,
		logInvocations: r.conf.logInvocations.Get(ctx),
	}

	return r.invoke(withFrame(ctx, &frame{tx: tx}), ix, accounts, nil)
}

// Invoke implements cpi.Host.Invoke.
func (r *Runtime) Invoke(ctx context.Context, ix solana.Instruction, accounts []*cpi.AccountInfo) error {
	return r.invoke(ctx, ix, accounts, nil)
}

// InvokeSigned implements cpi.Host.InvokeSigned.
func (r *Runtime) InvokeSigned(ctx context.Context, ix solana.Instruction, accounts []*cpi.AccountInfo, signers []solana.SignerSeeds) error {
	return r.invoke(ctx, ix, accounts, signers)
}

func (r *Runtime) invoke(ctx context.Context, ix solana.Instruction, accounts []*cpi.AccountInfo, signers []solana.SignerSeeds) error {
	parent, ok := frameFromContext(ctx)
	if !ok {
		return ErrNoActiveTransaction
	}

	depth := parent.depth + 1
	log := r.log.WithFields(logrus.Fields{
		"program": solana.PublicKeyToBase58(ix.Program),
		"depth":   depth,
		"signed":  len(signers) > 0,
	})

	err := r.run(ctx, parent, ix, accounts, signers)

	r.record(Invocation{
		Program:     ix.Program,
		Caller:      parent.program,
		Depth:       depth,
		Signed:      len(signers) > 0,
		Instruction: ix,
		Err:         err,
	})

	if err != nil {
		parent.tx.fail(err)
		if parent.tx.logInvocations {
			log.WithError(err).Warn("program invocation failed")
		}
		return solana.InstructionError{Index: depth, Err: err}
	}

	if parent.tx.logInvocations {
		log.Debug("program invocation succeeded")
	}
	return nil
}

func (r *Runtime) run(ctx context.Context, parent *frame, ix solana.Instruction, accounts []*cpi.AccountInfo, signers []solana.SignerSeeds) error {
	tx := parent.tx
	if tx.failed() {
		return ErrTransactionAborted
	}

	if err := tx.consume(InvokeUnits); err != nil {
		return err
	}

	if uint64(parent.depth) > tx.maxDepth {
		return errors.Wrapf(ErrCallDepth, "depth %d exceeds %d", parent.depth+1, tx.maxDepth+1)
	}

	programHandle := findHandle(accounts, ix.Program)
	if programHandle == nil {
		return ErrProgramNotProvided
	}
	if !programHandle.Executable {
		return errors.Wrapf(ErrProgramNotExecutable, "%s", programHandle)
	}
	fn, ok := r.program(ix.Program)
	if !ok {
		return errors.Wrapf(ErrUnsupportedProgram, "%s", programHandle)
	}
	if parent.reenters(ix.Program) {
		return errors.Wrapf(ErrReentrancy, "%s", programHandle)
	}

	callerHandles := make([]*cpi.AccountInfo, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		handle := findHandle(accounts, meta.PublicKey)
		if handle == nil {
			return errors.Wrapf(ErrAccountNotFound, "%s", solana.PublicKeyToBase58(meta.PublicKey))
		}
		callerHandles[i] = handle
	}

	for i, meta := range ix.Accounts {
		if meta.IsWritable && !callerHandles[i].IsWritable {
			return errors.Wrapf(ErrWritablePrivilege, "%s", callerHandles[i])
		}
	}

	pdaSigners, err := derivePDASigners(parent.program, signers)
	if err != nil {
		return err
	}
	for i, meta := range ix.Accounts {
		if !meta.IsSigner || callerHandles[i].IsSigner {
			continue
		}
		if _, ok := pdaSigners[string(meta.PublicKey)]; !ok {
			return errors.Wrapf(ErrSignerPrivilege, "%s", callerHandles[i])
		}
	}

	// Changes the caller made so far must be valid before the callee sees them
	if err := parent.sync(); err != nil {
		return err
	}

	views, unique := newViews(ix.Accounts, callerHandles)
	call := &Call{
		Program:     ix.Program,
		Caller:      parent.program,
		Depth:       parent.depth + 1,
		Instruction: ix,
		Accounts:    views,
		tx:          tx,
	}

	child := &frame{
		program: ix.Program,
		depth:   parent.depth + 1,
		parent:  parent,
		views:   unique,
		tx:      tx,
	}
	if err := fn(withFrame(ctx, child), r, call); err != nil {
		return err
	}
	if tx.failed() {
		return ErrTransactionAborted
	}

	if err := child.verify(); err != nil {
		return err
	}
	writeBack(unique, accounts)

	// What the callee changed is not attributed to the caller
	parent.resync()
	return nil
}

func (r *Runtime) program(id ed25519.PublicKey) (ProgramFunc, bool) {
	r.programsMu.RLock()
	defer r.programsMu.RUnlock()

	fn, ok := r.programs[string(id)]
	return fn, ok
}

func (r *Runtime) record(invocation Invocation) {
	r.invocationsMu.Lock()
	r.invocations = append(r.invocations, invocation)
	r.invocationsMu.Unlock()
}

func derivePDASigners(caller ed25519.PublicKey, signers []solana.SignerSeeds) (map[string]struct{}, error) {
	res := make(map[string]struct{}, len(signers))
	if len(signers) == 0 {
		return res, nil
	}

	if caller == nil {
		return nil, errors.Wrap(ErrInvalidSignerSeeds, "top-level instructions cannot sign with seeds")
	}

	for _, seeds := range signers {
		address, err := seeds.Address(caller)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidSignerSeeds, "%v", err)
		}
		res[string(address)] = struct{}{}
	}
	return res, nil
}

func findHandle(accounts []*cpi.AccountInfo, key ed25519.PublicKey) *cpi.AccountInfo {
	for _, account := range accounts {
		if account.Is(key) {
			return account
		}
	}
	return nil
}

// view is the callee's copy of an account. pre is the state the callee is
// accountable for changes against.
type view struct {
	callee *cpi.AccountInfo
	pre    *cpi.AccountInfo
}

func newViews(metas []solana.AccountMeta, callerHandles []*cpi.AccountInfo) ([]*cpi.AccountInfo, []*view) {
	res := make([]*cpi.AccountInfo, len(metas))
	var unique []*view
	seen := make(map[string]*view)

	for i, meta := range metas {
		v, ok := seen[string(meta.PublicKey)]
		if !ok {
			callee := callerHandles[i].Clone()
			callee.IsSigner = false
			callee.IsWritable = false

			v = &view{callee: callee, pre: callerHandles[i].Clone()}
			seen[string(meta.PublicKey)] = v
			unique = append(unique, v)
		}

		v.callee.IsSigner = v.callee.IsSigner || meta.IsSigner
		v.callee.IsWritable = v.callee.IsWritable || meta.IsWritable
		res[i] = v.callee
	}

	return res, unique
}

// verifyChanges checks what program did to views since their pre state.
func verifyChanges(program ed25519.PublicKey, views []*view) error {
	var before, after, carry uint64
	for _, v := range views {
		pre, post := v.pre, v.callee

		var c uint64
		before, c = bits.Add64(before, pre.Lamports, 0)
		carry |= c
		after, c = bits.Add64(after, post.Lamports, 0)
		carry |= c

		dataChanged := !bytes.Equal(pre.Data, post.Data)
		ownerChanged := !bytes.Equal(pre.Owner, post.Owner)
		lamportsChanged := pre.Lamports != post.Lamports

		if !dataChanged && !ownerChanged && !lamportsChanged {
			continue
		}

		if !post.IsWritable {
			return errors.Wrapf(ErrReadonlyDataModified, "%s", post)
		}

		ownedByProgram := pre.IsOwnedBy(program) || (bytes.Equal(program, system.ProgramKey[:]) && isSystemOwned(pre))
		debited := post.Lamports < pre.Lamports
		if (dataChanged || ownerChanged || debited) && !ownedByProgram {
			return errors.Wrapf(ErrExternalAccountModified, "%s", post)
		}
	}

	if carry != 0 {
		return errors.Wrap(ErrUnbalancedInstruction, "lamport total overflows")
	}
	if before != after {
		return errors.Wrapf(ErrUnbalancedInstruction, "lamports before %d, after %d", before, after)
	}

	return nil
}

// writeBack applies the callee's state to every caller handle for the same
// key.
func writeBack(views []*view, accounts []*cpi.AccountInfo) {
	for _, v := range views {
		for _, account := range accounts {
			if !account.Is(v.callee.Key) {
				continue
			}
			account.Lamports = v.callee.Lamports
			account.Owner = append(ed25519.PublicKey(nil), v.callee.Owner...)
			account.Data = append([]byte(nil), v.callee.Data...)
		}
	}
}
