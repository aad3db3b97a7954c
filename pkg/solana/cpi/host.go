package cpi

import (
	"context"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
)

// Host is the runtime that executes cross-program invocations on behalf of the
// calling program.
//
// accounts carries every handle the callee needs, program handle included.
// Hosts are expected to abort and revert the enclosing transaction when an
// invocation fails; callers never attempt compensation.
type Host interface {
	// Invoke executes ix using only the privileges already held by the
	// caller's handles.
	Invoke(ctx context.Context, ix solana.Instruction, accounts []*AccountInfo) error

	// InvokeSigned executes ix, additionally granting signer privilege to every
	// program derived address reproduced by one of the signer seed sets under
	// the calling program's id.
	InvokeSigned(ctx context.Context, ix solana.Instruction, accounts []*AccountInfo, signers []solana.SignerSeeds) error
}
