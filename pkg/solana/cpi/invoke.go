package cpi

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
)

var (
	// ErrExternalCallFailed is the single error kind surfaced for any failure
	// reported by the host while executing an external instruction.
	ErrExternalCallFailed = errors.New("external call failed")

	// ErrInvalidProgram is returned when the program handle is missing or does
	// not match the instruction's target.
	ErrInvalidProgram = errors.New("invalid program account")
)

// ExternalCallError wraps a host failure. Callers should match it with
// errors.Is(err, ErrExternalCallFailed); the cause is kept for diagnostics and
// is not meant to be branched on.
type ExternalCallError struct {
	Program     string
	Instruction string
	Signed      bool
	Cause       error
}

func (e *ExternalCallError) Error() string {
	return fmt.Sprintf("%v: %s on %s: %v", ErrExternalCallFailed, e.Instruction, e.Program, e.Cause)
}

func (e *ExternalCallError) Unwrap() error {
	return e.Cause
}

func (e *ExternalCallError) Is(target error) bool {
	return target == ErrExternalCallFailed
}

// Invoke relays ix to host. The program handle is appended after accounts.
//
// With no signers the call goes through Host.Invoke; otherwise every seed set
// is forwarded to Host.InvokeSigned. Host failures are returned as an
// *ExternalCallError and are never retried.
func Invoke(
	ctx context.Context,
	host Host,
	program *AccountInfo,
	ix solana.Instruction,
	accounts []*AccountInfo,
	signers ...solana.SignerSeeds,
) error {
	if program == nil || !program.Is(ix.Program) {
		return ErrInvalidProgram
	}

	handles := make([]*AccountInfo, 0, len(accounts)+1)
	handles = append(handles, accounts...)
	handles = append(handles, program)

	var err error
	if len(signers) == 0 {
		err = host.Invoke(ctx, ix, handles)
	} else {
		err = host.InvokeSigned(ctx, ix, handles, signers)
	}
	if err != nil {
		return &ExternalCallError{
			Program:     program.String(),
			Instruction: instructionName(ix),
			Signed:      len(signers) > 0,
			Cause:       err,
		}
	}

	return nil
}

func instructionName(ix solana.Instruction) string {
	disc, ok := ix.Discriminator()
	if !ok {
		return fmt.Sprintf("instruction(%x)", ix.Data)
	}
	return fmt.Sprintf("instruction(%x)", disc[:])
}

// BuildInstruction encodes an Anchor instruction named after schema, targeting
// program, with args as its Borsh payload and set laid out by schema. A nil
// args produces a discriminator-only payload.
func BuildInstruction(program *AccountInfo, schema Schema, args interface{}, set AccountSet) (solana.Instruction, []*AccountInfo, error) {
	if program == nil {
		return solana.Instruction{}, nil, ErrInvalidProgram
	}

	data, err := solana.NewInstructionData(schema.Name(), args)
	if err != nil {
		return solana.Instruction{}, nil, err
	}

	return schema.NewInstruction(program.Key, data, set)
}
