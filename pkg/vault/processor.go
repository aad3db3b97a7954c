package vault

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi"
	"github.com/mirrorfi/mirrorfi-vault/pkg/solana/cpi/memory"
)

type handlerFunc func(c *Context, name string, accounts []*cpi.AccountInfo, data []byte) error

type instruction struct {
	name   string
	handle handlerFunc
}

// Processor routes vault instructions to their handlers by Anchor selector.
type Processor struct {
	log   *logrus.Entry
	clock func() time.Time

	instructions map[[solana.DiscriminatorSize]byte]instruction
}

type Option func(*Processor)

// WithClock overrides the time source used for record timestamps.
func WithClock(clock func() time.Time) Option {
	return func(p *Processor) {
		p.clock = clock
	}
}

func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		log:          logrus.StandardLogger().WithField("type", "vault/processor"),
		clock:        time.Now,
		instructions: make(map[[solana.DiscriminatorSize]byte]instruction),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.register(InstructionInitializeProtocol, withArgs(readInitializeProtocolAccounts, InitializeProtocol))
	p.register(InstructionFreezeProtocol, withoutArgs(readProtocolOwnerAccounts, FreezeProtocol))
	p.register(InstructionUnfreezeProtocol, withoutArgs(readProtocolOwnerAccounts, UnfreezeProtocol))

	p.register(InstructionInitializeVault, withArgs(readInitializeVaultAccounts, InitializeVault))
	p.register(InstructionFreezeVault, withoutArgs(readVaultManagerAccounts, FreezeVault))
	p.register(InstructionUnfreezeVault, withoutArgs(readVaultManagerAccounts, UnfreezeVault))
	p.register(InstructionCollectVaultFee, withArgs(readCollectVaultFeeAccounts, CollectVaultFee))

	p.register(InstructionWrapSol, withArgs(readWrapSolAccounts, WrapSol))
	p.register(InstructionUnwrapSol, withArgs(readUnwrapSolAccounts, UnwrapSol))

	p.register(InstructionKaminoInitObligation, withArgs(readKaminoInitObligationAccounts, KaminoInitObligation))
	p.register(InstructionKaminoInitObligationFarmsForReserve, withArgs(readKaminoInitObligationFarmsForReserveAccounts, KaminoInitObligationFarmsForReserve))
	p.register(InstructionKaminoRefreshReserve, withoutArgs(readKaminoRefreshReserveAccounts, KaminoRefreshReserve))
	p.register(InstructionKaminoRefreshObligation, withoutArgs(readKaminoRefreshObligationAccounts, KaminoRefreshObligation))
	p.register(InstructionKaminoDeposit, withArgs(readKaminoDepositAccounts, KaminoDeposit))
	p.register(InstructionKaminoBorrow, withArgs(readKaminoBorrowAccounts, KaminoBorrow))

	p.register(InstructionRandomCpi, withoutArgs(readRandomCpiAccounts, RandomCpi))

	return p
}

func (p *Processor) register(name string, handle handlerFunc) {
	p.instructions[solana.InstructionDiscriminator(name)] = instruction{name: name, handle: handle}
}

// Process executes one vault instruction as program against accounts.
func (p *Processor) Process(ctx context.Context, host cpi.Host, program ed25519.PublicKey, accounts []*cpi.AccountInfo, data []byte) error {
	if !bytes.Equal(program, PROGRAM_ID) {
		return ErrorDeclaredProgramIDMismatch
	}
	if len(data) < solana.DiscriminatorSize {
		return ErrorInstructionFallbackNotFound
	}

	var selector [solana.DiscriminatorSize]byte
	copy(selector[:], data)

	ix, ok := p.instructions[selector]
	if !ok {
		return ErrorInstructionFallbackNotFound
	}

	log := p.log.WithField("instruction", ix.name)
	log.Debug("processing instruction")

	c := NewContext(ctx, host, p.clock()).withInstruction(ix.name)
	if err := ix.handle(c, ix.name, accounts, data); err != nil {
		var code solana.CustomError
		if errors.As(err, &code) {
			log = log.WithField("code", uint32(code)).WithField("msg", ErrorMessage(code))
		}
		log.WithError(err).Warn("instruction failed")
		return err
	}

	return nil
}

// Execute runs the vault program under an in-memory runtime.
func (p *Processor) Execute(ctx context.Context, host cpi.Host, call *memory.Call) error {
	return p.Process(ctx, host, call.Program, call.Accounts, call.Instruction.Data)
}

// Register installs the processor as PROGRAM_ID on runtime.
func (p *Processor) Register(runtime *memory.Runtime) {
	runtime.RegisterProgram(PROGRAM_ID, p.Execute)
}

// withArgs decodes the instruction's Borsh arguments into T, then reads its
// accounts with read.
func withArgs[A, T any](read func(*accountReader) *A, handle func(*Context, *A, *T) error) handlerFunc {
	return func(c *Context, name string, accounts []*cpi.AccountInfo, data []byte) error {
		var args T
		if err := solana.DecodeInstructionData(name, data, &args); err != nil {
			return errors.Wrap(ErrorInstructionDidNotDeserialize, err.Error())
		}

		parsed, err := readAccounts(accounts, read)
		if err != nil {
			return err
		}
		return handle(c, parsed, &args)
	}
}

func withoutArgs[A any](read func(*accountReader) *A, handle func(*Context, *A) error) handlerFunc {
	return func(c *Context, name string, accounts []*cpi.AccountInfo, data []byte) error {
		if err := solana.DecodeInstructionData(name, data, nil); err != nil {
			return errors.Wrap(ErrorInstructionDidNotDeserialize, err.Error())
		}

		parsed, err := readAccounts(accounts, read)
		if err != nil {
			return err
		}
		return handle(c, parsed)
	}
}

func readAccounts[A any](accounts []*cpi.AccountInfo, read func(*accountReader) *A) (*A, error) {
	r := newAccountReader(accounts)
	parsed := read(r)
	if r.err != nil {
		return nil, r.err
	}
	return parsed, nil
}
