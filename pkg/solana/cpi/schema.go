package cpi

import (
	"crypto/ed25519"
	"fmt"

	"github.com/pkg/errors"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
)

var (
	// ErrMissingAccount is returned when a required account was not provided.
	// It is detected before any external call is made.
	ErrMissingAccount = errors.New("required account not provided")

	// ErrAccountKindMismatch is returned when an AccountSet entry does not
	// match the multiplicity its Schema entry declares.
	ErrAccountKindMismatch = errors.New("account kind does not match schema")
)

// Kind is the multiplicity of a schema entry.
type Kind uint8

const (
	// KindRequired entries contribute exactly one descriptor.
	KindRequired Kind = iota
	// KindOptional entries contribute one descriptor when present and none
	// otherwise.
	KindOptional
	// KindRepeated entries contribute one descriptor per handle, in caller order.
	KindRepeated
)

func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindOptional:
		return "optional"
	case KindRepeated:
		return "repeated"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// AccountSpec declares one position in an instruction's account list.
type AccountSpec struct {
	Name     string
	Writable bool
	Signer   bool
	Kind     Kind
}

// Account declares a required account.
func Account(name string, writable, signer bool) AccountSpec {
	return AccountSpec{Name: name, Writable: writable, Signer: signer, Kind: KindRequired}
}

// OptionalAccount declares an account that may be omitted entirely.
func OptionalAccount(name string, writable, signer bool) AccountSpec {
	return AccountSpec{Name: name, Writable: writable, Signer: signer, Kind: KindOptional}
}

// RepeatedAccounts declares a variable-length run of accounts sharing the same
// flags.
func RepeatedAccounts(name string, writable, signer bool) AccountSpec {
	return AccountSpec{Name: name, Writable: writable, Signer: signer, Kind: KindRepeated}
}

// Schema is the ordered account contract of one external instruction.
type Schema struct {
	name  string
	specs []AccountSpec
}

// NewSchema builds a Schema. It panics on duplicate entry names, since schemas
// are package-level tables.
func NewSchema(name string, specs ...AccountSpec) Schema {
	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		if _, ok := seen[spec.Name]; ok {
			panic(fmt.Sprintf("cpi: duplicate account %q in schema %s", spec.Name, name))
		}
		seen[spec.Name] = struct{}{}
	}

	return Schema{
		name:  name,
		specs: append([]AccountSpec(nil), specs...),
	}
}

// Name returns the instruction name the schema describes.
func (s Schema) Name() string {
	return s.name
}

// Specs returns a copy of the schema entries in declared order.
func (s Schema) Specs() []AccountSpec {
	return append([]AccountSpec(nil), s.specs...)
}

// Build lays out set according to the schema. Descriptors and handles are
// returned in the same order. Flags come from the schema entries only.
func (s Schema) Build(set AccountSet) ([]solana.AccountMeta, []*AccountInfo, error) {
	metas := make([]solana.AccountMeta, 0, len(s.specs))
	handles := make([]*AccountInfo, 0, len(s.specs))

	add := func(spec AccountSpec, handle *AccountInfo) {
		metas = append(metas, solana.AccountMeta{
			PublicKey:  handle.Key,
			IsSigner:   spec.Signer,
			IsWritable: spec.Writable,
		})
		handles = append(handles, handle)
	}

	for _, spec := range s.specs {
		slot, ok := set[spec.Name]
		if ok && slot.kind != spec.Kind {
			return nil, nil, errors.Wrapf(ErrAccountKindMismatch, "%s.%s: expected %s, got %s", s.name, spec.Name, spec.Kind, slot.kind)
		}

		switch spec.Kind {
		case KindRequired:
			if !ok || slot.one == nil {
				return nil, nil, errors.Wrapf(ErrMissingAccount, "%s.%s", s.name, spec.Name)
			}
			add(spec, slot.one)
		case KindOptional:
			if handle, present := slot.maybe.Get(); ok && present {
				add(spec, handle)
			}
		case KindRepeated:
			for i, handle := range slot.many {
				if handle == nil {
					return nil, nil, errors.Wrapf(ErrMissingAccount, "%s.%s[%d]", s.name, spec.Name, i)
				}
				add(spec, handle)
			}
		}
	}

	return metas, handles, nil
}

// NewInstruction builds the instruction targeting program with the provided
// payload, along with the handles to pass to the host.
func (s Schema) NewInstruction(program ed25519.PublicKey, data []byte, set AccountSet) (solana.Instruction, []*AccountInfo, error) {
	metas, handles, err := s.Build(set)
	if err != nil {
		return solana.Instruction{}, nil, err
	}

	return solana.NewInstruction(program, data, metas...), handles, nil
}

// Slot is the value an AccountSet binds to a schema entry.
type Slot struct {
	kind  Kind
	one   *AccountInfo
	maybe Optional
	many  []*AccountInfo
}

// One binds a required account.
func One(account *AccountInfo) Slot {
	return Slot{kind: KindRequired, one: account}
}

// Maybe binds an optional account.
func Maybe(account Optional) Slot {
	return Slot{kind: KindOptional, maybe: account}
}

// Many binds a repeated run of accounts. Order is preserved.
func Many(accounts []*AccountInfo) Slot {
	return Slot{kind: KindRepeated, many: accounts}
}

// AccountSet binds schema entry names to caller-supplied handles.
type AccountSet map[string]Slot

// Optional is an account that is either present or absent. The zero value is
// absent.
type Optional struct {
	account *AccountInfo
}

// Some returns a present Optional. A nil handle yields an absent Optional.
func Some(account *AccountInfo) Optional {
	return Optional{account: account}
}

// None returns an absent Optional.
func None() Optional {
	return Optional{}
}

// Get returns the handle and whether it is present.
func (o Optional) Get() (*AccountInfo, bool) {
	return o.account, o.account != nil
}

// IsSome reports whether the account is present.
func (o Optional) IsSome() bool {
	return o.account != nil
}
