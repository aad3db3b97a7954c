package cpi

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mirrorfi/mirrorfi-vault/pkg/solana"
)

// AccountInfo is a program's view of an account during execution.
//
// IsSigner and IsWritable describe the privileges the current instruction was
// granted for the account. They are never used to decide the flags of an
// outgoing instruction; those come from the callee's Schema.
type AccountInfo struct {
	Key        ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	Executable bool
	Owner      ed25519.PublicKey
	Lamports   uint64
	Data       []byte
}

// NewAccountInfo returns a plain, non-privileged handle for key.
func NewAccountInfo(key ed25519.PublicKey) *AccountInfo {
	return &AccountInfo{Key: key}
}

// NewProgramAccountInfo returns an executable handle for a program id.
func NewProgramAccountInfo(program ed25519.PublicKey) *AccountInfo {
	return &AccountInfo{
		Key:        program,
		Executable: true,
	}
}

// Is reports whether the handle refers to key.
func (a *AccountInfo) Is(key ed25519.PublicKey) bool {
	return a != nil && bytes.Equal(a.Key, key)
}

// IsOwnedBy reports whether the account is owned by program.
func (a *AccountInfo) IsOwnedBy(program ed25519.PublicKey) bool {
	return a != nil && bytes.Equal(a.Owner, program)
}

// Clone returns a deep copy of the handle.
func (a *AccountInfo) Clone() *AccountInfo {
	if a == nil {
		return nil
	}

	cloned := *a
	cloned.Key = append(ed25519.PublicKey(nil), a.Key...)
	cloned.Owner = append(ed25519.PublicKey(nil), a.Owner...)
	cloned.Data = append([]byte(nil), a.Data...)
	return &cloned
}

func (a *AccountInfo) String() string {
	if a == nil {
		return "<nil>"
	}
	return solana.PublicKeyToBase58(a.Key)
}
