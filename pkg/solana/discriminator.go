package solana

import (
	"crypto/sha256"
)

// DiscriminatorSize is the width of an Anchor instruction or account
// discriminator.
const DiscriminatorSize = 8

const (
	instructionNamespace = "global"
	accountNamespace     = "account"
)

// InstructionDiscriminator returns the 8-byte selector Anchor programs use to
// route an instruction: the first 8 bytes of sha256("global:<name>").
//
// The name must be the instruction's snake_case name as compiled into the
// target program (e.g. "init_obligation").
func InstructionDiscriminator(name string) [DiscriminatorSize]byte {
	return namespacedDiscriminator(instructionNamespace, name)
}

// AccountDiscriminator returns the 8-byte tag Anchor prefixes account data
// with: the first 8 bytes of sha256("account:<Name>").
func AccountDiscriminator(name string) [DiscriminatorSize]byte {
	return namespacedDiscriminator(accountNamespace, name)
}

func namespacedDiscriminator(namespace, name string) [DiscriminatorSize]byte {
	hash := sha256.Sum256([]byte(namespace + ":" + name))

	var disc [DiscriminatorSize]byte
	copy(disc[:], hash[:DiscriminatorSize])
	return disc
}
