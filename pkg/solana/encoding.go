package solana

import (
	"bytes"
	"reflect"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"
)

var (
	// ErrEncodingFailed is returned when instruction arguments cannot be
	// serialized. It is a local failure and never reaches the target program.
	ErrEncodingFailed = errors.New("instruction encoding failed")

	// ErrDecodingFailed is returned when incoming instruction data cannot be
	// deserialized into the expected argument shape.
	ErrDecodingFailed = errors.New("instruction decoding failed")
)

// NewInstructionData builds an Anchor instruction payload: the discriminator
// for name followed by the Borsh encoding of args.
//
// args must be a struct of fixed-width fields, encoded positionally in declared
// order. A nil args produces a payload containing only the discriminator.
func NewInstructionData(name string, args interface{}) ([]byte, error) {
	disc := InstructionDiscriminator(name)

	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)

	if err := enc.WriteBytes(disc[:], false); err != nil {
		return nil, errors.Wrapf(ErrEncodingFailed, "%s: discriminator: %v", name, err)
	}

	if args == nil {
		return buf.Bytes(), nil
	}
	if v := reflect.ValueOf(args); v.Kind() == reflect.Ptr && v.IsNil() {
		return nil, errors.Wrapf(ErrEncodingFailed, "%s: nil %T arguments", name, args)
	}

	if err := enc.Encode(args); err != nil {
		return nil, errors.Wrapf(ErrEncodingFailed, "%s: %v", name, err)
	}

	return buf.Bytes(), nil
}

// DecodeInstructionData checks that data carries the discriminator for name and
// decodes the remaining bytes into args. A nil args only checks the
// discriminator.
func DecodeInstructionData(name string, data []byte, args interface{}) error {
	if len(data) < DiscriminatorSize {
		return ErrIncorrectInstruction
	}

	disc := InstructionDiscriminator(name)
	if !bytes.Equal(disc[:], data[:DiscriminatorSize]) {
		return ErrIncorrectInstruction
	}

	if args == nil {
		return nil
	}

	if err := bin.NewBorshDecoder(data[DiscriminatorSize:]).Decode(args); err != nil {
		return errors.Wrapf(ErrDecodingFailed, "%s: %v", name, err)
	}

	return nil
}
