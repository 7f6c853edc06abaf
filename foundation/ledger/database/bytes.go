package database

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// MaxKeyBytes is the largest encoded public key a transaction can carry.
const MaxKeyBytes = 1024

// MaxSignatureBytes is the largest signature a transaction can carry.
const MaxSignatureBytes = 1024

// Set of errors for byte fields that fail validation.
var (
	ErrEmptyBytes    = errors.New("no bytes provided")
	ErrBytesTooLarge = errors.New("bytes exceed capacity")
)

// =============================================================================

// KeyBytes represents the canonical encoding of a wallet public key as it is
// recorded inside a transaction.
type KeyBytes []byte

// NewKeyBytes validates and copies the specified encoded key.
func NewKeyBytes(b []byte) (KeyBytes, error) {
	if err := checkLength(b, MaxKeyBytes); err != nil {
		return nil, fmt.Errorf("key: %w", err)
	}

	return KeyBytes(bytes.Clone(b)), nil
}

// Equal reports whether both encodings are byte for byte the same.
func (kb KeyBytes) Equal(other KeyBytes) bool {
	return bytes.Equal(kb, other)
}

// String implements the fmt.Stringer interface.
func (kb KeyBytes) String() string {
	return hexutil.Encode(kb)
}

// MarshalText implements the encoding.TextMarshaler interface.
func (kb KeyBytes) MarshalText() ([]byte, error) {
	return hexutil.Bytes(kb).MarshalText()
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (kb *KeyBytes) UnmarshalText(input []byte) error {
	var b hexutil.Bytes
	if err := b.UnmarshalText(input); err != nil {
		return err
	}

	if err := checkLength(b, MaxKeyBytes); err != nil {
		return fmt.Errorf("key: %w", err)
	}

	*kb = KeyBytes(b)
	return nil
}

// =============================================================================

// Signature represents the opaque signature bytes recorded inside a
// transaction.
type Signature []byte

// NewSignature validates and copies the specified signature.
func NewSignature(b []byte) (Signature, error) {
	if err := checkLength(b, MaxSignatureBytes); err != nil {
		return nil, fmt.Errorf("signature: %w", err)
	}

	return Signature(bytes.Clone(b)), nil
}

// Equal reports whether both signatures are byte for byte the same.
func (s Signature) Equal(other Signature) bool {
	return bytes.Equal(s, other)
}

// String implements the fmt.Stringer interface.
func (s Signature) String() string {
	return hexutil.Encode(s)
}

// MarshalText implements the encoding.TextMarshaler interface.
func (s Signature) MarshalText() ([]byte, error) {
	return hexutil.Bytes(s).MarshalText()
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. An empty
// signature is accepted here and fails verification later.
func (s *Signature) UnmarshalText(input []byte) error {
	var b hexutil.Bytes
	if err := b.UnmarshalText(input); err != nil {
		return err
	}

	if len(b) > MaxSignatureBytes {
		return fmt.Errorf("signature: %w: got %d, max %d", ErrBytesTooLarge, len(b), MaxSignatureBytes)
	}

	*s = Signature(b)
	return nil
}

// =============================================================================

func checkLength(b []byte, max int) error {
	switch {
	case len(b) == 0:
		return ErrEmptyBytes
	case len(b) > max:
		return fmt.Errorf("%w: got %d, max %d", ErrBytesTooLarge, len(b), max)
	}

	return nil
}
