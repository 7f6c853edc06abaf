// Package wallet provides support for loading the key material that
// identifies a wallet on the ledger.
package wallet

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Set of errors returned when key material can't be loaded. Both end the
// session that asked for the key.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyParse    = errors.New("key could not be parsed")
)

// PublicKeyFile is the name of the public key file inside a wallet folder.
const PublicKeyFile = "public_key.pem"

// PrivateKeyFile is the name of the private key file inside a wallet folder.
const PrivateKeyFile = "private_key.pem"

// =============================================================================

// Key is a wallet public key. It is read-only once loaded and safe to share
// between goroutines.
type Key struct {
	pub     *rsa.PublicKey
	encoded database.KeyBytes
}

// NewKey constructs a Key from an RSA public key.
func NewKey(pub *rsa.PublicKey) (Key, error) {
	if pub == nil || pub.N == nil {
		return Key{}, fmt.Errorf("%w: no public key provided", ErrKeyParse)
	}

	if pub.E < 2 {
		return Key{}, fmt.Errorf("%w: public exponent %d", ErrKeyParse, pub.E)
	}

	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %s", ErrKeyParse, err)
	}

	encoded, err := database.NewKeyBytes(der)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %s", ErrKeyParse, err)
	}

	return Key{pub: pub, encoded: encoded}, nil
}

// ParseKey decodes the canonical encoding of a key as it's recorded
// inside a transaction.
func ParseKey(kb database.KeyBytes) (Key, error) {
	pub, err := x509.ParsePKIXPublicKey(kb)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %s", ErrKeyParse, err)
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return Key{}, fmt.Errorf("%w: not an RSA public key", ErrKeyParse)
	}

	return NewKey(rsaPub)
}

// IsZero reports whether the key was never loaded.
func (k Key) IsZero() bool {
	return k.pub == nil
}

// PublicKey returns the RSA public key.
func (k Key) PublicKey() *rsa.PublicKey {
	return k.pub
}

// Bytes returns the canonical encoding of the key. This is the value
// recorded in the sender and recipient fields of a transaction.
func (k Key) Bytes() database.KeyBytes {
	return k.encoded
}

// Size returns the modulus size in bytes. Signatures made by the
// matching private key are exactly this long.
func (k Key) Size() int {
	if k.pub == nil {
		return 0
	}
	return k.pub.Size()
}

// Address returns a short printable identity for the key derived from the
// last 20 bytes of the Keccak256 hash of its canonical encoding.
func (k Key) Address() string {
	return AddressOf(k.encoded)
}

// AddressOf returns the short printable identity for encoded key bytes.
func AddressOf(kb database.KeyBytes) string {
	hash := crypto.Keccak256(kb)
	return hexutil.Encode(hash[12:])
}

// =============================================================================

// Matches reports whether the stored key bytes from a transaction identify
// the specified wallet. Wallets are identified by raw equality of the
// canonical key encoding.
func Matches(key Key, stored database.KeyBytes) bool {
	return key.encoded.Equal(stored)
}

// =============================================================================

// KeyPath forms the path to the public key file for the wallet at the
// specified index.
func KeyPath(root string, index int) string {
	return filepath.Join(root, strconv.Itoa(index), PublicKeyFile)
}

// PrivateKeyPath forms the path to the private key file for the wallet at the
// specified index.
func PrivateKeyPath(root string, index int) string {
	return filepath.Join(root, strconv.Itoa(index), PrivateKeyFile)
}

// LoadPublicKey opens and decodes the PEM encoded public key at the
// specified path.
func LoadPublicKey(path string) (Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %s", ErrKeyNotFound, err)
	}

	return DecodePublicKey(data)
}

// DecodePublicKey decodes a PEM encoded public key. Both the PKIX form
// (PUBLIC KEY) and the PKCS1 form (RSA PUBLIC KEY) are accepted.
func DecodePublicKey(data []byte) (Key, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return Key{}, fmt.Errorf("%w: no PEM data found", ErrKeyParse)
	}

	switch block.Type {
	case "PUBLIC KEY":
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return Key{}, fmt.Errorf("%w: %s", ErrKeyParse, err)
		}

		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return Key{}, fmt.Errorf("%w: not an RSA public key", ErrKeyParse)
		}
		return NewKey(rsaPub)

	case "RSA PUBLIC KEY":
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return Key{}, fmt.Errorf("%w: %s", ErrKeyParse, err)
		}
		return NewKey(pub)
	}

	return Key{}, fmt.Errorf("%w: unexpected PEM type %q", ErrKeyParse, block.Type)
}
