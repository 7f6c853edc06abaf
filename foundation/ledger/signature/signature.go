// Package signature provides helper functions for handling the ledger
// signature needs.
package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
)

// HashLength is the number of recovered bytes that make up a transaction hash.
const HashLength = 8

// minPadding is the smallest run of 0xff bytes a PKCS1 v1.5 type 1 block
// can carry.
const minPadding = 8

// Set of errors returned while recovering a signature. ErrInvalidKey is fatal
// for the session, the others only fail the transaction being checked.
var (
	ErrInvalidKey      = errors.New("invalid public key")
	ErrSignatureLength = errors.New("signature length does not match key size")
	ErrDecryption      = errors.New("signature could not be decrypted")
)

// =============================================================================

// Hash returns a 64 bit hash for the value. This is the first 8 bytes of
// the sha256 of the JSON encoding.
func Hash(value any) (uint64, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return 0, err
	}

	sum := sha256.Sum256(data)
	return binary.BigEndian.Uint64(sum[:HashLength]), nil
}

// Sign uses the specified private key to sign the hash. The hash is signed
// directly in its big-endian form with PKCS1 v1.5 padding.
func Sign(privateKey *rsa.PrivateKey, hash uint64) (database.Signature, error) {
	data := make([]byte, HashLength)
	binary.BigEndian.PutUint64(data, hash)

	sig, err := rsa.SignPKCS1v15(rand.Reader, privateKey, crypto.Hash(0), data)
	if err != nil {
		return nil, err
	}

	return database.NewSignature(sig)
}

// Recover applies the public key to the signature and returns the bytes
// the signer covered.
func Recover(key wallet.Key, sig database.Signature) ([]byte, error) {
	pub := key.PublicKey()
	if pub == nil || pub.N == nil || pub.E < 2 {
		return nil, ErrInvalidKey
	}

	k := pub.Size()
	if len(sig) != k {
		return nil, fmt.Errorf("%w: got %d, exp %d", ErrSignatureLength, len(sig), k)
	}

	c := new(big.Int).SetBytes(sig)
	if c.Cmp(pub.N) >= 0 {
		return nil, fmt.Errorf("%w: signature out of range", ErrDecryption)
	}

	m := new(big.Int).Exp(c, big.NewInt(int64(pub.E)), pub.N)
	em := m.FillBytes(make([]byte, k))

	// The block must be 0x00 || 0x01 || 0xff... || 0x00 || data.
	if em[0] != 0x00 || em[1] != 0x01 {
		return nil, fmt.Errorf("%w: bad block type", ErrDecryption)
	}

	i := 2
	for i < k && em[i] == 0xff {
		i++
	}

	if i == k || em[i] != 0x00 || i-2 < minPadding {
		return nil, fmt.Errorf("%w: bad padding", ErrDecryption)
	}

	return em[i+1:], nil
}

// HashFromSignature recovers the signed bytes and interprets the first
// 8 of them as a big-endian unsigned integer.
func HashFromSignature(key wallet.Key, sig database.Signature) (uint64, error) {
	data, err := Recover(key, sig)
	if err != nil {
		return 0, err
	}

	if len(data) < HashLength {
		return 0, fmt.Errorf("%w: got %d bytes, exp at least %d", ErrDecryption, len(data), HashLength)
	}

	var hash uint64
	for _, b := range data[:HashLength] {
		hash = hash<<8 | uint64(b)
	}

	return hash, nil
}

// Verify reports whether the transaction's hash is the one the holder of
// the key signed. A signature that can't be recovered with the key is
// reported as not verified. An error is only returned when the key itself
// is unusable.
func Verify(tx database.Tx, key wallet.Key) (bool, error) {
	hash, err := HashFromSignature(key, tx.Signature)
	if err != nil {
		if errors.Is(err, ErrInvalidKey) {
			return false, err
		}
		return false, nil
	}

	return hash == tx.Hash, nil
}

// VerifySender verifies the transaction with the key recorded in its own
// sender field. Sender bytes that don't decode to a key fail verification.
func VerifySender(tx database.Tx) bool {
	key, err := wallet.ParseKey(tx.SenderKey)
	if err != nil {
		return false
	}

	verified, err := Verify(tx, key)
	if err != nil {
		return false
	}

	return verified
}
