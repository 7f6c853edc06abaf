package signature_test

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/signature"
	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func newWallet(t *testing.T) (*rsa.PrivateKey, wallet.Key) {
	t.Helper()

	pk, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	key, err := wallet.NewKey(&pk.PublicKey)
	if err != nil {
		t.Fatalf("Should be able to construct a wallet key: %s", err)
	}

	return pk, key
}

func signedTx(t *testing.T, pk *rsa.PrivateKey, from wallet.Key, to wallet.Key, amount float64) database.Tx {
	t.Helper()

	tx, err := database.NewTx(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), amount, from.Bytes(), to.Bytes())
	if err != nil {
		t.Fatalf("Should be able to construct a transaction: %s", err)
	}

	hash, err := signature.Hash(tx)
	if err != nil {
		t.Fatalf("Should be able to hash the transaction: %s", err)
	}

	sig, err := signature.Sign(pk, hash)
	if err != nil {
		t.Fatalf("Should be able to sign the hash: %s", err)
	}

	tx, err = tx.Signed(hash, sig)
	if err != nil {
		t.Fatalf("Should be able to attach the signature: %s", err)
	}

	return tx
}

// =============================================================================

func Test_Verify(t *testing.T) {
	pkA, keyA := newWallet(t)
	_, keyB := newWallet(t)

	valid := signedTx(t, pkA, keyA, keyB, 50)

	mutated := valid
	mutated.Hash++

	short := valid
	short.Signature = valid.Signature[:len(valid.Signature)-1]

	empty := valid
	empty.Signature = nil

	garbage := valid
	garbage.Signature = make(database.Signature, len(valid.Signature))
	for i := range garbage.Signature {
		garbage.Signature[i] = byte(i)
	}

	type table struct {
		name string
		tx   database.Tx
		key  wallet.Key
		exp  bool
	}

	tt := []table{
		{name: "valid", tx: valid, key: keyA, exp: true},
		{name: "mutated-hash", tx: mutated, key: keyA, exp: false},
		{name: "wrong-key", tx: valid, key: keyB, exp: false},
		{name: "short-signature", tx: short, key: keyA, exp: false},
		{name: "garbage-signature", tx: garbage, key: keyA, exp: false},
		{name: "empty-signature", tx: empty, key: keyA, exp: false},
	}

	t.Log("Given the need to verify signed transactions.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s transaction.", testID, tst.name)
			{
				f := func(t *testing.T) {
					verified, err := signature.Verify(tst.tx, tst.key)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to verify without error: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to verify without error.", success, testID)

					if verified != tst.exp {
						t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, verified)
						t.Logf("\t%s\tTest %d:\texp: %v", failed, testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get back the right verification result.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right verification result.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_VerifyZeroKey(t *testing.T) {
	pk, key := newWallet(t)
	tx := signedTx(t, pk, key, key, 10)

	_, err := signature.Verify(tx, wallet.Key{})
	if !errors.Is(err, signature.ErrInvalidKey) {
		t.Logf("got: %v", err)
		t.Logf("exp: %v", signature.ErrInvalidKey)
		t.Fatalf("Should get back an invalid key error for a key that was never loaded.")
	}
}

func Test_HashFromSignature(t *testing.T) {
	pk, key := newWallet(t)

	const hash = uint64(0x0102030405060708)

	sig, err := signature.Sign(pk, hash)
	if err != nil {
		t.Fatalf("Should be able to sign the hash: %s", err)
	}

	if len(sig) != key.Size() {
		t.Logf("got: %d", len(sig))
		t.Logf("exp: %d", key.Size())
		t.Fatalf("Should get a signature as long as the modulus.")
	}

	got, err := signature.HashFromSignature(key, sig)
	if err != nil {
		t.Fatalf("Should be able to recover the hash: %s", err)
	}

	if got != hash {
		t.Logf("got: %x", got)
		t.Logf("exp: %x", hash)
		t.Fatalf("Should get back the signed hash.")
	}

	_, err = signature.HashFromSignature(key, sig[1:])
	if !errors.Is(err, signature.ErrSignatureLength) {
		t.Logf("got: %v", err)
		t.Fatalf("Should get a length error for a truncated signature.")
	}
}

func Test_VerifySender(t *testing.T) {
	pk, key := newWallet(t)
	_, other := newWallet(t)

	tx := signedTx(t, pk, key, other, 25)
	if !signature.VerifySender(tx) {
		t.Fatalf("Should verify with the recorded sender key.")
	}

	tx.SenderKey = database.KeyBytes("not a key")
	if signature.VerifySender(tx) {
		t.Fatalf("Should not verify when the sender key can't be parsed.")
	}
}

func Test_Hash(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}

	h1, err := signature.Hash(value)
	if err != nil {
		t.Fatalf("Should be able to hash the value: %s", err)
	}

	h2, err := signature.Hash(value)
	if err != nil {
		t.Fatalf("Should be able to hash the value: %s", err)
	}

	if h1 != h2 {
		t.Logf("got: %d", h2)
		t.Logf("exp: %d", h1)
		t.Fatalf("Should get back the same hash twice.")
	}
}
