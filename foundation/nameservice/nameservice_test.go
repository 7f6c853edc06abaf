package nameservice_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
	"github.com/ardanlabs/ledger/foundation/nameservice"
)

func Test_Lookup(t *testing.T) {
	root := t.TempDir()

	var keys []wallet.Key
	for _, index := range []int{0, 4} {
		pk, err := wallet.GenerateKey(1024)
		if err != nil {
			t.Fatalf("Should be able to generate a private key: %s", err)
		}

		if err := wallet.Save(root, index, pk); err != nil {
			t.Fatalf("Should be able to save wallet %d: %s", index, err)
		}

		key, err := wallet.NewKey(&pk.PublicKey)
		if err != nil {
			t.Fatalf("Should be able to construct a key: %s", err)
		}
		keys = append(keys, key)
	}

	ns, err := nameservice.New(root)
	if err != nil {
		t.Fatalf("Should be able to construct the name service: %s", err)
	}

	if name := ns.Lookup(keys[1].Bytes()); name != "wallet-4" {
		t.Logf("got: %s", name)
		t.Logf("exp: %s", "wallet-4")
		t.Fatalf("Should name the wallet by its index.")
	}

	if index, exists := ns.Index(keys[0].Address()); !exists || index != 0 {
		t.Fatalf("Should find the index for the wallet address.")
	}

	if name := ns.Lookup([]byte{1, 2, 3}); name != wallet.AddressOf([]byte{1, 2, 3}) {
		t.Logf("got: %s", name)
		t.Fatalf("Should fall back to the address for unknown wallets.")
	}

	if name := ns.Lookup(nil); name != "unknown" {
		t.Fatalf("Should name missing key bytes as unknown.")
	}

	if n := len(ns.Copy()); n != 2 {
		t.Logf("got: %d", n)
		t.Logf("exp: %d", 2)
		t.Fatalf("Should hold every wallet in the keys folder.")
	}
}
