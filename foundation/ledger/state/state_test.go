package state_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/balance"
	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/database/storage/memory"
	"github.com/ardanlabs/ledger/foundation/ledger/genesis"
	"github.com/ardanlabs/ledger/foundation/ledger/signature"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type ledger struct {
	state *state.State
	keys  []wallet.Key
}

// newLedger saves the specified number of wallets under a temp keys root
// and records one block where wallet 0 pays wallet 1 three times. The
// second payment carries a tampered hash.
func newLedger(t *testing.T, wallets int) ledger {
	t.Helper()

	root := t.TempDir()

	var keys []wallet.Key
	for i := range wallets {
		pk, err := wallet.GenerateKey(1024)
		if err != nil {
			t.Fatalf("Should be able to generate a private key: %s", err)
		}

		if err := wallet.Save(root, i, pk); err != nil {
			t.Fatalf("Should be able to save wallet %d: %s", i, err)
		}

		key, err := wallet.NewKey(&pk.PublicKey)
		if err != nil {
			t.Fatalf("Should be able to construct wallet key %d: %s", i, err)
		}
		keys = append(keys, key)
	}

	gen := genesis.Genesis{
		Date:          time.Now(),
		StartBalances: map[string]float64{"0": 100, "1": 5},
	}

	st, err := state.New(state.Config{
		KeysRoot: root,
		Storage:  memory.New(),
		Genesis:  gen,
		Workers:  2,
	})
	if err != nil {
		t.Fatalf("Should be able to open the ledger: %s", err)
	}
	t.Cleanup(func() { st.Shutdown() })

	pk, err := wallet.LoadPrivateKey(wallet.PrivateKeyPath(root, 0))
	if err != nil {
		t.Fatalf("Should be able to load the private key: %s", err)
	}

	var trans []database.Tx
	for i, amount := range []float64{10, 20, 30} {
		tx, err := database.NewTx(time.Now(), amount, keys[0].Bytes(), keys[1].Bytes())
		if err != nil {
			t.Fatalf("Should be able to construct a transaction: %s", err)
		}

		hash, err := signature.Hash(tx)
		if err != nil {
			t.Fatalf("Should be able to hash a transaction: %s", err)
		}

		sig, err := signature.Sign(pk, hash)
		if err != nil {
			t.Fatalf("Should be able to sign a transaction: %s", err)
		}

		if i == 1 {
			hash++
		}

		if tx, err = tx.Signed(hash, sig); err != nil {
			t.Fatalf("Should be able to attach the signature: %s", err)
		}
		trans = append(trans, tx)
	}

	block, err := database.NewBlock(database.BlockHeader{TransCount: uint64(len(trans))}, trans)
	if err != nil {
		t.Fatalf("Should be able to construct a block: %s", err)
	}

	if _, err := st.WriteBlock(block); err != nil {
		t.Fatalf("Should be able to write a block: %s", err)
	}

	return ledger{state: st, keys: keys}
}

// =============================================================================

func Test_VerifyBlock(t *testing.T) {
	l := newLedger(t, 2)

	key, err := l.state.LoadWallet(0)
	if err != nil {
		t.Fatalf("Should be able to load wallet 0: %s", err)
	}

	results, err := l.state.VerifyBlock(1, key)
	if err != nil {
		t.Fatalf("Should be able to verify block 1: %s", err)
	}

	exp := []bool{true, false, true}
	if len(results) != len(exp) {
		t.Logf("got: %d", len(results))
		t.Logf("exp: %d", len(exp))
		t.Fatalf("Should get a result for each transaction.")
	}

	for i, res := range results {
		if res.Index != i {
			t.Fatalf("Should get the results back in sequence order.")
		}

		if res.Verified != exp[i] {
			t.Logf("got: %v", res.Verified)
			t.Logf("exp: %v", exp[i])
			t.Fatalf("Should get back the right result for transaction %d.", i)
		}

		if res.Direction != balance.Sent {
			t.Fatalf("Should see the transactions as sent by wallet 0.")
		}
	}

	other, err := l.state.LoadWallet(1)
	if err != nil {
		t.Fatalf("Should be able to load wallet 1: %s", err)
	}

	results, err = l.state.VerifyBlock(1, other)
	if err != nil {
		t.Fatalf("Should be able to verify block 1: %s", err)
	}

	for i, res := range results {
		if res.Verified {
			t.Fatalf("Should not verify transaction %d with the recipient key.", i)
		}
	}

	if _, err := l.state.VerifyAll(wallet.Key{}, nil); !errors.Is(err, signature.ErrInvalidKey) {
		t.Fatalf("Should not verify with a key that was never loaded.")
	}

	if _, err := l.state.VerifyBlock(2, key); !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("Should not find a block that was never written.")
	}
}

func Test_Balance(t *testing.T) {
	l := newLedger(t, 3)

	type table struct {
		name    string
		index   int
		policy  balance.Policy
		balance float64
		flagged int
	}

	tt := []table{
		{name: "sender-all", index: 0, policy: balance.IncludeAll, balance: 40},
		{name: "sender-verified", index: 0, policy: balance.ExcludeUnverified, balance: 60},
		{name: "sender-flag", index: 0, policy: balance.FlagUnverified, balance: 40, flagged: 1},
		{name: "recipient-all", index: 1, policy: balance.IncludeAll, balance: 65},
		{name: "recipient-verified", index: 1, policy: balance.ExcludeUnverified, balance: 45},
		{name: "bystander", index: 2, policy: balance.FlagUnverified, balance: 0},
	}

	t.Log("Given the need to derive wallet balances from the ledger.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling wallet %d with the %s policy.", testID, tst.index, tst.policy)
			{
				f := func(t *testing.T) {
					stmt, err := l.state.Balance(tst.index, tst.policy)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to compute the balance: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to compute the balance.", success, testID)

					if stmt.Balance != tst.balance {
						t.Logf("\t%s\tTest %d:\tgot: %.2f", failed, testID, stmt.Balance)
						t.Logf("\t%s\tTest %d:\texp: %.2f", failed, testID, tst.balance)
						t.Fatalf("\t%s\tTest %d:\tShould get back the right balance.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right balance.", success, testID)

					if len(stmt.Flagged) != tst.flagged {
						t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, len(stmt.Flagged))
						t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, tst.flagged)
						t.Fatalf("\t%s\tTest %d:\tShould flag the unverified transactions.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould flag the unverified transactions.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}

	if _, err := l.state.Balance(9, balance.IncludeAll); !errors.Is(err, wallet.ErrKeyNotFound) {
		t.Fatalf("Should not compute a balance for a missing wallet.")
	}
}

func Test_Balances(t *testing.T) {
	l := newLedger(t, 2)

	sheet, err := l.state.Balances(true)
	if err != nil {
		t.Fatalf("Should be able to compute the balances: %s", err)
	}

	exp := map[string]float64{
		l.keys[0].Address(): 60,
		l.keys[1].Address(): 45,
	}

	for address, value := range exp {
		if sheet[address] != value {
			t.Logf("got: %.2f", sheet[address])
			t.Logf("exp: %.2f", value)
			t.Fatalf("Should get back the right balance for %s.", address)
		}
	}
}
