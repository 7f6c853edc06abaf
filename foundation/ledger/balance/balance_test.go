package balance_test

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"math"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger/balance"
	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func newKey(t *testing.T) wallet.Key {
	t.Helper()

	pk, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	key, err := wallet.NewKey(&pk.PublicKey)
	if err != nil {
		t.Fatalf("Should be able to construct a wallet key: %s", err)
	}

	return key
}

func tx(hash uint64, amount float64, from wallet.Key, to wallet.Key) database.Tx {
	return database.Tx{
		Amount:       amount,
		Hash:         hash,
		SenderKey:    from.Bytes(),
		RecipientKey: to.Bytes(),
	}
}

// odd marks every transaction with an odd hash as unverified.
func odd(tx database.Tx) bool {
	return tx.Hash%2 == 0
}

// =============================================================================

func Test_Compute(t *testing.T) {
	me := newKey(t)
	other := newKey(t)
	third := newKey(t)

	type table struct {
		name    string
		start   float64
		policy  balance.Policy
		trans   []database.Tx
		balance float64
		entries int
		flagged []int
	}

	tt := []table{
		{
			name:    "in-and-out",
			trans:   []database.Tx{tx(0, 50, other, me), tx(2, 20, me, other)},
			balance: 30,
			entries: 2,
		},
		{
			name:    "empty",
			start:   12.5,
			balance: 12.5,
		},
		{
			name:    "self-transfer",
			trans:   []database.Tx{tx(0, 10, me, me)},
			balance: -10,
			entries: 1,
		},
		{
			name:    "unrelated",
			start:   5,
			trans:   []database.Tx{tx(0, 10, other, third)},
			balance: 5,
		},
		{
			name:    "exclude-unverified",
			start:   100,
			policy:  balance.ExcludeUnverified,
			trans:   []database.Tx{tx(0, 50, other, me), tx(1, 20, me, other), tx(2, 5, me, third)},
			balance: 145,
			entries: 3,
		},
		{
			name:    "flag-unverified",
			start:   100,
			policy:  balance.FlagUnverified,
			trans:   []database.Tx{tx(0, 50, other, me), tx(1, 20, me, other), tx(3, 5, third, me)},
			balance: 135,
			entries: 3,
			flagged: []int{1, 2},
		},
		{
			name:    "include-all-skips-verification",
			policy:  balance.IncludeAll,
			trans:   []database.Tx{tx(1, 50, other, me), tx(3, 20, me, other)},
			balance: 30,
			entries: 2,
		},
	}

	t.Log("Given the need to derive a wallet balance from the ledger.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling the %s case.", testID, tst.name)
			{
				f := func(t *testing.T) {
					opts := balance.Options{
						Start:    tst.start,
						Policy:   tst.policy,
						Verifier: odd,
					}

					st, err := balance.Compute(me, tst.trans, opts)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to compute a statement: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to compute a statement.", success, testID)

					if st.Balance != tst.balance {
						t.Logf("\t%s\tTest %d:\tgot: %.2f", failed, testID, st.Balance)
						t.Logf("\t%s\tTest %d:\texp: %.2f", failed, testID, tst.balance)
						t.Fatalf("\t%s\tTest %d:\tShould get back the right balance.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right balance.", success, testID)

					if len(st.Entries) != tst.entries {
						t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, len(st.Entries))
						t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, tst.entries)
						t.Fatalf("\t%s\tTest %d:\tShould get an entry for each related transaction.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get an entry for each related transaction.", success, testID)

					if len(st.Flagged) != len(tst.flagged) {
						t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, st.Flagged)
						t.Logf("\t%s\tTest %d:\texp: %v", failed, testID, tst.flagged)
						t.Fatalf("\t%s\tTest %d:\tShould flag the unverified transactions.", failed, testID)
					}
					for i := range tst.flagged {
						if st.Flagged[i] != tst.flagged[i] {
							t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, st.Flagged)
							t.Logf("\t%s\tTest %d:\texp: %v", failed, testID, tst.flagged)
							t.Fatalf("\t%s\tTest %d:\tShould flag the unverified transactions.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould flag the unverified transactions.", success, testID)

					for _, e := range st.Entries {
						if e.Checked != (tst.policy != balance.IncludeAll) || (!e.Checked && e.Verified) {
							t.Logf("\t%s\tTest %d:\tgot: checked[%v] verified[%v]", failed, testID, e.Checked, e.Verified)
							t.Fatalf("\t%s\tTest %d:\tShould only report verification that was performed.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould only report verification that was performed.", success, testID)

					if n := len(st.Entries); n > 0 && st.Entries[n-1].Running != st.Balance {
						t.Fatalf("\t%s\tTest %d:\tShould end the running balance on the total.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould end the running balance on the total.", success, testID)

					if total := balance.Total(me, tst.trans, tst.start); tst.policy == balance.IncludeAll && total != st.Balance {
						t.Logf("\t%s\tTest %d:\tgot: %.2f", failed, testID, total)
						t.Logf("\t%s\tTest %d:\texp: %.2f", failed, testID, st.Balance)
						t.Fatalf("\t%s\tTest %d:\tShould match the plain total.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould match the plain total.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_StatementAddress(t *testing.T) {
	me := newKey(t)

	st, err := balance.Compute(me, nil, balance.Options{})
	if err != nil {
		t.Fatalf("Should be able to compute a statement: %s", err)
	}

	if st.Address != me.Address() {
		t.Logf("got: %s", st.Address)
		t.Logf("exp: %s", me.Address())
		t.Fatalf("Should carry the address of the wallet.")
	}
}

func Test_ComputeNoWallet(t *testing.T) {
	_, err := balance.Compute(wallet.Key{}, nil, balance.Options{})
	if !errors.Is(err, balance.ErrNoWallet) {
		t.Logf("got: %v", err)
		t.Logf("exp: %v", balance.ErrNoWallet)
		t.Fatalf("Should not compute a balance without a loaded key.")
	}
}

func Test_OrderIndependence(t *testing.T) {
	me := newKey(t)
	other := newKey(t)

	trans := []database.Tx{
		tx(0, 50, other, me),
		tx(0, 20, me, other),
		tx(0, 7.25, me, me),
		tx(0, 0.75, other, me),
	}

	exp := balance.Total(me, trans, 10)

	var permute func(k int)
	permute = func(k int) {
		if k == len(trans) {
			got := balance.Total(me, trans, 10)
			if math.Abs(got-exp) > 1e-9 {
				t.Logf("got: %.2f", got)
				t.Logf("exp: %.2f", exp)
				t.Fatalf("Should get the same total for every ordering.")
			}
			return
		}

		for i := k; i < len(trans); i++ {
			trans[k], trans[i] = trans[i], trans[k]
			permute(k + 1)
			trans[k], trans[i] = trans[i], trans[k]
		}
	}
	permute(0)
}

func Test_ParsePolicy(t *testing.T) {
	tt := map[string]balance.Policy{
		"all":      balance.IncludeAll,
		"verified": balance.ExcludeUnverified,
		"FLAG":     balance.FlagUnverified,
	}

	for name, exp := range tt {
		got, err := balance.ParsePolicy(name)
		if err != nil {
			t.Fatalf("Should be able to parse policy %q: %s", name, err)
		}

		if got != exp {
			t.Logf("got: %s", got)
			t.Logf("exp: %s", exp)
			t.Fatalf("Should get back the right policy for %q.", name)
		}
	}

	if _, err := balance.ParsePolicy("some"); err == nil {
		t.Fatalf("Should not parse an unknown policy.")
	}
}

func Test_Sheet(t *testing.T) {
	a := newKey(t)
	b := newKey(t)

	sheet := balance.NewSheet(map[string]float64{
		a.Address(): 100,
	})

	trans := []database.Tx{
		tx(0, 40, a, b),
		tx(1, 1000, b, a),
		tx(2, 10, a, a),
	}

	skipped := sheet.ApplyTransactions(trans, odd)
	if skipped != 1 {
		t.Logf("got: %d", skipped)
		t.Logf("exp: %d", 1)
		t.Fatalf("Should skip the unverified transaction.")
	}

	if got := sheet.Balance(a.Address()); got != 50 {
		t.Logf("got: %.2f", got)
		t.Logf("exp: %.2f", 50.0)
		t.Fatalf("Should get back the right balance for the sender.")
	}

	if got := sheet.Balance(b.Address()); got != 40 {
		t.Logf("got: %.2f", got)
		t.Logf("exp: %.2f", 40.0)
		t.Fatalf("Should get back the right balance for the recipient.")
	}
}
