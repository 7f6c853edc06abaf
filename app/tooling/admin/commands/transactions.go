package commands

import (
	"fmt"
	"strconv"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/ledger/foundation/ledger/balance"
	"github.com/ardanlabs/ledger/foundation/ledger/signature"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
	"github.com/ardanlabs/ledger/foundation/nameservice"
)

// Transactions prints every transaction in the ledger with the outcome of
// verifying it with its recorded sender key. A wallet index argument limits
// the list to the transactions of that wallet.
func Transactions(args conf.Args, st *state.State, ns *nameservice.NameService) error {
	var key wallet.Key
	if s := args.Num(1); s != "" {
		index, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid wallet index %q", s)
		}

		if key, err = st.LoadWallet(index); err != nil {
			return err
		}
	}

	trans, err := st.QueryTransactions()
	if err != nil {
		return err
	}

	for i, tx := range trans {
		if !key.IsZero() && balance.DirectionOf(key, tx) == balance.Unrelated {
			continue
		}

		fmt.Printf("Tx: %d  Hash: %d  From: %s  To: %s  Amount: %.2f  Verified: %v\n",
			i, tx.Hash, ns.Lookup(tx.SenderKey), ns.Lookup(tx.RecipientKey), tx.Amount, signature.VerifySender(tx))
	}

	return nil
}
