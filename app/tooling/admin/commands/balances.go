// Package commands contains the functionality for the admin tooling.
package commands

import (
	"fmt"
	"sort"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
	"github.com/ardanlabs/ledger/foundation/nameservice"
)

// Balances prints the current balance of every wallet in the ledger. With
// the verified argument, transactions failing verification are skipped.
func Balances(args conf.Args, st *state.State, ns *nameservice.NameService) error {
	verified := args.Num(1) == "verified"

	sheet, err := st.Balances(verified)
	if err != nil {
		return err
	}

	addresses := make([]string, 0, len(sheet))
	for address := range sheet {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)

	fmt.Printf("LatestBlock: %d  Verified: %v\n\n", st.QueryLatestBlock(), verified)

	for _, address := range addresses {
		name := address
		if index, exists := ns.Index(address); exists {
			name = fmt.Sprintf("wallet-%d", index)
		}
		fmt.Printf("Wallet: %-44s  Balance: %.2f\n", name, sheet[address])
	}

	return nil
}
