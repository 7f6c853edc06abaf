// This program provides the wallet tooling for the ledger: key generation,
// signing, verification and balance reporting.
package main

import "github.com/ardanlabs/ledger/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
