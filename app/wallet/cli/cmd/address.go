package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the address for the wallet index",
	Run:   addressRun,
}

func init() {
	rootCmd.AddCommand(addressCmd)
}

func addressRun(cmd *cobra.Command, args []string) {
	key, err := wallet.LoadPublicKey(wallet.KeyPath(keysRoot, walletIndex))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(key.Address())
}
