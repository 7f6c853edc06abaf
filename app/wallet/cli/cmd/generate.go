package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
	"github.com/spf13/cobra"
)

var keyBits int

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new key pair for the wallet index",
	Run:   generateRun,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVarP(&keyBits, "bits", "b", wallet.DefaultKeyBits, "Size of the RSA modulus in bits.")
}

func generateRun(cmd *cobra.Command, args []string) {
	privateKey, err := wallet.GenerateKey(keyBits)
	if err != nil {
		log.Fatal(err)
	}

	if err := wallet.Save(keysRoot, walletIndex, privateKey); err != nil {
		log.Fatal(err)
	}

	key, err := wallet.NewKey(&privateKey.PublicKey)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("wallet %d: %s\n", walletIndex, key.Address())
}
