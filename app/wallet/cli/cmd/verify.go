package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/ledger/foundation/nameservice"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var blockNum uint64

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the transactions in a block with the key of the wallet index",
	Run:   verifyRun,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().Uint64VarP(&blockNum, "block", "b", 1, "Number of the block to verify.")
}

func verifyRun(cmd *cobra.Command, args []string) {
	ns, err := nameservice.New(keysRoot)
	if err != nil {
		log.Fatal(err)
	}

	st, err := openState()
	if err != nil {
		log.Fatal(err)
	}
	defer st.Shutdown()

	key, err := st.LoadWallet(walletIndex)
	if err != nil {
		log.Fatal(err)
	}

	results, err := st.VerifyBlock(blockNum, key)
	if err != nil {
		log.Fatal(err)
	}

	data := pterm.TableData{
		{"#", "Hash", "Sender", "Recipient", "Verified"},
	}

	var failed int
	for _, res := range results {
		verified := "yes"
		if !res.Verified {
			verified = "no"
			failed++
		}

		data = append(data, []string{
			fmt.Sprintf("%d", res.Index),
			fmt.Sprintf("%d", res.Tx.Hash),
			ns.Lookup(res.Tx.SenderKey),
			ns.Lookup(res.Tx.RecipientKey),
			verified,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		log.Fatal(err)
	}

	if failed > 0 {
		pterm.Warning.Printfln("block %d: %d of %d transactions failed verification", blockNum, failed, len(results))
		return
	}

	pterm.Success.Printfln("block %d: all %d transactions verified", blockNum, len(results))
}
