package cmd

import (
	"log"

	"github.com/ardanlabs/ledger/business/core/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the header and transactions of a block",
	Run:   showRun,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Uint64VarP(&blockNum, "block", "b", 1, "Number of the block to show.")
}

func showRun(cmd *cobra.Command, args []string) {
	st, err := openState()
	if err != nil {
		log.Fatal(err)
	}
	defer st.Shutdown()

	block, err := st.QueryBlock(blockNum)
	if err != nil {
		log.Fatal(err)
	}

	pterm.DefaultSection.Printfln("Block %d header", blockNum)
	if err := renderFields(report.Header(block.Header)); err != nil {
		log.Fatal(err)
	}

	for i, tx := range block.Trans {
		pterm.DefaultSection.WithLevel(2).Printfln("Transaction %d", i)
		if err := renderFields(report.Transaction(tx)); err != nil {
			log.Fatal(err)
		}
	}
}

func renderFields(fields []report.Field) error {
	data := make(pterm.TableData, len(fields))
	for i, f := range fields {
		data[i] = []string{f.Label, f.Value}
	}

	return pterm.DefaultTable.WithData(data).Render()
}
