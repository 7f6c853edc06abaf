package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ardanlabs/ledger/business/core/report"
	"github.com/ardanlabs/ledger/foundation/ledger/balance"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// maxPrompts bounds how many times an invalid menu choice is asked again.
const maxPrompts = 3

var (
	modeChoice string
	policyName string
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the balance for the wallet index",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&modeChoice, "mode", "m", "", "1 (tx) for each transaction and the total, 2 (total) for the total only. Asked for when empty.")
	balanceCmd.Flags().StringVar(&policyName, "policy", "all", "Unverified transactions: all, verified or flag.")
}

func balanceRun(cmd *cobra.Command, args []string) {
	policy, err := balance.ParsePolicy(policyName)
	if err != nil {
		log.Fatal(err)
	}

	mode, err := chooseMode(modeChoice, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}

	st, err := openState()
	if err != nil {
		log.Fatal(err)
	}
	defer st.Shutdown()

	stmt, err := st.Balance(walletIndex, policy)
	if err != nil {
		log.Fatal(err)
	}

	if mode == report.PerTransaction {
		if err := renderEntries(stmt); err != nil {
			log.Fatal(err)
		}
	}

	for _, i := range stmt.Flagged {
		pterm.Warning.Printfln("transaction %d failed verification", i)
	}

	pterm.Info.Printfln("wallet %d balance: %s (start %s, policy %s)", walletIndex, report.Amount(stmt.Balance), report.Amount(stmt.Start), stmt.Policy)
}

// chooseMode returns the display mode from the flag, asking on the input
// when the flag is empty. Invalid answers are asked again a bounded number
// of times.
func chooseMode(choice string, in io.Reader, out io.Writer) (report.Mode, error) {
	if choice != "" {
		return report.ParseMode(choice)
	}

	scanner := bufio.NewScanner(in)

	var err error
	for range maxPrompts {
		fmt.Fprintln(out, "Enter 1 to print the wallet balance for each transaction and the total.")
		fmt.Fprintln(out, "Enter 2 to print just the total balance.")

		if !scanner.Scan() {
			return 0, fmt.Errorf("no display mode given: %w", io.ErrUnexpectedEOF)
		}

		var mode report.Mode
		if mode, err = report.ParseMode(scanner.Text()); err == nil {
			return mode, nil
		}

		fmt.Fprintln(out, err)
	}

	return 0, err
}

func renderEntries(stmt balance.Statement) error {
	data := pterm.TableData{
		{"#", "Timestamp", "Direction", "Amount", "Running", "Verified"},
	}

	for _, e := range stmt.Entries {
		verified := "-"
		switch {
		case !e.Checked:
		case e.Excluded:
			verified = "no (excluded)"
		case !e.Verified:
			verified = "no"
		default:
			verified = "yes"
		}

		data = append(data, []string{
			fmt.Sprintf("%d", e.Index),
			report.TimeStamp(e.Tx.TimeStamp),
			e.Direction.String(),
			report.Amount(e.Tx.Amount),
			report.Amount(e.Running),
			verified,
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
