package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/spf13/cobra"
)

var (
	prevBlock  uint64
	difficulty uint64
	nonce      uint64
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record the pending block into the ledger",
	Run:   recordRun,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().StringVarP(&pendingPath, "pending", "p", "zblock/pending.json", "Path to the pending block file.")
	recordCmd.Flags().Uint64Var(&prevBlock, "prev", 0, "Id of the previous block.")
	recordCmd.Flags().Uint64Var(&difficulty, "difficulty", 0, "Difficulty the block was produced with.")
	recordCmd.Flags().Uint64Var(&nonce, "nonce", 0, "Nonce the block was produced with.")
}

func recordRun(cmd *cobra.Command, args []string) {
	pending, err := readPending(pendingPath)
	if err != nil {
		log.Fatal(err)
	}

	header := database.BlockHeader{
		PrevBlock:  prevBlock,
		Difficulty: difficulty,
		Nonce:      nonce,
		TimeStamp:  time.Now().UTC(),
		TransCount: pending.Header.TransCount,
	}

	block, err := database.NewBlock(header, pending.Trans)
	if err != nil {
		log.Fatal(err)
	}

	st, err := openState()
	if err != nil {
		log.Fatal(err)
	}
	defer st.Shutdown()

	num, err := st.WriteBlock(block)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.Remove(pendingPath); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("recorded: blk[%d]: trans[%d]\n", num, len(block.Trans))
}
