package report_test

import (
	"testing"
	"time"

	"github.com/ardanlabs/ledger/business/core/report"
	"github.com/ardanlabs/ledger/foundation/ledger/database"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_ParseMode(t *testing.T) {
	type table struct {
		name   string
		choice string
		mode   report.Mode
		fail   bool
	}

	tt := []table{
		{name: "one", choice: "1", mode: report.PerTransaction},
		{name: "two", choice: " 2\n", mode: report.TotalOnly},
		{name: "tx", choice: "TX", mode: report.PerTransaction},
		{name: "total", choice: "total", mode: report.TotalOnly},
		{name: "three", choice: "3", fail: true},
		{name: "empty", choice: "", fail: true},
	}

	t.Log("Given the need to read a display mode choice.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling the choice %q.", testID, tst.choice)
			{
				f := func(t *testing.T) {
					mode, err := report.ParseMode(tst.choice)
					if tst.fail {
						if err == nil {
							t.Fatalf("\t%s\tTest %d:\tShould reject the choice.", failed, testID)
						}
						t.Logf("\t%s\tTest %d:\tShould reject the choice.", success, testID)
						return
					}

					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould accept the choice: %v", failed, testID, err)
					}

					if mode != tst.mode {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, mode)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.mode)
						t.Fatalf("\t%s\tTest %d:\tShould get back the right mode.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right mode.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_Fields(t *testing.T) {
	tx := database.Tx{
		TimeStamp:    time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		Amount:       1.5,
		Hash:         42,
		Signature:    database.Signature{0xab},
		RecipientKey: database.KeyBytes{0x01},
		SenderKey:    database.KeyBytes{0x02},
	}

	exp := []string{"2026-03-04 05:06:07", "1.50", "42", "0xab", "0x01", "0x02"}

	fields := report.Transaction(tx)
	if len(fields) != len(exp) {
		t.Fatalf("Should get a field for each transaction value.")
	}

	for i, f := range fields {
		if f.Value != exp[i] {
			t.Logf("got: %s", f.Value)
			t.Logf("exp: %s", exp[i])
			t.Fatalf("Should format the %s field.", f.Label)
		}
	}

	if h := report.Header(database.BlockHeader{}); h[3].Value != "-" {
		t.Fatalf("Should show a missing timestamp as a dash.")
	}
}
