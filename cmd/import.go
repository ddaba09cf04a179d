package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/akozyrev/balance"
	"github.com/google/subcommands"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a CSV file into the cache" }
func (*importCmd) Usage() string {
	return `bp import <file.csv>

  Reads transactions from a CSV export and adds them to the cache file.
  Rows that cannot be parsed are reported and skipped; valid rows are
  upserted by transaction id.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (p *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one CSV file argument")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	txs, bad := balance.ImportCSV(string(data))
	for _, e := range bad {
		fmt.Fprintf(os.Stderr, "skipping line %d: %v\n", e.Line, e.Err)
	}

	cache := openCache()
	for _, tx := range txs {
		if err := cache.Add(tx); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding transaction %d: %v\n", tx.ID, err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("Imported %d transactions (%d rows skipped)\n", len(txs), len(bad))
	return subcommands.ExitSuccess
}
