package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/akozyrev/balance"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export cached transactions to CSV" }
func (*exportCmd) Usage() string {
	return `bp export [-o <file.csv>]

  Writes all cached transactions as CSV, in cache order. Without -o the
  CSV is written to stdout.
`
}

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "Destination file (defaults to stdout).")
}

func (p *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cache := openCache()

	out := os.Stdout
	if p.output != "" {
		f, err := os.Create(p.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", p.output, err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		out = f
	}

	if err := balance.ExportCSV(out, cache.Items()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
