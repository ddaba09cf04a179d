package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "print the cached transactions" }
func (*listCmd) Usage() string {
	return `bp list

  Prints one line per cached transaction, in cache order.
`
}

func (*listCmd) SetFlags(*flag.FlagSet) {}

func (p *listCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cache := openCache()

	for _, tx := range cache.Items() {
		comment := ""
		if tx.Comment != nil {
			comment = " " + *tx.Comment
		}
		fmt.Printf("%d %s %s %s%s (%s %s)\n",
			tx.ID,
			tx.TransactionDate.Format("2006-01-02"),
			tx.Category.Emoji,
			tx.Category.Name,
			comment,
			tx.Amount.String(),
			tx.Account.Currency.Symbol(),
		)
	}
	return subcommands.ExitSuccess
}
