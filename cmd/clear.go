package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type clearCmd struct{}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete the cache file" }
func (*clearCmd) Usage() string {
	return `bp clear

  Removes the cache file from disk. Clearing an already absent cache is
  not an error.
`
}

func (*clearCmd) SetFlags(*flag.FlagSet) {}

func (p *clearCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cache := openCache()
	if err := cache.ClearCacheFile(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println("Cache cleared")
	return subcommands.ExitSuccess
}
