// Package cmd implements the CLI application to maintain a transaction cache file.
package cmd

import (
	"flag"

	"github.com/akozyrev/balance"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "cache")
	c.Register(&exportCmd{}, "cache")
	c.Register(&listCmd{}, "cache")
	c.Register(&clearCmd{}, "cache")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cacheFile = flag.String("cache-file", "", "Path to the transaction cache file (defaults to the user config dir)")

// openCache opens the app cache file, honoring the -cache-file flag.
func openCache() *balance.FileCache {
	if *cacheFile != "" {
		return balance.NewFileCache(balance.WithPath(*cacheFile))
	}
	return balance.NewFileCache()
}
