package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/ontrail/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-h string   backend origin, e.g. https://api.ontrail.app
//	-s string   store driver: sqlite, memory or redis
//	-p string   sqlite file path
//	-d          log response bodies (login responses stay redacted)
//	-t int      per-command timeout in seconds
//
// os.Args is filtered with flagx.FilterArgs so flags owned by other parsers
// do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-h", "-s", "-p", "-t"}, "-d")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Host, "h", cfg.Host, "backend origin")
	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "store driver (sqlite|memory|redis)")
	fs.StringVar(&cfg.StorePath, "p", cfg.StorePath, "sqlite file path")
	fs.BoolVar(&cfg.Debug, "d", cfg.Debug, "log response bodies")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "per-command timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only an explicit -t replaces a sub-second timeout from JSON or env
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
