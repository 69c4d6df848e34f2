package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/storefront/internal/flagx"
)

// FlagNames lists every flag this package reads from the command line,
// including the config file selectors.
var FlagNames = []string{"-a", "-i", "-t", "-d", "-l", "-c", "--c", "-config", "--config"}

// parseFlags populates Config fields from command-line flags. Only the flags
// listed below are looked at; subcommands and their flags pass through.
//
//	-a string   backend base URL
//	-i int      online check interval in seconds
//	-t int      request timeout in seconds
//	-d string   database path
//	-l string   log level
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend base URL")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// durations are only touched when given, so sub-second values from the
	// file or the environment survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
