package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/idilsaglam/account/internal/cli"
	"github.com/idilsaglam/account/internal/config"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "config file (default $"+config.EnvPath+" or ./"+config.DefaultFileName+")")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (overrides the config file)")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Run(args, cli.Options{
		ConfigPath: *configPath,
		LogLevel:   *logLevel,
		Context:    ctx,
	})
	stop()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
