// Command devconnector is a terminal client for the DevConnector API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devconnector/devconnector-go/internal/client"
	"github.com/devconnector/devconnector-go/internal/state"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("devconnector", flag.ContinueOnError)
	server := fs.String("server", envOr("DEVCONNECTOR_URL", "http://localhost:5000"), "API base URL")
	tokenFile := fs.String("token-file", "", "token file (default: user config dir)")
	verbose := fs.Bool("v", false, "log API calls")
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if fs.NArg() == 0 {
		usage(fs)
		return 2
	}

	path := *tokenFile
	if path == "" {
		var err error
		if path, err = client.DefaultTokenPath(); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
	}
	tokens := client.NewFileTokenStore(path)
	token, err := tokens.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	store := state.New(token)
	actions := client.NewActions(client.NewAPI(*server, 15*time.Second), store, tokens)
	defer actions.Close()

	a := &app{
		actions:      actions,
		store:        store,
		out:          os.Stdout,
		in:           bufio.NewReader(os.Stdin),
		readPassword: readTerminalPassword,
	}
	err = a.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
	if shown := a.printAlerts(); err != nil {
		if shown == 0 {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		return 1
	}
	return 0
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "usage: devconnector [flags] <command> [args]")
	fmt.Fprintln(w, "\ncommands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-16s %s\n", c.name, c.help)
	}
	fmt.Fprintln(w, "\nflags:")
	fs.PrintDefaults()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
