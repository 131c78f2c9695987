package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/bluby/brew-parser/internal/cli"
)

func main() {
	// Ctrl-C is not an error: print a note and exit cleanly.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		fmt.Fprintln(os.Stderr, "\nInterrupted by user")
		os.Exit(cli.ExitSuccess)
	}()

	cli.Execute()
}
