package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/temirov/repostat/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the repostat command-line application.
func main() {
	executionContext, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	executionError := cli.Execute(executionContext)
	stop()
	if executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
