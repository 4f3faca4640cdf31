package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/SimonDaKappa/go-paramq/internal/cli"
)

func main() {
	err := cli.NewRootCommand(nil).Execute()

	// ExitErrors were already written to stdout in the chosen format
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
