package main

import (
	"fmt"
	"os"

	"github.com/portfolio/portfolio-api/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
