package main

import (
	"fmt"
	"os"

	"tasklist/internal/cli"
)

func main() {
	root := cli.NewRootCommand(cli.NewAppWithDefaultRepository)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
