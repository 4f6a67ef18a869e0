package main

import (
	"fmt"
	"os"

	"github.com/odontia/odontia/cmd/authzctl/cli"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
