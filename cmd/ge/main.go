package main

import (
	"fmt"
	"os"

	"github.com/rkessler/ge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ge: "+err.Error())
		os.Exit(cli.ExitCode(err))
	}
}
