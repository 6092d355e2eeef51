package main

import (
	"os"

	"github.com/opkernel/miniker/cmd/kernelsim/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
