package main

import (
	"os"

	"github.com/arthur-debert/testbed/cmd/testbed"
)

func main() {
	rootCmd := testbed.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
