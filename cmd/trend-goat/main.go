package main

import (
	"os"

	"github.com/trend-goat/trend-goat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
