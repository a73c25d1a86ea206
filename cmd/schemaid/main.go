package main

import (
	"os"

	"github.com/zero-day-ai/schemaid/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
