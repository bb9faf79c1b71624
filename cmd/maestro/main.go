package main

import (
	"os"

	"github.com/campaignhq/maestro/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
