package main

import (
	"os"

	"github.com/pymono-dev/pymono/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
