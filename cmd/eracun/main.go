package main

import (
	"os"

	"github.com/rezonia/eracun/cmd/eracun/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
