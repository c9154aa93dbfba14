package main

import (
	"os"

	"github.com/msto63/wsterm/cmd/wsterm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
