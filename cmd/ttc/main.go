package main

import (
	"os"

	"github.com/nkaddour/ttc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
