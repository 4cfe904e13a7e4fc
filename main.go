package main

import (
	"os"

	"github.com/toppers/mocktest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
