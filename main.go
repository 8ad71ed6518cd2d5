package main

import (
	"os"

	"github.com/luminamente/anima/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
