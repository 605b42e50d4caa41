package main

import (
	"os"

	"github.com/goliatone/go-formcheck/cmd/formcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
