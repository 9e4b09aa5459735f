package main

import (
	"os"

	"github.com/eduline/eduline/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
