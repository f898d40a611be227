package main

import (
	"os"

	"github.com/tamcore/snyk-to-html/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
