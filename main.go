package main

import (
	"os"

	"github.com/docsift/docsift/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
