package main

import (
	"os"

	"github.com/readingcorps/rsmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
