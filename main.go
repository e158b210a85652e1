package main

import (
	"os"

	"github.com/mlihgenel/gifconverter-cli/cmd"
)

var (
	version = "1.0.0"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, date)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
