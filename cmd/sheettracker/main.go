package main

import (
	"os"

	"github.com/idilsaglam/sheettracker/internal/cli"
)

func main() {
	// Flags, help and exit codes are handled by the cobra root command.
	os.Exit(cli.Run(os.Args[1:]))
}
