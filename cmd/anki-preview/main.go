package main

import (
	"os"

	"github.com/odysseus0/ankiconv/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cli.Execute(cli.NewPreviewCmd)
	cli.PrintError(err)
	return cli.ErrorExitCode(err)
}
