package main

import (
	"os"

	"github.com/odysseus0/ankiconv/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cli.Execute(cli.NewJoinCmd)
	cli.PrintError(err)
	return cli.ErrorExitCode(err)
}
