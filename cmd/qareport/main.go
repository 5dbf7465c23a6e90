package main

import (
	"os"

	"qa-report/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
