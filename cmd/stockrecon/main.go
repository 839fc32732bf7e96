package main

import (
	"os"

	"github.com/vsinha/stockrecon/pkg/interfaces/cli/commands"
)

func main() {
	os.Exit(int(commands.Run()))
}
