package main

import (
	"os"

	"github.com/tannerwick/shiplog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
