package main

import (
	"os"

	"github.com/taskrevolution/ttr/cmd/ttr/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
