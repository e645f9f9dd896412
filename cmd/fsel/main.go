package main

import (
	"os"

	"github.com/runger/fsel/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
