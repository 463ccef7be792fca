package main

import (
	"os"

	"github.com/hpkotak/dryrun/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
