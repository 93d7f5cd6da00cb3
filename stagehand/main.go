// Package main provides the stagehand command.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/sarchlab/stagehand/stagehand/cmd"
)

func main() {
	atexit.Exit(cmd.Execute())
}
