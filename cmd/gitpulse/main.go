// main is the entry point for the gitpulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/gitpulse/gitpulse/cmd"
	"github.com/gitpulse/gitpulse/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
