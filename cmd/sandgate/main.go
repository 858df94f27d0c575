package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hkuds/sandgate/cmd/sandgate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrBlocked) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
