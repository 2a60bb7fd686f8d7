package main

import (
	"fmt"
	"os"

	"gtd/internal/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
