package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return createRootCommand(defaultEnvironment()).Execute() //nolint:wrapcheck // printed as-is by main
}
