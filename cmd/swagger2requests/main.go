package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/swaggertools/swagger2requests/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, cli.ErrIssues) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
