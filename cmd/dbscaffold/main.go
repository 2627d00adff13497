package main

import (
	"fmt"
	"os"

	"github.com/koustreak/dbscaffold/internal/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
