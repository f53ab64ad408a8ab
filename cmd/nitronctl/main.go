package main

import (
	"fmt"
	"os"

	"github.com/MrSnakeDoc/nitron/internal/cli"
	"github.com/MrSnakeDoc/nitron/internal/version"
)

func main() {
	if err := cli.Run(version.Version); err != nil {
		fmt.Fprintf(os.Stderr, "nitronctl: %v\n", err)
		os.Exit(1)
	}
}
