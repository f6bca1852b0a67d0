package main

import (
	"context"
	"fmt"
	"os"

	"github.com/maxviazov/cricket-scoring-service/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "cricketd: %v\n", err)
		os.Exit(1)
	}
}
