package main

import (
	"context"
	"fmt"
	"os"

	"github.com/offlinefirst/clickcollect/internal/cmd"
)

func main() {
	root := cmd.NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "clickcollect: %v\n", err)
		os.Exit(1)
	}
}
