package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/mmv/cmd/mmv"
	"github.com/arthur-debert/mmv/internal/version"
)

func main() {
	rootCmd := mmv.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MMV",
		Section: "1",
		Source:  "mmv " + version.Version,
		Manual:  "mmv manual",
	}

	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	// One page per command, so "man mmv-execute" works
	if err := doc.GenManTree(rootCmd, header, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man pages: %v\n", err)
		os.Exit(1)
	}
}
