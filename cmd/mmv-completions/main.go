// Command mmv-completions writes completion scripts for every supported
// shell into a directory, for packaging.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/mmv/cmd/mmv"
)

var scripts = []struct {
	file string
	gen  func(*cobra.Command, io.Writer) error
}{
	{"mmv.bash", func(c *cobra.Command, w io.Writer) error { return c.GenBashCompletionV2(w, true) }},
	{"_mmv", func(c *cobra.Command, w io.Writer) error { return c.GenZshCompletion(w) }},
	{"mmv.fish", func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) }},
	{"mmv.ps1", func(c *cobra.Command, w io.Writer) error { return c.GenPowerShellCompletionWithDesc(w) }},
}

func main() {
	dir := "completions"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", dir, err)
		os.Exit(1)
	}

	rootCmd := mmv.NewRootCmd()
	for _, s := range scripts {
		if err := write(filepath.Join(dir, s.file), rootCmd, s.gen); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", s.file, err)
			os.Exit(1)
		}
	}
}

func write(path string, root *cobra.Command, gen func(*cobra.Command, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gen(root, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
