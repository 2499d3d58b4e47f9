// Package main provides the fieldweaver binary entry point. It reads JSON
// records line by line on stdin, augments each with the derived fields
// configured in a YAML file, and writes the augmented records to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fieldweaver",
		Short:         "Augment JSON records with derived fields",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newRunCmd())
	return cmd
}
