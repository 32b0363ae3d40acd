// Package main provides the miscore CLI, a thin consumer of the rubric
// evaluation engine for quick diagnostics over saved feedback text.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "miscore",
	Short: "MI rubric evaluation engine",
	Long: "miscore parses free-text LLM feedback from an MI training session, " +
		"scores it against the selected rubric, and prints the canonical summary.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
