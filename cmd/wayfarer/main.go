// Package main is the entry point for the wayfarer exploration agent.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wayfarer",
	Short: "Spatial memory and exploration for autonomous game agents",
	Long: `Wayfarer maintains a durable per-floor map of observed cells, plans
danger-aware paths over it, and drives strategy-based exploration
sessions that produce reusable routes.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
