// Package main is the entry point for the Filmscape application.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	noColor    bool

	rootCmd = &cobra.Command{
		Use:   "filmscape [script...]",
		Short: "Browse a film catalog and keep to-watch and watched lists",
		Long: `Filmscape loads a film dataset and opens an interactive prompt for
filtering, searching and sorting it. Registered users keep a to-watch and a
watched list. Script files given as arguments run before the prompt opens.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap(args)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(logsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
