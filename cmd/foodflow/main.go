// Package main provides the entry point for the FoodFlow CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "foodflow",
	Short: "Daily surplus-food allocation for a restaurant kitchen",
	Long:  "FoodFlow decides what to do with every expiring ingredient: cook it into one selected recipe, sell it to a nearby restaurant, or donate it to a soup kitchen. Each subcommand runs one pipeline step over flat JSON artifacts; `run` executes the whole daily simulation.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
