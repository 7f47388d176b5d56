// Package main provides the entry point for the RoleColor analysis agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rolecolor_agent",
	Short: "RoleColor resume analysis agent",
	Long:  "RoleColor analyzes resumes against four team contribution archetypes (Builder, Enabler, Thriver, Supportee) and generates role-aligned LaTeX resumes via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
