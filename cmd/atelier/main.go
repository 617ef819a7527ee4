package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "atelier",
	Short: "Atelier — LS Pratas storefront CLI",
	Long:  "Atelier runs the LS Pratas storefront and back-office: HTTP server, database seeding and diagnostics.",
}

func init() {
	// Server
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(dbPingCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
}
