package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	host string
	port string
)

// rootCmd serves the API when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "inkstrokes-ai",
	Short: "InkStrokes AI Backend - art mentor chat relay for Google Gemini",
	Long: `Serves a small JSON API that forwards a student's question, together with
their progress context, to Google Gemini and returns the mentor's reply.

Endpoints:
  GET  /api/ai/health
  POST /api/ai/chat`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "bind address (overrides HOST)")
	rootCmd.PersistentFlags().StringVar(&port, "port", "", "listen port (overrides AI_BACKEND_PORT)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(promptCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
