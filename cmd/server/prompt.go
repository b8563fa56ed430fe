package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"inkstrokes-ai/internal/services"
)

var (
	promptChapter     string
	promptSubmissions int
	promptProgress    string
)

// promptCmd prints the exact text the chat endpoint would send upstream.
var promptCmd = &cobra.Command{
	Use:     "prompt [message]",
	Short:   "Render the mentor prompt for a message without calling Gemini",
	Example: `  inkstrokes-ai prompt "How do I draw hands?" --chapter Anatomy --submissions 12`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runPrompt,
}

func init() {
	promptCmd.Flags().StringVar(&promptChapter, "chapter", "", "current chapter (default General)")
	promptCmd.Flags().IntVar(&promptSubmissions, "submissions", 0, "total artwork submissions")
	promptCmd.Flags().StringVar(&promptProgress, "progress", "", "recent progress (default Unknown)")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	ctx := services.DefaultChatContext()
	if cmd.Flags().Changed("chapter") {
		ctx.CurrentChapter = promptChapter
	}
	if cmd.Flags().Changed("submissions") {
		ctx.TotalSubmissions = promptSubmissions
	}
	if cmd.Flags().Changed("progress") {
		ctx.RecentProgress = promptProgress
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), services.BuildArtPrompt(strings.Join(args, " "), ctx))
	return err
}
