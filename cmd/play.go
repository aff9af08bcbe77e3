package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Go straight to the level map",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}

func init() {
	rootCmd.Flags().Bool("hints", false, "Enable LLM hints after wrong answers (same as hints.enabled)")
	playCmd.Flags().Bool("hints", false, "Enable LLM hints after wrong answers (same as hints.enabled)")
}
