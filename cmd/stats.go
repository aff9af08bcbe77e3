package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelup/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-level answer statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		levels, err := s.EventRepo().LevelStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query level stats: %w", err)
		}
		printLevelStats(cmd.OutOrStdout(), levels)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent play sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.EventRepo().QuerySessionSummaries(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		printSessions(cmd.OutOrStdout(), sessions)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}

func printLevelStats(w io.Writer, levels []store.LevelStat) {
	if len(levels) == 0 {
		fmt.Fprintln(w, "No answers recorded yet.")
		return
	}

	fmt.Fprintf(w, "%-6s  %8s  %8s  %9s  %11s\n", "Level", "Answers", "Correct", "Accuracy", "Completions")
	fmt.Fprintln(w, strings.Repeat("─", 50))

	var answers, correct, completions int
	for _, l := range levels {
		fmt.Fprintf(w, "%-6d  %8d  %8d  %8.0f%%  %11d\n",
			l.Level, l.Answers, l.CorrectAnswers, l.Accuracy()*100, l.Completions)
		answers += l.Answers
		correct += l.CorrectAnswers
		completions += l.Completions
	}

	total := store.LevelStat{Answers: answers, CorrectAnswers: correct}
	fmt.Fprintln(w, strings.Repeat("─", 50))
	fmt.Fprintf(w, "%-6s  %8d  %8d  %8.0f%%  %11d\n", "TOTAL", answers, correct, total.Accuracy()*100, completions)
}

func printSessions(w io.Writer, sessions []store.SessionSummary) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded yet.")
		return
	}

	fmt.Fprintf(w, "%-16s  %-8s  %6s  %8s  %9s  %8s\n", "Ended", "Duration", "XP", "Unlocked", "Completed", "Answers")
	fmt.Fprintln(w, strings.Repeat("─", 66))
	for _, s := range sessions {
		fmt.Fprintf(w, "%-16s  %-8s  %6d  %8d  %9d  %4d/%-3d\n",
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d:%02d", s.DurationSecs/60, s.DurationSecs%60),
			s.ExperiencePoints, s.UnlockedLevel, s.CompletedLevels,
			s.CorrectAnswers, s.Answers)
	}
}
