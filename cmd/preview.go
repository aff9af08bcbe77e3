package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelup/internal/catalog"
	"github.com/abhisek/levelup/internal/hints"
	"github.com/abhisek/levelup/internal/llm"
	"github.com/abhisek/levelup/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play one level in plain text (no database, no TUI)",
	Long: `Play through a single level on stdin/stdout.

This is a stateless developer tool for checking a catalog. Earlier levels are
completed automatically so the chosen level can start. Nothing is recorded,
and hints are generated only with --hints.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("level", 1, "Level number to play")
	previewCmd.Flags().Bool("hints", false, "Ask the configured LLM for a hint after wrong answers")
}

func runPreview(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetInt("level")
	withHints, _ := cmd.Flags().GetBool("hints")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := resolveCatalog(cmd, cfg)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var svc *hints.Service
	if withHints {
		// No EventRepo: logging to the store is skipped.
		provider, err := llm.NewProviderFromEnv(cmd.Context(), nil, nil)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		svc = hints.NewService(provider, hints.DefaultConfig(), nil)
	}

	return previewLevel(cmd.Context(), cat, level, svc, os.Stdin, cmd.OutOrStdout())
}

// previewLevel plays level to completion against a fresh controller.
func previewLevel(ctx context.Context, cat *catalog.Catalog, level int, svc *hints.Service, in io.Reader, out io.Writer) error {
	l, ok := cat.Level(level)
	if !ok {
		return &quiz.LevelNotFoundError{Level: level}
	}
	ctrl := quiz.NewController(cat)

	// Replay the levels before the target so it is unlocked.
	for n := 1; n < level; n++ {
		if err := autoComplete(ctrl, n); err != nil {
			return err
		}
	}
	xpBefore := ctrl.ExperiencePoints()

	q, err := ctrl.StartLevel(level)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Level %d: %s (%d questions)\n\n", l.Number, l.Title, len(l.Questions))

	scanner := bufio.NewScanner(in)
	var wrong int
	for {
		a := ctrl.Attempt()
		fmt.Fprintf(out, "── Question %d/%d ──\n", a.CurrentIndex+1, len(a.Questions))
		fmt.Fprintln(out, q.Prompt)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			ctrl.Abandon()
			return nil
		}
		choice, ok := parseChoice(scanner.Text(), q.Options)
		if !ok {
			fmt.Fprintf(out, "Enter a number from 1 to %d.\n\n", len(q.Options))
			continue
		}

		res, err := ctrl.SubmitAnswer(choice)
		if err != nil {
			return err
		}
		switch res.Outcome {
		case quiz.OutcomeIncorrect:
			wrong++
			fmt.Fprintln(out, "\033[31m✗ Wrong answer. Try again!\033[0m")
			if svc != nil {
				printHint(ctx, out, svc, hints.Input{Level: level, Question: q, Chosen: choice})
			}
			fmt.Fprintln(out)
		case quiz.OutcomeContinue:
			fmt.Fprintf(out, "\033[32m✓ Correct! +%d XP\033[0m\n\n", quiz.XPPerCorrectAnswer)
			q = *res.Next
		case quiz.OutcomeLevelComplete:
			fmt.Fprintf(out, "\033[32m✓ Correct! +%d XP\033[0m\n\n", quiz.XPPerCorrectAnswer)
			fmt.Fprintf(out, "── Level %d complete: %d XP, %d wrong answers ──\n",
				res.CompletedLevel, ctrl.ExperiencePoints()-xpBefore, wrong)
			return nil
		}
	}
}

// parseChoice accepts a 1-based option number.
func parseChoice(s string, options []string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > len(options) {
		return "", false
	}
	return options[n-1], true
}

func autoComplete(ctrl *quiz.Controller, level int) error {
	q, err := ctrl.StartLevel(level)
	if err != nil {
		return err
	}
	for {
		res, err := ctrl.SubmitAnswer(q.Correct)
		if err != nil {
			return err
		}
		if res.Outcome == quiz.OutcomeLevelComplete {
			return nil
		}
		q = *res.Next
	}
}

func printHint(ctx context.Context, out io.Writer, svc *hints.Service, in hints.Input) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	h, err := svc.Generate(ctx, in)
	switch {
	case errors.Is(err, hints.ErrRevealsAnswer):
		fmt.Fprintln(out, "(hint withheld: it gave the answer away)")
	case err != nil:
		fmt.Fprintf(out, "(hint unavailable: %v)\n", err)
	default:
		fmt.Fprintf(out, "Hint: %s\n", h.Text)
	}
}
