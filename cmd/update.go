package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelup/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update levelup to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checkOnly, _ := cmd.Flags().GetBool("check")
		target, _ := cmd.Flags().GetString("version")

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		out := cmd.OutOrStdout()
		if checkOnly {
			rel, err := checker.Check(ctx, version)
			if err != nil {
				return fmt.Errorf("check for updates: %w", err)
			}
			if rel.UpdateAvailable {
				fmt.Fprintf(out, "Update available: %s (running %s)\n%s\n", rel.Version, version, rel.URL)
			} else {
				fmt.Fprintf(out, "Already running the latest version (%s).\n", version)
			}
			return nil
		}

		_, err := checker.Update(ctx, version, target, func(p selfupdate.Progress) {
			fmt.Fprintln(out, p.Message)
		})
		if err == nil {
			return nil
		}

		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Fprintln(out, "Cannot update a development build. Install a release build first.")
			return nil
		}
		if errors.Is(err, selfupdate.ErrAlreadyLatest) {
			fmt.Fprintln(out, "Already running the latest version.")
			return nil
		}
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w\n\nTry running: sudo levelup update", err)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether an update is available")
	updateCmd.Flags().String("version", "", "Install this release tag instead of the latest")
}
