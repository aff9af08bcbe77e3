package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/levelup/internal/app"
	"github.com/abhisek/levelup/internal/hints"
	"github.com/abhisek/levelup/internal/llm"
	"github.com/abhisek/levelup/internal/logging"
	"github.com/abhisek/levelup/internal/store"
)

// runApp loads config, opens the store, builds dependencies, and launches the TUI.
// Only a bad catalog is fatal; a missing database or LLM just disables
// history or hints.
func runApp(cmd *cobra.Command, skipIntro bool) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		log = logging.Nop()
	}
	defer func() { _ = log.Sync() }()

	cat, err := resolveCatalog(cmd, cfg)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	opts := app.Options{Catalog: cat, Log: log, SkipIntro: skipIntro}

	var repo store.EventRepo
	dbPath, err := resolveDBPath(cmd, cfg)
	if err == nil {
		var st *store.Store
		st, err = store.Open(dbPath)
		if err == nil {
			defer st.Close()
			repo = st.EventRepo()
			opts.Repo = repo
		}
	}
	if err != nil {
		log.Warn("history disabled", zap.Error(err))
		fmt.Fprintln(os.Stderr, "History unavailable:", err)
	}

	hintsOn, _ := cmd.Flags().GetBool("hints")
	if cfg.Hints.Enabled || hintsOn {
		provider, err := llm.NewProviderFromEnv(ctx, repo, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Hints will be unavailable.")
		} else {
			opts.Hints = hints.NewService(provider, hints.DefaultConfig(), log)
		}
	}

	return app.Run(ctx, opts)
}
