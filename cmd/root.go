package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelup/internal/catalog"
	"github.com/abhisek/levelup/internal/config"
	"github.com/abhisek/levelup/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "levelup",
	Short: "Level-based quiz game for the terminal",
	Long: "LevelUp is a terminal quiz game: answer multiple-choice questions to earn XP\n" +
		"and unlock the next level.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides LEVELUP_DB and the config file)")
	pf.String("catalog", "", "Path to a JSON level catalog (default: built-in levels)")
	pf.String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/levelup/config.yaml)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig reads the file named by --config, or the default location.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file or LEVELUP_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		if cfg == nil {
			cfg = &config.Config{}
		}
		var err error
		if p, err = cfg.DBPath(); err != nil {
			return "", err
		}
	}
	return p, store.EnsureDir(p)
}

// resolveCatalog loads --catalog, then the configured catalog, then the
// built-in levels.
func resolveCatalog(cmd *cobra.Command, cfg *config.Config) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" && cfg != nil {
		path = cfg.Catalog
	}
	return catalog.Resolve(path)
}

// openStore loads config and opens the history database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
