package cmd

import (
	"fmt"

	"github.com/luminamente/anima/internal/app"
	"github.com/luminamente/anima/internal/config"
	"github.com/luminamente/anima/internal/session"
	"github.com/luminamente/anima/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, assembles the session, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	sess, err := session.New(cfg, st)
	if err != nil {
		return fmt.Errorf("build session: %w", err)
	}

	return app.Run(sess)
}
