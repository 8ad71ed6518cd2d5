package cmd

import (
	"fmt"

	"github.com/luminamente/anima/internal/config"
	"github.com/luminamente/anima/internal/session"
	"github.com/luminamente/anima/internal/store"
	"github.com/spf13/cobra"
)

var resetAll bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear questionnaire answers and mission progress",
	Long:  "Clears all questionnaire answers and mission progress. With --all the registered identity is removed too.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		sess, err := session.New(config.Default(), st)
		if err != nil {
			return fmt.Errorf("build session: %w", err)
		}

		sess.ResetInstruments()
		if resetAll {
			sess.Identity.Clear()
			fmt.Println("Answers, missions and identity cleared.")
			return nil
		}

		fmt.Println("Answers and missions cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "Also remove the registered identity")
}
