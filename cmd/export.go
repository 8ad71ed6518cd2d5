package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/luminamente/anima/internal/config"
	"github.com/luminamente/anima/internal/identity"
	"github.com/luminamente/anima/internal/ledger"
	"github.com/luminamente/anima/internal/session"
	"github.com/luminamente/anima/internal/store"
	"github.com/luminamente/anima/internal/submit"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [quiz|anamnese|burnout]",
	Short: "Print an instrument's answers as submission JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst := ledger.Instrument(args[0])
		switch inst {
		case ledger.InstrumentQuiz, ledger.InstrumentAnamnese, ledger.InstrumentBurnout:
		default:
			return fmt.Errorf("unknown instrument %q", args[0])
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

		sess, err := session.New(config.Default(), st)
		if err != nil {
			return fmt.Errorf("build session: %w", err)
		}

		var user identity.User
		if u, ok := sess.Identity.User(); ok {
			user = u
		}

		payload := submit.NewPayload(user, sess.Ledger(inst))
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	},
}
