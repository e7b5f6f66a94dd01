package main

import (
	"github.com/spf13/cobra"

	"lintfix/internal/diag"
	"lintfix/internal/fix"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <journal>",
	Short: "Put back the files saved by `lintfix fix --backup`",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.finish()

		journal, err := fix.LoadJournal(args[0])
		if err != nil {
			return err
		}
		restored, err := journal.Restore()
		for _, path := range restored {
			diag.Infof(env.reporter, path, "restored")
		}
		if err != nil {
			return err
		}
		diag.Infof(env.reporter, args[0], "restored %d files", len(restored))
		return nil
	},
}
