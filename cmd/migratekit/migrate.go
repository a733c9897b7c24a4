package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateTarget string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	Long: `Apply every pending migration ascending by version, stopping at the
first failure. With --target, stop after the given version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := newManager()
		if err != nil {
			return err
		}

		if err := manager.Migrate(migrateTarget); err != nil {
			logrus.Errorf("migrate failed: %v", err)
			return err
		}

		logrus.Info("migrations up to date")
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTarget, "target", "", "apply up to and including this version")
}
