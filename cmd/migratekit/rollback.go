package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rollbackVersion string
	rollbackAll     bool
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back applied migrations",
	Long: `Roll back one applied migration by version, or every applied
migration in descending order with --all.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rollbackVersion == "" && !rollbackAll {
			return fmt.Errorf("either --version or --all is required")
		}

		manager, err := newManager()
		if err != nil {
			return err
		}

		if rollbackAll {
			err = manager.RollbackAll()
		} else {
			err = manager.Rollback(rollbackVersion)
		}
		if err != nil {
			logrus.Errorf("rollback failed: %v", err)
			return err
		}

		logrus.Info("rollback complete")
		return nil
	},
}

func init() {
	rollbackCmd.Flags().StringVar(&rollbackVersion, "version", "", "version to roll back")
	rollbackCmd.Flags().BoolVar(&rollbackAll, "all", false, "roll back every applied migration")
	rollbackCmd.MarkFlagsMutuallyExclusive("version", "all")
}
