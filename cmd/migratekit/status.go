package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := newManager()
		if err != nil {
			return err
		}

		status, err := manager.Status()
		if err != nil {
			return err
		}

		fmt.Printf("Applied: %d\n", status.AppliedCount)
		for _, applied := range status.Applied {
			fmt.Printf("  %s  %s  (%s, %dms)\n",
				applied.Version, applied.Description,
				applied.AppliedAt.Format("2006-01-02 15:04:05"), applied.ExecutionTimeMs)
		}

		fmt.Printf("Pending: %d\n", status.PendingCount)
		for _, pending := range status.Pending {
			fmt.Printf("  %s  %s\n", pending.Version, pending.Description)
		}

		if status.NextPending != nil {
			fmt.Printf("Next: %s  %s\n", status.NextPending.Version, status.NextPending.Description)
		}

		return nil
	},
}
