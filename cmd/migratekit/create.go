package main

import (
	"fmt"
	"log/slog"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/evsyukovmv/migratekit"
)

var (
	createVersion     string
	createDescription string
	createType        string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new migration file from a template",
	RunE: func(cmd *cobra.Command, args []string) error {
		// create does not need a database connection, only the directory
		manager, err := migratekit.NewMigrationsManagerOffline(
			migratekit.WithMigrationsDir(resolveDir()),
			migratekit.WithLogger(slog.New(slog.NewTextHandler(logrus.StandardLogger().Writer(), nil))),
		)
		if err != nil {
			return err
		}

		path, err := manager.CreateFile(createVersion, createDescription, migratekit.TemplateKind(createType))
		if err != nil {
			return err
		}

		fmt.Printf("created %s\n", path)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createVersion, "version", "", "migration version, zero-padded digits")
	createCmd.Flags().StringVar(&createDescription, "description", "", "short description")
	createCmd.Flags().StringVar(&createType, "type", string(migratekit.TemplateBasic), "template: basic, schema or data")
	_ = createCmd.MarkFlagRequired("version")
	_ = createCmd.MarkFlagRequired("description")
}
