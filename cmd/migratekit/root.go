// Command migratekit is the front end for the migration engine. Projects
// build their own copy of this binary with a side-effect import of the
// package holding their generated migration files; the files register
// themselves into the default registry at program initialization.
package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/evsyukovmv/migratekit"
)

var (
	flagDSN string
	flagDir string
)

var rootCmd = &cobra.Command{
	Use:   "migratekit",
	Short: "Versioned schema and data migrations",
	Long: `migratekit applies, rolls back and reports on versioned database
migrations tracked in a migrations table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	viper.SetEnvPrefix("MIGRATEKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("migratekit")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	// a missing config file is fine, env and flags still apply
	_ = viper.ReadInConfig()

	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", "", "database URL (or MIGRATEKIT_DSN)")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "migrations directory (or MIGRATEKIT_DIR, default \"migrations\")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("dsn", rootCmd.PersistentFlags().Lookup("dsn"))
	_ = viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(createCmd)
}

// execute runs the command tree and maps the outcome to an exit code.
// Errors are silenced inside cobra so every failure is printed exactly
// once here; an unrecognized subcommand additionally gets the usage text.
func execute(args []string) int {
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		if strings.HasPrefix(err.Error(), "unknown command") {
			rootCmd.PrintErrln(rootCmd.UsageString())
		}
		return 1
	}

	return 0
}

func resolveDSN() (string, error) {
	dsn := viper.GetString("dsn")
	if dsn == "" {
		return "", fmt.Errorf("database URL is required (use --dsn or MIGRATEKIT_DSN)")
	}
	return dsn, nil
}

func resolveDir() string {
	if dir := viper.GetString("dir"); dir != "" {
		return dir
	}
	return "migrations"
}

func newManager() (*migratekit.MigrationManager, error) {
	dsn, err := resolveDSN()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: dsn}))
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return migratekit.NewMigrationsManager(
		db,
		migratekit.DefaultRegistry(),
		migratekit.WithMigrationsDir(resolveDir()),
		migratekit.WithLogger(slog.New(slog.NewTextHandler(logrus.StandardLogger().Writer(), nil))),
	)
}
