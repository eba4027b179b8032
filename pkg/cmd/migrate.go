package cmd

import (
	contextPkg "context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/almostmoments/momentvault/pkg/configs"
	"github.com/almostmoments/momentvault/pkg/internal/model"
	"github.com/almostmoments/momentvault/pkg/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "run database schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configs.InitConfig(configPath); err != nil {
			return fmt.Errorf("init config: %w", err)
		}

		ctx := contextPkg.Background()

		mgr, err := storage.Init(ctx)
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}
		defer func() { _ = mgr.Close() }()

		if err := model.AutoMigrateModels(mgr.GetDBClient().GetDB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "migration complete")

		return nil
	},
}

// registerMigrateCommands 注册迁移相关命令.
func registerMigrateCommands() {
	rootCmd.AddCommand(migrateCmd)
}
