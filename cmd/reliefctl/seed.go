package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"relief-api/internal/app"
	"relief-api/internal/store"
)

// 文档注释：seed 子命令
// 约束：仅对持久化仓储有意义；仓储非空时不写入。
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the repository with the default relief centers when it is empty",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL (or PG_HOST) is required to seed a persistent repository")
	}
	repo, closeRepo, err := app.OpenRepository(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}
	defer closeRepo()

	n, err := store.Seed(cmd.Context(), repo)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "repository already populated, nothing to do")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d relief centers\n", n)
	return nil
}
