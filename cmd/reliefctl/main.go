// 运维命令行入口：灌入初始数据、按完整解析链查询邮编、按坐标列出附近救助点
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"relief-api/internal/config"
	"relief-api/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "reliefctl",
	Short:         "Relief resource locator operator tool",
	Long:          "reliefctl seeds the relief center repository, resolves postal codes through the full geocoding chain and lists resources near a coordinate.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.Setup()
		cfg = config.FromEnv()
		return cfg.Validate()
	},
}

// cfg 在任一子命令执行前由 PersistentPreRunE 填充
var cfg config.Config

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
