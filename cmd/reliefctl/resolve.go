package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"relief-api/internal/app"
	"relief-api/internal/geocode"
	"relief-api/internal/utils"
)

// resolve 走与服务相同的解析链（含共享层），便于排查单个邮编
var resolveCmd = &cobra.Command{
	Use:   "resolve <postal-code>",
	Short: "Resolve a postal code to coordinates through the static table, caches and Nominatim",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

var resolveJSON bool

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	var rc *redis.Client
	if cfg.SharedGeocodeCache {
		rc = utils.OpenRedis(cmd.Context(), cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if rc != nil {
			defer rc.Close()
		}
	}
	c, err := app.BuildResolver(cfg, rc).Resolve(cmd.Context(), args[0])
	if errors.Is(err, geocode.ErrNotFound) {
		return fmt.Errorf("postal code %q not found: %w", args[0], err)
	}
	if err != nil {
		return err
	}
	if resolveJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(c)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.6f,%.6f\n", c.Lat, c.Lng)
	return nil
}
