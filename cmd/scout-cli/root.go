package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"scout/internal/config"
	"scout/pkg/scout"
)

var (
	addrFlag    string
	userFlag    string
	jsonFlag    bool
	timeoutFlag time.Duration

	client *scout.Client
)

var rootCmd = &cobra.Command{
	Use:   "scout-cli",
	Short: "Query the scout reel server",
	Long: `scout-cli talks to a running scout-server: today's reel order, the
reel position, company dashboards, news, sentiment and favorites.

The server address and user default to the scout config file
($SCOUT_CONFIG or config/scout.yaml).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(config.Path())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		addr := cfg.Server.Addr
		if addrFlag != "" {
			addr = addrFlag
		}
		user := cfg.User
		if userFlag != "" {
			user = userFlag
		}
		client = scout.NewClient(addr, user)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&addrFlag, "addr", "", "server base URL (default from config)")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "user whose position and favorites to use")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "print raw JSON")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 60*time.Second, "request timeout")

	rootCmd.AddCommand(todayCmd, reelCmd, positionCmd, searchCmd, snapshotCmd, newsCmd, sentimentCmd, favoritesCmd, pingCmd)
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeoutFlag)
}

// printJSON writes v indented. It reports false when --json is not set.
func printJSON(w io.Writer, v any) (bool, error) {
	if !jsonFlag {
		return false, nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}
