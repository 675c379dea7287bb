package main

import (
	"context"
	"fmt"
	"os"

	"domestic-wallet/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// -------------------- MAIN --------------------

type rootOptions struct {
	configPath    string
	rpcURL        string
	logger        bool
	desktopNotify bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "domestic-wallet",
		Short: "Terminal wallet with connection management and settings",
		Long: `domestic-wallet connects to an Ethereum RPC endpoint, exposes the configured
accounts through a wallet provider and keeps the connection in sync with
account and network changes.`,
		// errors are reported by us, not as usage problems
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.domestic-wallet.json, or $WALLET_CONFIG)")
	cmd.Flags().StringVar(&opts.rpcURL, "rpc", "", "RPC endpoint used when the config has none (overrides $ETH_RPC_URL)")
	cmd.Flags().BoolVar(&opts.logger, "log", false, "open the log panel on start")
	cmd.Flags().BoolVar(&opts.desktopNotify, "desktop-notify", false, "mirror notifications to the desktop")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, opts rootOptions) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("config") {
		env.ConfigPath = opts.configPath
	}
	if cmd.Flags().Changed("rpc") {
		env.RPCURL = opts.rpcURL
	}
	if opts.desktopNotify {
		env.DesktopNotify = true
	}

	cfg, err := env.LoadConfig()
	if err != nil {
		return err
	}
	if opts.logger {
		cfg.Logger = true
	}

	if ctx == nil {
		ctx = context.Background()
	}
	m := newModel(ctx, env, cfg)
	defer m.shutdown()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}
