package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gems SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode selector.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/gems_host_key

Examples:
  gems serve                           # Listen on :23234 with auto-generated key
  gems serve --ssh :2222               # Listen on port 2222
  gems serve --host-key ./my_host_key  # Use specific host key
  gems serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to gems config YAML shared by all sessions")
}

func runServe(_ *cobra.Command, _ []string) {
	gems.SetConfigPath(flagServeConfig)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if flagLogPath != "" {
		// setupGlobals already pointed the default logger at the file.
		cfg.Logger = log.Default()
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting gems SSH server on %s\n", server.Addr())
	if _, port, err := net.SplitHostPort(server.Addr()); err == nil {
		fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
