package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-paddle/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagOnline      bool
	flagLobbyTTL    time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the paddle SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the mode menu.
Scores are stored per-server (all users share the same leaderboard).
With --online (the default) players can host a lobby and share its
six-character code so another SSH user can join the match.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.paddle/host_key

Examples:
  paddle serve                           # Listen on :23234 with auto-generated key
  paddle serve --ssh :2222               # Listen on port 2222
  paddle serve --host-key ./my_host_key  # Use specific host key
  paddle serve --db ./scores.db          # Use specific database
  paddle serve --online=false            # Local play only

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagOnline, "online", true, "Allow players to host and join online matches")
	serveCmd.Flags().DurationVar(&flagLobbyTTL, "lobby-timeout", 2*time.Minute, "How long a hosted lobby waits for a joiner")
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := checkGameConfig(""); err != nil {
		return err
	}

	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.SetPrefix("paddle-ssh")

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.TickRate = flagFPS
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Online = flagOnline
	cfg.LobbyTimeout = flagLobbyTTL

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return err
	}

	if _, port, splitErr := net.SplitHostPort(cfg.Address); splitErr == nil {
		fmt.Fprintf(os.Stdout, "Connect with: ssh localhost -p %s\n", port)
	}
	fmt.Fprintln(os.Stdout, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
