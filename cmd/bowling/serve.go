package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bowling/internal/games/alley"
	"github.com/vovakirdan/tui-bowling/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagNoOnline    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bowling SSH server",
	Long: `Start an SSH server that lets users connect and bowl.

Each SSH connection gets its own session with a mode picker menu, bowling
under the SSH user name. Online mode pairs two sessions through a six
character join code; the host bowls first and frames alternate.
Scores are stored per-server (all users share the same score table).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bowling/host_key

Examples:
  bowling serve                           # Listen on :23234 with auto-generated key
  bowling serve --ssh :2222               # Listen on port 2222
  bowling serve --host-key ./my_host_key  # Use specific host key
  bowling serve --db ./scores.db          # Use specific database
  bowling serve --no-online               # Local modes only

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagNoOnline, "no-online", false, "Disable online matches between sessions")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	if !flagNoOnline {
		cfg.OnlineGameID = alley.IDOnline
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting bowling SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
