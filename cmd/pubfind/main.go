package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pubfindco/pubfind/client"
	"github.com/pubfindco/pubfind/cmd/pubfind/askcmd"
	"github.com/pubfindco/pubfind/pkg/logger"
	"github.com/pubfindco/pubfind/tui"
)

var (
	// Global flags
	serverURL  string
	configPath string
	timeout    time.Duration
	debug      bool
)

const rootLongDesc = `pubfind is a conversational client for an AI-powered public
information search service.

Run without arguments to start the interactive chat interface, or use
"pubfind ask" for a single query.

The service endpoint is read from flags, PUBFIND_* environment variables
(a .env file is honored), or a TOML config file, in that order.`

var rootCmd *cobra.Command

func init() {
	rootCmd = &cobra.Command{
		Use:   "pubfind",
		Short: "Conversational client for AI-powered public information search",
		Long:  rootLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat()
		},
	}
}

// loadConfig merges defaults, the config file, environment, and flags.
func loadConfig(cmd *cobra.Command) (client.Config, error) {
	cfg, err := client.LoadConfig(configPath)
	if err != nil {
		return client.Config{}, err
	}

	// Flags win over everything else, but only when actually set.
	if cmd.Flags().Changed("server") {
		cfg.ServerURL = serverURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = timeout
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debug
	}
	return cfg, nil
}

func runChat() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the chat interface needs a terminal; use \"pubfind ask\" for scripted queries")
	}

	cfg, err := loadConfig(rootCmd)
	if err != nil {
		return err
	}

	// The TUI owns stdout, so logs go to a file.
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = filepath.Join(os.TempDir(), "pubfind.log")
	}
	log, err := logger.NewFileLogger(logPath, cfg.Debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	transport := client.NewHTTPTransport(cfg.ServerURL, cfg.Timeout, log)
	session := client.NewSession(transport, log)

	program := tea.NewProgram(tui.NewModel(session, log), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func main() {
	// A .env next to the binary or cwd is a dev convenience; absence is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8000", "Search service base URL")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to TOML config file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "Per-request timeout")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(askcmd.NewAskCmd(loadConfig))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
