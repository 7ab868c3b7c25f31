package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/cursorfence/internal/config"
	"github.com/bnema/cursorfence/internal/daemon"
	"github.com/bnema/cursorfence/internal/desktop"
	"github.com/bnema/cursorfence/internal/logger"
	"github.com/bnema/cursorfence/internal/ui"
)

var (
	// Version is set during build
	Version = "0.1.0-dev"

	configPath string

	rootCmd = &cobra.Command{
		Use:   "cursorfence",
		Short: "Cursorfence - cursor confinement for fullscreen windows",
		Long: `Cursorfence watches the foreground window and confines the mouse cursor
to the display of whichever window is currently fullscreen, releasing it the
moment that stops being true. Window-switch gestures are respected: leaving
the locked window through the switcher keeps the cursor free until a
fullscreen window is focused again.`,
		SilenceUsage: true,
		RunE:         runDaemon,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}
	cfg := config.Get()

	fmt.Println(ui.Banner(Version))

	backend, err := desktop.New()
	if err != nil {
		return fmt.Errorf("failed to initialize desktop backend: %w", err)
	}
	defer backend.Close()

	// One-time display enumeration, purely informational.
	monitors, err := backend.Monitors()
	if err != nil {
		return fmt.Errorf("failed to enumerate displays: %w", err)
	}
	logger.Infof("Detected %d monitor(s):", len(monitors))
	for _, mon := range monitors {
		fmt.Println(ui.MonitorLine(mon.Name, mon.Rect.Width(), mon.Rect.Height(),
			mon.Rect.Left, mon.Rect.Top, mon.Primary))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return daemon.New(cfg, backend).Run(ctx)
}

func initConfig() error {
	if configPath != "" {
		config.SetConfigPath(configPath)
	}
	if err := config.Init(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if level := config.Get().Logging.LogLevel; level != "" {
		logger.SetLevel(level)
	}
	return nil
}
