package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/bookingclient"
	"github.com/Freeeeeet/consultation_bot/internal/config"
	"github.com/Freeeeeet/consultation_bot/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	var (
		endpoint string
		timeout  time.Duration
		logFile  string
	)

	root := &cobra.Command{
		Use:           "wizard",
		Short:         "Book a consultation from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if timeout <= 0 {
				return fmt.Errorf("--timeout must be positive, got %s", timeout)
			}

			// stdout занят интерфейсом, поэтому лог пишем в файл или никуда
			logger := zap.NewNop()
			if logFile != "" {
				zcfg := zap.NewDevelopmentConfig()
				zcfg.OutputPaths = []string{logFile}
				zcfg.ErrorOutputPaths = []string{logFile}
				l, err := zcfg.Build(zap.Fields(zap.String("component", "wizard")))
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				logger = l
			}
			defer logger.Sync()

			client := bookingclient.New(endpoint, logger, bookingclient.WithTimeout(timeout))
			_, err := tea.NewProgram(tui.New(client)).Run()
			return err
		},
	}

	root.Flags().StringVar(&endpoint, "endpoint", cfg.BookingAPIURL, "base URL of the booking API")
	root.Flags().DurationVar(&timeout, "timeout", cfg.BookingSubmitTimeout, "submission timeout")
	root.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	return root
}

