package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fanzhongxing/jcc-web/mockapi"
)

var (
	mockAddr string
	mockFail string
)

var mockCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Serve fixture data in the backend's envelope format",
	RunE:  runMockServer,
}

func init() {
	rootCmd.AddCommand(mockCmd)
	mockCmd.Flags().StringVar(&mockAddr, "addr", "", "listen address (default from config)")
	mockCmd.Flags().StringVar(&mockFail, "fail", "", "answer every request with a failure envelope carrying this message")
}

func runMockServer(cmd *cobra.Command, args []string) error {
	addr := mockAddr
	if addr == "" {
		addr = cfg.Mock.Addr
	}

	fixtures := mockapi.DefaultFixtures()
	fixtures.Fail = mockFail

	srv := &http.Server{
		Addr:              addr,
		Handler:           mockapi.NewHandler(fixtures, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("Mock backend listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mock server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down mock backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
