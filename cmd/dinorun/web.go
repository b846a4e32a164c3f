package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-runner/internal/platform/web"
)

var (
	flagWebAddr  string
	flagWebFrame time.Duration
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP API and websocket demo",
	Long: `Serve the score history as JSON and stream auto-played demo runs.

Endpoints:
  GET /api/modes                 - Registered modes
  GET /api/scores/{mode}?limit=  - Best runs for a mode
  GET /api/stats/{mode}          - Aggregate stats for a mode
  GET /ws/demo?mode=&seed=       - Websocket stream of demo frames

Examples:
  dinorun web
  dinorun web --addr :9000 --frame 33ms`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address")
	webCmd.Flags().DurationVar(&flagWebFrame, "frame", 50*time.Millisecond, "Demo frame interval")
}

func runWeb(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	logger := stderrLogger("dinorun-web")

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	server := web.NewServer(store, web.Config{
		Address:       flagWebAddr,
		Game:          gameCfg,
		FrameInterval: flagWebFrame,
		Logger:        logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
