package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/careercompass-backend/internal/app"
	"github.com/yungbote/careercompass-backend/internal/platform/shutdown"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a.Start()

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run() }()

	select {
	case err := <-errCh:
		a.Close()
		if err != nil {
			fmt.Printf("server exited: %v\n", err)
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	a.Log.Info("Shutting down", "timeout", a.Cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("shutdown: %v\n", err)
		os.Exit(1)
	}
	if err := <-errCh; err != nil {
		fmt.Printf("server exited: %v\n", err)
		os.Exit(1)
	}
}
