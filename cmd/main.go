package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yungbote/membership-registry/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init app: %v\n", err)
		os.Exit(1)
	}

	code := 0
	if err := a.Run(ctx); err != nil {
		a.Log.Error("Server failed", "error", err)
		code = 1
	} else {
		a.Log.Info("Server stopped")
	}
	a.Close()
	os.Exit(code)
}
