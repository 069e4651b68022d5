package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/mmv/cmd/mmv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := mmv.Execute(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
