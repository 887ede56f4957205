// Package app wires the storage primitives into a runnable process:
// config loading, logging, graceful shutdown, and a small control
// surface over the buffer pool and trie store.
package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// Entrypoint is anything Run can drive through an init/run/close cycle
// under a single cancellable context.
type Entrypoint interface {
	io.Closer
	Init(ctx context.Context) error
	Run(ctx context.Context) error
}

// Run initializes e, runs it until ctx is canceled or it returns on its
// own, then closes it. SIGINT/SIGTERM cancel ctx for a graceful stop.
func Run(ctx context.Context, e Entrypoint) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := e.Init(ctx); err != nil {
		return fmt.Errorf("entrypoint init error: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer cancel()
		return e.Run(ctx)
	})

	eg.Go(func() error {
		<-ctx.Done()
		fmt.Printf("gracefully shutting down pagekv...\n")

		return e.Close()
	})

	if err := eg.Wait(); err != nil {
		fmt.Printf("pagekv was shut down, reason: %s\n", err.Error())
	}

	return nil
}
