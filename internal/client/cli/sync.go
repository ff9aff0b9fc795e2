package cli

import (
	"context"
	"fmt"
	"log"
)

// Sync drains the outbox immediately instead of waiting for the timer.
func (a *App) Sync(ctx context.Context) error {
	n, err := a.sync.DrainOnce(ctx)
	if err != nil {
		log.Printf("sync error: %v", err)
		return err
	}
	fmt.Printf("Applied %d operation(s)\n", n)
	return nil
}

// Pending prints how many local writes still wait for the server.
func (a *App) Pending(ctx context.Context) error {
	n, err := a.sync.Pending(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Printf("%d operation(s) pending\n", n)
	return nil
}
