// Package background contains tasks that run independently of the HTTP
// request-response cycle. The only task here is the periodic removal of
// expired session records, so the sessions table does not grow without bound.
package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Charchl1/Blog-Project/auth"
)

const (
	// cleanupTickerDuration is how often expired sessions are purged.
	cleanupTickerDuration = 15 * time.Minute
	// cleanupTimeout bounds a single purge run.
	cleanupTimeout = 30 * time.Second
)

// StartSessionCleanupService launches the background goroutine that purges
// expired sessions on a ticker. Closing stopChan stops the service; the
// returned WaitGroup is done once the goroutine has exited.
func StartSessionCleanupService(service auth.Service, stopChan <-chan struct{}) *sync.WaitGroup {
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		defer log.Println("Session cleanup service stopped.")

		ticker := time.NewTicker(cleanupTickerDuration)
		defer ticker.Stop()

		// Run once at startup so a long-idle deployment starts clean.
		purgeOnce(service)

		for {
			select {
			case <-ticker.C:
				purgeOnce(service)
			case <-stopChan:
				return
			}
		}
	}()

	return &wg
}

func purgeOnce(service auth.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	removed, err := service.PurgeExpiredSessions(ctx)
	if err != nil {
		log.Printf("Session cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Session cleanup removed %d expired session(s)", removed)
	}
}
