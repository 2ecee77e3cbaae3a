// Package background holds tasks that run independently of the HTTP
// request cycle.
package background

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const sweepInterval = 5 * time.Minute

// OAuthCodeStore is the slice of the account service the sweeper needs.
type OAuthCodeStore interface {
	SweepExpiredOAuthCodes(ctx context.Context) (int64, error)
}

// StartOAuthCodeSweeper periodically deletes expired one-time sign-in codes.
// It runs until stopChan is closed.
func StartOAuthCodeSweeper(store OAuthCodeStore, log *zap.Logger, stopChan <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		log.Info("oauth code sweeper started", zap.Duration("interval", sweepInterval))
		for {
			select {
			case <-stopChan:
				log.Info("oauth code sweeper stopped")
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				removed, err := store.SweepExpiredOAuthCodes(ctx)
				cancel()
				if err != nil {
					log.Error("oauth code sweep failed", zap.Error(err))
					continue
				}
				if removed > 0 {
					log.Info("swept expired oauth codes", zap.Int64("removed", removed))
				}
			}
		}
	}()
}
