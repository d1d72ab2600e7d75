package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vesper-lab/adjutant/pkg/domain/interfaces"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"github.com/vesper-lab/adjutant/pkg/utils/logging"
)

// defaultSenderScan is how many recent inbox messages a refresh inspects
const defaultSenderScan = 50

// ContactRefreshWorker periodically rebuilds a user's contact book from the
// senders of recent inbox messages, so bare names in outgoing email resolve
// to fresh addresses.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader
//   election
type ContactRefreshWorker struct {
	repo     interfaces.Repository
	mail     interfaces.MailService
	userID   types.UserID
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewContactRefreshWorker creates a new worker for refreshing the contact
// book of the given user
func NewContactRefreshWorker(repo interfaces.Repository, mail interfaces.MailService, userID types.UserID, interval time.Duration) *ContactRefreshWorker {
	return &ContactRefreshWorker{
		repo:     repo,
		mail:     mail,
		userID:   userID,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop. The initial sync and periodic
// refresh both run in a background goroutine; startup is never blocked.
func (w *ContactRefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("Contact refresh worker starting",
		"user_id", w.userID,
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ContactRefreshWorker) Stop() {
	logging.Default().Info("Contact refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Contact refresh worker stopped")
}

func (w *ContactRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.Refresh(ctx); err != nil {
		logging.Default().Error("Initial contact refresh failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Refresh(ctx); err != nil {
				logging.Default().Error("Contact refresh failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("Contact refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Contact refresh worker context cancelled")
			return
		}
	}
}

// Refresh performs a single refresh cycle. The whole contact book is
// replaced in one batch write; a failed sender fetch leaves the existing
// book untouched.
func (w *ContactRefreshWorker) Refresh(ctx context.Context) error {
	startTime := time.Now()
	logging.Default().Info("Starting contact refresh", "user_id", w.userID)

	senders, err := w.mail.ListRecentSenders(ctx, defaultSenderScan)
	if err != nil {
		return goerr.Wrap(err, "failed to list recent senders")
	}

	contacts := make([]*model.Contact, len(senders))
	for i, s := range senders {
		contacts[i] = &model.Contact{
			Name:  s.Name,
			Email: s.Email,
		}
	}

	if err := w.repo.Contact().ReplaceAll(ctx, w.userID, contacts); err != nil {
		return goerr.Wrap(err, "failed to replace contacts", goerr.V("count", len(contacts)))
	}

	logging.Default().Info("Contact refresh completed",
		"count", len(contacts),
		"duration", time.Since(startTime).String())

	return nil
}
