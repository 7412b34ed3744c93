// Package report drains locally queued contact reports to the remote
// backend. Submission is best effort: the backend may be a stub that
// accepts everything or a network that rejects everything, and the
// local queue is the source of truth either way.
package report

import (
	"context"
	"time"

	"github.com/matheus3301/huddle/internal/bus"
	"github.com/matheus3301/huddle/internal/chat"
	"github.com/matheus3301/huddle/internal/remote"
	"go.uber.org/zap"
)

const reportsTable = "reports"

// Submitter polls the store for queued reports and submits them.
type Submitter struct {
	store    *chat.Store
	client   remote.Client
	bus      *bus.Bus
	logger   *zap.Logger
	interval time.Duration
	cancel   context.CancelFunc
}

// NewSubmitter creates a new report submitter.
func NewSubmitter(store *chat.Store, client remote.Client, b *bus.Bus, logger *zap.Logger) *Submitter {
	return &Submitter{
		store:    store,
		client:   client,
		bus:      b,
		logger:   logger,
		interval: 2 * time.Second,
	}
}

// Start begins polling for pending reports.
func (s *Submitter) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go s.loop(ctx)
}

// Stop stops the polling loop.
func (s *Submitter) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Submitter) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.processPending(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Submitter) processPending(ctx context.Context) {
	for _, r := range s.store.PendingReports() {
		rec := remote.Record{
			"id":         r.ID,
			"contact_id": r.ContactID,
			"topics":     r.Topics,
			"note":       r.Note,
			"reporter":   r.Reporter,
			"created_at": r.CreatedAt,
		}
		if err := s.client.Insert(ctx, reportsTable, rec); err != nil {
			s.logger.Warn("report submission failed", zap.Error(err), zap.String("report_id", r.ID))
			s.store.MarkReportFailed(r.ID, err.Error())
			s.bus.Announce(bus.KindReportFailed, r.ID)
			continue
		}
		s.store.MarkReportSubmitted(r.ID)
		s.logger.Info("report submitted", zap.String("report_id", r.ID))
		s.bus.Announce(bus.KindReportSubmitted, r.ID)
	}
}
