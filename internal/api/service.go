// Package api mounts the HTTP surface over the validation core: a
// /validate endpoint that runs a submitted registration batch through the
// two-pass engine, and a /search endpoint for the free-text lookup a
// registration desk uses to find a member's IGRA# by name.
package api

import (
	"context"
	"time"

	"rodeovalidate/internal/audit"
	"rodeovalidate/internal/eventbus"
	"rodeovalidate/internal/namematch"
	"rodeovalidate/internal/platform/rediscache"
	"rodeovalidate/internal/regdb"
	"rodeovalidate/internal/registration"
	"rodeovalidate/internal/validation"
	"rodeovalidate/internal/validation/metrics"
	"rodeovalidate/pkg/requestcontext"
)

// Service wires the validation core to its supporting infrastructure:
// the personnel Database, the search cache, the audit trail and the
// downstream event publisher.
type Service struct {
	db        *regdb.Database
	cache     *rediscache.Cache
	audit     *audit.Publisher
	publisher eventbus.Publisher
	metrics   *metrics.Metrics
	dbfPath   string
	limit     int
}

// NewService constructs a Service. cache, auditPublisher and publisher may
// each be nil, in which case that concern is skipped rather than erroring.
func NewService(db *regdb.Database, dbfPath string, cache *rediscache.Cache, auditPublisher *audit.Publisher, publisher eventbus.Publisher, m *metrics.Metrics, resultLimit int) *Service {
	return &Service{
		db:        db,
		cache:     cache,
		audit:     auditPublisher,
		publisher: publisher,
		metrics:   m,
		dbfPath:   dbfPath,
		limit:     resultLimit,
	}
}

// Validate runs batch through the validation engine, then records an audit
// entry and publishes a completion event, neither of which can fail the
// request: a downstream bookkeeping outage should not block registration
// desk staff from seeing their results.
func (s *Service) Validate(ctx context.Context, batch registration.Batch) (validation.Report, error) {
	report, err := validation.Validate(ctx, batch, s.db, requestcontext.Now(ctx), s.metrics)
	if err != nil {
		return validation.Report{}, err
	}

	issueCount := 0
	for _, r := range report.Results {
		issueCount += len(r.Issues)
	}

	if s.audit != nil {
		_ = s.audit.Emit(ctx, audit.Event{
			RequestID:         requestcontext.RequestID(ctx),
			DBFPath:           s.dbfPath,
			RegistrationCount: len(report.Results),
			IssueCount:        issueCount,
			Outcome:           "ok",
		})
	}

	if s.publisher != nil {
		_ = s.publisher.PublishValidated(ctx, eventbus.ValidatedEvent{
			RequestID:         requestcontext.RequestID(ctx),
			DBFPath:           s.dbfPath,
			RegistrationCount: len(report.Results),
			IssueCount:        issueCount,
			ValidatedAt:       time.Now(),
		})
	}

	return report, nil
}

// Search ranks the roster against query, serving a cached result set when
// available, and truncates to the configured result limit.
func (s *Service) Search(ctx context.Context, query string) []regdb.Candidate {
	key := namematch.Normalize(query)
	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached
	}

	candidates := s.db.SearchPerformance(query)
	if len(candidates) > s.limit {
		candidates = candidates[:s.limit]
	}

	s.cache.Set(ctx, key, candidates)
	return candidates
}
