package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baula-dev/baula-sync/internal/models"
)

const (
	leaseKeyPrefix  = "sync:lease:"
	reportKeyPrefix = "sync:report:"
)

// Lease is a semester-scoped run guard backed by Redis. It prevents two sync
// runs for the same semester from overlapping, e.g. when a scheduled trigger
// fires while a manually started run is still in progress.
type Lease struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLease builds a lease with the configured safety TTL. The TTL only
// bounds the damage of a crashed holder; a finishing run releases early.
func NewLease(client *redis.Client, ttl time.Duration) *Lease {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Lease{client: client, ttl: ttl}
}

// Acquire attempts to take the lease for a semester. It returns false when
// another run currently holds it.
func (l *Lease) Acquire(ctx context.Context, semester string) (bool, error) {
	ok, err := l.client.SetNX(ctx, leaseKeyPrefix+semester, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire sync lease: %w", err)
	}
	return ok, nil
}

// Held reports whether a run currently holds the lease for a semester.
func (l *Lease) Held(ctx context.Context, semester string) (bool, error) {
	n, err := l.client.Exists(ctx, leaseKeyPrefix+semester).Result()
	if err != nil {
		return false, fmt.Errorf("check sync lease: %w", err)
	}
	return n > 0, nil
}

// Release frees the lease for a semester.
func (l *Lease) Release(ctx context.Context, semester string) error {
	if err := l.client.Del(ctx, leaseKeyPrefix+semester).Err(); err != nil {
		return fmt.Errorf("release sync lease: %w", err)
	}
	return nil
}

// ReportStore caches the latest run report per semester so the admin panel
// can show it without a database round trip.
type ReportStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportStore builds a report cache with the configured retention.
func NewReportStore(client *redis.Client, ttl time.Duration) *ReportStore {
	return &ReportStore{client: client, ttl: ttl}
}

// Save stores the report under its semester key.
func (s *ReportStore) Save(ctx context.Context, report *models.SyncReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal sync report: %w", err)
	}
	if err := s.client.Set(ctx, reportKeyPrefix+report.Semester, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store sync report: %w", err)
	}
	return nil
}

// Load returns the cached report for a semester, or nil when none exists.
func (s *ReportStore) Load(ctx context.Context, semester string) (*models.SyncReport, error) {
	payload, err := s.client.Get(ctx, reportKeyPrefix+semester).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load sync report: %w", err)
	}
	report := &models.SyncReport{}
	if err := json.Unmarshal(payload, report); err != nil {
		return nil, fmt.Errorf("decode sync report: %w", err)
	}
	return report, nil
}
