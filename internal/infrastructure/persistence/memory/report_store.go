// Package memory provides the in-process implementation of the transient
// report store. The current report lives in a TTL cache so an abandoned
// dashboard does not hold a stale result forever.
package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/minervahq/minerva/internal/domain/models"
	"github.com/minervahq/minerva/internal/domain/repository"
)

const currentReportKey = "analysis:current"

// CacheReportStore implements repository.ReportStore on a go-cache TTL cache.
type CacheReportStore struct {
	cache *gocache.Cache
}

var _ repository.ReportStore = (*CacheReportStore)(nil)

// NewCacheReportStore creates a report store whose entries expire after ttl.
func NewCacheReportStore(ttl time.Duration) *CacheReportStore {
	return &CacheReportStore{
		cache: gocache.New(ttl, ttl),
	}
}

// SetCurrent replaces the current report.
func (s *CacheReportStore) SetCurrent(ctx context.Context, report *models.RiskReport) error {
	s.cache.SetDefault(currentReportKey, report)
	return nil
}

// Current returns the current report, or (nil, nil) when none is held or it
// has expired.
func (s *CacheReportStore) Current(ctx context.Context) (*models.RiskReport, error) {
	v, ok := s.cache.Get(currentReportKey)
	if !ok {
		return nil, nil
	}
	return v.(*models.RiskReport), nil
}

// Clear discards the current report.
func (s *CacheReportStore) Clear(ctx context.Context) error {
	s.cache.Delete(currentReportKey)
	return nil
}
