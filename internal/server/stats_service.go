package server

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobboard/internal/types"
)

// StatsService produces the dashboard snapshot
type StatsService struct {
	db  StatsStore
	now func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(db StatsStore) *StatsService {
	return &StatsService{db: db, now: time.Now}
}

// Snapshot runs the four counts concurrently. They are not taken from a
// single consistent view of the store.
func (s *StatsService) Snapshot(ctx context.Context) (*types.Stats, error) {
	since := s.now().Add(-types.RecentWindowDays * 24 * time.Hour)

	var stats types.Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalJobs, err = s.db.CountJobs(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalApplications, err = s.db.CountApplications(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.db.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentApplications, err = s.db.CountApplicationsSince(gctx, since)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, storeError("count stats", err)
	}
	return &stats, nil
}
