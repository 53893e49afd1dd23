package ttlcache

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// Expirer is anything that can drop its expired entries.
type Expirer interface {
	RemoveExpired() int
}

// Sweeper periodically removes expired entries from a set of caches.
type Sweeper struct {
	interval time.Duration
	log      *slog.Logger
	names    []string
	targets  map[string]Expirer
}

// NewSweeper creates a sweeper over the named targets.
// An interval <= 0 disables sweeping; Run then just waits for cancellation.
func NewSweeper(interval time.Duration, log *slog.Logger, targets map[string]Expirer) *Sweeper {
	if log == nil {
		log = slog.Default()
	}
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Sweeper{
		interval: interval,
		log:      log,
		names:    names,
		targets:  targets,
	}
}

// Run sweeps on every tick until ctx is canceled. It always returns nil.
func (s *Sweeper) Run(ctx context.Context) error {
	if s.interval <= 0 || len(s.targets) == 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("sweeper started", "interval", s.interval.String(), "caches", len(s.targets))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopped")
			return nil
		case <-ticker.C:
			s.SweepOnce()
		}
	}
}

// SweepOnce runs a single pass over every target and returns the total removed.
func (s *Sweeper) SweepOnce() int {
	total := 0
	for _, name := range s.names {
		removed := s.targets[name].RemoveExpired()
		if removed > 0 {
			s.log.Debug("removed expired entries", "cache", name, "count", removed)
		}
		total += removed
	}
	return total
}
