// Package directory maintains the set of known users for partner
// selection, with a per-requester time-bounded cache, and upserts
// identity profiles on login.
package directory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/securechat/securechat/log"
	"github.com/securechat/securechat/metrics"
)

const cacheTTL = 300 * time.Second

// Entry is a directory snapshot of an identity, used only for partner
// selection.
type Entry struct {
	UID         string
	Email       string
	DisplayName string
}

// Store is the users collection in the store of record.
type Store interface {
	ListUsers(ctx context.Context) ([]Entry, error)
	UpsertIdentity(ctx context.Context, e Entry) error
}

// Service serves partner listings from a per-requester cache in front of
// the Store. The cache key is the requesting uid, never "all users":
// stale results for one user must not leak to another.
type Service struct {
	store     Store
	collector *metrics.Collector

	mu    sync.Mutex
	cache map[string]cacheEntry

	now func() time.Time
}

type cacheEntry struct {
	entries []Entry
	expires time.Time
}

func New(store Store, collector *metrics.Collector) *Service {
	return &Service{
		store:     store,
		collector: collector,
		cache:     make(map[string]cacheEntry),
		now:       time.Now,
	}
}

// Partners returns the directory entries visible to selfUID: everyone
// except the requester and entries without an email, deduplicated by
// email (last write wins). A store read failure degrades to an empty
// result with a warning; it never propagates.
func (s *Service) Partners(ctx context.Context, selfUID string) []Entry {
	s.mu.Lock()
	if ce, ok := s.cache[selfUID]; ok && s.now().Before(ce.expires) {
		s.mu.Unlock()
		s.collector.RecordDirectoryLookup(true)
		return ce.entries
	}
	s.mu.Unlock()
	s.collector.RecordDirectoryLookup(false)

	logger := log.LoggerFromContext(ctx)

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		logger.Warn("failed to fetch user list", slog.String("errorMsg", err.Error()))
		users = nil
	}

	var filtered []Entry
	for _, u := range users {
		if u.UID == selfUID || u.Email == "" {
			continue
		}
		filtered = append(filtered, u)
	}
	entries := dedupeByEmail(filtered)

	s.mu.Lock()
	s.cache[selfUID] = cacheEntry{entries: entries, expires: s.now().Add(cacheTTL)}
	s.mu.Unlock()
	return entries
}

// Invalidate drops the cached listing for one requester.
func (s *Service) Invalidate(selfUID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, selfUID)
}

// UpsertIdentity writes the profile to the directory with merge
// semantics. Failure is a warning only; the caller's session must not be
// blocked by it.
func (s *Service) UpsertIdentity(ctx context.Context, e Entry) {
	if err := s.store.UpsertIdentity(ctx, e); err != nil {
		log.LoggerFromContext(ctx).Warn("failed to upsert identity",
			slog.String("errorMsg", err.Error()),
			slog.String("userID", e.UID),
		)
	}
}

// dedupeByEmail keeps the position of the first occurrence of each email
// and the fields of the last.
func dedupeByEmail(entries []Entry) []Entry {
	idx := make(map[string]int, len(entries))
	var out []Entry
	for _, e := range entries {
		if i, ok := idx[e.Email]; ok {
			out[i] = e
			continue
		}
		idx[e.Email] = len(out)
		out = append(out, e)
	}
	return out
}
