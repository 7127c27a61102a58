package library

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/howlerhq/howler-api/internal/domain/instagram"
	"github.com/howlerhq/howler-api/pkg/apperror"
	"github.com/howlerhq/howler-api/pkg/logger"
)

const DefaultCapacity = 500

// Store is the bounded, deduplicating media library. Items are held
// ordered newest-first by publish date. All mutations serialize behind
// a single writer lock; reads take consistent snapshots under the read
// lock and return value copies, never aliases into the store.
type Store struct {
	mu       sync.RWMutex
	items    []MediaItem
	byID     map[string]int // source post id -> index into items
	capacity int
	logger   logger.Logger

	now   func() time.Time
	newID func() string
}

func NewStore(capacity int, log logger.Logger) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		byID:     make(map[string]int),
		capacity: capacity,
		logger:   log,
		now:      time.Now,
		newID:    newLibraryID,
	}
}

func newLibraryID() string {
	return fmt.Sprintf("lib_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Ingest merges a batch of candidate posts attributed to one account.
// A post whose id is already present only has its like and comment
// counters refreshed; identity, libraryId and importedAt stay fixed.
// Returns the number of genuinely new items.
func (s *Store) Ingest(posts []instagram.Post, account string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	newCount := 0

	for _, p := range posts {
		if p.ID == "" {
			continue
		}
		if idx, ok := s.byID[p.ID]; ok {
			s.items[idx].Likes = p.Likes
			s.items[idx].Comments = p.Comments
			continue
		}
		s.items = append(s.items, MediaItem{
			Post:          p,
			LibraryID:     s.newID(),
			SourceAccount: account,
			ImportedAt:    now,
			Used:          false,
		})
		// Index immediately so a duplicate id later in the same batch
		// takes the refresh branch instead of inserting a second copy.
		s.byID[p.ID] = len(s.items) - 1
		newCount++
	}

	s.sortByPublishedDescLocked()
	s.reindexLocked()
	s.enforceCapacityLocked()

	return newCount
}

func (s *Store) sortByPublishedDescLocked() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return publishedOrZero(s.items[i]).After(publishedOrZero(s.items[j]))
	})
}

func publishedOrZero(item MediaItem) time.Time {
	if item.PublishedAt == nil {
		return time.Time{}
	}
	return *item.PublishedAt
}

func (s *Store) reindexLocked() {
	for i := range s.items {
		s.byID[s.items[i].ID] = i
	}
}

// enforceCapacityLocked drops the tail, which after sorting holds the
// oldest posts by publish date.
func (s *Store) enforceCapacityLocked() {
	if len(s.items) <= s.capacity {
		return
	}
	evicted := len(s.items) - s.capacity
	for _, item := range s.items[s.capacity:] {
		delete(s.byID, item.ID)
	}
	s.items = s.items[:s.capacity]
	s.logger.Info("library capacity reached, evicted oldest items",
		zap.Int("evicted", evicted), zap.Int("capacity", s.capacity))
}

// findLocked matches the locally assigned libraryId first, then the
// source post id.
func (s *Store) findLocked(id string) int {
	for i := range s.items {
		if s.items[i].LibraryID == id {
			return i
		}
	}
	if idx, ok := s.byID[id]; ok {
		return idx
	}
	return -1
}

// MarkUsed toggles the used flag. UsedAt is stamped exactly on the
// transition into used and cleared on the transition out; re-marking an
// already used item keeps the original timestamp.
func (s *Store) MarkUsed(id string, used bool) (MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(id)
	if idx == -1 {
		return MediaItem{}, apperror.NewNotFound("library item", id)
	}

	item := &s.items[idx]
	switch {
	case used && !item.Used:
		now := s.now()
		item.UsedAt = &now
	case !used:
		item.UsedAt = nil
	}
	item.Used = used

	return *item, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(id)
	if idx == -1 {
		return apperror.NewNotFound("library item", id)
	}

	delete(s.byID, s.items[idx].ID)
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.reindexLocked()
	return nil
}

// DeleteByAccount removes every item ingested from the given account
// and returns how many were removed.
func (s *Store) DeleteByAccount(account string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	removed := 0
	for _, item := range s.items {
		if item.SourceAccount == account {
			delete(s.byID, item.ID)
			removed++
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	s.reindexLocked()
	return removed
}

// Query filters, sorts and pages the library. Pages are 1-indexed and
// an out-of-range page yields an empty slice rather than an error.
func (s *Store) Query(q Query) ([]MediaItem, Pagination) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]MediaItem, 0, len(s.items))
	search := strings.ToLower(q.Search)
	for _, item := range s.items {
		if q.Account != "" && item.SourceAccount != q.Account {
			continue
		}
		if q.Used != nil && item.Used != *q.Used {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Caption), search) {
			continue
		}
		filtered = append(filtered, item)
	}

	sortItems(filtered, q.SortBy, q.SortOrder)

	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	total := len(filtered)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return filtered[start:end], Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

func sortItems(items []MediaItem, by SortBy, order SortOrder) {
	asc := order == OrderAsc
	sort.SliceStable(items, func(i, j int) bool {
		var less bool
		if by == SortByLikes {
			less = items[i].Likes < items[j].Likes
		} else {
			less = publishedOrZero(items[i]).Before(publishedOrZero(items[j]))
		}
		if asc {
			return less
		}
		return !less && !equalSortKey(items[i], items[j], by)
	})
}

func equalSortKey(a, b MediaItem, by SortBy) bool {
	if by == SortByLikes {
		return a.Likes == b.Likes
	}
	return publishedOrZero(a).Equal(publishedOrZero(b))
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{TotalItems: len(s.items), Accounts: []AccountCount{}}
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, item := range s.items {
		if item.Used {
			stats.UsedItems++
		}
		if item.SourceAccount == "" {
			continue
		}
		if _, seen := counts[item.SourceAccount]; !seen {
			order = append(order, item.SourceAccount)
		}
		counts[item.SourceAccount]++
	}
	for _, account := range order {
		stats.Accounts = append(stats.Accounts, AccountCount{Username: account, Count: counts[account]})
	}
	return stats
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns a copy of every item, for persistence.
func (s *Store) Snapshot() []MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]MediaItem, len(s.items))
	copy(out, s.items)
	return out
}

// Restore replaces the store contents, typically at process start.
func (s *Store) Restore(items []MediaItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]MediaItem, len(items))
	copy(s.items, items)
	s.byID = make(map[string]int, len(items))
	s.sortByPublishedDescLocked()
	s.reindexLocked()
	s.enforceCapacityLocked()
}
