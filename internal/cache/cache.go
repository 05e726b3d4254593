// Package cache implements the tag-addressed entity cache. Each fetch
// files its result under a set of tags; mutations invalidate tags,
// marking every entry filed under them stale so the next read
// re-fetches. Concurrent reads of the same key share a single
// in-flight fetch.
//
// The backing store is a bounded LRU: a hash map for O(1) key lookup
// combined with a doubly linked list for O(1) eviction ordering.
package cache

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/startuplens/lens/internal/metrics"
)

// Tag types used by the dashboard.
const (
	TypeUser   = "User"
	TypeIdea   = "Idea"
	TypeReport = "Report"
)

// Tag groups cached entries that a mutation invalidates together. An
// empty ID addresses every entry of the type; a set ID addresses one
// entity.
type Tag struct {
	Type string
	ID   string
}

// List returns the tag covering all entries of a type.
func List(typ string) Tag {
	return Tag{Type: typ}
}

// Entity returns the tag for a single entity.
func Entity(typ, id string) Tag {
	return Tag{Type: typ, ID: id}
}

// matches reports whether an invalidation of t covers filed. A list
// tag covers both list and entity entries of its type; an entity tag
// covers only the exact entity.
func (t Tag) matches(filed Tag) bool {
	if t.Type != filed.Type {
		return false
	}
	return t.ID == "" || t.ID == filed.ID
}

// entry is a doubly linked list node holding one cached value.
type entry struct {
	key   string
	value any
	tags  []Tag
	stale bool
	prev  *entry
	next  *entry
}

// FetchFunc loads a value through the request pipeline.
type FetchFunc func(ctx context.Context) (any, error)

// Store is the process-wide entity cache.
type Store struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*entry
	head     *entry // most recently used (sentinel)
	tail     *entry // least recently used (sentinel)
	group    singleflight.Group
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// New creates a cache with the given capacity. Panics if capacity < 1.
func New(capacity int, logger zerolog.Logger) *Store {
	if capacity < 1 {
		panic("cache: capacity must be >= 1")
	}

	head := &entry{}
	tail := &entry{}
	head.next = tail
	tail.prev = head

	return &Store{
		capacity: capacity,
		items:    make(map[string]*entry, capacity),
		head:     head,
		tail:     tail,
		logger:   logger.With().Str("component", "cache").Logger(),
	}
}

// SetMetrics wires cache metrics.
func (s *Store) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// GetOrFetch returns the fresh cached value for key, or loads it with
// fetch and files it under tags. Concurrent callers of the same key
// while a fetch is in flight all receive the result of that one call.
// A fetch error is returned to every waiter and nothing is cached.
func (s *Store) GetOrFetch(ctx context.Context, key string, tags []Tag, fetch FetchFunc) (any, error) {
	s.mu.Lock()
	if e, ok := s.items[key]; ok && !e.stale {
		s.moveToFront(e)
		v := e.value
		s.mu.Unlock()
		if s.metrics != nil {
			s.metrics.RecordCacheHit()
		}
		return v, nil
	}
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordCacheMiss()
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		val, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.put(key, val, tags)
		return val, nil
	})
	return v, err
}

// Invalidate marks every entry filed under any of the given tags stale.
// The entries stay resident so their keys remain known, but the next
// read of each re-fetches.
func (s *Store) Invalidate(tags ...Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tag := range tags {
		n := 0
		for _, e := range s.items {
			if e.stale {
				continue
			}
			for _, filed := range e.tags {
				if tag.matches(filed) {
					e.stale = true
					n++
					break
				}
			}
		}
		if s.metrics != nil {
			s.metrics.RecordInvalidation(tag.Type)
		}
		s.logger.Debug().Str("tag", tag.Type).Str("id", tag.ID).Int("entries", n).Msg("invalidated")
	}
}

// Len returns the number of resident entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Clear drops all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.head.next = s.tail
	s.tail.prev = s.head
	s.items = make(map[string]*entry, s.capacity)
}

func (s *Store) put(key string, value any, tags []Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.items[key]; ok {
		e.value = value
		e.tags = tags
		e.stale = false
		s.moveToFront(e)
		return
	}

	if len(s.items) >= s.capacity {
		victim := s.tail.prev
		s.remove(victim)
		delete(s.items, victim.key)
	}

	e := &entry{key: key, value: value, tags: tags}
	s.items[key] = e
	s.pushFront(e)
}

// --- linked list operations (caller must hold lock) ---

func (s *Store) remove(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
}

func (s *Store) pushFront(e *entry) {
	e.next = s.head.next
	e.prev = s.head
	s.head.next.prev = e
	s.head.next = e
}

func (s *Store) moveToFront(e *entry) {
	s.remove(e)
	s.pushFront(e)
}

// Fetch is the typed wrapper around Store.GetOrFetch.
func Fetch[T any](ctx context.Context, s *Store, key string, tags []Tag, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := s.GetOrFetch(ctx, key, tags, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
