// Package cache implements the client-side entity cache: query results keyed
// by operation + parameters, linked to entity tags through an explicit
// bipartite index so mutations can invalidate exactly the reads that depend
// on them. Identical in-flight queries are deduplicated.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/elliot09alderson/estate-client/internal/logging"
)

// Fetch loads fresh data for one cache key.
type Fetch func(ctx context.Context) (any, error)

// Result is delivered to subscribers after every (re)fetch of their key.
type Result struct {
	Data any
	Err  error
}

// Store owns the cache entries. Consumers never mutate entries directly;
// all shared state changes happen under the store's lock.
type Store struct {
	mu       sync.Mutex
	entries  map[string]*entry
	tagIndex map[string]map[string]struct{} // tag -> keys carrying it
	group    singleflight.Group
	log      logging.Logger
}

type entry struct {
	key   string
	tags  []string
	fetch Fetch

	data    any
	hasData bool
	stale   bool

	subs      map[int]func(Result)
	nextSubID int
}

// NewStore constructs an empty Store.
func NewStore(log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Store{
		entries:  make(map[string]*entry),
		tagIndex: make(map[string]map[string]struct{}),
		log:      log,
	}
}

// Key builds the cache key for an operation and its parameters. Params are
// serialized with encoding/json, which is deterministic for struct types.
func Key(op string, params any) string {
	if params == nil {
		return op
	}
	data, err := json.Marshal(params)
	if err != nil {
		// Unserializable params cannot share a cache slot; make the key unique.
		return fmt.Sprintf("%s:!%p", op, &params)
	}
	return op + ":" + string(data)
}

// Query returns the cached value for key, fetching it first when the entry is
// absent, stale, or errored on its last fetch. Concurrent calls for the same
// key share one fetch. The tags and fetch function are (re)registered on
// every call so invalidation always finds the latest definition.
func (s *Store) Query(ctx context.Context, key string, tags []string, fetch Fetch) (any, error) {
	s.mu.Lock()
	e := s.ensureLocked(key)
	e.fetch = fetch
	s.retagLocked(e, tags)
	if e.hasData && !e.stale {
		data := e.data
		s.mu.Unlock()
		return data, nil
	}
	s.mu.Unlock()

	return s.refetch(ctx, key)
}

// Subscribe registers fn to receive every future fetch result for key,
// creating the entry if needed. The returned function unsubscribes; it is
// safe to call more than once.
func (s *Store) Subscribe(key string, fn func(Result)) (unsubscribe func()) {
	s.mu.Lock()
	e := s.ensureLocked(key)
	id := e.nextSubID
	e.nextSubID++
	e.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if e, ok := s.entries[key]; ok {
				delete(e.subs, id)
			}
			s.mu.Unlock()
		})
	}
}

// Invalidate marks every entry carrying one of the tags stale. Entries with
// live subscribers are refetched in the background and their subscribers
// notified; entries without subscribers are evicted.
func (s *Store) Invalidate(ctx context.Context, tags ...string) {
	s.mu.Lock()
	var refetchKeys []string
	seen := make(map[string]struct{})
	for _, tag := range tags {
		for key := range s.tagIndex[tag] {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			e := s.entries[key]
			e.stale = true
			switch {
			case len(e.subs) == 0:
				s.evictLocked(e)
			case e.fetch != nil:
				refetchKeys = append(refetchKeys, key)
			}
			// A subscribed entry with no fetch stays stale until the
			// next Query re-registers one.
		}
	}
	s.mu.Unlock()

	// The mutation's context may end before the refetches do.
	bg := context.WithoutCancel(ctx)
	for _, key := range refetchKeys {
		go func(key string) {
			if _, err := s.refetch(bg, key); err != nil {
				s.log.Warn(bg, "background refetch failed", "key", key, "err", err)
			}
		}(key)
	}
}

// Mutate runs the write and, only on success, invalidates the declared tags.
func (s *Store) Mutate(ctx context.Context, invalidates []string, do func(ctx context.Context) error) error {
	if err := do(ctx); err != nil {
		return err
	}
	s.Invalidate(ctx, invalidates...)
	return nil
}

// refetch performs the entry's fetch under singleflight, stores the outcome,
// and notifies subscribers. The winning caller's context drives the fetch.
func (s *Store) refetch(ctx context.Context, key string) (any, error) {
	v, err, _ := s.group.Do(key, func() (any, error) {
		s.mu.Lock()
		e, ok := s.entries[key]
		if !ok || e.fetch == nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("no fetch registered for key %q", key)
		}
		fetch := e.fetch
		s.mu.Unlock()

		data, err := fetch(ctx)

		s.mu.Lock()
		if e, ok := s.entries[key]; ok {
			if err == nil {
				e.data = data
				e.hasData = true
				e.stale = false
			} else {
				// Errored entries stay refetchable on the next read.
				e.hasData = false
			}
			for _, fn := range e.subs {
				go fn(Result{Data: data, Err: err})
			}
		}
		s.mu.Unlock()

		return data, err
	})
	return v, err
}

func (s *Store) ensureLocked(key string) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{key: key, subs: make(map[int]func(Result))}
		s.entries[key] = e
	}
	return e
}

func (s *Store) retagLocked(e *entry, tags []string) {
	for _, tag := range e.tags {
		delete(s.tagIndex[tag], e.key)
	}
	e.tags = tags
	for _, tag := range tags {
		if s.tagIndex[tag] == nil {
			s.tagIndex[tag] = make(map[string]struct{})
		}
		s.tagIndex[tag][e.key] = struct{}{}
	}
}

func (s *Store) evictLocked(e *entry) {
	for _, tag := range e.tags {
		delete(s.tagIndex[tag], e.key)
	}
	delete(s.entries, e.key)
}

// QueryAs is the typed convenience wrapper over Store.Query.
func QueryAs[T any](ctx context.Context, s *Store, key string, tags []string, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := s.Query(ctx, key, tags, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %q holds %T, not the requested type", key, v)
	}
	return t, nil
}
