// Package cache provides the keyed client-side cache shared between
// the filter pipeline (reader) and the synchronization layer (writer).
// Consistency relies on cancel-before-write and snapshot/restore
// discipline rather than per-entry versioning.
package cache

import (
	"context"
	"sync"
)

// Kind names a cached collection family.
type Kind string

const (
	KindProjects  Kind = "projects"
	KindTasks     Kind = "tasks"
	KindMembers   Kind = "members"
	KindAssignees Kind = "assignees"
)

// Key identifies one cached collection.
type Key struct {
	Kind      Kind
	ProjectID string
}

// ProjectsKey is the key for the project list (one per user session).
func ProjectsKey() Key { return Key{Kind: KindProjects} }

// TasksKey is the key for a project's task collection.
func TasksKey(projectID string) Key { return Key{Kind: KindTasks, ProjectID: projectID} }

// MembersKey is the key for a project's member list.
func MembersKey(projectID string) Key { return Key{Kind: KindMembers, ProjectID: projectID} }

// AssigneesKey is the key for a project's assignee list.
func AssigneesKey(projectID string) Key { return Key{Kind: KindAssignees, ProjectID: projectID} }

type entry struct {
	value    any
	hasValue bool
	stale    bool
	reads    map[int]context.CancelFunc
	subs     map[int]func()
}

// Store is a keyed cache with subscriber notification, invalidation,
// and in-flight read tracking.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry
	nextID  int
}

// New creates an empty store.
func New() *Store {
	return &Store{entries: map[Key]*entry{}}
}

func (s *Store) entryLocked(key Key) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{
			reads: map[int]context.CancelFunc{},
			subs:  map[int]func(){},
		}
		s.entries[key] = e
	}
	return e
}

// Get returns the cached value when present and fresh.
func (s *Store) Get(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || !e.hasValue || e.stale {
		return nil, false
	}
	return e.value, true
}

// Peek returns the cached value even when stale, for views that prefer
// stale data over nothing while a refetch is in flight.
func (s *Store) Peek(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || !e.hasValue {
		return nil, false
	}
	return e.value, true
}

// Set stores a fresh value and notifies subscribers.
func (s *Store) Set(key Key, value any) {
	s.mu.Lock()
	e := s.entryLocked(key)
	e.value = value
	e.hasValue = true
	e.stale = false
	subs := subscribersLocked(e)
	s.mu.Unlock()

	notify(subs)
}

// Snapshot captures the current value for a later Restore. The second
// return is false when nothing is cached under the key.
func (s *Store) Snapshot(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || !e.hasValue {
		return nil, false
	}
	return e.value, true
}

// Restore replaces the entry with a previously captured snapshot. Full
// replace, not merge.
func (s *Store) Restore(key Key, snapshot any) {
	s.Set(key, snapshot)
}

// Invalidate marks entries stale so the next read refetches, and
// notifies subscribers.
func (s *Store) Invalidate(keys ...Key) {
	var pending []func()
	s.mu.Lock()
	for _, key := range keys {
		e, ok := s.entries[key]
		if !ok {
			continue
		}
		e.stale = true
		pending = append(pending, subscribersLocked(e)...)
	}
	s.mu.Unlock()

	notify(pending)
}

// Subscribe registers fn to run after every change to the key. The
// returned function unsubscribes.
func (s *Store) Subscribe(key Key, fn func()) func() {
	s.mu.Lock()
	e := s.entryLocked(key)
	id := s.nextID
	s.nextID++
	e.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(e.subs, id)
		s.mu.Unlock()
	}
}

// BeginRead registers an in-flight read for the key and returns a
// context that CancelReads will cancel. Callers must invoke the
// returned cancel when the read settles.
func (s *Store) BeginRead(ctx context.Context, key Key) (context.Context, context.CancelFunc) {
	rctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	e := s.entryLocked(key)
	id := s.nextID
	s.nextID++
	e.reads[id] = cancel
	s.mu.Unlock()

	return rctx, func() {
		s.mu.Lock()
		delete(e.reads, id)
		s.mu.Unlock()
		cancel()
	}
}

// CancelReads cancels every in-flight read for the key. Called before
// an optimistic write so a slow read cannot clobber the fresher value.
func (s *Store) CancelReads(key Key) {
	s.mu.Lock()
	e, ok := s.entries[key]
	var cancels []context.CancelFunc
	if ok {
		for id, cancel := range e.reads {
			cancels = append(cancels, cancel)
			delete(e.reads, id)
		}
	}
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

func subscribersLocked(e *entry) []func() {
	subs := make([]func(), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	return subs
}

// notify runs outside the store lock so subscribers may call back in.
func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
