// Package favorites keeps the user's favorite dog images.
//
// A Store holds normalized URLs in a set plus a newest-first list. The two
// always contain the same elements. The in-memory state is authoritative for
// the running process; persistence is written after every change but its
// failures are only logged.
package favorites

import (
	"net/url"
	"sync"

	"github.com/sirupsen/logrus"
)

// Store is the favorites state container. It is safe for concurrent use.
type Store struct {
	persistence Persistence
	log         logrus.FieldLogger

	mu   sync.Mutex
	set  map[string]struct{}
	urls []*url.URL // newest first

	// notifyMu orders persistence writes and observer calls so they
	// follow the order of mutations.
	notifyMu  sync.Mutex
	observers map[int]func([]*url.URL)
	nextID    int
}

// NewStore creates a Store and seeds it from p. p may be nil, in which case
// nothing is loaded or saved.
func NewStore(p Persistence, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Store{
		persistence: p,
		log:         log.WithField("component", "favorites"),
		set:         make(map[string]struct{}),
		observers:   make(map[int]func([]*url.URL)),
	}
	s.load()
	return s
}

// load seeds the store from persistence, keeping load order.
// Entries that do not parse as an absolute URL with a host, or that
// duplicate an earlier entry after normalization, are dropped.
func (s *Store) load() {
	if s.persistence == nil {
		return
	}
	raw, err := s.persistence.Load()
	if err != nil {
		s.log.WithError(err).Warn("could not load favorites, starting empty")
		return
	}

	for _, r := range raw {
		u, err := url.Parse(r)
		if err != nil || !Usable(u) {
			s.log.WithField("url", r).Warn("skipping unusable favorite")
			continue
		}
		n := Normalize(u)
		k := key(n)
		if _, ok := s.set[k]; ok {
			continue
		}
		s.set[k] = struct{}{}
		s.urls = append(s.urls, n)
	}
	s.log.WithField("count", len(s.urls)).Debug("loaded favorites")
}

// IsFavorite reports whether the normalized form of u is a favorite.
func (s *Store) IsFavorite(u *url.URL) bool {
	k := key(Normalize(u))

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[k]
	return ok
}

// Toggle flips membership of the normalized form of u. Added URLs go to the
// front of the list. Toggling twice restores the previous state.
func (s *Store) Toggle(u *url.URL) {
	n := Normalize(u)
	k := key(n)

	s.mu.Lock()
	if _, ok := s.set[k]; ok {
		delete(s.set, k)
		for i, existing := range s.urls {
			if key(existing) == k {
				s.urls = append(s.urls[:i:i], s.urls[i+1:]...)
				break
			}
		}
	} else {
		s.set[k] = struct{}{}
		s.urls = append([]*url.URL{n}, s.urls...)
	}
	snapshot := s.snapshotLocked()

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.save(snapshot)
	s.notify(snapshot)
}

// URLs returns the favorites, newest first. The result is a copy.
func (s *Store) URLs() []*url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.urls)
}

// Flush writes the current list to persistence and returns any error.
func (s *Store) Flush() error {
	if s.persistence == nil {
		return nil
	}
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	return s.persistence.Save(toStrings(snapshot))
}

// Subscribe registers fn to receive the list after every change. fn runs on
// the goroutine that made the change, in mutation order, and must not call
// back into the Store. The returned function removes the subscription.
func (s *Store) Subscribe(fn func([]*url.URL)) (cancel func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = fn

	return func() {
		s.notifyMu.Lock()
		defer s.notifyMu.Unlock()
		delete(s.observers, id)
	}
}

// save must be called with notifyMu held.
func (s *Store) save(snapshot []*url.URL) {
	if s.persistence == nil {
		return
	}
	if err := s.persistence.Save(toStrings(snapshot)); err != nil {
		s.log.WithError(err).Warn("could not save favorites")
	}
}

// notify must be called with notifyMu held.
func (s *Store) notify(snapshot []*url.URL) {
	for _, fn := range s.observers {
		fn(copyURLs(snapshot))
	}
}

func (s *Store) snapshotLocked() []*url.URL {
	return copyURLs(s.urls)
}

func copyURLs(in []*url.URL) []*url.URL {
	out := make([]*url.URL, len(in))
	for i, u := range in {
		c := *u
		out[i] = &c
	}
	return out
}

func toStrings(urls []*url.URL) []string {
	out := make([]string, len(urls))
	for i, u := range urls {
		out[i] = u.String()
	}
	return out
}
