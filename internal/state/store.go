package state

import (
	"log"
	"sync"
	"time"

	"github.com/skydz/manifest/internal/dropzone"
)

// Topic names a slice of the snapshot that subscribers can watch.
type Topic string

// Topics mirror the snapshot sub-trees. TopicAll subscribers fire on every
// mutation regardless of the topics it was tagged with.
const (
	TopicAll        Topic = "*"
	TopicPeople     Topic = "people"
	TopicParachutes Topic = "parachutes"
	TopicPlans      Topic = "plans"
	TopicDraft      Topic = "draft"
)

// Updater transforms a snapshot copy into the next snapshot.
type Updater func(dropzone.Snapshot) dropzone.Snapshot

// Callback receives a fresh snapshot copy after a mutation.
type Callback func(dropzone.Snapshot)

const defaultPersistDelay = 150 * time.Millisecond

// Store owns the single authoritative snapshot. All reads return deep
// copies; all writes go through Mutate. Durable writes are coalesced by an
// internal scheduler so a burst of mutations produces one cache write.
type Store struct {
	mu       sync.RWMutex
	snapshot dropzone.Snapshot

	subsMu  sync.Mutex
	subs    map[Topic]map[int]Callback
	nextSub int

	cache        *Cache
	persistMu    sync.Mutex
	persistTimer *time.Timer
	persistDelay time.Duration
}

// New creates a store holding the default snapshot. cache may be nil, in
// which case durable persistence is disabled.
func New(cache *Cache) *Store {
	return &Store{
		snapshot:     dropzone.NewSnapshot("init"),
		subs:         make(map[Topic]map[int]Callback),
		cache:        cache,
		persistDelay: defaultPersistDelay,
	}
}

// Snapshot returns a deep copy of the current snapshot.
func (s *Store) Snapshot() dropzone.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// Mutate applies the updater to a copy of the current snapshot, stamps the
// last-modified time, schedules a coalesced durable write, and then notifies
// subscribers of the given topics (plus wildcard subscribers) synchronously.
// Subscribers run without the store lock held and receive their own copies.
func (s *Store) Mutate(update Updater, topics ...Topic) {
	s.mu.Lock()
	next := update(s.snapshot.Clone())
	next.Meta.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	s.snapshot = next
	s.mu.Unlock()

	s.schedulePersist()
	s.notify(topics)
}

// Replace swaps in a whole snapshot, used when hydrating from the cache.
func (s *Store) Replace(snap dropzone.Snapshot) {
	s.mu.Lock()
	s.snapshot = snap.Clone()
	s.mu.Unlock()

	s.schedulePersist()
	s.notify(nil)
}

// Subscribe registers a callback for a topic and returns a handle for
// Unsubscribe.
func (s *Store) Subscribe(topic Topic, cb Callback) int {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	if s.subs[topic] == nil {
		s.subs[topic] = make(map[int]Callback)
	}
	s.nextSub++
	s.subs[topic][s.nextSub] = cb
	return s.nextSub
}

// Unsubscribe removes a previously registered callback.
func (s *Store) Unsubscribe(topic Topic, id int) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	delete(s.subs[topic], id)
}

func (s *Store) notify(topics []Topic) {
	s.subsMu.Lock()
	var cbs []Callback
	seen := make(map[int]bool)
	for _, topic := range topics {
		for id, cb := range s.subs[topic] {
			if !seen[id] {
				seen[id] = true
				cbs = append(cbs, cb)
			}
		}
	}
	for id, cb := range s.subs[TopicAll] {
		if !seen[id] {
			seen[id] = true
			cbs = append(cbs, cb)
		}
	}
	s.subsMu.Unlock()

	for _, cb := range cbs {
		cb(s.Snapshot())
	}
}

// Load hydrates the store from the durable cache. It reports whether a
// cached snapshot was found; corrupt or partially shaped documents degrade
// field-by-field to defaults and still count as loaded.
func (s *Store) Load() bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Read()
	if err != nil {
		return false
	}
	snap, ok := Normalize(data)
	if !ok {
		return false
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.notify(nil)
	return true
}

func (s *Store) schedulePersist() {
	if s.cache == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if s.persistTimer != nil {
		s.persistTimer.Stop()
	}
	s.persistTimer = time.AfterFunc(s.persistDelay, s.writeCache)
}

func (s *Store) writeCache() {
	if err := s.cache.Write(s.Snapshot()); err != nil {
		log.Printf("state: cache write failed: %v", err)
	}
}

// Flush cancels any pending coalesced write and persists immediately.
// Exposed so shutdown and tests are deterministic.
func (s *Store) Flush() {
	if s.cache == nil {
		return
	}
	s.persistMu.Lock()
	if s.persistTimer != nil {
		s.persistTimer.Stop()
		s.persistTimer = nil
	}
	s.persistMu.Unlock()

	s.writeCache()
}

// Close flushes the pending write.
func (s *Store) Close() {
	s.Flush()
}
