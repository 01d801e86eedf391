// Package state owns the authoritative application snapshot.
//
// # Overview
//
// The Store is the single place the snapshot lives. Every other component
// reads it through Snapshot() (a deep copy) and changes it through
// Mutate(updater, topics...), which applies the updater to a copy and swaps
// the result in atomically. Nothing outside this package ever holds a live
// reference into store state.
//
// # Mutation pipeline
//
//	Mutate(updater, topics...)
//	  1. clone current snapshot
//	  2. updater(copy) -> next snapshot
//	  3. stamp meta.lastUpdated
//	  4. schedule coalesced cache write (150ms debounce)
//	  5. notify topic + wildcard subscribers with fresh copies
//
// Subscriber notification is synchronous and never delayed; only the durable
// write is debounced. Callbacks run without the store lock held, so they may
// read the store or trigger further mutations.
//
// # Durable cache
//
// The Cache persists the snapshot as one JSON document. It is advisory: the
// remote service, when reachable, is the source of truth and every refresh
// overwrites the cache. Load() hydrates from the cache through Normalize,
// which decodes each sub-tree independently and falls back to defaults for
// anything corrupt or wrong-shaped, so a stale or damaged cache can never
// crash the engine.
//
// # Concurrency
//
// A sync.RWMutex guards the snapshot, a separate mutex guards the subscriber
// table, and a third guards the persist timer. The UI event loop is the only
// writer in practice, but the store is safe for concurrent use because
// background sync completions also mutate it.
package state
