// Package app is the composition root for the manifest client.
//
// Run wires configuration, the snapshot store with its JSON cache, one of
// the two synchronization services, and the TUI:
//
//  1. Load config from ~/.config/manifest/config.toml plus MANIFEST_* env
//  2. Load user preferences (theme)
//  3. Create the state.Store and warm it from the on-disk cache
//  4. Pick sync.Remote (HTTP client) or sync.Offline (local only); an
//     empty offline store is seeded from the optional YAML roster
//  5. Run one initial Refresh so the UI starts on current data
//  6. Start the TUI and block until exit, flushing the cache on the way out
//
// The initial refresh is best-effort: a dropzone with a flaky link still
// gets a working client on cached data, and every later synchronization
// error is surfaced in the UI's message bar.
//
// There is no background poll loop. The draft is edited locally between
// synchronization points, and an unsolicited refresh would replace it
// mid-edit; ground truth is re-established explicitly after every remote
// mutation and on demand.
package app
