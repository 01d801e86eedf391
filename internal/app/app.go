package app

import (
	"context"
	"fmt"
	"log"

	"github.com/skydz/manifest/internal/api"
	"github.com/skydz/manifest/internal/config"
	"github.com/skydz/manifest/internal/dropzone"
	"github.com/skydz/manifest/internal/prefs"
	"github.com/skydz/manifest/internal/state"
	syncsvc "github.com/skydz/manifest/internal/sync"
	"github.com/skydz/manifest/internal/ui"
)

// Options configure the manifest application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/manifest/prefs.toml
	Offline    bool   // forces offline mode regardless of config
}

// Run boots the manifest TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	offline := cfg.Offline || opts.Offline

	userPrefs := prefs.Load(opts.PrefsPath)

	store := state.New(state.NewCache(cfg.CachePath))
	hadCache := store.Load()
	defer store.Close()

	var service syncsvc.Service
	if offline {
		service = syncsvc.NewOffline(store)
		if !hadCache {
			seedStore(store, cfg.SeedPath)
		}
	} else {
		client, err := api.NewClient(cfg.APIBase, cfg.RequestTimeout)
		if err != nil {
			return fmt.Errorf("init api client: %w", err)
		}
		service = syncsvc.NewRemote(client, store)
	}

	// Populate the store before the UI starts. A failed initial refresh is
	// not fatal: the cached snapshot still works, and the UI surfaces
	// errors on the next manual refresh.
	if err := service.Refresh(ctx); err != nil {
		log.Printf("initial refresh: %v", err)
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Service:   service,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Offline:   offline,
	})
}

// seedStore loads the optional YAML roster into an empty offline store.
func seedStore(store *state.Store, seedPath string) {
	people, parachutes, err := syncsvc.LoadSeed(seedPath)
	if err != nil {
		log.Printf("load seed: %v", err)
		return
	}
	if len(people.Skydivers) == 0 && len(people.Passengers) == 0 && len(parachutes) == 0 {
		return
	}
	store.Mutate(func(s dropzone.Snapshot) dropzone.Snapshot {
		s.People = people
		s.Parachutes = parachutes
		return s
	}, state.TopicPeople, state.TopicParachutes)
}
