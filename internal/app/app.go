package app

import (
	"context"
	"fmt"
	"time"

	"github.com/snackpos/snackdash/internal/config"
	"github.com/snackpos/snackdash/internal/pos"
	"github.com/snackpos/snackdash/internal/prefs"
	"github.com/snackpos/snackdash/internal/store"
	"github.com/snackpos/snackdash/internal/ui"
)

// Options configure the snackdash application.
type Options struct {
	ConfigPath string
	APIURL     string // overrides config and environment when set
	PrefsPath  string // empty uses default ~/.config/snackdash/prefs.toml
	PollEvery  int    // seconds; zero uses default
}

// Run boots the snackdash TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath, opts.APIURL)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := pos.NewClient(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("init pos client: %w", err)
	}

	st := store.New(client)

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start background poller
	StartPoller(ctx, st, interval)

	// Do initial refresh to populate the store before the UI starts
	_ = st.FetchAll(ctx)

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     st,
		APIURL:    cfg.APIURL,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
