package gateway

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/toolgate-dev/toolgate/internal/config"
	"github.com/toolgate-dev/toolgate/internal/sanitize"
)

// Reloader watches the config file and hot-swaps the gateway's
// sanitizer rules when it changes. Only the sanitize lists reload;
// protected resources and tier overrides stay fixed until restart, so
// a config edit can tighten or loosen string rules but never silently
// re-shape the protection catalogue mid-flight.
type Reloader struct {
	watcher  *fsnotify.Watcher
	gw       *Gateway
	path     string
	debounce time.Duration
	log      zerolog.Logger

	mu       sync.Mutex
	lastHash string
}

// NewReloader creates a watcher on the config path. A missing file is
// an error: watching nothing would be indistinguishable from working.
func NewReloader(gw *Gateway, path string, logger zerolog.Logger) (*Reloader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reloader: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("reloader: create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("reloader: watch %q: %w", path, err)
	}

	_, hash, err := config.LoadWithHash(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}

	return &Reloader{
		watcher:  watcher,
		gw:       gw,
		path:     path,
		lastHash: hash,
		debounce: 500 * time.Millisecond,
		log:      logger,
	}, nil
}

// Run blocks until ctx is cancelled, reloading after each burst of
// writes settles. A reload that fails to parse keeps the running
// rules; a broken edit must not widen or collapse the policy.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(r.debounce, r.reload)
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Error().Err(err).Msg("config watcher error")
		}
	}
}

func (r *Reloader) reload() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, hash, err := config.LoadWithHash(r.path)
	if err != nil {
		r.log.Error().Err(err).Str("path", r.path).Msg("config reload failed, keeping current rules")
		return
	}
	if hash == r.lastHash {
		return
	}
	r.lastHash = hash

	r.gw.SwapSanitizer(sanitize.New(cfg.Sanitize))
	r.log.Info().Str("path", r.path).Str("config_hash", hash).Msg("sanitizer rules reloaded")
}
