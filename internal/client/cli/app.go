package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/elliot09alderson/estate-client/internal/client/api"
	"github.com/elliot09alderson/estate-client/internal/client/cache"
	"github.com/elliot09alderson/estate-client/internal/client/config"
	"github.com/elliot09alderson/estate-client/internal/client/localdb"
	"github.com/elliot09alderson/estate-client/internal/client/models"
	"github.com/elliot09alderson/estate-client/internal/client/services"
	"github.com/elliot09alderson/estate-client/internal/client/session"
	"github.com/elliot09alderson/estate-client/internal/client/transport"
	"github.com/elliot09alderson/estate-client/internal/client/uploader"
	"github.com/elliot09alderson/estate-client/internal/logging"
	"github.com/elliot09alderson/estate-client/internal/netx"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// App is the interactive client: every command the REPL dispatches lives on
// it.
type App struct {
	config    *config.Config
	log       logging.Logger
	repos     *localdb.Repositories
	session   *session.Store
	catalog   *api.API
	auth      *services.AuthService
	favorites *services.FavoritesService
	queue     *uploader.Queue
	reader    *bufio.Reader

	mu   sync.Mutex
	user *models.User
	mode Mode
}

// NewApp wires the whole client: local database, session store, REST
// transport with session teardown on 401, entity cache, operation catalog,
// services and the upload queue.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	repos, err := localdb.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening local database: %w", err)
	}

	sess := session.NewStore(repos.DB, repos.Metadata, log)

	a := &App{
		config:  cfg,
		log:     log,
		repos:   repos,
		session: sess,
		reader:  bufio.NewReader(os.Stdin),
		mode:    ModeOnline,
	}

	rest := transport.New(cfg.BaseURL, sess,
		transport.WithLogger(log),
		transport.WithUnauthorizedHook(a.onUnauthorized),
	)

	store := cache.NewStore(log)
	a.catalog = api.New(rest, store, log)
	a.auth = services.NewAuthService(a.catalog, sess, log)
	a.favorites = services.NewFavoritesService(a.catalog, repos.Favorites, log)
	a.queue = uploader.NewQueue(a.catalog.UploadPropertyImages, uploader.Options{
		MaxConcurrent: cfg.MaxConcurrentUploads,
		Timeout:       cfg.UploadTimeout,
		Logger:        log,
	})

	return a, nil
}

// onUnauthorized tears the session down when the backend rejects the token.
func (a *App) onUnauthorized(ctx context.Context) {
	a.log.Warn(ctx, "session rejected by backend, signing out")
	if err := a.session.Clear(ctx); err != nil {
		a.log.Error(ctx, "clearing session", "error", err)
	}
	a.setUser(nil)
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}

func (a *App) currentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *App) isLoggedIn() bool {
	return a.currentUser() != nil
}

func (a *App) isAdmin() bool {
	u := a.currentUser()
	return u != nil && u.Role == models.RoleAdmin
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		printlnFn(fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := ""
	if a.user != nil {
		s = a.user.Name + " "
	}
	s += string(a.mode)
	return fmt.Sprintf("(%s)", s)
}

// Run restores the persisted session, starts the connectivity watcher and
// the completed-upload notifier, and blocks in the REPL until the user
// exits.
func (a *App) Run(ctx context.Context) {
	defer a.repos.DB.Close()

	if user, err := a.session.CurrentUser(ctx); err == nil && user != nil {
		a.setUser(user)
		printlnFn(fmt.Sprintf("Welcome back, %s!", user.Name))
	}

	if shown, err := a.session.LocationPromptShown(ctx); err == nil && !shown {
		printlnFn("Tip: 'location <lat> <lng>' sorts listings by distance")
		if err := a.session.MarkLocationPromptShown(ctx); err != nil {
			a.log.Warn(ctx, "marking location prompt shown", "error", err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.startOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	unsub := a.queue.SubscribeCompletion(func(propertyID string, urls []string) {
		printlnFn(fmt.Sprintf("Upload finished for property %s (%d images)", propertyID, len(urls)))
	})
	defer unsub()

	printlnFn("Estate CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

// startOnlineStatusWatcher probes the backend on a fixed interval and flips
// the displayed mode when reachability changes.
func (a *App) startOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := netx.CheckReachable(ctx, a.config.BaseURL, 3*time.Second)
			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}
		case <-ctx.Done():
			return
		}
	}
}
