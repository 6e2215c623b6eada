package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/avolkovs/flixcli/internal/client/config"
	"github.com/avolkovs/flixcli/internal/client/gateway"
	"github.com/avolkovs/flixcli/internal/client/services"
	"github.com/avolkovs/flixcli/internal/client/session"
	"github.com/avolkovs/flixcli/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the client together: local database, session store, HTTP
// gateway, and the services the REPL commands call.
type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	sessions  *session.Store
	auth      *services.AuthService
	favorites *services.Reconciler
	profile   *services.Editor
	catalog   *services.Catalog

	reader *bufio.Reader
	out    io.Writer

	// ids of the last printed movie listing, so `fav 3` works.
	lastListing []string
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := session.OpenDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init local database: %w", err)
	}

	store, err := session.NewStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init session store: %w", err)
	}

	gw := gateway.NewHTTPGateway(cfg.ServerURL, cfg.RequestTimeout, store, log)

	a := &App{
		config:    cfg,
		log:       log,
		db:        db,
		sessions:  store,
		auth:      services.NewAuthService(gw, store, log),
		favorites: services.NewReconciler(gw, store, log),
		profile:   services.NewEditor(gw, store, log),
		catalog:   services.NewCatalog(gw, store, log),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}

	// A session persisted by a previous run resumes without a login.
	if sess, ok := store.Current(); ok {
		a.favorites.Reset(sess.User)
	}
	return a, nil
}

// Close releases the local database.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to flixcli (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sessions.Current()
	return ok
}

func (a *App) getStatus() string {
	if sess, ok := a.sessions.Current(); ok {
		return fmt.Sprintf("(%s)", sess.User.Username)
	}
	return ""
}
