package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/fcpanel/internal/client/auth"
	"github.com/dmitrijs2005/fcpanel/internal/client/catalog"
	"github.com/dmitrijs2005/fcpanel/internal/client/client"
	"github.com/dmitrijs2005/fcpanel/internal/client/config"
	"github.com/dmitrijs2005/fcpanel/internal/client/dashboard"
	"github.com/dmitrijs2005/fcpanel/internal/client/output"
	"github.com/dmitrijs2005/fcpanel/internal/client/services"
	"github.com/dmitrijs2005/fcpanel/internal/client/session"
	"github.com/dmitrijs2005/fcpanel/internal/common"
	"github.com/dmitrijs2005/fcpanel/internal/logging"
)

// IO bundles the streams the App talks to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// App wires the session store, the API clients, the auth provider and the
// dashboard behind the commands.
type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	auth      *auth.Provider
	dash      *dashboard.Dashboard
	formatter output.Formatter

	reader      *bufio.Reader
	out         io.Writer
	errOut      io.Writer
	inFD        int
	interactive bool

	// busyAfter is how long a call may run before "Working..." is shown;
	// zero disables the notice.
	busyAfter time.Duration
}

// defaultBusyAfter is the delay before the "Working..." notice.
const defaultBusyAfter = 500 * time.Millisecond

// lockedWriter serializes writes from the logger and the busy notice.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// NewApp opens the session database, builds the HTTP clients and hydrates
// the session. Close releases the database.
func NewApp(ctx context.Context, cfg *config.Config, streams IO) (*App, error) {
	if streams.Err == nil {
		streams.Err = io.Discard
	}
	streams.Err = &lockedWriter{w: streams.Err}

	logger, err := logging.NewTextLogger(streams.Err, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	db, err := session.OpenDatabase(ctx, cfg.SessionDSN)
	if err != nil {
		logger.Error(ctx, "error initializing session database", "dsn", cfg.SessionDSN, "error", err)
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	authClient := client.NewHTTPAuthClient(cfg.AuthAPIURL, httpClient, logger)
	vmClient := client.NewHTTPVMClient(cfg.VMAPIURL, httpClient, logger)

	a, err := assemble(cfg, logger, authClient, vmClient, session.NewSQLiteStore(db), cat, streams)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a.db = db

	a.auth.Hydrate(ctx)
	if err := a.auth.Err(); err != nil {
		logger.Warn(ctx, "session not restored", "error", err)
	}
	return a, nil
}

// assemble builds an App over already constructed collaborators.
func assemble(cfg *config.Config, logger logging.Logger, ac client.AuthClient, vc client.VMClient,
	store session.Store, cat *catalog.Catalog, streams IO) (*App, error) {
	formatter, err := output.NewFormatter(output.Options{Format: output.Format(cfg.OutputFormat)})
	if err != nil {
		return nil, err
	}

	provider := auth.NewProvider(services.NewAuthService(ac, store, logger))
	dash := dashboard.New(services.NewVMService(vc, logger), provider, cat)

	errOut := streams.Err
	if errOut == nil {
		errOut = io.Discard
	}
	fd, interactive := terminalFD(streams.In)

	return &App{
		config:      cfg,
		logger:      logger,
		auth:        provider,
		dash:        dash,
		formatter:   formatter,
		reader:      bufio.NewReader(streams.In),
		out:         streams.Out,
		errOut:      errOut,
		inFD:        fd,
		interactive: interactive,
		busyAfter:   defaultBusyAfter,
	}, nil
}

// Close releases the session database. It is safe to call more than once.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *App) isLoggedIn() bool {
	return a.auth.State() == auth.StateAuthenticated
}

// status is shown in the shell prompt.
func (a *App) status() string {
	if u := a.auth.User(); u != nil {
		return "(" + u.Username + ")"
	}
	return ""
}

func (a *App) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}

func (a *App) print(s string) {
	_, _ = fmt.Fprint(a.out, s)
}

// readText prompts for one line of input.
func (a *App) readText(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

// readSecret prompts for a secret. It is read without echo from a terminal
// and as a plain line otherwise, so scripts can pipe it in.
func (a *App) readSecret(prompt string) ([]byte, error) {
	if a.interactive {
		return GetPassword(a.inFD, prompt, a.out)
	}
	s, err := a.readText(prompt)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// readPasswordPair asks for a password twice.
func (a *App) readPasswordPair() (string, string, error) {
	pw, err := a.readSecret("Enter password")
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(pw)

	confirm, err := a.readSecret("Confirm password")
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(confirm)

	return string(pw), string(confirm), nil
}

// busy shows a "Working..." notice on stderr when loading still reports a
// call in flight after busyAfter. The returned func stops the watch and
// must be called once the call has returned.
func (a *App) busy(loading func() bool) func() {
	if a.busyAfter <= 0 {
		return func() {}
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTimer(a.busyAfter)
		defer t.Stop()
		select {
		case <-t.C:
			if loading() {
				_, _ = fmt.Fprintln(a.errOut, "Working...")
			}
		case <-stop:
		}
	}()

	return func() {
		close(stop)
		<-done
	}
}
