package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/ontrail/internal/client/auth"
	"github.com/dmitrijs2005/ontrail/internal/client/authtoken"
	"github.com/dmitrijs2005/ontrail/internal/client/request"
	"github.com/dmitrijs2005/ontrail/internal/logging"
)

// Backend is the part of *api.API the CLI uses.
type Backend interface {
	Get(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error)
	AuthGet(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error)
	AuthGetOne(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error)
	Login(ctx context.Context, creds auth.Credentials) (authtoken.Session, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (authtoken.Session, bool, error)
	LoggedIn(ctx context.Context) (bool, error)
}

type App struct {
	backend Backend
	log     logging.Logger
	in      io.Reader
	reader  *bufio.Reader
	out     io.Writer
	timeout time.Duration
	now     func() time.Time
}

func NewApp(backend Backend, log logging.Logger, in io.Reader, out io.Writer, timeout time.Duration) *App {
	return &App{
		backend: backend,
		log:     log,
		in:      in,
		reader:  bufio.NewReader(in),
		out:     out,
		timeout: timeout,
		now:     time.Now,
	}
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to OnTrail CLI (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader, a.timeout)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	ok, err := a.backend.LoggedIn(ctx)
	if err != nil {
		a.log.Warn(ctx, "reading session failed", "error", err)
		return false
	}
	return ok
}

func (a *App) getStatus(ctx context.Context) string {
	s, ok, err := a.backend.Session(ctx)
	if err != nil || !ok {
		return ""
	}
	if !s.Valid(a.now()) {
		return fmt.Sprintf("(%s expired)", s.Email)
	}
	return fmt.Sprintf("(%s)", s.Email)
}
