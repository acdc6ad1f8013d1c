// Package api is the surface the rest of the client talks to. It wires one
// request.Client to an auth.Manager backed by a kvstore.Store and exposes
// plain and authenticated verbs over them.
package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/ontrail/internal/client/auth"
	"github.com/dmitrijs2005/ontrail/internal/client/authtoken"
	"github.com/dmitrijs2005/ontrail/internal/client/kvstore"
	"github.com/dmitrijs2005/ontrail/internal/client/postgrest"
	"github.com/dmitrijs2005/ontrail/internal/client/request"
	"github.com/dmitrijs2005/ontrail/internal/client/storage"
	"github.com/dmitrijs2005/ontrail/internal/common"
	"github.com/dmitrijs2005/ontrail/internal/logging"
)

type API struct {
	rc   *request.Client
	auth *auth.Manager
}

type options struct {
	http     request.Doer
	log      logging.Logger
	debug    bool
	authOpts []auth.Option
}

type Option func(*options)

func WithHTTPClient(d request.Doer) Option {
	return func(o *options) { o.http = d }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

func WithDebug(debug bool) Option {
	return func(o *options) { o.debug = debug }
}

// WithAuthOptions forwards options to the auth.Manager.
func WithAuthOptions(opts ...auth.Option) Option {
	return func(o *options) { o.authOpts = append(o.authOpts, opts...) }
}

func New(host string, store kvstore.Store, opts ...Option) *API {
	o := &options{
		http: &http.Client{},
		log:  logging.Nop(),
	}
	for _, fn := range opts {
		fn(o)
	}

	rc := request.NewClient(host,
		request.WithHTTPClient(o.http),
		request.WithLogger(o.log),
		request.WithDebug(o.debug),
	)

	authOpts := append([]auth.Option{auth.WithLogger(o.log)}, o.authOpts...)
	m := auth.NewManager(rc,
		storage.NewSlot[authtoken.Session](store, common.SessionStorageKey),
		storage.NewSlot[auth.Credentials](store, common.CredentialsStorageKey),
		authOpts...,
	)

	return &API{rc: rc, auth: m}
}

// Host returns the backend origin.
func (a *API) Host() string { return a.rc.Host() }

func (a *API) Get(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return a.rc.Get(ctx, path, builders...)
}

func (a *API) Post(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return a.rc.Post(ctx, path, builders...)
}

func (a *API) Put(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return a.rc.Put(ctx, path, builders...)
}

func (a *API) Patch(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return a.rc.Patch(ctx, path, builders...)
}

func (a *API) Delete(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return a.rc.Delete(ctx, path, builders...)
}

func (a *API) Options(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return a.rc.Options(ctx, path, builders...)
}

func (a *API) AuthGet(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return a.auth.Get(ctx, path, builders...)
}

// AuthGetOne fetches a single row as a JSON object.
func (a *API) AuthGetOne(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return a.auth.Get(ctx, path, append([]request.Builder{postgrest.ObjectAccept()}, builders...)...)
}

func (a *API) AuthPost(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return a.auth.Post(ctx, path, builders...)
}

func (a *API) AuthPut(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return a.auth.Put(ctx, path, builders...)
}

func (a *API) AuthPatch(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return a.auth.Patch(ctx, path, builders...)
}

func (a *API) AuthDelete(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return a.auth.Delete(ctx, path, builders...)
}

func (a *API) AuthOptions(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return a.auth.Options(ctx, path, builders...)
}

// Login logs in and keeps the credentials for silent re-login.
func (a *API) Login(ctx context.Context, creds auth.Credentials) (authtoken.Session, error) {
	return a.auth.Login(ctx, creds, true)
}

func (a *API) Logout(ctx context.Context) error {
	return a.auth.Logout(ctx)
}

// Session returns the stored session, if any, without refreshing it.
func (a *API) Session(ctx context.Context) (authtoken.Session, bool, error) {
	return a.auth.CurrentSession(ctx)
}

// LoggedIn reports whether authenticated calls can be attempted: a session
// or stored credentials exist.
func (a *API) LoggedIn(ctx context.Context) (bool, error) {
	_, found, err := a.auth.CurrentSession(ctx)
	if err != nil || found {
		return found, err
	}
	return a.auth.HasCredentials(ctx)
}
