// Package auth keeps the OnTrail session alive. It decides whether the stored
// token is still usable, re-logs in with stored credentials when it is not,
// and wipes both when the server rejects a token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/ontrail/internal/client/authtoken"
	"github.com/dmitrijs2005/ontrail/internal/client/request"
	"github.com/dmitrijs2005/ontrail/internal/common"
	"github.com/dmitrijs2005/ontrail/internal/logging"
)

// Credentials are sent to the login endpoint and optionally kept for
// silent re-login.
type Credentials struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}

// String masks the password so credentials can be printed safely.
func (c Credentials) String() string {
	return fmt.Sprintf("{%s %s}", c.Email, logging.Redact(c.Pass))
}

// Slot is the persistence the manager needs for one value. *storage.Slot
// implements it.
type Slot[T any] interface {
	Get(ctx context.Context) (T, bool, error)
	Set(ctx context.Context, v T) error
	Clear(ctx context.Context) error
}

type Manager struct {
	rc           *request.Client
	sessions     Slot[authtoken.Session]
	credentials  Slot[Credentials]
	log          logging.Logger
	now          func() time.Time
	invalidateOn []int

	refresh singleflight.Group
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithInvalidateOn sets the statuses of authenticated requests that wipe the
// stored session and credentials. The default is 401 and 403.
func WithInvalidateOn(codes ...int) Option {
	return func(m *Manager) { m.invalidateOn = slices.Clone(codes) }
}

func NewManager(rc *request.Client, sessions Slot[authtoken.Session], credentials Slot[Credentials], opts ...Option) *Manager {
	m := &Manager{
		rc:           rc,
		sessions:     sessions,
		credentials:  credentials,
		log:          logging.Nop(),
		now:          time.Now,
		invalidateOn: []int{http.StatusUnauthorized, http.StatusForbidden},
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Bearer sets the Authorization header to the given token.
func Bearer(token string) request.Builder {
	return request.WithHeader(request.Params{common.HeaderAuthorization: common.BearerPrefix + token})
}

// GetValidToken returns a token that has not expired, logging in again with
// the stored credentials if needed. Concurrent callers share one login.
func (m *Manager) GetValidToken(ctx context.Context) (string, error) {
	session, found, err := m.sessions.Get(ctx)
	if err != nil {
		return "", err
	}
	if found && session.Valid(m.now()) {
		return session.AuthToken, nil
	}

	// The shared login must not die with whichever caller started it.
	ch := m.refresh.DoChan("session", func() (any, error) {
		return m.refreshSession(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return "", r.Err
		}
		return r.Val.(authtoken.Session).AuthToken, nil
	}
}

func (m *Manager) refreshSession(ctx context.Context) (authtoken.Session, error) {
	// a flight that finished just before this one may have stored a session
	session, stored, err := m.sessions.Get(ctx)
	if err != nil {
		return authtoken.Session{}, err
	}
	if stored && session.Valid(m.now()) {
		return session, nil
	}

	creds, found, err := m.credentials.Get(ctx)
	if err != nil {
		return authtoken.Session{}, err
	}
	if !found {
		msg := MsgLoginRequired
		if stored {
			msg = MsgLoginExpired
		}
		return authtoken.Session{}, loginError(ReasonAuthenticationRequired, msg, nil)
	}

	m.log.Debug(ctx, "session expired, logging in again", "email", creds.Email)

	session, err = m.exchange(ctx, creds)
	if err != nil {
		return authtoken.Session{}, err
	}
	if err := m.sessions.Set(ctx, session); err != nil {
		return authtoken.Session{}, err
	}
	return session, nil
}

// Login exchanges creds for a session and stores it. With persistCredentials
// the credentials are stored too, enabling silent re-login; without it any
// previously stored credentials are removed.
func (m *Manager) Login(ctx context.Context, creds Credentials, persistCredentials bool) (authtoken.Session, error) {
	session, err := m.exchange(ctx, creds)
	if err != nil {
		return authtoken.Session{}, err
	}

	if err := m.sessions.Set(ctx, session); err != nil {
		return authtoken.Session{}, err
	}
	if persistCredentials {
		if err := m.credentials.Set(ctx, creds); err != nil {
			return authtoken.Session{}, err
		}
	} else if err := m.credentials.Clear(ctx); err != nil {
		// credentials of an earlier login must not refresh this session
		return authtoken.Session{}, err
	}

	m.log.Info(ctx, "logged in", "email", session.Email, "expires", session.ExpiresAt())
	return session, nil
}

func (m *Manager) exchange(ctx context.Context, creds Credentials) (authtoken.Session, error) {
	resp, err := m.rc.Post(ctx, common.LoginPath, request.WithJSONBody(creds))
	if err != nil {
		var se *request.StatusError
		if errors.As(err, &se) {
			st := statusForCode(se.StatusCode)
			m.log.Warn(ctx, "login rejected", "email", creds.Email, "status", se.StatusCode)
			return authtoken.Session{}, &LoginError{Status: st, Err: err}
		}
		var te *request.TransportError
		if errors.As(err, &te) {
			return authtoken.Session{}, loginError(ReasonNetworkError, te.Err.Error(), err)
		}
		return authtoken.Session{}, err
	}

	var body struct {
		AuthToken string `json:"auth_token"`
	}
	if err := resp.JSON(&body); err != nil {
		return authtoken.Session{}, loginError(ReasonLoginError, MsgUnparsable, err)
	}

	session, err := authtoken.Decode(body.AuthToken)
	if err != nil {
		return authtoken.Session{}, loginError(ReasonLoginError, MsgUnparsable, err)
	}
	return session, nil
}

// Logout forgets the session and the credentials.
func (m *Manager) Logout(ctx context.Context) error {
	err := errors.Join(m.sessions.Clear(ctx), m.credentials.Clear(ctx))
	if err == nil {
		m.log.Info(ctx, "logged out")
	}
	return err
}

// CurrentSession reads the stored session without refreshing it.
func (m *Manager) CurrentSession(ctx context.Context) (authtoken.Session, bool, error) {
	return m.sessions.Get(ctx)
}

// HasCredentials reports whether credentials for silent re-login are stored.
func (m *Manager) HasCredentials(ctx context.Context) (bool, error) {
	_, found, err := m.credentials.Get(ctx)
	return found, err
}

// Do sends an authenticated request. The Authorization builder runs first so
// callers can still override it. When the server answers with one of the
// invalidating statuses, session and credentials are cleared before the
// *request.StatusError is returned.
func (m *Manager) Do(ctx context.Context, method request.Method, path string, builders ...request.Builder) (*request.Response, error) {
	token, err := m.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]request.Builder, 0, len(builders)+1)
	all = append(all, Bearer(token))
	all = append(all, builders...)

	resp, err := m.rc.Do(ctx, method, path, all...)
	if code, ok := request.StatusCodeOf(err); ok && slices.Contains(m.invalidateOn, code) {
		m.log.Warn(ctx, "token rejected, clearing session", "status", code, "path", path)
		if clearErr := m.Logout(ctx); clearErr != nil {
			return nil, errors.Join(err, clearErr)
		}
	}
	return resp, err
}

func (m *Manager) Get(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return m.Do(ctx, request.MethodGet, path, builders...)
}

func (m *Manager) Post(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return m.Do(ctx, request.MethodPost, path, builders...)
}

func (m *Manager) Put(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return m.Do(ctx, request.MethodPut, path, builders...)
}

func (m *Manager) Patch(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return m.Do(ctx, request.MethodPatch, path, builders...)
}

func (m *Manager) Delete(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return m.Do(ctx, request.MethodDelete, path, builders...)
}

func (m *Manager) Options(ctx context.Context, path string, builders ...request.Builder) (*request.Response, error) {
	return m.Do(ctx, request.MethodOptions, path, builders...)
}
