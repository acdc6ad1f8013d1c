package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ontrail/internal/client/auth"
	"github.com/dmitrijs2005/ontrail/internal/client/request"
	"github.com/dmitrijs2005/ontrail/internal/common"
)

// Login prompts for email and password, then logs in. The command timeout
// covers only the exchange with the backend, not the time spent typing.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	password, err := GetPassword(a.reader, a.in, a.out)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	defer common.WipeByteArray(password)

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	session, err := a.backend.Login(ctx, auth.Credentials{Email: email, Pass: string(password)})
	if err != nil {
		printlnFn("Login unsuccessful:", auth.StatusOf(err).Message)
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s until %s", session.Email, session.ExpiresAt().Format("2006-01-02 15:04")))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.backend.Logout(ctx); err != nil {
		printlnFn("error:", err)
		return err
	}
	printlnFn("Logged out")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	s, ok, err := a.backend.Session(ctx)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	if !ok {
		printlnFn("Not logged in")
		return nil
	}

	state := "valid"
	if !s.Valid(a.now()) {
		state = "expired"
	}
	printlnFn(fmt.Sprintf("%s, session %s (expires %s)", s.Email, state, s.ExpiresAt().Format("2006-01-02 15:04")))
	return nil
}

// Get fetches args[0] with the filters in args[1:]. It authenticates when a
// session or credentials are stored.
func (a *App) Get(ctx context.Context, args []string) error {
	builders, err := parseFilters(args[1:])
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	fetch := a.backend.Get
	if a.isLoggedIn(ctx) {
		fetch = a.backend.AuthGet
	}
	resp, err := fetch(ctx, args[0], builders...)
	return a.show(ctx, resp, err)
}

// GetOne fetches a single object; it always authenticates.
func (a *App) GetOne(ctx context.Context, args []string) error {
	builders, err := parseFilters(args[1:])
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	resp, err := a.backend.AuthGetOne(ctx, args[0], builders...)
	return a.show(ctx, resp, err)
}

func (a *App) show(ctx context.Context, resp *request.Response, err error) error {
	if err != nil {
		printlnFn("error:", describe(err))
		a.log.Debug(ctx, "request failed", "error", err)
		return err
	}

	var pretty bytes.Buffer
	if json.Indent(&pretty, resp.Body, "", "  ") != nil {
		printlnFn(resp.Text())
		return nil
	}
	printlnFn(pretty.String())
	return nil
}

func describe(err error) string {
	var le *auth.LoginError
	if errors.As(err, &le) {
		return le.Status.Message
	}
	var se *request.StatusError
	if errors.As(err, &se) {
		if len(se.Body) > 0 {
			return fmt.Sprintf("server answered %d: %s", se.StatusCode, se.Body)
		}
		return fmt.Sprintf("server answered %d", se.StatusCode)
	}
	return auth.StatusOf(err).Message
}
