package auth

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/ontrail/internal/client/request"
)

// Reason classifies the outcome of a login attempt.
type Reason int

const (
	ReasonNotLoggedIn Reason = iota
	ReasonAuthenticationRequired
	ReasonLoginFailed
	ReasonLoginError
	ReasonExistingAccount
	ReasonNetworkError
)

func (r Reason) String() string {
	switch r {
	case ReasonNotLoggedIn:
		return "NotLoggedIn"
	case ReasonAuthenticationRequired:
		return "AuthenticationRequired"
	case ReasonLoginFailed:
		return "LoginFailed"
	case ReasonLoginError:
		return "LoginError"
	case ReasonExistingAccount:
		return "ExistingAccount"
	case ReasonNetworkError:
		return "NetworkError"
	default:
		return "Unknown"
	}
}

// User facing messages.
const (
	MsgCredentialsRequired = "email and password are required"
	MsgInvalidCredentials  = "invalid email or password"
	MsgExistingAccount     = "account with given email already exists"
	MsgUnrecognized        = "unrecognized error, please try again"
	MsgLoginExpired        = "login expired"
	MsgLoginRequired       = "login required"
	MsgUnparsable          = "could not parse response"
	MsgNetwork             = "network error, please check your connection"
)

// LoginStatus is a reason with a message fit for display.
type LoginStatus struct {
	Reason  Reason
	Message string
}

// LoginError is returned by every failed login exchange.
type LoginError struct {
	Status LoginStatus
	// Err is the underlying cause, if any.
	Err error
}

func (e *LoginError) Error() string {
	if e.Status.Message != "" {
		return e.Status.Message
	}
	return e.Status.Reason.String()
}

func (e *LoginError) Unwrap() error { return e.Err }

func loginError(reason Reason, msg string, cause error) *LoginError {
	return &LoginError{Status: LoginStatus{Reason: reason, Message: msg}, Err: cause}
}

// statusForCode maps the HTTP status of a failed login exchange.
func statusForCode(code int) LoginStatus {
	switch code {
	case http.StatusUnauthorized:
		return LoginStatus{Reason: ReasonAuthenticationRequired, Message: MsgCredentialsRequired}
	case http.StatusForbidden:
		return LoginStatus{Reason: ReasonLoginFailed, Message: MsgInvalidCredentials}
	case http.StatusConflict:
		return LoginStatus{Reason: ReasonExistingAccount, Message: MsgExistingAccount}
	default:
		return LoginStatus{Reason: ReasonLoginError, Message: MsgUnrecognized}
	}
}

// StatusOf maps any error onto a LoginStatus. A nil error maps to the zero
// status (ReasonNotLoggedIn).
func StatusOf(err error) LoginStatus {
	if err == nil {
		return LoginStatus{}
	}

	var le *LoginError
	if errors.As(err, &le) {
		return le.Status
	}

	var te *request.TransportError
	if errors.As(err, &te) {
		return LoginStatus{Reason: ReasonNetworkError, Message: te.Err.Error()}
	}

	msg := err.Error()
	if msg == "" {
		msg = MsgNetwork
	}
	return LoginStatus{Reason: ReasonNetworkError, Message: msg}
}
