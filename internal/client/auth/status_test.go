package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/ontrail/internal/client/request"
)

func TestReason_String(t *testing.T) {
	assert.Equal(t, "NotLoggedIn", ReasonNotLoggedIn.String())
	assert.Equal(t, "AuthenticationRequired", ReasonAuthenticationRequired.String())
	assert.Equal(t, "LoginFailed", ReasonLoginFailed.String())
	assert.Equal(t, "LoginError", ReasonLoginError.String())
	assert.Equal(t, "ExistingAccount", ReasonExistingAccount.String())
	assert.Equal(t, "NetworkError", ReasonNetworkError.String())
	assert.Equal(t, "Unknown", Reason(42).String())
}

func TestStatusOf(t *testing.T) {
	le := loginError(ReasonLoginFailed, MsgInvalidCredentials, nil)

	assert.Equal(t, LoginStatus{}, StatusOf(nil))
	assert.Equal(t, le.Status, StatusOf(le))
	assert.Equal(t, le.Status, StatusOf(errors.Join(errors.New("ctx"), le)))

	te := &request.TransportError{Method: request.MethodGet, URL: "http://x", Err: errors.New("connection refused")}
	assert.Equal(t, LoginStatus{Reason: ReasonNetworkError, Message: "connection refused"}, StatusOf(te))

	assert.Equal(t, LoginStatus{Reason: ReasonNetworkError, Message: "boom"}, StatusOf(errors.New("boom")))
	assert.Equal(t, LoginStatus{Reason: ReasonNetworkError, Message: MsgNetwork}, StatusOf(errors.New("")))
}

func TestLoginError_Error(t *testing.T) {
	assert.Equal(t, MsgLoginRequired, loginError(ReasonAuthenticationRequired, MsgLoginRequired, nil).Error())
	assert.Equal(t, "LoginFailed", (&LoginError{Status: LoginStatus{Reason: ReasonLoginFailed}}).Error())

	cause := errors.New("cause")
	assert.ErrorIs(t, loginError(ReasonLoginError, MsgUnparsable, cause), cause)
}
