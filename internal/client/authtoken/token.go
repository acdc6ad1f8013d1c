// Package authtoken decodes the claims section of the login token issued by
// the OnTrail backend. The signature is not verified; the client holds no key.
package authtoken

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/ontrail/internal/common"
)

var (
	ErrMalformedToken = common.ErrMalformedToken
	ErrSchema         = common.ErrTokenSchema
)

// Session is the login session derived from a token.
type Session struct {
	AuthToken string `json:"authToken"`
	Email     string `json:"email"`
	// Expires is the exp claim, in seconds since the Unix epoch.
	Expires int64 `json:"expires"`
}

// ExpiresAt returns the expiry as a time.
func (s Session) ExpiresAt() time.Time {
	return time.Unix(s.Expires, 0)
}

// Valid reports whether the session is still usable at now.
func (s Session) Valid(now time.Time) bool {
	return s.Expires*1000 > now.UnixMilli()
}

// FieldError describes one claim that is missing or has the wrong type.
type FieldError struct {
	Field    string
	Expected string
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s: expected %s", f.Field, f.Expected)
}

// SchemaError lists every claim that failed validation.
type SchemaError struct {
	Fields []FieldError
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%s: %s", ErrSchema, strings.Join(parts, "; "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode extracts the session carried by raw. It has no side effects.
func Decode(raw string) (Session, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Session{}, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	return fromClaims(raw, claims)
}

func decodeSegment(seg string) ([]byte, error) {
	b, err := parser.DecodeSegment(seg)
	if err == nil {
		return b, nil
	}
	if b, stdErr := base64.StdEncoding.DecodeString(seg); stdErr == nil {
		return b, nil
	}
	if b, stdErr := base64.RawStdEncoding.DecodeString(seg); stdErr == nil {
		return b, nil
	}
	return nil, err
}

// exp must convert to int64 seconds exactly; float64 cannot hold MaxInt64,
// so the upper bound is exclusive.
const (
	minSeconds = -(1 << 63)
	maxSeconds = 1 << 63
)

func fromClaims(raw string, claims jwt.MapClaims) (Session, error) {
	var fields []FieldError

	email, ok := claims["email"].(string)
	if !ok {
		fields = append(fields, FieldError{Field: "email", Expected: "string"})
	}
	if _, ok := claims["role"].(string); !ok {
		fields = append(fields, FieldError{Field: "role", Expected: "string"})
	}

	var exp int64
	if f, ok := claims["exp"].(float64); !ok {
		fields = append(fields, FieldError{Field: "exp", Expected: "number"})
	} else if math.IsNaN(f) || f < minSeconds || f >= maxSeconds {
		fields = append(fields, FieldError{Field: "exp", Expected: "number of seconds within int64 range"})
	} else {
		nd, err := claims.GetExpirationTime()
		if err != nil || nd == nil {
			fields = append(fields, FieldError{Field: "exp", Expected: "number"})
		} else {
			exp = nd.Unix()
		}
	}

	if len(fields) > 0 {
		return Session{}, &SchemaError{Fields: fields}
	}

	return Session{AuthToken: raw, Email: email, Expires: exp}, nil
}
