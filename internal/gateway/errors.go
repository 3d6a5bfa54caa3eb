package gateway

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorKind classifies a gateway failure so callers can react without
// inspecting driver errors.
type ErrorKind int

const (
	// KindTransient covers network and server failures that may succeed on a
	// later attempt. The gateway itself never retries.
	KindTransient ErrorKind = iota
	// KindAuthorization means the backend refused the call for this caller.
	KindAuthorization
	// KindBadParams means the call was malformed: unknown procedure, wrong
	// arity, or values the backend could not parse.
	KindBadParams
)

// Error wraps a failed procedure call or table operation
type Error struct {
	Kind ErrorKind
	Proc string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s: %v", e.Proc, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsAuthorization reports whether err is an authorization failure
func IsAuthorization(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == KindAuthorization
}

// IsBadParams reports whether err is a malformed-call failure
func IsBadParams(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == KindBadParams
}

// wrapErr classifies a driver error into the gateway taxonomy
func wrapErr(proc string, err error) *Error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42501", "28000", "28P01": // insufficient_privilege, invalid_authorization
			return &Error{Kind: KindAuthorization, Proc: proc, Err: err}
		case "42883", "22P02", "22003", "22007", "23505", "23503": // undefined_function, bad casts/values, constraint violations
			return &Error{Kind: KindBadParams, Proc: proc, Err: err}
		}
	}
	return &Error{Kind: KindTransient, Proc: proc, Err: err}
}
