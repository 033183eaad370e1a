package infra

import (
	"errors"

	"fahasa-storefront/internal/pkg/errs"
)

type RepositoryErrorKind string

// RepositoryError is returned by every adapter in infra: the backend client and the
// client-state stores.
type RepositoryError struct {
	Kind   RepositoryErrorKind
	Status int
	msg    string
	err    error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr defaults to KindUnavailable when no kind is given.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := KindUnavailable
	if len(kind) > 0 {
		k = kind[0]
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: k, msg: msg, err: err}
}

// HTTPError records the status code of a backend response next to its kind.
func HTTPError(msg string, status int, err error) error {
	return RepositoryError{Kind: KindForStatus(status), Status: status, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// StatusOf returns the backend status code carried by err, or 0.
func StatusOf(err error) int {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// KindForStatus maps a backend status code: 404 not found, 501 not implemented, other 4xx
// rejected, everything else unavailable.
func KindForStatus(status int) RepositoryErrorKind {
	switch {
	case status == 404:
		return KindNotFound
	case status == 501:
		return KindNotImplemented
	case status >= 400 && status < 500:
		return KindRejected
	default:
		return KindUnavailable
	}
}

// Infrastructure-specific error kinds
const (
	KindNotFound       RepositoryErrorKind = "NOT_FOUND"
	KindNotImplemented RepositoryErrorKind = "NOT_IMPLEMENTED"
	KindRejected       RepositoryErrorKind = "REJECTED"
	KindUnavailable    RepositoryErrorKind = "UNAVAILABLE"
	KindDecodeFailure  RepositoryErrorKind = "DECODE_FAILURE"
	KindStoreFailure   RepositoryErrorKind = "STORE_FAILURE"
)
