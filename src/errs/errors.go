package errs

import (
	"errors"
	"fmt"
)

// Kind is one entry of the unified error taxonomy. Kinds form a tree and
// errors.Is(err, parent) holds for every descendant kind.
type Kind struct {
	name   string
	parent *Kind
}

func newKind(name string, parent *Kind) *Kind {
	return &Kind{name: name, parent: parent}
}

func (k *Kind) Error() string { return k.name }

// Name returns the taxonomy name, e.g. "InvalidOrder".
func (k *Kind) Name() string { return k.name }

// Parent returns the enclosing kind or nil for a root.
func (k *Kind) Parent() *Kind { return k.parent }

func (k *Kind) Is(target error) bool {
	for p := k.parent; p != nil; p = p.parent {
		if p == target {
			return true
		}
	}
	return false
}

var (
	ErrExchangeError       = newKind("ExchangeError", nil)
	ErrBadRequest          = newKind("BadRequest", ErrExchangeError)
	ErrBadSymbol           = newKind("BadSymbol", ErrBadRequest)
	ErrInvalidPrecision    = newKind("InvalidPrecision", ErrBadRequest)
	ErrArgumentsRequired   = newKind("ArgumentsRequired", ErrExchangeError)
	ErrInvalidOrder        = newKind("InvalidOrder", ErrExchangeError)
	ErrOrderNotFound       = newKind("OrderNotFound", ErrInvalidOrder)
	ErrCancelPending       = newKind("CancelPending", ErrInvalidOrder)
	ErrInsufficientFunds   = newKind("InsufficientFunds", ErrExchangeError)
	ErrAuthenticationError = newKind("AuthenticationError", ErrExchangeError)
	ErrPermissionDenied    = newKind("PermissionDenied", ErrAuthenticationError)
	ErrAccountSuspended    = newKind("AccountSuspended", ErrAuthenticationError)
	ErrNotSupported        = newKind("NotSupported", ErrExchangeError)
	ErrInvalidAddress      = newKind("InvalidAddress", ErrExchangeError)
	ErrBadResponse         = newKind("BadResponse", ErrExchangeError)

	ErrNetworkError         = newKind("NetworkError", nil)
	ErrInvalidNonce         = newKind("InvalidNonce", ErrNetworkError)
	ErrRateLimitExceeded    = newKind("RateLimitExceeded", ErrNetworkError)
	ErrExchangeNotAvailable = newKind("ExchangeNotAvailable", ErrNetworkError)
	ErrOnMaintenance        = newKind("OnMaintenance", ErrExchangeNotAvailable)
)

var kindsByName = map[string]*Kind{}

func init() {
	for _, k := range []*Kind{
		ErrExchangeError, ErrBadRequest, ErrBadSymbol, ErrInvalidPrecision,
		ErrArgumentsRequired, ErrInvalidOrder, ErrOrderNotFound, ErrCancelPending,
		ErrInsufficientFunds, ErrAuthenticationError, ErrPermissionDenied,
		ErrAccountSuspended, ErrNotSupported, ErrInvalidAddress, ErrBadResponse, ErrNetworkError,
		ErrInvalidNonce, ErrRateLimitExceeded, ErrExchangeNotAvailable, ErrOnMaintenance,
	} {
		kindsByName[k.name] = k
	}
}

// KindByName looks a kind up by its taxonomy name.
func KindByName(name string) (*Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Error is the unified failure returned by builders, parsers and the mapper.
type Error struct {
	Kind     *Kind
	Exchange string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	switch {
	case e.Exchange != "" && e.Code != "":
		return fmt.Sprintf("%s: %s %s %s", e.Kind.name, e.Exchange, e.Code, msg)
	case e.Exchange != "":
		return fmt.Sprintf("%s: %s %s", e.Kind.name, e.Exchange, msg)
	default:
		return fmt.Sprintf("%s: %s", e.Kind.name, msg)
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New builds an error of the given kind.
func New(kind *Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying cause.
func Wrap(kind *Kind, err error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the most specific kind carried by err, or nil.
func KindOf(err error) *Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k *Kind
	if errors.As(err, &k) {
		return k
	}
	return nil
}
