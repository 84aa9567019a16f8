package errs

import (
	"net/http"
	"strings"
)

// Phrase maps a message fragment to a kind. Phrase tables are ordered and the
// first fragment contained in the message wins.
type Phrase struct {
	Text string
	Kind *Kind
}

// ElementFailure is one per-element outcome of a batch or compound response.
type ElementFailure struct {
	Code    string
	Message string
}

// Failure is the raw failure extracted from a native response.
type Failure struct {
	HTTPStatus int
	Code       string
	Message    string
	Elements   []ElementFailure
}

// DefaultStatusKinds is used when no code or phrase matched.
var DefaultStatusKinds = map[int]*Kind{
	http.StatusUnauthorized:        ErrAuthenticationError,
	http.StatusForbidden:           ErrPermissionDenied,
	http.StatusTooManyRequests:     ErrRateLimitExceeded,
	http.StatusInternalServerError: ErrExchangeNotAvailable,
	http.StatusBadGateway:          ErrExchangeNotAvailable,
	http.StatusServiceUnavailable:  ErrExchangeNotAvailable,
	http.StatusGatewayTimeout:      ErrExchangeNotAvailable,
}

// Mapper turns native failures into unified errors.
type Mapper struct {
	Exchange string
	Exact    map[string]*Kind
	Broad    []Phrase
	Status   map[int]*Kind
}

// Classify applies, in order: per-element exact code, top-level exact code,
// message fragment, HTTP status, and finally ExchangeError.
func (m Mapper) Classify(f Failure) error {
	for _, el := range f.Elements {
		if kind, ok := m.Exact[el.Code]; ok && el.Code != "" {
			return m.build(kind, el.Code, el.Message)
		}
	}
	if kind, ok := m.Exact[f.Code]; ok && f.Code != "" {
		return m.build(kind, f.Code, f.Message)
	}
	if kind := m.matchPhrase(f.Message); kind != nil {
		return m.build(kind, f.Code, f.Message)
	}
	for _, el := range f.Elements {
		if kind := m.matchPhrase(el.Message); kind != nil {
			return m.build(kind, el.Code, el.Message)
		}
	}
	status := m.Status
	if status == nil {
		status = DefaultStatusKinds
	}
	if kind, ok := status[f.HTTPStatus]; ok {
		return m.build(kind, f.Code, f.Message)
	}
	code, msg := f.Code, f.Message
	if len(f.Elements) > 0 && msg == "" {
		code, msg = f.Elements[0].Code, f.Elements[0].Message
	}
	return m.build(ErrExchangeError, code, msg)
}

// ClassifyElement classifies a single element of a batch response.
func (m Mapper) ClassifyElement(code, message string) error {
	return m.Classify(Failure{Elements: []ElementFailure{{Code: code, Message: message}}})
}

func (m Mapper) matchPhrase(msg string) *Kind {
	if msg == "" {
		return nil
	}
	for _, p := range m.Broad {
		if strings.Contains(msg, p.Text) {
			return p.Kind
		}
	}
	return nil
}

func (m Mapper) build(kind *Kind, code, msg string) error {
	return &Error{Kind: kind, Exchange: m.Exchange, Code: code, Message: msg}
}
