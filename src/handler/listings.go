package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	logger "github.com/sirupsen/logrus"

	"exchangenorm/src/builder"
	"exchangenorm/src/errs"
	"exchangenorm/src/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type marketResolver interface {
	Resolve(symbolOrID string) (*model.Market, error)
}

type currencyLookup interface {
	Currency(code string) (*model.Currency, error)
}

type rounder interface {
	ToPrecision(symbol, price, amount string) (builder.Rounded, error)
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}

// writeError maps unified error kinds to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrBadSymbol):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrBadRequest), errors.Is(err, errs.ErrArgumentsRequired), errors.Is(err, errs.ErrInvalidOrder):
		status = http.StatusBadRequest
	}
	body := errorBody{Error: err.Error()}
	if k := errs.KindOf(err); k != nil {
		body.Kind = k.Name()
	}
	if status == http.StatusInternalServerError {
		logger.WithError(err).Error("request failed")
	}
	writeJSON(w, status, body)
}

// pathParam returns a decoded route parameter; unified symbols carry "/" and
// arrive escaped.
func pathParam(r *http.Request, name string) (string, error) {
	return url.PathUnescape(chi.URLParam(r, name))
}

// MarketHandler resolves a unified symbol or native id, including expired
// option ids that are no longer listed.
func MarketHandler(markets marketResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol, err := pathParam(r, "symbol")
		if err != nil || symbol == "" {
			http.Error(w, "invalid symbol", http.StatusBadRequest)
			return
		}
		m, err := markets.Resolve(symbol)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func CurrencyHandler(currencies currencyLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, err := pathParam(r, "code")
		if err != nil || code == "" {
			http.Error(w, "invalid code", http.StatusBadRequest)
			return
		}
		c, err := currencies.Currency(code)
		if err != nil {
			http.Error(w, "currency not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

// PrecisionHandler rounds ?price= and ?amount= for ?symbol=.
func PrecisionHandler(b rounder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		symbol := q.Get("symbol")
		if symbol == "" {
			http.Error(w, "symbol is required", http.StatusBadRequest)
			return
		}
		if q.Get("price") == "" && q.Get("amount") == "" {
			http.Error(w, "price or amount is required", http.StatusBadRequest)
			return
		}
		out, err := b.ToPrecision(symbol, q.Get("price"), q.Get("amount"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
