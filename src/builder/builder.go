// Package builder turns unified operation parameters into native requests.
// Builders fail before any network call on locally detectable problems and
// never mutate the caller's parameter bag.
package builder

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"exchangenorm/src/errs"
	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/precise"
	"exchangenorm/src/profile"
	"exchangenorm/src/registry"
	"exchangenorm/src/utils"
)

// Params is the open options bag accepted by every operation. Unified keys
// are consumed; anything left is copied into the native request verbatim and
// overrides computed fields.
type Params = native.Object

// Request is a native request ready for signing and transport.
type Request struct {
	Endpoint profile.Endpoint
	Method   string
	Path     string
	Private  bool
	Query    native.Object
	Body     interface{}

	// Market is the resolved market, handed to the parser as a hint.
	Market *model.Market
	// Markets holds per-element hints of batch requests.
	Markets []*model.Market
	// Currency is the unified currency code the request is scoped to.
	Currency string
	// Symbols restricts a multi-instrument response.
	Symbols []string
}

// Builder is safe for concurrent use.
type Builder struct {
	profile    profile.Profile
	markets    *registry.MarketRegistry
	currencies *registry.CurrencyRegistry
	clientID   func() string
	now        func() int64
}

func New(p profile.Profile, markets *registry.MarketRegistry, currencies *registry.CurrencyRegistry) *Builder {
	b := &Builder{profile: p, markets: markets, currencies: currencies, now: utils.Milliseconds}
	b.clientID = b.defaultClientID
	return b
}

// WithClientID returns a copy generating client order ids with fn.
func (b *Builder) WithClientID(fn func() string) *Builder {
	c := *b
	c.clientID = fn
	return &c
}

// WithClock returns a copy reading the current time in milliseconds from fn.
func (b *Builder) WithClock(fn func() int64) *Builder {
	c := *b
	c.now = fn
	return &c
}

func (b *Builder) Profile() profile.Profile {
	return b.profile
}

// defaultClientID is the broker tag followed by a 16 character hex nonce.
func (b *Builder) defaultClientID() string {
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")
	return b.profile.Options.BrokerID + nonce[:16]
}

func (b *Builder) request(e profile.Endpoint, fields native.Object) (*Request, error) {
	route, ok := b.profile.Route(e)
	if !ok {
		return nil, errs.New(errs.ErrNotSupported, "%s does not support %s", b.profile.ID, e)
	}
	r := &Request{Endpoint: e, Method: route.Method, Path: route.Path, Private: route.Private}
	if route.Method == http.MethodGet {
		r.Query = fields
	} else if fields != nil {
		r.Body = fields
	}
	return r, nil
}

func (b *Builder) batch(e profile.Endpoint, items []native.Object) (*Request, error) {
	r, err := b.request(e, nil)
	if err != nil {
		return nil, err
	}
	body := make([]interface{}, len(items))
	for i, it := range items {
		body[i] = it
	}
	r.Query, r.Body = nil, body
	return r, nil
}

func (b *Builder) market(symbol string) (*model.Market, error) {
	if symbol == "" {
		return nil, errs.New(errs.ErrArgumentsRequired, "symbol is required")
	}
	return b.markets.Resolve(symbol)
}

// option resolves a setting: the first present params key wins, then the
// configured value, then def.
func option(params Params, configured, def string, keys ...string) string {
	if v := native.String(params, keys...); v != "" {
		return v
	}
	if configured != "" {
		return configured
	}
	return def
}

func flag(params Params, keys ...string) bool {
	v, _ := native.Bool(params, keys...)
	return v
}

// nativeType maps a unified market type to the native instrument type,
// falling back to the configured default type.
func (b *Builder) nativeType(params Params, m *model.Market) string {
	if m != nil && m.Type != "" {
		return b.profile.NativeMarketType(m.Type)
	}
	t := option(params, b.profile.Options.DefaultType, "spot", "type")
	if n := b.profile.NativeMarketType(model.MarketType(t)); n != "" {
		return n
	}
	return strings.ToUpper(t)
}

func (b *Builder) priceToPrecision(m *model.Market, price string) (string, error) {
	tick := native.FromDecimal(m.Precision.Price)
	if tick == "" {
		return price, nil
	}
	out, err := precise.ToPrecision(price, precise.Round, tick, precise.TickSize, precise.NoPadding)
	if err != nil {
		return "", err
	}
	if precise.Eq(out, "0") {
		return "", errs.New(errs.ErrInvalidOrder, "%s price of %s must be greater than minimum price precision of %s", m.Symbol, price, tick)
	}
	return out, nil
}

func (b *Builder) amountToPrecision(m *model.Market, amount string) (string, error) {
	step := native.FromDecimal(m.Precision.Amount)
	if step == "" {
		return amount, nil
	}
	out, err := precise.ToPrecision(amount, precise.Truncate, step, precise.TickSize, precise.NoPadding)
	if err != nil {
		return "", err
	}
	if precise.Eq(out, "0") {
		return "", errs.New(errs.ErrInvalidOrder, "%s amount of %s must be greater than minimum amount precision of %s", m.Symbol, amount, step)
	}
	return out, nil
}

// costToPrecision truncates a quote notional at the price precision.
func (b *Builder) costToPrecision(m *model.Market, cost string) (string, error) {
	tick := native.FromDecimal(m.Precision.Price)
	if tick == "" {
		return cost, nil
	}
	return precise.ToPrecision(cost, precise.Truncate, tick, precise.TickSize, precise.NoPadding)
}

// Rounded is a price and amount as order placement would send them.
type Rounded struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price,omitempty"`
	Amount string `json:"amount,omitempty"`
	Cost   string `json:"cost,omitempty"`
}

// ToPrecision applies the market's precision rules: prices round to the
// tick, amounts truncate to the step and the notional truncates at the price
// precision. Empty inputs stay empty.
func (b *Builder) ToPrecision(symbol, price, amount string) (Rounded, error) {
	m, err := b.market(symbol)
	if err != nil {
		return Rounded{}, err
	}
	out := Rounded{Symbol: m.Symbol}
	if price != "" {
		if out.Price, err = b.priceToPrecision(m, price); err != nil {
			return Rounded{}, err
		}
	}
	if amount != "" {
		if out.Amount, err = b.amountToPrecision(m, amount); err != nil {
			return Rounded{}, err
		}
	}
	if out.Price != "" && out.Amount != "" {
		notional := precise.Mul(out.Amount, out.Price)
		if size := native.FromDecimal(m.ContractSize); m.Contract && size != "" {
			notional = precise.Mul(notional, size)
		}
		if out.Cost, err = b.costToPrecision(m, notional); err != nil {
			return Rounded{}, err
		}
	}
	return out, nil
}

func (b *Builder) currencyToPrecision(code, amount string) (string, error) {
	c, err := b.currencies.Currency(code)
	if err != nil {
		return "", err
	}
	tick := native.FromDecimal(c.Precision)
	if tick == "" {
		return amount, nil
	}
	return precise.ToPrecision(amount, precise.Round, tick, precise.TickSize, precise.NoPadding)
}

// paging applies the common since/limit pair.
func paging(fields native.Object, sinceKey string, since int64, limit int) {
	if since > 0 && sinceKey != "" {
		fields[sinceKey] = strconv.FormatInt(since, 10)
	}
	if limit > 0 {
		fields["limit"] = strconv.Itoa(limit)
	}
}
