package connectors

import (
	"context"
	"fmt"
	"sync/atomic"

	logger "github.com/sirupsen/logrus"

	"exchangenorm/src/builder"
	"exchangenorm/src/errs"
	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/parser"
	"exchangenorm/src/profile"
	"exchangenorm/src/registry"
)

// Client runs unified operations end to end: build the native request, send
// it, parse the answer. It owns the registries both sides read from.
type Client struct {
	profile    profile.Profile
	markets    *registry.MarketRegistry
	currencies *registry.CurrencyRegistry
	builder    *builder.Builder
	parser     *parser.Parser
	transport  Transport

	// derived is set while the currency registry holds codes derived from
	// markets rather than a currency listing.
	derived atomic.Bool
}

func NewClient(p profile.Profile, t Transport) *Client {
	currencies := registry.NewCurrencyRegistry(p.CommonCurrencies)
	markets := registry.NewMarketRegistry(currencies)
	return &Client{
		profile:    p,
		markets:    markets,
		currencies: currencies,
		builder:    builder.New(p, markets, currencies),
		parser:     parser.New(p, markets, currencies),
		transport:  t,
	}
}

// NewOKXClient wires the OKX profile, optional YAML option overlay and the
// REST transport from cfg.
func NewOKXClient(cfg Config) (*Client, error) {
	p := profile.OKX()
	if cfg.OptionsFile != "" {
		opts, err := profile.LoadOptions(cfg.OptionsFile, p.Options)
		if err != nil {
			return nil, fmt.Errorf("load exchange options: %w", err)
		}
		p = p.WithOptions(opts)
	}
	return NewClient(p, NewRESTTransport(p, cfg)), nil
}

func (c *Client) Profile() profile.Profile               { return c.profile }
func (c *Client) Markets() *registry.MarketRegistry      { return c.markets }
func (c *Client) Currencies() *registry.CurrencyRegistry { return c.currencies }
func (c *Client) Builder() *builder.Builder              { return c.builder }

func (c *Client) send(ctx context.Context, r *builder.Request, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return c.transport.Do(ctx, r)
}

func (c *Client) rows(ctx context.Context, r *builder.Request, err error) ([]native.Object, error) {
	data, err := c.send(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return native.Objects(data), nil
}

func (c *Client) one(ctx context.Context, r *builder.Request, err error) (native.Object, error) {
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.New(errs.ErrBadResponse, "%s returned no data", r.Endpoint)
	}
	return rows[0], nil
}

// acknowledged reads a single-order answer. Algo endpoints answer in batch
// form, so the element code is checked before the row is trusted.
func (c *Client) acknowledged(ctx context.Context, r *builder.Request, err error) (model.Order, error) {
	row, err := c.one(ctx, r, err)
	if err != nil {
		return model.Order{}, err
	}
	res := c.parser.ParseOrderResults([]native.Object{row}, []*model.Market{r.Market})[0]
	if res.Err != nil {
		return model.Order{}, res.Err
	}
	return *res.Order, nil
}

// FetchMarketRows downloads the raw instrument rows of every configured
// market type.
func (c *Client) FetchMarketRows(ctx context.Context) ([]native.Object, error) {
	requests, err := c.builder.FetchMarkets()
	if err != nil {
		return nil, err
	}
	var out []native.Object
	for _, r := range requests {
		rows, err := c.rows(ctx, r, nil)
		if err != nil {
			return nil, fmt.Errorf("fetch %s instruments: %w", native.ToString(r.Query[c.profile.Markets.InstType]), err)
		}
		out = append(out, rows...)
	}
	return out, nil
}

// FetchCurrencyRows downloads the raw per-network currency rows.
func (c *Client) FetchCurrencyRows(ctx context.Context) ([]native.Object, error) {
	r, err := c.builder.FetchCurrencies(nil)
	return c.rows(ctx, r, err)
}

// IngestMarkets parses instrument rows and swaps them into the registry.
// Unless a currency listing was ingested, currencies are derived again from
// the new markets.
func (c *Client) IngestMarkets(rows []native.Object) []model.Market {
	markets := c.parser.ParseMarkets(rows)
	c.markets.Load(markets)
	if !c.currencies.Loaded() || c.derived.Load() {
		c.currencies.Load(registry.CurrenciesFromMarkets(c.markets.Markets()))
		c.derived.Store(true)
	}
	logger.WithFields(map[string]interface{}{
		"exchange": c.profile.ID,
		"markets":  len(markets),
	}).Info("Markets loaded")
	return markets
}

func (c *Client) IngestCurrencies(rows []native.Object) map[string]model.Currency {
	currencies := c.parser.ParseCurrencies(rows)
	c.currencies.Load(currencies)
	c.derived.Store(false)
	logger.WithFields(map[string]interface{}{
		"exchange":   c.profile.ID,
		"currencies": len(currencies),
	}).Info("Currencies loaded")
	return currencies
}

// LoadMarkets fetches and ingests listings once; reload forces a refresh.
// Currencies load first so market codes resolve through them.
func (c *Client) LoadMarkets(ctx context.Context, reload bool) ([]*model.Market, error) {
	if c.markets.Loaded() && !reload {
		return c.markets.Markets(), nil
	}
	if !c.currencies.Loaded() || reload {
		if _, err := c.LoadCurrencies(ctx); err != nil {
			// The currency endpoint is private; markets still load without it.
			logger.WithError(err).Warn("Currencies unavailable, deriving them from markets")
		}
	}
	rows, err := c.FetchMarketRows(ctx)
	if err != nil {
		return nil, err
	}
	c.IngestMarkets(rows)
	return c.markets.Markets(), nil
}

func (c *Client) LoadCurrencies(ctx context.Context) (map[string]model.Currency, error) {
	rows, err := c.FetchCurrencyRows(ctx)
	if err != nil {
		return nil, err
	}
	return c.IngestCurrencies(rows), nil
}

func (c *Client) FetchTicker(ctx context.Context, symbol string, params builder.Params) (model.Ticker, error) {
	r, err := c.builder.FetchTicker(symbol, params)
	row, err := c.one(ctx, r, err)
	if err != nil {
		return model.Ticker{}, err
	}
	return c.parser.ParseTicker(row, r.Market), nil
}

func (c *Client) FetchTickers(ctx context.Context, symbols []string, params builder.Params) (map[string]model.Ticker, error) {
	r, err := c.builder.FetchTickers(symbols, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseTickers(rows, r.Symbols), nil
}

func (c *Client) FetchOHLCV(ctx context.Context, symbol, timeframe string, since int64, limit int, params builder.Params) ([]model.OHLCV, error) {
	r, err := c.builder.FetchOHLCV(symbol, timeframe, since, limit, params)
	data, err := c.send(ctx, r, err)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return c.parser.ParseOHLCVs(list, r.Market), nil
}

func (c *Client) FetchTrades(ctx context.Context, symbol string, since int64, limit int, params builder.Params) ([]model.Trade, error) {
	r, err := c.builder.FetchTrades(symbol, since, limit, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseTrades(rows, r.Market), nil
}

func (c *Client) FetchMyTrades(ctx context.Context, symbol string, since int64, limit int, params builder.Params) ([]model.Trade, error) {
	r, err := c.builder.FetchMyTrades(symbol, since, limit, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseTrades(rows, r.Market), nil
}

// CreateOrder places one order. The exchange echoes ids only, so the result
// is the submitted order merged with the acknowledgement.
func (c *Client) CreateOrder(ctx context.Context, o builder.OrderParams) (model.Order, error) {
	r, err := c.builder.CreateOrder(o)
	ack, err := c.acknowledged(ctx, r, err)
	if err != nil {
		return model.Order{}, err
	}
	ack.Side = o.Side
	if ack.Type == "" {
		ack.Type = o.Type
	}
	if ack.Status == "" {
		ack.Status = model.OrderStatusOpen
	}
	return ack, nil
}

// CreateOrders places a batch; each element succeeds or fails on its own.
func (c *Client) CreateOrders(ctx context.Context, orders []builder.OrderParams) ([]model.OrderResult, error) {
	r, err := c.builder.CreateOrders(orders)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseOrderResults(rows, r.Markets), nil
}

func (c *Client) CancelOrder(ctx context.Context, id, symbol string, params builder.Params) (model.Order, error) {
	r, err := c.builder.CancelOrder(id, symbol, params)
	o, err := c.acknowledged(ctx, r, err)
	if err != nil {
		return model.Order{}, err
	}
	o.Status = model.OrderStatusCanceled
	return o, nil
}

func (c *Client) CancelOrders(ctx context.Context, ids []string, symbol string, params builder.Params) ([]model.OrderResult, error) {
	r, err := c.builder.CancelOrders(ids, symbol, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseOrderResults(rows, r.Markets), nil
}

func (c *Client) EditOrder(ctx context.Context, id string, o builder.OrderParams) (model.Order, error) {
	r, err := c.builder.EditOrder(id, o)
	return c.acknowledged(ctx, r, err)
}

func (c *Client) FetchOrder(ctx context.Context, id, symbol string, params builder.Params) (model.Order, error) {
	r, err := c.builder.FetchOrder(id, symbol, params)
	row, err := c.one(ctx, r, err)
	if err != nil {
		return model.Order{}, err
	}
	return c.parser.ParseOrder(row, r.Market), nil
}

func (c *Client) FetchOpenOrders(ctx context.Context, symbol string, since int64, limit int, params builder.Params) ([]model.Order, error) {
	r, err := c.builder.FetchOpenOrders(symbol, since, limit, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseOrders(rows, r.Market), nil
}

func (c *Client) FetchClosedOrders(ctx context.Context, symbol string, since int64, limit int, params builder.Params) ([]model.Order, error) {
	r, err := c.builder.FetchClosedOrders(symbol, since, limit, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseOrders(rows, r.Market), nil
}

func (c *Client) FetchBalance(ctx context.Context, params builder.Params) (model.Balances, error) {
	r, err := c.builder.FetchBalance(params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return model.Balances{}, err
	}
	return c.parser.ParseBalance(rows), nil
}

func (c *Client) FetchPositions(ctx context.Context, symbols []string, params builder.Params) ([]model.Position, error) {
	r, err := c.builder.FetchPositions(symbols, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParsePositions(rows, r.Market), nil
}

func (c *Client) Transfer(ctx context.Context, code, amount, from, to string, params builder.Params) (model.Transfer, error) {
	r, err := c.builder.Transfer(code, amount, from, to, params)
	row, err := c.one(ctx, r, err)
	if err != nil {
		return model.Transfer{}, err
	}
	return c.parser.ParseTransfer(row), nil
}

func (c *Client) Withdraw(ctx context.Context, code, amount, address, tag string, params builder.Params) (model.Transaction, error) {
	r, err := c.builder.Withdraw(code, amount, address, tag, params)
	row, err := c.one(ctx, r, err)
	if err != nil {
		return model.Transaction{}, err
	}
	return c.parser.ParseTransaction(row), nil
}

func (c *Client) FetchDeposits(ctx context.Context, code string, since int64, limit int, params builder.Params) ([]model.Transaction, error) {
	r, err := c.builder.FetchDeposits(code, since, limit, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseTransactions(rows), nil
}

func (c *Client) FetchWithdrawals(ctx context.Context, code string, since int64, limit int, params builder.Params) ([]model.Transaction, error) {
	r, err := c.builder.FetchWithdrawals(code, since, limit, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseTransactions(rows), nil
}

func (c *Client) FetchLedger(ctx context.Context, code string, since int64, limit int, params builder.Params) ([]model.LedgerEntry, error) {
	r, err := c.builder.FetchLedger(code, since, limit, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseLedger(rows), nil
}

func (c *Client) FetchFundingRate(ctx context.Context, symbol string, params builder.Params) (model.FundingRate, error) {
	r, err := c.builder.FetchFundingRate(symbol, params)
	row, err := c.one(ctx, r, err)
	if err != nil {
		return model.FundingRate{}, err
	}
	return c.parser.ParseFundingRate(row, r.Market), nil
}

func (c *Client) FetchFundingRateHistory(ctx context.Context, symbol string, since int64, limit int, params builder.Params) ([]model.FundingRateHistory, error) {
	r, err := c.builder.FetchFundingRateHistory(symbol, since, limit, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseFundingRateHistory(rows, r.Market), nil
}

func (c *Client) FetchBorrowRate(ctx context.Context, code string, params builder.Params) (model.BorrowRate, error) {
	r, err := c.builder.FetchBorrowRate(code, params)
	row, err := c.one(ctx, r, err)
	if err != nil {
		return model.BorrowRate{}, err
	}
	return c.parser.ParseBorrowRate(row), nil
}

func (c *Client) FetchBorrowInterest(ctx context.Context, code, symbol string, since int64, limit int, params builder.Params) ([]model.BorrowInterest, error) {
	r, err := c.builder.FetchBorrowInterest(code, symbol, since, limit, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseBorrowInterests(rows, r.Market), nil
}

func (c *Client) FetchLeverageTiers(ctx context.Context, symbol string, params builder.Params) ([]model.LeverageTier, error) {
	r, err := c.builder.FetchLeverageTiers(symbol, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseLeverageTiers(rows, r.Market), nil
}

func (c *Client) FetchOpenInterest(ctx context.Context, symbol string, params builder.Params) (model.OpenInterest, error) {
	r, err := c.builder.FetchOpenInterest(symbol, params)
	row, err := c.one(ctx, r, err)
	if err != nil {
		return model.OpenInterest{}, err
	}
	return c.parser.ParseOpenInterest(row, r.Market), nil
}

func (c *Client) SetLeverage(ctx context.Context, leverage, symbol string, params builder.Params) (model.Leverage, error) {
	r, err := c.builder.SetLeverage(leverage, symbol, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return model.Leverage{}, err
	}
	return c.parser.ParseLeverage(rows, r.Market), nil
}

func (c *Client) FetchSettlementHistory(ctx context.Context, symbol string, since int64, limit int, params builder.Params) ([]model.Settlement, error) {
	r, err := c.builder.FetchSettlementHistory(symbol, since, limit, params)
	rows, err := c.rows(ctx, r, err)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseSettlements(rows, r.Market), nil
}
