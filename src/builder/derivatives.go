package builder

import (
	"strings"

	"exchangenorm/src/errs"
	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/precise"
	"exchangenorm/src/profile"
)

func (b *Builder) swap(symbol, op string) (*model.Market, error) {
	m, err := b.market(symbol)
	if err != nil {
		return nil, err
	}
	if !m.Swap {
		return nil, errs.New(errs.ErrBadSymbol, "%s supports swap contracts only, %s is %s", op, m.Symbol, m.Type)
	}
	return m, nil
}

// FetchFundingRate requests the current and next funding rate of a swap.
func (b *Builder) FetchFundingRate(symbol string, params Params) (*Request, error) {
	m, err := b.swap(symbol, "fetchFundingRate")
	if err != nil {
		return nil, err
	}
	r, err := b.request(profile.EndpointFundingRate, native.Extend(native.Object{b.profile.Funding.Symbol: m.ID}, params))
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}

// FetchFundingRateHistory lists settled funding rates of a swap.
func (b *Builder) FetchFundingRateHistory(symbol string, since int64, limit int, params Params) (*Request, error) {
	m, err := b.swap(symbol, "fetchFundingRateHistory")
	if err != nil {
		return nil, err
	}
	fields := native.Object{b.profile.Funding.Symbol: m.ID}
	paging(fields, "before", since, limit)
	r, err := b.request(profile.EndpointFundingRateHistory, native.Extend(fields, params))
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}

// FetchBorrowRate requests the margin borrow rate of a currency.
func (b *Builder) FetchBorrowRate(code string, params Params) (*Request, error) {
	c, err := b.currencies.Currency(code)
	if err != nil {
		return nil, err
	}
	r, err := b.request(profile.EndpointInterestRate, native.Extend(native.Object{"ccy": c.ID}, params))
	if err != nil {
		return nil, err
	}
	r.Currency = c.Code
	return r, nil
}

// FetchBorrowInterest lists accrued interest, cross margin unless the
// marginMode param or the default margin mode says otherwise.
func (b *Builder) FetchBorrowInterest(code, symbol string, since int64, limit int, params Params) (*Request, error) {
	mode := strings.ToLower(option(params, b.profile.Options.DefaultMarginMode, "cross", "marginMode"))
	if mode == "cash" {
		mode = "cross"
	}
	fields := native.Object{"mgnMode": mode}
	var (
		c   *model.Currency
		m   *model.Market
		err error
	)
	if code != "" {
		if c, err = b.currencies.Currency(code); err != nil {
			return nil, err
		}
		fields["ccy"] = c.ID
	}
	if symbol != "" {
		if m, err = b.market(symbol); err != nil {
			return nil, err
		}
		fields["instId"] = m.ID
	}
	paging(fields, "before", since, limit)
	r, err := b.request(profile.EndpointInterestAccrued, native.Extend(fields, native.Omit(params, "marginMode")))
	if err != nil {
		return nil, err
	}
	r.Market = m
	if c != nil {
		r.Currency = c.Code
	}
	return r, nil
}

// FetchLeverageTiers requests the position tiers of a market. Contracts are
// tiered per underlying, spot margin per instrument.
func (b *Builder) FetchLeverageTiers(symbol string, params Params) (*Request, error) {
	m, err := b.market(symbol)
	if err != nil {
		return nil, err
	}
	mode := strings.ToLower(option(params, b.profile.Options.DefaultMarginMode, "cross", "marginMode"))
	if mode == "cash" {
		mode = "cross"
	}
	fields := native.Object{"tdMode": mode}
	switch {
	case m.Contract:
		fields["instType"] = b.profile.NativeMarketType(m.Type)
		uly := native.String(m.Info, b.profile.Markets.Underlying)
		if uly == "" {
			uly = m.BaseID + "-" + m.QuoteID
		}
		fields["uly"] = uly
	case m.Spot || m.Margin:
		fields["instType"] = b.profile.NativeMarketType(model.MarketMargin)
		fields["instId"] = m.ID
	default:
		return nil, errs.New(errs.ErrNotSupported, "%s has no leverage tiers", m.Symbol)
	}
	r, err := b.request(profile.EndpointPositionTiers, native.Extend(fields, native.Omit(params, "marginMode")))
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}

// FetchOpenInterest requests the open interest of a contract.
func (b *Builder) FetchOpenInterest(symbol string, params Params) (*Request, error) {
	m, err := b.market(symbol)
	if err != nil {
		return nil, err
	}
	if !m.Contract {
		return nil, errs.New(errs.ErrBadRequest, "open interest is only available for contracts, %s is %s", m.Symbol, m.Type)
	}
	fields := native.Object{
		"instType": b.profile.NativeMarketType(m.Type),
		"instId":   m.ID,
	}
	r, err := b.request(profile.EndpointOpenInterest, native.Extend(fields, params))
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}

// SetLeverage sets the leverage of a market. Leverage must lie in
// [1, max leverage]; isolated hedged positions need a posSide param.
func (b *Builder) SetLeverage(leverage, symbol string, params Params) (*Request, error) {
	m, err := b.market(symbol)
	if err != nil {
		return nil, err
	}
	if _, err := precise.Parse(leverage); err != nil {
		return nil, errs.Wrap(errs.ErrBadRequest, err, "leverage %q", leverage)
	}
	upper := b.profile.Options.MaxLeverage.String()
	if m.Limits.Leverage.Max.Valid {
		upper = m.Limits.Leverage.Max.Decimal.String()
	}
	if precise.Lt(leverage, "1") || (upper != "0" && precise.Gt(leverage, upper)) {
		return nil, errs.New(errs.ErrInvalidOrder, "leverage should be between 1 and %s, got %s", upper, leverage)
	}
	mode := strings.ToLower(option(params, b.profile.Options.DefaultMarginMode, "cross", "marginMode", "mgnMode"))
	if mode != "cross" && mode != "isolated" {
		return nil, errs.New(errs.ErrBadRequest, "margin mode must be cross or isolated, got %s", mode)
	}
	fields := native.Object{
		"lever":   leverage,
		"mgnMode": mode,
		"instId":  m.ID,
	}
	r, err := b.request(profile.EndpointSetLeverage, native.Extend(fields, native.Omit(params, "marginMode", "mgnMode")))
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}

// FetchSettlementHistory lists delivery and exercise prices of futures and
// options of the market's underlying.
func (b *Builder) FetchSettlementHistory(symbol string, since int64, limit int, params Params) (*Request, error) {
	m, err := b.market(symbol)
	if err != nil {
		return nil, err
	}
	if !m.Future && !m.Option {
		return nil, errs.New(errs.ErrNotSupported, "settlement history is only available for futures and options, %s is %s", m.Symbol, m.Type)
	}
	uly := native.String(m.Info, b.profile.Markets.Underlying)
	if uly == "" {
		uly = m.BaseID + "-" + m.QuoteID
	}
	fields := native.Object{
		"instType": b.profile.NativeMarketType(m.Type),
		"uly":      uly,
	}
	paging(fields, "before", since, limit)
	r, err := b.request(profile.EndpointDeliveryHistory, native.Extend(fields, params))
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}
