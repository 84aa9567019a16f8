package builder

import (
	"strconv"

	"github.com/nntaoli-project/goex"

	"exchangenorm/src/errs"
	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/profile"
)

const (
	minute = int64(60 * 1000)
	hour   = 60 * minute
	day    = 24 * hour
)

type timeframe struct {
	period goex.KlinePeriod
	ms     int64
}

var timeframes = map[string]timeframe{
	"1m":  {goex.KLINE_PERIOD_1MIN, minute},
	"3m":  {goex.KLINE_PERIOD_3MIN, 3 * minute},
	"5m":  {goex.KLINE_PERIOD_5MIN, 5 * minute},
	"15m": {goex.KLINE_PERIOD_15MIN, 15 * minute},
	"30m": {goex.KLINE_PERIOD_30MIN, 30 * minute},
	"1h":  {goex.KLINE_PERIOD_1H, hour},
	"2h":  {goex.KLINE_PERIOD_2H, 2 * hour},
	"4h":  {goex.KLINE_PERIOD_4H, 4 * hour},
	"6h":  {goex.KLINE_PERIOD_6H, 6 * hour},
	"12h": {goex.KLINE_PERIOD_12H, 12 * hour},
	"1d":  {goex.KLINE_PERIOD_1DAY, day},
	"1w":  {goex.KLINE_PERIOD_1WEEK, 7 * day},
	"1M":  {goex.KLINE_PERIOD_1MONTH, 30 * day},
}

// Period maps a unified timeframe such as "15m" or "1d" to its kline period.
func Period(tf string) (goex.KlinePeriod, error) {
	t, ok := timeframes[tf]
	if !ok {
		return 0, errs.New(errs.ErrBadRequest, "unknown timeframe %q", tf)
	}
	return t.period, nil
}

// TimeframeMillis is the length of one candle.
func TimeframeMillis(tf string) int64 {
	return timeframes[tf].ms
}

// FetchTicker requests the 24h ticker of one market.
func (b *Builder) FetchTicker(symbol string, params Params) (*Request, error) {
	m, err := b.market(symbol)
	if err != nil {
		return nil, err
	}
	fields := native.Object{b.profile.Tickers.Symbol: m.ID}
	r, err := b.request(profile.EndpointTicker, native.Extend(fields, params))
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}

// FetchTickers requests every ticker of one instrument type. The type comes
// from the first symbol, else from the type param or the default type.
func (b *Builder) FetchTickers(symbols []string, params Params) (*Request, error) {
	var first *model.Market
	for i, s := range symbols {
		m, err := b.market(s)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			first = m
		} else if m.Type != first.Type {
			return nil, errs.New(errs.ErrBadRequest, "symbols must share one market type, got %s and %s", first.Type, m.Type)
		}
	}
	fields := native.Object{b.profile.Tickers.InstType: b.nativeType(params, first)}
	r, err := b.request(profile.EndpointTickers, native.Extend(fields, native.Omit(params, "type")))
	if err != nil {
		return nil, err
	}
	r.Symbols = append([]string(nil), symbols...)
	return r, nil
}

// FetchOHLCV requests candles. Candles older than the configured window come
// from the history endpoint.
func (b *Builder) FetchOHLCV(symbol, tf string, since int64, limit int, params Params) (*Request, error) {
	m, err := b.market(symbol)
	if err != nil {
		return nil, err
	}
	t, ok := timeframes[tf]
	if !ok {
		return nil, errs.New(errs.ErrBadRequest, "unknown timeframe %q", tf)
	}
	bar, ok := b.profile.Bars[t.period]
	if !ok {
		return nil, errs.New(errs.ErrNotSupported, "%s has no %s candles", b.profile.ID, tf)
	}
	if limit <= 0 {
		limit = b.profile.Options.OHLCVLimit
	}
	e, ceiling := profile.EndpointCandles, 300
	if since > 0 && b.now()-since > b.profile.Options.HistoryCandlesAfterMs {
		e, ceiling = profile.EndpointHistoryCandles, 100
	}
	if limit > ceiling {
		limit = ceiling
	}
	fields := native.Object{
		b.profile.Tickers.Symbol: m.ID,
		"bar":                    bar,
		"limit":                  strconv.Itoa(limit),
	}
	if since > 0 {
		fields["before"] = strconv.FormatInt(since-1, 10)
		fields["after"] = strconv.FormatInt(since+int64(limit)*t.ms, 10)
	}
	r, err := b.request(e, native.Extend(fields, params))
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}

// FetchMarkets builds one instruments request per configured market type;
// options are listed per instrument family.
func (b *Builder) FetchMarkets() ([]*Request, error) {
	opts := b.profile.Options
	field := b.profile.Markets.InstType
	var out []*Request
	for _, t := range opts.FetchMarketTypes {
		nt := b.profile.NativeMarketType(model.MarketType(t))
		if nt == "" {
			return nil, errs.New(errs.ErrBadRequest, "unknown market type %q in fetch_market_types", t)
		}
		if model.MarketType(t) != model.MarketOption {
			r, err := b.request(profile.EndpointInstruments, native.Object{field: nt})
			if err != nil {
				return nil, err
			}
			out = append(out, r)
			continue
		}
		for _, family := range opts.OptionFamilies {
			r, err := b.request(profile.EndpointInstruments, native.Object{field: nt, b.profile.Markets.Family: family})
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
	}
	return out, nil
}

// FetchCurrencies requests the currency and chain listing.
func (b *Builder) FetchCurrencies(params Params) (*Request, error) {
	return b.request(profile.EndpointCurrencies, native.Extend(native.Object{}, params))
}
