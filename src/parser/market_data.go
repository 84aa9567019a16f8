package parser

import (
	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/precise"
	"exchangenorm/src/profile"
)

// ParseTicker reads one 24h ticker. Close, change, percentage, average and
// vwap are derived when the record lacks them.
func (p *Parser) ParseTicker(row native.Object, hint *model.Market) model.Ticker {
	f := p.profile.Tickers
	m := p.market(native.String(row, f.Symbol), native.String(row, f.InstType), hint)
	ts := native.Int64(row, f.Timestamp)
	last := native.Number(row, f.Last)
	open := native.Number(row, f.Open)

	base, quote := native.Number(row, f.BaseVolume), native.Number(row, f.QuoteVolume)
	if m.Contract {
		// Contract volumes come in contracts and base currency.
		base, quote = quote, ""
		if base != "" && last != "" {
			quote = precise.Mul(base, last)
		}
	}

	t := model.Ticker{
		Symbol:      m.Symbol,
		Timestamp:   ts,
		Datetime:    datetime(ts),
		High:        native.Decimal(row, f.High),
		Low:         native.Decimal(row, f.Low),
		Bid:         native.Decimal(row, f.Bid),
		BidVolume:   native.Decimal(row, f.BidVolume),
		Ask:         native.Decimal(row, f.Ask),
		AskVolume:   native.Decimal(row, f.AskVolume),
		Open:        native.ToDecimal(open),
		Close:       native.ToDecimal(last),
		Last:        native.ToDecimal(last),
		BaseVolume:  native.ToDecimal(base),
		QuoteVolume: native.ToDecimal(quote),
		MarkPrice:   native.Decimal(row, f.MarkPrice),
		IndexPrice:  native.Decimal(row, f.IndexPrice),
		Info:        row,
	}
	if open != "" && last != "" {
		change := precise.Sub(last, open)
		t.Change = native.ToDecimal(change)
		t.Average = native.ToDecimal(precise.Div(precise.Add(last, open), "2"))
		if pct := precise.Div(change, open); pct != "" {
			t.Percentage = native.ToDecimal(precise.Mul(pct, "100"))
		}
	}
	if base != "" && quote != "" {
		t.Vwap = native.ToDecimal(precise.Div(quote, base))
	}
	return t
}

// ParseTickers keys tickers by symbol, keeping only symbols when given.
func (p *Parser) ParseTickers(rows []native.Object, symbols []string) map[string]model.Ticker {
	want := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		want[s] = true
	}
	out := make(map[string]model.Ticker, len(rows))
	for _, row := range rows {
		t := p.ParseTicker(row, nil)
		if len(want) > 0 && !want[t.Symbol] {
			continue
		}
		out[t.Symbol] = t
	}
	return out
}

// ParseOHLCV reads one candle array [ts, open, high, low, close, volume,
// volume in currency, ...]. Contract candles count volume in contracts, so
// the currency column is used for them.
func (p *Parser) ParseOHLCV(row []interface{}, m *model.Market) model.OHLCV {
	at := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return native.Number(native.Object{"v": row[i]}, "v")
	}
	var ts int64
	if len(row) > 0 {
		ts = native.Int64(native.Object{"v": row[0]}, "v")
	}
	volume := at(5)
	if m != nil && m.Contract && at(6) != "" {
		volume = at(6)
	}
	return model.OHLCV{
		Timestamp: ts,
		Open:      native.ToDecimal(at(1)),
		High:      native.ToDecimal(at(2)),
		Low:       native.ToDecimal(at(3)),
		Close:     native.ToDecimal(at(4)),
		Volume:    native.ToDecimal(volume),
	}
}

// ParseOHLCVs returns candles oldest first; the exchange lists newest first.
func (p *Parser) ParseOHLCVs(rows []interface{}, m *model.Market) []model.OHLCV {
	out := make([]model.OHLCV, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		if row, ok := rows[i].([]interface{}); ok {
			out = append(out, p.ParseOHLCV(row, m))
		}
	}
	return out
}

// ParseTrade reads a public trade or a private fill.
func (p *Parser) ParseTrade(row native.Object, hint *model.Market) model.Trade {
	f := p.profile.Trades
	m := p.market(native.String(row, f.Symbol), native.String(row, f.InstType), hint)
	ts := native.Int64(row, f.Timestamp)
	price := native.Number(row, f.Price, f.PublicPrice)
	amount := native.Number(row, f.Amount, f.PublicAmount)

	t := model.Trade{
		ID:        native.String(row, f.ID),
		Order:     native.String(row, f.Order),
		Timestamp: ts,
		Datetime:  datetime(ts),
		Symbol:    m.Symbol,
		Side:      model.Side(native.String(row, f.Side)),
		Price:     native.ToDecimal(price),
		Amount:    native.ToDecimal(amount),
		Cost:      native.ToDecimal(contractCost(m, amount, price)),
		Fee:       p.fee(profile.RecordTrade, native.Number(row, f.Fee), native.String(row, f.FeeCurrency)),
		Info:      row,
	}
	switch native.String(row, f.Liquidity) {
	case f.MakerValue:
		t.TakerOrMaker = "maker"
	case f.TakerValue:
		t.TakerOrMaker = "taker"
	}
	return t
}

func (p *Parser) ParseTrades(rows []native.Object, hint *model.Market) []model.Trade {
	out := make([]model.Trade, 0, len(rows))
	for _, row := range rows {
		out = append(out, p.ParseTrade(row, hint))
	}
	return out
}
