package parser

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exchangenorm/src/errs"
	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/profile"
	"exchangenorm/src/registry"
)

const (
	expiry = "1711699200000" // 2024-03-29 08:00 UTC
	now    = "1700000000000"
)

var instruments = []native.Object{
	{"instId": "BTC-USDT", "instType": "SPOT", "baseCcy": "BTC", "quoteCcy": "USDT", "tickSz": "0.1",
		"lotSz": "0.00000001", "minSz": "0.00001", "lever": "10", "state": "live", "listTime": "1548133413000"},
	{"instId": "BTC-USDT-SWAP", "instType": "SWAP", "uly": "BTC-USDT", "settleCcy": "USDT", "ctVal": "0.01",
		"ctValCcy": "BTC", "tickSz": "0.1", "lotSz": "1", "minSz": "1", "lever": "100", "state": "live"},
	{"instId": "BTC-USD-240329", "instType": "FUTURES", "uly": "BTC-USD", "settleCcy": "BTC", "ctVal": "100",
		"ctValCcy": "USD", "expTime": expiry, "tickSz": "0.1", "lotSz": "1", "minSz": "1", "lever": "125", "state": "live"},
	{"instId": "BTC-USD-240329-50000-C", "instType": "OPTION", "uly": "BTC-USD", "settleCcy": "BTC", "ctVal": "0.01",
		"expTime": expiry, "stk": "50000", "optType": "C", "tickSz": "0.0005", "lotSz": "1", "minSz": "1", "state": "suspend"},
}

func testParser(t *testing.T) *Parser {
	t.Helper()
	p := profile.OKX()
	currencies := registry.NewCurrencyRegistry(p.CommonCurrencies)
	markets := registry.NewMarketRegistry(currencies)
	ps := New(p, markets, currencies)
	markets.Load(ps.ParseMarkets(instruments))
	return ps
}

func str(d decimal.NullDecimal) string {
	return native.FromDecimal(d)
}

func TestParseMarkets(t *testing.T) {
	p := testParser(t)
	rows := append([]native.Object{{"instType": "SPOT"}, {"instId": "X", "instType": "SPOT"}}, instruments...)
	markets := p.ParseMarkets(rows)
	require.Len(t, markets, 4)

	spot, swap, future, option := markets[0], markets[1], markets[2], markets[3]
	assert.Equal(t, "BTC/USDT", spot.Symbol)
	assert.True(t, spot.Spot)
	assert.True(t, spot.Margin)
	assert.False(t, spot.Contract)
	assert.Nil(t, spot.Linear)
	assert.Equal(t, "0.1", str(spot.Precision.Price))
	assert.Equal(t, "0.00000001", str(spot.Precision.Amount))
	assert.Equal(t, int64(1548133413000), spot.Created)

	assert.Equal(t, "BTC/USDT:USDT", swap.Symbol)
	assert.True(t, swap.IsLinear())
	assert.Equal(t, "0.01", str(swap.ContractSize))
	assert.Equal(t, "100", str(swap.Limits.Leverage.Max))

	assert.Equal(t, "BTC/USD:BTC-240329", future.Symbol)
	assert.True(t, future.IsInverse())
	assert.Equal(t, "2024-03-29T08:00:00.000Z", future.ExpiryDatetime)

	assert.Equal(t, "BTC/USD:BTC-240329-50000-C", option.Symbol)
	assert.Equal(t, model.OptionCall, option.OptionType)
	assert.Equal(t, "50000", str(option.Strike))
	assert.False(t, option.Active)

	m, err := p.markets.Resolve("BTC-USD-240329-50000-C")
	require.NoError(t, err)
	assert.Equal(t, option.Symbol, m.Symbol)
}

func TestParseTicker(t *testing.T) {
	p := testParser(t)
	tk := p.ParseTicker(native.Object{
		"instId": "BTC-USDT", "instType": "SPOT", "last": "101", "open24h": "100", "high24h": "102",
		"low24h": "99", "vol24h": "2", "volCcy24h": "202", "ts": now,
	}, nil)
	assert.Equal(t, "BTC/USDT", tk.Symbol)
	assert.Equal(t, "101", str(tk.Close))
	assert.Equal(t, "1", str(tk.Change))
	assert.Equal(t, "1", str(tk.Percentage))
	assert.Equal(t, "100.5", str(tk.Average))
	assert.Equal(t, "101", str(tk.Vwap))
	assert.Equal(t, "2023-11-14T22:13:20.000Z", tk.Datetime)

	swap := p.ParseTicker(native.Object{
		"instId": "BTC-USDT-SWAP", "instType": "SWAP", "last": "30000", "vol24h": "500", "volCcy24h": "5",
	}, nil)
	assert.Equal(t, "BTC/USDT:USDT", swap.Symbol)
	assert.Equal(t, "5", str(swap.BaseVolume))
	assert.Equal(t, "150000", str(swap.QuoteVolume))
	assert.False(t, swap.Change.Valid)
}

func TestParseTickersFilter(t *testing.T) {
	p := testParser(t)
	rows := []native.Object{
		{"instId": "BTC-USDT", "instType": "SPOT", "last": "1"},
		{"instId": "ETH-USDT", "instType": "SPOT", "last": "2"},
	}
	all := p.ParseTickers(rows, nil)
	assert.Len(t, all, 2)
	assert.Contains(t, all, "ETH/USDT")

	only := p.ParseTickers(rows, []string{"BTC/USDT"})
	require.Len(t, only, 1)
	assert.Equal(t, "1", str(only["BTC/USDT"].Last))
}

func TestParseOHLCVs(t *testing.T) {
	p := testParser(t)
	rows := []interface{}{
		[]interface{}{"1700003600000", "2", "3", "1", "2.5", "10", "25", "25", "1"},
		[]interface{}{"1700000000000", "1", "2", "0.5", "2", "20", "30", "30", "1"},
		"garbage",
	}
	spot, err := p.markets.Resolve("BTC/USDT")
	require.NoError(t, err)
	candles := p.ParseOHLCVs(rows, spot)
	require.Len(t, candles, 2)
	assert.Equal(t, int64(1700000000000), candles[0].Timestamp)
	assert.Equal(t, "20", str(candles[0].Volume))
	assert.Equal(t, "2.5", str(candles[1].Close))

	swap, err := p.markets.Resolve("BTC/USDT:USDT")
	require.NoError(t, err)
	assert.Equal(t, "30", str(p.ParseOHLCVs(rows, swap)[0].Volume))
}

func TestParseTrade(t *testing.T) {
	p := testParser(t)
	fill := p.ParseTrade(native.Object{
		"instId": "BTC-USDT", "instType": "SPOT", "tradeId": "t1", "ordId": "o1", "side": "buy",
		"fillPx": "100", "fillSz": "2", "fee": "-0.02", "feeCcy": "USDT", "execType": "M", "ts": now,
	}, nil)
	assert.Equal(t, "BTC/USDT", fill.Symbol)
	assert.Equal(t, "200", str(fill.Cost))
	assert.Equal(t, "maker", fill.TakerOrMaker)
	require.NotNil(t, fill.Fee)
	assert.Equal(t, "0.02", str(fill.Fee.Cost))
	assert.Equal(t, "USDT", fill.Fee.Currency)

	contract := p.ParseTrade(native.Object{
		"instId": "BTC-USDT-SWAP", "fillPx": "30000", "fillSz": "3", "execType": "T",
	}, nil)
	assert.Equal(t, "900", str(contract.Cost))
	assert.Equal(t, "taker", contract.TakerOrMaker)

	public := p.ParseTrade(native.Object{"instId": "BTC-USDT", "px": "50", "sz": "0.5", "side": "sell"}, nil)
	assert.Equal(t, "25", str(public.Cost))
	assert.Nil(t, public.Fee)
	assert.Equal(t, model.SideSell, public.Side)
}

func TestParseOrderStatusAndFee(t *testing.T) {
	p := testParser(t)
	for raw, unified := range map[string]string{
		"live":             model.OrderStatusOpen,
		"partially_filled": model.OrderStatusOpen,
		"filled":           model.OrderStatusClosed,
		"canceled":         model.OrderStatusCanceled,
		"weird":            "weird",
	} {
		o := p.ParseOrder(native.Object{"instId": "BTC-USDT", "ordId": "1", "state": raw}, nil)
		assert.Equal(t, unified, o.Status, raw)
	}

	charged := p.ParseOrder(native.Object{"instId": "BTC-USDT", "fee": "-0.1", "feeCcy": "USDT"}, nil)
	assert.Equal(t, "0.1", str(charged.Fee.Cost))
	rebate := p.ParseOrder(native.Object{"instId": "BTC-USDT", "fee": "0.05", "feeCcy": "USDT"}, nil)
	assert.Equal(t, "-0.05", str(rebate.Fee.Cost))

	po := p.ParseOrder(native.Object{"instId": "BTC-USDT", "ordType": "post_only", "px": "10"}, nil)
	assert.Equal(t, "limit", po.Type)
	assert.True(t, po.PostOnly)
	assert.Equal(t, "PO", po.TimeInForce)
}

func TestParseOrderQuoteSized(t *testing.T) {
	p := testParser(t)
	row := native.Object{
		"instId": "BTC-USDT", "ordId": "1", "ordType": "market", "side": "buy", "tgtCcy": "quote_ccy",
		"sz": "100", "accFillSz": "0.00099", "avgPx": "101010", "state": "filled",
	}
	o := p.ParseOrder(row, nil)
	assert.True(t, o.QuoteSized)
	assert.Equal(t, "100", str(o.Cost))
	assert.Equal(t, "0.00099", str(o.Amount))
	assert.Equal(t, "0", str(o.Remaining))

	row["state"] = "live"
	open := p.ParseOrder(row, nil)
	assert.True(t, open.QuoteSized)
	assert.False(t, open.Amount.Valid)
	assert.Equal(t, "100", str(open.Cost))

	row["tgtCcy"] = "base_ccy"
	base := p.ParseOrder(row, nil)
	assert.False(t, base.QuoteSized)
	assert.Equal(t, "100", str(base.Amount))
}

func TestParseOrderDerivations(t *testing.T) {
	p := testParser(t)
	o := p.ParseOrder(native.Object{
		"instId": "BTC-USDT", "ordType": "limit", "side": "sell", "px": "100", "sz": "2",
		"accFillSz": "0.5", "avgPx": "100", "state": "partially_filled", "cTime": now,
	}, nil)
	assert.Equal(t, "1.5", str(o.Remaining))
	assert.Equal(t, "50", str(o.Cost))
	assert.Equal(t, "100", str(o.Price))
	assert.Equal(t, int64(1700000000000), o.Timestamp)

	swap := p.ParseOrder(native.Object{
		"instId": "BTC-USDT-SWAP", "instType": "SWAP", "ordType": "limit", "sz": "10", "accFillSz": "4", "avgPx": "30000",
	}, nil)
	assert.Equal(t, "BTC/USDT:USDT", swap.Symbol)
	assert.Equal(t, "1200", str(swap.Cost))

	noAverage := p.ParseOrder(native.Object{
		"instId": "BTC-USDT-SWAP", "instType": "SWAP", "ordType": "limit", "px": "30000", "sz": "10", "accFillSz": "4", "avgPx": "",
	}, nil)
	assert.Equal(t, "1200", str(noAverage.Cost))
	assert.False(t, noAverage.Average.Valid)

	unfilled := p.ParseOrder(native.Object{"instId": "BTC-USDT", "sz": "1", "avgPx": "0", "accFillSz": "0"}, nil)
	assert.False(t, unfilled.Average.Valid)
	assert.False(t, unfilled.Cost.Valid)
}

func TestParseAlgoOrder(t *testing.T) {
	p := testParser(t)
	o := p.ParseOrder(native.Object{
		"instId": "BTC-USDT-SWAP", "instType": "SWAP", "algoId": "A1", "ordId": "", "algoClOrdId": "mine",
		"ordType": "conditional", "ordPx": "-1", "slTriggerPx": "25000", "tpTriggerPx": "", "sz": "1", "state": "live",
	}, nil)
	assert.Equal(t, "A1", o.ID)
	assert.Equal(t, "mine", o.ClientOrderID)
	assert.Equal(t, "market", o.Type)
	assert.Equal(t, "25000", str(o.StopLossPrice))
	assert.False(t, o.TakeProfitPrice.Valid)

	limit := p.ParseOrder(native.Object{"instId": "BTC-USDT", "algoId": "A2", "ordType": "trigger",
		"triggerPx": "99", "ordPx": "100"}, nil)
	assert.Equal(t, "limit", limit.Type)
	assert.Equal(t, "100", str(limit.Price))
	assert.Equal(t, "99", str(limit.TriggerPrice))
}

func TestParseOrderResults(t *testing.T) {
	p := testParser(t)
	swap, err := p.markets.Resolve("BTC/USDT:USDT")
	require.NoError(t, err)
	results := p.ParseOrderResults([]native.Object{
		{"ordId": "1", "clOrdId": "a", "sCode": "0", "sMsg": ""},
		{"ordId": "", "clOrdId": "b", "sCode": "51008", "sMsg": "Insufficient balance"},
		{"ordId": "3", "clOrdId": "c", "sCode": "51603", "sMsg": "Order does not exist"},
	}, []*model.Market{swap, swap})
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "1", results[0].Order.ID)
	assert.Equal(t, "BTC/USDT:USDT", results[0].Order.Symbol)

	assert.True(t, errors.Is(results[1].Err, errs.ErrInsufficientFunds))
	assert.Equal(t, "b", results[1].Order.ClientOrderID)
	assert.Equal(t, model.OrderStatusRejected, results[1].Order.Status)

	assert.True(t, errors.Is(results[2].Err, errs.ErrOrderNotFound))
	assert.True(t, errors.Is(results[2].Err, errs.ErrInvalidOrder))
}

func TestParseOrderIdempotent(t *testing.T) {
	p := testParser(t)
	row := native.Object{"instId": "BTC-USDT", "ordId": "9", "sz": "1", "accFillSz": "1", "avgPx": "5",
		"fee": "-0.01", "feeCcy": "BTC", "state": "filled", "ordType": "limit"}
	before := native.Extend(row)
	first := p.ParseOrder(row, nil)
	second := p.ParseOrder(row, nil)
	assert.Equal(t, first, second)
	assert.Equal(t, before, row)
}

func TestParseBalance(t *testing.T) {
	p := testParser(t)
	b := p.ParseBalance([]native.Object{{
		"uTime": now,
		"details": []interface{}{
			map[string]interface{}{"ccy": "USDT", "availBal": "90", "frozenBal": "10", "eq": "100"},
			map[string]interface{}{"ccy": "BTC", "availBal": "1", "frozenBal": "0.5", "liab": "0.2"},
		},
	}})
	assert.Equal(t, int64(1700000000000), b.Timestamp)
	require.Contains(t, b.Currencies, "USDT")
	assert.Equal(t, "100", str(b.Currencies["USDT"].Total))
	assert.Equal(t, "1.5", str(b.Currencies["BTC"].Total))
	assert.Equal(t, "0.2", str(b.Currencies["BTC"].Debt))

	funding := p.ParseBalance([]native.Object{{"ccy": "USDT", "bal": "5", "availBal": "4"}})
	assert.Equal(t, "1", str(funding.Currencies["USDT"].Used))
	assert.Equal(t, "5", str(funding.Currencies["USDT"].Total))
}

func TestParsePositions(t *testing.T) {
	p := testParser(t)
	positions := p.ParsePositions([]native.Object{
		{"instId": "BTC-USDT-SWAP", "instType": "SWAP", "posSide": "net", "pos": "-3", "lever": "10",
			"uplRatio": "0.1", "mgnMode": "cross", "imr": "90", "mmr": "4", "notionalUsd": "900", "liqPx": ""},
		{"instId": "BTC-USDT-SWAP", "instType": "SWAP", "posSide": "long", "pos": "2", "mgnMode": "isolated", "margin": "60"},
		{"instId": "BTC-USDT-SWAP", "instType": "SWAP", "posSide": "net", "pos": "0"},
	}, nil)
	require.Len(t, positions, 2)

	net := positions[0]
	assert.Equal(t, "short", net.Side)
	assert.False(t, net.Hedged)
	assert.Equal(t, "3", str(net.Contracts))
	assert.Equal(t, "0.01", str(net.ContractSize))
	assert.Equal(t, "10", str(net.Percentage))
	assert.Equal(t, "0.1", str(net.InitialMarginPercentage))
	assert.Equal(t, "90", str(net.InitialMargin))
	assert.False(t, net.LiquidationPrice.Valid)

	hedged := positions[1]
	assert.Equal(t, "long", hedged.Side)
	assert.True(t, hedged.Hedged)
	assert.Equal(t, "60", str(hedged.Collateral))
}

func TestParseTransactions(t *testing.T) {
	p := testParser(t)
	txs := p.ParseTransactions([]native.Object{
		{"depId": "d1", "ccy": "USDT", "chain": "USDT-TRC20", "amt": "10", "state": "2", "txId": "0xabc", "to": "Txyz", "ts": now},
		{"wdId": "w1", "ccy": "ETH", "chain": "ETH-ERC20", "amt": "1", "fee": "0.001", "state": "-2"},
		{"depId": "d2", "ccy": "USDT", "state": "99", "from": "friend@example.com"},
	})
	require.Len(t, txs, 3)

	assert.Equal(t, model.TransactionDeposit, txs[0].Type)
	assert.Equal(t, "ok", txs[0].Status)
	assert.Equal(t, "TRC20", txs[0].Network)
	assert.Equal(t, "Txyz", txs[0].Address)
	assert.Nil(t, txs[0].Fee)
	assert.False(t, txs[0].Internal)

	assert.Equal(t, model.TransactionWithdrawal, txs[1].Type)
	assert.Equal(t, "w1", txs[1].ID)
	assert.Equal(t, "canceled", txs[1].Status)
	assert.Equal(t, "ETH", txs[1].Network)
	assert.Equal(t, "0.001", str(txs[1].Fee.Cost))

	assert.Equal(t, "99", txs[2].Status)
	assert.True(t, txs[2].Internal)
}

func TestParseTransferAndLedger(t *testing.T) {
	p := testParser(t)
	tr := p.ParseTransfer(native.Object{"transId": "7", "ccy": "USDT", "amt": "1.5", "from": "6", "to": "18", "state": "success"})
	assert.Equal(t, "funding", tr.FromAccount)
	assert.Equal(t, "trading", tr.ToAccount)
	assert.Equal(t, "ok", tr.Status)
	assert.Equal(t, "1.5", str(tr.Amount))

	entries := p.ParseLedger([]native.Object{
		{"billId": "b1", "ccy": "USDT", "balChg": "-5", "bal": "95", "type": "2", "fee": "-0.1",
			"instId": "BTC-USDT", "instType": "SPOT", "ordId": "o1", "ts": now},
		{"billId": "b2", "ccy": "USDT", "balChg": "3", "bal": "98", "type": "1"},
	})
	require.Len(t, entries, 2)
	assert.Equal(t, "out", entries[0].Direction)
	assert.Equal(t, "5", str(entries[0].Amount))
	assert.Equal(t, "100", str(entries[0].Before))
	assert.Equal(t, "trade", entries[0].Type)
	assert.Equal(t, "BTC/USDT", entries[0].Symbol)
	assert.Equal(t, "0.1", str(entries[0].Fee.Cost))
	assert.Equal(t, "o1", entries[0].ReferenceID)
	assert.Equal(t, "in", entries[1].Direction)
	assert.Equal(t, "transfer", entries[1].Type)
}

func TestParseDerivatives(t *testing.T) {
	p := testParser(t)
	fr := p.ParseFundingRate(native.Object{
		"instId": "BTC-USDT-SWAP", "instType": "SWAP", "fundingRate": "0.0001", "nextFundingRate": "0.0002",
		"fundingTime": "1700006400000", "nextFundingTime": "1700035200000",
	}, nil)
	assert.Equal(t, "BTC/USDT:USDT", fr.Symbol)
	assert.Equal(t, "8h", fr.Interval)
	assert.Equal(t, "0.0002", str(fr.NextFundingRate))

	history := p.ParseFundingRateHistory([]native.Object{
		{"instId": "BTC-USDT-SWAP", "fundingRate": "0.5", "realizedRate": "0.0003", "fundingTime": "1700035200000"},
		{"instId": "BTC-USDT-SWAP", "fundingRate": "0.0001", "fundingTime": "1700006400000"},
	}, nil)
	require.Len(t, history, 2)
	assert.Equal(t, "0.0001", str(history[0].FundingRate))
	assert.Equal(t, "0.0003", str(history[1].FundingRate))

	oi := p.ParseOpenInterest(native.Object{"instId": "BTC-USDT-SWAP", "instType": "SWAP", "oi": "1200", "oiCcy": "12", "ts": now}, nil)
	assert.Equal(t, "1200", str(oi.OpenInterestAmount))

	settlements := p.ParseSettlements([]native.Object{{
		"ts": "1688112000000",
		"details": []interface{}{
			map[string]interface{}{"insId": "BTC-USD-230630-30000-C", "px": "30500", "type": "exercised"},
			map[string]interface{}{"insId": "BTC-USD-240329", "px": "70000", "type": "delivery"},
		},
	}}, nil)
	require.Len(t, settlements, 2)
	assert.Equal(t, "BTC/USD:BTC-230630-30000-C", settlements[0].Symbol)
	assert.Equal(t, "BTC/USD:BTC-240329", settlements[1].Symbol)
	assert.Equal(t, int64(1688112000000), settlements[0].Timestamp)

	rate := p.ParseBorrowRate(native.Object{"ccy": "USDT", "interestRate": "0.00001"})
	assert.Equal(t, "USDT", rate.Currency)
	assert.Equal(t, int64(3600000), rate.Period)

	future, err := p.markets.Resolve("BTC/USD:BTC-240329")
	require.NoError(t, err)
	tiers := p.ParseLeverageTiers([]native.Object{{"tier": "1", "minSz": "0", "maxSz": "500", "mmr": "0.004", "maxLever": "125"}}, future)
	require.Len(t, tiers, 1)
	assert.Equal(t, "BTC", tiers[0].Currency)
	assert.Equal(t, int64(1), tiers[0].Tier)

	lev := p.ParseLeverage([]native.Object{
		{"instId": "BTC-USDT-SWAP", "lever": "5", "mgnMode": "isolated", "posSide": "long"},
		{"instId": "BTC-USDT-SWAP", "lever": "3", "mgnMode": "isolated", "posSide": "short"},
	}, nil)
	assert.Equal(t, "BTC/USDT:USDT", lev.Symbol)
	assert.Equal(t, "isolated", lev.MarginMode)
	assert.Equal(t, "5", str(lev.LongLeverage))
	assert.Equal(t, "3", str(lev.ShortLeverage))
}
