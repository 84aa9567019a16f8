package builder

import (
	"errors"
	"regexp"
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

func dec(s string) decimal.NullDecimal {
	return native.ToDecimal(s)
}

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	p := profile.OKX()
	currencies := registry.NewCurrencyRegistry(p.CommonCurrencies)
	currencies.Load(map[string]model.Currency{
		"USDT": {Code: "USDT", ID: "USDT", Precision: dec("0.000001"), Networks: map[string]model.Network{
			"TRC20": {ID: "TRC20", Network: "TRC20", Fee: dec("1")},
		}},
		"BTC": {Code: "BTC", ID: "BTC", Precision: dec("0.00000001"), Networks: map[string]model.Network{}},
	})
	markets := registry.NewMarketRegistry(currencies)
	markets.Load([]model.Market{
		{ID: "BTC-USDT", Symbol: "BTC/USDT", Base: "BTC", Quote: "USDT", BaseID: "BTC", QuoteID: "USDT",
			Type: model.MarketSpot, Spot: true, Active: true,
			Precision: model.MarketPrecision{Price: dec("0.1"), Amount: dec("0.00000001")}},
		{ID: "BTC-USDT-SWAP", Symbol: "BTC/USDT:USDT", Base: "BTC", Quote: "USDT", Settle: "USDT",
			BaseID: "BTC", QuoteID: "USDT", SettleID: "USDT",
			Type: model.MarketSwap, Swap: true, Contract: true, Linear: model.Bool(true), Inverse: model.Bool(false),
			ContractSize: dec("0.01"), Active: true,
			Precision: model.MarketPrecision{Price: dec("0.1"), Amount: dec("1")},
			Limits:    model.MarketLimits{Leverage: model.MinMax{Min: dec("1"), Max: dec("100")}},
			Info:      map[string]interface{}{"uly": "BTC-USDT"}},
	})
	n := 0
	return New(p, markets, currencies).
		WithClientID(func() string {
			n++
			return "cid" + string(rune('0'+n))
		}).
		WithClock(func() int64 { return 1700000000000 })
}

func body(t *testing.T, r *Request) native.Object {
	t.Helper()
	b, ok := r.Body.(native.Object)
	require.True(t, ok, "body is %T", r.Body)
	return b
}

func TestCreateOrderQuoteNotional(t *testing.T) {
	b := testBuilder(t)
	buy := OrderParams{Symbol: "BTC/USDT", Type: "market", Side: model.SideBuy, Amount: "1", Price: "20000",
		Params: Params{"tgtCcy": "quote_ccy"}}

	r, err := b.CreateOrder(buy)
	require.NoError(t, err)
	require.Equal(t, profile.EndpointPlaceOrder, r.Endpoint)
	require.Equal(t, "/api/v5/trade/order", r.Path)
	fields := body(t, r)
	assert.Equal(t, "20000", fields["sz"])
	assert.Equal(t, "quote_ccy", fields["tgtCcy"])
	assert.Equal(t, "market", fields["ordType"])
	assert.Equal(t, "cash", fields["tdMode"])
	assert.NotContains(t, fields, "px")

	buy.Price = ""
	_, err = b.CreateOrder(buy)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidOrder))

	buy.Params = Params{"cost": "150.55"}
	r, err = b.CreateOrder(buy)
	require.NoError(t, err)
	assert.Equal(t, "150.5", body(t, r)["sz"])

	buy.Params = Params{"createMarketBuyOrderRequiresPrice": false}
	r, err = b.CreateOrder(buy)
	require.NoError(t, err)
	assert.Equal(t, "1", body(t, r)["sz"])

	buy.Params = Params{"tgtCcy": "base_ccy"}
	r, err = b.CreateOrder(buy)
	require.NoError(t, err)
	assert.Equal(t, "1", body(t, r)["sz"])
	assert.Equal(t, "base_ccy", body(t, r)["tgtCcy"])

	sell := OrderParams{Symbol: "BTC/USDT", Type: "market", Side: model.SideSell, Amount: "0.5"}
	r, err = b.CreateOrder(sell)
	require.NoError(t, err)
	assert.Equal(t, "0.5", body(t, r)["sz"])
	assert.NotContains(t, body(t, r), "tgtCcy")
}

func TestCreateOrderRounding(t *testing.T) {
	b := testBuilder(t)
	r, err := b.CreateOrder(OrderParams{Symbol: "BTC/USDT", Type: "limit", Side: model.SideBuy,
		Amount: "0.123456789", Price: "2566.313"})
	require.NoError(t, err)
	fields := body(t, r)
	assert.Equal(t, "2566.3", fields["px"])
	assert.Equal(t, "0.12345678", fields["sz"])

	_, err = b.CreateOrder(OrderParams{Symbol: "BTC/USDT", Type: "limit", Side: model.SideBuy,
		Amount: "0.000000001", Price: "2566"})
	assert.True(t, errors.Is(err, errs.ErrInvalidOrder))

	_, err = b.CreateOrder(OrderParams{Symbol: "BTC/USDT", Type: "limit", Side: model.SideBuy, Amount: "1"})
	assert.True(t, errors.Is(err, errs.ErrArgumentsRequired))

	_, err = b.CreateOrder(OrderParams{Symbol: "BTC/USDT", Type: "limit", Side: model.SideBuy, Amount: "1", Price: "abc"})
	assert.True(t, errors.Is(err, errs.ErrInvalidPrecision))

	_, err = b.CreateOrder(OrderParams{Symbol: "DOGE/USDT", Type: "limit", Side: model.SideBuy, Amount: "1", Price: "1"})
	assert.True(t, errors.Is(err, errs.ErrBadSymbol))
}

func TestToPrecision(t *testing.T) {
	b := testBuilder(t)
	spot, err := b.ToPrecision("BTC-USDT", "2566.313", "0.123456789")
	require.NoError(t, err)
	assert.Equal(t, "BTC/USDT", spot.Symbol)
	assert.Equal(t, "2566.3", spot.Price)
	assert.Equal(t, "0.12345678", spot.Amount)
	assert.True(t, dec("316.8").Decimal.Equal(dec(spot.Cost).Decimal), spot.Cost)

	swap, err := b.ToPrecision("BTC/USDT:USDT", "30000.06", "2.7")
	require.NoError(t, err)
	assert.Equal(t, "30000.1", swap.Price)
	assert.Equal(t, "2", swap.Amount)
	assert.True(t, dec("600").Decimal.Equal(dec(swap.Cost).Decimal), swap.Cost)

	priceOnly, err := b.ToPrecision("BTC/USDT", "1.26", "")
	require.NoError(t, err)
	assert.Equal(t, "1.3", priceOnly.Price)
	assert.Empty(t, priceOnly.Cost)

	_, err = b.ToPrecision("BTC/USDT", "", "0.000000001")
	assert.True(t, errors.Is(err, errs.ErrInvalidOrder))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		o      OrderParams
		family Family
	}{
		{"plain", OrderParams{Type: "limit"}, FamilyPlain},
		{"post only flag", OrderParams{Type: "limit", Params: Params{"postOnly": true, "triggerPrice": "1"}}, FamilyPostOnly},
		{"post only type", OrderParams{Type: "post_only"}, FamilyPostOnly},
		{"ioc over attached", OrderParams{Type: "limit", Params: Params{"timeInForce": "IOC", "stopLoss": "1"}}, FamilyTimeInForce},
		{"attached over trigger", OrderParams{Type: "limit", Params: Params{"takeProfit": "2", "triggerPrice": "1"}}, FamilyAttached},
		{"trigger over conditional", OrderParams{Type: "limit", Params: Params{"triggerPrice": "1", "takeProfitPrice": "2"}}, FamilyTrigger},
		{"conditional", OrderParams{Type: "market", Params: Params{"stopLossPrice": "1"}}, FamilyConditional},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.family, Classify(tt.o))
		})
	}
}

func TestCreateOrderFamilies(t *testing.T) {
	b := testBuilder(t)
	base := OrderParams{Symbol: "BTC/USDT:USDT", Type: "limit", Side: model.SideBuy, Amount: "2", Price: "30000.04"}

	trig := base
	trig.Params = Params{"triggerPrice": "29999.96", "takeProfitPrice": "31000"}
	r, err := b.CreateOrder(trig)
	require.NoError(t, err)
	require.Equal(t, profile.EndpointPlaceAlgoOrder, r.Endpoint)
	fields := body(t, r)
	assert.Equal(t, "trigger", fields["ordType"])
	assert.Equal(t, "30000", fields["triggerPx"])
	assert.Equal(t, "30000", fields["orderPx"])
	assert.Equal(t, "cid1", fields["algoClOrdId"])
	assert.NotContains(t, fields, "tpTriggerPx")
	assert.NotContains(t, fields, "px")

	oco := base
	oco.Type = "market"
	oco.Params = Params{"stopLossPrice": "25000", "takeProfitPrice": "35000"}
	r, err = b.CreateOrder(oco)
	require.NoError(t, err)
	fields = body(t, r)
	assert.Equal(t, "oco", fields["ordType"])
	assert.Equal(t, "-1", fields["slOrdPx"])
	assert.Equal(t, "35000", fields["tpTriggerPx"])

	attached := base
	attached.Params = Params{"stopLoss": map[string]interface{}{"triggerPrice": "25000", "price": "24900"}, "takeProfit": "35000"}
	r, err = b.CreateOrder(attached)
	require.NoError(t, err)
	require.Equal(t, profile.EndpointPlaceOrder, r.Endpoint)
	fields = body(t, r)
	legs, ok := fields["attachAlgoOrds"].([]interface{})
	require.True(t, ok)
	leg := legs[0].(native.Object)
	assert.Equal(t, "25000", leg["slTriggerPx"])
	assert.Equal(t, "24900", leg["slOrdPx"])
	assert.Equal(t, "-1", leg["tpOrdPx"])

	ioc := base
	ioc.Type = "market"
	ioc.Params = Params{"timeInForce": "IOC"}
	r, err = b.CreateOrder(ioc)
	require.NoError(t, err)
	assert.Equal(t, "optimal_limit_ioc", body(t, r)["ordType"])

	po := base
	po.Params = Params{"postOnly": true}
	r, err = b.CreateOrder(po)
	require.NoError(t, err)
	assert.Equal(t, "post_only", body(t, r)["ordType"])

	po.Type = "market"
	_, err = b.CreateOrder(po)
	assert.True(t, errors.Is(err, errs.ErrInvalidOrder))

	po.Type = "limit"
	po.Params = Params{"postOnly": true, "timeInForce": "FOK"}
	_, err = b.CreateOrder(po)
	assert.True(t, errors.Is(err, errs.ErrInvalidOrder))
}

func TestCreateOrderAlgoLimitNeedsPrice(t *testing.T) {
	b := testBuilder(t)
	tests := []struct {
		name   string
		params Params
	}{
		{"trigger", Params{"triggerPrice": "25000"}},
		{"stop loss", Params{"stopLossPrice": "25000"}},
		{"oco", Params{"stopLossPrice": "25000", "takeProfitPrice": "35000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := OrderParams{Symbol: "BTC/USDT:USDT", Type: "limit", Side: model.SideBuy, Amount: "1", Params: tt.params}
			r, err := b.CreateOrder(o)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, errs.ErrArgumentsRequired))

			o.Type = "market"
			r, err = b.CreateOrder(o)
			require.NoError(t, err)
			fields := body(t, r)
			for _, key := range []string{"orderPx", "slOrdPx", "tpOrdPx"} {
				if v, ok := fields[key]; ok {
					assert.Equal(t, "-1", v, key)
				}
			}
		})
	}
}

func TestClientOrderID(t *testing.T) {
	p := profile.OKX()
	b := New(p, registry.NewMarketRegistry(nil), registry.NewCurrencyRegistry(nil))
	id := b.defaultClientID()
	assert.Regexp(t, regexp.MustCompile(`^`+p.Options.BrokerID+`[0-9a-f]{16}$`), id)
	assert.NotEqual(t, id, b.defaultClientID())

	tb := testBuilder(t)
	r, err := tb.CreateOrder(OrderParams{Symbol: "BTC/USDT", Type: "limit", Side: model.SideSell, Amount: "1", Price: "1",
		Params: Params{"clientOrderId": "mine"}})
	require.NoError(t, err)
	assert.Equal(t, "mine", body(t, r)["clOrdId"])
	assert.Equal(t, p.Options.BrokerID, body(t, r)["tag"])
}

func TestCreateOrders(t *testing.T) {
	b := testBuilder(t)
	orders := []OrderParams{
		{Symbol: "BTC/USDT", Type: "limit", Side: model.SideBuy, Amount: "1", Price: "100"},
		{Symbol: "BTC/USDT:USDT", Type: "limit", Side: model.SideSell, Amount: "3", Price: "200"},
	}
	r, err := b.CreateOrders(orders)
	require.NoError(t, err)
	require.Equal(t, "/api/v5/trade/batch-orders", r.Path)
	items, ok := r.Body.([]interface{})
	require.True(t, ok)
	require.Len(t, items, 2)
	require.Len(t, r.Markets, 2)
	assert.Equal(t, "BTC-USDT-SWAP", items[1].(native.Object)["instId"])

	orders[1].Params = Params{"triggerPrice": "190"}
	_, err = b.CreateOrders(orders)
	assert.True(t, errors.Is(err, errs.ErrInvalidOrder))

	_, err = b.CreateOrders(nil)
	assert.True(t, errors.Is(err, errs.ErrArgumentsRequired))
}

func TestMarginMode(t *testing.T) {
	b := testBuilder(t)
	tests := []struct {
		name, symbol string
		params       Params
		want         string
	}{
		{"swap default", "BTC/USDT:USDT", nil, "cross"},
		{"swap isolated", "BTC/USDT:USDT", Params{"marginMode": "isolated"}, "isolated"},
		{"spot default", "BTC/USDT", nil, "cash"},
		{"spot margin", "BTC/USDT", Params{"margin": true}, "cross"},
		{"spot explicit", "BTC/USDT", Params{"tdMode": "isolated"}, "isolated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := b.CreateOrder(OrderParams{Symbol: tt.symbol, Type: "limit", Side: model.SideBuy, Amount: "1", Price: "1", Params: tt.params})
			require.NoError(t, err)
			assert.Equal(t, tt.want, body(t, r)["tdMode"])
		})
	}

	_, err := b.CreateOrder(OrderParams{Symbol: "BTC/USDT:USDT", Type: "limit", Side: model.SideBuy, Amount: "1", Price: "1",
		Params: Params{"marginMode": "cash"}})
	assert.True(t, errors.Is(err, errs.ErrInvalidOrder))
}

func TestCancelAndEdit(t *testing.T) {
	b := testBuilder(t)
	r, err := b.CancelOrder("123", "BTC/USDT", nil)
	require.NoError(t, err)
	assert.Equal(t, native.Object{"instId": "BTC-USDT", "ordId": "123"}, body(t, r))

	r, err = b.CancelOrder("", "BTC/USDT", Params{"clientOrderId": "abc"})
	require.NoError(t, err)
	assert.Equal(t, native.Object{"instId": "BTC-USDT", "clOrdId": "abc"}, body(t, r))

	r, err = b.CancelOrder("77", "BTC/USDT", Params{"trigger": true})
	require.NoError(t, err)
	assert.Equal(t, "/api/v5/trade/cancel-algos", r.Path)

	_, err = b.CancelOrder("1", "", nil)
	assert.True(t, errors.Is(err, errs.ErrArgumentsRequired))

	r, err = b.CancelOrders([]string{"1", "2"}, "BTC/USDT", nil)
	require.NoError(t, err)
	assert.Len(t, r.Body, 2)

	r, err = b.EditOrder("123", OrderParams{Symbol: "BTC/USDT", Amount: "0.123456789", Price: "100.06"})
	require.NoError(t, err)
	fields := body(t, r)
	assert.Equal(t, "0.12345678", fields["newSz"])
	assert.Equal(t, "100.1", fields["newPx"])

	_, err = b.EditOrder("123", OrderParams{Symbol: "BTC/USDT"})
	assert.True(t, errors.Is(err, errs.ErrArgumentsRequired))

	r, err = b.FetchOrder("9", "BTC/USDT", Params{"stop": true})
	require.NoError(t, err)
	assert.Equal(t, profile.EndpointAlgoOrderDetails, r.Endpoint)
	assert.Equal(t, "9", r.Query["algoId"])

	r, err = b.FetchClosedOrders("", 1690000000000, 50, Params{"archive": true})
	require.NoError(t, err)
	assert.Equal(t, profile.EndpointOrderHistoryArchive, r.Endpoint)
	assert.Equal(t, "SPOT", r.Query["instType"])
	assert.Equal(t, "1690000000000", r.Query["begin"])
	assert.Equal(t, "50", r.Query["limit"])
}

func TestFetchOHLCV(t *testing.T) {
	b := testBuilder(t)
	r, err := b.FetchOHLCV("BTC/USDT", "1h", 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, profile.EndpointCandles, r.Endpoint)
	assert.Equal(t, "1H", r.Query["bar"])
	assert.Equal(t, "100", r.Query["limit"])

	r, err = b.FetchOHLCV("BTC/USDT", "1d", 1600000000000, 500, nil)
	require.NoError(t, err)
	assert.Equal(t, profile.EndpointHistoryCandles, r.Endpoint)
	assert.Equal(t, "1Dutc", r.Query["bar"])
	assert.Equal(t, "100", r.Query["limit"])
	assert.Equal(t, "1599999999999", r.Query["before"])

	_, err = b.FetchOHLCV("BTC/USDT", "7m", 0, 0, nil)
	assert.True(t, errors.Is(err, errs.ErrBadRequest))

	period, err := Period("15m")
	require.NoError(t, err)
	assert.Equal(t, "15m", b.profile.Bars[period])
}

func TestFundsRequests(t *testing.T) {
	b := testBuilder(t)
	r, err := b.Transfer("USDT", "10.1234567", "funding", "trading", nil)
	require.NoError(t, err)
	fields := body(t, r)
	assert.Equal(t, "6", fields["from"])
	assert.Equal(t, "18", fields["to"])
	assert.Equal(t, "10.123457", fields["amt"])

	r, err = b.Withdraw("USDT", "25", "TXabc", "", nil)
	require.NoError(t, err)
	fields = body(t, r)
	assert.Equal(t, "USDT-TRC20", fields["chain"])
	assert.Equal(t, "1", fields["fee"])
	assert.Equal(t, "TXabc", fields["toAddr"])

	_, err = b.Withdraw("BTC", "1", "bc1q", "", nil)
	assert.True(t, errors.Is(err, errs.ErrArgumentsRequired))

	for i := 0; i < 50; i++ {
		r, err = b.Withdraw("USDT", "25", "0xabc", "", Params{"network": "BEP20", "fee": "0.8"})
		require.NoError(t, err)
		require.Equal(t, "USDT-BSC", body(t, r)["chain"])
		r, err = b.Withdraw("BTC", "1", "bc1q", "", Params{"network": "BTC", "fee": "0.0002"})
		require.NoError(t, err)
		require.Equal(t, "BTC-Bitcoin", body(t, r)["chain"])
	}

	_, err = b.Withdraw("XRP", "1", "r1", "", nil)
	assert.True(t, errors.Is(err, errs.ErrBadRequest))

	r, err = b.FetchBalance(Params{"type": "funding"})
	require.NoError(t, err)
	assert.Equal(t, profile.EndpointFundingBalance, r.Endpoint)
}

func TestSetLeverage(t *testing.T) {
	b := testBuilder(t)
	r, err := b.SetLeverage("10", "BTC/USDT:USDT", nil)
	require.NoError(t, err)
	assert.Equal(t, native.Object{"lever": "10", "mgnMode": "cross", "instId": "BTC-USDT-SWAP"}, body(t, r))

	for _, lev := range []string{"0.5", "101"} {
		_, err = b.SetLeverage(lev, "BTC/USDT:USDT", nil)
		assert.Truef(t, errors.Is(err, errs.ErrInvalidOrder), "leverage %s", lev)
	}
	_, err = b.SetLeverage("5", "BTC/USDT:USDT", Params{"marginMode": "cash"})
	assert.True(t, errors.Is(err, errs.ErrBadRequest))
}

func TestParamsUntouched(t *testing.T) {
	b := testBuilder(t)
	params := Params{"tgtCcy": "quote_ccy", "clientOrderId": "x", "postOnly": false}
	_, err := b.CreateOrder(OrderParams{Symbol: "BTC/USDT", Type: "market", Side: model.SideBuy, Amount: "1", Price: "2", Params: params})
	require.NoError(t, err)
	assert.Equal(t, Params{"tgtCcy": "quote_ccy", "clientOrderId": "x", "postOnly": false}, params)
}
