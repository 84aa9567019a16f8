package builder

import (
	"strings"

	"exchangenorm/src/errs"
	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/precise"
	"exchangenorm/src/profile"
)

// OrderParams are the unified inputs of one order.
type OrderParams struct {
	Symbol string
	Type   string
	Side   model.Side
	Amount string
	Price  string
	Params Params
}

// Family is the native order family an order is placed as. Families are
// mutually exclusive.
type Family int

const (
	FamilyPlain Family = iota
	FamilyPostOnly
	FamilyTimeInForce
	FamilyAttached
	FamilyTrigger
	FamilyConditional
)

var familyNames = [...]string{"plain", "post-only", "time-in-force", "attached", "trigger", "conditional"}

func (f Family) String() string {
	if int(f) < 0 || int(f) >= len(familyNames) {
		return "unknown"
	}
	return familyNames[f]
}

// Algo reports whether the family goes through the algo order endpoints.
func (f Family) Algo() bool {
	return f == FamilyTrigger || f == FamilyConditional
}

// unified keys consumed by the order pipeline
var orderKeys = []string{
	"marginMode", "margin", "postOnly", "timeInForce", "stopLoss", "takeProfit",
	"triggerPrice", "stopPrice", "stopLossPrice", "takeProfitPrice", "clientOrderId",
	"cost", "reduceOnly", "createMarketBuyOrderRequiresPrice",
}

// Classify picks the order family. The first matching rule wins: post-only,
// then IOC/FOK, then attached stop-loss/take-profit, then trigger price, then
// one-sided conditional stop-loss/take-profit, then plain limit/market.
func Classify(o OrderParams) Family {
	p := o.Params
	tif := strings.ToUpper(native.String(p, "timeInForce"))
	switch {
	case flag(p, "postOnly") || tif == "PO" || strings.EqualFold(o.Type, "post_only"):
		return FamilyPostOnly
	case tif == "IOC" || tif == "FOK":
		return FamilyTimeInForce
	case p["stopLoss"] != nil || p["takeProfit"] != nil:
		return FamilyAttached
	case native.String(p, "triggerPrice", "stopPrice") != "":
		return FamilyTrigger
	case native.String(p, "stopLossPrice", "takeProfitPrice") != "":
		return FamilyConditional
	}
	return FamilyPlain
}

// CreateOrder builds a single order placement.
func (b *Builder) CreateOrder(o OrderParams) (*Request, error) {
	fields, m, family, err := b.orderFields(o)
	if err != nil {
		return nil, err
	}
	e := profile.EndpointPlaceOrder
	if family.Algo() {
		e = profile.EndpointPlaceAlgoOrder
	}
	r, err := b.request(e, fields)
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}

// CreateOrders builds one batch placement. Every element runs the single
// order pipeline; algo families cannot ride the batch endpoint.
func (b *Builder) CreateOrders(orders []OrderParams) (*Request, error) {
	if len(orders) == 0 {
		return nil, errs.New(errs.ErrArgumentsRequired, "at least one order is required")
	}
	items := make([]native.Object, 0, len(orders))
	markets := make([]*model.Market, 0, len(orders))
	for i, o := range orders {
		fields, m, family, err := b.orderFields(o)
		if err != nil {
			return nil, err
		}
		if family.Algo() {
			return nil, errs.New(errs.ErrInvalidOrder, "order %d: %s orders cannot be placed in a batch", i, family)
		}
		items = append(items, fields)
		markets = append(markets, m)
	}
	r, err := b.batch(profile.EndpointBatchOrders, items)
	if err != nil {
		return nil, err
	}
	r.Markets = markets
	return r, nil
}

func (b *Builder) orderFields(o OrderParams) (native.Object, *model.Market, Family, error) {
	m, err := b.market(o.Symbol)
	if err != nil {
		return nil, nil, FamilyPlain, err
	}
	if o.Side != model.SideBuy && o.Side != model.SideSell {
		return nil, nil, FamilyPlain, errs.New(errs.ErrArgumentsRequired, "side must be buy or sell, got %q", o.Side)
	}
	if o.Amount == "" {
		return nil, nil, FamilyPlain, errs.New(errs.ErrArgumentsRequired, "amount is required")
	}
	f := b.profile.Orders
	params := o.Params
	orderType := strings.ToLower(o.Type)
	if orderType == "" {
		return nil, nil, FamilyPlain, errs.New(errs.ErrArgumentsRequired, "order type is required")
	}
	isMarket := orderType == "market"
	fields := native.Object{
		f.Symbol: m.ID,
		f.Side:   string(o.Side),
	}

	mode, err := b.marginMode(m, params)
	if err != nil {
		return nil, nil, FamilyPlain, err
	}
	fields[f.MarginMode] = mode

	family := Classify(o)
	tif := strings.ToUpper(native.String(params, "timeInForce"))
	if family == FamilyPostOnly {
		if isMarket {
			return nil, nil, family, errs.New(errs.ErrInvalidOrder, "market orders cannot be post-only")
		}
		if tif == "IOC" || tif == "FOK" {
			return nil, nil, family, errs.New(errs.ErrInvalidOrder, "post-only orders cannot use time in force %s", tif)
		}
	}

	price := ""
	if o.Price != "" && !isMarket {
		if price, err = b.priceToPrecision(m, o.Price); err != nil {
			return nil, nil, family, err
		}
	}
	// Algo legs without a price execute at market, so only market orders may omit it.
	if price == "" && !isMarket {
		return nil, nil, family, errs.New(errs.ErrArgumentsRequired, "%s orders require a price", orderType)
	}

	switch family {
	case FamilyPostOnly:
		fields[f.Type] = "post_only"
	case FamilyTimeInForce:
		switch {
		case !isMarket:
			fields[f.Type] = strings.ToLower(tif)
		case m.Contract && tif == "IOC":
			fields[f.Type] = "optimal_limit_ioc"
		default:
			fields[f.Type] = "market"
		}
	case FamilyAttached:
		fields[f.Type] = orderType
		algo, err := b.attachedAlgo(m, params)
		if err != nil {
			return nil, nil, family, err
		}
		fields[f.AttachedAlgos] = []interface{}{algo}
	case FamilyTrigger:
		trigger, err := b.priceToPrecision(m, native.String(params, "triggerPrice", "stopPrice"))
		if err != nil {
			return nil, nil, family, err
		}
		fields[f.Type] = "trigger"
		fields[f.TriggerPrice] = trigger
		fields[f.OrderPrice] = marketOr(price)
	case FamilyConditional:
		if err := b.conditional(m, params, price, fields); err != nil {
			return nil, nil, family, err
		}
	default:
		fields[f.Type] = orderType
	}
	if price != "" && !family.Algo() {
		fields[f.Price] = price
	}

	size, quoteSized, err := b.orderSize(m, o, isMarket)
	if err != nil {
		return nil, nil, family, err
	}
	fields[f.Amount] = size
	if quoteSized {
		fields[f.TargetCurrency] = f.QuoteSizeValue
	}

	idKey := f.ClientID
	if family.Algo() {
		idKey = f.AlgoClientID
	}
	clientID := native.String(params, "clientOrderId", f.ClientID, f.AlgoClientID)
	if clientID == "" {
		clientID = b.clientID()
	}
	fields[idKey] = clientID
	if b.profile.Options.BrokerID != "" {
		fields["tag"] = b.profile.Options.BrokerID
	}
	if flag(params, "reduceOnly") {
		fields[f.ReduceOnly] = true
	}

	consumed := append([]string{f.MarginMode, f.ClientID, f.AlgoClientID}, orderKeys...)
	rest := native.Omit(params, consumed...)
	return native.Extend(fields, rest), m, family, nil
}

// marginMode resolves cross/isolated/cash. Spot orders trade with borrowing
// only when a margin mode is asked for explicitly or margin is set.
func (b *Builder) marginMode(m *model.Market, params Params) (string, error) {
	f := b.profile.Orders
	explicit := strings.ToLower(native.String(params, "marginMode", f.MarginMode))
	def := strings.ToLower(b.profile.Options.DefaultMarginMode)
	if m.Contract {
		mode := explicit
		if mode == "" {
			mode = def
		}
		switch mode {
		case "", "cash":
			if explicit == "cash" {
				return "", errs.New(errs.ErrInvalidOrder, "%s is a contract market, cash mode is not available", m.Symbol)
			}
			return "cross", nil
		}
		return mode, nil
	}
	if explicit != "" {
		return explicit, nil
	}
	if flag(params, "margin") {
		if def == "" || def == "cash" {
			return "cross", nil
		}
		return def, nil
	}
	return "cash", nil
}

// orderSize decides the native size. Spot market buys are sized by quote
// notional unless the caller asks for base units.
func (b *Builder) orderSize(m *model.Market, o OrderParams, isMarket bool) (string, bool, error) {
	f := b.profile.Orders
	params := o.Params
	quoteSized := false
	if m.Spot && isMarket && o.Side == model.SideBuy {
		quoteSized = option(params, "", f.QuoteSizeValue, f.TargetCurrency) == f.QuoteSizeValue
	}
	if !quoteSized {
		size, err := b.amountToPrecision(m, o.Amount)
		return size, false, err
	}

	requiresPrice := b.profile.Options.CreateMarketBuyOrderRequiresPrice
	if v, ok := native.Bool(params, "createMarketBuyOrderRequiresPrice"); ok {
		requiresPrice = v
	}
	if cost := native.Number(params, "cost"); cost != "" {
		size, err := b.costToPrecision(m, cost)
		return size, true, err
	}
	if !requiresPrice {
		return o.Amount, true, nil
	}
	if o.Price == "" {
		return "", true, errs.New(errs.ErrInvalidOrder,
			"market buy orders on %s are sized in %s, pass a price to compute amount * price, or a cost param, or set createMarketBuyOrderRequiresPrice to false to send amount as the cost",
			m.Symbol, m.Quote)
	}
	notional := precise.Mul(o.Amount, o.Price)
	if notional == "" {
		return "", true, errs.New(errs.ErrInvalidOrder, "cannot compute notional from amount %q and price %q", o.Amount, o.Price)
	}
	size, err := b.costToPrecision(m, notional)
	return size, true, err
}

// attachedAlgo renders stopLoss/takeProfit params, each either a trigger
// price or an object with triggerPrice and an optional price.
func (b *Builder) attachedAlgo(m *model.Market, params Params) (native.Object, error) {
	f := b.profile.Orders
	algo := native.Object{}
	legs := []struct {
		key, trigger, price string
	}{
		{"takeProfit", f.TakeProfitTrigger, "tpOrdPx"},
		{"stopLoss", f.StopLossTrigger, "slOrdPx"},
	}
	for _, leg := range legs {
		raw, ok := params[leg.key]
		if !ok || raw == nil {
			continue
		}
		trigger, limit := native.ToString(raw), ""
		if obj, isObj := raw.(map[string]interface{}); isObj {
			trigger = native.String(obj, "triggerPrice", "stopPrice")
			limit = native.String(obj, "price")
		}
		if trigger == "" {
			return nil, errs.New(errs.ErrInvalidOrder, "%s requires a trigger price", leg.key)
		}
		tp, err := b.priceToPrecision(m, trigger)
		if err != nil {
			return nil, err
		}
		algo[leg.trigger] = tp
		if limit != "" {
			if limit, err = b.priceToPrecision(m, limit); err != nil {
				return nil, err
			}
		}
		algo[leg.price] = marketOr(limit)
	}
	return algo, nil
}

// conditional fills a one-sided stop-loss or take-profit, or an oco pair.
func (b *Builder) conditional(m *model.Market, params Params, price string, fields native.Object) error {
	f := b.profile.Orders
	sl := native.String(params, "stopLossPrice")
	tp := native.String(params, "takeProfitPrice")
	fields[f.Type] = "conditional"
	if sl != "" && tp != "" {
		fields[f.Type] = "oco"
	}
	if sl != "" {
		v, err := b.priceToPrecision(m, sl)
		if err != nil {
			return err
		}
		fields[f.StopLossTrigger] = v
		fields["slOrdPx"] = marketOr(price)
	}
	if tp != "" {
		v, err := b.priceToPrecision(m, tp)
		if err != nil {
			return err
		}
		fields[f.TakeProfitTrigger] = v
		fields["tpOrdPx"] = marketOr(price)
	}
	return nil
}

// marketOr is the order price of an algo leg, -1 meaning execute at market.
func marketOr(price string) string {
	if price == "" {
		return "-1"
	}
	return price
}

// CancelOrder cancels by order id, or by client id passed as clientOrderId.
func (b *Builder) CancelOrder(id, symbol string, params Params) (*Request, error) {
	m, err := b.market(symbol)
	if err != nil {
		return nil, err
	}
	f := b.profile.Orders
	if flag(params, "trigger", "stop") {
		if id == "" {
			return nil, errs.New(errs.ErrArgumentsRequired, "algo order id is required")
		}
		r, err := b.batch(profile.EndpointCancelAlgoOrders, []native.Object{{f.AlgoID: id, f.Symbol: m.ID}})
		if err != nil {
			return nil, err
		}
		r.Market = m
		return r, nil
	}
	fields := native.Object{f.Symbol: m.ID}
	if err := b.orderRef(fields, id, params); err != nil {
		return nil, err
	}
	r, err := b.request(profile.EndpointCancelOrder, native.Extend(fields, native.Omit(params, "trigger", "stop", "clientOrderId", f.ClientID)))
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}

// CancelOrders cancels several orders of one market in one batch.
func (b *Builder) CancelOrders(ids []string, symbol string, params Params) (*Request, error) {
	if len(ids) == 0 {
		return nil, errs.New(errs.ErrArgumentsRequired, "at least one order id is required")
	}
	if len(ids) > 20 {
		return nil, errs.New(errs.ErrBadRequest, "at most 20 orders can be canceled at once, got %d", len(ids))
	}
	m, err := b.market(symbol)
	if err != nil {
		return nil, err
	}
	f := b.profile.Orders
	e, idKey := profile.EndpointBatchCancelOrders, f.ID
	if flag(params, "trigger", "stop") {
		e, idKey = profile.EndpointCancelAlgoOrders, f.AlgoID
	}
	items := make([]native.Object, 0, len(ids))
	markets := make([]*model.Market, 0, len(ids))
	for _, id := range ids {
		items = append(items, native.Object{f.Symbol: m.ID, idKey: id})
		markets = append(markets, m)
	}
	r, err := b.batch(e, items)
	if err != nil {
		return nil, err
	}
	r.Market, r.Markets = m, markets
	return r, nil
}

// EditOrder amends size, price or attached triggers of a live order.
func (b *Builder) EditOrder(id string, o OrderParams) (*Request, error) {
	m, err := b.market(o.Symbol)
	if err != nil {
		return nil, err
	}
	if flag(o.Params, "trigger", "stop") {
		return nil, errs.New(errs.ErrNotSupported, "editing algo orders is not supported")
	}
	f := b.profile.Orders
	fields := native.Object{f.Symbol: m.ID}
	if err := b.orderRef(fields, id, o.Params); err != nil {
		return nil, err
	}
	if o.Amount != "" {
		if fields["newSz"], err = b.amountToPrecision(m, o.Amount); err != nil {
			return nil, err
		}
	}
	if o.Price != "" {
		if fields["newPx"], err = b.priceToPrecision(m, o.Price); err != nil {
			return nil, err
		}
	}
	if tp := native.String(o.Params, "takeProfitPrice"); tp != "" {
		if fields["newTpTriggerPx"], err = b.priceToPrecision(m, tp); err != nil {
			return nil, err
		}
	}
	if sl := native.String(o.Params, "stopLossPrice"); sl != "" {
		if fields["newSlTriggerPx"], err = b.priceToPrecision(m, sl); err != nil {
			return nil, err
		}
	}
	if len(fields) == 2 {
		return nil, errs.New(errs.ErrArgumentsRequired, "nothing to edit, pass amount, price or trigger prices")
	}
	rest := native.Omit(o.Params, "clientOrderId", f.ClientID, "takeProfitPrice", "stopLossPrice")
	r, err := b.request(profile.EndpointAmendOrder, native.Extend(fields, rest))
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}

func (b *Builder) orderRef(fields native.Object, id string, params Params) error {
	f := b.profile.Orders
	if cid := native.String(params, "clientOrderId", f.ClientID); cid != "" {
		fields[f.ClientID] = cid
		return nil
	}
	if id == "" {
		return errs.New(errs.ErrArgumentsRequired, "order id or clientOrderId is required")
	}
	fields[f.ID] = id
	return nil
}

// FetchOrder looks up one order of a market.
func (b *Builder) FetchOrder(id, symbol string, params Params) (*Request, error) {
	m, err := b.market(symbol)
	if err != nil {
		return nil, err
	}
	f := b.profile.Orders
	var r *Request
	if flag(params, "trigger", "stop") {
		r, err = b.request(profile.EndpointAlgoOrderDetails, native.Extend(native.Object{f.AlgoID: id}, native.Omit(params, "trigger", "stop")))
	} else {
		fields := native.Object{f.Symbol: m.ID}
		if err = b.orderRef(fields, id, params); err != nil {
			return nil, err
		}
		r, err = b.request(profile.EndpointOrderDetails, native.Extend(fields, native.Omit(params, "clientOrderId", f.ClientID)))
	}
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}

// FetchOpenOrders lists live orders, optionally of one market.
func (b *Builder) FetchOpenOrders(symbol string, since int64, limit int, params Params) (*Request, error) {
	return b.orderList(symbol, limit, params, false)
}

// FetchClosedOrders lists finished orders. archive selects the long history.
func (b *Builder) FetchClosedOrders(symbol string, since int64, limit int, params Params) (*Request, error) {
	r, err := b.orderList(symbol, limit, params, true)
	if err != nil {
		return nil, err
	}
	if since > 0 && r.Endpoint != profile.EndpointAlgoOrderHistory {
		paging(r.Query, "begin", since, 0)
	}
	return r, nil
}

func (b *Builder) orderList(symbol string, limit int, params Params, closed bool) (*Request, error) {
	var m *model.Market
	if symbol != "" {
		var err error
		if m, err = b.market(symbol); err != nil {
			return nil, err
		}
	}
	f := b.profile.Orders
	fields := native.Object{}
	if m != nil {
		fields[f.Symbol] = m.ID
	}
	trigger := flag(params, "trigger", "stop")
	conditional := flag(params, "conditional")
	var e profile.Endpoint
	switch {
	case (trigger || conditional) && closed:
		e = profile.EndpointAlgoOrderHistory
		fields["state"] = "effective"
	case trigger || conditional:
		e = profile.EndpointOpenAlgoOrders
	case closed && flag(params, "archive"):
		e = profile.EndpointOrderHistoryArchive
	case closed:
		e = profile.EndpointOrderHistory
	default:
		e = profile.EndpointOpenOrders
	}
	if trigger || conditional {
		fields[f.Type] = "trigger"
		if conditional {
			fields[f.Type] = "conditional"
		}
	}
	if closed || m != nil {
		fields[f.InstType] = b.nativeType(params, m)
	}
	paging(fields, "", 0, limit)
	r, err := b.request(e, native.Extend(fields, native.Omit(params, "trigger", "stop", "conditional", "archive", "type")))
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}

// FetchTrades lists recent public trades of a market.
func (b *Builder) FetchTrades(symbol string, since int64, limit int, params Params) (*Request, error) {
	m, err := b.market(symbol)
	if err != nil {
		return nil, err
	}
	fields := native.Object{b.profile.Trades.Symbol: m.ID}
	paging(fields, "", 0, limit)
	r, err := b.request(profile.EndpointPublicTrades, native.Extend(fields, params))
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}

// FetchMyTrades lists the account's fills. archive selects the long history.
func (b *Builder) FetchMyTrades(symbol string, since int64, limit int, params Params) (*Request, error) {
	var m *model.Market
	if symbol != "" {
		var err error
		if m, err = b.market(symbol); err != nil {
			return nil, err
		}
	}
	f := b.profile.Trades
	fields := native.Object{}
	e := profile.EndpointFills
	if flag(params, "archive") {
		e = profile.EndpointFillsHistory
		fields[f.InstType] = b.nativeType(params, m)
	}
	if m != nil {
		fields[f.Symbol] = m.ID
		fields[f.InstType] = b.nativeType(params, m)
	}
	paging(fields, "begin", since, limit)
	r, err := b.request(e, native.Extend(fields, native.Omit(params, "archive", "type")))
	if err != nil {
		return nil, err
	}
	r.Market = m
	return r, nil
}
