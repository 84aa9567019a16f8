package parser

import (
	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/precise"
	"exchangenorm/src/profile"
)

// ParseOrder reads a regular or algo order record. Quote-sized market buys
// carry their notional in Cost and leave Amount to the fills.
func (p *Parser) ParseOrder(row native.Object, hint *model.Market) model.Order {
	f := p.profile.Orders
	m := p.market(native.String(row, f.Symbol), native.String(row, f.InstType), hint)
	created := native.Int64(row, f.Created)
	side := model.Side(native.String(row, f.Side))
	nativeType := native.String(row, f.Type)

	o := model.Order{
		ID:                  native.String(row, f.AlgoID, f.ID),
		ClientOrderID:       native.String(row, f.ClientID, f.AlgoClientID),
		Timestamp:           created,
		Datetime:            datetime(created),
		LastTradeTimestamp:  native.Int64(row, f.LastFill),
		LastUpdateTimestamp: native.Int64(row, f.Updated),
		Symbol:              m.Symbol,
		Side:                side,
		TimeInForce:         p.profile.OrderTimeInForce[nativeType],
		PostOnly:            p.profile.OrderTimeInForce[nativeType] == "PO",
		TriggerPrice:        native.ToDecimal(positive(native.Number(row, f.TriggerPrice))),
		TakeProfitPrice:     native.ToDecimal(positive(native.Number(row, f.TakeProfitTrigger))),
		StopLossPrice:       native.ToDecimal(positive(native.Number(row, f.StopLossTrigger))),
		Status:              p.enum("order status", p.profile.OrderStatuses, native.String(row, f.Status)),
		Fee:                 p.fee(profile.RecordOrder, native.Number(row, f.Fee), native.String(row, f.FeeCurrency)),
		Info:                row,
	}
	o.ReduceOnly, _ = native.Bool(row, f.ReduceOnly)

	price := positive(native.Number(row, f.Price))
	if p.profile.AlgoOrderTypes[nativeType] {
		// Algo orders price the triggered order; -1 means market.
		price = positive(native.Number(row, f.OrderPrice))
		o.Type = "limit"
		if price == "" {
			o.Type = "market"
		}
	} else {
		o.Type = p.enum("order type", p.profile.OrderTypes, nativeType)
	}
	o.Price = native.ToDecimal(price)

	filled := native.Number(row, f.Filled)
	average := positive(native.Number(row, f.Average))
	size := native.Number(row, f.Amount)
	o.QuoteSized = o.Type == "market" && side == model.SideBuy &&
		native.String(row, f.TargetCurrency) == f.QuoteSizeValue

	var amount, cost, remaining string
	if o.QuoteSized {
		cost = size
		if o.Status == model.OrderStatusClosed {
			amount, remaining = filled, "0"
		}
	} else {
		amount = size
		if amount != "" && filled != "" {
			remaining = precise.Sub(amount, filled)
		}
		switch {
		case average != "" && filled != "":
			cost = contractCost(m, filled, average)
		case price != "" && filled != "":
			cost = contractCost(m, filled, price)
		}
	}
	o.Amount = native.ToDecimal(amount)
	o.Filled = native.ToDecimal(filled)
	o.Remaining = native.ToDecimal(remaining)
	o.Cost = native.ToDecimal(cost)
	o.Average = native.ToDecimal(average)
	return o
}

func (p *Parser) ParseOrders(rows []native.Object, hint *model.Market) []model.Order {
	out := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, p.ParseOrder(row, hint))
	}
	return out
}

// ParseOrderResults reads a batch response element by element. Elements with
// a failing per-element code carry a classified error and whatever ids the
// exchange echoed back; the others parse as orders. hints line up with rows.
func (p *Parser) ParseOrderResults(rows []native.Object, hints []*model.Market) []model.OrderResult {
	env := p.profile.Envelope
	mapper := p.profile.Mapper()
	out := make([]model.OrderResult, 0, len(rows))
	for i, row := range rows {
		var hint *model.Market
		if i < len(hints) {
			hint = hints[i]
		}
		o := p.ParseOrder(row, hint)
		code := native.String(row, env.ElementCode)
		if code == "" || code == env.SuccessCode {
			out = append(out, model.OrderResult{Order: &o})
			continue
		}
		failed := &model.Order{
			ID:            o.ID,
			ClientOrderID: o.ClientOrderID,
			Symbol:        o.Symbol,
			Status:        model.OrderStatusRejected,
			Info:          row,
		}
		out = append(out, model.OrderResult{
			Order: failed,
			Err:   mapper.ClassifyElement(code, native.String(row, env.ElementMessage)),
		})
	}
	return out
}
