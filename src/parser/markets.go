package parser

import (
	"strings"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"exchangenorm/src/errs"
	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/registry"
)

// ParseMarket builds a market from one instruments row. Contract markets
// take base and quote from the underlying; settlement in the quote currency
// makes them linear.
func (p *Parser) ParseMarket(row native.Object) (model.Market, error) {
	f := p.profile.Markets
	id := native.String(row, f.ID)
	if id == "" {
		return model.Market{}, errs.New(errs.ErrBadResponse, "instrument row without %s", f.ID)
	}
	t := p.profile.MarketType(native.String(row, f.InstType))
	if t == "" {
		return model.Market{}, errs.New(errs.ErrBadResponse, "instrument %s has unknown type %q", id, native.String(row, f.InstType))
	}
	m := model.Market{
		ID:     id,
		Type:   t,
		Spot:   t == model.MarketSpot,
		Margin: t == model.MarketMargin,
		Swap:   t == model.MarketSwap,
		Future: t == model.MarketFuture,
		Option: t == model.MarketOption,
		Active: native.String(row, f.State) == f.LiveState,
		Info:   row,
	}
	m.Contract = m.Swap || m.Future || m.Option

	m.BaseID, m.QuoteID = native.String(row, f.Base), native.String(row, f.Quote)
	if m.Contract {
		uly := native.String(row, f.Underlying, f.Family)
		parts := strings.Split(uly, p.profile.SymbolDelimiter)
		if len(parts) < 2 {
			return model.Market{}, errs.New(errs.ErrBadResponse, "contract %s has no underlying", id)
		}
		m.BaseID, m.QuoteID = parts[0], parts[1]
		m.SettleID = native.String(row, f.Settle)
	}
	if m.BaseID == "" || m.QuoteID == "" {
		return model.Market{}, errs.New(errs.ErrBadResponse, "instrument %s has no base or quote", id)
	}
	m.Base = p.currencies.SafeCurrencyCode(m.BaseID)
	m.Quote = p.currencies.SafeCurrencyCode(m.QuoteID)
	if m.SettleID != "" {
		m.Settle = p.currencies.SafeCurrencyCode(m.SettleID)
	}

	strike := ""
	if m.Contract {
		m.Linear = model.Bool(m.SettleID == m.QuoteID)
		m.Inverse = model.Bool(m.SettleID == m.BaseID)
		m.ContractSize = native.Decimal(row, f.ContractValue)
		if m.Future || m.Option {
			m.Expiry = native.Int64(row, f.Expiry)
			m.ExpiryDatetime = datetime(m.Expiry)
		}
		if m.Option {
			strike = native.Number(row, f.Strike)
			m.Strike = native.ToDecimal(strike)
			m.OptionType = model.OptionPut
			if strings.EqualFold(native.String(row, f.OptionType), "C") {
				m.OptionType = model.OptionCall
			}
		}
	}
	m.Symbol = registry.BuildSymbol(m.Base, m.Quote, m.Settle, m.Expiry, strike, m.OptionType)

	m.Precision.Price = native.Decimal(row, f.TickSize)
	m.Precision.Amount = native.Decimal(row, f.LotSize)
	m.Limits.Amount.Min = native.Decimal(row, f.MinSize)
	m.Limits.Amount.Max = native.ToDecimal(positive(native.Number(row, f.MaxLimitSize)))
	if lever := positive(native.Number(row, f.MaxLeverage)); lever != "" {
		m.Limits.Leverage.Min = decimal.NewNullDecimal(decimal.NewFromInt(1))
		m.Limits.Leverage.Max = native.ToDecimal(lever)
		// Spot instruments with leverage can be traded on margin.
		if m.Spot {
			m.Margin = true
		}
	}
	m.Created = native.Int64(row, f.ListTime)
	return m, nil
}

// ParseMarkets keeps every row that parses; bad rows are logged and skipped.
func (p *Parser) ParseMarkets(rows []native.Object) []model.Market {
	out := make([]model.Market, 0, len(rows))
	for _, row := range rows {
		m, err := p.ParseMarket(row)
		if err != nil {
			logger.WithField("exchange", p.profile.ID).WithError(err).Warn("Skipping instrument")
			continue
		}
		out = append(out, m)
	}
	return out
}

// ParseCurrencies groups per-network currency rows into currencies.
func (p *Parser) ParseCurrencies(rows []native.Object) map[string]model.Currency {
	return p.currencies.BuildFromCurrencyList(rows, p.profile.Currencies, p.profile.Networks)
}
