// Package parser turns native response records into unified structures.
// Every parser is a pure function of the record, the loaded registries and
// an optional market hint; unmapped enumeration values pass through and are
// logged.
package parser

import (
	logger "github.com/sirupsen/logrus"

	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/precise"
	"exchangenorm/src/profile"
	"exchangenorm/src/registry"
	"exchangenorm/src/utils"
)

type Parser struct {
	profile    profile.Profile
	markets    *registry.MarketRegistry
	currencies *registry.CurrencyRegistry
}

func New(p profile.Profile, markets *registry.MarketRegistry, currencies *registry.CurrencyRegistry) *Parser {
	return &Parser{profile: p, markets: markets, currencies: currencies}
}

// enum maps a native value through table. Unknown values pass through.
func (p *Parser) enum(table string, values map[string]string, v string) string {
	if v == "" {
		return ""
	}
	if u, ok := values[v]; ok {
		return u
	}
	logger.WithFields(map[string]interface{}{
		"exchange": p.profile.ID,
		"table":    table,
		"value":    v,
	}).Warn("Unmapped native value, passing through")
	return v
}

// market resolves the native instrument id of a record. instType narrows
// ids shared by several market types.
func (p *Parser) market(id, instType string, hint *model.Market) *model.Market {
	m, err := p.markets.ReverseResolve(id, hint, p.profile.SymbolDelimiter, p.profile.MarketType(instType))
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"exchange": p.profile.ID,
			"id":       id,
		}).WithError(err).Warn("Ambiguous market id, keeping the raw id")
		return &model.Market{ID: id, Symbol: id}
	}
	return m
}

// fee builds a unified fee; the native value is negated for exchanges that
// report charges as negative numbers.
func (p *Parser) fee(kind profile.RecordKind, cost, currencyID string) *model.Fee {
	if cost == "" {
		return nil
	}
	if p.profile.FeeSign(kind) == profile.FeeNegate {
		cost = precise.Neg(cost)
	}
	return &model.Fee{
		Currency: p.currencies.SafeCurrencyCode(currencyID),
		Cost:     native.ToDecimal(cost),
	}
}

func datetime(ms int64) string {
	return utils.ISO8601(ms)
}

func positive(s string) string {
	if s == "" || !precise.Gt(s, "0") {
		return ""
	}
	return s
}

// contractCost is the quote value of amount contracts at price.
func contractCost(m *model.Market, amount, price string) string {
	if amount == "" || price == "" {
		return ""
	}
	if m == nil || !m.Contract {
		return precise.Mul(amount, price)
	}
	size := native.FromDecimal(m.ContractSize)
	if size == "" {
		size = "1"
	}
	if m.IsInverse() {
		return precise.Div(precise.Mul(amount, size), price)
	}
	return precise.Mul(precise.Mul(amount, size), price)
}
