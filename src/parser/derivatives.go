package parser

import (
	"fmt"

	"exchangenorm/src/model"
	"exchangenorm/src/native"
)

const hourMs = int64(60 * 60 * 1000)

// ParseFundingRate reads the current and next funding of a swap. The interval
// is the distance between the two funding times.
func (p *Parser) ParseFundingRate(row native.Object, hint *model.Market) model.FundingRate {
	f := p.profile.Funding
	m := p.market(native.String(row, f.Symbol), native.String(row, f.InstType), hint)
	ts := native.Int64(row, f.Timestamp)
	funding := native.Int64(row, f.FundingTime)
	next := native.Int64(row, f.NextFundingTime)
	r := model.FundingRate{
		Symbol:               m.Symbol,
		Timestamp:            ts,
		Datetime:             datetime(ts),
		FundingRate:          native.Decimal(row, f.Rate),
		FundingTimestamp:     funding,
		FundingDatetime:      datetime(funding),
		NextFundingRate:      native.Decimal(row, f.NextRate),
		NextFundingTimestamp: next,
		NextFundingDatetime:  datetime(next),
		Info:                 row,
	}
	if funding > 0 && next > funding {
		r.Interval = fmt.Sprintf("%dh", (next-funding)/hourMs)
	}
	return r
}

// ParseFundingRateHistory prefers the realized rate over the forecast one,
// oldest first.
func (p *Parser) ParseFundingRateHistory(rows []native.Object, hint *model.Market) []model.FundingRateHistory {
	f := p.profile.Funding
	out := make([]model.FundingRateHistory, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		m := p.market(native.String(row, f.Symbol), native.String(row, f.InstType), hint)
		ts := native.Int64(row, f.FundingTime)
		out = append(out, model.FundingRateHistory{
			Symbol:      m.Symbol,
			FundingRate: native.Decimal(row, f.RealizedRate, f.Rate),
			Timestamp:   ts,
			Datetime:    datetime(ts),
			Info:        row,
		})
	}
	return out
}

// ParseOpenInterest reads open interest in contracts, with its currency
// amount when contracts are not reported.
func (p *Parser) ParseOpenInterest(row native.Object, hint *model.Market) model.OpenInterest {
	f, d := p.profile.Funding, p.profile.Derivatives
	m := p.market(native.String(row, f.Symbol), native.String(row, f.InstType), hint)
	ts := native.Int64(row, f.Timestamp)
	return model.OpenInterest{
		Symbol:             m.Symbol,
		OpenInterestAmount: native.Decimal(row, d.OpenInterest, d.OpenInterestCurrency),
		OpenInterestValue:  native.Decimal(row, d.OpenInterestValue),
		Timestamp:          ts,
		Datetime:           datetime(ts),
		Info:               row,
	}
}

// ParseSettlements flattens settlement rounds into one record per expired
// instrument. Expired options are no longer listed and resolve from their
// id alone.
func (p *Parser) ParseSettlements(rows []native.Object, hint *model.Market) []model.Settlement {
	d := p.profile.Derivatives
	var out []model.Settlement
	for _, row := range rows {
		ts := native.Int64(row, p.profile.Funding.Timestamp)
		for _, detail := range native.Objects(row[d.SettlementDetails]) {
			out = append(out, p.ParseSettlement(detail, ts, hint))
		}
	}
	return out
}

func (p *Parser) ParseSettlement(row native.Object, ts int64, hint *model.Market) model.Settlement {
	d := p.profile.Derivatives
	id := native.String(row, d.SettlementID)
	var m *model.Market
	if hint != nil && hint.ID == id {
		m = hint
	} else {
		m = p.market(id, "", nil)
	}
	return model.Settlement{
		Symbol:    m.Symbol,
		Price:     native.Decimal(row, d.SettlementPrice),
		Timestamp: ts,
		Datetime:  datetime(ts),
		Info:      row,
	}
}

// ParseBorrowRate reads an hourly borrow rate.
func (p *Parser) ParseBorrowRate(row native.Object) model.BorrowRate {
	d := p.profile.Derivatives
	ts := native.Int64(row, p.profile.Funding.Timestamp)
	return model.BorrowRate{
		Currency:  p.currencies.SafeCurrencyCode(native.String(row, p.profile.Balances.Currency)),
		Rate:      native.Decimal(row, d.BorrowRate),
		Period:    hourMs,
		Timestamp: ts,
		Datetime:  datetime(ts),
		Info:      row,
	}
}

func (p *Parser) ParseBorrowInterest(row native.Object, hint *model.Market) model.BorrowInterest {
	d := p.profile.Derivatives
	ts := native.Int64(row, p.profile.Funding.Timestamp)
	bi := model.BorrowInterest{
		Currency:       p.currencies.SafeCurrencyCode(native.String(row, p.profile.Balances.Currency)),
		Interest:       native.Decimal(row, d.BorrowInterest),
		InterestRate:   native.Decimal(row, d.BorrowRate),
		AmountBorrowed: native.Decimal(row, d.BorrowLiability),
		MarginMode:     lower(native.String(row, d.MarginMode)),
		Timestamp:      ts,
		Datetime:       datetime(ts),
		Info:           row,
	}
	if id := native.String(row, p.profile.Funding.Symbol); id != "" {
		bi.Symbol = p.market(id, "", hint).Symbol
	}
	return bi
}

func (p *Parser) ParseBorrowInterests(rows []native.Object, hint *model.Market) []model.BorrowInterest {
	out := make([]model.BorrowInterest, 0, len(rows))
	for _, row := range rows {
		out = append(out, p.ParseBorrowInterest(row, hint))
	}
	return out
}

// ParseLeverageTiers reads position tiers. Tier bounds are denominated in
// the settlement currency of m.
func (p *Parser) ParseLeverageTiers(rows []native.Object, m *model.Market) []model.LeverageTier {
	d := p.profile.Derivatives
	currency := ""
	if m != nil {
		currency = m.Quote
		if m.IsInverse() {
			currency = m.Base
		}
	}
	out := make([]model.LeverageTier, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.LeverageTier{
			Tier:                  native.Int64(row, d.TierID),
			Currency:              currency,
			MinNotional:           native.Decimal(row, d.TierMin),
			MaxNotional:           native.Decimal(row, d.TierMax),
			MaintenanceMarginRate: native.Decimal(row, d.TierMMR),
			MaxLeverage:           native.Decimal(row, d.TierMaxLeverage),
			Info:                  row,
		})
	}
	return out
}

// ParseLeverage folds per-side leverage rows into one record. Rows without a
// hedged side apply to both sides.
func (p *Parser) ParseLeverage(rows []native.Object, hint *model.Market) model.Leverage {
	d := p.profile.Derivatives
	l := model.Leverage{}
	if hint != nil {
		l.Symbol = hint.Symbol
	}
	info := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		info = append(info, map[string]interface{}(row))
		if l.Symbol == "" {
			l.Symbol = p.market(native.String(row, p.profile.Funding.Symbol), "", hint).Symbol
		}
		if mode := native.String(row, d.MarginMode); mode != "" {
			l.MarginMode = lower(mode)
		}
		lever := positive(native.Number(row, d.Leverage))
		switch native.String(row, d.PositionSide) {
		case "long":
			l.LongLeverage = native.ToDecimal(lever)
		case "short":
			l.ShortLeverage = native.ToDecimal(lever)
		default:
			l.LongLeverage = native.ToDecimal(lever)
			l.ShortLeverage = native.ToDecimal(lever)
		}
	}
	l.Info = map[string]interface{}{p.profile.Envelope.Data: info}
	return l
}
