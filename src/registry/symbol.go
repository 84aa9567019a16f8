package registry

import (
	"strings"

	"exchangenorm/src/model"
	"exchangenorm/src/utils"
)

// BuildSymbol renders a unified symbol:
//
//	spot    BASE/QUOTE
//	swap    BASE/QUOTE:SETTLE
//	future  BASE/QUOTE:SETTLE-YYMMDD
//	option  BASE/QUOTE:SETTLE-YYMMDD-STRIKE-C|P
func BuildSymbol(base, quote, settle string, expiry int64, strike string, optionType model.OptionType) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteByte('/')
	b.WriteString(quote)
	if settle == "" {
		return b.String()
	}
	b.WriteByte(':')
	b.WriteString(settle)
	if expiry <= 0 {
		return b.String()
	}
	b.WriteByte('-')
	b.WriteString(utils.FormatYYMMDD(expiry))
	if optionType == "" {
		return b.String()
	}
	b.WriteByte('-')
	b.WriteString(strike)
	b.WriteByte('-')
	if optionType == model.OptionCall {
		b.WriteByte('C')
	} else {
		b.WriteByte('P')
	}
	return b.String()
}

// MarketSymbol rebuilds the unified symbol from a market's own fields.
func MarketSymbol(m *model.Market) string {
	strike := ""
	if m.Strike.Valid {
		strike = m.Strike.Decimal.String()
	}
	return BuildSymbol(m.Base, m.Quote, m.Settle, m.Expiry, strike, m.OptionType)
}
