package registry

import (
	"regexp"

	"github.com/shopspring/decimal"

	"exchangenorm/src/errs"
	"exchangenorm/src/model"
	"exchangenorm/src/utils"
)

var (
	nativeOptionPattern  = regexp.MustCompile(`^([A-Za-z0-9]+)-([A-Za-z0-9]+)-(\d{6})-(\d+(?:\.\d+)?)-([CP])$`)
	unifiedOptionPattern = regexp.MustCompile(`^([A-Za-z0-9]+)/([A-Za-z0-9]+)(?::[A-Za-z0-9]+)?-(\d{6})-(\d+(?:\.\d+)?)-([CP])$`)
)

// SynthesizeOption builds an inactive descriptor for an option that is no
// longer listed. identifier is either a native id (BTC-USD-230521-28500-P) or a
// unified symbol (BTC/USD:BTC-230521-28500-P).
func SynthesizeOption(identifier string) (*model.Market, error) {
	parts := unifiedOptionPattern.FindStringSubmatch(identifier)
	if parts == nil {
		parts = nativeOptionPattern.FindStringSubmatch(identifier)
	}
	if parts == nil {
		return nil, errs.New(errs.ErrBadSymbol, "%s is not an option identifier", identifier)
	}
	base, quote, expiryToken, strikeToken, typeToken := parts[1], parts[2], parts[3], parts[4], parts[5]

	expiry, err := utils.ParseYYMMDD(expiryToken)
	if err != nil {
		return nil, errs.Wrap(errs.ErrBadSymbol, err, "%s has no valid expiry", identifier)
	}
	strike, err := decimal.NewFromString(strikeToken)
	if err != nil {
		return nil, errs.Wrap(errs.ErrBadSymbol, err, "%s has no valid strike", identifier)
	}
	optionType := model.OptionPut
	if typeToken == "C" {
		optionType = model.OptionCall
	}

	expiryMs := expiry.UnixMilli()
	id := base + "-" + quote + "-" + expiryToken + "-" + strikeToken + "-" + typeToken
	return &model.Market{
		ID:             id,
		Symbol:         BuildSymbol(base, quote, base, expiryMs, strikeToken, optionType),
		Base:           base,
		Quote:          quote,
		Settle:         base,
		BaseID:         base,
		QuoteID:        quote,
		SettleID:       base,
		Type:           model.MarketOption,
		Option:         true,
		Contract:       true,
		Linear:         model.Bool(false),
		Inverse:        model.Bool(true),
		ContractSize:   decimal.NewNullDecimal(decimal.NewFromInt(1)),
		Expiry:         expiryMs,
		ExpiryDatetime: utils.ISO8601(expiryMs),
		Strike:         decimal.NewNullDecimal(strike),
		OptionType:     optionType,
		Active:         false,
		Info:           map[string]interface{}{},
	}, nil
}
