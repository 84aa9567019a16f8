package model

import "github.com/shopspring/decimal"

type MarketType string

const (
	MarketSpot   MarketType = "spot"
	MarketMargin MarketType = "margin"
	MarketSwap   MarketType = "swap"
	MarketFuture MarketType = "future"
	MarketOption MarketType = "option"
)

type OptionType string

const (
	OptionCall OptionType = "call"
	OptionPut  OptionType = "put"
)

// MinMax is an optional numeric range.
type MinMax struct {
	Min decimal.NullDecimal `json:"min"`
	Max decimal.NullDecimal `json:"max"`
}

type MarketPrecision struct {
	Amount decimal.NullDecimal `json:"amount"`
	Price  decimal.NullDecimal `json:"price"`
}

type MarketLimits struct {
	Amount   MinMax `json:"amount"`
	Price    MinMax `json:"price"`
	Cost     MinMax `json:"cost"`
	Leverage MinMax `json:"leverage"`
}

// Market describes one tradable instrument.
type Market struct {
	ID             string                 `json:"id"`
	Symbol         string                 `json:"symbol"`
	Base           string                 `json:"base"`
	Quote          string                 `json:"quote"`
	Settle         string                 `json:"settle,omitempty"`
	BaseID         string                 `json:"baseId"`
	QuoteID        string                 `json:"quoteId"`
	SettleID       string                 `json:"settleId,omitempty"`
	Type           MarketType             `json:"type"`
	Spot           bool                   `json:"spot"`
	Margin         bool                   `json:"margin"`
	Swap           bool                   `json:"swap"`
	Future         bool                   `json:"future"`
	Option         bool                   `json:"option"`
	Contract       bool                   `json:"contract"`
	Linear         *bool                  `json:"linear"`
	Inverse        *bool                  `json:"inverse"`
	ContractSize   decimal.NullDecimal    `json:"contractSize"`
	Expiry         int64                  `json:"expiry,omitempty"`
	ExpiryDatetime string                 `json:"expiryDatetime,omitempty"`
	Strike         decimal.NullDecimal    `json:"strike"`
	OptionType     OptionType             `json:"optionType,omitempty"`
	Precision      MarketPrecision        `json:"precision"`
	Limits         MarketLimits           `json:"limits"`
	Active         bool                   `json:"active"`
	Maker          decimal.NullDecimal    `json:"maker"`
	Taker          decimal.NullDecimal    `json:"taker"`
	Created        int64                  `json:"created,omitempty"`
	Info           map[string]interface{} `json:"info"`
}

// IsLinear reports whether the market settles in its quote currency.
func (m *Market) IsLinear() bool {
	return m.Linear != nil && *m.Linear
}

// IsInverse reports whether the market settles in its base currency.
func (m *Market) IsInverse() bool {
	return m.Inverse != nil && *m.Inverse
}

// Bool is a helper for the optional linear/inverse flags.
func Bool(v bool) *bool {
	return &v
}
