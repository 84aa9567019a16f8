package model

import "github.com/shopspring/decimal"

type FundingRate struct {
	Symbol               string                 `json:"symbol"`
	Timestamp            int64                  `json:"timestamp,omitempty"`
	Datetime             string                 `json:"datetime,omitempty"`
	MarkPrice            decimal.NullDecimal    `json:"markPrice"`
	IndexPrice           decimal.NullDecimal    `json:"indexPrice"`
	InterestRate         decimal.NullDecimal    `json:"interestRate"`
	FundingRate          decimal.NullDecimal    `json:"fundingRate"`
	FundingTimestamp     int64                  `json:"fundingTimestamp,omitempty"`
	FundingDatetime      string                 `json:"fundingDatetime,omitempty"`
	NextFundingRate      decimal.NullDecimal    `json:"nextFundingRate"`
	NextFundingTimestamp int64                  `json:"nextFundingTimestamp,omitempty"`
	NextFundingDatetime  string                 `json:"nextFundingDatetime,omitempty"`
	Interval             string                 `json:"interval,omitempty"`
	Info                 map[string]interface{} `json:"info"`
}

type FundingRateHistory struct {
	Symbol      string                 `json:"symbol"`
	FundingRate decimal.NullDecimal    `json:"fundingRate"`
	Timestamp   int64                  `json:"timestamp,omitempty"`
	Datetime    string                 `json:"datetime,omitempty"`
	Info        map[string]interface{} `json:"info"`
}

type OpenInterest struct {
	Symbol             string                 `json:"symbol"`
	OpenInterestAmount decimal.NullDecimal    `json:"openInterestAmount"`
	OpenInterestValue  decimal.NullDecimal    `json:"openInterestValue"`
	Timestamp          int64                  `json:"timestamp,omitempty"`
	Datetime           string                 `json:"datetime,omitempty"`
	Info               map[string]interface{} `json:"info"`
}

type Settlement struct {
	Symbol    string                 `json:"symbol"`
	Price     decimal.NullDecimal    `json:"price"`
	Timestamp int64                  `json:"timestamp,omitempty"`
	Datetime  string                 `json:"datetime,omitempty"`
	Info      map[string]interface{} `json:"info"`
}

type BorrowRate struct {
	Currency  string                 `json:"currency"`
	Rate      decimal.NullDecimal    `json:"rate"`
	Period    int64                  `json:"period"`
	Timestamp int64                  `json:"timestamp,omitempty"`
	Datetime  string                 `json:"datetime,omitempty"`
	Info      map[string]interface{} `json:"info"`
}

type BorrowInterest struct {
	Symbol         string                 `json:"symbol,omitempty"`
	Currency       string                 `json:"currency"`
	Interest       decimal.NullDecimal    `json:"interest"`
	InterestRate   decimal.NullDecimal    `json:"interestRate"`
	AmountBorrowed decimal.NullDecimal    `json:"amountBorrowed"`
	MarginMode     string                 `json:"marginMode,omitempty"`
	Timestamp      int64                  `json:"timestamp,omitempty"`
	Datetime       string                 `json:"datetime,omitempty"`
	Info           map[string]interface{} `json:"info"`
}

type LeverageTier struct {
	Tier                  int64                  `json:"tier"`
	Currency              string                 `json:"currency,omitempty"`
	MinNotional           decimal.NullDecimal    `json:"minNotional"`
	MaxNotional           decimal.NullDecimal    `json:"maxNotional"`
	MaintenanceMarginRate decimal.NullDecimal    `json:"maintenanceMarginRate"`
	MaxLeverage           decimal.NullDecimal    `json:"maxLeverage"`
	Info                  map[string]interface{} `json:"info"`
}

type Leverage struct {
	Symbol        string                 `json:"symbol"`
	MarginMode    string                 `json:"marginMode,omitempty"`
	LongLeverage  decimal.NullDecimal    `json:"longLeverage"`
	ShortLeverage decimal.NullDecimal    `json:"shortLeverage"`
	Info          map[string]interface{} `json:"info"`
}
