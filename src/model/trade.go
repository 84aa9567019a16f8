package model

import "github.com/shopspring/decimal"

type Trade struct {
	ID           string                 `json:"id"`
	Order        string                 `json:"order,omitempty"`
	Timestamp    int64                  `json:"timestamp,omitempty"`
	Datetime     string                 `json:"datetime,omitempty"`
	Symbol       string                 `json:"symbol"`
	Type         string                 `json:"type,omitempty"`
	Side         Side                   `json:"side,omitempty"`
	TakerOrMaker string                 `json:"takerOrMaker,omitempty"`
	Price        decimal.NullDecimal    `json:"price"`
	Amount       decimal.NullDecimal    `json:"amount"`
	Cost         decimal.NullDecimal    `json:"cost"`
	Fee          *Fee                   `json:"fee"`
	Info         map[string]interface{} `json:"info"`
}

type Ticker struct {
	Symbol      string                 `json:"symbol"`
	Timestamp   int64                  `json:"timestamp,omitempty"`
	Datetime    string                 `json:"datetime,omitempty"`
	High        decimal.NullDecimal    `json:"high"`
	Low         decimal.NullDecimal    `json:"low"`
	Bid         decimal.NullDecimal    `json:"bid"`
	BidVolume   decimal.NullDecimal    `json:"bidVolume"`
	Ask         decimal.NullDecimal    `json:"ask"`
	AskVolume   decimal.NullDecimal    `json:"askVolume"`
	Vwap        decimal.NullDecimal    `json:"vwap"`
	Open        decimal.NullDecimal    `json:"open"`
	Close       decimal.NullDecimal    `json:"close"`
	Last        decimal.NullDecimal    `json:"last"`
	Change      decimal.NullDecimal    `json:"change"`
	Percentage  decimal.NullDecimal    `json:"percentage"`
	Average     decimal.NullDecimal    `json:"average"`
	BaseVolume  decimal.NullDecimal    `json:"baseVolume"`
	QuoteVolume decimal.NullDecimal    `json:"quoteVolume"`
	MarkPrice   decimal.NullDecimal    `json:"markPrice"`
	IndexPrice  decimal.NullDecimal    `json:"indexPrice"`
	Info        map[string]interface{} `json:"info"`
}

// OHLCV is one candle: open time in ms, then prices and base volume.
type OHLCV struct {
	Timestamp int64               `json:"timestamp"`
	Open      decimal.NullDecimal `json:"open"`
	High      decimal.NullDecimal `json:"high"`
	Low       decimal.NullDecimal `json:"low"`
	Close     decimal.NullDecimal `json:"close"`
	Volume    decimal.NullDecimal `json:"volume"`
}
