package model

import "github.com/shopspring/decimal"

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

const (
	OrderStatusOpen     = "open"
	OrderStatusClosed   = "closed"
	OrderStatusCanceled = "canceled"
	OrderStatusRejected = "rejected"
	OrderStatusExpired  = "expired"
)

type Fee struct {
	Currency string              `json:"currency,omitempty"`
	Cost     decimal.NullDecimal `json:"cost"`
	Rate     decimal.NullDecimal `json:"rate"`
}

// Order is the unified order record.
type Order struct {
	ID                  string                 `json:"id"`
	ClientOrderID       string                 `json:"clientOrderId,omitempty"`
	Timestamp           int64                  `json:"timestamp,omitempty"`
	Datetime            string                 `json:"datetime,omitempty"`
	LastTradeTimestamp  int64                  `json:"lastTradeTimestamp,omitempty"`
	LastUpdateTimestamp int64                  `json:"lastUpdateTimestamp,omitempty"`
	Symbol              string                 `json:"symbol"`
	Type                string                 `json:"type,omitempty"`
	Side                Side                   `json:"side,omitempty"`
	TimeInForce         string                 `json:"timeInForce,omitempty"`
	PostOnly            bool                   `json:"postOnly"`
	ReduceOnly          bool                   `json:"reduceOnly"`
	Price               decimal.NullDecimal    `json:"price"`
	Average             decimal.NullDecimal    `json:"average"`
	TriggerPrice        decimal.NullDecimal    `json:"triggerPrice"`
	TakeProfitPrice     decimal.NullDecimal    `json:"takeProfitPrice"`
	StopLossPrice       decimal.NullDecimal    `json:"stopLossPrice"`
	Amount              decimal.NullDecimal    `json:"amount"`
	Filled              decimal.NullDecimal    `json:"filled"`
	Remaining           decimal.NullDecimal    `json:"remaining"`
	Cost                decimal.NullDecimal    `json:"cost"`
	QuoteSized          bool                   `json:"quoteSized"`
	Status              string                 `json:"status,omitempty"`
	Fee                 *Fee                   `json:"fee"`
	Trades              []Trade                `json:"trades,omitempty"`
	Info                map[string]interface{} `json:"info"`
}

// OrderResult is one element of a batch response.
type OrderResult struct {
	Order *Order `json:"order,omitempty"`
	Err   error  `json:"-"`
}
