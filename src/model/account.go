package model

import "github.com/shopspring/decimal"

type Balance struct {
	Free  decimal.NullDecimal `json:"free"`
	Used  decimal.NullDecimal `json:"used"`
	Total decimal.NullDecimal `json:"total"`
	Debt  decimal.NullDecimal `json:"debt"`
}

// Balances is keyed by unified currency code.
type Balances struct {
	Timestamp  int64                  `json:"timestamp,omitempty"`
	Datetime   string                 `json:"datetime,omitempty"`
	Currencies map[string]Balance     `json:"currencies"`
	Info       map[string]interface{} `json:"info"`
}

type Position struct {
	ID                          string                 `json:"id,omitempty"`
	Symbol                      string                 `json:"symbol"`
	Timestamp                   int64                  `json:"timestamp,omitempty"`
	Datetime                    string                 `json:"datetime,omitempty"`
	Side                        string                 `json:"side,omitempty"`
	MarginMode                  string                 `json:"marginMode,omitempty"`
	Hedged                      bool                   `json:"hedged"`
	Contracts                   decimal.NullDecimal    `json:"contracts"`
	ContractSize                decimal.NullDecimal    `json:"contractSize"`
	Notional                    decimal.NullDecimal    `json:"notional"`
	Leverage                    decimal.NullDecimal    `json:"leverage"`
	EntryPrice                  decimal.NullDecimal    `json:"entryPrice"`
	MarkPrice                   decimal.NullDecimal    `json:"markPrice"`
	LastPrice                   decimal.NullDecimal    `json:"lastPrice"`
	LiquidationPrice            decimal.NullDecimal    `json:"liquidationPrice"`
	UnrealizedPnl               decimal.NullDecimal    `json:"unrealizedPnl"`
	RealizedPnl                 decimal.NullDecimal    `json:"realizedPnl"`
	Percentage                  decimal.NullDecimal    `json:"percentage"`
	Collateral                  decimal.NullDecimal    `json:"collateral"`
	InitialMargin               decimal.NullDecimal    `json:"initialMargin"`
	InitialMarginPercentage     decimal.NullDecimal    `json:"initialMarginPercentage"`
	MaintenanceMargin           decimal.NullDecimal    `json:"maintenanceMargin"`
	MaintenanceMarginPercentage decimal.NullDecimal    `json:"maintenanceMarginPercentage"`
	MarginRatio                 decimal.NullDecimal    `json:"marginRatio"`
	Info                        map[string]interface{} `json:"info"`
}

const (
	TransactionDeposit    = "deposit"
	TransactionWithdrawal = "withdrawal"
)

// Transaction is a deposit or a withdrawal.
type Transaction struct {
	ID        string                 `json:"id"`
	TxID      string                 `json:"txid,omitempty"`
	Type      string                 `json:"type"`
	Currency  string                 `json:"currency"`
	Network   string                 `json:"network,omitempty"`
	Amount    decimal.NullDecimal    `json:"amount"`
	Address   string                 `json:"address,omitempty"`
	AddressTo string                 `json:"addressTo,omitempty"`
	Tag       string                 `json:"tag,omitempty"`
	Status    string                 `json:"status,omitempty"`
	Timestamp int64                  `json:"timestamp,omitempty"`
	Datetime  string                 `json:"datetime,omitempty"`
	Internal  bool                   `json:"internal"`
	Fee       *Fee                   `json:"fee"`
	Info      map[string]interface{} `json:"info"`
}

type Transfer struct {
	ID          string                 `json:"id"`
	Timestamp   int64                  `json:"timestamp,omitempty"`
	Datetime    string                 `json:"datetime,omitempty"`
	Currency    string                 `json:"currency"`
	Amount      decimal.NullDecimal    `json:"amount"`
	FromAccount string                 `json:"fromAccount,omitempty"`
	ToAccount   string                 `json:"toAccount,omitempty"`
	Status      string                 `json:"status,omitempty"`
	Info        map[string]interface{} `json:"info"`
}

type LedgerEntry struct {
	ID               string                 `json:"id"`
	Direction        string                 `json:"direction,omitempty"`
	Account          string                 `json:"account,omitempty"`
	ReferenceID      string                 `json:"referenceId,omitempty"`
	ReferenceAccount string                 `json:"referenceAccount,omitempty"`
	Type             string                 `json:"type,omitempty"`
	Currency         string                 `json:"currency"`
	Symbol           string                 `json:"symbol,omitempty"`
	Amount           decimal.NullDecimal    `json:"amount"`
	Before           decimal.NullDecimal    `json:"before"`
	After            decimal.NullDecimal    `json:"after"`
	Status           string                 `json:"status,omitempty"`
	Timestamp        int64                  `json:"timestamp,omitempty"`
	Datetime         string                 `json:"datetime,omitempty"`
	Fee              *Fee                   `json:"fee"`
	Info             map[string]interface{} `json:"info"`
}
