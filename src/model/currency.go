package model

import "github.com/shopspring/decimal"

type TransferLimits struct {
	Withdraw MinMax `json:"withdraw"`
	Deposit  MinMax `json:"deposit"`
}

// Network is one chain a currency can move on.
type Network struct {
	ID        string                 `json:"id"`
	Network   string                 `json:"network"`
	Active    bool                   `json:"active"`
	Deposit   bool                   `json:"deposit"`
	Withdraw  bool                   `json:"withdraw"`
	Fee       decimal.NullDecimal    `json:"fee"`
	Precision decimal.NullDecimal    `json:"precision"`
	Limits    TransferLimits         `json:"limits"`
	Info      map[string]interface{} `json:"info"`
}

type Currency struct {
	Code      string              `json:"code"`
	ID        string              `json:"id"`
	Name      string              `json:"name,omitempty"`
	Active    bool                `json:"active"`
	Deposit   bool                `json:"deposit"`
	Withdraw  bool                `json:"withdraw"`
	Precision decimal.NullDecimal `json:"precision"`
	Fee       decimal.NullDecimal `json:"fee"`
	Limits    TransferLimits      `json:"limits"`
	Networks  map[string]Network  `json:"networks"`
	Info      []interface{}       `json:"info"`
}
