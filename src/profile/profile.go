// Package profile holds the per-exchange configuration record: field names,
// enumeration tables, error tables, routes and options. Exchange differences
// live here as data so the builder and parser stay generic.
package profile

import (
	"github.com/nntaoli-project/goex"

	"exchangenorm/src/errs"
	"exchangenorm/src/model"
	"exchangenorm/src/registry"
)

// RecordKind selects a fee sign convention.
type RecordKind string

const (
	RecordOrder       RecordKind = "order"
	RecordTrade       RecordKind = "trade"
	RecordTransaction RecordKind = "transaction"
	RecordLedger      RecordKind = "ledger"
)

// FeeSign tells how a native fee value relates to the unified fee cost,
// which is positive when the account pays.
type FeeSign int

const (
	FeeAsIs FeeSign = iota
	FeeNegate
)

type Profile struct {
	ID              string
	BaseURL         string
	SandboxHeader   string
	SymbolDelimiter string

	Envelope     Envelope
	Markets      MarketFields
	Orders       OrderFields
	Trades       TradeFields
	Tickers      TickerFields
	Balances     BalanceFields
	Positions    PositionFields
	Transactions TransactionFields
	Transfers    TransferFields
	Ledger       LedgerFields
	Funding      FundingFields
	Derivatives  DerivativeFields
	Currencies   registry.CurrencyFields

	Networks         registry.NetworkTable
	CommonCurrencies map[string]string

	// MarketTypes maps native instrument types to unified market types.
	MarketTypes map[string]model.MarketType

	OrderStatuses      map[string]string
	OrderTypes         map[string]string
	AlgoOrderTypes     map[string]bool
	OrderTimeInForce   map[string]string
	TimeInForce        map[string]string
	DepositStatuses    map[string]string
	WithdrawalStatuses map[string]string
	TransferStatuses   map[string]string
	LedgerTypes        map[string]string
	AccountsByType     map[string]string
	AccountNames       map[string]string
	FeeSigns           map[RecordKind]FeeSign
	Bars               map[goex.KlinePeriod]string

	ErrorsExact map[string]*errs.Kind
	ErrorsBroad []errs.Phrase
	Routes      map[Endpoint]Route

	Options Options
}

// WithOptions returns a copy of p using o.
func (p Profile) WithOptions(o Options) Profile {
	p.Options = o.clone()
	return p
}

// Mapper builds the error mapper for this exchange.
func (p Profile) Mapper() errs.Mapper {
	return errs.Mapper{Exchange: p.ID, Exact: p.ErrorsExact, Broad: p.ErrorsBroad}
}

// Route returns the route of e; ok is false for endpoints the exchange lacks.
func (p Profile) Route(e Endpoint) (Route, bool) {
	r, ok := p.Routes[e]
	return r, ok
}

// NativeMarketType is the inverse of MarketTypes.
func (p Profile) NativeMarketType(t model.MarketType) string {
	for native, unified := range p.MarketTypes {
		if unified == t {
			return native
		}
	}
	return ""
}

// MarketType maps a native instrument type, "" when unmapped.
func (p Profile) MarketType(native string) model.MarketType {
	return p.MarketTypes[native]
}

// FeeSign returns the convention for kind, FeeAsIs when unset.
func (p Profile) FeeSign(kind RecordKind) FeeSign {
	return p.FeeSigns[kind]
}
