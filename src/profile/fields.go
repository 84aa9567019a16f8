package profile

// Envelope names the keys of the response wrapper.
type Envelope struct {
	Code, Message, Data         string
	SuccessCode                 string
	ElementCode, ElementMessage string
}

type MarketFields struct {
	ID, InstType, Base, Quote, Settle, Underlying, Family string
	ContractValue, ContractValueCurrency, ContractType    string
	Expiry, Strike, OptionType, ListTime                  string
	TickSize, LotSize, MinSize, MaxLeverage               string
	MaxLimitSize, MaxMarketSize, State                    string
	LiveState                                             string
}

type OrderFields struct {
	ID, AlgoID, ClientID, AlgoClientID, Symbol, InstType string
	Side, Type, Price, OrderPrice, Average, Amount       string
	Filled, Fee, FeeCurrency, Status, Created, Updated   string
	LastFill, TriggerPrice, TakeProfitTrigger            string
	StopLossTrigger, ReduceOnly, TargetCurrency          string
	MarginMode, AttachedAlgos                            string
	// QuoteSizeValue is the TargetCurrency value meaning the size is quote notional.
	QuoteSizeValue string
}

type TradeFields struct {
	ID, Order, Symbol, InstType, Side, Price, Amount string
	Fee, FeeCurrency, Liquidity, Timestamp           string
	MakerValue, TakerValue                           string
	// Public trades name price and size differently from fills.
	PublicPrice, PublicAmount string
}

type TickerFields struct {
	Symbol, InstType, Timestamp, Last, Open, High, Low string
	Bid, BidVolume, Ask, AskVolume                     string
	BaseVolume, QuoteVolume, MarkPrice, IndexPrice     string
}

type BalanceFields struct {
	Details, Timestamp, Currency    string
	Free, Used, Total, Debt, Equity string
}

type PositionFields struct {
	ID, Symbol, InstType, Side, Contracts, Leverage   string
	EntryPrice, MarkPrice, LastPrice, Liquidation     string
	UnrealizedPnl, RealizedPnl, Percentage, Margin    string
	InitialMargin, MaintenanceMarginRatio, MarginMode string
	Notional, MarginRatio, Timestamp                  string
	// Hedged values of Side, e.g. long/short; net means one-way mode.
	NetSide string
}

type TransactionFields struct {
	DepositID, WithdrawalID, TxID, Currency, Chain, Amount string
	To, From, Tag, Status, Timestamp, Fee                  string
}

type TransferFields struct {
	ID, Currency, Amount, From, To, Status, Timestamp string
}

type LedgerFields struct {
	ID, Currency, Amount, Balance, Type, Symbol, InstType string
	Fee, Timestamp, Order                                 string
}

type FundingFields struct {
	Symbol, InstType, Rate, NextRate, RealizedRate string
	FundingTime, NextFundingTime, Timestamp        string
}

// DerivativeFields covers the smaller derivative and margin records.
type DerivativeFields struct {
	OpenInterest, OpenInterestCurrency, OpenInterestValue string
	SettlementDetails, SettlementID, SettlementPrice      string
	BorrowRate, BorrowInterest, BorrowLiability           string
	TierID, TierMin, TierMax, TierMMR, TierMaxLeverage    string
	Leverage, MarginMode, PositionSide                    string
}
