package profile

import "net/http"

// Endpoint is the closed set of native endpoints the engine can target.
type Endpoint int

const (
	EndpointInstruments Endpoint = iota
	EndpointCurrencies
	EndpointTicker
	EndpointTickers
	EndpointCandles
	EndpointHistoryCandles
	EndpointPublicTrades
	EndpointPlaceOrder
	EndpointPlaceAlgoOrder
	EndpointBatchOrders
	EndpointCancelOrder
	EndpointBatchCancelOrders
	EndpointCancelAlgoOrders
	EndpointAmendOrder
	EndpointOrderDetails
	EndpointAlgoOrderDetails
	EndpointOpenOrders
	EndpointOpenAlgoOrders
	EndpointOrderHistory
	EndpointOrderHistoryArchive
	EndpointAlgoOrderHistory
	EndpointFills
	EndpointFillsHistory
	EndpointTradingBalance
	EndpointFundingBalance
	EndpointPositions
	EndpointTransfer
	EndpointWithdrawal
	EndpointDepositHistory
	EndpointWithdrawalHistory
	EndpointFundingRate
	EndpointFundingRateHistory
	EndpointBills
	EndpointBillsArchive
	EndpointInterestRate
	EndpointInterestAccrued
	EndpointPositionTiers
	EndpointOpenInterest
	EndpointSetLeverage
	EndpointDeliveryHistory
)

var endpointNames = [...]string{
	"instruments", "currencies", "ticker", "tickers", "candles", "history-candles",
	"public-trades", "place-order", "place-algo-order", "batch-orders", "cancel-order",
	"batch-cancel-orders", "cancel-algo-orders", "amend-order", "order-details",
	"algo-order-details", "open-orders", "open-algo-orders", "order-history",
	"order-history-archive", "algo-order-history", "fills", "fills-history",
	"trading-balance", "funding-balance", "positions", "transfer", "withdrawal",
	"deposit-history", "withdrawal-history", "funding-rate", "funding-rate-history",
	"bills", "bills-archive", "interest-rate", "interest-accrued", "position-tiers",
	"open-interest", "set-leverage", "delivery-history",
}

func (e Endpoint) String() string {
	if int(e) < 0 || int(e) >= len(endpointNames) {
		return "unknown"
	}
	return endpointNames[e]
}

// Route is the HTTP shape of an endpoint.
type Route struct {
	Method  string
	Path    string
	Private bool
}

func get(path string, private bool) Route {
	return Route{Method: http.MethodGet, Path: path, Private: private}
}

func post(path string) Route {
	return Route{Method: http.MethodPost, Path: path, Private: true}
}
