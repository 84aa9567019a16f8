package profile

import (
	"github.com/nntaoli-project/goex"
	"github.com/shopspring/decimal"

	"exchangenorm/src/errs"
	"exchangenorm/src/model"
	"exchangenorm/src/registry"
)

// OKX returns the OKX v5 profile with its default options.
func OKX() Profile {
	return Profile{
		ID:              "okx",
		BaseURL:         "https://www.okx.com",
		SandboxHeader:   "x-simulated-trading",
		SymbolDelimiter: "-",
		Envelope: Envelope{
			Code:           "code",
			Message:        "msg",
			Data:           "data",
			SuccessCode:    "0",
			ElementCode:    "sCode",
			ElementMessage: "sMsg",
		},
		Markets: MarketFields{
			ID:                    "instId",
			InstType:              "instType",
			Base:                  "baseCcy",
			Quote:                 "quoteCcy",
			Settle:                "settleCcy",
			Underlying:            "uly",
			Family:                "instFamily",
			ContractValue:         "ctVal",
			ContractValueCurrency: "ctValCcy",
			ContractType:          "ctType",
			Expiry:                "expTime",
			Strike:                "stk",
			OptionType:            "optType",
			ListTime:              "listTime",
			TickSize:              "tickSz",
			LotSize:               "lotSz",
			MinSize:               "minSz",
			MaxLeverage:           "lever",
			MaxLimitSize:          "maxLmtSz",
			MaxMarketSize:         "maxMktSz",
			State:                 "state",
			LiveState:             "live",
		},
		Orders: OrderFields{
			ID:                "ordId",
			AlgoID:            "algoId",
			ClientID:          "clOrdId",
			AlgoClientID:      "algoClOrdId",
			Symbol:            "instId",
			InstType:          "instType",
			Side:              "side",
			Type:              "ordType",
			Price:             "px",
			OrderPrice:        "ordPx",
			Average:           "avgPx",
			Amount:            "sz",
			Filled:            "accFillSz",
			Fee:               "fee",
			FeeCurrency:       "feeCcy",
			Status:            "state",
			Created:           "cTime",
			Updated:           "uTime",
			LastFill:          "fillTime",
			TriggerPrice:      "triggerPx",
			TakeProfitTrigger: "tpTriggerPx",
			StopLossTrigger:   "slTriggerPx",
			ReduceOnly:        "reduceOnly",
			TargetCurrency:    "tgtCcy",
			MarginMode:        "tdMode",
			AttachedAlgos:     "attachAlgoOrds",
			QuoteSizeValue:    "quote_ccy",
		},
		Trades: TradeFields{
			ID:           "tradeId",
			Order:        "ordId",
			Symbol:       "instId",
			InstType:     "instType",
			Side:         "side",
			Price:        "fillPx",
			Amount:       "fillSz",
			Fee:          "fee",
			FeeCurrency:  "feeCcy",
			Liquidity:    "execType",
			Timestamp:    "ts",
			MakerValue:   "M",
			TakerValue:   "T",
			PublicPrice:  "px",
			PublicAmount: "sz",
		},
		Tickers: TickerFields{
			Symbol:      "instId",
			InstType:    "instType",
			Timestamp:   "ts",
			Last:        "last",
			Open:        "open24h",
			High:        "high24h",
			Low:         "low24h",
			Bid:         "bidPx",
			BidVolume:   "bidSz",
			Ask:         "askPx",
			AskVolume:   "askSz",
			BaseVolume:  "vol24h",
			QuoteVolume: "volCcy24h",
			MarkPrice:   "markPx",
			IndexPrice:  "idxPx",
		},
		Balances: BalanceFields{
			Details:   "details",
			Timestamp: "uTime",
			Currency:  "ccy",
			Free:      "availBal",
			Used:      "frozenBal",
			Total:     "bal",
			Debt:      "liab",
			Equity:    "eq",
		},
		Positions: PositionFields{
			ID:                     "posId",
			Symbol:                 "instId",
			InstType:               "instType",
			Side:                   "posSide",
			Contracts:              "pos",
			Leverage:               "lever",
			EntryPrice:             "avgPx",
			MarkPrice:              "markPx",
			LastPrice:              "last",
			Liquidation:            "liqPx",
			UnrealizedPnl:          "upl",
			RealizedPnl:            "realizedPnl",
			Percentage:             "uplRatio",
			Margin:                 "margin",
			InitialMargin:          "imr",
			MaintenanceMarginRatio: "mmr",
			MarginMode:             "mgnMode",
			Notional:               "notionalUsd",
			MarginRatio:            "mgnRatio",
			Timestamp:              "uTime",
			NetSide:                "net",
		},
		Transactions: TransactionFields{
			DepositID:    "depId",
			WithdrawalID: "wdId",
			TxID:         "txId",
			Currency:     "ccy",
			Chain:        "chain",
			Amount:       "amt",
			To:           "to",
			From:         "from",
			Tag:          "tag",
			Status:       "state",
			Timestamp:    "ts",
			Fee:          "fee",
		},
		Transfers: TransferFields{
			ID:        "transId",
			Currency:  "ccy",
			Amount:    "amt",
			From:      "from",
			To:        "to",
			Status:    "state",
			Timestamp: "ts",
		},
		Ledger: LedgerFields{
			ID:        "billId",
			Currency:  "ccy",
			Amount:    "balChg",
			Balance:   "bal",
			Type:      "type",
			Symbol:    "instId",
			InstType:  "instType",
			Fee:       "fee",
			Timestamp: "ts",
			Order:     "ordId",
		},
		Funding: FundingFields{
			Symbol:          "instId",
			InstType:        "instType",
			Rate:            "fundingRate",
			NextRate:        "nextFundingRate",
			RealizedRate:    "realizedRate",
			FundingTime:     "fundingTime",
			NextFundingTime: "nextFundingTime",
			Timestamp:       "ts",
		},
		Derivatives: DerivativeFields{
			OpenInterest:         "oi",
			OpenInterestCurrency: "oiCcy",
			OpenInterestValue:    "oiUsd",
			SettlementDetails:    "details",
			SettlementID:         "insId",
			SettlementPrice:      "px",
			BorrowRate:           "interestRate",
			BorrowInterest:       "interest",
			BorrowLiability:      "liab",
			TierID:               "tier",
			TierMin:              "minSz",
			TierMax:              "maxSz",
			TierMMR:              "mmr",
			TierMaxLeverage:      "maxLever",
			Leverage:             "lever",
			MarginMode:           "mgnMode",
			PositionSide:         "posSide",
		},
		Currencies: registry.CurrencyFields{
			ID:                "ccy",
			Name:              "name",
			Network:           "chain",
			Deposit:           "canDep",
			Withdraw:          "canWd",
			Internal:          "canInternal",
			Fee:               "minFee",
			Precision:         "wdTickSz",
			WithdrawMin:       "minWd",
			WithdrawMax:       "maxWd",
			DepositMin:        "minDep",
			PrecisionIsDigits: true,
			CompoundDelimiter: "-",
		},
		Networks: registry.NetworkTable{
			CodesByID: map[string]string{
				"Bitcoin":           "BTC",
				"BTC":               "BTC",
				"Lightning":         "LIGHTNING",
				"ERC20":             "ERC20",
				"TRC20":             "TRC20",
				"BEP20":             "BEP20",
				"BSC":               "BEP20",
				"Polygon":           "MATIC",
				"Solana":            "SOL",
				"Arbitrum One":      "ARBONE",
				"Optimism":          "OPTIMISM",
				"Avalanche C-Chain": "AVAXC",
				"Avalanche X-Chain": "AVAXX",
				"TON":               "TON",
				"Tron":              "TRX",
				"zkSync Era":        "ZKSYNC",
				"Base":              "BASE",
			},
			IDsByCode: map[string]string{
				"BTC":   "Bitcoin",
				"BEP20": "BSC",
			},
			Replacements: map[string]map[string]string{
				"ETH": {"ERC20": "ETH"},
				"TRX": {"TRC20": "TRX"},
			},
		},
		CommonCurrencies: map[string]string{
			"AE":   "AET",
			"BOX":  "DefiBox",
			"HOT":  "Hydro Protocol",
			"HSR":  "HC",
			"MAG":  "Maggie",
			"SBTC": "Super Bitcoin",
			"YOYO": "YOYOW",
			"WIN":  "WinToken",
		},
		MarketTypes: map[string]model.MarketType{
			"SPOT":    model.MarketSpot,
			"MARGIN":  model.MarketMargin,
			"SWAP":    model.MarketSwap,
			"FUTURES": model.MarketFuture,
			"OPTION":  model.MarketOption,
		},
		OrderStatuses: map[string]string{
			"live":             model.OrderStatusOpen,
			"partially_filled": model.OrderStatusOpen,
			"filled":           model.OrderStatusClosed,
			"effective":        model.OrderStatusClosed,
			"canceled":         model.OrderStatusCanceled,
			"mmp_canceled":     model.OrderStatusCanceled,
		},
		OrderTypes: map[string]string{
			"market":            "market",
			"limit":             "limit",
			"post_only":         "limit",
			"fok":               "limit",
			"ioc":               "limit",
			"optimal_limit_ioc": "market",
		},
		AlgoOrderTypes: map[string]bool{
			"trigger":         true,
			"conditional":     true,
			"oco":             true,
			"move_order_stop": true,
			"iceberg":         true,
			"twap":            true,
		},
		OrderTimeInForce: map[string]string{
			"post_only":         "PO",
			"fok":               "FOK",
			"ioc":               "IOC",
			"optimal_limit_ioc": "IOC",
			"market":            "IOC",
			"limit":             "GTC",
		},
		TimeInForce: map[string]string{
			"IOC": "ioc",
			"FOK": "fok",
			"PO":  "post_only",
		},
		DepositStatuses: map[string]string{
			"0":  "pending",
			"1":  "ok",
			"2":  "ok",
			"8":  "pending",
			"11": "pending",
			"12": "pending",
			"13": "pending",
			"14": "pending",
		},
		WithdrawalStatuses: map[string]string{
			"-3": "pending",
			"-2": "canceled",
			"-1": "failed",
			"0":  "pending",
			"1":  "pending",
			"2":  "ok",
			"4":  "pending",
			"5":  "pending",
			"6":  "pending",
			"7":  "pending",
			"8":  "pending",
			"9":  "pending",
			"10": "pending",
			"12": "pending",
			"15": "pending",
			"16": "pending",
			"17": "pending",
		},
		TransferStatuses: map[string]string{
			"success": "ok",
			"pending": "pending",
			"failed":  "failed",
		},
		LedgerTypes: map[string]string{
			"1":  "transfer",
			"2":  "trade",
			"3":  "trade",
			"4":  "rebate",
			"5":  "trade",
			"6":  "transfer",
			"7":  "trade",
			"8":  "fee",
			"9":  "trade",
			"10": "trade",
			"11": "trade",
		},
		AccountsByType: map[string]string{
			"funding": "6",
			"trading": "18",
			"spot":    "18",
			"margin":  "18",
			"swap":    "18",
			"future":  "18",
			"futures": "18",
			"option":  "18",
		},
		AccountNames: map[string]string{
			"6":  "funding",
			"18": "trading",
		},
		FeeSigns: map[RecordKind]FeeSign{
			RecordOrder:       FeeNegate,
			RecordTrade:       FeeNegate,
			RecordTransaction: FeeAsIs,
			RecordLedger:      FeeNegate,
		},
		Bars: map[goex.KlinePeriod]string{
			goex.KLINE_PERIOD_1MIN:   "1m",
			goex.KLINE_PERIOD_3MIN:   "3m",
			goex.KLINE_PERIOD_5MIN:   "5m",
			goex.KLINE_PERIOD_15MIN:  "15m",
			goex.KLINE_PERIOD_30MIN:  "30m",
			goex.KLINE_PERIOD_1H:     "1H",
			goex.KLINE_PERIOD_2H:     "2H",
			goex.KLINE_PERIOD_4H:     "4H",
			goex.KLINE_PERIOD_6H:     "6Hutc",
			goex.KLINE_PERIOD_12H:    "12Hutc",
			goex.KLINE_PERIOD_1DAY:   "1Dutc",
			goex.KLINE_PERIOD_1WEEK:  "1Wutc",
			goex.KLINE_PERIOD_1MONTH: "1Mutc",
		},
		ErrorsExact: okxErrorCodes,
		ErrorsBroad: []errs.Phrase{
			{Text: "Internal Server Error", Kind: errs.ErrExchangeNotAvailable},
			{Text: "server error", Kind: errs.ErrExchangeNotAvailable},
			{Text: "System maintenance", Kind: errs.ErrOnMaintenance},
		},
		Routes: map[Endpoint]Route{
			EndpointInstruments:         get("/api/v5/public/instruments", false),
			EndpointCurrencies:          get("/api/v5/asset/currencies", true),
			EndpointTicker:              get("/api/v5/market/ticker", false),
			EndpointTickers:             get("/api/v5/market/tickers", false),
			EndpointCandles:             get("/api/v5/market/candles", false),
			EndpointHistoryCandles:      get("/api/v5/market/history-candles", false),
			EndpointPublicTrades:        get("/api/v5/market/trades", false),
			EndpointPlaceOrder:          post("/api/v5/trade/order"),
			EndpointPlaceAlgoOrder:      post("/api/v5/trade/order-algo"),
			EndpointBatchOrders:         post("/api/v5/trade/batch-orders"),
			EndpointCancelOrder:         post("/api/v5/trade/cancel-order"),
			EndpointBatchCancelOrders:   post("/api/v5/trade/cancel-batch-orders"),
			EndpointCancelAlgoOrders:    post("/api/v5/trade/cancel-algos"),
			EndpointAmendOrder:          post("/api/v5/trade/amend-order"),
			EndpointOrderDetails:        get("/api/v5/trade/order", true),
			EndpointAlgoOrderDetails:    get("/api/v5/trade/order-algo", true),
			EndpointOpenOrders:          get("/api/v5/trade/orders-pending", true),
			EndpointOpenAlgoOrders:      get("/api/v5/trade/orders-algo-pending", true),
			EndpointOrderHistory:        get("/api/v5/trade/orders-history", true),
			EndpointOrderHistoryArchive: get("/api/v5/trade/orders-history-archive", true),
			EndpointAlgoOrderHistory:    get("/api/v5/trade/orders-algo-history", true),
			EndpointFills:               get("/api/v5/trade/fills", true),
			EndpointFillsHistory:        get("/api/v5/trade/fills-history", true),
			EndpointTradingBalance:      get("/api/v5/account/balance", true),
			EndpointFundingBalance:      get("/api/v5/asset/balances", true),
			EndpointPositions:           get("/api/v5/account/positions", true),
			EndpointTransfer:            post("/api/v5/asset/transfer"),
			EndpointWithdrawal:          post("/api/v5/asset/withdrawal"),
			EndpointDepositHistory:      get("/api/v5/asset/deposit-history", true),
			EndpointWithdrawalHistory:   get("/api/v5/asset/withdrawal-history", true),
			EndpointFundingRate:         get("/api/v5/public/funding-rate", false),
			EndpointFundingRateHistory:  get("/api/v5/public/funding-rate-history", false),
			EndpointBills:               get("/api/v5/account/bills", true),
			EndpointBillsArchive:        get("/api/v5/account/bills-archive", true),
			EndpointInterestRate:        get("/api/v5/account/interest-rate", true),
			EndpointInterestAccrued:     get("/api/v5/account/interest-accrued", true),
			EndpointPositionTiers:       get("/api/v5/public/position-tiers", false),
			EndpointOpenInterest:        get("/api/v5/public/open-interest", false),
			EndpointSetLeverage:         post("/api/v5/account/set-leverage"),
			EndpointDeliveryHistory:     get("/api/v5/public/delivery-exercise-history", false),
		},
		Options: Options{
			BrokerID:                          "e847386590ce4dBC",
			DefaultType:                       "spot",
			CreateMarketBuyOrderRequiresPrice: true,
			DefaultNetworks:                   map[string]string{"ETH": "ETH", "USDT": "TRC20"},
			FetchMarketTypes:                  []string{"spot", "future", "swap", "option"},
			OptionFamilies:                    []string{"BTC-USD", "ETH-USD"},
			MaxLeverage:                       Decimal{decimal.NewFromInt(125)},
			OHLCVLimit:                        100,
			HistoryCandlesAfterMs:             1440 * 60 * 1000,
		},
	}
}
