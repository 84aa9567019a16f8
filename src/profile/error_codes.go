package profile

import "exchangenorm/src/errs"

// okxErrorCodes maps OKX v5 codes, top-level or sCode, to unified kinds.
var okxErrorCodes = map[string]*errs.Kind{
	"1":     errs.ErrExchangeError,        // Operation failed
	"2":     errs.ErrExchangeError,        // Bulk operation partially succeeded
	"50000": errs.ErrBadRequest,           // Body can not be empty
	"50001": errs.ErrOnMaintenance,        // Service temporarily unavailable
	"50002": errs.ErrBadRequest,           // Json data format error
	"50004": errs.ErrExchangeNotAvailable, // Endpoint request timeout
	"50005": errs.ErrExchangeNotAvailable, // API is offline or unavailable
	"50006": errs.ErrBadRequest,           // Invalid Content_Type
	"50007": errs.ErrAccountSuspended,     // Account blocked
	"50008": errs.ErrAuthenticationError,  // User ID can not be empty
	"50009": errs.ErrAccountSuspended,     // Account is suspended due to ongoing liquidation
	"50010": errs.ErrExchangeError,        // User ID can not be empty
	"50011": errs.ErrRateLimitExceeded,    // Request too frequent
	"50012": errs.ErrExchangeError,        // Account status invalid
	"50013": errs.ErrExchangeNotAvailable, // System is busy
	"50014": errs.ErrBadRequest,           // Parameter can not be empty
	"50015": errs.ErrExchangeError,        // Either parameter or the other is required
	"50016": errs.ErrExchangeError,        // Parameter does not match
	"50026": errs.ErrExchangeNotAvailable, // System error
	"50027": errs.ErrPermissionDenied,     // Account restricted from trading
	"50028": errs.ErrExchangeError,        // Unable to take the order
	"50044": errs.ErrBadRequest,           // Must select one broker type
	"50100": errs.ErrExchangeError,        // API frozen
	"50101": errs.ErrAuthenticationError,  // APIKey does not match current environment
	"50102": errs.ErrInvalidNonce,         // Timestamp request expired
	"50103": errs.ErrAuthenticationError,  // OK-ACCESS-KEY can not be empty
	"50104": errs.ErrAuthenticationError,  // OK-ACCESS-PASSPHRASE can not be empty
	"50105": errs.ErrAuthenticationError,  // OK-ACCESS-PASSPHRASE incorrect
	"50106": errs.ErrAuthenticationError,  // OK-ACCESS-SIGN can not be empty
	"50107": errs.ErrAuthenticationError,  // OK-ACCESS-TIMESTAMP can not be empty
	"50108": errs.ErrExchangeError,        // Exchange ID does not exist
	"50109": errs.ErrExchangeError,        // Exchange domain does not exist
	"50110": errs.ErrPermissionDenied,     // Invalid IP
	"50111": errs.ErrAuthenticationError,  // Invalid OK-ACCESS-KEY
	"50112": errs.ErrAuthenticationError,  // Invalid OK-ACCESS-TIMESTAMP
	"50113": errs.ErrAuthenticationError,  // Invalid signature
	"50114": errs.ErrAuthenticationError,  // Invalid authorization
	"50115": errs.ErrBadRequest,           // Invalid request method
	"51000": errs.ErrBadRequest,           // Parameter error
	"51001": errs.ErrBadSymbol,            // Instrument ID does not exist
	"51002": errs.ErrBadSymbol,            // Instrument ID does not match underlying index
	"51003": errs.ErrBadRequest,           // Either client order ID or order ID is required
	"51004": errs.ErrInvalidOrder,         // Order amount exceeds current tier limit
	"51005": errs.ErrInvalidOrder,         // Order amount exceeds the limit
	"51006": errs.ErrInvalidOrder,         // Order price out of the limit
	"51007": errs.ErrInvalidOrder,         // Order placement failed, order amount should be at least 1 contract
	"51008": errs.ErrInsufficientFunds,    // Insufficient balance
	"51009": errs.ErrAccountSuspended,     // Order placement function is blocked
	"51010": errs.ErrPermissionDenied,     // Operation not supported under current account mode
	"51011": errs.ErrInvalidOrder,         // Duplicated order ID
	"51012": errs.ErrBadSymbol,            // Token does not exist
	"51014": errs.ErrBadSymbol,            // Index does not exist
	"51015": errs.ErrBadSymbol,            // Instrument ID does not match instrument type
	"51020": errs.ErrInvalidOrder,         // Order amount should be greater than the min available amount
	"51024": errs.ErrAccountSuspended,     // Trading account is blocked
	"51100": errs.ErrInvalidOrder,         // Trading amount does not meet the min tradable amount
	"51119": errs.ErrInsufficientFunds,    // Order placement failed due to insufficient balance
	"51120": errs.ErrInvalidOrder,         // Order quantity is less than 1
	"51121": errs.ErrInvalidOrder,         // Order count should be the integer multiples of the lot size
	"51122": errs.ErrInvalidOrder,         // Order amount should be greater than the min available amount
	"51124": errs.ErrInvalidOrder,         // You can only place limit orders after Call Auction has started
	"51127": errs.ErrInsufficientFunds,    // Available balance is 0
	"51131": errs.ErrInsufficientFunds,    // Insufficient balance
	"51400": errs.ErrOrderNotFound,        // Cancellation failed as the order does not exist
	"51401": errs.ErrOrderNotFound,        // Cancellation failed as the order is already canceled
	"51402": errs.ErrOrderNotFound,        // Cancellation failed as the order is already completed
	"51403": errs.ErrInvalidOrder,         // Cancellation failed as the order type does not support cancellation
	"51404": errs.ErrInvalidOrder,         // Order cancellation unavailable during the second phase of call auction
	"51405": errs.ErrExchangeError,        // Cancellation failed as you do not have any pending orders
	"51410": errs.ErrCancelPending,        // Cancellation failed as the order is already under cancelling status
	"51503": errs.ErrOrderNotFound,        // Order modification failed as the order does not exist
	"51603": errs.ErrOrderNotFound,        // Order does not exist
	"58002": errs.ErrPermissionDenied,     // Please activate Savings Account first
	"58003": errs.ErrExchangeError,        // Currency type is not supported by Savings Account
	"58004": errs.ErrAccountSuspended,     // Account blocked
	"58100": errs.ErrExchangeError,        // The trading product triggers risk control
	"58102": errs.ErrRateLimitExceeded,    // Too frequent operations
	"58200": errs.ErrExchangeError,        // Withdrawal from this account to target account is not supported
	"58201": errs.ErrExchangeError,        // Withdrawal amount exceeds the daily limit
	"58203": errs.ErrInvalidAddress,       // Please add a withdrawal address
	"58207": errs.ErrInvalidAddress,       // Withdrawal address is not whitelisted
	"58350": errs.ErrInsufficientFunds,    // Insufficient balance
	"58351": errs.ErrInvalidOrder,         // Invoice expired
	"59000": errs.ErrExchangeError,        // Settings failed
	"59102": errs.ErrInvalidOrder,         // Leverage exceeds the maximum limit
}
