package builder

import (
	"strconv"
	"strings"

	"exchangenorm/src/errs"
	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/profile"
)

// FetchBalance reads the trading account, or the funding account when the
// type param names it.
func (b *Builder) FetchBalance(params Params) (*Request, error) {
	e := profile.EndpointTradingBalance
	if b.account(native.String(params, "type")) == b.profile.AccountsByType["funding"] {
		e = profile.EndpointFundingBalance
	}
	return b.request(e, native.Omit(params, "type"))
}

// account converts a unified account type to the native account id.
// Unmapped values pass through.
func (b *Builder) account(t string) string {
	if id, ok := b.profile.AccountsByType[strings.ToLower(t)]; ok {
		return id
	}
	return t
}

// FetchPositions reads open positions, optionally of a few markets.
func (b *Builder) FetchPositions(symbols []string, params Params) (*Request, error) {
	if len(symbols) > 10 {
		return nil, errs.New(errs.ErrBadRequest, "at most 10 symbols can be queried at once, got %d", len(symbols))
	}
	f := b.profile.Positions
	fields := native.Object{}
	ids := make([]string, 0, len(symbols))
	var first *model.Market
	for _, s := range symbols {
		m, err := b.market(s)
		if err != nil {
			return nil, err
		}
		if !m.Contract && !m.Margin {
			return nil, errs.New(errs.ErrBadSymbol, "%s has no positions", m.Symbol)
		}
		if first == nil {
			first = m
		}
		ids = append(ids, m.ID)
	}
	if len(ids) > 0 {
		fields[f.Symbol] = strings.Join(ids, ",")
	}
	if first != nil && len(symbols) == 1 {
		fields[f.InstType] = b.nativeType(params, first)
	} else if t := native.String(params, "type"); t != "" {
		fields[f.InstType] = b.nativeType(params, nil)
	}
	r, err := b.request(profile.EndpointPositions, native.Extend(fields, native.Omit(params, "type")))
	if err != nil {
		return nil, err
	}
	r.Market = first
	r.Symbols = append([]string(nil), symbols...)
	return r, nil
}

// Transfer moves funds between the account's own sub-accounts.
func (b *Builder) Transfer(code, amount, from, to string, params Params) (*Request, error) {
	if from == "" || to == "" {
		return nil, errs.New(errs.ErrArgumentsRequired, "transfer requires from and to accounts")
	}
	c, err := b.currencies.Currency(code)
	if err != nil {
		return nil, err
	}
	amt, err := b.currencyToPrecision(code, amount)
	if err != nil {
		return nil, err
	}
	f := b.profile.Transfers
	fields := native.Object{
		f.Currency: c.ID,
		f.Amount:   amt,
		f.From:     b.account(from),
		f.To:       b.account(to),
		"type":     "0",
	}
	r, err := b.request(profile.EndpointTransfer, native.Extend(fields, params))
	if err != nil {
		return nil, err
	}
	r.Currency = c.Code
	return r, nil
}

// Withdraw sends funds on chain. The network comes from the network param,
// then the configured default network of the currency. The fee comes from
// the fee param, then the loaded network fee.
func (b *Builder) Withdraw(code, amount, address, tag string, params Params) (*Request, error) {
	if address == "" {
		return nil, errs.New(errs.ErrInvalidAddress, "withdraw requires an address")
	}
	c, err := b.currencies.Currency(code)
	if err != nil {
		return nil, err
	}
	amt, err := b.currencyToPrecision(code, amount)
	if err != nil {
		return nil, err
	}
	network := option(params, b.profile.Options.DefaultNetworks[c.Code], "", "network")
	fee := native.Number(params, "fee")
	if network != "" && fee == "" {
		if n, ok := c.Networks[network]; ok {
			fee = native.FromDecimal(n.Fee)
		}
	}
	if fee == "" {
		return nil, errs.New(errs.ErrArgumentsRequired, "withdraw of %s requires a fee param or a network with a known fee", c.Code)
	}
	to := address
	if tag != "" {
		to = address + ":" + tag
	}
	f := b.profile.Transactions
	fields := native.Object{
		f.Currency: c.ID,
		f.Amount:   amt,
		"toAddr":   to,
		f.Fee:      fee,
		"dest":     "4",
	}
	if network != "" {
		fields[f.Chain] = b.chainID(c, network)
	}
	r, err := b.request(profile.EndpointWithdrawal, native.Extend(fields, native.Omit(params, "network", "fee")))
	if err != nil {
		return nil, err
	}
	r.Currency = c.Code
	return r, nil
}

// chainID rebuilds the native chain of a unified network code, compound
// ("USDT-TRC20") when the profile encodes chains that way.
func (b *Builder) chainID(c *model.Currency, network string) string {
	id := b.profile.Networks.CodeToID(network, c.Code)
	if n, ok := c.Networks[network]; ok && n.ID != "" {
		id = n.ID
	}
	if d := b.profile.Currencies.CompoundDelimiter; d != "" {
		return c.ID + d + id
	}
	return id
}

// FetchDeposits lists deposit history.
func (b *Builder) FetchDeposits(code string, since int64, limit int, params Params) (*Request, error) {
	return b.transactions(profile.EndpointDepositHistory, code, since, limit, params)
}

// FetchWithdrawals lists withdrawal history.
func (b *Builder) FetchWithdrawals(code string, since int64, limit int, params Params) (*Request, error) {
	return b.transactions(profile.EndpointWithdrawalHistory, code, since, limit, params)
}

func (b *Builder) transactions(e profile.Endpoint, code string, since int64, limit int, params Params) (*Request, error) {
	fields := native.Object{}
	var c *model.Currency
	if code != "" {
		var err error
		if c, err = b.currencies.Currency(code); err != nil {
			return nil, err
		}
		fields[b.profile.Transactions.Currency] = c.ID
	}
	if since > 0 {
		fields["before"] = strconv.FormatInt(since-1, 10)
	}
	paging(fields, "", 0, limit)
	r, err := b.request(e, native.Extend(fields, params))
	if err != nil {
		return nil, err
	}
	if c != nil {
		r.Currency = c.Code
	}
	return r, nil
}

// FetchLedger lists account bills. archive selects the long history.
func (b *Builder) FetchLedger(code string, since int64, limit int, params Params) (*Request, error) {
	f := b.profile.Ledger
	fields := native.Object{}
	var c *model.Currency
	if code != "" {
		var err error
		if c, err = b.currencies.Currency(code); err != nil {
			return nil, err
		}
		fields[f.Currency] = c.ID
	}
	if t := native.String(params, "type"); t != "" {
		fields[f.InstType] = b.nativeType(params, nil)
	}
	e := profile.EndpointBills
	if flag(params, "archive") {
		e = profile.EndpointBillsArchive
	}
	paging(fields, "begin", since, limit)
	r, err := b.request(e, native.Extend(fields, native.Omit(params, "type", "archive")))
	if err != nil {
		return nil, err
	}
	if c != nil {
		r.Currency = c.Code
	}
	return r, nil
}
