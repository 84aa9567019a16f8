package parser

import (
	"strings"

	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/precise"
	"exchangenorm/src/profile"
	"exchangenorm/src/registry"
)

// ParseBalance reads either an account summary whose per-currency rows sit
// under the details key, or a flat list of per-currency rows. Missing parts
// of free, used and total are derived from the other two.
func (p *Parser) ParseBalance(data []native.Object) model.Balances {
	f := p.profile.Balances
	b := model.Balances{Currencies: map[string]model.Balance{}}
	for _, top := range data {
		rows := native.Objects(top[f.Details])
		if rows == nil {
			rows = []native.Object{top}
		} else {
			b.Info = top
		}
		if ts := native.Int64(top, f.Timestamp); ts > b.Timestamp {
			b.Timestamp = ts
		}
		for _, row := range rows {
			id := native.String(row, f.Currency)
			if id == "" {
				continue
			}
			b.Currencies[p.currencies.SafeCurrencyCode(id)] = balance(
				native.Number(row, f.Free),
				native.Number(row, f.Used),
				native.Number(row, f.Equity, f.Total),
				native.Number(row, f.Debt),
			)
		}
	}
	if b.Info == nil && len(data) > 0 {
		b.Info = native.Object{p.profile.Envelope.Data: objectsToList(data)}
	}
	b.Datetime = datetime(b.Timestamp)
	return b
}

func balance(free, used, total, debt string) model.Balance {
	switch {
	case total == "" && free != "" && used != "":
		total = precise.Add(free, used)
	case free == "" && total != "" && used != "":
		free = precise.Sub(total, used)
	case used == "" && total != "" && free != "":
		used = precise.Sub(total, free)
	}
	return model.Balance{
		Free:  native.ToDecimal(free),
		Used:  native.ToDecimal(used),
		Total: native.ToDecimal(total),
		Debt:  native.ToDecimal(debt),
	}
}

func objectsToList(rows []native.Object) []interface{} {
	out := make([]interface{}, len(rows))
	for i, r := range rows {
		out[i] = map[string]interface{}(r)
	}
	return out
}

// ParsePosition reads an open position. One-way positions report a net side
// whose direction is the sign of the size.
func (p *Parser) ParsePosition(row native.Object, hint *model.Market) model.Position {
	f := p.profile.Positions
	m := p.market(native.String(row, f.Symbol), native.String(row, f.InstType), hint)
	ts := native.Int64(row, f.Timestamp)
	size := native.Number(row, f.Contracts)
	side := native.String(row, f.Side)
	hedged := side != "" && side != f.NetSide
	if !hedged {
		side = ""
		switch {
		case precise.Gt(size, "0"):
			side = "long"
		case precise.Lt(size, "0"):
			side = "short"
		}
	}
	mode := native.String(row, f.MarginMode)
	notional := native.Number(row, f.Notional)
	leverage := native.Number(row, f.Leverage)
	initial := native.Number(row, f.InitialMargin)
	if mode == "isolated" || initial == "" {
		initial = native.Number(row, f.Margin, f.InitialMargin)
	}
	maintenance := native.Number(row, f.MaintenanceMarginRatio)

	pos := model.Position{
		ID:                native.String(row, f.ID),
		Symbol:            m.Symbol,
		Timestamp:         ts,
		Datetime:          datetime(ts),
		Side:              side,
		MarginMode:        mode,
		Hedged:            hedged,
		Contracts:         native.ToDecimal(precise.Abs(size)),
		ContractSize:      m.ContractSize,
		Notional:          native.ToDecimal(notional),
		Leverage:          native.ToDecimal(leverage),
		EntryPrice:        native.Decimal(row, f.EntryPrice),
		MarkPrice:         native.Decimal(row, f.MarkPrice),
		LastPrice:         native.Decimal(row, f.LastPrice),
		LiquidationPrice:  native.ToDecimal(positive(native.Number(row, f.Liquidation))),
		UnrealizedPnl:     native.Decimal(row, f.UnrealizedPnl),
		RealizedPnl:       native.Decimal(row, f.RealizedPnl),
		Collateral:        native.ToDecimal(initial),
		InitialMargin:     native.ToDecimal(initial),
		MaintenanceMargin: native.ToDecimal(maintenance),
		MarginRatio:       native.Decimal(row, f.MarginRatio),
		Info:              row,
	}
	if ratio := native.Number(row, f.Percentage); ratio != "" {
		pos.Percentage = native.ToDecimal(precise.Mul(ratio, "100"))
	}
	if leverage != "" {
		pos.InitialMarginPercentage = native.ToDecimal(precise.Div("1", leverage))
	}
	if maintenance != "" && notional != "" {
		pos.MaintenanceMarginPercentage = native.ToDecimal(precise.Div(maintenance, notional))
	}
	return pos
}

// ParsePositions skips flat positions.
func (p *Parser) ParsePositions(rows []native.Object, hint *model.Market) []model.Position {
	out := make([]model.Position, 0, len(rows))
	for _, row := range rows {
		pos := p.ParsePosition(row, hint)
		if pos.Contracts.Valid && pos.Contracts.Decimal.IsZero() {
			continue
		}
		out = append(out, pos)
	}
	return out
}

// ParseTransaction reads a deposit or withdrawal. The kind follows from
// which id the record carries; compound chains such as USDT-TRC20 resolve
// to the unified network code.
func (p *Parser) ParseTransaction(row native.Object) model.Transaction {
	f := p.profile.Transactions
	ts := native.Int64(row, f.Timestamp)
	code := p.currencies.SafeCurrencyCode(native.String(row, f.Currency))

	t := model.Transaction{
		TxID:      native.String(row, f.TxID),
		Currency:  code,
		Amount:    native.Decimal(row, f.Amount),
		Address:   native.String(row, f.To),
		AddressTo: native.String(row, f.To),
		Tag:       native.String(row, f.Tag),
		Timestamp: ts,
		Datetime:  datetime(ts),
		Info:      row,
	}
	statuses := p.profile.DepositStatuses
	if id := native.String(row, f.WithdrawalID); id != "" {
		t.ID, t.Type = id, model.TransactionWithdrawal
		statuses = p.profile.WithdrawalStatuses
	} else {
		t.ID, t.Type = native.String(row, f.DepositID), model.TransactionDeposit
	}
	t.Status = p.enum(t.Type+" status", statuses, native.String(row, f.Status))

	if chain := native.String(row, f.Chain); chain != "" {
		_, networkID := registry.SplitCompound(chain, p.profile.Currencies.CompoundDelimiter)
		t.Network = p.profile.Networks.IDToCode(networkID, code)
	}
	if fee := native.Number(row, f.Fee); fee != "" {
		t.Fee = p.fee(profile.RecordTransaction, fee, native.String(row, f.Currency))
	}
	// A deposit with a sender account and no chain hash moved inside the exchange.
	t.Internal = t.Type == model.TransactionDeposit && t.TxID == "" && native.String(row, f.From) != ""
	return t
}

func (p *Parser) ParseTransactions(rows []native.Object) []model.Transaction {
	out := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, p.ParseTransaction(row))
	}
	return out
}

// ParseTransfer reads an internal transfer. Account ids map back to names.
func (p *Parser) ParseTransfer(row native.Object) model.Transfer {
	f := p.profile.Transfers
	ts := native.Int64(row, f.Timestamp)
	return model.Transfer{
		ID:          native.String(row, f.ID),
		Timestamp:   ts,
		Datetime:    datetime(ts),
		Currency:    p.currencies.SafeCurrencyCode(native.String(row, f.Currency)),
		Amount:      native.Decimal(row, f.Amount),
		FromAccount: p.accountName(native.String(row, f.From)),
		ToAccount:   p.accountName(native.String(row, f.To)),
		Status:      p.enum("transfer status", p.profile.TransferStatuses, native.String(row, f.Status)),
		Info:        row,
	}
}

func (p *Parser) accountName(id string) string {
	if name, ok := p.profile.AccountNames[id]; ok {
		return name
	}
	return id
}

// ParseLedgerEntry reads one account bill. The signed balance change gives
// the direction; the balance before is rebuilt from the balance after.
func (p *Parser) ParseLedgerEntry(row native.Object) model.LedgerEntry {
	f := p.profile.Ledger
	ts := native.Int64(row, f.Timestamp)
	change := native.Number(row, f.Amount)
	after := native.Number(row, f.Balance)
	e := model.LedgerEntry{
		ID:          native.String(row, f.ID),
		ReferenceID: native.String(row, f.Order),
		Type:        p.enum("ledger type", p.profile.LedgerTypes, native.String(row, f.Type)),
		Currency:    p.currencies.SafeCurrencyCode(native.String(row, f.Currency)),
		Amount:      native.ToDecimal(precise.Abs(change)),
		After:       native.ToDecimal(after),
		Status:      "ok",
		Timestamp:   ts,
		Datetime:    datetime(ts),
		Fee:         p.fee(profile.RecordLedger, native.Number(row, f.Fee), native.String(row, f.Currency)),
		Info:        row,
	}
	switch {
	case precise.Gt(change, "0"):
		e.Direction = "in"
	case precise.Lt(change, "0"):
		e.Direction = "out"
	}
	if change != "" && after != "" {
		e.Before = native.ToDecimal(precise.Sub(after, change))
	}
	if id := native.String(row, f.Symbol); id != "" {
		e.Symbol = p.market(id, native.String(row, f.InstType), nil).Symbol
	}
	return e
}

func (p *Parser) ParseLedger(rows []native.Object) []model.LedgerEntry {
	out := make([]model.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, p.ParseLedgerEntry(row))
	}
	return out
}

// lower is used for margin modes echoed in mixed case by some endpoints.
func lower(s string) string {
	return strings.ToLower(s)
}
