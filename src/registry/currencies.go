package registry

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"exchangenorm/src/errs"
	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/precise"
)

// CurrencyFields names the native keys of one per-network currency row.
type CurrencyFields struct {
	ID          string
	Name        string
	Network     string
	Deposit     string
	Withdraw    string
	Internal    string
	Fee         string
	Precision   string
	WithdrawMin string
	WithdrawMax string
	DepositMin  string
	// PrecisionIsDigits marks precision values given as digit counts.
	PrecisionIsDigits bool
	// CompoundDelimiter separates currency and network in compound ids.
	CompoundDelimiter string
}

type currencySnapshot struct {
	byCode map[string]*model.Currency
	byID   map[string]*model.Currency
	codes  []string
}

// CurrencyRegistry holds the loaded currencies behind an atomic snapshot.
type CurrencyRegistry struct {
	snapshot atomic.Pointer[currencySnapshot]
	common   map[string]string
}

// NewCurrencyRegistry takes the common-code substitutions, e.g. XBT -> BTC.
func NewCurrencyRegistry(common map[string]string) *CurrencyRegistry {
	r := &CurrencyRegistry{common: common}
	r.snapshot.Store(&currencySnapshot{
		byCode: map[string]*model.Currency{},
		byID:   map[string]*model.Currency{},
	})
	return r
}

func (r *CurrencyRegistry) Load(currencies map[string]model.Currency) {
	snap := &currencySnapshot{
		byCode: make(map[string]*model.Currency, len(currencies)),
		byID:   make(map[string]*model.Currency, len(currencies)),
	}
	for code, c := range currencies {
		c := c
		snap.byCode[code] = &c
		snap.byID[c.ID] = &c
		snap.codes = append(snap.codes, code)
	}
	sort.Strings(snap.codes)
	r.snapshot.Store(snap)
}

func (r *CurrencyRegistry) Loaded() bool {
	return len(r.snapshot.Load().byCode) > 0
}

func (r *CurrencyRegistry) Codes() []string {
	return append([]string(nil), r.snapshot.Load().codes...)
}

// Currency looks a currency up by unified code or native id.
func (r *CurrencyRegistry) Currency(code string) (*model.Currency, error) {
	snap := r.snapshot.Load()
	if c, ok := snap.byCode[code]; ok {
		return c, nil
	}
	if c, ok := snap.byID[code]; ok {
		return c, nil
	}
	return nil, errs.New(errs.ErrBadRequest, "currency %s not found", code)
}

// CommonCurrencyCode applies the common-code substitution table.
func (r *CurrencyRegistry) CommonCurrencyCode(code string) string {
	if c, ok := r.common[code]; ok {
		return c
	}
	return code
}

// SafeCurrencyCode maps a native currency id to its unified code without failing.
func (r *CurrencyRegistry) SafeCurrencyCode(currencyID string) string {
	if currencyID == "" {
		return ""
	}
	if c, ok := r.snapshot.Load().byID[currencyID]; ok {
		return c.Code
	}
	return r.CommonCurrencyCode(strings.ToUpper(currencyID))
}

// CurrencyID maps a unified code to its native id, falling back to the code.
func (r *CurrencyRegistry) CurrencyID(code string) string {
	if c, ok := r.snapshot.Load().byCode[code]; ok {
		return c.ID
	}
	return code
}

// BuildFromCurrencyList groups per-network rows by currency id and aggregates
// them into unified currencies keyed by code.
func (r *CurrencyRegistry) BuildFromCurrencyList(rows []native.Object, fields CurrencyFields, networks NetworkTable) map[string]model.Currency {
	type group struct {
		id   string
		rows []native.Object
	}
	var order []string
	groups := map[string]*group{}
	for _, row := range rows {
		currencyID, _ := rowIDs(row, fields)
		if currencyID == "" {
			continue
		}
		g, ok := groups[currencyID]
		if !ok {
			g = &group{id: currencyID}
			groups[currencyID] = g
			order = append(order, currencyID)
		}
		g.rows = append(g.rows, row)
	}

	result := make(map[string]model.Currency, len(groups))
	for _, id := range order {
		g := groups[id]
		code := r.CommonCurrencyCode(strings.ToUpper(id))
		cur := model.Currency{
			Code:     code,
			ID:       id,
			Networks: map[string]model.Network{},
		}
		var precisions, mins, maxes, depositMins []string
		for _, row := range g.rows {
			if cur.Name == "" {
				cur.Name = native.String(row, fields.Name)
			}
			cur.Info = append(cur.Info, row)
			_, networkID := rowIDs(row, fields)
			deposit, _ := native.Bool(row, fields.Deposit)
			withdraw, _ := native.Bool(row, fields.Withdraw)
			internal, _ := native.Bool(row, fields.Internal)

			precision := native.Number(row, fields.Precision)
			if fields.PrecisionIsDigits {
				precision = precise.ParsePrecision(precision)
			}
			networkCode := networks.IDToCode(networkID, code)
			network := model.Network{
				ID:        networkID,
				Network:   networkCode,
				Active:    deposit && withdraw && internal,
				Deposit:   deposit,
				Withdraw:  withdraw,
				Fee:       native.Decimal(row, fields.Fee),
				Precision: native.ToDecimal(precision),
				Limits: model.TransferLimits{
					Withdraw: model.MinMax{
						Min: native.Decimal(row, fields.WithdrawMin),
						Max: native.Decimal(row, fields.WithdrawMax),
					},
					Deposit: model.MinMax{Min: native.Decimal(row, fields.DepositMin)},
				},
				Info: row,
			}
			cur.Networks[networkCode] = network

			cur.Active = cur.Active || network.Active
			cur.Deposit = cur.Deposit || deposit
			cur.Withdraw = cur.Withdraw || withdraw
			precisions = append(precisions, precision)
			mins = append(mins, native.Number(row, fields.WithdrawMin))
			maxes = append(maxes, native.Number(row, fields.WithdrawMax))
			depositMins = append(depositMins, native.Number(row, fields.DepositMin))
		}
		cur.Precision = native.ToDecimal(precise.MinOf(precisions...))
		cur.Limits.Withdraw.Min = native.ToDecimal(precise.MinOf(mins...))
		cur.Limits.Withdraw.Max = native.ToDecimal(precise.MaxOf(maxes...))
		cur.Limits.Deposit.Min = native.ToDecimal(precise.MinOf(depositMins...))
		result[code] = cur
	}
	return result
}

// rowIDs returns the currency and network ids of a row, splitting compound
// identifiers when the network field holds one or is absent.
func rowIDs(row native.Object, fields CurrencyFields) (string, string) {
	currencyID := native.String(row, fields.ID)
	chain := native.String(row, fields.Network)
	if chain == "" {
		chain = currencyID
	}
	splitCurrency, networkID := SplitCompound(chain, fields.CompoundDelimiter)
	if networkID == "" {
		networkID = chain
		splitCurrency = currencyID
	}
	if currencyID == "" {
		currencyID = splitCurrency
	}
	return currencyID, networkID
}

// CurrenciesFromMarkets derives currencies when no currency endpoint exists,
// keeping the finest precision seen for each code.
func CurrenciesFromMarkets(markets []*model.Market) map[string]model.Currency {
	defaultPrecision := "0.00000001"
	out := map[string]model.Currency{}
	add := func(id, code string, precision decimal.NullDecimal) {
		if code == "" {
			return
		}
		p := native.FromDecimal(precision)
		if p == "" {
			p = defaultPrecision
		}
		if existing, ok := out[code]; ok {
			if precise.Lt(p, native.FromDecimal(existing.Precision)) {
				existing.Precision = native.ToDecimal(p)
				out[code] = existing
			}
			return
		}
		if id == "" {
			id = code
		}
		out[code] = model.Currency{
			Code:      code,
			ID:        id,
			Precision: native.ToDecimal(p),
			Networks:  map[string]model.Network{},
		}
	}
	for _, m := range markets {
		add(m.BaseID, m.Base, m.Precision.Amount)
		add(m.QuoteID, m.Quote, m.Precision.Price)
	}
	return out
}
