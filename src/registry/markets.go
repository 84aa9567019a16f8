package registry

import (
	"sort"
	"strings"
	"sync/atomic"

	"exchangenorm/src/errs"
	"exchangenorm/src/model"
)

type marketSnapshot struct {
	bySymbol map[string]*model.Market
	byID     map[string][]*model.Market
	symbols  []string
	ids      []string
}

// MarketRegistry holds the loaded markets. Readers always see a complete
// snapshot; Load replaces it in a single pointer swap.
type MarketRegistry struct {
	snapshot   atomic.Pointer[marketSnapshot]
	currencies *CurrencyRegistry
}

func NewMarketRegistry(currencies *CurrencyRegistry) *MarketRegistry {
	r := &MarketRegistry{currencies: currencies}
	r.snapshot.Store(&marketSnapshot{
		bySymbol: map[string]*model.Market{},
		byID:     map[string][]*model.Market{},
	})
	return r
}

// Load publishes a new market set. Spot markets are indexed first under a
// shared native id.
func (r *MarketRegistry) Load(markets []model.Market) {
	sorted := make([]model.Market, len(markets))
	copy(sorted, markets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Spot && !sorted[j].Spot
	})

	snap := &marketSnapshot{
		bySymbol: make(map[string]*model.Market, len(sorted)),
		byID:     make(map[string][]*model.Market, len(sorted)),
	}
	for i := range sorted {
		m := &sorted[i]
		snap.bySymbol[m.Symbol] = m
		snap.byID[m.ID] = append(snap.byID[m.ID], m)
	}
	for s := range snap.bySymbol {
		snap.symbols = append(snap.symbols, s)
	}
	for id := range snap.byID {
		snap.ids = append(snap.ids, id)
	}
	sort.Strings(snap.symbols)
	sort.Strings(snap.ids)
	r.snapshot.Store(snap)
}

// Loaded reports whether any market has been ingested.
func (r *MarketRegistry) Loaded() bool {
	return len(r.snapshot.Load().bySymbol) > 0
}

func (r *MarketRegistry) Symbols() []string {
	return append([]string(nil), r.snapshot.Load().symbols...)
}

func (r *MarketRegistry) IDs() []string {
	return append([]string(nil), r.snapshot.Load().ids...)
}

// Markets returns every market ordered by symbol.
func (r *MarketRegistry) Markets() []*model.Market {
	snap := r.snapshot.Load()
	out := make([]*model.Market, 0, len(snap.symbols))
	for _, s := range snap.symbols {
		out = append(out, snap.bySymbol[s])
	}
	return out
}

// Resolve finds a market by unified symbol, then by native id, then by
// synthesizing an expired option descriptor.
func (r *MarketRegistry) Resolve(symbolOrID string) (*model.Market, error) {
	snap := r.snapshot.Load()
	if m, ok := snap.bySymbol[symbolOrID]; ok {
		return m, nil
	}
	if ms, ok := snap.byID[symbolOrID]; ok && len(ms) > 0 {
		return ms[0], nil
	}
	if m, err := SynthesizeOption(symbolOrID); err == nil {
		return m, nil
	}
	return nil, errs.New(errs.ErrBadSymbol, "market %s not found", symbolOrID)
}

// ReverseResolve maps a native id found in a response back to a market.
// When several markets share the id, the hint or marketType picks one; with
// neither it fails with ArgumentsRequired. Unknown ids yield a best-effort
// descriptor, split on delimiter when given.
func (r *MarketRegistry) ReverseResolve(nativeID string, hint *model.Market, delimiter string, marketType model.MarketType) (*model.Market, error) {
	if nativeID == "" {
		if hint != nil {
			return hint, nil
		}
		return &model.Market{}, nil
	}
	snap := r.snapshot.Load()
	if ms, ok := snap.byID[nativeID]; ok && len(ms) > 0 {
		if len(ms) == 1 {
			return ms[0], nil
		}
		if hint != nil {
			for _, m := range ms {
				if m == hint || m.Symbol == hint.Symbol {
					return m, nil
				}
			}
			if marketType == "" {
				marketType = hint.Type
			}
		}
		if marketType == "" {
			return nil, errs.New(errs.ErrArgumentsRequired, "market id %s is shared by %d markets, a market type is needed", nativeID, len(ms))
		}
		for _, m := range ms {
			if m.Type == marketType {
				return m, nil
			}
		}
		return ms[0], nil
	}
	if m, err := SynthesizeOption(nativeID); err == nil {
		return m, nil
	}
	if delimiter != "" {
		parts := strings.Split(nativeID, delimiter)
		if len(parts) == 2 {
			base := r.currencies.SafeCurrencyCode(parts[0])
			quote := r.currencies.SafeCurrencyCode(parts[1])
			return &model.Market{
				ID:      nativeID,
				Symbol:  base + "/" + quote,
				Base:    base,
				Quote:   quote,
				BaseID:  parts[0],
				QuoteID: parts[1],
			}, nil
		}
	}
	if hint != nil {
		return hint, nil
	}
	return &model.Market{ID: nativeID, Symbol: nativeID}, nil
}

// SafeSymbol returns the unified symbol for a native id, or the id itself.
func (r *MarketRegistry) SafeSymbol(nativeID string, hint *model.Market, delimiter string, marketType model.MarketType) string {
	m, err := r.ReverseResolve(nativeID, hint, delimiter, marketType)
	if err != nil || m == nil {
		return nativeID
	}
	return m.Symbol
}
