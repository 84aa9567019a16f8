package loader

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/profile"
	"exchangenorm/src/repository"
)

type fakeSource struct {
	mu            sync.Mutex
	marketRows    []native.Object
	currencyRows  []native.Object
	marketErr     error
	currencyErr   error
	fetches       int
	onFetch       func(n int)
	ingestedMkts  []native.Object
	ingestedCcies []native.Object
}

func (f *fakeSource) Profile() profile.Profile { return profile.OKX() }

func (f *fakeSource) FetchMarketRows(ctx context.Context) ([]native.Object, error) {
	f.mu.Lock()
	f.fetches++
	n := f.fetches
	f.mu.Unlock()
	if f.onFetch != nil {
		f.onFetch(n)
	}
	return f.marketRows, f.marketErr
}

func (f *fakeSource) FetchCurrencyRows(ctx context.Context) ([]native.Object, error) {
	return f.currencyRows, f.currencyErr
}

func (f *fakeSource) IngestMarkets(rows []native.Object) []model.Market {
	f.ingestedMkts = rows
	return nil
}

func (f *fakeSource) IngestCurrencies(rows []native.Object) map[string]model.Currency {
	f.ingestedCcies = rows
	return nil
}

type fakeStore struct {
	saved  map[model.SnapshotKind][]native.Object
	pruned map[model.SnapshotKind]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[model.SnapshotKind][]native.Object{}, pruned: map[model.SnapshotKind]int{}}
}

func (s *fakeStore) Save(ctx context.Context, exchange string, kind model.SnapshotKind, rows []native.Object) (*model.ListingSnapshot, error) {
	s.saved[kind] = rows
	return &model.ListingSnapshot{ID: uint(len(s.saved)), Exchange: exchange, Kind: kind, Rows: len(rows)}, nil
}

func (s *fakeStore) Latest(ctx context.Context, exchange string, kind model.SnapshotKind) (*model.ListingSnapshot, []native.Object, error) {
	rows, ok := s.saved[kind]
	if !ok {
		return nil, nil, repository.ErrSnapshotNotFound
	}
	return &model.ListingSnapshot{ID: 1, Exchange: exchange, Kind: kind, Rows: len(rows), CreatedAt: time.Now()}, rows, nil
}

func (s *fakeStore) Prune(ctx context.Context, exchange string, kind model.SnapshotKind, keep int) (int64, error) {
	s.pruned[kind] = keep
	return 0, nil
}

var (
	marketRows   = []native.Object{{"instId": "BTC-USDT", "instType": "SPOT"}}
	currencyRows = []native.Object{{"ccy": "BTC", "chain": "BTC-Bitcoin"}}
)

func TestRefreshPersistsAndIngests(t *testing.T) {
	src := &fakeSource{marketRows: marketRows, currencyRows: currencyRows}
	store := newFakeStore()
	l := New(src, store, Config{Keep: 3})

	require.NoError(t, l.Refresh(context.Background()))
	assert.Equal(t, marketRows, store.saved[model.SnapshotMarkets])
	assert.Equal(t, currencyRows, store.saved[model.SnapshotCurrencies])
	assert.Equal(t, 3, store.pruned[model.SnapshotMarkets])
	assert.Equal(t, marketRows, src.ingestedMkts)
	assert.Equal(t, currencyRows, src.ingestedCcies)
}

func TestRefreshWithoutCurrencies(t *testing.T) {
	src := &fakeSource{marketRows: marketRows, currencyErr: errors.New("401")}
	store := newFakeStore()
	l := New(src, store, Config{Keep: 3})

	require.NoError(t, l.Refresh(context.Background()))
	assert.NotContains(t, store.saved, model.SnapshotCurrencies)
	assert.Nil(t, src.ingestedCcies)
	assert.Equal(t, marketRows, src.ingestedMkts)
}

func TestRefreshMarketsFail(t *testing.T) {
	src := &fakeSource{marketErr: errors.New("timeout"), currencyRows: currencyRows}
	store := newFakeStore()
	l := New(src, store, Config{Keep: 3})

	require.Error(t, l.Refresh(context.Background()))
	assert.Empty(t, store.saved)
	assert.Nil(t, src.ingestedMkts)
	assert.Nil(t, src.ingestedCcies)

	empty := &fakeSource{}
	require.Error(t, New(empty, nil, Config{}).Refresh(context.Background()))
}

func TestWarm(t *testing.T) {
	store := newFakeStore()
	store.saved[model.SnapshotMarkets] = marketRows
	src := &fakeSource{}

	require.NoError(t, New(src, store, Config{}).Warm(context.Background()))
	assert.Equal(t, marketRows, src.ingestedMkts)
	assert.Nil(t, src.ingestedCcies)
	assert.Zero(t, src.fetches)
}

func TestWarmWithoutSnapshot(t *testing.T) {
	err := New(&fakeSource{}, newFakeStore(), Config{}).Warm(context.Background())
	require.ErrorIs(t, err, repository.ErrSnapshotNotFound)

	require.Error(t, New(&fakeSource{}, nil, Config{}).Warm(context.Background()))
}

func TestLoopRetriesWithBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := &fakeSource{marketErr: errors.New("down")}
	src.onFetch = func(n int) {
		if n == 3 {
			cancel()
		}
	}
	l := New(src, nil, Config{Interval: time.Hour, BackoffMin: time.Millisecond, BackoffMax: 5 * time.Millisecond})

	done := make(chan error, 1)
	go func() { done <- l.Loop(ctx) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.GreaterOrEqual(t, src.fetches, 3)
}
