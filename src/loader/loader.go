// Package loader keeps the registries filled: it downloads listings, stores
// them as snapshots and can rebuild the registries from the newest snapshot.
package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jpillora/backoff"
	logger "github.com/sirupsen/logrus"

	"exchangenorm/src/model"
	"exchangenorm/src/native"
	"exchangenorm/src/profile"
	"exchangenorm/src/repository"
)

// Source downloads and ingests listings. *connectors.Client implements it.
type Source interface {
	Profile() profile.Profile
	FetchMarketRows(ctx context.Context) ([]native.Object, error)
	FetchCurrencyRows(ctx context.Context) ([]native.Object, error)
	IngestMarkets(rows []native.Object) []model.Market
	IngestCurrencies(rows []native.Object) map[string]model.Currency
}

// Store persists listing snapshots. *repository.SnapshotRepository implements it.
type Store interface {
	Save(ctx context.Context, exchange string, kind model.SnapshotKind, rows []native.Object) (*model.ListingSnapshot, error)
	Latest(ctx context.Context, exchange string, kind model.SnapshotKind) (*model.ListingSnapshot, []native.Object, error)
	Prune(ctx context.Context, exchange string, kind model.SnapshotKind, keep int) (int64, error)
}

type Loader struct {
	source Source
	store  Store
	cfg    Config
}

// New builds a loader; store may be nil, then nothing is persisted.
func New(source Source, store Store, cfg Config) *Loader {
	return &Loader{source: source, store: store, cfg: cfg}
}

func (l *Loader) exchange() string {
	return l.source.Profile().ID
}

// Refresh downloads currencies and markets, stores them and swaps them into
// the registries. Currencies are optional; markets are not.
func (l *Loader) Refresh(ctx context.Context) error {
	currencies, err := l.source.FetchCurrencyRows(ctx)
	if err != nil {
		logger.WithError(err).WithField("exchange", l.exchange()).
			Warn("Currency listing unavailable, currencies will be derived from markets")
		currencies = nil
	}
	markets, err := l.source.FetchMarketRows(ctx)
	if err != nil {
		return fmt.Errorf("refresh markets: %w", err)
	}
	if len(markets) == 0 {
		return fmt.Errorf("refresh markets: %s returned no instruments", l.exchange())
	}

	if len(currencies) > 0 {
		l.persist(ctx, model.SnapshotCurrencies, currencies)
		l.source.IngestCurrencies(currencies)
	}
	l.persist(ctx, model.SnapshotMarkets, markets)
	l.source.IngestMarkets(markets)
	return nil
}

// persist failures are logged; the registries still get the fresh data.
func (l *Loader) persist(ctx context.Context, kind model.SnapshotKind, rows []native.Object) {
	if l.store == nil {
		return
	}
	if _, err := l.store.Save(ctx, l.exchange(), kind, rows); err != nil {
		logger.WithError(err).WithField("kind", kind).Error("Failed to save listing snapshot")
		return
	}
	if _, err := l.store.Prune(ctx, l.exchange(), kind, l.cfg.Keep); err != nil {
		logger.WithError(err).WithField("kind", kind).Warn("Failed to prune listing snapshots")
	}
}

// Warm fills the registries from the newest stored snapshots without
// touching the network.
func (l *Loader) Warm(ctx context.Context) error {
	if l.store == nil {
		return errors.New("warm start needs a snapshot store")
	}
	_, currencies, err := l.store.Latest(ctx, l.exchange(), model.SnapshotCurrencies)
	switch {
	case err == nil:
		l.source.IngestCurrencies(currencies)
	case errors.Is(err, repository.ErrSnapshotNotFound):
	default:
		return fmt.Errorf("warm currencies: %w", err)
	}

	snap, markets, err := l.store.Latest(ctx, l.exchange(), model.SnapshotMarkets)
	if err != nil {
		return fmt.Errorf("warm markets: %w", err)
	}
	l.source.IngestMarkets(markets)
	logger.WithFields(map[string]interface{}{
		"exchange": l.exchange(),
		"snapshot": snap.ID,
		"taken":    snap.CreatedAt,
	}).Info("Registries warmed from snapshot")
	return nil
}

// Loop refreshes every Interval until ctx is done. Failed refreshes retry
// sooner, with jittered exponential backoff.
func (l *Loader) Loop(ctx context.Context) error {
	b := &backoff.Backoff{
		Min:    l.cfg.BackoffMin,
		Max:    l.cfg.BackoffMax,
		Factor: 2,
		Jitter: true,
	}
	wait := time.Duration(0)
	for {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("loader loop stopped")
			return nil
		case <-timer.C:
		}

		if err := l.Refresh(ctx); err != nil {
			wait = b.Duration()
			logger.WithError(err).WithFields(map[string]interface{}{
				"attempt": b.Attempt(),
				"retryIn": wait.String(),
			}).Error("Listing refresh failed")
			continue
		}
		b.Reset()
		wait = l.cfg.Interval
	}
}
