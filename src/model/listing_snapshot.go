package model

import "time"

type SnapshotKind string

const (
	SnapshotMarkets    SnapshotKind = "markets"
	SnapshotCurrencies SnapshotKind = "currencies"
)

// ListingSnapshot keeps a raw native listing payload so registries can be
// rebuilt without reaching the exchange.
type ListingSnapshot struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	Exchange string       `gorm:"size:50;not null;index:idx_listing_snapshots_exchange_kind,priority:1" json:"exchange"`
	Kind     SnapshotKind `gorm:"size:20;not null;index:idx_listing_snapshots_exchange_kind,priority:2" json:"kind"`
	Rows     int          `gorm:"column:row_count;not null" json:"rows"`

	// Payload is the JSON array of native rows as received.
	Payload string `gorm:"type:text;not null" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ListingSnapshot) TableName() string {
	return "listing_snapshots"
}
