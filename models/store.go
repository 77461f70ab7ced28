package models

import "time"

// Store is a known retail venue receipts can be verified against.
type Store struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string        `gorm:"size:255;not null;uniqueIndex"`
	Address   string        `gorm:"size:512"`
	Items     []CatalogItem `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CatalogItem is a product known to be sold by a store. Parsed receipt items
// are matched against these descriptions; the receipts themselves are never
// persisted.
type CatalogItem struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	StoreID     uint   `gorm:"index;not null"`
	Description string `gorm:"size:255;not null;index"`
}
