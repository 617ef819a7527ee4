package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LowStockThreshold is the policy constant below which a product counts as
// running low. Fixed at 3 units.
const LowStockThreshold = 3

// StockStatus is the derived presentation state of a product's stock level.
// It is computed, never stored.
type StockStatus string

const (
	StockOut StockStatus = "out_of_stock"
	StockLow StockStatus = "low_stock"
	StockIn  StockStatus = "in_stock"
)

// Product is a catalogue item. Documents live in the `products` collection;
// decoding into this closed struct is what turns the store's loose documents
// into typed records — absent fields take their zero value (a missing stock
// count reads as 0).
type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Price      string             `bson:"price" json:"price"` // display string, e.g. "R$ 120,00"
	Image      string             `bson:"image" json:"image"`
	Stock      int                `bson:"stock,omitempty" json:"stock"`
	InShowcase bool               `bson:"inShowcase" json:"inShowcase"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// StockState classifies the current stock count against the low-stock policy.
func (p Product) StockState() StockStatus {
	switch {
	case p.Stock <= 0:
		return StockOut
	case p.Stock < LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}
