package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale is one entry of the append-only sales ledger. ProductID and
// ProductName are snapshots taken at sale time so the record survives later
// edits or deletion of the product. Sales are never updated or deleted.
type Sale struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID   string             `bson:"productId" json:"productId"`
	ProductName string             `bson:"productName" json:"productName"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	TotalPrice  float64            `bson:"totalPrice" json:"totalPrice"`
	Date        time.Time          `bson:"date" json:"date"`
}
