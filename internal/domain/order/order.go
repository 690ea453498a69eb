package order

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("order not found")

// LineItem is a product reference plus a quantity/price snapshot taken at
// order time.
type LineItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

type Order struct {
	ID          string     `bson:"_id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Products    []LineItem `bson:"products" json:"products"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// LineItemRequest is the wire form of a line item. Price is a pointer so an
// omitted price is distinguishable from a deliberate zero (free item).
type LineItemRequest struct {
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Price     *float64 `json:"price"`
	Image     string   `json:"image"`
}

type CreateOrderRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Products    []LineItemRequest `json:"products"`
}

type UpdateOrderRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Products    []LineItemRequest `json:"products"`
}

func (r UpdateOrderRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Products == nil
}
