package product

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Price     float64   `bson:"price" json:"price"`
	ImageURL  string    `bson:"imageUrl" json:"imageUrl"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateProductRequest struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	ImageURL string   `json:"imageUrl"`
}

type UpdateProductRequest struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	ImageURL *string  `json:"imageUrl"`
}

func (r UpdateProductRequest) Empty() bool {
	return r.Name == nil && r.Price == nil && r.ImageURL == nil
}
