package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func NewFromCreateRequest(req CreateProductRequest) Product {
	now := time.Now().UTC()

	p := Product{
		ID:        primitive.NewObjectID().Hex(),
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.Price != nil {
		p.Price = *req.Price
	}

	return p
}
