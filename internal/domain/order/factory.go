package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func NewFromCreateRequest(req CreateOrderRequest) Order {
	now := time.Now().UTC()

	return Order{
		ID:          primitive.NewObjectID().Hex(),
		Title:       req.Title,
		Description: req.Description,
		Products:    LineItems(req.Products),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// LineItems converts request items into stored line items. Callers validate
// price presence before conversion; a nil price is kept as zero here.
func LineItems(reqs []LineItemRequest) []LineItem {
	if reqs == nil {
		return nil
	}

	items := make([]LineItem, 0, len(reqs))

	for _, r := range reqs {
		var price float64
		if r.Price != nil {
			price = *r.Price
		}

		items = append(items, LineItem{
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
			Price:     price,
			Image:     r.Image,
		})
	}

	return items
}
