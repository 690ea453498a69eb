package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/stackmart/shophub/internal/domain/order"
	"github.com/stackmart/shophub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrdersRepo struct {
	col *mongo.Collection
	obs *observability.Prom
}

func NewOrdersRepo(database *mongo.Database, obs *observability.Prom) *OrdersRepo {
	return &OrdersRepo{
		col: database.Collection("orders"),
		obs: obs,
	}
}

// The order search field is title, not name.
func (r *OrdersRepo) List(ctx context.Context, query string) ([]order.Order, error) {
	filter := bson.M{}

	if query != "" {
		filter["title"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(query),
			Options: "i",
		}}
	}

	out := []order.Order{}

	err := r.obs.ObserveDB("orders.list", func() error {
		cur, err := r.col.Find(ctx, filter)

		if err != nil {
			return err
		}

		return cur.All(ctx, &out)
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *OrdersRepo) GetByID(ctx context.Context, id string) (order.Order, error) {
	var o order.Order

	err := r.obs.ObserveDB("orders.get", func() error {
		return r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return order.Order{}, order.ErrNotFound
		}

		return order.Order{}, err
	}

	return o, nil
}

func (r *OrdersRepo) Create(ctx context.Context, o order.Order) (order.Order, error) {
	err := r.obs.ObserveDB("orders.create", func() error {
		_, err := r.col.InsertOne(ctx, o)
		return err
	})

	if err != nil {
		return order.Order{}, err
	}

	return o, nil
}

func (r *OrdersRepo) Update(ctx context.Context, id string, req order.UpdateOrderRequest) (order.Order, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}

	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Products != nil {
		set["products"] = order.LineItems(req.Products)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var o order.Order

	err := r.obs.ObserveDB("orders.update", func() error {
		return r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&o)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return order.Order{}, order.ErrNotFound
		}

		return order.Order{}, err
	}

	return o, nil
}

func (r *OrdersRepo) Delete(ctx context.Context, id string) error {
	var deleted int64

	err := r.obs.ObserveDB("orders.delete", func() error {
		res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})

		if err != nil {
			return err
		}

		deleted = res.DeletedCount
		return nil
	})

	if err != nil {
		return err
	}

	if deleted == 0 {
		return order.ErrNotFound
	}

	return nil
}
