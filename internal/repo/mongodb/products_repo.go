package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/stackmart/shophub/internal/domain/product"
	"github.com/stackmart/shophub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductsRepo struct {
	col *mongo.Collection
	obs *observability.Prom
}

func NewProductsRepo(database *mongo.Database, obs *observability.Prom) *ProductsRepo {
	return &ProductsRepo{
		col: database.Collection("products"),
		obs: obs,
	}
}

func (r *ProductsRepo) List(ctx context.Context, query string) ([]product.Product, error) {
	filter := bson.M{}

	if query != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(query),
			Options: "i",
		}}
	}

	out := []product.Product{}

	err := r.obs.ObserveDB("products.list", func() error {
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

func (r *ProductsRepo) GetByID(ctx context.Context, id string) (product.Product, error) {
	var p product.Product

	err := r.obs.ObserveDB("products.get", func() error {
		return r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product.Product{}, product.ErrNotFound
		}

		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) Create(ctx context.Context, p product.Product) (product.Product, error) {
	err := r.obs.ObserveDB("products.create", func() error {
		_, err := r.col.InsertOne(ctx, p)
		return err
	})

	if err != nil {
		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}

	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.ImageURL != nil {
		set["imageUrl"] = *req.ImageURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p product.Product

	err := r.obs.ObserveDB("products.update", func() error {
		return r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product.Product{}, product.ErrNotFound
		}

		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) Delete(ctx context.Context, id string) error {
	var deleted int64

	err := r.obs.ObserveDB("products.delete", func() error {
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
		return product.ErrNotFound
	}

	return nil
}
