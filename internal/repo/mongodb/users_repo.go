package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/stackmart/shophub/internal/domain/user"
	"github.com/stackmart/shophub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UsersRepo struct {
	col *mongo.Collection
	obs *observability.Prom
}

func NewUsersRepo(database *mongo.Database, obs *observability.Prom) *UsersRepo {
	return &UsersRepo{
		col: database.Collection("users"),
		obs: obs,
	}
}

// List returns all users, optionally narrowed to names containing query
// (case-insensitive). The query string is treated as a literal, not a
// pattern.
func (r *UsersRepo) List(ctx context.Context, query string) ([]user.User, error) {
	filter := bson.M{}

	if query != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(query),
			Options: "i",
		}}
	}

	out := []user.User{}

	err := r.obs.ObserveDB("users.list", func() error {
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

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.obs.ObserveDB("users.get", func() error {
		return r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.obs.ObserveDB("users.get_by_email", func() error {
		return r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	err := r.obs.ObserveDB("users.create", func() error {
		_, err := r.col.InsertOne(ctx, u)
		return err
	})

	if err != nil {
		// unique index on email: a racing duplicate insert lands here
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrEmailTaken
		}

		return user.User{}, err
	}

	return u, nil
}

// Update applies only the supplied fields; omitted ones keep their prior
// values. Returns the post-update document.
func (r *UsersRepo) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}

	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.ImageURL != nil {
		set["imageUrl"] = *req.ImageURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u user.User

	err := r.obs.ObserveDB("users.update", func() error {
		return r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	var deleted int64

	err := r.obs.ObserveDB("users.delete", func() error {
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
		return user.ErrNotFound
	}

	return nil
}
