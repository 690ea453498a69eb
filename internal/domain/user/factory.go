package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func NewFromSignUpRequest(req SignUpRequest, passwordHash string) User {
	now := time.Now().UTC()

	return User{
		ID:        primitive.NewObjectID().Hex(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  passwordHash,
		ImageURL:  req.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
