package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already exists")
)

type User struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"` // bcrypt hash, never serialized
	ImageURL  string    `bson:"imageUrl" json:"imageUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	ImageURL string `json:"imageUrl"`
}

type LogInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RenewTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Partial update: nil means the field was not supplied and keeps its
// prior value.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"imageUrl"`
}

func (r UpdateUserRequest) Empty() bool {
	return r.Name == nil && r.ImageURL == nil
}
