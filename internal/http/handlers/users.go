package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stackmart/shophub/internal/auth"
	"github.com/stackmart/shophub/internal/domain/user"
	"github.com/stackmart/shophub/internal/security"
	"github.com/stackmart/shophub/internal/validate"
)

type UsersRepository interface {
	List(ctx context.Context, query string) ([]user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
	Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.User, error)
	Delete(ctx context.Context, id string) error
}

type UsersHandler struct {
	repo   UsersRepository
	tokens *auth.Issuer
}

func NewUsersHandler(repo UsersRepository, tokens *auth.Issuer) *UsersHandler {
	return &UsersHandler{
		repo:   repo,
		tokens: tokens,
	}
}

func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	users, err := h.repo.List(ctx.Request.Context(), ctx.Query("q"))

	if err != nil {
		RespondInternal(ctx, "Could not list users", err)
		return
	}

	// password hash is json:"-" on the domain type; nothing to scrub here
	ctx.JSON(http.StatusOK, users)
}

func (h *UsersHandler) GetUserById(ctx *gin.Context) {
	u, err := h.repo.GetByID(ctx.Request.Context(), ctx.Param("id"))

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "No valid entry found for provided ID")
			return
		}

		RespondInternal(ctx, "Could not fetch user", err)
		return
	}

	ctx.JSON(http.StatusOK, u)
}

// SignUp validates the payload in a fixed order so the first failing field
// decides the single error returned, then hashes, persists, and issues a
// token pair.
func (h *UsersHandler) SignUp(ctx *gin.Context) {
	var req user.SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Name == "" {
		RespondBadRequest(ctx, "Name is required")
		return
	}

	if req.Email == "" {
		RespondBadRequest(ctx, "Email is required")
		return
	}

	if !validate.Email(req.Email) {
		RespondBadRequest(ctx, "Invalid email format")
		return
	}

	if req.Password == "" {
		RespondBadRequest(ctx, "Password is required")
		return
	}

	if !validate.Password(req.Password) {
		RespondBadRequest(ctx, "Password must contain at least 6 numbers and 3 letters")
		return
	}

	rc := ctx.Request.Context()

	// duplicate check runs before any hashing work
	_, err := h.repo.GetByEmail(rc, req.Email)

	if err == nil {
		RespondConflict(ctx, "Email already exists")
		return
	}

	if !errors.Is(err, user.ErrNotFound) {
		RespondInternal(ctx, "Could not create user", err)
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user", err)
		return
	}

	created, err := h.repo.Create(rc, user.NewFromSignUpRequest(req, hash))

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondConflict(ctx, "Email already exists")
			return
		}

		RespondInternal(ctx, "Could not create user", err)
		return
	}

	access, refresh, err := h.tokens.IssuePair(created.Email, created.ID)

	if err != nil {
		RespondInternal(ctx, "Could not generate tokens", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":      "User Created successfully",
		"user":         created,
		"token":        access,
		"refreshToken": refresh,
	})
}

func (h *UsersHandler) LogIn(ctx *gin.Context) {
	var req user.LogInRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Email == "" {
		RespondBadRequest(ctx, "Email is required")
		return
	}

	if !validate.Email(req.Email) {
		RespondBadRequest(ctx, "Invalid email format")
		return
	}

	if req.Password == "" {
		RespondBadRequest(ctx, "Password is required")
		return
	}

	if !validate.Password(req.Password) {
		RespondBadRequest(ctx, "Password must contain at least 6 numbers and 3 letters")
		return
	}

	found, err := h.repo.GetByEmail(ctx.Request.Context(), req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "No account is linked to this email")
			return
		}

		RespondInternal(ctx, "Could not log in", err)
		return
	}

	// wrong password answers 400, not 401: the gate only guards tokens,
	// credential misses are a plain client error here
	if !security.VerifyPassword(req.Password, found.Password) {
		RespondError(ctx, http.StatusBadRequest, "invalid_credentials", "Password is incorrect!", nil)
		return
	}

	access, refresh, err := h.tokens.IssuePair(found.Email, found.ID)

	if err != nil {
		RespondInternal(ctx, "Could not generate tokens", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "Auth successful",
		"user":         found,
		"token":        access,
		"refreshToken": refresh,
	})
}

// RenewToken re-issues both tokens from a valid refresh token. Tokens are
// self-contained, so no repository lookup happens.
func (h *UsersHandler) RenewToken(ctx *gin.Context) {
	var req user.RenewTokenRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.RefreshToken == "" {
		RespondBadRequest(ctx, "Refresh token is required")
		return
	}

	access, refresh, err := h.tokens.Renew(req.RefreshToken)

	if err != nil {
		RespondError(ctx, http.StatusBadRequest, "invalid_refresh", "Invalid refresh token", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "Token renewed",
		"token":        access,
		"refreshToken": refresh,
	})
}

func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	var req user.UpdateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Empty() {
		RespondBadRequest(ctx, "You must provide at least one param to update (name, imageUrl)")
		return
	}

	updated, err := h.repo.Update(ctx.Request.Context(), ctx.Param("id"), req)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "No valid entry found for provided ID")
			return
		}

		RespondInternal(ctx, "Could not update user", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	err := h.repo.Delete(ctx.Request.Context(), ctx.Param("id"))

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not delete user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
