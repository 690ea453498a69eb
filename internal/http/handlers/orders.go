package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stackmart/shophub/internal/domain/order"
)

type OrdersRepository interface {
	List(ctx context.Context, query string) ([]order.Order, error)
	GetByID(ctx context.Context, id string) (order.Order, error)
	Create(ctx context.Context, o order.Order) (order.Order, error)
	Update(ctx context.Context, id string, req order.UpdateOrderRequest) (order.Order, error)
	Delete(ctx context.Context, id string) error
}

type OrdersHandler struct {
	repo OrdersRepository
}

func NewOrdersHandler(repo OrdersRepository) *OrdersHandler {
	return &OrdersHandler{repo: repo}
}

func (h *OrdersHandler) ListOrders(ctx *gin.Context) {
	orders, err := h.repo.List(ctx.Request.Context(), ctx.Query("q"))

	if err != nil {
		RespondInternal(ctx, "Could not list orders", err)
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

func (h *OrdersHandler) GetOrderById(ctx *gin.Context) {
	o, err := h.repo.GetByID(ctx.Request.Context(), ctx.Param("id"))

	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			RespondNotFound(ctx, "No valid entry found for provided ID")
			return
		}

		RespondInternal(ctx, "Could not fetch order", err)
		return
	}

	ctx.JSON(http.StatusOK, o)
}

func (h *OrdersHandler) CreateOrder(ctx *gin.Context) {
	var req order.CreateOrderRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Title == "" {
		RespondBadRequest(ctx, "Title is required")
		return
	}

	if req.Description == "" {
		RespondBadRequest(ctx, "Description is required")
		return
	}

	if len(req.Products) == 0 {
		RespondBadRequest(ctx, "Products are required")
		return
	}

	if !validLineItems(req.Products) {
		RespondBadRequest(ctx, "Each product must include productId, quantity and price")
		return
	}

	created, err := h.repo.Create(ctx.Request.Context(), order.NewFromCreateRequest(req))

	if err != nil {
		RespondInternal(ctx, "Could not create order", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":      "Created order successfully",
		"createdOrder": created,
	})
}

// Price is a pointer on the wire so a missing price is rejected rather than
// silently stored as a free item; an explicit 0 stays legal.
func validLineItems(items []order.LineItemRequest) bool {
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 || item.Price == nil {
			return false
		}
	}

	return true
}

func (h *OrdersHandler) UpdateOrder(ctx *gin.Context) {
	var req order.UpdateOrderRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Empty() {
		RespondBadRequest(ctx, "You must provide at least one param to update (title, description, products)")
		return
	}

	if req.Products != nil && !validLineItems(req.Products) {
		RespondBadRequest(ctx, "Each product must include productId, quantity and price")
		return
	}

	updated, err := h.repo.Update(ctx.Request.Context(), ctx.Param("id"), req)

	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			RespondNotFound(ctx, "No valid entry found for provided ID")
			return
		}

		RespondInternal(ctx, "Could not update order", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *OrdersHandler) DeleteOrder(ctx *gin.Context) {
	err := h.repo.Delete(ctx.Request.Context(), ctx.Param("id"))

	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			RespondNotFound(ctx, "Order not found")
			return
		}

		RespondInternal(ctx, "Could not delete order", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
