package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stackmart/shophub/internal/domain/order"
	"github.com/stackmart/shophub/internal/http/handlers"
)

type fakeOrdersRepo struct {
	listFn   func(ctx context.Context, query string) ([]order.Order, error)
	getFn    func(ctx context.Context, id string) (order.Order, error)
	createFn func(ctx context.Context, o order.Order) (order.Order, error)
	updateFn func(ctx context.Context, id string, req order.UpdateOrderRequest) (order.Order, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeOrdersRepo) List(ctx context.Context, query string) ([]order.Order, error) {
	if f.listFn != nil {
		return f.listFn(ctx, query)
	}
	return []order.Order{}, nil
}

func (f *fakeOrdersRepo) GetByID(ctx context.Context, id string) (order.Order, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return order.Order{}, order.ErrNotFound
}

func (f *fakeOrdersRepo) Create(ctx context.Context, o order.Order) (order.Order, error) {
	if f.createFn != nil {
		return f.createFn(ctx, o)
	}
	return o, nil
}

func (f *fakeOrdersRepo) Update(ctx context.Context, id string, req order.UpdateOrderRequest) (order.Order, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}
	return order.Order{}, order.ErrNotFound
}

func (f *fakeOrdersRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return order.ErrNotFound
}

func TestCreateOrderHandler(t *testing.T) {
	validItems := `[{"productId":"p1","quantity":2,"price":9.99,"image":"http://img/widget.png"}]`

	tests := []struct {
		name           string
		body           string
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:           "success",
			body:           `{"title":"Order #1","description":"two widgets","products":` + validItems + `}`,
			wantStatusCode: http.StatusCreated,
			wantMessage:    "Created order successfully",
		},
		{
			name:           "missing_title",
			body:           `{"description":"two widgets","products":` + validItems + `}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Title is required",
		},
		{
			name:           "missing_description",
			body:           `{"title":"Order #1","products":` + validItems + `}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Description is required",
		},
		{
			name:           "missing_products",
			body:           `{"title":"Order #1","description":"two widgets"}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Products are required",
		},
		{
			name:           "empty_products",
			body:           `{"title":"Order #1","description":"two widgets","products":[]}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Products are required",
		},
		{
			name:           "item_without_product_id",
			body:           `{"title":"Order #1","description":"two widgets","products":[{"quantity":2,"price":9.99}]}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Each product must include productId, quantity and price",
		},
		{
			name:           "item_with_zero_quantity",
			body:           `{"title":"Order #1","description":"two widgets","products":[{"productId":"p1","quantity":0,"price":9.99}]}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Each product must include productId, quantity and price",
		},
		{
			// omitted price must not slip through as a free item
			name:           "item_without_price",
			body:           `{"title":"Order #1","description":"two widgets","products":[{"productId":"p1","quantity":2}]}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Each product must include productId, quantity and price",
		},
		{
			name:           "item_with_explicit_zero_price",
			body:           `{"title":"Order #1","description":"a freebie","products":[{"productId":"p1","quantity":1,"price":0}]}`,
			wantStatusCode: http.StatusCreated,
			wantMessage:    "Created order successfully",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewOrdersHandler(&fakeOrdersRepo{})
			r := setupRouter(http.MethodPost, "/orders", h.CreateOrder)

			req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if !strings.Contains(w.Body.String(), tt.wantMessage) {
				t.Fatalf("body %q does not contain %q", w.Body.String(), tt.wantMessage)
			}

			if tt.wantStatusCode == http.StatusCreated {
				var resp struct {
					CreatedOrder order.Order `json:"createdOrder"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal response: %v", err)
				}
				if resp.CreatedOrder.ID == "" {
					t.Fatal("expected server-generated order id")
				}
				if len(resp.CreatedOrder.Products) != 1 || resp.CreatedOrder.Products[0].ProductID != "p1" {
					t.Fatalf("line items not preserved: %+v", resp.CreatedOrder.Products)
				}
			}
		})
	}
}

func TestListOrdersHandler(t *testing.T) {
	var gotQuery string
	repo := &fakeOrdersRepo{
		listFn: func(ctx context.Context, query string) ([]order.Order, error) {
			gotQuery = query
			return []order.Order{}, nil
		},
	}

	h := handlers.NewOrdersHandler(repo)
	r := setupRouter(http.MethodGet, "/orders", h.ListOrders)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?q=birthday", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}
	if gotQuery != "birthday" {
		t.Fatalf("repo received query %q", gotQuery)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("empty list must serialize as [], got %q", w.Body.String())
	}
}

func TestUpdateOrderHandler(t *testing.T) {
	t.Run("empty_body_rejected", func(t *testing.T) {
		h := handlers.NewOrdersHandler(&fakeOrdersRepo{})
		r := setupRouter(http.MethodPatch, "/orders/:id", h.UpdateOrder)

		req := httptest.NewRequest(http.MethodPatch, "/orders/o1", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("got status %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "You must provide at least one param to update (title, description, products)") {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("replaces_line_items", func(t *testing.T) {
		repo := &fakeOrdersRepo{
			updateFn: func(ctx context.Context, id string, req order.UpdateOrderRequest) (order.Order, error) {
				if req.Title != nil || req.Description != nil {
					t.Fatalf("untouched fields must stay nil: %+v", req)
				}
				if len(req.Products) != 1 || req.Products[0].Quantity != 5 {
					t.Fatalf("line items not passed through: %+v", req.Products)
				}
				return order.Order{ID: id, Title: "Order #1", Products: order.LineItems(req.Products)}, nil
			},
		}

		h := handlers.NewOrdersHandler(repo)
		r := setupRouter(http.MethodPatch, "/orders/:id", h.UpdateOrder)

		body := `{"products":[{"productId":"p2","quantity":5,"price":3.5}]}`
		req := httptest.NewRequest(http.MethodPatch, "/orders/o1", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("item_without_price_rejected", func(t *testing.T) {
		h := handlers.NewOrdersHandler(&fakeOrdersRepo{})
		r := setupRouter(http.MethodPatch, "/orders/:id", h.UpdateOrder)

		body := `{"products":[{"productId":"p2","quantity":5}]}`
		req := httptest.NewRequest(http.MethodPatch, "/orders/o1", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Each product must include productId, quantity and price") {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("not_found", func(t *testing.T) {
		h := handlers.NewOrdersHandler(&fakeOrdersRepo{})
		r := setupRouter(http.MethodPatch, "/orders/:id", h.UpdateOrder)

		req := httptest.NewRequest(http.MethodPatch, "/orders/missing", bytes.NewBufferString(`{"title":"Renamed"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("got status %d", w.Code)
		}
	})
}

func TestDeleteOrderHandler(t *testing.T) {
	deleted := false
	repo := &fakeOrdersRepo{
		deleteFn: func(ctx context.Context, id string) error {
			if deleted {
				return order.ErrNotFound
			}
			deleted = true
			return nil
		},
	}

	h := handlers.NewOrdersHandler(repo)
	r := setupRouter(http.MethodDelete, "/orders/:id", h.DeleteOrder)

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodDelete, "/orders/o1", nil))
	if w1.Code != http.StatusOK || !strings.Contains(w1.Body.String(), "Order deleted") {
		t.Fatalf("first delete: %d %s", w1.Code, w1.Body.String())
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodDelete, "/orders/o1", nil))
	if w2.Code != http.StatusNotFound || !strings.Contains(w2.Body.String(), "Order not found") {
		t.Fatalf("second delete: %d %s", w2.Code, w2.Body.String())
	}
}
