package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/brightertomorrows/website-backend/internal/sqlite"
)

type createOrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "amount must be positive"})
		return
	}
	if req.Currency == "" {
		req.Currency = "CAD"
	}

	raw, err := s.deps.PayPal.CreateOrder(r.Context(), req.Amount, req.Currency)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeRaw(w, http.StatusOK, raw)
}

type captureOrderRequest struct {
	OrderID string `json:"order_id"`
}

func (s *Server) handleCaptureOrder(w http.ResponseWriter, r *http.Request) {
	var req captureOrderRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.OrderID == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "order_id is required"})
		return
	}

	result, err := s.deps.PayPal.CaptureOrder(r.Context(), req.OrderID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// The capture already happened; a failed audit write is logged, not
	// surfaced to the buyer.
	if s.deps.Orders != nil {
		order := &sqlite.Order{
			ID:            uuid.NewString(),
			PayPalOrderID: result.OrderID,
			Status:        result.Status,
			Amount:        result.Amount,
			Currency:      result.Currency,
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.deps.Orders.Insert(r.Context(), order); err != nil {
			s.logger.Error("recording captured order", "paypal_order_id", result.OrderID, "error", err)
		}
	}

	s.writeRaw(w, http.StatusOK, result.Raw)
}

func (s *Server) handleAdminListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.deps.Orders.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if orders == nil {
		orders = []sqlite.Order{}
	}
	s.writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleShopifyProducts(w http.ResponseWriter, r *http.Request) {
	raw, err := s.deps.Shopify.Products(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeRaw(w, http.StatusOK, raw)
}

func (s *Server) handleAirtableProducts(w http.ResponseWriter, r *http.Request) {
	raw, err := s.deps.Airtable.Records(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeRaw(w, http.StatusOK, raw)
}
