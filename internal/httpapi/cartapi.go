package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightertomorrows/website-backend/internal/domain/cart"
)

type cartResponse struct {
	Cart   cart.Cart   `json:"cart"`
	Totals cart.Totals `json:"totals"`
}

func (s *Server) cartJSON(w http.ResponseWriter, c cart.Cart) {
	s.writeJSON(w, http.StatusOK, cartResponse{Cart: c, Totals: c.Totals()})
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	c, err := s.deps.Cart.Get()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.cartJSON(w, c)
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var item cart.Item
	if !s.decode(w, r, &item) {
		return
	}
	c, err := s.deps.Cart.Add(item)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.cartJSON(w, c)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) handleSetCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if !s.decode(w, r, &req) {
		return
	}
	c, err := s.deps.Cart.SetQuantity(chi.URLParam(r, "variantID"), req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.cartJSON(w, c)
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, err := s.deps.Cart.Remove(chi.URLParam(r, "variantID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.cartJSON(w, c)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	c, err := s.deps.Cart.Clear()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.cartJSON(w, c)
}
