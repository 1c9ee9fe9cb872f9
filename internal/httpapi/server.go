package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightertomorrows/website-backend/internal/domain/cart"
	"github.com/brightertomorrows/website-backend/internal/domain/catalog"
	"github.com/brightertomorrows/website-backend/internal/domain/post"
	"github.com/brightertomorrows/website-backend/internal/domain/schedule"
	"github.com/brightertomorrows/website-backend/internal/domain/session"
	"github.com/brightertomorrows/website-backend/internal/sqlite"
	"github.com/brightertomorrows/website-backend/internal/upstream"
)

// PayPalGateway proxies checkout calls to PayPal.
type PayPalGateway interface {
	CreateOrder(ctx context.Context, amount float64, currency string) (json.RawMessage, error)
	CaptureOrder(ctx context.Context, orderID string) (*upstream.CaptureResult, error)
}

// ShopifySource lists shop products.
type ShopifySource interface {
	Products(ctx context.Context) (json.RawMessage, error)
}

// AirtableSource lists catalog records.
type AirtableSource interface {
	Records(ctx context.Context) (json.RawMessage, error)
}

// Mailer relays a message through the mail service.
type Mailer interface {
	Send(ctx context.Context, templateParams map[string]string) error
}

// OrderLog records captured orders.
type OrderLog interface {
	Insert(ctx context.Context, o *sqlite.Order) error
	List(ctx context.Context) ([]sqlite.Order, error)
}

// ContactLog records contact form submissions.
type ContactLog interface {
	Insert(ctx context.Context, s *sqlite.Submission) error
	List(ctx context.Context) ([]sqlite.Submission, error)
}

// PublicKeys are the client-side identifiers exposed by GET /api/config.
// These are publishable by design; secrets never leave the server.
type PublicKeys struct {
	PayPalClientID    string `json:"paypal_client_id,omitempty"`
	EmailJSServiceID  string `json:"emailjs_service_id,omitempty"`
	EmailJSTemplateID string `json:"emailjs_template_id,omitempty"`
	EmailJSPublicKey  string `json:"emailjs_public_key,omitempty"`
	ShopifyDomain     string `json:"shopify_domain,omitempty"`
}

// Deps holds everything the HTTP layer needs.
type Deps struct {
	Logger     *slog.Logger
	Posts      *post.Service
	Sessions   *session.Service
	Schedule   *schedule.Service
	Catalog    *catalog.Catalog
	Cart       *cart.Store
	PayPal     PayPalGateway
	Shopify    ShopifySource
	Airtable   AirtableSource
	Mailer     Mailer
	Orders     OrderLog
	Contacts   ContactLog
	PublicKeys PublicKeys
	PublicDir  string
}

// Server wires HTTP handlers.
type Server struct {
	deps   Deps
	logger *slog.Logger
	router chi.Router
}

// NewServer creates the site router with middleware and all routes.
func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	s := &Server{deps: deps, logger: deps.Logger}

	r := chi.NewRouter()
	r.Use(RequestLogger(s.logger))
	r.Use(CORS)

	r.Get("/health", s.handleHealth)
	r.Get("/api/config", s.handleConfig)
	r.Get("/api/programs", s.handlePrograms)

	r.Get("/api/posts", s.handleListPublished)
	r.Get("/api/posts/{id}", s.handleGetPublished)

	r.Post("/api/admin/login", s.handleLogin)
	r.Post("/api/admin/logout", s.handleLogout)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(s.RequireSession)
		r.Get("/posts", s.handleAdminListPosts)
		r.Post("/posts", s.handleAdminCreatePost)
		r.Get("/posts/{id}", s.handleAdminGetPost)
		r.Put("/posts/{id}", s.handleAdminUpdatePost)
		r.Delete("/posts/{id}", s.handleAdminDeletePost)
		r.Get("/orders", s.handleAdminListOrders)
		r.Get("/contact", s.handleAdminListContacts)
	})

	r.Post("/api/schedule/estimate", s.handleEstimate)
	r.Post("/api/schedule/compatibility", s.handleCompatibility)

	r.Get("/api/cart", s.handleGetCart)
	r.Post("/api/cart", s.handleAddCartItem)
	r.Put("/api/cart/{variantID}", s.handleSetCartQuantity)
	r.Delete("/api/cart", s.handleClearCart)
	r.Delete("/api/cart/{variantID}", s.handleRemoveCartItem)

	r.Post("/api/paypal/create-order", s.handleCreateOrder)
	r.Post("/api/paypal/capture-order", s.handleCaptureOrder)
	r.Get("/api/shopify/products", s.handleShopifyProducts)
	r.Get("/api/airtable/products", s.handleAirtableProducts)

	r.Post("/api/contact", s.handleContact)

	if deps.PublicDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(deps.PublicDir)))
	}

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.deps.PublicKeys)
}

func (s *Server) handlePrograms(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.deps.Catalog.All())
}
