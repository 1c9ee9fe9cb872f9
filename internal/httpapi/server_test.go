package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brightertomorrows/website-backend/internal/domain/cart"
	"github.com/brightertomorrows/website-backend/internal/domain/catalog"
	"github.com/brightertomorrows/website-backend/internal/domain/post"
	"github.com/brightertomorrows/website-backend/internal/domain/schedule"
	"github.com/brightertomorrows/website-backend/internal/domain/session"
	"github.com/brightertomorrows/website-backend/internal/httpapi"
	"github.com/brightertomorrows/website-backend/internal/markdown"
	"github.com/brightertomorrows/website-backend/internal/postfile"
	"github.com/brightertomorrows/website-backend/internal/sqlite"
	"github.com/brightertomorrows/website-backend/internal/upstream"
)

type stubPayPal struct {
	failing bool
}

func (p *stubPayPal) CreateOrder(_ context.Context, amount float64, currency string) (json.RawMessage, error) {
	if p.failing {
		return nil, fmt.Errorf("%w: connection refused", upstream.ErrUpstream)
	}
	return json.RawMessage(fmt.Sprintf(`{"id":"ORDER-1","amount":"%.2f","currency":"%s"}`, amount, currency)), nil
}

func (p *stubPayPal) CaptureOrder(_ context.Context, orderID string) (*upstream.CaptureResult, error) {
	if p.failing {
		return nil, fmt.Errorf("%w: connection refused", upstream.ErrUpstream)
	}
	return &upstream.CaptureResult{
		OrderID:  orderID,
		Status:   "COMPLETED",
		Amount:   42.5,
		Currency: "CAD",
		Raw:      json.RawMessage(`{"id":"` + orderID + `","status":"COMPLETED"}`),
	}, nil
}

type stubMailer struct {
	sent []map[string]string
}

func (m *stubMailer) Send(_ context.Context, params map[string]string) error {
	m.sent = append(m.sent, params)
	return nil
}

type stubProducts struct{}

func (stubProducts) Products(context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{"products":[]}`), nil
}

func (stubProducts) Records(context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{"records":[]}`), nil
}

type fixture struct {
	server *httptest.Server
	mailer *stubMailer
	paypal *stubPayPal
	orders *sqlite.OrderRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cat, err := catalog.Load()
	require.NoError(t, err)

	postRepo, err := postfile.NewRepository(t.TempDir(), nil)
	require.NoError(t, err)

	cartStore, err := cart.NewStore(filepath.Join(t.TempDir(), "cart.json"), nil)
	require.NoError(t, err)

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	mailer := &stubMailer{}
	paypal := &stubPayPal{}
	orders := sqlite.NewOrderRepository(db)

	srv := httpapi.NewServer(httpapi.Deps{
		Posts:    post.NewService(postRepo, markdown.New(), nil),
		Sessions: session.NewService(session.NewMemoryStore(), "admin", "hunter2", time.Hour, nil),
		Schedule: schedule.NewService(cat, nil),
		Catalog:  cat,
		Cart:     cartStore,
		PayPal:   paypal,
		Shopify:  stubProducts{},
		Airtable: stubProducts{},
		Mailer:   mailer,
		Orders:   orders,
		Contacts: sqlite.NewContactRepository(db),
		PublicKeys: httpapi.PublicKeys{
			PayPalClientID:   "pk-widget",
			EmailJSPublicKey: "ejs-public",
		},
	})

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return &fixture{server: ts, mailer: mailer, paypal: paypal, orders: orders}
}

func (f *fixture) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (f *fixture) login(t *testing.T) *http.Cookie {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/admin/login", map[string]string{
		"username": "admin",
		"password": "hunter2",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "bt_session" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLogin_BadCredentials(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodPost, "/api/admin/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutes_RequireSession(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/api/admin/posts", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPostLifecycle(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t)

	// Create a draft.
	resp := f.do(t, http.MethodPost, "/api/admin/posts", map[string]any{
		"title":   "Fall Programs",
		"author":  "Jamie",
		"excerpt": "What's coming this fall",
		"content": "## New season\n\nLots of sessions.",
		"tags":    []string{"news"},
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[post.Post](t, resp)
	require.NotEmpty(t, created.ID)
	require.False(t, created.Published)

	// Drafts are invisible to the public list.
	resp = f.do(t, http.MethodGet, "/api/posts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, decodeBody[[]post.Post](t, resp))

	resp = f.do(t, http.MethodGet, "/api/posts/"+created.ID, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Publish via partial update.
	resp = f.do(t, http.MethodPut, "/api/admin/posts/"+created.ID, map[string]any{
		"published": true,
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[post.Post](t, resp)
	require.True(t, updated.Published)
	require.Equal(t, created.Title, updated.Title)
	// Header timestamps carry second precision, so compare loosely.
	require.WithinDuration(t, created.PublishDate, updated.PublishDate, time.Second)

	// Now public, with rendered HTML.
	resp = f.do(t, http.MethodGet, "/api/posts/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	public := decodeBody[post.Post](t, resp)
	require.Contains(t, public.RenderedHTML, "<h2")

	// Delete, then deleting again reports not found.
	resp = f.do(t, http.MethodDelete, "/api/admin/posts/"+created.ID, nil, cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/api/admin/posts/"+created.ID, nil, cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostCreate_MissingFields(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t)

	resp := f.do(t, http.MethodPost, "/api/admin/posts", map[string]any{
		"title": "No body here",
	}, cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEstimateEndpoint_WorkedExample(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/schedule/estimate", map[string]any{
		"schedule": map[string]any{
			"items": []map[string]any{{
				"program_id": "mind-over-matter",
				"versions":   []string{"Gr. 4-6", "Gr. 7-8"},
				"delivery":   "in-person",
				"sessions":   1,
			}},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	quote := decodeBody[schedule.Quote](t, resp)
	require.InDelta(t, 1970.00, quote.Subtotal, 0.001)
	require.Equal(t, 10, quote.DiscountPercent)
	require.InDelta(t, 2003.49, quote.Total, 0.001)
}

func TestEstimateEndpoint_RejectsUnknownProgram(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/schedule/estimate", map[string]any{
		"schedule": map[string]any{
			"items": []map[string]any{{
				"program_id": "does-not-exist",
				"versions":   []string{"K-3"},
				"delivery":   "virtual",
				"sessions":   1,
			}},
		},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCompatibilityEndpoint(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/schedule/compatibility", map[string]any{
		"schedule": map[string]any{
			"items": []map[string]any{{
				"program_id": "little-minds-big-feelings",
				"versions":   []string{"K-3"},
				"delivery":   "in-person",
				"sessions":   1,
			}},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	flags := decodeBody[map[string]schedule.CompatFlag](t, resp)
	require.Equal(t, schedule.FlagAdded, flags["little-minds-big-feelings"])
	require.Equal(t, schedule.FlagIncompatible, flags["finding-your-footing"])
}

func TestCartEndpoints(t *testing.T) {
	f := newFixture(t)

	item := map[string]any{"variant_id": "v1", "title": "Tote Bag", "price": 24.5}
	resp := f.do(t, http.MethodPost, "/api/cart", item)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/cart", item)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decodeBody[struct {
		Cart   cart.Cart   `json:"cart"`
		Totals cart.Totals `json:"totals"`
	}](t, resp)
	require.Len(t, state.Cart.Items, 1)
	require.Equal(t, 2, state.Cart.Items[0].Quantity)
	require.Equal(t, 2, state.Totals.Count)

	resp = f.do(t, http.MethodPut, "/api/cart/v1", map[string]int{"quantity": 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state = decodeBody[struct {
		Cart   cart.Cart   `json:"cart"`
		Totals cart.Totals `json:"totals"`
	}](t, resp)
	require.Empty(t, state.Cart.Items)
}

func TestContact_ValidatesAndRelays(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/contact", map[string]string{"name": "Pat"})
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/contact", map[string]string{
		"name":    "Pat",
		"email":   "pat@example.org",
		"message": "Hello there",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, f.mailer.sent, 1)
	require.Equal(t, "Pat", f.mailer.sent[0]["from_name"])
}

func TestCapture_RecordsOrder(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/paypal/capture-order", map[string]string{
		"order_id": "ORDER-9",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	orders, err := f.orders.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "ORDER-9", orders[0].PayPalOrderID)
	require.InDelta(t, 42.5, orders[0].Amount, 0.001)
}

func TestUpstreamFailure_MapsTo502(t *testing.T) {
	f := newFixture(t)
	f.paypal.failing = true

	resp := f.do(t, http.MethodPost, "/api/paypal/create-order", map[string]any{
		"amount": 10.0,
	})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	// The user sees a generic retry-able message, not the raw error.
	require.NotContains(t, body["error"], "connection refused")
}

func TestConfig_ExposesOnlyPublicKeys(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/api/config", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	keys := decodeBody[map[string]string](t, resp)
	require.Equal(t, "pk-widget", keys["paypal_client_id"])
	require.Equal(t, "ejs-public", keys["emailjs_public_key"])
}
