package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront/internal/checkout"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/session"
	"github.com/MikeMC777/storefront/internal/user"
)

//
// ===== in-memory repositories =====
//

type stubProducts struct {
	items  map[int64]*product.Product
	nextID int64
}

func newStubProducts() *stubProducts {
	return &stubProducts{items: map[int64]*product.Product{}}
}

func (s *stubProducts) put(id int64, name, price string) {
	s.items[id] = &product.Product{ID: id, Name: name, Price: decimal.RequireFromString(price)}
	if id > s.nextID {
		s.nextID = id
	}
}

func (s *stubProducts) Create(_ context.Context, p *product.Product) error {
	s.nextID++
	p.ID = s.nextID
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubProducts) GetByID(_ context.Context, id int64) (*product.Product, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// List mirrors LIKE: case-sensitive substring, ordered by id.
func (s *stubProducts) List(_ context.Context, search string) ([]product.Product, error) {
	out := []product.Product{}
	for _, p := range s.items {
		if search == "" || strings.Contains(p.Name, search) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubProducts) Update(_ context.Context, p *product.Product) error {
	if _, ok := s.items[p.ID]; !ok {
		return product.ErrNotFound
	}
	cp := *p
	cp.UpdatedAt = time.Now().UTC()
	s.items[p.ID] = &cp
	return nil
}

func (s *stubProducts) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

type stubUsers struct {
	byName map[string]*user.User
	nextID int64
}

func newStubUsers() *stubUsers { return &stubUsers{byName: map[string]*user.User{}} }

func (s *stubUsers) Create(_ context.Context, u *user.User) error {
	if _, ok := s.byName[u.Username]; ok {
		return user.ErrAlreadyExist
	}
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.byName[u.Username] = &cp
	return nil
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	for _, u := range s.byName {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *stubUsers) GetByUsername(_ context.Context, name string) (*user.User, error) {
	u, ok := s.byName[name]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type stubOrders struct {
	orders []order.Order
	err    error
}

func (s *stubOrders) Create(_ context.Context, o *order.Order) error {
	if s.err != nil {
		return s.err
	}
	o.ID = int64(len(s.orders) + 1)
	o.CreatedAt = time.Now().UTC().Add(time.Duration(o.ID) * time.Second)
	for i := range o.Items {
		o.Items[i].ID = o.ID*100 + int64(i)
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	cp.Items = append([]order.Item(nil), o.Items...)
	s.orders = append(s.orders, cp)
	return nil
}

func (s *stubOrders) ListByUser(_ context.Context, userID int64) ([]order.Order, error) {
	out := []order.Order{}
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			out = append(out, s.orders[i])
		}
	}
	return out, nil
}

func (s *stubOrders) GetItems(_ context.Context, orderID int64) ([]order.Item, error) {
	for _, o := range s.orders {
		if o.ID == orderID {
			return o.Items, nil
		}
	}
	return []order.Item{}, nil
}

type fakeGateway struct {
	calls []checkout.SessionRequest
	err   error
}

func (g *fakeGateway) CreateSession(_ context.Context, req checkout.SessionRequest) (string, error) {
	g.calls = append(g.calls, req)
	if g.err != nil {
		return "", g.err
	}
	return "https://pay.example/session/" + fmt.Sprint(len(g.calls)), nil
}

//
// ===== test harness =====
//

type harness struct {
	t        *testing.T
	router   *gin.Engine
	products *stubProducts
	users    *stubUsers
	orders   *stubOrders
	gateway  *fakeGateway
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := &harness{
		t:        t,
		products: newStubProducts(),
		users:    newStubUsers(),
		orders:   &stubOrders{},
		gateway:  &fakeGateway{},
	}
	a := &app{
		products: h.products,
		users:    user.NewService(h.users),
		orders:   h.orders,
		checkout: &checkout.Service{
			Products: h.products,
			Orders:   h.orders,
			Gateway:  h.gateway,
			Events:   order.NopPublisher{},
			Metrics:  checkout.NewMetrics(prometheus.NewRegistry()),
			Currency: "inr",
		},
		sessions: session.NewManager(
			session.NewRedisStore(rdb, time.Hour),
			session.NewCodec("test-secret", time.Hour),
			time.Hour,
		),
	}
	h.router = newRouter(a)
	return h
}

// browser keeps the session cookie between requests, like a real client.
type browser struct {
	h      *harness
	cookie *http.Cookie
}

func (h *harness) browser() *browser { return &browser{h: h} }

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.h.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			b.cookie = c
		}
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder { return b.do(http.MethodGet, path, nil) }

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, path, form)
}

type pageBody struct {
	Page    string          `json:"page"`
	Flashes []string        `json:"flashes"`
	User    *PageUser       `json:"user"`
	Data    json.RawMessage `json:"data"`
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder, data interface{}) pageBody {
	t.Helper()
	var p pageBody
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid page json: %v body=%s", err, w.Body.String())
	}
	if data != nil && len(p.Data) > 0 {
		if err := json.Unmarshal(p.Data, data); err != nil {
			t.Fatalf("invalid page data: %v data=%s", err, p.Data)
		}
	}
	return p
}

// loginAs registers username with role and logs the browser in.
func (b *browser) loginAs(username string, role user.Role) {
	t := b.h.t
	t.Helper()
	w := b.post("/register", url.Values{"username": {username}, "password": {"pw-" + username}, "role": {string(role)}})
	if w.Code != http.StatusFound {
		t.Fatalf("register %s: status=%d body=%s", username, w.Code, w.Body.String())
	}
	w = b.post("/login", url.Values{"username": {username}, "password": {"pw-" + username}})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("login %s: status=%d body=%s", username, w.Code, w.Body.String())
	}
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}
