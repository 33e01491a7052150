package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaopro/gestaopro/internal/cashmovements"
	"github.com/gestaopro/gestaopro/internal/marketplace"
	"github.com/gestaopro/gestaopro/internal/platform/httpx"
	"github.com/gestaopro/gestaopro/internal/products"
	"github.com/gestaopro/gestaopro/internal/sales"
	"github.com/gestaopro/gestaopro/internal/shared"
	"github.com/gestaopro/gestaopro/internal/users"
)

// ============================================================================
// IN-MEMORY REPOSITORIES
// ============================================================================

type memCashRepo struct {
	rows   map[int64]cashmovements.CashMovement
	nextID int64
}

func (r *memCashRepo) List(ctx context.Context) ([]cashmovements.CashMovement, error) {
	var out []cashmovements.CashMovement
	for id := int64(1); id < r.nextID; id++ {
		if m, ok := r.rows[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memCashRepo) Get(ctx context.Context, id int64) (cashmovements.CashMovement, error) {
	m, ok := r.rows[id]
	if !ok {
		return cashmovements.CashMovement{}, httpx.ErrNotFound
	}
	return m, nil
}

func (r *memCashRepo) Create(ctx context.Context, form cashmovements.CreateForm) (cashmovements.CashMovement, error) {
	now := time.Now().UTC()
	m := cashmovements.CashMovement{
		ID: r.nextID, Description: form.Description, Value: form.Value, Type: form.Type,
		Date: form.Date, Category: form.Category, Reason: form.Reason, CreatedAt: now, UpdatedAt: now,
	}
	r.rows[m.ID] = m
	r.nextID++
	return m, nil
}

func (r *memCashRepo) Update(ctx context.Context, id int64, form cashmovements.UpdateForm) (cashmovements.CashMovement, error) {
	m, ok := r.rows[id]
	if !ok {
		return cashmovements.CashMovement{}, httpx.ErrNotFound
	}
	if form.Description != nil {
		m.Description = *form.Description
	}
	if form.Value != nil {
		m.Value = *form.Value
	}
	if form.Type != nil {
		m.Type = *form.Type
	}
	if form.Date != nil {
		m.Date = *form.Date
	}
	if form.Category != nil {
		m.Category = form.Category
	}
	if form.Reason != nil {
		m.Reason = form.Reason
	}
	m.UpdatedAt = time.Now().UTC()
	r.rows[id] = m
	return m, nil
}

func (r *memCashRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memProductRepo struct {
	rows   map[int64]products.Product
	nextID int64
}

func (r *memProductRepo) List(ctx context.Context) ([]products.Product, error) {
	var out []products.Product
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.rows[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Get(ctx context.Context, id int64) (products.Product, error) {
	p, ok := r.rows[id]
	if !ok {
		return products.Product{}, httpx.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) Create(ctx context.Context, form products.CreateForm) (products.Product, error) {
	now := time.Now().UTC()
	p := products.Product{
		ID: r.nextID, Name: form.Name, Description: form.Description, Cost: form.Cost,
		Price: form.Price, Stock: form.Stock, CostDetails: form.CostDetails, CreatedAt: now, UpdatedAt: now,
	}
	r.rows[p.ID] = p
	r.nextID++
	return p, nil
}

func (r *memProductRepo) Update(ctx context.Context, id int64, form products.UpdateForm) (products.Product, error) {
	p, ok := r.rows[id]
	if !ok {
		return products.Product{}, httpx.ErrNotFound
	}
	if form.Name != nil {
		p.Name = *form.Name
	}
	if form.Description != nil {
		p.Description = form.Description
	}
	if form.Cost != nil {
		p.Cost = *form.Cost
	}
	if form.Price != nil {
		p.Price = *form.Price
	}
	if form.Stock != nil {
		p.Stock = *form.Stock
	}
	if form.CostDetails != nil {
		p.CostDetails = form.CostDetails
	}
	p.UpdatedAt = time.Now().UTC()
	r.rows[id] = p
	return p, nil
}

func (r *memProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memSaleRepo struct {
	rows   map[int64]sales.Sale
	nextID int64
}

func (r *memSaleRepo) List(ctx context.Context) ([]sales.Sale, error) {
	var out []sales.Sale
	for id := int64(1); id < r.nextID; id++ {
		if s, ok := r.rows[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSaleRepo) Get(ctx context.Context, id int64) (sales.Sale, error) {
	s, ok := r.rows[id]
	if !ok {
		return sales.Sale{}, httpx.ErrNotFound
	}
	return s, nil
}

func (r *memSaleRepo) Create(ctx context.Context, form sales.CreateForm) (sales.Sale, error) {
	now := time.Now().UTC()
	s := sales.Sale{
		ID: r.nextID, ProductID: form.ProductID, ProductName: form.ProductName,
		CustomerName: form.CustomerName, Quantity: form.Quantity, SaleDate: form.SaleDate,
		TotalRevenue: form.TotalRevenue, TotalCost: form.TotalCost, TotalProfit: form.TotalProfit,
		CreatedAt: now, UpdatedAt: now,
	}
	r.rows[s.ID] = s
	r.nextID++
	return s, nil
}

func (r *memSaleRepo) Update(ctx context.Context, id int64, form sales.UpdateForm) (sales.Sale, error) {
	s, ok := r.rows[id]
	if !ok {
		return sales.Sale{}, httpx.ErrNotFound
	}
	if form.ProductID != nil {
		s.ProductID = *form.ProductID
	}
	if form.ProductName != nil {
		s.ProductName = *form.ProductName
	}
	if form.CustomerName != nil {
		s.CustomerName = form.CustomerName
	}
	if form.Quantity != nil {
		s.Quantity = *form.Quantity
	}
	if form.SaleDate != nil {
		s.SaleDate = *form.SaleDate
	}
	if form.TotalRevenue != nil {
		s.TotalRevenue = *form.TotalRevenue
	}
	if form.TotalCost != nil {
		s.TotalCost = *form.TotalCost
	}
	if form.TotalProfit != nil {
		s.TotalProfit = *form.TotalProfit
	}
	s.UpdatedAt = time.Now().UTC()
	r.rows[id] = s
	return s, nil
}

func (r *memSaleRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memOrderRepo struct {
	rows   map[int64]marketplace.Order
	nextID int64
}

func (r *memOrderRepo) List(ctx context.Context) ([]marketplace.Order, error) {
	var out []marketplace.Order
	for id := int64(1); id < r.nextID; id++ {
		if o, ok := r.rows[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) Get(ctx context.Context, id int64) (marketplace.Order, error) {
	o, ok := r.rows[id]
	if !ok {
		return marketplace.Order{}, httpx.ErrNotFound
	}
	return o, nil
}

func (r *memOrderRepo) Create(ctx context.Context, orderData string) (marketplace.Order, error) {
	now := time.Now().UTC()
	o := marketplace.Order{ID: r.nextID, OrderData: orderData, CreatedAt: now, UpdatedAt: now}
	r.rows[o.ID] = o
	r.nextID++
	return o, nil
}

func (r *memOrderRepo) Update(ctx context.Context, id int64, form marketplace.UpdateForm) (marketplace.Order, error) {
	o, ok := r.rows[id]
	if !ok {
		return marketplace.Order{}, httpx.ErrNotFound
	}
	if form.OrderData != nil {
		o.OrderData = *form.OrderData
	}
	o.UpdatedAt = time.Now().UTC()
	r.rows[id] = o
	return o, nil
}

func (r *memOrderRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memUserRepo struct {
	rows   map[int64]users.User
	nextID int64
}

func (r *memUserRepo) List(ctx context.Context) ([]users.User, error) {
	var out []users.User
	for id := int64(1); id < r.nextID; id++ {
		if u, ok := r.rows[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) Get(ctx context.Context, id int64) (users.User, error) {
	u, ok := r.rows[id]
	if !ok {
		return users.User{}, httpx.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	for _, u := range r.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return users.User{}, httpx.ErrNotFound
}

func (r *memUserRepo) Create(ctx context.Context, form users.CreateForm) (users.User, error) {
	if _, err := r.GetByUsername(ctx, form.Username); err == nil {
		return users.User{}, httpx.ErrDuplicate
	}
	now := time.Now().UTC()
	u := users.User{ID: r.nextID, Username: form.Username, PasswordHash: form.PasswordHash, CreatedAt: now, UpdatedAt: now}
	r.rows[u.ID] = u
	r.nextID++
	return u, nil
}

func (r *memUserRepo) CreateIfUsernameAbsent(ctx context.Context, form users.CreateForm) (users.User, bool, error) {
	if existing, err := r.GetByUsername(ctx, form.Username); err == nil {
		return existing, false, nil
	}
	u, err := r.Create(ctx, form)
	if err != nil {
		return users.User{}, false, err
	}
	return u, true, nil
}

func (r *memUserRepo) Update(ctx context.Context, id int64, form users.UpdateForm) (users.User, error) {
	u, ok := r.rows[id]
	if !ok {
		return users.User{}, httpx.ErrNotFound
	}
	if form.Username != nil {
		u.Username = *form.Username
	}
	if form.PasswordHash != nil {
		u.PasswordHash = *form.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()
	r.rows[id] = u
	return u, nil
}

func (r *memUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// ============================================================================
// HARNESS
// ============================================================================

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	h := NewHandler(
		nil,
		cashmovements.NewService(&memCashRepo{rows: map[int64]cashmovements.CashMovement{}, nextID: 1}),
		products.NewService(&memProductRepo{rows: map[int64]products.Product{}, nextID: 1}),
		sales.NewService(&memSaleRepo{rows: map[int64]sales.Sale{}, nextID: 1}),
		marketplace.NewService(&memOrderRepo{rows: map[int64]marketplace.Order{}, nextID: 1}),
		users.NewService(nil, &memUserRepo{rows: map[int64]users.User{}, nextID: 1}),
	)
	r := chi.NewRouter()
	r.Route("/bancoexterno", func(r chi.Router) {
		h.MountRoutes(r)
	})
	return r
}

func doJSON(t *testing.T, router chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeRow(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var row map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
	return row
}

// ============================================================================
// TESTS
// ============================================================================

func TestUnknownEntityEveryMethod(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/bancoexterno/clientes", ""},
		{http.MethodPost, "/bancoexterno/clientes", `{"name":"x"}`},
		{http.MethodPut, "/bancoexterno/clientes/1", `{"name":"x"}`},
		{http.MethodDelete, "/bancoexterno/clientes/1", ""},
	}
	for _, tc := range cases {
		rec := doJSON(t, router, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method)
		assert.JSONEq(t, `{"message":"entidade não encontrada"}`, rec.Body.String(), tc.method)
	}
}

func TestAbsentIDReturnsNotFound(t *testing.T) {
	router := newTestRouter(t)

	for _, entity := range []string{"cash_movements", "products", "sales", "marketplace_orders", "users"} {
		rec := doJSON(t, router, http.MethodGet, "/bancoexterno/"+entity+"/99", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, entity)

		rec = doJSON(t, router, http.MethodPut, "/bancoexterno/"+entity+"/99", `{}`)
		assert.Equal(t, http.StatusNotFound, rec.Code, entity)

		rec = doJSON(t, router, http.MethodDelete, "/bancoexterno/"+entity+"/99", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, entity)
	}
}

func TestNonNumericIDBehavesLikeMissingRow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/bancoexterno/products/abc", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/bancoexterno/products/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListStartsEmpty(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/bancoexterno/cash_movements", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestProductLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/bancoexterno/products",
		`{"name":"Widget","cost":2.5,"price":5.0,"stock":10}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeRow(t, rec)

	id := int64(created["id"].(float64))
	require.Positive(t, id)
	assert.Equal(t, float64(10), created["stock"])
	assert.Equal(t, created["created_date"], created["updated_date"])

	createdAt, err := time.Parse(shared.TimestampLayout, created["created_date"].(string))
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/bancoexterno/products/%d", id), `{"stock":7}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeRow(t, rec)

	assert.Equal(t, float64(7), updated["stock"])
	assert.Equal(t, float64(5.0), updated["price"])
	assert.Equal(t, "Widget", updated["name"])
	assert.Equal(t, created["created_date"], updated["created_date"])

	updatedAt, err := time.Parse(shared.TimestampLayout, updated["updated_date"].(string))
	require.NoError(t, err)
	assert.True(t, updatedAt.After(createdAt))

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/bancoexterno/products/%d", id), "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/bancoexterno/products/%d", id), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInsertAssignsDistinctIDs(t *testing.T) {
	router := newTestRouter(t)

	seen := map[float64]bool{}
	for i := 0; i < 5; i++ {
		rec := doJSON(t, router, http.MethodPost, "/bancoexterno/cash_movements",
			`{"description":"venda","value":10,"type":"entrada","date":"2024-03-01"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		row := decodeRow(t, rec)
		id := row["id"].(float64)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestCreateRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/bancoexterno/products",
		`{"name":"Widget","cost":1,"price":2,"stock":1,"color":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCashMovementValidatesType(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/bancoexterno/cash_movements",
		`{"description":"x","value":10,"type":"transferencia","date":"2024-03-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarketplaceOrderWrapsWholePayload(t *testing.T) {
	router := newTestRouter(t)
	payload := `{"marketplace":"shopee","items":[{"sku":"A","qty":2}]}`

	rec := doJSON(t, router, http.MethodPost, "/bancoexterno/marketplace_orders", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	row := decodeRow(t, rec)

	assert.JSONEq(t, payload, row["order_data"].(string))

	rec = doJSON(t, router, http.MethodPost, "/bancoexterno/marketplace_orders", `not-json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSalePartialUpdate(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/bancoexterno/sales",
		`{"product_id":3,"product_name":"Widget","quantity":2,"sale_date":"2024-03-01","total_revenue":10,"total_cost":5,"total_profit":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeRow(t, rec)
	id := int64(created["id"].(float64))

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/bancoexterno/sales/%d", id),
		`{"quantity":3,"total_revenue":15}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeRow(t, rec)

	assert.Equal(t, float64(3), updated["quantity"])
	assert.Equal(t, float64(15), updated["total_revenue"])
	assert.Equal(t, "Widget", updated["product_name"])
	assert.Equal(t, float64(5), updated["total_cost"])
}

func TestAdminCreateShortCircuitStatus(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/bancoexterno/users",
		`{"username":"admin","password_hash":"suporte@1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	first := decodeRow(t, rec)

	rec = doJSON(t, router, http.MethodPost, "/bancoexterno/users",
		`{"username":"admin","password_hash":"outra"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decodeRow(t, rec)

	assert.Equal(t, first["id"], second["id"])
	assert.Equal(t, "suporte@1", second["password_hash"])

	rec = doJSON(t, router, http.MethodGet, "/bancoexterno/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 1)
}

func TestDuplicateNonAdminUserConflicts(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/bancoexterno/users",
		`{"username":"maria","password_hash":"x"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/bancoexterno/users",
		`{"username":"maria","password_hash":"y"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListReflectsInsertionOrder(t *testing.T) {
	router := newTestRouter(t)

	for _, desc := range []string{"primeiro", "segundo", "terceiro"} {
		rec := doJSON(t, router, http.MethodPost, "/bancoexterno/cash_movements",
			fmt.Sprintf(`{"description":"%s","value":1,"type":"saida","date":"2024-03-01"}`, desc))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/bancoexterno/cash_movements", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 3)
	assert.Equal(t, "primeiro", all[0]["description"])
	assert.Equal(t, "segundo", all[1]["description"])
	assert.Equal(t, "terceiro", all[2]["description"])
}
