// Package restauranttest provides an in-memory restaurant backend for tests.
package restauranttest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/bobmcallan/restaurant-mcp/internal/models"
)

// Default credentials accepted by the fake backend.
const (
	Username = "admin"
	Password = "password"
)

// Request is one call observed by the backend.
type Request struct {
	Method        string
	Path          string
	Query         url.Values
	Body          map[string]interface{}
	CorrelationID string
}

type override struct {
	status int
	body   string
}

type pairKey struct{ a, b int64 }

// Backend serves the restaurant REST API from memory under /api.
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	nextID    int64
	dishes    map[int64]models.Dish
	menus     map[int64]models.Menu
	sales     map[int64]models.Sale
	dishMenus []models.DishMenu
	saleMenus []models.SaleMenu
	requests  []Request
	overrides map[string]override
}

// NewBackend starts a backend that is closed when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		nextID:    1,
		dishes:    map[int64]models.Dish{},
		menus:     map[int64]models.Menu{},
		sales:     map[int64]models.Sale{},
		overrides: map[string]override{},
	}
	b.Server = httptest.NewServer(b.routes())
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the API base URL.
func (b *Backend) URL() string {
	return b.Server.URL + "/api"
}

// Requests returns a copy of every request observed so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// LastRequest returns the most recent request, or a zero Request.
func (b *Backend) LastRequest() Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return Request{}
	}
	return b.requests[len(b.requests)-1]
}

// Respond makes every request matching "METHOD /path" (path relative to /api,
// without query) return status and body instead of the normal handling.
func (b *Backend) Respond(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[method+" "+path] = override{status: status, body: body}
}

// SeedDish stores a dish with a backend-assigned id and returns it.
func (b *Backend) SeedDish(d models.Dish) models.Dish {
	b.mu.Lock()
	defer b.mu.Unlock()
	d.ID = b.allocID()
	b.dishes[d.ID] = d
	return d
}

// SeedMenu stores a menu with a backend-assigned id and returns it.
func (b *Backend) SeedMenu(m models.Menu) models.Menu {
	b.mu.Lock()
	defer b.mu.Unlock()
	m.ID = b.allocID()
	b.menus[m.ID] = m
	return m
}

// SeedSale stores a sale with a backend-assigned id and returns it.
func (b *Backend) SeedSale(s models.Sale) models.Sale {
	b.mu.Lock()
	defer b.mu.Unlock()
	s.ID = b.allocID()
	b.sales[s.ID] = s
	return s
}

// SeedDishMenu stores a dish/menu relationship as given.
func (b *Backend) SeedDishMenu(dm models.DishMenu) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dishMenus = append(b.dishMenus, dm)
}

// SeedSaleMenu stores a sale/menu relationship as given.
func (b *Backend) SeedSaleMenu(sm models.SaleMenu) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saleMenus = append(b.saleMenus, sm)
}

func (b *Backend) allocID() int64 {
	id := b.nextID
	b.nextID++
	return id
}

func (b *Backend) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/dishes", b.listDishes)
	mux.HandleFunc("GET /api/dishes/{id}", b.getDish)
	mux.HandleFunc("POST /api/dishes", b.createDish)
	mux.HandleFunc("PUT /api/dishes", b.updateDish)
	mux.HandleFunc("DELETE /api/dishes", b.deleteDish)

	mux.HandleFunc("GET /api/menus", b.listMenus)
	mux.HandleFunc("GET /api/menus/{id}", b.getMenu)
	mux.HandleFunc("POST /api/menus", b.createMenu)
	mux.HandleFunc("PUT /api/menus", b.updateMenu)
	mux.HandleFunc("DELETE /api/menus", b.deleteMenu)

	mux.HandleFunc("GET /api/sales", b.listSales)
	mux.HandleFunc("GET /api/sales/{id}", b.getSale)
	mux.HandleFunc("POST /api/sales", b.createSale)
	mux.HandleFunc("PUT /api/sales", b.updateSale)
	mux.HandleFunc("DELETE /api/sales", b.deleteSale)

	mux.HandleFunc("GET /api/dish-menus", b.listDishMenus)
	mux.HandleFunc("GET /api/dish-menus/{idMenu}/{idDish}", b.getDishMenu)
	mux.HandleFunc("POST /api/dish-menus", b.addDishMenu)
	mux.HandleFunc("PUT /api/dish-menus", b.updateDishMenu)
	mux.HandleFunc("DELETE /api/dish-menus", b.removeDishMenu)

	mux.HandleFunc("GET /api/SalesMenu", b.listSaleMenus)
	mux.HandleFunc("GET /api/SalesMenu/sale/{idSale}", b.listSaleMenusBySale)
	mux.HandleFunc("GET /api/SalesMenu/{idMenu}/{idSale}", b.getSaleMenu)
	mux.HandleFunc("POST /api/SalesMenu", b.addSaleMenu)
	mux.HandleFunc("PUT /api/SalesMenu", b.updateSaleMenu)
	mux.HandleFunc("DELETE /api/SalesMenu", b.removeSaleMenu)

	return b.intercept(mux)
}

// intercept records the request, enforces basic auth and applies overrides.
func (b *Backend) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(raw)))

		rec := Request{
			Method:        r.Method,
			Path:          strings.TrimPrefix(r.URL.Path, "/api"),
			Query:         r.URL.Query(),
			CorrelationID: r.Header.Get("X-Correlation-ID"),
		}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}

		b.mu.Lock()
		b.requests = append(b.requests, rec)
		ov, hasOverride := b.overrides[rec.Method+" "+rec.Path]
		b.mu.Unlock()

		user, pass, ok := r.BasicAuth()
		if !ok || user != Username || pass != Password {
			writeError(w, http.StatusUnauthorized, "bad credentials")
			return
		}
		if hasOverride {
			w.WriteHeader(ov.status)
			io.WriteString(w, ov.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- dishes ---

func (b *Backend) listDishes(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Dish, 0, len(b.dishes))
	for _, id := range sortedKeys(b.dishes) {
		out = append(out, b.dishes[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) getDish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	d, found := b.dishes[id]
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Dish %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (b *Backend) createDish(w http.ResponseWriter, r *http.Request) {
	var d models.Dish
	if !readJSON(w, r, &d) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	d.ID = b.allocID()
	b.dishes[d.ID] = d
	writeJSON(w, http.StatusCreated, d)
}

func (b *Backend) updateDish(w http.ResponseWriter, r *http.Request) {
	var d models.Dish
	if !readJSON(w, r, &d) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.dishes[d.ID]; !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Dish %d not found", d.ID))
		return
	}
	b.dishes[d.ID] = d
	writeJSON(w, http.StatusOK, d)
}

func (b *Backend) deleteDish(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.dishes[id]; !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Dish %d not found", id))
		return
	}
	for _, dm := range b.dishMenus {
		if dm.DishID == id {
			writeError(w, http.StatusConflict, fmt.Sprintf("Dish %d is referenced by menu %d", id, dm.MenuID))
			return
		}
	}
	delete(b.dishes, id)
	w.WriteHeader(http.StatusNoContent)
}

// --- menus ---

func (b *Backend) listMenus(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Menu, 0, len(b.menus))
	for _, id := range sortedKeys(b.menus) {
		out = append(out, b.menus[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) getMenu(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	m, found := b.menus[id]
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Menu %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (b *Backend) createMenu(w http.ResponseWriter, r *http.Request) {
	var m models.Menu
	if !readJSON(w, r, &m) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	m.ID = b.allocID()
	b.menus[m.ID] = m
	writeJSON(w, http.StatusCreated, m)
}

func (b *Backend) updateMenu(w http.ResponseWriter, r *http.Request) {
	var m models.Menu
	if !readJSON(w, r, &m) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.menus[m.ID]; !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Menu %d not found", m.ID))
		return
	}
	b.menus[m.ID] = m
	writeJSON(w, http.StatusOK, m)
}

func (b *Backend) deleteMenu(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.menus[id]; !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Menu %d not found", id))
		return
	}
	delete(b.menus, id)
	w.WriteHeader(http.StatusNoContent)
}

// --- sales ---

func (b *Backend) listSales(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Sale, 0, len(b.sales))
	for _, id := range sortedKeys(b.sales) {
		out = append(out, b.sales[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) getSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	s, found := b.sales[id]
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Sale %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (b *Backend) createSale(w http.ResponseWriter, r *http.Request) {
	var s models.Sale
	if !readJSON(w, r, &s) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	s.ID = b.allocID()
	b.sales[s.ID] = s
	writeJSON(w, http.StatusCreated, s)
}

func (b *Backend) updateSale(w http.ResponseWriter, r *http.Request) {
	var s models.Sale
	if !readJSON(w, r, &s) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.sales[s.ID]; !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Sale %d not found", s.ID))
		return
	}
	b.sales[s.ID] = s
	writeJSON(w, http.StatusOK, s)
}

func (b *Backend) deleteSale(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(w, r, "id")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.sales[id]; !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Sale %d not found", id))
		return
	}
	delete(b.sales, id)
	w.WriteHeader(http.StatusNoContent)
}

// --- dish-menus ---

func (b *Backend) listDishMenus(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]models.DishMenu{}, b.dishMenus...))
}

func (b *Backend) findDishMenu(idMenu, idDish int64) int {
	for i, dm := range b.dishMenus {
		if dm.MenuID == idMenu && dm.DishID == idDish {
			return i
		}
	}
	return -1
}

func (b *Backend) getDishMenu(w http.ResponseWriter, r *http.Request) {
	idMenu, ok := pathID(w, r, "idMenu")
	if !ok {
		return
	}
	idDish, ok := pathID(w, r, "idDish")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findDishMenu(idMenu, idDish)
	if i < 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Dish %d is not on menu %d", idDish, idMenu))
		return
	}
	writeJSON(w, http.StatusOK, b.dishMenus[i])
}

func (b *Backend) addDishMenu(w http.ResponseWriter, r *http.Request) {
	var dm models.DishMenu
	if !readJSON(w, r, &dm) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.menus[dm.MenuID]; !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Menu %d not found", dm.MenuID))
		return
	}
	if _, found := b.dishes[dm.DishID]; !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Dish %d not found", dm.DishID))
		return
	}
	if b.findDishMenu(dm.MenuID, dm.DishID) >= 0 {
		writeError(w, http.StatusConflict, fmt.Sprintf("Dish %d is already on menu %d", dm.DishID, dm.MenuID))
		return
	}
	b.dishMenus = append(b.dishMenus, dm)
	writeJSON(w, http.StatusCreated, dm)
}

func (b *Backend) updateDishMenu(w http.ResponseWriter, r *http.Request) {
	var dm models.DishMenu
	if !readJSON(w, r, &dm) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findDishMenu(dm.MenuID, dm.DishID)
	if i < 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Dish %d is not on menu %d", dm.DishID, dm.MenuID))
		return
	}
	b.dishMenus[i] = dm
	writeJSON(w, http.StatusOK, dm)
}

func (b *Backend) removeDishMenu(w http.ResponseWriter, r *http.Request) {
	idMenu, ok := queryID(w, r, "idmenu")
	if !ok {
		return
	}
	idDish, ok := queryID(w, r, "iddish")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findDishMenu(idMenu, idDish)
	if i < 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Dish %d is not on menu %d", idDish, idMenu))
		return
	}
	b.dishMenus = append(b.dishMenus[:i], b.dishMenus[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

// --- SalesMenu ---

func (b *Backend) listSaleMenus(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]models.SaleMenu{}, b.saleMenus...))
}

func (b *Backend) listSaleMenusBySale(w http.ResponseWriter, r *http.Request) {
	idSale, ok := pathID(w, r, "idSale")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.SaleMenu{}
	for _, sm := range b.saleMenus {
		if sm.SaleID == idSale {
			out = append(out, sm)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) findSaleMenu(idMenu, idSale int64) int {
	for i, sm := range b.saleMenus {
		if sm.MenuID == idMenu && sm.SaleID == idSale {
			return i
		}
	}
	return -1
}

func (b *Backend) getSaleMenu(w http.ResponseWriter, r *http.Request) {
	idMenu, ok := pathID(w, r, "idMenu")
	if !ok {
		return
	}
	idSale, ok := pathID(w, r, "idSale")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findSaleMenu(idMenu, idSale)
	if i < 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Menu %d is not on sale %d", idMenu, idSale))
		return
	}
	writeJSON(w, http.StatusOK, b.saleMenus[i])
}

// addSaleMenu accepts the menuId/saleId create shape.
func (b *Backend) addSaleMenu(w http.ResponseWriter, r *http.Request) {
	var in struct {
		MenuID   int64 `json:"menuId"`
		SaleID   int64 `json:"saleId"`
		Quantity int   `json:"quantity"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	if in.MenuID == 0 || in.SaleID == 0 {
		writeError(w, http.StatusBadRequest, "menuId and saleId are required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.menus[in.MenuID]; !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Menu %d not found", in.MenuID))
		return
	}
	if _, found := b.sales[in.SaleID]; !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Sale %d not found", in.SaleID))
		return
	}
	if b.findSaleMenu(in.MenuID, in.SaleID) >= 0 {
		writeError(w, http.StatusConflict, fmt.Sprintf("Menu %d is already on sale %d", in.MenuID, in.SaleID))
		return
	}
	sm := models.SaleMenu{MenuID: in.MenuID, SaleID: in.SaleID, Quantity: in.Quantity}
	b.saleMenus = append(b.saleMenus, sm)
	writeJSON(w, http.StatusCreated, sm)
}

func (b *Backend) updateSaleMenu(w http.ResponseWriter, r *http.Request) {
	var sm models.SaleMenu
	if !readJSON(w, r, &sm) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findSaleMenu(sm.MenuID, sm.SaleID)
	if i < 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Menu %d is not on sale %d", sm.MenuID, sm.SaleID))
		return
	}
	b.saleMenus[i] = sm
	writeJSON(w, http.StatusOK, sm)
}

func (b *Backend) removeSaleMenu(w http.ResponseWriter, r *http.Request) {
	idMenu, ok := queryID(w, r, "idmenu")
	if !ok {
		return
	}
	idSale, ok := queryID(w, r, "idsale")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findSaleMenu(idMenu, idSale)
	if i < 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Menu %d is not on sale %d", idMenu, idSale))
		return
	}
	b.saleMenus = append(b.saleMenus[:i], b.saleMenus[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

// --- helpers ---

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	return parseID(w, name, r.PathValue(name))
}

func queryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	return parseID(w, name, r.URL.Query().Get(name))
}

func parseID(w http.ResponseWriter, name, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s: %q", name, raw))
		return 0, false
	}
	return id, true
}

func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
